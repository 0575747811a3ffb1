// Package risk implements pre-trade checks applied to a command before
// it is ever enqueued for matching. Checks operate only on the command
// and the submitting account's running state — they never touch the
// book, arena, or directory, and never block the matcher.
package risk

import (
	"sync"

	"github.com/arcline/femtobook/internal/core"
)

// Result is the outcome of a pre-trade check.
type Result uint8

const (
	Accepted Result = iota
	RejectedPositionLimit
	RejectedOrderSize
	RejectedOrderValue
	RejectedRateLimit
	RejectedPriceDeviation
	RejectedAccountDisabled
	RejectedUnknownAccount
)

func (r Result) String() string {
	switch r {
	case Accepted:
		return "ACCEPTED"
	case RejectedPositionLimit:
		return "REJECTED_POSITION_LIMIT"
	case RejectedOrderSize:
		return "REJECTED_ORDER_SIZE"
	case RejectedOrderValue:
		return "REJECTED_ORDER_VALUE"
	case RejectedRateLimit:
		return "REJECTED_RATE_LIMIT"
	case RejectedPriceDeviation:
		return "REJECTED_PRICE_DEVIATION"
	case RejectedAccountDisabled:
		return "REJECTED_ACCOUNT_DISABLED"
	case RejectedUnknownAccount:
		return "REJECTED_UNKNOWN_ACCOUNT"
	default:
		return "UNKNOWN"
	}
}

// Limits bounds what a single account may submit.
type Limits struct {
	MaxPosition        int64   // maximum net position, either side
	MaxOrderSize       uint64  // maximum single order quantity
	MaxOrderValue      uint64  // maximum price*quantity for a single order
	MaxOrdersPerWindow uint32  // rate limit numerator
	MaxPriceDeviation  float64 // fraction away from the reference price a NEW may be priced
}

// DefaultLimits mirrors a conservative single-account profile: generous
// enough not to interfere with normal feed traffic, tight enough to
// catch a runaway generator.
func DefaultLimits() Limits {
	return Limits{
		MaxPosition:        1_000_000,
		MaxOrderSize:       100_000,
		MaxOrderValue:      10_000_000,
		MaxOrdersPerWindow: 1_000,
		MaxPriceDeviation:  0.10,
	}
}

// account tracks one trading account's running position and rate state.
type account struct {
	limits  Limits
	enabled bool

	netPosition    int64
	ordersInWindow uint32
	windowStart    int64 // nanoseconds
}

// Manager holds every known account and the reference price used for
// price-deviation checks. All methods are safe for concurrent use: a
// risk check can run on the producer thread while UpdatePosition runs on the
// matcher thread after a fill.
type Manager struct {
	mu             sync.Mutex
	accounts       map[string]*account
	referencePrice int64

	totalChecked  uint64
	totalRejected uint64
}

// NewManager constructs an empty Manager with the given reference
// price, used only for price-deviation checks.
func NewManager(referencePrice int64) *Manager {
	return &Manager{accounts: make(map[string]*account), referencePrice: referencePrice}
}

// AddAccount registers accountID with limits, enabled by default.
func (m *Manager) AddAccount(accountID string, limits Limits) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[accountID] = &account{limits: limits, enabled: true}
}

// SetEnabled toggles whether accountID's orders pass pre-trade checks.
func (m *Manager) SetEnabled(accountID string, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[accountID]; ok {
		a.enabled = enabled
	}
}

// SetReferencePrice updates the price used for deviation checks, e.g.
// to the engine's last trade price.
func (m *Manager) SetReferencePrice(price int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.referencePrice = price
}

// CheckNewOrder validates cmd against accountID's limits and the
// current window's order rate. now is the caller's monotonic clock
// reading, injected for deterministic tests.
func (m *Manager) CheckNewOrder(accountID string, cmd core.Command, now int64) Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalChecked++

	a, ok := m.accounts[accountID]
	if !ok {
		m.totalRejected++
		return RejectedUnknownAccount
	}
	if !a.enabled {
		m.totalRejected++
		return RejectedAccountDisabled
	}

	if cmd.Quantity > a.limits.MaxOrderSize {
		m.totalRejected++
		return RejectedOrderSize
	}
	if value := uint64(cmd.Price) * cmd.Quantity; value > a.limits.MaxOrderValue {
		m.totalRejected++
		return RejectedOrderValue
	}

	projected := a.netPosition
	if cmd.Side == core.Buy {
		projected += int64(cmd.Quantity)
	} else {
		projected -= int64(cmd.Quantity)
	}
	if projected > a.limits.MaxPosition || projected < -a.limits.MaxPosition {
		m.totalRejected++
		return RejectedPositionLimit
	}

	if m.referencePrice > 0 && a.limits.MaxPriceDeviation > 0 {
		deviation := float64(cmd.Price-m.referencePrice) / float64(m.referencePrice)
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation > a.limits.MaxPriceDeviation {
			m.totalRejected++
			return RejectedPriceDeviation
		}
	}

	const windowNanos = int64(1_000_000_000)
	if now-a.windowStart > windowNanos {
		a.windowStart = now
		a.ordersInWindow = 0
	}
	a.ordersInWindow++
	if a.ordersInWindow > a.limits.MaxOrdersPerWindow {
		m.totalRejected++
		return RejectedRateLimit
	}

	return Accepted
}

// UpdatePosition applies a fill to accountID's running net position.
// Called by the matcher's hook after a trade, never before the check
// that admitted the order.
func (m *Manager) UpdatePosition(accountID string, side core.Side, quantity uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[accountID]
	if !ok {
		return
	}
	if side == core.Buy {
		a.netPosition += int64(quantity)
	} else {
		a.netPosition -= int64(quantity)
	}
}

// Stats returns the cumulative check/reject counters.
func (m *Manager) Stats() (checked, rejected uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalChecked, m.totalRejected
}
