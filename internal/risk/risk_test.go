package risk

import (
	"testing"

	"github.com/arcline/femtobook/internal/core"
	"github.com/stretchr/testify/assert"
)

func newCmd(side core.Side, price int64, qty uint64) core.Command {
	return core.Command{Type: core.New, Side: side, Price: price, Quantity: qty}
}

func TestUnknownAccountRejected(t *testing.T) {
	m := NewManager(100)
	assert.Equal(t, RejectedUnknownAccount, m.CheckNewOrder("acct-1", newCmd(core.Buy, 100, 10), 0))
}

func TestDisabledAccountRejected(t *testing.T) {
	m := NewManager(100)
	m.AddAccount("acct-1", DefaultLimits())
	m.SetEnabled("acct-1", false)
	assert.Equal(t, RejectedAccountDisabled, m.CheckNewOrder("acct-1", newCmd(core.Buy, 100, 10), 0))
}

func TestOrderSizeLimitRejected(t *testing.T) {
	m := NewManager(100)
	m.AddAccount("acct-1", Limits{MaxOrderSize: 50, MaxOrderValue: 1 << 40, MaxPosition: 1 << 40, MaxOrdersPerWindow: 1000})
	assert.Equal(t, RejectedOrderSize, m.CheckNewOrder("acct-1", newCmd(core.Buy, 100, 51), 0))
	assert.Equal(t, Accepted, m.CheckNewOrder("acct-1", newCmd(core.Buy, 100, 50), 0))
}

func TestOrderValueLimitRejected(t *testing.T) {
	m := NewManager(100)
	m.AddAccount("acct-1", Limits{MaxOrderSize: 1000, MaxOrderValue: 500, MaxPosition: 1 << 40, MaxOrdersPerWindow: 1000})
	assert.Equal(t, RejectedOrderValue, m.CheckNewOrder("acct-1", newCmd(core.Buy, 100, 10), 0))
}

func TestPositionLimitAccumulatesAcrossFills(t *testing.T) {
	m := NewManager(0)
	m.AddAccount("acct-1", Limits{MaxOrderSize: 1000, MaxOrderValue: 1 << 40, MaxPosition: 100, MaxOrdersPerWindow: 1000})

	assert.Equal(t, Accepted, m.CheckNewOrder("acct-1", newCmd(core.Buy, 10, 90), 0))
	m.UpdatePosition("acct-1", core.Buy, 90)

	assert.Equal(t, RejectedPositionLimit, m.CheckNewOrder("acct-1", newCmd(core.Buy, 10, 20), 0))
	assert.Equal(t, Accepted, m.CheckNewOrder("acct-1", newCmd(core.Sell, 10, 20), 0))
}

func TestPriceDeviationLimitRejected(t *testing.T) {
	m := NewManager(100)
	m.AddAccount("acct-1", Limits{MaxOrderSize: 1000, MaxOrderValue: 1 << 40, MaxPosition: 1 << 40, MaxOrdersPerWindow: 1000, MaxPriceDeviation: 0.05})
	assert.Equal(t, RejectedPriceDeviation, m.CheckNewOrder("acct-1", newCmd(core.Buy, 120, 1), 0))
	assert.Equal(t, Accepted, m.CheckNewOrder("acct-1", newCmd(core.Buy, 103, 1), 0))
}

func TestRateLimitRejectsBurstWithinWindow(t *testing.T) {
	m := NewManager(0)
	m.AddAccount("acct-1", Limits{MaxOrderSize: 1000, MaxOrderValue: 1 << 40, MaxPosition: 1 << 40, MaxOrdersPerWindow: 2})

	assert.Equal(t, Accepted, m.CheckNewOrder("acct-1", newCmd(core.Buy, 10, 1), 1000))
	assert.Equal(t, Accepted, m.CheckNewOrder("acct-1", newCmd(core.Buy, 10, 1), 1001))
	assert.Equal(t, RejectedRateLimit, m.CheckNewOrder("acct-1", newCmd(core.Buy, 10, 1), 1002))
}

func TestRateLimitResetsAfterWindowElapses(t *testing.T) {
	m := NewManager(0)
	m.AddAccount("acct-1", Limits{MaxOrderSize: 1000, MaxOrderValue: 1 << 40, MaxPosition: 1 << 40, MaxOrdersPerWindow: 1})

	assert.Equal(t, Accepted, m.CheckNewOrder("acct-1", newCmd(core.Buy, 10, 1), 0))
	assert.Equal(t, RejectedRateLimit, m.CheckNewOrder("acct-1", newCmd(core.Buy, 10, 1), 500))
	assert.Equal(t, Accepted, m.CheckNewOrder("acct-1", newCmd(core.Buy, 10, 1), 2_000_000_000))
}

func TestStatsTracksCumulativeChecks(t *testing.T) {
	m := NewManager(0)
	m.AddAccount("acct-1", DefaultLimits())
	m.CheckNewOrder("acct-1", newCmd(core.Buy, 10, 1), 0)
	m.CheckNewOrder("unknown", newCmd(core.Buy, 10, 1), 0)

	checked, rejected := m.Stats()
	assert.Equal(t, uint64(2), checked)
	assert.Equal(t, uint64(1), rejected)
}
