package matcher

import (
	"testing"

	"github.com/arcline/femtobook/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHook captures every event the matcher publishes, for
// assertions in tests that need the trade/level stream rather than just
// counters.
type recordingHook struct {
	trades []core.Trade
	levels []core.LevelUpdate
}

func (h *recordingHook) OnTrade(t core.Trade)             { h.trades = append(h.trades, t) }
func (h *recordingHook) OnLevelUpdate(l core.LevelUpdate) { h.levels = append(h.levels, l) }
func (h *recordingHook) OnSnapshot(core.Snapshot)         {}

func newTestMatcher(hook Hook) *Matcher {
	var tick int64
	clock := func() int64 { tick++; return tick }
	m := New(Config{PriceMin: 0, PriceMax: 1000, MaxOrders: 64, QueueSize: 64, Hook: hook})
	m.now = clock
	return m
}

func send(m *Matcher, cmd core.Command) {
	if !m.queue.Enqueue(cmd) {
		panic("test queue unexpectedly full")
	}
}

func newCmd(id uint64, side core.Side, ot core.OrderType, price int64, qty uint64) core.Command {
	return core.Command{Type: core.New, OrderID: id, Side: side, OrderType: ot, Price: price, Quantity: qty}
}

// scenario S1: a resting limit sell crosses fully against an incoming
// limit buy at the resting order's price.
func TestScenarioSimpleCross(t *testing.T) {
	hook := &recordingHook{}
	m := newTestMatcher(hook)

	send(m, newCmd(1, core.Sell, core.Limit, 100, 10))
	send(m, newCmd(2, core.Buy, core.Limit, 100, 10))
	m.Run(2)

	require.Len(t, hook.trades, 1)
	assert.Equal(t, int64(100), hook.trades[0].Price)
	assert.Equal(t, uint64(10), hook.trades[0].Quantity)
	assert.Equal(t, uint64(2), hook.trades[0].AggressorID)
	assert.Equal(t, uint64(1), hook.trades[0].RestingID)
	assert.Equal(t, int64(-1), m.book.BestBid())
	assert.Equal(t, int64(-1), m.book.BestAsk())
}

// scenario S2: two resting orders at the same price fill in arrival
// order (price-time priority).
func TestScenarioTimePriority(t *testing.T) {
	hook := &recordingHook{}
	m := newTestMatcher(hook)

	send(m, newCmd(1, core.Sell, core.Limit, 100, 5))
	send(m, newCmd(2, core.Sell, core.Limit, 100, 5))
	send(m, newCmd(3, core.Buy, core.Limit, 100, 5))
	m.Run(3)

	require.Len(t, hook.trades, 1)
	assert.Equal(t, uint64(1), hook.trades[0].RestingID, "the order that arrived first must fill first")

	level := m.book.Level(100, core.Sell)
	require.NotNil(t, level)
	assert.Equal(t, uint64(2), level.Head.ID)
}

// scenario S3: a CANCEL on a resting order removes it from the book and
// it no longer participates in matching.
func TestScenarioCancelRemovesFromBook(t *testing.T) {
	hook := &recordingHook{}
	m := newTestMatcher(hook)

	send(m, newCmd(1, core.Buy, core.Limit, 100, 10))
	send(m, core.Command{Type: core.Cancel, OrderID: 1})
	m.Run(2)

	assert.Equal(t, int64(-1), m.book.BestBid())

	send(m, newCmd(2, core.Sell, core.Limit, 100, 10))
	m.Run(3)
	assert.Empty(t, hook.trades, "a cancelled order must not be matchable")
}

// scenario S4: an IOC order fills what it can and the remainder is
// discarded rather than booked.
func TestScenarioIOCPartialFillDiscardsRemainder(t *testing.T) {
	hook := &recordingHook{}
	m := newTestMatcher(hook)

	send(m, newCmd(1, core.Sell, core.Limit, 100, 4))
	send(m, newCmd(2, core.Buy, core.IOC, 100, 10))
	m.Run(2)

	require.Len(t, hook.trades, 1)
	assert.Equal(t, uint64(4), hook.trades[0].Quantity)
	assert.Equal(t, int64(-1), m.book.BestBid(), "unfilled IOC remainder must never be booked")
	assert.Nil(t, m.directory.get(2))
}

// scenario S5: a FOK order with insufficient resting liquidity is
// rejected outright and books nothing.
func TestScenarioFOKInfeasibleRejects(t *testing.T) {
	hook := &recordingHook{}
	m := newTestMatcher(hook)

	send(m, newCmd(1, core.Sell, core.Limit, 100, 4))
	send(m, newCmd(2, core.Buy, core.FOK, 100, 10))
	m.Run(2)

	assert.Empty(t, hook.trades, "an infeasible FOK must not produce any partial trade")
	level := m.book.Level(100, core.Sell)
	require.NotNil(t, level)
	assert.Equal(t, uint64(4), level.Aggregate, "the resting order must be untouched")
	assert.Equal(t, uint64(1), m.stats.RejectedFOKLiquidity)
}

// scenario S6: a FOK order that is feasible only by crossing multiple
// price levels fills completely in one atomic step.
func TestScenarioFOKFeasibleAcrossLevels(t *testing.T) {
	hook := &recordingHook{}
	m := newTestMatcher(hook)

	send(m, newCmd(1, core.Sell, core.Limit, 100, 4))
	send(m, newCmd(2, core.Sell, core.Limit, 101, 6))
	send(m, newCmd(3, core.Buy, core.FOK, 101, 10))
	m.Run(3)

	require.Len(t, hook.trades, 2)
	var total uint64
	for _, tr := range hook.trades {
		total += tr.Quantity
	}
	assert.Equal(t, uint64(10), total)
	assert.Equal(t, int64(-1), m.book.BestAsk(), "both resting levels must be fully consumed")
}

func TestRejectOutOfBoundsPrice(t *testing.T) {
	hook := &recordingHook{}
	m := newTestMatcher(hook)

	send(m, newCmd(1, core.Buy, core.Limit, 5000, 10))
	m.Run(1)

	assert.Equal(t, uint64(1), m.stats.RejectedInvalidInput)
	assert.Nil(t, m.directory.get(1))
}

func TestRejectZeroQuantity(t *testing.T) {
	hook := &recordingHook{}
	m := newTestMatcher(hook)

	send(m, newCmd(1, core.Buy, core.Limit, 100, 0))
	m.Run(1)

	assert.Equal(t, uint64(1), m.stats.RejectedInvalidInput)
}

func TestPoolExhaustionRejectsFurtherOrders(t *testing.T) {
	hook := &recordingHook{}
	m := New(Config{PriceMin: 0, PriceMax: 1000, MaxOrders: 2, QueueSize: 64, Hook: hook})
	m.now = func() int64 { return 1 }

	send(m, newCmd(1, core.Buy, core.Limit, 10, 1))
	send(m, newCmd(2, core.Buy, core.Limit, 11, 1))
	send(m, newCmd(3, core.Buy, core.Limit, 12, 1))
	m.Run(3)

	assert.Equal(t, uint64(1), m.stats.RejectedPoolExhausted)
}

func TestDrainStopsAtShutdownSentinel(t *testing.T) {
	hook := &recordingHook{}
	m := newTestMatcher(hook)

	send(m, newCmd(1, core.Buy, core.Limit, 10, 1))
	send(m, core.Command{Type: core.Shutdown})
	m.Drain()

	assert.Equal(t, uint64(1), m.stats.OrdersProcessed)
}

func TestUnknownCancelIsNoop(t *testing.T) {
	hook := &recordingHook{}
	m := newTestMatcher(hook)

	send(m, core.Command{Type: core.Cancel, OrderID: 999})
	m.Run(1)

	assert.Equal(t, uint64(1), m.stats.OrdersProcessed)
}
