package matcher

import (
	"github.com/arcline/femtobook/internal/book"
	"github.com/arcline/femtobook/internal/core"
)

// cross walks aggressor's contra side in price-time priority and returns
// the quantity filled during this call. Every trade prices at the
// resting order's level, never the aggressor's.
func (m *Matcher) cross(aggressor *core.Order, start int64) uint64 {
	before := aggressor.Remaining
	if aggressor.Side == core.Buy {
		m.crossAgainstAsks(aggressor, start)
	} else {
		m.crossAgainstBids(aggressor, start)
	}
	return before - aggressor.Remaining
}

func (m *Matcher) crossAgainstAsks(aggressor *core.Order, start int64) {
	for price := m.book.BestAsk(); price != -1 && price <= aggressor.Price && aggressor.Remaining > 0; price++ {
		level := m.book.Level(price, core.Sell)
		if level == nil || level.Empty() {
			continue
		}
		m.matchLevel(level, core.Sell, price, aggressor, start)
		if aggressor.Remaining == 0 {
			return
		}
	}
}

func (m *Matcher) crossAgainstBids(aggressor *core.Order, start int64) {
	for price := m.book.BestBid(); price != -1 && price >= aggressor.Price && aggressor.Remaining > 0; price-- {
		level := m.book.Level(price, core.Buy)
		if level == nil || level.Empty() {
			continue
		}
		m.matchLevel(level, core.Buy, price, aggressor, start)
		if aggressor.Remaining == 0 {
			return
		}
	}
}

// matchLevel matches aggressor against restingSide's FIFO chain at price,
// oldest order first, until either the level empties or the aggressor is
// exhausted, then publishes one level update for the post-mutation state.
func (m *Matcher) matchLevel(level *book.PriceLevel, restingSide core.Side, price int64, aggressor *core.Order, start int64) {
	for level.Head != nil && aggressor.Remaining > 0 {
		resting := level.Head
		q := min(aggressor.Remaining, resting.Remaining)

		m.emitTrade(aggressor, resting, price, q, start)

		aggressor.Remaining -= q
		level.Aggregate -= q
		resting.Remaining -= q
		m.stats.TotalBuyQtyMatched += q
		m.stats.TotalSellQtyMatched += q

		if resting.Remaining == 0 {
			resting.Status = core.Filled
			m.book.Remove(resting)
			m.directory.clear(resting.ID)
			m.arena.Release(resting)
		} else {
			resting.Status = core.PartialFill
		}
	}

	m.publishLevelUpdate(restingSide, price, level)
}

func (m *Matcher) emitTrade(aggressor, resting *core.Order, price int64, qty uint64, start int64) {
	now := m.now()
	m.latencies = append(m.latencies, now-start)
	m.stats.TradesExecuted++

	m.hook.OnTrade(core.Trade{
		AggressorID:   aggressor.ID,
		RestingID:     resting.ID,
		AggressorSide: aggressor.Side,
		Price:         price,
		Quantity:      qty,
		Timestamp:     now,
	})
}

func (m *Matcher) publishLevelUpdate(side core.Side, price int64, level *book.PriceLevel) {
	m.hook.OnLevelUpdate(core.LevelUpdate{
		Side:         side,
		Price:        price,
		AggregateQty: level.Aggregate,
		OrderCount:   level.Count,
		Timestamp:    m.now(),
	})
}

// fillable computes the quantity immediately crossable against order's
// limit, short-circuiting once it reaches order.Remaining. Used by the
// fill-or-kill pre-check; it never mutates book, arena, or directory state.
func (m *Matcher) fillable(order *core.Order) uint64 {
	if order.Side == core.Buy {
		return m.fillableAgainstAsks(order)
	}
	return m.fillableAgainstBids(order)
}

func (m *Matcher) fillableAgainstAsks(order *core.Order) uint64 {
	var total uint64
	for price := m.book.BestAsk(); price != -1 && price <= order.Price; price++ {
		level := m.book.Level(price, core.Sell)
		if level == nil || level.Empty() {
			continue
		}
		total += level.Aggregate
		if total >= order.Remaining {
			return total
		}
	}
	return total
}

func (m *Matcher) fillableAgainstBids(order *core.Order) uint64 {
	var total uint64
	for price := m.book.BestBid(); price != -1 && price >= order.Price; price-- {
		level := m.book.Level(price, core.Buy)
		if level == nil || level.Empty() {
			continue
		}
		total += level.Aggregate
		if total >= order.Remaining {
			return total
		}
	}
	return total
}
