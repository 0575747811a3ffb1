// Package book implements the price-indexed order book: two
// direct-mapped arrays of intrusive FIFO price levels plus a cached
// best-bid/best-ask integer per side.
package book

import "github.com/arcline/femtobook/internal/core"

// PriceLevel is a FIFO queue of orders resting at one price. Head is the
// oldest order, Tail the newest; Aggregate is the cached sum of every
// linked order's remaining quantity.
type PriceLevel struct {
	Head      *core.Order
	Tail      *core.Order
	Aggregate uint64
	Count     uint32
}

// Empty reports whether the level holds no orders.
func (l *PriceLevel) Empty() bool { return l.Head == nil }

func (l *PriceLevel) append(o *core.Order) {
	o.Prev = l.Tail
	o.Next = nil
	if l.Tail != nil {
		l.Tail.Next = o
	} else {
		l.Head = o
	}
	l.Tail = o
	l.Aggregate += o.Remaining
	l.Count++
}

func (l *PriceLevel) splice(o *core.Order) {
	if o.Prev != nil {
		o.Prev.Next = o.Next
	} else {
		l.Head = o.Next
	}
	if o.Next != nil {
		o.Next.Prev = o.Prev
	} else {
		l.Tail = o.Prev
	}
	o.Prev = nil
	o.Next = nil
	l.Aggregate -= o.Remaining
	l.Count--
}

// Book is two dense arrays of PriceLevel, one per side, indexed by
// price-PriceMin, plus the cached best_bid/best_ask integers (sentinel -1
// when a side is empty).
type Book struct {
	priceMin int64
	priceMax int64

	bidLevels []PriceLevel
	askLevels []PriceLevel

	bestBid int64
	bestAsk int64
}

// New constructs a Book over the inclusive price range [priceMin,
// priceMax]. The range is fixed at construction time because it sizes
// the direct-mapped book.
func New(priceMin, priceMax int64) *Book {
	levels := int(priceMax-priceMin) + 1
	return &Book{
		priceMin:  priceMin,
		priceMax:  priceMax,
		bidLevels: make([]PriceLevel, levels),
		askLevels: make([]PriceLevel, levels),
		bestBid:   -1,
		bestAsk:   -1,
	}
}

// PriceMin and PriceMax expose the construction-time price domain.
func (b *Book) PriceMin() int64 { return b.priceMin }
func (b *Book) PriceMax() int64 { return b.priceMax }

// InBounds reports whether price falls within [PriceMin, PriceMax].
func (b *Book) InBounds(price int64) bool {
	return price >= b.priceMin && price <= b.priceMax
}

func (b *Book) index(price int64) int { return int(price - b.priceMin) }

// Add appends order to the tail of its side's price level and updates the
// best-side cache if this order strictly improves it.
func (b *Book) Add(order *core.Order) {
	i := b.index(order.Price)
	if order.Side == core.Buy {
		b.bidLevels[i].append(order)
		if order.Price > b.bestBid {
			b.bestBid = order.Price
		}
	} else {
		b.askLevels[i].append(order)
		if b.bestAsk == -1 || order.Price < b.bestAsk {
			b.bestAsk = order.Price
		}
	}
}

// Remove splices order out of its level. If the level empties and it was
// the cached best on that side, the cache is deterministically
// re-established by a linear rescan — never by heuristic.
func (b *Book) Remove(order *core.Order) {
	i := b.index(order.Price)
	if order.Side == core.Buy {
		level := &b.bidLevels[i]
		level.splice(order)
		if level.Empty() && order.Price == b.bestBid {
			b.rescanBestBid()
		}
	} else {
		level := &b.askLevels[i]
		level.splice(order)
		if level.Empty() && order.Price == b.bestAsk {
			b.rescanBestAsk()
		}
	}
}

// Level returns a reference to the level cell for price/side, or nil if
// price is out of bounds.
func (b *Book) Level(price int64, side core.Side) *PriceLevel {
	if !b.InBounds(price) {
		return nil
	}
	i := b.index(price)
	if side == core.Buy {
		return &b.bidLevels[i]
	}
	return &b.askLevels[i]
}

// BestBid returns the cached best bid price, or -1 if no bids rest.
func (b *Book) BestBid() int64 { return b.bestBid }

// BestAsk returns the cached best ask price, or -1 if no asks rest.
func (b *Book) BestAsk() int64 { return b.bestAsk }

func (b *Book) rescanBestBid() {
	for price := b.priceMax; price >= b.priceMin; price-- {
		if !b.bidLevels[b.index(price)].Empty() {
			b.bestBid = price
			return
		}
	}
	b.bestBid = -1
}

func (b *Book) rescanBestAsk() {
	for price := b.priceMin; price <= b.priceMax; price++ {
		if !b.askLevels[b.index(price)].Empty() {
			b.bestAsk = price
			return
		}
	}
	b.bestAsk = -1
}

// TopN returns up to n levels per side for an on-demand snapshot: bids
// descending from best, asks ascending from best. It never runs from the
// matcher's hot loop.
func (b *Book) TopN(n int) (bids, asks []core.LevelEntry) {
	if b.bestBid != -1 {
		for price := b.bestBid; price >= b.priceMin && len(bids) < n; price-- {
			l := &b.bidLevels[b.index(price)]
			if !l.Empty() {
				bids = append(bids, core.LevelEntry{Price: price, Aggregate: l.Aggregate, OrderCount: l.Count})
			}
		}
	}
	if b.bestAsk != -1 {
		for price := b.bestAsk; price <= b.priceMax && len(asks) < n; price++ {
			l := &b.askLevels[b.index(price)]
			if !l.Empty() {
				asks = append(asks, core.LevelEntry{Price: price, Aggregate: l.Aggregate, OrderCount: l.Count})
			}
		}
	}
	return bids, asks
}
