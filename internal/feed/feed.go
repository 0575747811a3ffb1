// Package feed generates randomized NEW/CANCEL command traffic for
// driving the matcher in benchmarks and soak tests: passive orders away
// from the mid, aggressive orders that cross the spread, and
// cancellations of recently-seen order ids.
package feed

import "github.com/arcline/femtobook/internal/core"

// recentWindow bounds how many recently-submitted order ids a
// Generator remembers for CANCEL targeting, via a fixed-size ring.
const recentWindow = 4096

// Config parameterizes a Generator.
type Config struct {
	PriceMin   int64
	PriceMax   int64
	MaxOrders  uint64
	Seed       uint64
	CancelRate float64 // fraction of generated commands that are CANCELs, in [0,1]
}

// Generator produces a deterministic pseudorandom stream of commands
// given a fixed seed. It is single-threaded: exactly one producer
// goroutine should ever call Next.
type Generator struct {
	cfg Config
	rng uint64

	mid        int64
	nextID     uint64
	generated  uint64
	recentIDs  [recentWindow]uint64
	recentHead int
	recentLen  int
}

// New constructs a Generator. A zero seed is replaced by a fixed
// default so Generators are reproducible unless the caller explicitly
// wants entropy from the clock.
func New(cfg Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15 // fixed default, reproducible across runs
	}
	return &Generator{
		cfg: cfg,
		rng: seed,
		mid: (cfg.PriceMin + cfg.PriceMax) / 2,
	}
}

// fastRand is a xorshift64 PRNG: cheap enough to call once per
// generated command without dominating producer-side latency.
func (g *Generator) fastRand() uint64 {
	g.rng ^= g.rng << 13
	g.rng ^= g.rng >> 7
	g.rng ^= g.rng << 17
	return g.rng
}

func (g *Generator) uniformInt64(lo, hi int64) int64 {
	span := uint64(hi - lo + 1)
	return lo + int64(g.fastRand()%span)
}

func (g *Generator) uniformFloat() float64 {
	return float64(g.fastRand()%1_000_000) / 1_000_000.0
}

// Next produces one command. producerTimestamp is supplied by the
// caller so the Generator stays free of a wall-clock dependency.
func (g *Generator) Next(producerTimestamp int64) core.Command {
	g.generated++

	action := g.uniformFloat()
	wantCancel := action >= (1 - g.cfg.CancelRate)
	if wantCancel && g.recentLen > 0 {
		return core.Command{
			Type:              core.Cancel,
			OrderID:           g.pickRecentID(),
			ProducerTimestamp: producerTimestamp,
		}
	}

	g.nextID++
	id := g.nextID
	g.rememberID(id)

	side := core.Buy
	if g.fastRand()%2 == 1 {
		side = core.Sell
	}
	quantity := uint64(g.uniformInt64(1, 1000))

	var price int64
	if g.uniformFloat() < 0.70 { // passive: rest away from mid, avoid immediate crossing
		offset := g.uniformInt64(1, 50)
		if side == core.Buy {
			price = g.mid - offset
		} else {
			price = g.mid + offset
		}
	} else { // aggressive: cross the spread
		offset := g.uniformInt64(0, 20)
		if side == core.Buy {
			price = g.mid + offset
		} else {
			price = g.mid - offset
		}
	}
	price = clamp(price, g.cfg.PriceMin, g.cfg.PriceMax)

	orderType := core.Limit
	switch g.fastRand() % 10 {
	case 0, 1:
		orderType = core.IOC
	case 2:
		orderType = core.FOK
	}

	if g.generated%10_000 == 0 {
		g.walkMid()
	}

	return core.Command{
		Type:              core.New,
		OrderID:           id,
		Side:              side,
		OrderType:         orderType,
		Price:             price,
		Quantity:          quantity,
		ProducerTimestamp: producerTimestamp,
	}
}

func (g *Generator) rememberID(id uint64) {
	g.recentIDs[g.recentHead] = id
	g.recentHead = (g.recentHead + 1) % recentWindow
	if g.recentLen < recentWindow {
		g.recentLen++
	}
}

func (g *Generator) pickRecentID() uint64 {
	idx := int(g.fastRand() % uint64(g.recentLen))
	return g.recentIDs[idx]
}

func (g *Generator) walkMid() {
	step := int64(g.fastRand()%21) - 10 // +-10 random walk
	g.mid = clamp(g.mid+step, g.cfg.PriceMin+100, g.cfg.PriceMax-100)
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
