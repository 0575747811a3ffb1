// Package matcher implements the matching kernel: a sequential state
// machine that consumes commands from the queue, drives the arena and
// book, and emits trade/level events through a publisher Hook. It is
// single-threaded by construction — no locks are needed on the arena,
// book, or directory, because exactly one goroutine ever calls Run.
package matcher

import (
	"time"

	"github.com/arcline/femtobook/internal/arena"
	"github.com/arcline/femtobook/internal/book"
	"github.com/arcline/femtobook/internal/core"
	"github.com/arcline/femtobook/internal/queue"
	"go.uber.org/zap"
)

// Stats is a point-in-time snapshot of matcher counters.
type Stats struct {
	OrdersProcessed       uint64
	TradesExecuted        uint64
	OrdersRejected        uint64
	TotalBuyQtyMatched    uint64
	TotalSellQtyMatched   uint64
	RejectedPoolExhausted uint64
	RejectedInvalidInput  uint64
	RejectedFOKLiquidity  uint64
}

// Config bundles the construction-time parameters of a Matcher.
type Config struct {
	PriceMin  int64
	PriceMax  int64
	MaxOrders uint64
	QueueSize uint64
	Hook      Hook
	Logger    *zap.Logger
}

// Matcher owns the Book, OrderArena, OrderDirectory, and the command
// queue's consumer end. It is the sole mutator of all three — that
// thread-confinement, not a lock, is what makes the hot path lock-free.
type Matcher struct {
	book      *book.Book
	arena     *arena.OrderArena
	directory *directory
	queue     *queue.SPSCQueue[core.Command]
	hook      Hook
	logger    *zap.Logger
	now       func() int64 // injectable for deterministic latency tests

	stats     Stats
	latencies []int64
}

// New constructs a Matcher. If cfg.Hook is nil, a NoopHook is used. If
// cfg.Logger is nil, a no-op logger is used.
func New(cfg Config) *Matcher {
	hook := cfg.Hook
	if hook == nil {
		hook = NoopHook{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		book:      book.New(cfg.PriceMin, cfg.PriceMax),
		arena:     arena.New(cfg.MaxOrders),
		directory: newDirectory(cfg.MaxOrders),
		queue:     queue.NewSPSCQueue[core.Command](cfg.QueueSize),
		hook:      hook,
		logger:    logger,
		now:       func() int64 { return time.Now().UnixNano() },
	}
}

// Queue exposes the producer-facing end of the command queue.
func (m *Matcher) Queue() *queue.SPSCQueue[core.Command] { return m.queue }

// Stats returns a copy of the current counters.
func (m *Matcher) Stats() Stats { return m.stats }

// Latencies returns the append-only per-trade latency log, in
// nanoseconds. The caller sorts it offline to compute percentiles (see
// internal/metrics).
func (m *Matcher) Latencies() []int64 { return m.latencies }

// Snapshot returns the current top-N view of the book. It is never
// called from Run's hot loop — callers invoke it on-demand and, if they
// want it published, pass the result to hook.OnSnapshot themselves.
func (m *Matcher) Snapshot(topN int) core.Snapshot {
	bids, asks := m.book.TopN(topN)
	return core.Snapshot{Bids: bids, Asks: asks, Timestamp: m.now()}
}

// Run drains the queue until it has processed exactly n commands, then
// returns. This is the bounded-run harness shutdown condition; Drain
// below implements the alternative shutdown-sentinel condition.
func (m *Matcher) Run(n uint64) {
	var cmd core.Command
	for m.stats.OrdersProcessed < n {
		if !m.queue.Dequeue(&cmd) {
			continue // tight poll, never yields while commands may still arrive
		}
		m.dispatch(cmd)
	}
}

// Drain processes commands until it dequeues a core.Shutdown sentinel,
// then returns.
func (m *Matcher) Drain() {
	var cmd core.Command
	for {
		if !m.queue.Dequeue(&cmd) {
			continue
		}
		if cmd.Type == core.Shutdown {
			return
		}
		m.dispatch(cmd)
	}
}

func (m *Matcher) dispatch(cmd core.Command) {
	start := m.now()
	switch cmd.Type {
	case core.New:
		m.handleNew(cmd, start)
	case core.Cancel:
		m.handleCancel(cmd.OrderID)
	default:
		// Unrecognized command types are dropped.
	}
	m.stats.OrdersProcessed++
}
