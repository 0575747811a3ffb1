// Package dispatcher wires one independent queue+arena+book+matcher
// core per instrument. Each core owns its own goroutine and its own
// command queue; there is no shared engine state and no per-command
// instrument dispatch inside the hot path — routing happens once, at
// the producer, when it picks which core's queue to enqueue onto.
package dispatcher

import (
	"fmt"

	"github.com/arcline/femtobook/internal/core"
	"github.com/arcline/femtobook/internal/matcher"
	"go.uber.org/zap"
)

// InstrumentConfig names one instrument and sizes its core.
type InstrumentConfig struct {
	Symbol         string
	PriceMin       int64
	PriceMax       int64
	MaxOrders      uint64
	RingBufferSize uint64
	Hook           matcher.Hook
}

// Cluster owns one *matcher.Matcher per instrument behind a read-only
// routing map built once at construction. Nothing in the cluster's
// hot path mutates the map after New returns.
type Cluster struct {
	cores  map[string]*matcher.Matcher
	logger *zap.Logger
}

// New builds a Cluster with one core per entry in configs. Duplicate
// symbols are a construction-time error.
func New(configs []InstrumentConfig, logger *zap.Logger) (*Cluster, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cores := make(map[string]*matcher.Matcher, len(configs))
	for _, cfg := range configs {
		if _, exists := cores[cfg.Symbol]; exists {
			return nil, fmt.Errorf("dispatcher: duplicate instrument symbol %q", cfg.Symbol)
		}
		cores[cfg.Symbol] = matcher.New(matcher.Config{
			PriceMin:  cfg.PriceMin,
			PriceMax:  cfg.PriceMax,
			MaxOrders: cfg.MaxOrders,
			QueueSize: cfg.RingBufferSize,
			Hook:      cfg.Hook,
			Logger:    logger.With(zap.String("symbol", cfg.Symbol)),
		})
	}
	return &Cluster{cores: cores, logger: logger}, nil
}

// Submit routes cmd to symbol's queue. It returns false if symbol is
// unknown or that core's queue is momentarily full; the caller decides
// the retry policy.
func (c *Cluster) Submit(symbol string, cmd core.Command) bool {
	m, ok := c.cores[symbol]
	if !ok {
		return false
	}
	return m.Queue().Enqueue(cmd)
}

// Core returns the matcher for symbol, or nil if it is not part of this
// cluster. Callers use this to run each core's consumer goroutine and
// to read its stats.
func (c *Cluster) Core(symbol string) *matcher.Matcher { return c.cores[symbol] }

// Symbols returns every instrument symbol known to the cluster, in no
// particular order.
func (c *Cluster) Symbols() []string {
	out := make([]string, 0, len(c.cores))
	for s := range c.cores {
		out = append(out, s)
	}
	return out
}

// RunAll starts one goroutine per core, each processing exactly
// commandsPerCore commands via matcher.Run, and blocks until every
// goroutine returns.
func (c *Cluster) RunAll(commandsPerCore uint64) {
	done := make(chan struct{}, len(c.cores))
	for _, m := range c.cores {
		m := m
		go func() {
			m.Run(commandsPerCore)
			done <- struct{}{}
		}()
	}
	for i := 0; i < len(c.cores); i++ {
		<-done
	}
}
