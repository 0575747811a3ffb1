// Command femtobook runs a single-instrument matching engine core
// against a synthetic order flow generator and reports latency and
// throughput statistics when the run completes. With -multi-instrument
// it instead drives a dispatcher.Cluster of several independent cores.
package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/arcline/femtobook/internal/config"
	"github.com/arcline/femtobook/internal/core"
	"github.com/arcline/femtobook/internal/dispatcher"
	"github.com/arcline/femtobook/internal/feed"
	"github.com/arcline/femtobook/internal/logging"
	"github.com/arcline/femtobook/internal/matcher"
	"github.com/arcline/femtobook/internal/metrics"
	"github.com/arcline/femtobook/internal/publisher"
	"github.com/arcline/femtobook/internal/risk"
	"go.uber.org/zap"
)

// defaultAccount is the single trading account attributed to all
// feed-generated traffic in this harness; a real deployment would
// derive the account id from the command's originating session.
const defaultAccount = "default"

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.MultiInstrument {
		runCluster(cfg, logger)
		return
	}
	runSingle(cfg, logger)
}

// runSingle drives one engine core, optionally gating every NEW through
// a risk.Manager pre-trade check before it reaches the queue.
func runSingle(cfg *config.Config, logger *zap.Logger) {
	hook := publisher.NewMulti(publisher.Console{}, publisher.NewMemory())

	var riskMgr *risk.Manager
	if cfg.EnableRisk {
		riskMgr = risk.NewManager((cfg.PriceMin + cfg.PriceMax) / 2)
		riskMgr.AddAccount(defaultAccount, risk.DefaultLimits())
	}

	m := matcher.New(matcher.Config{
		PriceMin:  cfg.PriceMin,
		PriceMax:  cfg.PriceMax,
		MaxOrders: cfg.MaxOrders,
		QueueSize: cfg.RingBufferSize,
		Hook:      riskAwareHook{inner: hook, risk: riskMgr},
		Logger:    logger,
	})

	generator := feed.New(feed.Config{
		PriceMin:   cfg.PriceMin,
		PriceMax:   cfg.PriceMax,
		MaxOrders:  cfg.MaxOrders,
		Seed:       cfg.Seed,
		CancelRate: cfg.CancelRate,
	})

	logger.Info("starting run",
		zap.Uint64("run_commands", cfg.RunCommands),
		zap.Int64("price_min", cfg.PriceMin),
		zap.Int64("price_max", cfg.PriceMax),
		zap.Uint64("max_orders", cfg.MaxOrders),
		zap.Uint64("ring_buffer_size", cfg.RingBufferSize),
		zap.Bool("risk_enabled", cfg.EnableRisk),
	)

	start := time.Now()

	go func() {
		queue := m.Queue()
		var enqueued uint64
		for enqueued < cfg.RunCommands {
			cmd := generator.Next(time.Now().UnixNano())
			if riskMgr != nil && cmd.Type == core.New {
				if result := riskMgr.CheckNewOrder(defaultAccount, cmd, cmd.ProducerTimestamp); result != risk.Accepted {
					logger.Debug("risk check rejected NEW, not enqueued",
						zap.Uint64("order_id", cmd.OrderID), zap.String("result", result.String()))
					continue // generate a replacement so exactly RunCommands reach the matcher
				}
			}
			for !queue.Enqueue(cmd) {
				// ring full: cooperative yield per spec's default producer policy
				runtime.Gosched()
			}
			enqueued++
		}
	}()

	m.Run(cfg.RunCommands)
	elapsed := time.Since(start)

	stats := m.Stats()
	p := metrics.Compute(m.Latencies())

	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Uint64("orders_processed", stats.OrdersProcessed),
		zap.Uint64("trades_executed", stats.TradesExecuted),
		zap.Uint64("orders_rejected", stats.OrdersRejected),
		zap.Int64("latency_p50_ns", p.P50),
		zap.Int64("latency_p95_ns", p.P95),
		zap.Int64("latency_p99_ns", p.P99),
	}
	if riskMgr != nil {
		checked, rejected := riskMgr.Stats()
		fields = append(fields, zap.Uint64("risk_checked", checked), zap.Uint64("risk_rejected", rejected))
	}
	logger.Info("run complete", fields...)

	fmt.Printf("%d commands in %v (%.0f ns/op)\n", cfg.RunCommands, elapsed,
		float64(elapsed.Nanoseconds())/float64(cfg.RunCommands))
	fmt.Printf("trades=%d rejected=%d p50=%dns p95=%dns p99=%dns\n",
		stats.TradesExecuted, stats.OrdersRejected, p.P50, p.P95, p.P99)
}

// runCluster drives a dispatcher.Cluster of several independent
// instrument cores, one producer goroutine and one matcher goroutine
// per instrument, demonstrating the "instantiate N cores" deployment
// model spec.md §9 prescribes instead of per-command instrument
// dispatch inside a single core.
func runCluster(cfg *config.Config, logger *zap.Logger) {
	symbols := []string{"ALPHA", "BETA", "GAMMA"}

	configs := make([]dispatcher.InstrumentConfig, 0, len(symbols))
	for _, sym := range symbols {
		configs = append(configs, dispatcher.InstrumentConfig{
			Symbol:         sym,
			PriceMin:       cfg.PriceMin,
			PriceMax:       cfg.PriceMax,
			MaxOrders:      cfg.MaxOrders / uint64(len(symbols)),
			RingBufferSize: cfg.RingBufferSize,
			Hook:           publisher.NewMemory(),
		})
	}

	cluster, err := dispatcher.New(configs, logger)
	if err != nil {
		panic(err)
	}

	commandsPerCore := cfg.RunCommands / uint64(len(symbols))
	logger.Info("starting multi-instrument run",
		zap.Strings("symbols", symbols),
		zap.Uint64("commands_per_core", commandsPerCore),
	)

	start := time.Now()

	for i, sym := range symbols {
		sym := sym
		generator := feed.New(feed.Config{
			PriceMin:   cfg.PriceMin,
			PriceMax:   cfg.PriceMax,
			MaxOrders:  cfg.MaxOrders,
			Seed:       cfg.Seed + uint64(i) + 1, // distinct stream per instrument
			CancelRate: cfg.CancelRate,
		})
		go func() {
			var submitted uint64
			for submitted < commandsPerCore {
				cmd := generator.Next(time.Now().UnixNano())
				for !cluster.Submit(sym, cmd) {
					runtime.Gosched()
				}
				submitted++
			}
		}()
	}

	cluster.RunAll(commandsPerCore)
	elapsed := time.Since(start)

	for _, sym := range symbols {
		stats := cluster.Core(sym).Stats()
		fmt.Printf("%-6s trades=%d rejected=%d processed=%d\n",
			sym, stats.TradesExecuted, stats.OrdersRejected, stats.OrdersProcessed)
	}
	fmt.Printf("%d instruments, %d commands each in %v\n", len(symbols), commandsPerCore, elapsed)
}

// riskAwareHook wraps a matcher.Hook so that every executed trade also
// updates the submitting account's running position in the risk
// manager, keeping CheckNewOrder's position-limit check current
// without the matcher importing the risk package itself.
type riskAwareHook struct {
	inner matcher.Hook
	risk  *risk.Manager
}

func (h riskAwareHook) OnTrade(t core.Trade) {
	h.inner.OnTrade(t)
	if h.risk != nil {
		h.risk.UpdatePosition(defaultAccount, t.AggressorSide, t.Quantity)
	}
}

func (h riskAwareHook) OnLevelUpdate(l core.LevelUpdate) { h.inner.OnLevelUpdate(l) }
func (h riskAwareHook) OnSnapshot(s core.Snapshot)       { h.inner.OnSnapshot(s) }
