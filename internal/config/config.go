// Package config resolves construction-time engine parameters from
// flags, environment variables, and an optional .env file. Priority:
// explicit flag > environment variable > .env file > default.
package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config bundles every parameter needed to size and seed one engine
// core.
type Config struct {
	PriceMin       int64
	PriceMax       int64
	MaxOrders      uint64
	RingBufferSize uint64

	RunCommands uint64 // bounded-run harness command count
	Seed        uint64 // 0 means "use the feed generator's fixed default seed"
	CancelRate  float64

	LogPath string // empty means console-only logging

	EnableRisk      bool // run every NEW through the risk.Manager pre-trade check before it is enqueued
	MultiInstrument bool // drive a dispatcher.Cluster of several instruments instead of one bare core
}

// Load parses flags and environment variables into a Config. It calls
// flag.Parse, so it must run at most once per process and before any
// other flag.Var registration the caller needs.
func Load() *Config {
	_ = godotenv.Load() // optional; a missing .env is not an error

	c := &Config{}

	flag.Int64Var(&c.PriceMin, "price-min", envInt64("PRICE_MIN", 0), "lowest tradable price (inclusive)")
	flag.Int64Var(&c.PriceMax, "price-max", envInt64("PRICE_MAX", 10000), "highest tradable price (inclusive)")
	flag.Uint64Var(&c.MaxOrders, "max-orders", envUint64("MAX_ORDERS", 1_000_000), "preallocated order pool capacity")
	flag.Uint64Var(&c.RingBufferSize, "ring-buffer-size", envUint64("RING_BUFFER_SIZE", 1_048_576), "command queue capacity, must be a power of two")

	flag.Uint64Var(&c.RunCommands, "run-commands", envUint64("RUN_COMMANDS", 1_000_000), "number of commands the bounded-run harness submits")
	flag.Uint64Var(&c.Seed, "seed", envUint64("FEED_SEED", 0), "feed generator PRNG seed (0 = generator's fixed default)")
	flag.Float64Var(&c.CancelRate, "cancel-rate", envFloat64("CANCEL_RATE", 0.30), "fraction of generated commands that are CANCELs")

	flag.StringVar(&c.LogPath, "log-path", envStr("LOG_PATH", ""), "also write structured logs to this file (empty = console only)")

	flag.BoolVar(&c.EnableRisk, "enable-risk", envBool("ENABLE_RISK", true), "run every NEW through the pre-trade risk manager before enqueueing")
	flag.BoolVar(&c.MultiInstrument, "multi-instrument", envBool("MULTI_INSTRUMENT", false), "drive a cluster of several instrument cores instead of one")

	flag.Parse()
	return c
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envUint64(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envFloat64(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
