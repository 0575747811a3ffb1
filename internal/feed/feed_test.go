package feed

import (
	"testing"

	"github.com/arcline/femtobook/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() Config {
	return Config{PriceMin: 0, PriceMax: 10000, MaxOrders: 1_000_000, Seed: 12345, CancelRate: 0.30}
}

func TestNewCommandsAreAlwaysInBounds(t *testing.T) {
	g := New(baseConfig())
	for i := 0; i < 10_000; i++ {
		cmd := g.Next(int64(i))
		if cmd.Type == core.New {
			assert.GreaterOrEqual(t, cmd.Price, int64(0))
			assert.LessOrEqual(t, cmd.Price, int64(10000))
			assert.NotZero(t, cmd.Quantity)
		}
	}
}

func TestCancelNeverFiresBeforeAnyOrderSeen(t *testing.T) {
	g := New(Config{PriceMin: 0, PriceMax: 10000, Seed: 1, CancelRate: 1.0})
	cmd := g.Next(0)
	assert.Equal(t, core.New, cmd.Type, "the first command can never be a CANCEL with no recent ids to target")
}

func TestCancelTargetsAPreviouslySeenID(t *testing.T) {
	g := New(Config{PriceMin: 0, PriceMax: 10000, Seed: 7, CancelRate: 0.9})
	seen := make(map[uint64]bool)
	var sawCancel bool
	for i := 0; i < 2000; i++ {
		cmd := g.Next(int64(i))
		if cmd.Type == core.New {
			seen[cmd.OrderID] = true
		} else {
			sawCancel = true
			assert.True(t, seen[cmd.OrderID], "a CANCEL must target an id the generator previously emitted")
		}
	}
	assert.True(t, sawCancel, "a 0.9 cancel rate must eventually produce a CANCEL")
}

func TestSameSeedIsReproducible(t *testing.T) {
	g1 := New(baseConfig())
	g2 := New(baseConfig())
	for i := 0; i < 500; i++ {
		require.Equal(t, g1.Next(int64(i)), g2.Next(int64(i)))
	}
}

func TestZeroSeedUsesFixedDefault(t *testing.T) {
	cfg := baseConfig()
	cfg.Seed = 0
	g1 := New(cfg)
	g2 := New(cfg)
	assert.Equal(t, g1.Next(0), g2.Next(0))
}

func TestOrderIDsAreUniqueAndMonotonic(t *testing.T) {
	g := New(Config{PriceMin: 0, PriceMax: 10000, Seed: 99, CancelRate: 0})
	var last uint64
	for i := 0; i < 1000; i++ {
		cmd := g.Next(int64(i))
		require.Equal(t, core.New, cmd.Type)
		assert.Greater(t, cmd.OrderID, last)
		last = cmd.OrderID
	}
}
