package dispatcher

import (
	"testing"

	"github.com/arcline/femtobook/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoInstrumentConfigs() []InstrumentConfig {
	return []InstrumentConfig{
		{Symbol: "AAPL", PriceMin: 0, PriceMax: 1000, MaxOrders: 64, RingBufferSize: 64},
		{Symbol: "MSFT", PriceMin: 0, PriceMax: 1000, MaxOrders: 64, RingBufferSize: 64},
	}
}

func TestDuplicateSymbolIsConstructionError(t *testing.T) {
	_, err := New([]InstrumentConfig{
		{Symbol: "AAPL", PriceMin: 0, PriceMax: 100, MaxOrders: 8, RingBufferSize: 8},
		{Symbol: "AAPL", PriceMin: 0, PriceMax: 100, MaxOrders: 8, RingBufferSize: 8},
	}, nil)
	require.Error(t, err)
}

func TestSubmitRoutesToTheNamedCore(t *testing.T) {
	c, err := New(twoInstrumentConfigs(), nil)
	require.NoError(t, err)

	assert.True(t, c.Submit("AAPL", core.Command{Type: core.New, OrderID: 1, Side: core.Buy, Price: 10, Quantity: 1}))
	assert.Equal(t, uint64(1), c.Core("AAPL").Queue().Len())
	assert.Equal(t, uint64(0), c.Core("MSFT").Queue().Len())
}

func TestSubmitToUnknownSymbolFails(t *testing.T) {
	c, err := New(twoInstrumentConfigs(), nil)
	require.NoError(t, err)
	assert.False(t, c.Submit("GOOG", core.Command{Type: core.New}))
}

func TestCoresAreIndependent(t *testing.T) {
	c, err := New(twoInstrumentConfigs(), nil)
	require.NoError(t, err)

	c.Submit("AAPL", core.Command{Type: core.New, OrderID: 1, Side: core.Buy, Price: 10, Quantity: 1})
	c.Submit("MSFT", core.Command{Type: core.New, OrderID: 1, Side: core.Sell, Price: 20, Quantity: 1})
	c.RunAll(1)

	assert.Equal(t, int64(10), c.Core("AAPL").Snapshot(1).Bids[0].Price)
	assert.Equal(t, int64(20), c.Core("MSFT").Snapshot(1).Asks[0].Price)
}

func TestSymbolsReturnsEveryInstrument(t *testing.T) {
	c, err := New(twoInstrumentConfigs(), nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, c.Symbols())
}
