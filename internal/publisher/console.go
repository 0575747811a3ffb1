// Package publisher implements matcher.Hook for console output, file
// recording, in-memory capture, and fan-out across several of those at
// once.
package publisher

import (
	"fmt"

	"github.com/arcline/femtobook/internal/core"
)

// Console writes every trade, and every level update when Verbose is
// set, to a zap-less, plain stdout stream. It exists for interactive runs of cmd/femtobook where
// structured JSON logging is too noisy to eyeball.
type Console struct {
	Verbose bool
}

func (c Console) OnTrade(t core.Trade) {
	fmt.Printf("TRADE  price=%d qty=%d aggressor=%d(%s) resting=%d\n",
		t.Price, t.Quantity, t.AggressorID, t.AggressorSide, t.RestingID)
}

func (c Console) OnLevelUpdate(l core.LevelUpdate) {
	if !c.Verbose {
		return
	}
	fmt.Printf("LEVEL  side=%s price=%d qty=%d orders=%d\n",
		l.Side, l.Price, l.AggregateQty, l.OrderCount)
}

func (c Console) OnSnapshot(s core.Snapshot) {
	fmt.Printf("SNAPSHOT bids=%d asks=%d ts=%d\n", len(s.Bids), len(s.Asks), s.Timestamp)
}
