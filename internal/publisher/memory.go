package publisher

import "github.com/arcline/femtobook/internal/core"

// Memory buffers every event in process memory, for tests and for
// short-lived introspection tools that want the full stream without
// standing up a file or console sink.
type Memory struct {
	Trades    []core.Trade
	Levels    []core.LevelUpdate
	Snapshots []core.Snapshot
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) OnTrade(t core.Trade)             { m.Trades = append(m.Trades, t) }
func (m *Memory) OnLevelUpdate(l core.LevelUpdate) { m.Levels = append(m.Levels, l) }
func (m *Memory) OnSnapshot(s core.Snapshot)       { m.Snapshots = append(m.Snapshots, s) }
