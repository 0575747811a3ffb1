package publisher

import "github.com/arcline/femtobook/internal/core"

// Hook mirrors matcher.Hook without importing the matcher package, so
// publisher stays a leaf dependency of core alone.
type Hook interface {
	OnTrade(core.Trade)
	OnLevelUpdate(core.LevelUpdate)
	OnSnapshot(core.Snapshot)
}

// Multi fans a single matcher callback out to every wrapped Hook, in
// registration order. A panicking or slow sink delays every sink after
// it — callers that need isolation should wrap a sink in their own
// buffering before registering it here.
type Multi struct {
	sinks []Hook
}

func NewMulti(sinks ...Hook) *Multi { return &Multi{sinks: sinks} }

func (m *Multi) OnTrade(t core.Trade) {
	for _, s := range m.sinks {
		s.OnTrade(t)
	}
}

func (m *Multi) OnLevelUpdate(l core.LevelUpdate) {
	for _, s := range m.sinks {
		s.OnLevelUpdate(l)
	}
}

func (m *Multi) OnSnapshot(s core.Snapshot) {
	for _, sink := range m.sinks {
		sink.OnSnapshot(s)
	}
}
