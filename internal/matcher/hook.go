package matcher

import "github.com/arcline/femtobook/internal/core"

// Hook is the publisher capability the matcher invokes synchronously on
// every trade and level mutation. OnSnapshot is never called by the
// matcher's hot loop — it exists so a publisher that also wants to serve
// on-demand snapshots has a symmetric surface; callers invoke it
// directly with the result of Matcher.Snapshot.
//
// Implementations must not call back into book-mutating operations: the
// matcher treats the hook as potentially blocking but never re-entrant.
type Hook interface {
	OnTrade(trade core.Trade)
	OnLevelUpdate(update core.LevelUpdate)
	OnSnapshot(snapshot core.Snapshot)
}

// NoopHook implements Hook with no-ops, for callers that only care about
// matcher statistics.
type NoopHook struct{}

func (NoopHook) OnTrade(core.Trade)             {}
func (NoopHook) OnLevelUpdate(core.LevelUpdate) {}
func (NoopHook) OnSnapshot(core.Snapshot)       {}
