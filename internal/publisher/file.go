package publisher

import (
	"encoding/json"
	"os"

	"github.com/arcline/femtobook/internal/core"
	"go.uber.org/zap"
)

// File records every trade and level update as a newline-delimited JSON
// record, for offline replay or audit. Write errors are logged, not
// returned — a publisher must never block or panic the matcher's hot
// path.
type File struct {
	enc    *json.Encoder
	file   *os.File
	logger *zap.Logger
}

type fileRecord struct {
	Kind  string            `json:"kind"`
	Trade *core.Trade       `json:"trade,omitempty"`
	Level *core.LevelUpdate `json:"level,omitempty"`
	Snap  *core.Snapshot    `json:"snapshot,omitempty"`
}

// NewFile opens path for append and returns a File publisher writing
// to it. The caller owns the lifetime and must call Close.
func NewFile(path string, logger *zap.Logger) (*File, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &File{enc: json.NewEncoder(f), file: f, logger: logger}, nil
}

func (p *File) Close() error { return p.file.Close() }

func (p *File) OnTrade(t core.Trade) {
	if err := p.enc.Encode(fileRecord{Kind: "trade", Trade: &t}); err != nil {
		p.logger.Warn("publisher: failed to write trade record", zap.Error(err))
	}
}

func (p *File) OnLevelUpdate(l core.LevelUpdate) {
	if err := p.enc.Encode(fileRecord{Kind: "level", Level: &l}); err != nil {
		p.logger.Warn("publisher: failed to write level record", zap.Error(err))
	}
}

func (p *File) OnSnapshot(s core.Snapshot) {
	if err := p.enc.Encode(fileRecord{Kind: "snapshot", Snap: &s}); err != nil {
		p.logger.Warn("publisher: failed to write snapshot record", zap.Error(err))
	}
}
