package matcher

import (
	"github.com/arcline/femtobook/internal/core"
	"go.uber.org/zap"
)

func zapOrderID(id uint64) zap.Field { return zap.Uint64("order_id", id) }

func zapReason(r core.RejectReason) zap.Field { return zap.String("reason", r.String()) }
