package realtime

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Publisher empuja eventos de cambio al canal redis de cada tabla.
// Publish nunca hace fallar la mutación que lo origina.
type Publisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewPublisher(rdb *redis.Client, logger *zap.Logger) *Publisher {
	return &Publisher{rdb: rdb, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, typ EventType, table string, record any) {
	ev, err := NewEvent(typ, table, record)
	if err != nil {
		p.logger.Error("realtime: failed to encode event",
			zap.String("table", table),
			zap.Error(err),
		)
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("realtime: failed to encode event envelope", zap.Error(err))
		return
	}

	if err := p.rdb.Publish(ctx, Channel(table), payload).Err(); err != nil {
		p.logger.Warn("realtime: publish failed",
			zap.String("channel", Channel(table)),
			zap.Error(err),
		)
	}
}
