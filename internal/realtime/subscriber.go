package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const healthCheckEvery = 60 * time.Second

// ======================================================
// SUBSCRIBER
// ======================================================
//
// Suscripción al feed de cambios con reconexión:
//
//	disconnected → connecting → subscribed
//	subscribed → (error/closed) → reconnecting → subscribed
//
// Después de MaxAttempts reintentos fallidos queda offline;
// un health-check cada 60s reanuda si redis vuelve a responder.
type Subscriber struct {
	rdb    *redis.Client
	tables []string
	logger *zap.Logger

	events chan Event

	mu     sync.RWMutex
	status Status
}

func NewSubscriber(rdb *redis.Client, logger *zap.Logger, tables ...string) *Subscriber {
	return &Subscriber{
		rdb:    rdb,
		tables: tables,
		logger: logger,
		events: make(chan Event, 256),
	}
}

// Events entrega los eventos decodificados del feed.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

func (s *Subscriber) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Run bloquea hasta que ctx se cancele.
func (s *Subscriber) Run(ctx context.Context) {
	defer close(s.events)

	var retry Retry

	for {
		if ctx.Err() != nil {
			return
		}

		err := s.consume(ctx)
		if ctx.Err() != nil {
			return
		}

		s.logger.Warn("realtime: subscription lost",
			zap.Int("attempt", retry.Attempts()+1),
			zap.Error(err),
		)

		delay, ok := retry.Next()
		if !ok {
			s.setOffline(err, retry.Attempts())
			s.logger.Error("realtime: gave up after max attempts, entering offline mode",
				zap.Int("attempts", retry.Attempts()),
			)

			if !s.waitUntilHealthy(ctx) {
				return
			}

			// redis responde de nuevo: presupuesto de reintentos limpio
			retry.Reset()
			continue
		}

		s.setReconnecting(err, retry.Attempts())

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// consume mantiene una suscripción viva y retorna el error que la tiró.
func (s *Subscriber) consume(ctx context.Context) error {
	channels := make([]string, 0, len(s.tables))
	for _, t := range s.tables {
		channels = append(channels, Channel(t))
	}

	ps := s.rdb.Subscribe(ctx, channels...)
	defer ps.Close()

	// confirmación de la suscripción
	if _, err := ps.Receive(ctx); err != nil {
		return err
	}

	s.setSubscribed()
	s.logger.Info("realtime: subscribed", zap.Strings("channels", channels))

	for {
		msg, err := ps.ReceiveMessage(ctx)
		if err != nil {
			return err
		}

		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			s.logger.Warn("realtime: dropping malformed event", zap.Error(err))
			continue
		}

		select {
		case s.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// waitUntilHealthy hace PING cada 60s mientras estamos offline.
func (s *Subscriber) waitUntilHealthy(ctx context.Context) bool {
	ticker := time.NewTicker(healthCheckEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if err := s.rdb.Ping(ctx).Err(); err == nil {
				s.logger.Info("realtime: redis reachable again, resuming subscription")
				return true
			}
		}
	}
}

// --------------------------------------------------
// Status transitions
// --------------------------------------------------

func (s *Subscriber) setSubscribed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = Status{IsConnected: true}
}

func (s *Subscriber) setReconnecting(err error, attempts int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = Status{
		IsReconnecting:     true,
		ConnectionAttempts: attempts,
		LastError:          errString(err),
	}
}

func (s *Subscriber) setOffline(err error, attempts int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = Status{
		ConnectionAttempts: attempts,
		LastError:          errString(err),
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
