package clientcache

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BarberiaElCorte/barberia-crm/internal/models"
	"github.com/BarberiaElCorte/barberia-crm/internal/realtime"
)

// ======================================================
// OPTIMISTIC CLIENT CACHE
// ======================================================
//
// Lista local de clientes sincronizada contra el feed de
// cambios. Las mutaciones se aplican primero en local y se
// revierten si el remoto falla; los eventos del feed se
// aplican última-escritura-gana.

type Snapshot struct {
	Clients       []models.Client `json:"clients"`
	Loading       bool            `json:"loading"`
	PendingWrites int             `json:"pending_writes"`
	LastError     string          `json:"last_error,omitempty"`
	LastUpdated   time.Time       `json:"last_updated"`
	Feed          realtime.Status `json:"feed"`
}

type Cache struct {
	remote Remote
	feed   *realtime.Subscriber
	logger *zap.Logger

	mu          sync.RWMutex
	clients     []models.Client
	pending     map[uuid.UUID]bool // escrituras optimistas en vuelo
	loading     bool
	lastErr     error
	lastUpdated time.Time
}

func New(remote Remote, feed *realtime.Subscriber, logger *zap.Logger) *Cache {
	return &Cache{
		remote:  remote,
		feed:    feed,
		logger:  logger,
		clients: []models.Client{},
		pending: make(map[uuid.UUID]bool),
	}
}

// Run consume el feed hasta que ctx se cancele.
func (c *Cache) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-c.feed.Events():
			if !ok {
				return
			}
			c.Apply(ev)
		}
	}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

// Warm indica si la caché ya cargó y el feed está vivo;
// solo entonces puede servir lecturas sin ir a la base.
func (c *Cache) Warm() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.lastUpdated.IsZero() && c.feed != nil && c.feed.Status().IsConnected
}

func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Client, len(c.clients))
	copy(out, c.clients)

	snap := Snapshot{
		Clients:       out,
		Loading:       c.loading,
		PendingWrites: len(c.pending),
		LastUpdated:   c.lastUpdated,
	}
	if c.lastErr != nil {
		snap.LastError = c.lastErr.Error()
	}
	if c.feed != nil {
		snap.Feed = c.feed.Status()
	}
	return snap
}

// --------------------------------------------------
// Refresh
// --------------------------------------------------

// Refresh reemplaza el estado local con la lista completa del
// remoto. Si falla, conserva la caché vieja y registra el error.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	clients, err := c.remote.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.lastErr = err
		return err
	}

	c.clients = clients
	sortClients(c.clients)
	c.pending = make(map[uuid.UUID]bool)
	c.lastErr = nil
	c.lastUpdated = time.Now()
	return nil
}

// --------------------------------------------------
// Optimistic mutations
// --------------------------------------------------

// AddOptimistic inserta un registro temporal, pide el insert al
// remoto y cambia el temporal por el confirmado; si el remoto
// falla, retira el temporal y devuelve el error.
func (c *Cache) AddOptimistic(ctx context.Context, client models.Client) (*models.Client, error) {
	temp := client
	temp.ID = uuid.New()
	now := time.Now()
	temp.CreatedAt = now
	temp.UpdatedAt = now

	c.mu.Lock()
	c.clients = append(c.clients, temp)
	sortClients(c.clients)
	c.pending[temp.ID] = true
	c.mu.Unlock()

	confirmed, err := c.remote.Insert(ctx, &client)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(temp.ID)
	delete(c.pending, temp.ID)

	if err != nil {
		c.lastErr = err
		return nil, err
	}

	// temporal fuera, confirmado dentro: un solo lock
	c.upsertLocked(*confirmed)
	c.lastErr = nil
	c.lastUpdated = time.Now()
	return confirmed, nil
}

// UpdateOptimistic aplica el parche en local y lo confirma con el
// remoto; si falla, restaura el registro exacto previo al parche.
func (c *Cache) UpdateOptimistic(ctx context.Context, id uuid.UUID, patch ClientPatch) (*models.Client, error) {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return nil, ErrNotInCache
	}

	previous := c.clients[idx]
	patched := previous
	patch.ApplyTo(&patched)
	patched.UpdatedAt = time.Now()
	c.clients[idx] = patched
	c.pending[id] = true
	c.mu.Unlock()

	confirmed, err := c.remote.Update(ctx, id, patch)

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.pending, id)

	if err != nil {
		if i := c.indexLocked(id); i >= 0 {
			c.clients[i] = previous
		}
		c.lastErr = err
		return nil, err
	}

	c.upsertLocked(*confirmed)
	c.lastErr = nil
	c.lastUpdated = time.Now()
	return confirmed, nil
}

// DeleteOptimistic quita el registro en local y confirma el delete;
// si el remoto falla, lo reinserta.
func (c *Cache) DeleteOptimistic(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotInCache
	}

	removed := c.clients[idx]
	c.removeLocked(id)
	c.pending[id] = true
	c.mu.Unlock()

	err := c.remote.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.pending, id)

	if err != nil {
		c.clients = append(c.clients, removed)
		sortClients(c.clients)
		c.lastErr = err
		return err
	}

	c.lastErr = nil
	c.lastUpdated = time.Now()
	return nil
}

// --------------------------------------------------
// Feed reconciliation (last-write-wins)
// --------------------------------------------------

func (c *Cache) Apply(ev realtime.Event) {
	if ev.Table != realtime.TableClients {
		return
	}

	var client models.Client
	if err := json.Unmarshal(ev.Record, &client); err != nil {
		c.logger.Warn("clientcache: dropping undecodable event",
			zap.String("event_id", ev.ID),
			zap.Error(err),
		)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Type {
	case realtime.EventInsert, realtime.EventUpdate:
		c.upsertLocked(client)
	case realtime.EventDelete:
		c.removeLocked(client.ID)
	}

	c.lastUpdated = time.Now()
}

// --------------------------------------------------
// Internals (caller holds c.mu)
// --------------------------------------------------

func (c *Cache) indexLocked(id uuid.UUID) int {
	for i := range c.clients {
		if c.clients[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Cache) upsertLocked(client models.Client) {
	if idx := c.indexLocked(client.ID); idx >= 0 {
		c.clients[idx] = client
		return
	}
	c.clients = append(c.clients, client)
	sortClients(c.clients)
}

func (c *Cache) removeLocked(id uuid.UUID) {
	if idx := c.indexLocked(id); idx >= 0 {
		c.clients = append(c.clients[:idx], c.clients[idx+1:]...)
	}
}

// el dashboard lista clientes del más nuevo al más viejo
func sortClients(clients []models.Client) {
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].CreatedAt.After(clients[j].CreatedAt)
	})
}
