package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BarberiaElCorte/barberia-crm/internal/clientcache"
)

type RealtimeHandler struct {
	cache *clientcache.Cache
}

func NewRealtimeHandler(cache *clientcache.Cache) *RealtimeHandler {
	return &RealtimeHandler{cache: cache}
}

// Status expone el estado de la suscripción al feed y de la
// caché de clientes; el dashboard lo usa para el banner de
// "sin conexión".
func (h *RealtimeHandler) Status(c *gin.Context) {
	snap := h.cache.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"feed":           snap.Feed,
		"last_updated":   snap.LastUpdated,
		"last_error":     snap.LastError,
		"cached":         len(snap.Clients),
		"pending_writes": snap.PendingWrites,
	})
}
