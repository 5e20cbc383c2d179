package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/BarberiaElCorte/barberia-crm/internal/config"
	"github.com/BarberiaElCorte/barberia-crm/internal/middleware"
	"github.com/BarberiaElCorte/barberia-crm/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// el dashboard corre en otro origen; CORS ya filtra el resto
		return true
	},
}

type WSHandler struct {
	hub    *ws.Hub
	cfg    *config.Config
	logger *zap.Logger
}

func NewWSHandler(hub *ws.Hub, cfg *config.Config, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:    hub,
		cfg:    cfg,
		logger: logger,
	}
}

// HandleConnection autentica por token de query (los navegadores
// no mandan headers en la conexión websocket) y registra la
// conexión en el hub.
func (h *WSHandler) HandleConnection(c *gin.Context) {
	token := h.extractToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
		return
	}

	userID, _, err := middleware.ParseToken(h.cfg, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("ws: upgrade failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		return
	}

	wsConn := ws.NewConn(h.hub, conn)
	if !h.hub.Register(wsConn) {
		conn.Close()
		return
	}

	h.logger.Info("ws: dashboard connected",
		zap.Uint("user_id", userID),
		zap.String("ip", c.ClientIP()),
	)

	go wsConn.WritePump()
	go wsConn.ReadPump()
}

func (h *WSHandler) extractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return ""
}
