package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barberia-crm/internal/assistant"
	"github.com/BarberiaElCorte/barberia-crm/internal/audit"
	"github.com/BarberiaElCorte/barberia-crm/internal/clientcache"
	"github.com/BarberiaElCorte/barberia-crm/internal/config"
	"github.com/BarberiaElCorte/barberia-crm/internal/handlers"
	infraRepo "github.com/BarberiaElCorte/barberia-crm/internal/infra/repository"
	"github.com/BarberiaElCorte/barberia-crm/internal/middleware"
	"github.com/BarberiaElCorte/barberia-crm/internal/realtime"
	ucClient "github.com/BarberiaElCorte/barberia-crm/internal/usecase/client"
	ucService "github.com/BarberiaElCorte/barberia-crm/internal/usecase/service"
	"github.com/BarberiaElCorte/barberia-crm/internal/ws"
)

// Deps agrupa la infraestructura compartida que main ya construyó.
type Deps struct {
	DB        *gorm.DB
	Logger    *zap.Logger
	Cache     *clientcache.Cache
	Feed      *realtime.Publisher
	Hub       *ws.Hub
	Assistant *assistant.Assistant
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	clientRepo := infraRepo.NewClientGormRepository(deps.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(deps.DB)

	auditLogger := audit.New(deps.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, deps.Logger)

	// ======================================================
	// USE CASES — CLIENTS
	// ======================================================
	createClientUC := ucClient.NewCreateClient(
		deps.Cache,
		clientRepo,
		deps.Feed,
		auditDispatcher,
	)

	updateClientUC := ucClient.NewUpdateClient(
		deps.Cache,
		clientRepo,
		clientRepo,
		deps.Feed,
		auditDispatcher,
	)

	deleteClientUC := ucClient.NewDeleteClient(
		deps.Cache,
		clientRepo,
		clientRepo,
		deps.Feed,
		auditDispatcher,
	)

	listClientsUC := ucClient.NewListClients(
		deps.Cache,
		clientRepo,
	)

	// ======================================================
	// USE CASES — SERVICES
	// ======================================================
	createServiceUC := ucService.NewCreateService(
		serviceRepo,
		clientRepo,
		deps.Feed,
		auditDispatcher,
	)

	updateServiceUC := ucService.NewUpdateService(
		serviceRepo,
		deps.Feed,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(deps.DB, cfg)
	meHandler := handlers.NewMeHandler(deps.DB)

	clientHandler := handlers.NewClientHandler(
		createClientUC,
		updateClientUC,
		deleteClientUC,
		listClientsUC,
	)

	serviceHandler := handlers.NewServiceHandler(
		serviceRepo,
		createServiceUC,
		updateServiceUC,
		cfg.Timezone,
	)

	statsHandler := handlers.NewStatsHandler(serviceRepo, clientRepo, cfg.Timezone)
	assistantHandler := handlers.NewAssistantHandler(deps.Assistant, serviceRepo)
	realtimeHandler := handlers.NewRealtimeHandler(deps.Cache)
	wsHandler := handlers.NewWSHandler(deps.Hub, cfg, deps.Logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)

	// ======================================================
	// WEBSOCKET (token por query)
	// ======================================================
	r.GET("/ws", wsHandler.HandleConnection)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.DELETE("/me/clients/:id", clientHandler.Delete)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			// ------------------------------
			// STATS
			// ------------------------------
			secured.GET("/me/stats/revenue", statsHandler.Revenue)
			secured.GET("/me/stats/weekday", statsHandler.Weekday)
			secured.GET("/me/stats/hours", statsHandler.Hours)
			secured.GET("/me/stats/service-types", statsHandler.ServiceTypes)
			secured.GET("/me/stats/clients", statsHandler.Clients)

			// ------------------------------
			// ASSISTANT / REALTIME / AUDIT
			// ------------------------------
			secured.POST("/me/assistant", assistantHandler.Ask)
			secured.GET("/me/realtime/status", realtimeHandler.Status)
			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
