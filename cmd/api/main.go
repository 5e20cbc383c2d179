package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BarberiaElCorte/barberia-crm/internal/assistant"
	"github.com/BarberiaElCorte/barberia-crm/internal/clientcache"
	"github.com/BarberiaElCorte/barberia-crm/internal/config"
	dbpkg "github.com/BarberiaElCorte/barberia-crm/internal/db"
	infraRepo "github.com/BarberiaElCorte/barberia-crm/internal/infra/repository"
	"github.com/BarberiaElCorte/barberia-crm/internal/middleware"
	"github.com/BarberiaElCorte/barberia-crm/internal/realtime"
	"github.com/BarberiaElCorte/barberia-crm/internal/routes"
	"github.com/BarberiaElCorte/barberia-crm/internal/ws"
)

func main() {

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ----- Feed de cambios -----
	publisher := realtime.NewPublisher(rdb, logger)

	cacheFeed := realtime.NewSubscriber(rdb, logger, realtime.TableClients)
	go cacheFeed.Run(ctx)

	hubFeed := realtime.NewSubscriber(rdb, logger,
		realtime.TableClients, realtime.TableServices)
	go hubFeed.Run(ctx)

	// ----- Caché optimista de clientes -----
	clientRepo := infraRepo.NewClientGormRepository(db)
	cache := clientcache.New(clientRepo, cacheFeed, logger)
	go cache.Run(ctx)

	if err := cache.Refresh(ctx); err != nil {
		// no es fatal: la caché sirve vacía y cae al repositorio
		logger.Warn("initial client cache refresh failed", zap.Error(err))
	}

	// ----- Hub websocket -----
	hub := ws.NewHub(hubFeed, logger)
	go hub.Run(ctx)

	// ----- Asistente (opcional sin API key) -----
	var asst *assistant.Assistant
	if cfg.GeminiAPIKey != "" {
		asst, err = assistant.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Warn("assistant disabled", zap.Error(err))
		}
	} else {
		logger.Info("assistant disabled: GEMINI_API_KEY not set")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, cfg, routes.Deps{
		DB:        db,
		Logger:    logger,
		Cache:     cache,
		Feed:      publisher,
		Hub:       hub,
		Assistant: asst,
	})

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
