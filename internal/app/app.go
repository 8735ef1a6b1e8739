// Package app wires configuration, stores and HTTP routes together.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"guidemarket/internal/config"
	"guidemarket/internal/events"
	"guidemarket/internal/localstore"
	"guidemarket/internal/localstore/region"
	"guidemarket/internal/middleware"
	"guidemarket/internal/modules/admin"
	"guidemarket/internal/modules/changes"
	"guidemarket/internal/modules/guide"
)

// Store is a guide store that owns a connection.
type Store interface {
	guide.Store
	Close() error
}

// OpenStore builds the store selected by DATA_SOURCE. The remote store never
// fails to open; it degrades instead. The local store fails only when its
// region cannot be reached.
func OpenStore(ctx context.Context, cfg *config.Config, notifier *events.Notifier, log zerolog.Logger) (Store, error) {
	switch cfg.DataSource {
	case config.SourceLocal:
		r, err := region.Open(ctx, cfg.Local, log)
		if err != nil {
			return nil, fmt.Errorf("open local store: %w", err)
		}
		log.Info().Str("backend", cfg.Local.Backend).Msg("using local store")
		return localstore.New(r, log, localstore.WithNotifier(notifier)), nil
	default:
		return guide.OpenRemoteStore(cfg.Remote, log, guide.WithRemoteNotifier(notifier)), nil
	}
}

// Server bundles the router with what must be shut down alongside it.
type Server struct {
	Router *gin.Engine
	Hub    *changes.Hub

	store Store
	unsub func()
}

func NewServer(cfg *config.Config, store Store, log zerolog.Logger) *Server {
	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.ErrorLogger(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	hub := changes.NewHub(log)
	unsub := store.Subscribe(hub.Broadcast)

	adminOnly := middleware.AdminToken(cfg.AdminToken, log)
	guideHandler := guide.NewHandler(guide.NewService(store, log))
	adminHandler := admin.NewHandler(admin.NewService(store, log))
	changesHandler := changes.NewHandler(hub, cfg.CORSOrigins)

	router.GET("/health", health(store))
	changesHandler.RegisterRoutes(router)

	v1 := router.Group("/api/v1")
	{
		guideHandler.RegisterRoutes(v1, adminOnly)
		adminHandler.RegisterRoutes(v1, adminOnly)
	}

	return &Server{Router: router, Hub: hub, store: store, unsub: unsub}
}

// Close stops the change feed and releases the store.
func (s *Server) Close() error {
	s.unsub()
	s.Hub.Close()
	return s.store.Close()
}

func health(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"source": store.Source(),
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"source": store.Source(),
		})
	}
}
