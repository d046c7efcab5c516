// Package http assembles the gin router of the gateway's REST surface.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/interfaces/http/handlers"
	"github.com/manolaz/mosaic/pkg/logger"
)

// Router owns the gin engine and the HTTP server lifecycle.
type Router struct {
	engine  *gin.Engine
	config  *config.Config
	log     logger.Logger
	server  *http.Server
	health  *handlers.HealthHandler
	events  *handlers.EventHandler
	tickets *handlers.TicketHandler
	nfts    *handlers.NFTHandler
	profile *handlers.ProfileHandler
	checkIn *handlers.CheckInHandler
}

// NewRouter creates the router.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	health *handlers.HealthHandler,
	events *handlers.EventHandler,
	tickets *handlers.TicketHandler,
	nfts *handlers.NFTHandler,
	profile *handlers.ProfileHandler,
	checkIn *handlers.CheckInHandler,
) *Router {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Router{
		engine:  gin.New(),
		config:  cfg,
		log:     log.WithComponent("http"),
		health:  health,
		events:  events,
		tickets: tickets,
		nfts:    nfts,
		profile: profile,
		checkIn: checkIn,
	}
}

// SetupRoutes registers middleware and routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(gin.Recovery())
	r.engine.Use(handlers.RequestIDMiddleware())
	r.engine.Use(handlers.LoggingMiddleware(r.log))

	corsConfig := cors.DefaultConfig()
	if len(r.config.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = r.config.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Request-ID")
	r.engine.Use(cors.New(corsConfig))

	r.engine.GET("/health", r.health.Health)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.config.Server.Environment != "production" {
		pprof.Register(r.engine)
	}

	v1 := r.engine.Group("/api/v1")
	{
		events := v1.Group("/events")
		{
			events.POST("", r.events.Create)
			events.GET("", r.events.List)
			events.GET("/calendar", r.events.Calendar)
			events.GET("/:id", r.events.Detail)
		}

		tickets := v1.Group("/tickets")
		{
			tickets.POST("", r.tickets.Mint)
			tickets.POST("/open", r.tickets.Open)
			tickets.GET("/:id/key", r.tickets.RecoverKey)
		}

		v1.POST("/nfts", r.nfts.Create)

		v1.PUT("/profiles/:address", r.profile.Save)
		v1.GET("/profiles/:address", r.profile.Get)
		v1.PUT("/organizers/:slug/image", r.profile.SaveOrganizerImage)

		checkin := v1.Group("/checkin")
		{
			checkin.POST("/issue", r.checkIn.Issue)
			checkin.POST("/verify", r.checkIn.Verify)
		}
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})
}

// Engine exposes the underlying engine for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Start runs the HTTP server until the listener fails or Stop is called.
func (r *Router) Start() error {
	r.SetupRoutes()

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	r.server = &http.Server{
		Addr:         addr,
		Handler:      r.engine,
		ReadTimeout:  time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(r.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(r.config.Server.IdleTimeout) * time.Second,
	}

	r.log.Info(context.Background(), "http server starting", logger.Fields{"address": addr})
	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (r *Router) Stop(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}
