package http

import (
	"context"
	"errors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"notifwhitelist/internal/app/adapters/http/handlers"
	"notifwhitelist/internal/app/adapters/http/middlewares"
	"notifwhitelist/internal/app/infrastructure/config"
	"notifwhitelist/pkg/logger"
	"time"
)

type Router struct {
	router      *gin.Engine
	handlers    *handlers.Handlers
	middlewares *middlewares.Middlewares
	server      *http.Server

	log logger.Logger
	cfg *config.Config
}

// Bridge accepts the host client's websocket.
type Bridge interface {
	Handle(w http.ResponseWriter, r *http.Request)
	Connected() bool
}

func NewRouter(log logger.Logger, cfg *config.Config, plugin handlers.Plugin, bridge Bridge) *Router {
	gin.SetMode(cfg.App.GinMode)

	r := &Router{
		router:      gin.New(),
		handlers:    handlers.New(log, plugin, bridge, cfg.Sound.MaxBytes),
		middlewares: middlewares.New(cfg.Limiter.Requests, cfg.Limiter.Per),
		log:         log,
		cfg:         cfg,
	}
	r.router.Use(gin.Recovery())
	r.server = r.newServer(cfg.App.Listen, r.router)

	if cfg.App.AuthToken != "" {
		pprofGroup := r.router.Group("/", gin.BasicAuth(gin.Accounts{
			"admin": cfg.App.AuthToken,
		}))
		pprof.Register(pprofGroup)

		r.router.GET("/metrics", gin.BasicAuth(gin.Accounts{
			"admin": cfg.App.AuthToken,
		}), gin.WrapH(promhttp.Handler()))
	}

	auth := r.middlewares.Auth(cfg.App.AuthToken)

	r.router.GET("/host", auth, gin.WrapF(bridge.Handle))

	api := r.router.Group("/api", auth, r.middlewares.RateLimit())
	api.GET("/settings", r.handlers.GetSettings)
	api.PATCH("/settings", r.handlers.PatchSettings)
	api.POST("/whitelist/clear", r.handlers.ClearWhitelists)
	api.POST("/blacklist/clear", r.handlers.ClearBlacklists)
	api.PUT("/sound", r.handlers.PutSound)
	api.DELETE("/sound", r.handlers.DeleteSound)
	api.PUT("/lists/:list/:id", r.handlers.AddListEntry)
	api.DELETE("/lists/:list/:id", r.handlers.RemoveListEntry)
	api.POST("/lists/:list/:id", r.handlers.ToggleListEntry)
	api.GET("/changelog", r.handlers.GetChangelog)
	api.GET("/status", r.handlers.GetStatus)

	return r
}

func (r *Router) Handler() http.Handler {
	return r.router
}

// Run serves until Shutdown is called.
func (r *Router) Run() error {
	r.log.Info("Listening", "addr", r.cfg.App.Listen)

	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

// The host websocket lives for as long as the client runs, so there is no write timeout.
func (r *Router) newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}
