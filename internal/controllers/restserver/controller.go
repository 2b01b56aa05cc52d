package restserver

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/chrissnell/moonorbit/internal/animation"
	"github.com/chrissnell/moonorbit/internal/engine"
	"github.com/chrissnell/moonorbit/internal/log"
	"github.com/chrissnell/moonorbit/internal/session"
	"github.com/chrissnell/moonorbit/pkg/config"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTServerData
	Server     http.Server
	FS         fs.FS
	engine     *engine.Engine
	registry   *session.Registry
	scheduler  animation.Scheduler
	sweepEvery time.Duration
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg *config.ConfigData, rc config.RESTServerData, logger *zap.SugaredLogger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating configuration: %w", err)
	}

	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		logger:     logger,
		engine: engine.New(cfg.Orbit,
			engine.WithConvention(cfg.Convention()),
			engine.WithStyle(cfg.Style()),
			engine.WithDisk(cfg.Render.Disk),
		),
		registry:   session.NewRegistry(cfg.Orbit, cfg.Speed(), cfg.Animation.SessionTTL, cfg.Animation.MaxSessions, logger),
		scheduler:  animation.NewTickerScheduler(cfg.Animation.FrameInterval),
		sweepEvery: time.Minute,
		FS:         GetAssets(),
	}
	ctrl.registry.Attach(ctrl.scheduler)

	// If a ListenAddr was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Info("rest.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		rc.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if rc.Port == 0 {
		logger.Info("rest.port not provided; defaulting to 8080")
		rc.Port = 8080
	}
	ctrl.restConfig = rc

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.Port)
	ctrl.Server.Handler = log.HTTPLogger(logger, ctrl.setupRouter())
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the REST server, the session ticker and the idle
// session sweeper
func (c *Controller) StartController() error {
	c.logger.Infof("Starting REST server controller on %s...", c.Server.Addr)
	c.wg.Add(3)

	go func() {
		defer c.wg.Done()

		var err error
		if c.restConfig.Cert != "" && c.restConfig.Key != "" {
			err = c.Server.ListenAndServeTLS(c.restConfig.Cert, c.restConfig.Key)
		} else {
			err = c.Server.ListenAndServe()
		}
		if err != http.ErrServerClosed {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		defer c.wg.Done()
		c.scheduler.Run(c.ctx)
	}()

	go func() {
		defer c.wg.Done()
		c.sweepSessions()
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Info("Shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

func (c *Controller) sweepSessions() {
	ticker := time.NewTicker(c.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.registry.Expire()
		}
	}
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/constants", c.handlers.GetConstants).Methods(http.MethodGet)
	api.HandleFunc("/frame", c.handlers.GetFrame).Methods(http.MethodGet)
	api.HandleFunc("/phases", c.handlers.GetPhases).Methods(http.MethodGet)
	api.HandleFunc("/silhouette", c.handlers.GetSilhouette).Methods(http.MethodGet)

	api.HandleFunc("/sessions", c.handlers.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", c.handlers.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", c.handlers.DeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/day", c.handlers.SetSessionDay).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{id}/speed", c.handlers.SetSessionSpeed).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{id}/{action:play|pause|toggle|reset|scrub|release}", c.handlers.SessionAction).Methods(http.MethodPost)

	router.HandleFunc("/moon.svg", c.handlers.GetMoonSVG).Methods(http.MethodGet)

	// Static file serving
	router.PathPrefix("/").Handler(http.FileServer(http.FS(c.FS)))

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(router)
}
