package server

import (
	"context"
	"errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-saver/internal/config"
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/maxaizer/job-saver/internal/logger"
	"github.com/maxaizer/job-saver/internal/router"
	"github.com/maxaizer/job-saver/internal/services"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

type dispatcher interface {
	Dispatch(ctx context.Context, request router.Request) router.Response
}

type settingsService interface {
	View(ctx context.Context) (services.SettingsView, error)
	Save(ctx context.Context, request services.SaveSettingsRequest) (entities.Credentials, error)
	Clear(ctx context.Context) error
}

// Server is the local HTTP bridge the browser extension talks to.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	dispatcher dispatcher
	settings   settingsService
}

func New(cfg config.ServerConfig, dispatcher dispatcher, settings settingsService) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:     gin.New(),
		dispatcher: dispatcher,
		settings:   settings,
	}

	s.engine.Use(requestLogger(), gin.Recovery())
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowWildcard = true
		corsConfig.AllowBrowserExtensions = true
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
		s.engine.Use(cors.New(corsConfig))
	}

	s.engine.GET("/healthz", s.health)
	api := s.engine.Group("/api")
	{
		api.POST("/dispatch", s.dispatch)
		api.GET("/settings", s.viewSettings)
		api.PUT("/settings", s.saveSettings)
		api.DELETE("/settings", s.clearSettings)
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks until the server is shut down.
func (s *Server) Run() error {
	log.Infof("http bridge listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeServer).Error("request failed")
			return
		}
		entry.Debug("request handled")
	}
}
