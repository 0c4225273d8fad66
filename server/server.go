package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/feed"
	"github.com/umputun/feedmaker/pkg/runner"
	"github.com/umputun/feedmaker/pkg/workspace"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/workspace.go -pkg mocks -skip-ensure -fmt goimports . Workspace
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler

// Server represents the admin HTTP server
type Server struct {
	config    ConfigProvider
	workspace Workspace
	scheduler Scheduler
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Workspace interface for feed administration
type Workspace interface {
	Groups() ([]workspace.Group, error)
	Feeds(group string) ([]workspace.FeedEntry, error)
	Feed(group, name string) (domain.Feed, error)
	ReadConfig(group, name string) ([]byte, error)
	WriteConfig(group, name string, data []byte) error
	Toggle(group, name string) (string, error)
	ToggleGroup(group string) (string, error)
	Rename(group, name, newName string) error
	RemoveFeed(group, name string) error
	RemoveSnapshots(group, name string) error
	RemoveArtifacts(group, name string) error
	RemoveArtifact(group, name, file string) error
	Progress(group, name string, now time.Time) (workspace.Progress, error)
	PublishInfo(group, name string) (feed.Info, error)
}

// Scheduler interface for on-demand runs
type Scheduler interface {
	RunFeedNow(ctx context.Context, f domain.Feed) (runner.Report, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, ws Workspace, scheduler Scheduler, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		workspace: ws,
		scheduler: scheduler,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedmaker", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /groups", s.groupsHandler)
		r.HandleFunc("POST /groups/{group}/toggle", s.toggleGroupHandler)
		r.HandleFunc("GET /groups/{group}/feeds", s.feedsHandler)

		r.HandleFunc("DELETE /groups/{group}/feeds/{feed}", s.removeFeedHandler)
		r.HandleFunc("GET /groups/{group}/feeds/{feed}/config", s.getConfigHandler)
		r.HandleFunc("PUT /groups/{group}/feeds/{feed}/config", s.putConfigHandler)
		r.HandleFunc("POST /groups/{group}/feeds/{feed}/run", s.runHandler)
		r.HandleFunc("POST /groups/{group}/feeds/{feed}/toggle", s.toggleFeedHandler)
		r.HandleFunc("POST /groups/{group}/feeds/{feed}/rename", s.renameHandler)
		r.HandleFunc("DELETE /groups/{group}/feeds/{feed}/list", s.removeSnapshotsHandler)
		r.HandleFunc("DELETE /groups/{group}/feeds/{feed}/html", s.removeArtifactsHandler)
		r.HandleFunc("DELETE /groups/{group}/feeds/{feed}/html/{file}", s.removeArtifactHandler)
		r.HandleFunc("GET /groups/{group}/feeds/{feed}/progress", s.progressHandler)
		r.HandleFunc("GET /groups/{group}/feeds/{feed}/publish", s.publishInfoHandler)
	})

	s.router.HandleFunc("GET /rss/{group}/{feed}", s.rssHandler)
}
