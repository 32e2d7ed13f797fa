// Package httpapi exposes the stub backend over a gin router under /api.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/projects"
	"github.com/dmitrijs2005/taskboard/internal/server/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/users"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	users    *users.Service
	projects *projects.Service
	tasks    *tasks.Service
	logger   logging.Logger

	tokenTTL time.Duration
}

func NewServer(a string, l logging.Logger, us *users.Service, ps *projects.Service, ts *tasks.Service, tokenTTL time.Duration) *Server {
	return &Server{
		address:  a,
		logger:   l.With("module", "http_server"),
		users:    us,
		projects: ps,
		tasks:    ts,
		tokenTTL: tokenTTL,
	}
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	s.RegisterRoutes(router)
	return router
}

func (s *Server) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)
		api.POST("/auth/logout", s.logout)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	protected := api.Group("", s.requireAuth())
	{
		protected.GET("/users/profile", s.getProfile)
		protected.PUT("/users/profile", s.updateProfile)

		protected.GET("/projects", s.listProjects)
		protected.POST("/projects", s.createProject)
		protected.GET("/projects/:id", s.getProject)
		protected.PUT("/projects/:id", s.updateProject)
		protected.DELETE("/projects/:id", s.deleteProject)

		protected.GET("/tasks", s.listTasks)
		protected.POST("/tasks", s.createTask)
		protected.GET("/tasks/:id", s.getTask)
		protected.PUT("/tasks/:id", s.updateTask)
		protected.DELETE("/tasks/:id", s.deleteTask)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
