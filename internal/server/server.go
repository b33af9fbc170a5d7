// Package server wires the router, middleware, and handlers together and
// owns the HTTP server lifecycle. All dependencies are assembled here, in
// one composition root, and injected downwards.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/bloglist/internal/auth"
	"github.com/sakif/bloglist/internal/config"
	"github.com/sakif/bloglist/internal/handler"
	"github.com/sakif/bloglist/internal/middleware"
	sqliteRepo "github.com/sakif/bloglist/internal/repository/sqlite"
	"github.com/sakif/bloglist/internal/service"
)

// Server holds the router and the resources it owns. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server: opens the database, builds the services and
// handlers, and mounts the routes.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the server's resources without going through Start.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures middleware and mounts all route handlers.
//
//	GET    /api/blogs        list blogs (enriched with owners)
//	GET    /api/blogs/stats  aggregate statistics
//	POST   /api/blogs        create blog            [bearer token]
//	DELETE /api/blogs/{id}   delete blog            [bearer token + ownership]
//	PUT    /api/blogs/{id}   update like count
//	GET    /api/users        list users (enriched with blogs)
//	POST   /api/users        register user
//	DELETE /api/users/{id}   delete user
//	PUT    /api/users/{id}   recompute owned blogs
//	POST   /api/login        issue bearer token
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.Secret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.config.BcryptCost)

	blogService := service.NewBlogService(s.db.Blogs, s.logger)
	userService := service.NewUserService(s.db.Users, passwords, s.logger)
	authService := service.NewAuthService(s.db.Users, tokens, passwords, s.logger)

	blogHandler := handler.NewBlogHandler(blogService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)

	// The user extractor runs only on blog routes: reads never require a
	// token, mutations check for the attached identity themselves.
	s.router.Route("/api/blogs", func(r chi.Router) {
		r.Use(auth.ExtractUser(tokens, s.db.Users, s.logger))
		r.Get("/", blogHandler.HandleList)
		r.Get("/stats", blogHandler.HandleStats)
		r.Post("/", blogHandler.HandleCreate)
		r.Delete("/{id}", blogHandler.HandleDelete)
		r.Put("/{id}", blogHandler.HandleUpdateLikes)
	})

	s.router.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.HandleList)
		r.Post("/", userHandler.HandleCreate)
		r.Delete("/{id}", userHandler.HandleDelete)
		r.Put("/{id}", userHandler.HandleSyncBlogs)
	})

	s.router.Post("/api/login", authHandler.HandleLogin)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"unknown endpoint"}`))
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests (30s limit) and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
