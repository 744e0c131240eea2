package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/cabwise/dispatch-go/internal/config"
	"github.com/cabwise/dispatch-go/internal/handler"
	"github.com/cabwise/dispatch-go/internal/middleware"
	"github.com/cabwise/dispatch-go/internal/notify"
	"github.com/cabwise/dispatch-go/internal/repository"
	"github.com/cabwise/dispatch-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := repository.Migrate(context.Background(), db); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)

	var mailer notify.Mailer = notify.LogMailer{}
	if !cfg.Dev() {
		m, err := notify.NewSMTPMailer(cfg)
		if err != nil {
			slog.Error("mailer setup failed", "error", err)
			os.Exit(1)
		}
		mailer = m
	}
	events := notify.NewPusherBroadcaster(cfg)

	userService := service.NewUserService(userRepo, jobRepo, mailer, cfg)
	jobService := service.NewJobService(jobRepo, userRepo, events)

	userHandler := handler.NewUserHandler(userService)
	jobHandler := handler.NewJobHandler(jobService)
	authHandler := handler.NewAuthHandler(userService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/user", userHandler.HandleCreate)
		r.Get("/login", authHandler.HandleLogin)
	})

	r.Get("/confirm/{token}", authHandler.HandleConfirm)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.SecretKey, userService))

		r.Get("/user", userHandler.HandleList)
		r.Get("/user/{id}", userHandler.HandleGet)
		r.Put("/user/{id}", userHandler.HandleUpdate)
		r.Delete("/user/{id}", userHandler.HandleDelete)
		r.Get("/user/{id}/jobs", userHandler.HandleJobs)

		r.Post("/job", jobHandler.HandleCreate)
		r.Get("/job", jobHandler.HandleList)
		r.Get("/job/{id}", jobHandler.HandleGet)
		r.Put("/job/{id}", jobHandler.HandleUpdate)
		r.Delete("/job/{id}", jobHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
