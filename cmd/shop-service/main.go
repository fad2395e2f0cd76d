package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/shop-service/internal/catalog"
	"github.com/vasiliy-maslov/shop-service/internal/config"
	"github.com/vasiliy-maslov/shop-service/internal/db"
	shopHttp "github.com/vasiliy-maslov/shop-service/internal/handler/http"
	"github.com/vasiliy-maslov/shop-service/internal/session"
	"github.com/vasiliy-maslov/shop-service/internal/user"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "shop-service").Logger()

	log.Info().Msg("Shop service starting...")

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if err := db.RunMigrations(cfg.Postgres, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	database, err := db.New(cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	userRepository := user.NewRepository(database.Pool)
	userService := user.NewService(userRepository)

	productCatalog := catalog.Default()
	sessionManager := session.NewManager(productCatalog, cfg.Session.CookieName, time.Duration(cfg.Session.TTL))
	defer sessionManager.Stop()

	authHandler := shopHttp.NewAuthHandler(userService, sessionManager)
	shopHandler := shopHttp.NewShopHandler(productCatalog, sessionManager)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	authHandler.RegisterRoutes(router)
	shopHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Shop service stopped gracefully.")
}
