package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fkhayef/popbarter/docs"
	"github.com/fkhayef/popbarter/internal/barter"
	"github.com/fkhayef/popbarter/internal/config"
	"github.com/fkhayef/popbarter/internal/message"
	"github.com/fkhayef/popbarter/internal/minting"
	"github.com/fkhayef/popbarter/internal/offer"
	"github.com/fkhayef/popbarter/internal/popcap"
	"github.com/fkhayef/popbarter/internal/random"
	"github.com/fkhayef/popbarter/internal/user"
	mw "github.com/fkhayef/popbarter/pkg/middleware"
	"github.com/fkhayef/popbarter/pkg/response"
)

const shutdownTimeout = 10 * time.Second

// @title        PoP Barter Books API
// @version      1.0
// @description  Token caps from business data, bilateral barter books and a marketplace offer board.
// @BasePath     /api
func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found, using environment variables")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	repos, closeStorage, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	catalog, err := popcap.DefaultCatalog()
	if err != nil {
		return err
	}

	rng, err := random.New(cfg.RandomSeed)
	if err != nil {
		return err
	}

	// Profile feature (also resolves caps for books and offers)
	userService := user.NewService(repos.profiles, catalog, logger)
	userHandler := user.NewHandler(userService, logger)

	// Barter books feature
	barterService := barter.NewService(repos.barters, userService, rng, logger)
	barterHandler := barter.NewHandler(barterService, logger)

	// Offer board feature
	offerService := offer.NewService(repos.offers, userService, logger)
	offerHandler := offer.NewHandler(offerService, logger)

	// Messaging feature
	messageService := message.NewService(repos.messages, logger)
	messageHandler := message.NewHandler(messageService, logger)

	// Minting feature
	mintingService := minting.NewService(mintingOptions(cfg, catalog, userService, logger))
	mintingHandler := minting.NewHandler(mintingService, logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("PoP Barter Books API is running"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes())
		r.Mount("/books", barterHandler.Routes())
		r.Mount("/marketplace/offers", offerHandler.Routes())
		r.Mount("/marketplace/message", messageHandler.Routes())
		r.Mount("/contacts", messageHandler.ContactRoutes())
		r.Mount("/minting", mintingHandler.Routes())
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func mintingOptions(cfg *config.Config, catalog *popcap.Catalog, profiles minting.CapRecorder, logger *slog.Logger) minting.Options {
	opts := minting.Options{
		Catalog:            catalog,
		Profiles:           profiles,
		Timeout:            cfg.UpstreamTimeout,
		FinversePeriodDays: cfg.Finverse.PeriodDays,
		Logger:             logger,
	}
	if cfg.Finverse.ClientID != "" {
		opts.Finverse = minting.NewFinverseClient(cfg.Finverse, nil)
	} else {
		logger.Warn("FINVERSE_CLIENT_ID not set, finverse minting disabled")
	}
	if cfg.Brankas.APIKey != "" {
		opts.Brankas = minting.NewBrankasClient(cfg.Brankas, nil)
	} else {
		logger.Warn("BRANKAS_API_KEY not set, brankas minting disabled")
	}
	return opts
}
