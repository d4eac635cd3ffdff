package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "coffeefinder-api/docs"
	"coffeefinder-api/internal/config"
	"coffeefinder-api/internal/events"
	"coffeefinder-api/internal/handler"
	"coffeefinder-api/internal/repository"
	"coffeefinder-api/internal/service"
	"coffeefinder-api/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

// @title			Coffee Finder API
// @version		1.0
// @description	Locates the user, finds nearby coffee shops and draws a driving route to a selected one.
// @BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	setupLogger(config)

	ctx, cancel := signalContext(context.Background())
	defer cancel()

	if err := run(ctx, config); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server exited")
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if level > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
}

// signalContext returns a context canceled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().Str("signal", sig.String()).Msg("received termination signal, starting graceful shutdown")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func run(ctx context.Context, cfg config.Config) error {
	httpClient := repository.NewHTTPClient(cfg.HTTPTimeout)

	// Search backend
	var places service.PlaceSearcher
	switch cfg.SearchBackend {
	case config.BackendPostgres:
		conn, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return fmt.Errorf("cannot connect to db: %w", err)
		}
		defer conn.Close()
		places = repository.NewPostgresSearcher(conn, cfg.SearchLimit)
	case config.BackendOverpass:
		places = repository.NewOverpassSearcher(httpClient, cfg.OverpassURL, cfg.SearchLimit)
	case config.BackendElastic:
		client, err := repository.NewElasticClient(httpClient, cfg.ElasticURL)
		if err != nil {
			return err
		}
		repo := repository.NewElasticSearcher(client, cfg.ElasticIndex, cfg.SearchLimit)
		if err := repo.EnsureIndex(ctx); err != nil {
			return err
		}
		places = repo
	default:
		return fmt.Errorf("unknown search backend %q", cfg.SearchBackend)
	}
	log.Info().Str("backend", cfg.SearchBackend).Str("query", cfg.SearchQuery).Msg("search backend ready")

	// Initialize layers
	searchService := service.NewSearchService(places, cfg.SearchQuery)
	directionsService := service.NewDirectionsService(repository.NewOSRMRouter(httpClient, cfg.OSRMURL))

	hub := events.NewHub()
	store := session.NewStore(searchService, directionsService, hub, session.Options{
		RegionRadiusMeters: cfg.RegionRadiusMeters,
		PinIcon:            cfg.PinIcon,
		TTL:                cfg.SessionTTL,
	})
	go store.Run(ctx, sweepInterval)

	sessionHandler := handler.NewSessionHandler(store)
	mapHandler := handler.NewMapHandler(store, hub)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           handler.NewRouter(sessionHandler, mapHandler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("listening")
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
