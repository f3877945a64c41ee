package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/senyabanana/pncp-search/internal/cache"
	"github.com/senyabanana/pncp-search/internal/chart"
	"github.com/senyabanana/pncp-search/internal/db"
	"github.com/senyabanana/pncp-search/internal/handlers"
	"github.com/senyabanana/pncp-search/internal/pncp"
	"github.com/senyabanana/pncp-search/internal/repository"
	"github.com/senyabanana/pncp-search/internal/router"
	"github.com/senyabanana/pncp-search/internal/router/config"
	"github.com/senyabanana/pncp-search/internal/scheduler"
	"github.com/senyabanana/pncp-search/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := newLogger(os.Stdout, zerolog.LevelInfoValue)

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn().Err(err).Msg("failed to load .env")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load config")
	}
	logger = newLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		dbPool          *pgxpool.Pool
		savedSearchRepo repository.SavedSearchRepository = repository.NewMemorySavedSearchRepository()
	)
	if cfg.PostgresConn != "" {
		runDBMigration(logger, cfg.MigrationURL, cfg.PostgresConn)

		dbPool, err = db.InitDb(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("error initializing database")
		}
		defer dbPool.Close()
		savedSearchRepo = repository.NewPostgresSavedSearchRepository(dbPool)
	} else {
		logger.Warn().Msg("POSTGRES_CONN is not set, saved searches are kept in memory")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error().Err(err).Msg("redis unavailable, falling back to in-memory cache")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}
	responseCache := newResponseCache(rdb, cfg.CacheTTL)

	pncpClient := pncp.NewClient(cfg.PNCPConsultaAPIBase, cfg.RequestTimeout, logger.With().Str("component", "pncp").Logger())
	portalClient := pncp.NewClient(cfg.PNCPAPIBase, cfg.RequestTimeout, logger.With().Str("component", "pncp-portal").Logger())
	charts := chart.NewRenderer()

	searchService := services.NewSearchService(pncpClient, responseCache, cfg.PNCPWebBase, logger)
	statsService := services.NewStatsService(searchService, charts, logger)
	reportService := services.NewReportService(pncpClient, responseCache, charts, logger)
	savedSearchService := services.NewSavedSearchService(savedSearchRepo)

	tenderHandler := handlers.NewTenderHandler(searchService, statsService, reportService, logger, cfg.HandlerTimeout)
	searchHandler := handlers.NewSearchHandler(searchService, savedSearchService, logger, cfg.HandlerTimeout)
	savedSearchHandler := handlers.NewSavedSearchHandler(savedSearchService, logger, cfg.HandlerTimeout)
	healthHandler := handlers.NewHealthHandler(dbPool, rdb, 5*time.Second)
	proxyHandler := handlers.NewProxyHandler(portalClient, pncpClient, logger, cfg.HandlerTimeout)
	chartHandler := handlers.NewChartHandler(charts)

	warmer := scheduler.New(searchService, cfg.WarmupSchedule, logger.With().Str("component", "warmup").Logger())
	if err := warmer.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to start cache warmup")
	}
	defer warmer.Stop()

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router.InitRoutes(tenderHandler, searchHandler, savedSearchHandler, healthHandler, proxyHandler, chartHandler),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	logger.Info().Str("address", cfg.ServerAddress).Msg("server is listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

// newLogger создаёт консольный логгер и делает его глобальным,
// чтобы пакеты, пишущие через zerolog/log, попадали в тот же вывод.
func newLogger(out io.Writer, level string) zerolog.Logger {
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
		w.NoColor = out != os.Stdout
	})).With().Timestamp().Caller().Logger()

	if lvl, err := zerolog.ParseLevel(level); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = logger
	return logger
}

// newResponseCache выбирает Redis, если он доступен, иначе кэш в памяти процесса.
func newResponseCache(rdb *redis.Client, ttl time.Duration) cache.Cache {
	if rdb != nil {
		return cache.NewRedisCache(rdb, ttl)
	}
	return cache.NewMemoryCache(ttl)
}

func runDBMigration(logger zerolog.Logger, migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create a new migrate instance")
	}

	if err = migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal().Err(err).Msg("failed to run migrate up")
	}
	logger.Info().Msg("db migrated successfully")
}
