package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/gofiber/fiber/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"interval-series-service/internal/config"
	"interval-series-service/internal/logger"
	"interval-series-service/internal/platform/sqldb"

	recordsHttp "interval-series-service/internal/records/adapters/http/fiber"
	recordsStore "interval-series-service/internal/records/adapters/sqlstore"
	recordsUsecase "interval-series-service/internal/records/core/usecase"

	seriesHttp "interval-series-service/internal/series/adapters/http/fiber"
	"interval-series-service/internal/series/adapters/sqltable"
	seriesUsecase "interval-series-service/internal/series/core/usecase"

	_ "interval-series-service/docs"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.ServiceEnvironment)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	dialect, err := sqldb.DialectFor(cfg.DBDriver)
	if err != nil {
		zapLogger.Fatal("invalid database driver", zap.Error(err))
	}

	// DB connection
	db, err := sql.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		zapLogger.Fatal("failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.Ping(); err != nil {
		zapLogger.Fatal("failed to ping database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	sqlDB := sqldb.New(db)

	// Series: stored table + engine
	table, err := sqltable.New(sqlDB, dialect, cfg.SeriesTable)
	if err != nil {
		zapLogger.Fatal("invalid series table", zap.String("table", cfg.SeriesTable), zap.Error(err))
	}
	engine := seriesUsecase.NewEngine(
		seriesUsecase.WithLogger(zapLogger.Named("series")),
		seriesUsecase.WithMaxBuckets(cfg.SeriesMaxBuckets),
	)

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	// records endpoints; ClickHouse tables are ingested by their own pipeline
	if dialect.SupportsUpsert() {
		recordRepository, err := recordsStore.NewRecordRepository(sqlDB, dialect, cfg.SeriesTable)
		if err != nil {
			zapLogger.Fatal("failed to create record repository", zap.Error(err))
		}
		if cfg.DBAutoMigrate {
			if err := recordRepository.EnsureSchema(context.Background()); err != nil {
				zapLogger.Fatal("failed to migrate", zap.Error(err))
			}
		}

		storeRecordUC := recordsUsecase.NewStoreRecordUseCase(recordRepository)
		recordsHandler := recordsHttp.NewRecordHandler(storeRecordUC, zapLogger.Named("records"))
		app.Post("/records", recordsHandler.CreateRecord)
		app.Post("/records/bulk", recordsHandler.BulkCreateRecords)
	} else {
		zapLogger.Info("record ingestion disabled for dialect", zap.String("dialect", string(dialect)))
	}

	// series endpoints
	seriesHandler := seriesHttp.NewSeriesHandler(engine, func(dataset string) any {
		if dataset == "" {
			return table
		}
		return table.Where("dataset", dataset)
	}, cfg.SeriesGroupByColumn, zapLogger.Named("series"))
	app.Get("/series/:granularity/:kind", seriesHandler.GetSeries)
	app.Post("/series/:granularity/:kind", seriesHandler.PostSeries)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			zapLogger.Error("fiber stopped", zap.Error(err))
		}
	}()

	zapLogger.Info("server started",
		zap.String("port", cfg.HTTPPort),
		zap.String("driver", cfg.DBDriver),
		zap.String("table", cfg.SeriesTable))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	zapLogger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		zapLogger.Error("fiber shutdown error", zap.Error(err))
	}

	zapLogger.Info("server exiting")
}
