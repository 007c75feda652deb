package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/hardware-catalog/internal/cfg"
	v1Grpc "github.com/DRSN-tech/hardware-catalog/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/hardware-catalog/internal/delivery/v1/http"
	"github.com/DRSN-tech/hardware-catalog/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/hardware-catalog/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/hardware-catalog/internal/repository/minio"
	"github.com/DRSN-tech/hardware-catalog/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/hardware-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/hardware-catalog/internal/repository/redis"
	redisConv "github.com/DRSN-tech/hardware-catalog/internal/repository/redis/converter"
	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/pkg/clients"
	"github.com/DRSN-tech/hardware-catalog/pkg/closer"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
	"github.com/DRSN-tech/hardware-catalog/pkg/postgres"
	"github.com/DRSN-tech/hardware-catalog/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	startupTimeout   = 10 * time.Second
	kafkaTopicWait   = 10 * time.Second
	forcedCloseAfter = 2 * time.Second
)

// App держит собранные зависимости сервиса каталога.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	worker  *kafka.OutboxWorker
}

// NewApp подключается к внешним сервисам и собирает слои приложения.
// При ошибке уже открытые ресурсы закрываются.
func NewApp(cfg *config.Config, logger logger.Logger) (app *App, err error) {
	app = &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(forcedCloseAfter, logger),
	}
	defer func() {
		if err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.ShutdownTimeout)
			defer cancel()
			if cErr := app.closer.Close(ctx); cErr != nil {
				logger.Warnf("cleanup after failed start: %v", cErr)
			}
		}
	}()

	db, err := initPGDB(logger, cfg)
	if err != nil {
		return nil, err
	}
	app.closer.Add("postgres", func(context.Context) error {
		db.Close()
		return nil
	})

	redisClient, err := initRedis(cfg)
	if err != nil {
		return nil, err
	}
	app.closer.Add("redis", redisClient.Close)

	imagesInfra, err := initImageStorage(logger, cfg)
	if err != nil {
		return nil, err
	}

	producer := kafka.NewProducer(logger, cfg.Kafka)
	app.closer.Add("kafka producer", func(context.Context) error {
		return producer.Close()
	})
	if err := producer.EnsureTopic(kafkaTopicWait); err != nil {
		// Топик мог быть создан заранее без прав на чтение метаданных: воркер всё равно попробует писать
		logger.Warnf("failed to ensure kafka topic %s: %v", cfg.Kafka.Topic, err)
	}

	trManager := tr.NewManager(db.Pool)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.CategoryConverterImpl{})
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverterImpl{})
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverterImpl{})
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.CategoryConverterImpl{}, cfg.Redis, logger)

	productUC := usecase.NewProductUC(productRepo, outboxRepo, imagesInfra, trManager, logger)
	categoryUC := usecase.NewCategoryUC(categoryRepo, productRepo, outboxRepo, cacheRepo, trManager, logger)
	imageUC := usecase.NewImageUC(imagesInfra, cfg.Catalog.MaxImagesPerProduct, logger)
	dashboardUC := usecase.NewDashboardUC(categoryUC, productUC)

	app.worker = kafka.NewOutboxWorker(outboxRepo, logger, producer, cfg.Catalog.OutboxBatchSize, db.Dsn)

	r := chi.NewRouter()
	v1Http.NewRouter(r, logger).Init(v1Http.UseCases{
		Category:  categoryUC,
		Product:   productUC,
		Image:     imageUC,
		Dashboard: dashboardUC,
	}, v1Http.ImageLimits{
		MaxImageSize: cfg.Catalog.MaxImageSize,
		MaxImages:    cfg.Catalog.MaxImagesPerProduct,
	})
	app.httpSrv = v1Http.NewServer(r, cfg.Http)
	app.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, logger)

	return app, nil
}

// Run запускает серверы и воркер outbox и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.worker.Start(ctx)
	a.closer.Add("outbox worker", func(context.Context) error {
		a.worker.Stop()
		return nil
	})

	errCh := make(chan error, 2)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	a.closer.Add("http server", a.httpSrv.Stop)

	go func() {
		a.logger.Infof("gRPC health server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	a.closer.Add("grpc server", a.grpcSrv.Stop)
	a.grpcSrv.SetServing(true)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case <-ctx.Done():
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.grpcSrv.SetServing(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Catalog.ShutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		db.Close()
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

func initRedis(cfg *config.Config) (*clients.RedisClient, error) {
	redisClient := clients.NewRedisClient(cfg.Redis)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx); err != nil {
		_ = redisClient.Client.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return redisClient, nil
}

func initImageStorage(logger logger.Logger, cfg *config.Config) (*minioInfra.MinioInfrastructure, error) {
	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := clients.EnsureBucket(ctx, minioClient, cfg.Minio.BucketName); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	return minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, logger), nil
}
