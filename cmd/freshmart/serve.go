package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/freshmart/gateway"
	"github.com/example/freshmart/pkg/audit"
	"github.com/example/freshmart/pkg/auth"
	"github.com/example/freshmart/pkg/cart"
	"github.com/example/freshmart/pkg/catalog"
	"github.com/example/freshmart/pkg/config"
	"github.com/example/freshmart/pkg/discovery"
	freshgrpc "github.com/example/freshmart/pkg/grpc"
	"github.com/example/freshmart/pkg/orders"
	"github.com/example/freshmart/pkg/repository"
	"github.com/example/freshmart/pkg/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the catalog gRPC service",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting FreshMart",
		zap.String("name", cfg.Server.Name),
		zap.String("http", cfg.Server.Addr()),
		zap.String("database", cfg.Database.Driver))

	db, err := repository.OpenDB(&cfg.Database)
	if err != nil {
		return err
	}
	defer repository.Close(db)

	if err := repository.Migrate(ctx, db); err != nil {
		return err
	}

	var sink audit.Sink = audit.LogSink{Logger: logger.Named("audit")}
	var mongoRepo *repository.MongoRepository
	if cfg.MongoDB.Enabled {
		mongoRepo, err = repository.NewMongoRepository(&cfg.MongoDB)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		defer closeMongo(mongoRepo, logger)
		sink = audit.MongoSink{Repo: mongoRepo, Service: cfg.Server.Name}
	}
	recorder := audit.NewRecorder(sink, logger.Named("audit"))
	defer recorder.Stop()

	opts := []catalog.Option{
		catalog.WithAuditor(recorder),
		catalog.WithLimits(catalog.Limits{
			DefaultPerPage: cfg.Catalog.DefaultPerPage,
			MaxPerPage:     cfg.Catalog.MaxPerPage,
		}),
	}
	if cfg.Redis.Enabled {
		redisRepo := repository.NewRedisRepository(&cfg.Redis)
		defer redisRepo.Close()
		if err := redisRepo.Ping(ctx); err != nil {
			logger.Warn("Redis unreachable, catalog reads will fall through", zap.Error(err))
		}
		opts = append(opts, catalog.WithCache(redisRepo))
	}

	services := buildServices(cfg, db, logger, opts)
	if mongoRepo != nil {
		services.AuditLog = mongoRepo
	}

	gw := gateway.NewGateway(cfg, logger, services)
	gw.SetupRoutes()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(gw.Start)

	var grpcServer *freshgrpc.Server
	if cfg.GRPC.Enabled {
		grpcServer = freshgrpc.NewServer(cfg.GRPC, services.Catalog, logger)
		g.Go(grpcServer.Start)
	}

	if cfg.Etcd.Enabled && cfg.GRPC.Enabled {
		deregister, err := register(gctx, cfg, logger)
		if err != nil {
			logger.Warn("Continuing without service discovery", zap.Error(err))
		} else {
			defer deregister()
		}
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if grpcServer != nil {
			grpcServer.Stop()
		}
		return gw.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("FreshMart stopped")
	return nil
}

func buildServices(cfg *config.Config, db *gorm.DB, logger *zap.Logger, opts []catalog.Option) gateway.Services {
	catalogRepo := repository.NewCatalogRepository(db)
	tokens := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)

	return gateway.Services{
		Catalog: catalog.NewService(catalogRepo, logger, opts...),
		Cart:    cart.NewService(repository.NewCartRepository(db), catalogRepo, logger),
		Auth:    auth.NewService(repository.NewUserRepository(db), auth.PasswordHasher{}, tokens, logger.Named("auth")),
		Orders:  orders.NewService(repository.NewOrderRepository(db)),
		Seed: func(ctx context.Context) (seed.Result, error) {
			return seed.Run(ctx, db)
		},
		Health: func(ctx context.Context) error {
			return repository.Ping(ctx, db)
		},
		AdminGate: auth.NewVerifier(cfg.Admin.Secret, cfg.Admin.SecretHash),
		SeedGate:  auth.NewVerifier(cfg.Seed.Secret, cfg.Seed.SecretHash),
	}
}

// register publishes the gRPC endpoint in etcd and returns the matching
// cleanup.
func register(ctx context.Context, cfg *config.Config, logger *zap.Logger) (func(), error) {
	sd, err := discovery.NewServiceDiscovery(&cfg.Etcd, logger)
	if err != nil {
		return nil, err
	}

	instance := &discovery.ServiceInstance{
		Name: cfg.Server.Name,
		Host: advertiseHost(cfg.GRPC.Host),
		Port: cfg.GRPC.Port,
	}
	if err := sd.Register(ctx, instance); err != nil {
		sd.Close()
		return nil, err
	}

	return func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sd.Deregister(dctx, instance); err != nil {
			logger.Warn("Failed to deregister service", zap.Error(err))
		}
		sd.Close()
	}, nil
}

// advertiseHost swaps a wildcard bind address for the machine's hostname.
func advertiseHost(host string) string {
	if host != "" && host != "0.0.0.0" && host != "::" {
		return host
	}
	if name, err := os.Hostname(); err == nil {
		return name
	}
	return "localhost"
}

func closeMongo(repo *repository.MongoRepository, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repo.Close(ctx); err != nil {
		logger.Warn("Failed to close MongoDB", zap.Error(err))
	}
}
