package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dtroode/findoc-server/internal/api/grpc/health"
	grpcRouter "github.com/dtroode/findoc-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/findoc-server/internal/api/grpc/server"
	httpcontext "github.com/dtroode/findoc-server/internal/api/http/context"
	httpRouter "github.com/dtroode/findoc-server/internal/api/http/router"
	httpServer "github.com/dtroode/findoc-server/internal/api/http/server"
	"github.com/dtroode/findoc-server/internal/config"
	"github.com/dtroode/findoc-server/internal/logger"
	"github.com/dtroode/findoc-server/internal/model"
	"github.com/dtroode/findoc-server/internal/password"
	"github.com/dtroode/findoc-server/internal/repository/memory"
	"github.com/dtroode/findoc-server/internal/repository/mongo"
	"github.com/dtroode/findoc-server/internal/repository/postgres"
	"github.com/dtroode/findoc-server/internal/server"
	"github.com/dtroode/findoc-server/internal/service"
	storage "github.com/dtroode/findoc-server/internal/storage/minio"
	"github.com/dtroode/findoc-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

// stores groups the storage backend selected by config.
type stores struct {
	users   model.UserStore
	finance model.FinanceStore
	pinger  model.Pinger
	close   func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	st, err := openStores(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	hasher := password.NewArgon2(password.Params{Time: cfg.KDF.Time, MemKiB: cfg.KDF.MemKiB, Par: cfg.KDF.Par})
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.AccessTTL())

	var archive model.Archive
	if cfg.Storage.Enabled {
		archive, err = storage.NewArchive(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Fatal("failed to initialize import archive", "error", err)
		}
	}

	tokenService := service.NewTokenService(tokenManager, nil, logger)
	authService := service.NewAuth(st.users, hasher, tokenService, nil, logger)
	financeService := service.NewFinance(st.finance, logger)
	importService := service.NewImporter(financeService, archive, nil, logger)
	healthService := service.NewHealth(st.pinger)

	router := httpRouter.New(authService, financeService, importService, healthService, tokenService,
		httpcontext.NewManager(), httpRouter.Options{
			CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
			MaxUploadBytes:   cfg.HTTP.MaxUploadBytes,
		}, logger)

	servers := []model.Server{
		httpServer.NewHTTPServer(router.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port)),
	}

	var wg sync.WaitGroup

	if cfg.GRPC.Enabled {
		reporter := health.NewReporter(healthService, cfg.GRPC.HealthInterval, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			reporter.Run(ctx)
		}()

		s := grpcRouter.New(reporter.Server(), logger).Register()
		servers = append(servers, grpcServer.NewGRPCServer(s, fmt.Sprintf(":%s", cfg.GRPC.Port)))
	}

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	for _, srv := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(srv)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, srv := range servers {
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", srv.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg config.Database) (*stores, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		conn, err := mongo.NewConnection(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:   mongo.NewUserRepository(conn),
			finance: mongo.NewFinanceRepository(conn),
			pinger:  conn,
			close:   conn.Close,
		}, nil
	case config.DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:   postgres.NewUserRepository(conn),
			finance: postgres.NewFinanceRepository(conn),
			pinger:  conn,
			close:   conn.Close,
		}, nil
	case config.DriverMemory:
		users := memory.NewUserRepository()
		return &stores{
			users:   users,
			finance: memory.NewFinanceRepository(),
			pinger:  users,
			close:   func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
