package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	grpclib "google.golang.org/grpc"

	grpcadapter "github.com/Eduardo-JSF/desafio-03/internal/adapter/grpc"
	"github.com/Eduardo-JSF/desafio-03/internal/adapter/idgen"
	"github.com/Eduardo-JSF/desafio-03/internal/adapter/repository/memory"
	"github.com/Eduardo-JSF/desafio-03/internal/domain"
	"github.com/Eduardo-JSF/desafio-03/internal/logger"
	"github.com/Eduardo-JSF/desafio-03/internal/trace"
	"github.com/Eduardo-JSF/desafio-03/internal/usecase/onboarding"
	"github.com/Eduardo-JSF/desafio-03/internal/usecase/statement"
	"github.com/Eduardo-JSF/desafio-03/internal/usecase/teller"
)

var build = "develop"

const serviceName = "ledger"

func main() {
	log := logger.New(os.Stdout, serviceName, slog.LevelInfo)

	if err := run(log); err != nil {
		log.Error("startup", "ERROR", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx := context.Background()

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Env  string `conf:"default:DEV"`
		GRPC struct {
			Port            int           `conf:"default:8080"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
		}
		Auth struct {
			JWTSecret string        `conf:"default:dev-secret,mask"`
			TokenTTL  time.Duration `conf:"default:24h"`
		}
		Bank struct {
			DefaultBranch  string `conf:"default:0001"`
			OverdraftLimit string `conf:"default:500"`
			MaxWithdrawals int    `conf:"default:3"`
			NodeID         int64  `conf:"default:1"`
		}
		Tempo struct {
			Endpoint    string  `conf:"help:OTLP gRPC collector address; empty keeps traces local"`
			Stdout      bool    `conf:"default:false"`
			Probability float64 `conf:"default:0.05"`
		}
	}{
		Version: conf.Version{
			Build: build,
		},
	}

	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Info("starting service", "version", build)
	defer log.Info("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Info("startup", "config", out)

	overdraft, err := decimal.NewFromString(cfg.Bank.OverdraftLimit)
	if err != nil {
		return fmt.Errorf("parsing overdraft limit: %w", err)
	}
	limits := domain.CheckingLimits{
		OverdraftLimit: overdraft,
		MaxWithdrawals: cfg.Bank.MaxWithdrawals,
	}
	if err := limits.Validate(); err != nil {
		return fmt.Errorf("checking limits: %w", err)
	}

	// =========================================================================
	// Tracing Support

	log.Info("startup", "status", "initializing tracing support", "endpoint", cfg.Tempo.Endpoint)

	traceCfg := trace.Config{
		Service:        serviceName,
		Version:        build,
		Env:            cfg.Env,
		Endpoint:       cfg.Tempo.Endpoint,
		SampleFraction: cfg.Tempo.Probability,
	}
	if cfg.Tempo.Stdout {
		traceCfg.Writer = os.Stdout
	}

	provider, err := trace.NewProvider(ctx, traceCfg)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.Error("shutdown", "status", "stopping tracing support", "ERROR", err)
		}
	}()
	otel.SetTracerProvider(provider)

	// =========================================================================
	// Repositories and Services

	numbers, err := idgen.NewSnowflakeGenerator(cfg.Bank.NodeID)
	if err != nil {
		return fmt.Errorf("account number generator: %w", err)
	}

	clientRepo := memory.NewClientRepository()
	accountRepo := memory.NewAccountRepository()

	onboardingService := onboarding.NewOnboardingService(log, clientRepo, accountRepo, numbers, limits)
	onboardingService.DefaultBranch = cfg.Bank.DefaultBranch
	tellerService := teller.NewTellerService(log, clientRepo, accountRepo)
	statementService := statement.NewStatementService(clientRepo, accountRepo)

	tokens := grpcadapter.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// =========================================================================
	// Start gRPC Service

	log.Info("startup", "status", "initializing LEDGER gRPC support")

	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.TracingInterceptor(provider.Tracer(serviceName)),
			grpcadapter.LoggingInterceptor(log),
			grpcadapter.AuthInterceptor(tokens, grpcadapter.RegisterPersonMethod),
		),
	)

	grpcAdapter := grpcadapter.NewServer(onboardingService, tellerService, statementService, tokens)
	grpcadapter.RegisterLedgerServiceServer(grpcServer, grpcAdapter)

	addr := fmt.Sprintf(":%d", cfg.GRPC.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("startup", "status", "grpc server started", "host", addr)
		serverErrors <- grpcServer.Serve(lis)
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Info("shutdown", "status", "shutdown complete", "signal", sig)

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-time.After(cfg.GRPC.ShutdownTimeout):
			grpcServer.Stop()
			return errors.New("could not stop server gracefully")
		}
	}

	return nil
}
