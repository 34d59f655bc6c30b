package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"freightops/cmd"
	httpin "freightops/internal/adapters/in/http"
	"freightops/internal/adapters/out/kafka"
	"freightops/internal/adapters/out/postgres"
	"freightops/internal/core/domain/model/access"
	"freightops/internal/pkg/logger"
	"freightops/internal/pkg/metrics"

	gommonlog "github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "freightops",
		Short:         "Shipment dispatch and status tracking service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file read before the environment")

	rootCmd.AddCommand(serveCmd(&envFile))
	rootCmd.AddCommand(migrateCmd(&envFile))
	rootCmd.AddCommand(tokenCmd(&envFile))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(c *cobra.Command, _ []string) {
			c.Println(version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serveCmd(envFile *string) *cobra.Command {
	var migrate bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the status event relay",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *envFile, migrate)
		},
	}
	c.Flags().BoolVar(&migrate, "migrate", true, "apply schema migrations before serving")
	return c
}

func migrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			config, appLogger, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer logger.Sync(appLogger)

			db, err := openDB(config, appLogger)
			if err != nil {
				return err
			}
			defer closeDB(db, appLogger)

			if err = postgres.Migrate(c.Context(), db); err != nil {
				return err
			}
			appLogger.Info("Schema is up to date")
			return nil
		},
	}
}

func tokenCmd(envFile *string) *cobra.Command {
	var (
		subject      string
		capabilities string
		ttl          time.Duration
	)

	c := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token for local testing",
		RunE: func(c *cobra.Command, _ []string) error {
			config, err := cmd.LoadConfig(*envFile)
			if err != nil {
				return err
			}

			var caps []access.Capability
			for _, name := range strings.Split(capabilities, ",") {
				if strings.TrimSpace(name) == "" {
					continue
				}
				capability, parseErr := access.ParseCapability(name)
				if parseErr != nil {
					return parseErr
				}
				caps = append(caps, capability)
			}

			token, err := httpin.IssueToken([]byte(config.JWTSecret), subject, ttl, caps...)
			if err != nil {
				return err
			}
			c.Println(token)
			return nil
		},
	}
	c.Flags().StringVar(&subject, "subject", "", "actor id")
	c.Flags().StringVar(&capabilities, "capabilities", "", "comma separated: OPS, DISPATCHER, DRIVER, ADMIN")
	c.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = c.MarkFlagRequired("subject")
	return c
}

func serve(ctx context.Context, envFile string, migrate bool) error {
	config, appLogger, err := bootstrap(envFile)
	if err != nil {
		return err
	}
	defer logger.Sync(appLogger)

	db, err := openDB(config, appLogger)
	if err != nil {
		return err
	}
	defer closeDB(db, appLogger)

	if migrate {
		if err = postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	m := metrics.New()
	app := cmd.NewCompositionRoot(config, db, appLogger, m)

	doc, err := httpin.LoadOpenAPI()
	if err != nil {
		return err
	}
	e, err := httpin.NewEcho(app.CreateHTTPServer(), httpin.Options{
		JWTSecret: []byte(config.JWTSecret),
		Logger:    appLogger.Named("http"),
		Metrics:   m,
		OpenAPI:   doc,
	})
	if err != nil {
		return err
	}
	if config.Environment == logger.Production {
		e.Logger.SetLevel(gommonlog.WARN)
	} else {
		e.Logger.SetLevel(gommonlog.DEBUG)
	}

	var publisher *kafka.StatusEventPublisher
	if config.RelayEnabled() {
		publisher = app.CreateStatusEventPublisher()
		defer func() {
			if closeErr := publisher.Close(); closeErr != nil {
				appLogger.Warn("Failed to close kafka writer", zap.Error(closeErr))
			}
		}()
	} else {
		appLogger.Warn("KAFKA_BROKERS is empty, status events stay unpublished")
	}
	jobManager := app.CreateJobManager(publisher)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("HTTP server listening", zap.String("port", config.HTTPPort))
		if startErr := e.Start(":" + config.HTTPPort); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", startErr)
		}
		return nil
	})
	g.Go(func() error {
		if startErr := jobManager.StartAll(); startErr != nil {
			return startErr
		}
		<-gctx.Done()
		jobManager.StopAll()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		appLogger.Info("Shutting down")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func bootstrap(envFile string) (cmd.Config, *zap.Logger, error) {
	config, err := cmd.LoadConfig(envFile)
	if err != nil {
		return cmd.Config{}, nil, fmt.Errorf("config: %w", err)
	}
	appLogger, err := logger.New(config.Environment)
	if err != nil {
		return cmd.Config{}, nil, fmt.Errorf("logger: %w", err)
	}
	return config, appLogger, nil
}

func openDB(config cmd.Config, appLogger *zap.Logger) (*gorm.DB, error) {
	return postgres.Open(postgres.ConnectionConfig{
		DSN:             config.DSN(),
		Environment:     config.Environment,
		MaxOpenConns:    config.DBMaxOpenConns,
		MaxIdleConns:    config.DBMaxIdleConns,
		ConnMaxLifetime: 30 * time.Minute,
	}, appLogger)
}

func closeDB(db *gorm.DB, appLogger *zap.Logger) {
	if err := postgres.Close(db); err != nil {
		appLogger.Warn("Failed to close database", zap.Error(err))
	}
}
