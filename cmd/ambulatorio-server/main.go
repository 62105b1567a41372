package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ambulatorio/api/internal/config"
	"github.com/ambulatorio/api/internal/domain/attachments"
	"github.com/ambulatorio/api/internal/domain/export"
	"github.com/ambulatorio/api/internal/domain/forms"
	"github.com/ambulatorio/api/internal/domain/prescriptions"
	"github.com/ambulatorio/api/internal/domain/registry"
	"github.com/ambulatorio/api/internal/domain/scheduling"
	"github.com/ambulatorio/api/internal/domain/stats"
	"github.com/ambulatorio/api/internal/domain/templates"
	"github.com/ambulatorio/api/internal/platform/auth"
	"github.com/ambulatorio/api/internal/platform/db"
	"github.com/ambulatorio/api/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ambulatorio-server",
		Short: "API server for the outpatient nursing clinics",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.BodyLimit("2M", "25M"))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Auth
	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	directory := auth.NewStaticDirectory()

	public := e.Group("/api")
	api := e.Group("/api")
	api.Use(auth.Middleware(tokens))

	authHandler := auth.NewHandler(directory, tokens)
	authHandler.RegisterRoutes(public, api)

	// Repositories
	patientRepo := registry.NewPatientRepoPG(pool)
	apptRepo := scheduling.NewAppointmentRepoPG(pool)
	dressingRepo := forms.NewDressingRepoPG(pool)
	implantRepo := forms.NewImplantRepoPG(pool)
	monthlyRepo := forms.NewMonthlyLogRepoPG(pool)
	attachmentRepo := attachments.NewRepoPG(pool)
	prescriptionRepo := prescriptions.NewRepoPG(pool)
	statsRepo := stats.NewRepoPG(pool)

	// Services. Deleting a patient takes every dependent row with it in one
	// transaction.
	inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return db.RunInTx(ctx, pool, fn)
	}
	registrySvc := registry.NewService(patientRepo, inTx,
		apptRepo, dressingRepo, implantRepo, monthlyRepo, attachmentRepo, prescriptionRepo)
	schedulingSvc := scheduling.NewService(apptRepo, patientRepo)
	formsSvc := forms.NewService(dressingRepo, implantRepo, monthlyRepo)
	attachmentsSvc := attachments.NewService(attachmentRepo)
	prescriptionsSvc := prescriptions.NewService(prescriptionRepo)
	statsSvc := stats.NewService(statsRepo)
	exportSvc := export.NewService(patientRepo, dressingRepo, implantRepo, monthlyRepo)

	// Routes
	registry.NewHandler(registrySvc).RegisterRoutes(api)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(api)
	forms.NewHandler(formsSvc).RegisterRoutes(api)
	attachments.NewHandler(attachmentsSvc).RegisterRoutes(api)
	prescriptions.NewHandler(prescriptionsSvc).RegisterRoutes(api)
	stats.NewHandler(statsSvc).RegisterRoutes(api)
	export.NewHandler(exportSvc).RegisterRoutes(api)
	templates.NewHandler().RegisterRoutes(api)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
