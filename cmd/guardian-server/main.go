package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/omnihealth/guardian/internal/config"
	"github.com/omnihealth/guardian/internal/domain/activity"
	"github.com/omnihealth/guardian/internal/domain/agent"
	"github.com/omnihealth/guardian/internal/domain/alert"
	"github.com/omnihealth/guardian/internal/domain/blockchain"
	"github.com/omnihealth/guardian/internal/domain/dashboard"
	"github.com/omnihealth/guardian/internal/domain/diet"
	"github.com/omnihealth/guardian/internal/domain/doctor"
	"github.com/omnihealth/guardian/internal/domain/hospital"
	"github.com/omnihealth/guardian/internal/domain/patient"
	"github.com/omnihealth/guardian/internal/domain/telemetry"
	"github.com/omnihealth/guardian/internal/domain/user"
	"github.com/omnihealth/guardian/internal/platform/auth"
	"github.com/omnihealth/guardian/internal/platform/chain"
	"github.com/omnihealth/guardian/internal/platform/greenfield"
	"github.com/omnihealth/guardian/internal/platform/middleware"
	"github.com/omnihealth/guardian/internal/platform/mongo"
	"github.com/omnihealth/guardian/internal/platform/seed"
	"github.com/omnihealth/guardian/internal/platform/ws"
)

// Populated via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
)

const apiVersion = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "guardian-server",
		Short: "OmniHealth Guardian API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Guardian API server",
		Long: "Starts the HTTP API, seeds demo data when the database is empty, " +
			"and runs the telemetry simulator and the guardian agent in the background.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into MongoDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			seedVal, _ := cmd.Flags().GetInt64("seed")
			return runSeed(force, seedVal)
		},
	}
	cmd.Flags().Bool("force", false, "Reseed even when demo data already exists")
	cmd.Flags().Int64("seed", 0, "Random source for deterministic attributes (0 = clock)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("guardian-server %s (%s)\n", version, commit)
		},
	}
}

// newLogger builds the process logger. Development gets the console writer;
// everything else emits JSON lines. Unknown levels fall back to info.
func newLogger(env, level string) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return logger.Level(lvl)
}

// rateLimitConfig maps config values onto the limiter, falling back to the
// default profile when the configured rate is unusable.
func rateLimitConfig(cfg *config.Config) middleware.RateLimitConfig {
	rl := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rl.RequestsPerSecond <= 0 || rl.BurstSize <= 0 {
		return middleware.DefaultRateLimitConfig()
	}
	return rl
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Logger
	logger := newLogger(cfg.Env, cfg.LogLevel)
	zlog.Logger = logger

	// Database
	ctx := context.Background()
	client, err := mongo.Connect(ctx, cfg.MongoURL, time.Duration(cfg.MongoTimeoutSeconds)*time.Second)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	db := client.Database(cfg.MongoDatabase)
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongodb")

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	// Repositories
	userRepo := user.NewUserRepoMongo(db)
	patientRepo := patient.NewPatientRepoMongo(db)
	doctorRepo := doctor.NewDoctorRepoMongo(db)
	hospitalRepo := hospital.NewHospitalRepoMongo(db)
	readingRepo := telemetry.NewReadingRepoMongo(db)
	alertRepo := alert.NewAlertRepoMongo(db)
	planRepo := diet.NewPlanRepoMongo(db)
	activityRepo := activity.NewActivityRepoMongo(db)
	progressRepo := agent.NewProgressRepoMongo(db)
	walletRepo := blockchain.NewWalletRepoMongo(db)

	// Platform pieces
	activityLogger := activity.NewLogger(activityRepo)
	chainClient := chain.NewClient(cfg.DeploymentFile,
		chain.WithRPCURL(cfg.OpBNBRPCURL),
		chain.WithChainID(cfg.OpBNBChainID),
	)
	archive := greenfield.New(cfg.GreenfieldBucket, cfg.GreenfieldNetwork, cfg.BundleServiceURL)
	hub := ws.NewHub()
	generator := telemetry.NewGenerator()

	// Services
	patientSvc := patient.NewService(patientRepo)
	doctorSvc := doctor.NewService(doctorRepo, patientRepo)
	hospitalSvc := hospital.NewService(hospitalRepo, patientRepo, doctorRepo, alertRepo)
	alertSvc := alert.NewService(alertRepo)
	processor := alert.NewProcessor(alertRepo, hospitalSvc, activityLogger, hub)
	telemetrySvc := telemetry.NewService(readingRepo, patientRepo, generator, processor)

	var dietGen diet.Generator
	if cfg.GeminiAPIKey != "" {
		gg, err := diet.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn().Err(err).Msg("gemini unavailable, diet plans use canned fallbacks")
		} else {
			dietGen = gg
			logger.Info().Str("model", cfg.GeminiModel).Msg("gemini diet generation enabled")
		}
	} else {
		logger.Info().Msg("GEMINI_API_KEY not set, diet plans use canned fallbacks")
	}
	dietSvc := diet.NewService(planRepo, patientRepo, dietGen, activityLogger)

	userSvc := user.NewService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	blockchainSvc := blockchain.NewService(walletRepo, patientRepo, alertRepo, chainClient)

	skills := agent.NewSkills(agent.SkillDeps{
		Patients:   patientRepo,
		Readings:   readingRepo,
		Alerts:     alertRepo,
		Hospitals:  hospitalSvc,
		Plans:      planRepo,
		Progress:   progressRepo,
		Archive:    archive,
		Activities: activityLogger,
	})
	gateway := agent.NewDefaultGateway(skills, activityLogger)

	dashboardSvc := dashboard.NewService(dashboard.Deps{
		Patients:  patientRepo,
		Doctors:   doctorRepo,
		Hospitals: hospitalRepo,
		Alerts:    alertRepo,
		Plans:     planRepo,
		Readings:  readingRepo,
		Generator: generator,
	})

	seeder := seed.New(hospitalSvc, doctorSvc, patientSvc)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", mongo.HealthHandler(client))

	// API group: rate limit everywhere, auth on everything except the root
	// banner and login.
	api := e.Group("/api")
	api.Use(middleware.RateLimit(rateLimitConfig(cfg)))

	api.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "OmniHealth Guardian API",
			"version": apiVersion,
		})
	})
	user.NewHandler(userSvc).RegisterRoutes(api)

	authed := api.Group("")
	if cfg.AuthDisabled {
		authed.Use(auth.DevAuthMiddleware())
	} else {
		authed.Use(auth.JWTMiddleware(cfg.JWTSecret))
	}

	clinicianGuard := auth.RequireRole(auth.RoleDoctor, auth.RoleOrganization)
	orgGuard := auth.RequireRole(auth.RoleOrganization)

	patient.NewHandler(patientSvc).RegisterRoutes(authed)
	doctor.NewHandler(doctorSvc).RegisterRoutes(authed)
	hospital.NewHandler(hospitalSvc).RegisterRoutes(authed)
	alert.NewHandler(alertSvc).RegisterRoutes(authed)
	diet.NewHandler(dietSvc).RegisterRoutes(authed)
	telemetry.NewHandler(telemetrySvc).RegisterRoutes(authed)
	ws.NewHandler(hub).RegisterRoutes(authed)
	agent.NewHandler(gateway, activityRepo).RegisterRoutes(authed, clinicianGuard)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(authed)
	blockchain.NewHandler(blockchainSvc).RegisterRoutes(authed, clinicianGuard)
	greenfield.NewHandler(archive).RegisterRoutes(authed)
	seed.NewHandler(seeder).RegisterRoutes(authed, orgGuard)

	// Demo data
	if cfg.SeedOnStart {
		if _, err := seeder.Run(ctx, seed.Options{Seed: cfg.SeedRandom}); err != nil {
			logger.Warn().Err(err).Msg("startup seeding failed")
		}
	}

	// Background workers
	bgCtx, bgCancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	if cfg.SimulatorEnabled {
		worker := telemetry.NewWorker(telemetrySvc, patientRepo, hub,
			time.Duration(cfg.SimulatorIntervalSeconds)*time.Second)
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(bgCtx)
		}()
	}

	if cfg.AgentEnabled {
		scheduler := agent.NewScheduler(gateway, patientRepo)
		wg.Add(1)
		go func() {
			defer wg.Done()
			scheduler.Run(bgCtx)
		}()
	}

	// Graceful shutdown
	go func() {
		addr := cfg.Addr()
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	bgCancel()
	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("mongodb disconnect failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

func runSeed(force bool, seedVal int64) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Env, cfg.LogLevel)
	zlog.Logger = logger

	ctx := context.Background()
	client, err := mongo.Connect(ctx, cfg.MongoURL, time.Duration(cfg.MongoTimeoutSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("connect to mongodb: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	db := client.Database(cfg.MongoDatabase)
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	patientRepo := patient.NewPatientRepoMongo(db)
	doctorRepo := doctor.NewDoctorRepoMongo(db)
	hospitalRepo := hospital.NewHospitalRepoMongo(db)
	alertRepo := alert.NewAlertRepoMongo(db)

	patientSvc := patient.NewService(patientRepo)
	doctorSvc := doctor.NewService(doctorRepo, patientRepo)
	hospitalSvc := hospital.NewService(hospitalRepo, patientRepo, doctorRepo, alertRepo)

	seeder := seed.New(hospitalSvc, doctorSvc, patientSvc)
	res, err := seeder.Run(ctx, seed.Options{Force: force, Seed: seedVal})
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	if res.Hospitals == 0 && res.Doctors == 0 && res.Patients == 0 {
		fmt.Println("Demo data already present; use --force to reseed.")
		return nil
	}
	fmt.Printf("Seeded %d hospitals, %d doctors, %d patients in %s.\n",
		res.Hospitals, res.Doctors, res.Patients, res.Duration)
	return nil
}
