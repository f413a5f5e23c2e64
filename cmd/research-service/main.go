package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-research-service/internal/research/config"
	delivery "stock-research-service/internal/research/delivery/http"
	_ "stock-research-service/internal/research/docs"
	"stock-research-service/internal/research/repository"
	"stock-research-service/internal/research/service"
	"stock-research-service/pkg/logger"
	"stock-research-service/pkg/postgres"
	"stock-research-service/pkg/redis"
	"stock-research-service/pkg/telegram"

	"google.golang.org/genai"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the research service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Research Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize the oracle provider
	var oracleRepo repository.OracleRepository
	switch cfg.Oracle.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini client", logger.ErrorField(err))
		}
		oracleRepo, err = repository.NewGeminiOracleRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini oracle repository", logger.ErrorField(err))
		}
	case "openai":
		oracleRepo, err = repository.NewOpenAIOracleRepository(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize OpenAI oracle repository", logger.ErrorField(err))
		}
	default:
		appLogger.Fatal("Invalid oracle provider specified in config", logger.StringField("provider", cfg.Oracle.Provider))
	}

	// Initialize signal providers
	marketDataRepo, err := repository.NewMarketDataRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize market data repository", logger.ErrorField(err))
	}
	searchClient := repository.NewSearchClient(cfg, appLogger)
	registry := repository.NewSignalRegistry(
		marketDataRepo,
		repository.NewFinancialMetricsRepository(cfg, appLogger),
		repository.NewNewsRepository(cfg, appLogger),
		repository.NewRedditSentimentRepository(searchClient, appLogger),
		repository.NewTwitterSentimentRepository(searchClient, appLogger),
		repository.NewInstitutionalRepository(searchClient, appLogger),
		repository.NewInsiderTradesRepository(cfg, appLogger),
		repository.NewOptionsFlowRepository(searchClient, appLogger),
	)

	reportRepo := repository.NewReportRepository(redisClient, db.DB, appLogger)
	watchlistRepo := repository.NewWatchlistRepository(db.DB)
	sectorRepo := repository.NewSectorRepository(cfg, appLogger)
	universeRepo := repository.NewUniverseRepository()

	// Initialize the Telegram notifier when enabled
	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	oracleCaller := service.NewOracleCaller(oracleRepo, cfg.Oracle, appLogger)
	researchSvc := service.NewResearchService(
		service.NewSignalAggregator(registry, appLogger),
		service.NewSpecialistScorer(),
		service.NewCaseBuilder(oracleCaller, appLogger),
		service.NewDebateEngine(oracleCaller, service.NewJudgeVerdictParser(appLogger), appLogger),
		service.NewConvictionScorer(),
		service.NewRiskAssessor(),
		service.NewReportAssembler(),
		reportRepo,
		notifier,
		appLogger,
	)
	portfolioSvc := service.NewPortfolioService(
		service.NewPortfolioAnalyzer(sectorRepo),
		oracleCaller,
		universeRepo,
		researchSvc,
		service.NewReturnProjector(marketDataRepo, appLogger),
		notifier,
		appLogger,
	)
	watchlistSvc := service.NewWatchlistService(watchlistRepo, researchSvc, cfg.Watchlist, appLogger)

	// Start the watchlist scheduler
	if err := watchlistSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start watchlist scheduler", logger.ErrorField(err))
	}
	defer watchlistSvc.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	researchHandler := delivery.NewResearchHandler(researchSvc, appLogger)
	researchHandler.RegisterRoutes(apiV1.Group("/research"))

	portfolioHandler := delivery.NewPortfolioHandler(portfolioSvc, appLogger)
	portfolioHandler.RegisterRoutes(apiV1.Group("/portfolio"))

	watchlistHandler := delivery.NewWatchlistHandler(watchlistSvc, appLogger)
	watchlistHandler.RegisterRoutes(apiV1.Group("/watchlist"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Stock Research API
// @version 1.0
// @description AI debate driven stock research and portfolio recommendations.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "research-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-research.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing research-service CLI: %s\n", err)
		os.Exit(1)
	}
}
