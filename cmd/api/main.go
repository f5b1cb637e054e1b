// @title Wiki Quiz API
// @version 1.0
// @description Generates multiple-choice quizzes from web articles and serves them by id.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"wiki-quiz/internal/adapter"
	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/adapter/scraper"
	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/handler"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/service"

	_ "wiki-quiz/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Oracle database")

	// Initialize repositories
	articleRepository := repository.NewArticleDatabaseAdapter(db)
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize collaborator adapters
	contentSource := scraper.NewReadabilityScraper(20 * time.Second)

	quizGenerator, err := quizgen.NewGeminiQuizGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}

	// Initialize Redis cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services and handlers
	quizService := service.NewQuizService(articleRepository, quizRepository, contentSource, quizGenerator, txManager, cacheAdapter, cfg)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "Wiki Quiz API is running"})
	})

	apiGroup := app.Group("/api")
	apiGroup.Post("/quizzes", quizHandler.GenerateQuiz)
	apiGroup.Get("/quizzes/:id", quizHandler.GetQuiz)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
