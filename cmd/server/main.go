package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shortlist-hq/shortlist-api/internal/config"
	"github.com/shortlist-hq/shortlist-api/internal/domain/fiber/handler"
	"github.com/shortlist-hq/shortlist-api/internal/middleware"
	"github.com/shortlist-hq/shortlist-api/internal/model"
	"github.com/shortlist-hq/shortlist-api/internal/monitoring"
	"github.com/shortlist-hq/shortlist-api/internal/repository"
	"github.com/shortlist-hq/shortlist-api/internal/service"
	"github.com/shortlist-hq/shortlist-api/internal/usecase"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName:     appConfig.Name,
		BodyLimit:   10 * 1024 * 1024,
		ReadTimeout: 5 * time.Minute,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: config.LoadAppConfig().Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return config.LoadAppConfig().Env != "production"
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()
	metrics := monitoring.NewMetrics()
	app.Use(middleware.RequestStats(metrics))

	analysisRepo := repository.NewAnalysisRepository(db)
	capstoneRepo := repository.NewCapstoneRepository(db)
	repoAnalysisRepo := repository.NewRepoAnalysisRepository(db)
	scaffoldRepo := repository.NewScaffoldRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	fitnessRepo := repository.NewFitnessRepository(db)

	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		log.Fatal(err)
	}
	github := service.NewGitHubService()

	analysisUC := usecase.NewAnalysisUsecase(analysisRepo, gemini, metrics)
	capstoneUC := usecase.NewCapstoneUsecase(capstoneRepo, analysisRepo, gemini, metrics)
	repoUC := usecase.NewRepoUsecase(repoAnalysisRepo, github, gemini, metrics)
	scaffoldUC := usecase.NewScaffoldUsecase(scaffoldRepo, capstoneRepo, gemini, metrics)
	portfolioUC := usecase.NewPortfolioUsecase(portfolioRepo, capstoneRepo, gemini, metrics)
	fitnessUC := usecase.NewFitnessUsecase(fitnessRepo, analysisRepo, gemini, metrics)

	api := app.Group("/api/v1", middleware.RequireAuth())
	handler.NewMonitorHandler(metrics, db).RegisterRoutes(app, api)
	handler.NewAnalysisHandler(analysisUC).RegisterRoutes(api)
	handler.NewCapstoneHandler(capstoneUC).RegisterRoutes(api)
	handler.NewRepoHandler(repoUC).RegisterRoutes(api)
	handler.NewScaffoldHandler(scaffoldUC).RegisterRoutes(api)
	handler.NewPortfolioHandler(portfolioUC).RegisterRoutes(api)
	handler.NewFitnessHandler(fitnessUC).RegisterRoutes(api)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	// uuid_generate_v4 and the vector column type need their extensions
	// installed before AutoMigrate touches the tables
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("uuid-ossp extension: ", err)
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector`).Error; err != nil {
		log.Fatal("vector extension: ", err)
	}

	err = db.AutoMigrate(
		&model.JDAnalysis{},
		&model.CapstoneProject{},
		&model.RepoAnalysis{},
		&model.Scaffold{},
		&model.Portfolio{},
		&model.FitnessScore{},
	)
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
