package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"skillbridge/internal/adapter/api"
	"skillbridge/internal/adapter/api/handler"
	apimiddleware "skillbridge/internal/adapter/api/middleware"
	"skillbridge/internal/adapter/api/router"
	"skillbridge/internal/adapter/repository"
	"skillbridge/internal/domain/service"
	"skillbridge/internal/infrastructure/auth"
	"skillbridge/internal/infrastructure/ratelimit"
	"skillbridge/internal/usecase"
	"skillbridge/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	mongoClient, err := repository.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(ctx)

	db := mongoClient.Database(cfg.MongoDatabase)

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	sessionRepo := repository.NewMongoSessionRepository(db)
	progressRepo := repository.NewMongoProgressRepository(db)
	counterOfferRepo := repository.NewMongoCounterOfferRepository(db)
	cancellationRepo := repository.NewMongoCancellationRepository(db)
	workRepo := repository.NewMongoWorkRepository(db)
	completionRepo := repository.NewMongoCompletionRepository(db)
	reportRepo := repository.NewMongoReportRepository(mongoClient, db)
	userRepo := repository.NewMongoUserRepository(db)

	mailer := service.NewLogMailService()

	sessionUseCase := usecase.NewSessionUseCase(sessionRepo, progressRepo, userRepo)
	counterOfferUseCase := usecase.NewCounterOfferUseCase(counterOfferRepo, sessionRepo)
	progressUseCase := usecase.NewProgressUseCase(progressRepo, sessionRepo)
	cancellationUseCase := usecase.NewCancellationUseCase(cancellationRepo, sessionRepo)
	workUseCase := usecase.NewWorkUseCase(workRepo, sessionRepo)
	completionUseCase := usecase.NewCompletionUseCase(completionRepo, sessionRepo)
	reportUseCase := usecase.NewReportUseCase(reportRepo, sessionRepo, workRepo, userRepo, mailer)

	handler.Setup(
		sessionUseCase,
		counterOfferUseCase,
		progressUseCase,
		cancellationUseCase,
		workUseCase,
		completionUseCase,
		reportUseCase,
		mongoClient,
	)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)
	limiter := ratelimit.NewRateLimiter(10, 10, time.Minute)

	authMiddleware := apimiddleware.NewAuthMiddleware(jwtManager, userRepo)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	router.Setup(e, authMiddleware, adminMiddleware, rateLimitMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
