package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-go-api/internal/config"
	"github.com/noah-isme/campus-go-api/internal/database"
	"github.com/noah-isme/campus-go-api/internal/handler"
	"github.com/noah-isme/campus-go-api/internal/middleware"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/ratelimit"
	"github.com/noah-isme/campus-go-api/internal/repository"
	"github.com/noah-isme/campus-go-api/internal/router"
	"github.com/noah-isme/campus-go-api/internal/service"
	cloud "github.com/noah-isme/campus-go-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Assignment{},
		&models.Submission{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var uploader service.FileUploader
	if cfg.CloudinaryCloudName != "" {
		uploader, err = cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	courseService := service.NewCourseService(courseRepo, validate, activityService, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, activityService, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, courseRepo, validate, activityService, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, enrollmentRepo, validate, uploader, activityService, logger)
	dashboardService := service.NewDashboardService(statsRepo, redisClient, cfg.DashboardCacheTTL, logger)
	seedService := service.NewSeedService(userRepo, courseRepo, enrollmentRepo, assignmentRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	courseHandler := handler.NewCourseHandler(courseService, enrollmentService, validate, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, submissionService, validate, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	activityHandler := handler.NewActivityHandler(activityService, logger)
	seedHandler := handler.NewSeedHandler(seedService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		CourseHandler:     courseHandler,
		AssignmentHandler: assignmentHandler,
		DashboardHandler:  dashboardHandler,
		ActivityHandler:   activityHandler,
		SeedHandler:       seedHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
		RateLimiter:       ratelimit.New(),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
