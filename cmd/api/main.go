package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	_ "github.com/campushq/coursehub/api/swagger"
	"github.com/campushq/coursehub/internal/handler"
	"github.com/campushq/coursehub/internal/repository"
	"github.com/campushq/coursehub/internal/router"
	"github.com/campushq/coursehub/internal/service"
	"github.com/campushq/coursehub/pkg/cache"
	"github.com/campushq/coursehub/pkg/config"
	"github.com/campushq/coursehub/pkg/database"
	"github.com/campushq/coursehub/pkg/export"
	"github.com/campushq/coursehub/pkg/logger"
	"github.com/campushq/coursehub/pkg/storage"
)

// @title CourseHub API
// @version 1.0.0
// @description Course management API: enrollment, grading and course comments
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	media, err := storage.NewMediaStorage(cfg.Media.Root)
	if err != nil {
		logr.Sugar().Fatalw("failed to init media storage", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled)
	identitySvc := service.NewIdentityService(userRepo, studentRepo, logr)
	dashboardSvc := service.NewDashboardService(studentRepo, courseRepo, enrollmentRepo, identitySvc, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	authSvc := service.NewAuthService(userRepo, studentRepo, cfg.JWT, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, identitySvc, dashboardSvc, logr)
	gradeSvc := service.NewGradeService(enrollmentRepo, courseRepo, identitySvc, logr)
	commentSvc := service.NewCommentService(commentRepo, courseRepo, logr)
	courseSvc := service.NewCourseService(courseRepo, enrollmentRepo, gradeSvc, commentSvc, identitySvc, dashboardSvc, validate, logr)
	profileSvc := service.NewProfileService(userRepo, studentRepo, media, cfg.Media, logr)
	exportSvc := service.NewExportService(gradeSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Course:     handler.NewCourseHandler(courseSvc),
		Enrollment: handler.NewEnrollmentHandler(enrollmentSvc),
		Grade:      handler.NewGradeHandler(gradeSvc, exportSvc),
		Comment:    handler.NewCommentHandler(commentSvc),
		Profile:    handler.NewProfileHandler(profileSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Metrics:    handler.NewMetricsHandler(metricsSvc),
	}

	r := router.New(cfg, logr, authSvc, metricsSvc, handlers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
