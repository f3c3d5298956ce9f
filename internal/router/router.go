package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/campushq/coursehub/internal/handler"
	"github.com/campushq/coursehub/internal/middleware"
	"github.com/campushq/coursehub/internal/models"
	"github.com/campushq/coursehub/internal/service"
	"github.com/campushq/coursehub/pkg/config"
	"github.com/campushq/coursehub/pkg/logger"
	corsmiddleware "github.com/campushq/coursehub/pkg/middleware/cors"
	reqidmiddleware "github.com/campushq/coursehub/pkg/middleware/requestid"
)

// Handlers aggregates every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Course     *handler.CourseHandler
	Enrollment *handler.EnrollmentHandler
	Grade      *handler.GradeHandler
	Comment    *handler.CommentHandler
	Profile    *handler.ProfileHandler
	Dashboard  *handler.DashboardHandler
	Metrics    *handler.MetricsHandler
}

// New assembles the gin engine with middleware and every route.
func New(cfg *config.Config, logr *zap.Logger, auth *service.AuthService, metrics *service.MetricsService, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", h.Metrics.Prometheus)

	r.Static(cfg.Media.URLPrefix, cfg.Media.Root)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// The dashboard personalizes for a known caller but stays open to anyone.
	api.GET("/dashboard", middleware.OptionalJWT(auth), h.Dashboard.Summary)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", middleware.JWT(auth), h.Auth.Logout)
		authGroup.GET("/me", middleware.JWT(auth), h.Auth.Me)
	}

	secured := api.Group("")
	secured.Use(middleware.JWT(auth))
	{
		secured.GET("/courses", h.Course.List)
		secured.POST("/courses", middleware.RBAC(string(models.RoleTeacher), middleware.StaffMarker), h.Course.Create)
		secured.GET("/courses/:id", h.Course.Detail)

		secured.POST("/courses/:id/enroll", middleware.RequireRoles(models.RoleStudent), h.Enrollment.Enroll)
		secured.DELETE("/courses/:id/enroll", h.Enrollment.Drop)
		secured.GET("/enrollments", h.Enrollment.Overview)

		secured.GET("/courses/:id/enrollments", h.Grade.Roster)
		secured.PUT("/courses/:id/grades", middleware.RBAC(string(models.RoleTeacher), middleware.StaffMarker), h.Grade.SetGrades)
		secured.GET("/courses/:id/grades/export", middleware.RBAC(string(models.RoleTeacher), middleware.StaffMarker), h.Grade.Export)

		secured.GET("/courses/:id/comments", h.Comment.List)
		secured.POST("/courses/:id/comments", h.Comment.Create)
		secured.PUT("/comments/:id", h.Comment.Edit)

		secured.GET("/profile", h.Profile.Get)
		secured.PUT("/profile", h.Profile.UpdateName)
		secured.POST("/profile/avatar", h.Profile.UploadAvatar)
		secured.GET("/students/:id/avatar", h.Profile.StudentAvatar)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(auth), middleware.RequireStaff())
	{
		admin.PUT("/users/:id/role", h.Auth.SetRole)
		admin.POST("/teachers", h.Auth.CreateTeacher)
	}

	return r
}
