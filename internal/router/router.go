package router

import (
	"time"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/handlers"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/identity"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/middleware"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/repositories"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/services"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/validators"
	"github.com/JameNori/jamenori-dev-journal-sub000/pkg/markdown"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the process-wide collaborators the routes are built from.
type Deps struct {
	DB                    *gorm.DB
	Health                handlers.Pinger
	Verifier              identity.Verifier
	Logger                *zap.Logger
	QueryTimeout          time.Duration
	PostsPageSize         int
	NotificationsPageSize int
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(logger)

	e.GET("/health", handlers.HealthCheck(deps.Health))
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.DB, deps.QueryTimeout)
	categoryRepo := repositories.NewPostgresCategoryRepository(deps.DB, deps.QueryTimeout)
	postRepo := repositories.NewPostgresPostRepository(deps.DB, deps.QueryTimeout)
	commentRepo := repositories.NewPostgresCommentRepository(deps.DB, deps.QueryTimeout)
	likeRepo := repositories.NewPostgresLikeRepository(deps.DB, deps.QueryTimeout)
	notificationRepo := repositories.NewPostgresNotificationRepository(deps.DB, deps.QueryTimeout)

	// --- Services ---
	notifier := services.NewNotifier(postRepo, commentRepo, userRepo, notificationRepo, logger)
	postService := services.NewPostService(postRepo, notifier, logger)
	categoryService := services.NewCategoryService(categoryRepo, postRepo)
	engagementService := services.NewEngagementService(postRepo, commentRepo, likeRepo, notifier, logger)
	profileService := services.NewProfileService(userRepo)

	// --- Access levels ---
	authenticate := middleware.FirebaseAuthMiddleware(deps.Verifier)
	loadProfile := middleware.LoadProfile(userRepo)
	access := handlers.Access{
		Authenticated: []echo.MiddlewareFunc{authenticate},
		User:          []echo.MiddlewareFunc{authenticate, loadProfile},
		Admin:         []echo.MiddlewareFunc{authenticate, loadProfile, middleware.RequireAdmin},
	}

	api := e.Group("/api/v1")

	handlers.NewAuthHandler(profileService).RegisterAuthRoutes(api, access)
	handlers.NewUserHandler(profileService).RegisterProfileRoutes(api, access)
	handlers.NewPostHandler(postService, markdown.New(), deps.PostsPageSize).RegisterPostRoutes(api, access)
	handlers.NewCategoryHandler(categoryService).RegisterCategoryRoutes(api, access)
	handlers.NewCommentHandler(engagementService).RegisterCommentRoutes(api, access)
	handlers.NewLikeHandler(engagementService).RegisterLikeRoutes(api, access)
	handlers.NewNotificationHandler(notificationRepo, deps.NotificationsPageSize).RegisterNotificationRoutes(api, access)

	logger.Info("routes configured", zap.Int("count", len(e.Routes())))
}
