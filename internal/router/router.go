package router

import (
	"github.com/OryemaStephen/alx-project-nexus-api/internal/auth"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/graph"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/handlers"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/metrics"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/middleware"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/repositories"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/tasks"
	gqlhandler "github.com/graphql-go/handler"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Dependencies carries everything SetupRoutes wires together
type Dependencies struct {
	DB         *gorm.DB
	Tokens     *auth.Manager
	Dispatcher tasks.Dispatcher
	Metrics    *metrics.Metrics
	Log        *logrus.Logger
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.Logger())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	if err := deps.DB.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Share{},
	); err != nil {
		return err
	}
	deps.Log.Info("Auto-migrations completed for all models")

	// Health and home endpoints, always accessible
	e.GET("/healthz", handlers.HealthCheck)
	e.GET("/", handlers.Home)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.DB)
	followRepo := repositories.NewPostgresFollowRepository(deps.DB)
	postRepo := repositories.NewPostgresPostRepository(deps.DB)
	likeRepo := repositories.NewPostgresLikeRepository(deps.DB)
	commentRepo := repositories.NewPostgresCommentRepository(deps.DB)
	shareRepo := repositories.NewPostgresShareRepository(deps.DB)

	// --- REST auth endpoints ---
	authHandler := handlers.NewAuthHandler(userRepo, deps.Tokens, deps.Log)
	authHandler.RegisterAuthRoutes(e)
	deps.Log.Info("Auth routes configured")

	// --- GraphQL endpoint ---
	resolver := &graph.Resolver{
		Users:      userRepo,
		Follows:    followRepo,
		Posts:      postRepo,
		Likes:      likeRepo,
		Comments:   commentRepo,
		Shares:     shareRepo,
		Tokens:     deps.Tokens,
		Dispatcher: deps.Dispatcher,
		Metrics:    deps.Metrics,
		Log:        deps.Log,
	}
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return err
	}

	gql := gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})
	e.Any("/graphql", echo.WrapHandler(gql), middleware.TokenAuth(userRepo, deps.Tokens))
	deps.Log.Info("GraphQL endpoint configured")

	return nil
}
