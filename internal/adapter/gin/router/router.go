package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"course-service/api/swagger"
	"course-service/internal/adapter/gin/handler"
	"course-service/internal/adapter/gin/middleware"
	grpcmiddleware "course-service/internal/adapter/grpc/middleware"
)

// Options tunes the optional parts of the router.
type Options struct {
	// RateLimiter limits requests per route and client; nil disables limiting.
	RateLimiter *grpcmiddleware.RateLimiter
	// Registry receives the HTTP collectors and is exposed on /metrics; nil disables both.
	Registry *prometheus.Registry
	// CORSAllowedOrigins lists allowed browser origins; empty disables CORS handling.
	CORSAllowedOrigins []string
	// SwaggerEnabled serves the API document and Swagger UI under /swagger/.
	SwaggerEnabled bool
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	opts Options,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	if len(opts.CORSAllowedOrigins) > 0 {
		router.Use(middleware.CORS(opts.CORSAllowedOrigins))
	}
	if opts.Registry != nil {
		router.Use(middleware.NewMetrics(opts.Registry).Handler())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{Registry: opts.Registry})))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "course-service",
		})
	})

	if opts.SwaggerEnabled {
		ui := httpSwagger.Handler(httpSwagger.URL("/swagger/" + swagger.FileName))
		router.GET("/swagger/*any", func(c *gin.Context) {
			if strings.TrimPrefix(c.Param("any"), "/") == swagger.FileName {
				c.Data(http.StatusOK, "application/json; charset=utf-8", swagger.Spec)
				return
			}
			ui(c.Writer, c.Request)
		})
	}

	api := router.Group("/")
	api.Use(middleware.RateLimiter(opts.RateLimiter, log))
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/:id", categoryHandler.GetCategory)
		}
	}

	return router
}
