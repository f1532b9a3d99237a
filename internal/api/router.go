package api

import (
	"net/http"
	"promptbuilder-backend/config"
	_ "promptbuilder-backend/docs"
	"promptbuilder-backend/internal/api/v1/auth"
	"promptbuilder-backend/internal/api/v1/category"
	"promptbuilder-backend/internal/api/v1/prompt"
	"promptbuilder-backend/internal/api/v1/promptgen"
	"promptbuilder-backend/internal/api/v1/stats"
	"promptbuilder-backend/internal/middleware"
	"promptbuilder-backend/internal/services"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Dependencies are the long-lived resources the router wires into handlers.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Generator services.Generator
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce  json
// @Success 200 {object} api.HealthResponse
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Message: "Prompt Builder API is running"})
}

func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	categoryService := services.NewCategoryService(deps.DB)
	promptService := services.NewPromptService(deps.DB)
	statsService := services.NewStatsService(deps.DB, promptService)
	authService := services.NewAuthService(deps.DB)
	sessionService := services.NewSessionService(cfg.SecretKey, deps.Redis)

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           5 * time.Minute,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", Health)

	requireSession := middleware.AuthMiddleware(sessionService, authService)
	generateLimit := middleware.RateLimit(cfg.GenerateRatePerMinute)

	apiGroup := router.Group("/api")
	{
		category.RegisterRoutes(apiGroup, category.NewHandler(categoryService, promptService))
		prompt.RegisterRoutes(apiGroup, prompt.NewHandler(promptService, deps.Generator), generateLimit)
		stats.RegisterRoutes(apiGroup, stats.NewHandler(statsService))
		auth.RegisterRoutes(apiGroup, auth.NewHandler(authService, sessionService, cfg.SecureCookies), requireSession)
		promptgen.RegisterRoutes(apiGroup, promptgen.NewHandler(deps.Generator), generateLimit)
	}

	return router
}
