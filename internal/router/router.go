package router

import (
	"time"

	"github.com/modamuse/lookpost-services-backend/internal/handlers"
	"github.com/modamuse/lookpost-services-backend/internal/middleware"
	"github.com/modamuse/lookpost-services-backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with all campaign and filter routes
func SetupRouter(db *gorm.DB, rabbitMQ *services.RabbitMQService, languageTag string) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create a new router
	r := gin.New()

	// Use middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.UserIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create handlers with services
	campaignHandler := handlers.NewCampaignHandler(db, rabbitMQ, languageTag)
	filterHandler := handlers.NewFilterHandler(db)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.Identity())
		{
			// Campaign routes
			campaigns := protected.Group("/campaigns")
			{
				campaigns.POST("", campaignHandler.CreateCampaign)
				campaigns.GET("", campaignHandler.GetCampaigns)
				campaigns.GET("/report.xlsx", campaignHandler.GetCampaignReport)
				campaigns.POST("/filter", filterHandler.FilterCampaigns)
				campaigns.GET("/filter-options", filterHandler.GetFilterOptions)
				campaigns.GET("/:id", campaignHandler.GetCampaign)
				campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
				campaigns.DELETE("/:id", campaignHandler.DeleteCampaign)
				campaigns.POST("/:id/validate", campaignHandler.ValidateCampaign)
				campaigns.GET("/:id/export", campaignHandler.ExportCampaign)
				campaigns.POST("/:id/publish", campaignHandler.PublishCampaign)
				campaigns.POST("/:id/schedule", campaignHandler.ScheduleCampaign)
			}

			// Saved filter state routes
			filters := protected.Group("/filters")
			{
				filters.GET("", filterHandler.GetFilterState)
				filters.PUT("", filterHandler.SaveFilterState)
				filters.DELETE("", filterHandler.ResetFilterState)
			}
		}
	}

	return r
}
