package routes

import (
	"github.com/civicdesk/backend/internal/config"
	"github.com/civicdesk/backend/internal/controllers"
	"github.com/civicdesk/backend/internal/identity"
	"github.com/civicdesk/backend/internal/middleware"
	"github.com/civicdesk/backend/internal/services"
	"github.com/civicdesk/backend/internal/storage"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all application routes.
func SetupRoutes(r *gin.Engine, cfg *config.Config, store *storage.Service) {
	categorizer := services.NewCategorizer(cfg.GenerateURL, cfg.GenerateModel, cfg.GenerateTimeout, store)
	complaintService := services.NewComplaintService(store)
	provider := identity.NewStoreProvider(store)

	authController := controllers.NewAuthController(store, cfg.JWTSecret)
	complaintController := controllers.NewComplaintController(complaintService)
	aiController := controllers.NewAIController(categorizer)
	departmentController := controllers.NewDepartmentController(store)
	statsController := controllers.NewStatsController(store)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret, provider))
		{
			protected.GET("/users/me", authController.Me)

			complaints := protected.Group("/complaints")
			{
				complaints.POST("", complaintController.Create)
				complaints.GET("", complaintController.ListAll)
				complaints.GET("/my", complaintController.ListMine)
				complaints.GET("/department", complaintController.ListDepartment)
				complaints.GET("/:id", complaintController.Get)
				complaints.POST("/:id/comments", complaintController.AddComment)
				complaints.POST("/:id/updates", complaintController.UpdateStatus)
			}

			ai := protected.Group("/ai")
			{
				ai.POST("/categorize", aiController.Categorize)
				ai.POST("/suggestions", aiController.Suggestions)
			}

			protected.GET("/departments", departmentController.List)
			protected.GET("/stats/system", statsController.System)
		}
	}
}
