package route

import (
	"optiwave/backend/api/handler"
	"optiwave/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(router *gin.Engine, videoAPI *handler.VideoAPI) {
	apiRouter := router.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		// Public routes (no authentication required)
		apiRouter.GET("/status", handler.GetStatus)
		apiRouter.GET("/health", handler.GetStatus)

		// Authentication routes
		authRoutes := apiRouter.Group("/auth")
		{
			authRoutes.POST("/register", middleware.CriticalRateLimit(), handler.Register)
			authRoutes.POST("/login", middleware.CriticalRateLimit(), handler.Login)
			authRoutes.POST("/refresh", middleware.CriticalRateLimit(), handler.RefreshToken)
			authRoutes.POST("/logout", middleware.JWTAuth(), handler.Logout)
		}

		// User routes that require authentication
		userRoute := apiRouter.Group("/user")
		userRoute.Use(middleware.JWTAuth())
		{
			userRoute.GET("/self", handler.GetSelf)
		}

		// Video catalog routes
		videoRoute := apiRouter.Group("/videos")
		{
			// Reads are public
			videoRoute.GET("", videoAPI.List)
			videoRoute.GET("/featured", videoAPI.Featured)
			videoRoute.GET("/trending", videoAPI.Trending)
			videoRoute.GET("/categories/list", videoAPI.Categories)
			videoRoute.GET("/:id", videoAPI.GetByID)

			// Upload requires an authenticated session
			videoRoute.POST("/upload", middleware.JWTAuth(), videoAPI.Upload)

			// Featuring is an admin operation
			videoRoute.PUT("/:id/feature", middleware.JWTAuth(), middleware.AdminAuth(), videoAPI.SetFeatured)
		}
	}
}
