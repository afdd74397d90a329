package api

import (
	"net/http"

	"Jandi/internal/api/middleware"
	"Jandi/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
			}
		}

		platformGroup := apiGroup.Group("/platform")
		platformGroup.Use(middleware.AuthMiddleware())
		{
			platformGroup.GET("/token", group.PlatformHandler.GetChallenge)
			platformGroup.PUT("", group.PlatformHandler.RegisterPlatform)
			platformGroup.DELETE("", group.PlatformHandler.DeletePlatform)
			platformGroup.GET("", group.PlatformHandler.GetPlatforms)
		}
	}

	return r
}
