package router

import (
	"github.com/blues/cfp/internal/auth"
	"github.com/blues/cfp/internal/config"
	"github.com/blues/cfp/internal/handler"
	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "crowdfunding-platform",
		})
	})

	rules := validation.NewRules(cfg.Validation.TitleDenylist, cfg.Validation.MessageDenylist)
	tokens := auth.NewTokenManager(cfg.Auth)

	authHandler := handler.NewAuthHandler(logic.NewUserLogic(db, rules, tokens))
	projectHandler := handler.NewProjectHandler(logic.NewProjectLogic(db, rules))
	contributionHandler := handler.NewContributionHandler(logic.NewContributionLogic(db, rules))

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", handler.JWTAuth(tokens), authHandler.Me)
		}

		// 公开的项目路由
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/contributions", contributionHandler.GetProjectContributions)
			projects.GET("/:id/contributions/stats", contributionHandler.GetContributionStats)
			projects.GET("/:id/stats", projectHandler.GetProjectStats)
		}
		v1.GET("/stats", projectHandler.GetPlatformStats)

		// 需要认证的路由
		authed := v1.Group("", handler.JWTAuth(tokens))
		{
			authed.POST("/projects", projectHandler.CreateProject)
			authed.PUT("/projects/:id", projectHandler.UpdateProject)
			authed.DELETE("/projects/:id", projectHandler.DeleteProject)
			authed.POST("/projects/:id/toggle", projectHandler.ToggleActive)
			authed.POST("/projects/:id/contributions", contributionHandler.Contribute)

			authed.GET("/my/projects", projectHandler.GetMyProjects)
			authed.GET("/my/contributions", contributionHandler.GetMyContributions)
			authed.GET("/my/dashboard", projectHandler.GetDashboard)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
