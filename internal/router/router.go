package router

import (
	"molin/internal/handlers"
	"molin/internal/response"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	postHandler := handlers.NewPostHandler()
	categoryHandler := handlers.NewCategoryHandler()

	api := r.Group("/api")

	// 文章 (Posts)
	posts := api.Group("/posts")
	{
		posts.GET("", postHandler.GetAll)
		posts.GET("/slug/:slug", postHandler.GetBySlug)
		posts.GET("/:id", postHandler.GetByID)
		posts.POST("", postHandler.Create)
		posts.PUT("/:id", postHandler.Update)
		posts.DELETE("/:id", postHandler.Delete)
	}

	// 分类 (Categories)
	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.GetAll)
		categories.GET("/slug/:slug", categoryHandler.GetBySlug)
		categories.POST("", categoryHandler.Create)
		categories.PUT("/:id", categoryHandler.Update)
		categories.DELETE("/:id", categoryHandler.Delete)
	}

	// 未匹配的路由和方法也返回统一信封
	r.NoRoute(func(c *gin.Context) {
		env := response.Error(response.CodeNotFound, "Route not found")
		c.JSON(env.Error.Status, env)
	})
	r.NoMethod(func(c *gin.Context) {
		env := response.Error(response.CodeMethodNotAllowed, "Method not allowed")
		c.JSON(env.Error.Status, env)
	})
}
