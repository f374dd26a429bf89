package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/controller"
	"github.com/handboekai/handboek-api/middleware"
	relaycontroller "github.com/handboekai/handboek-api/relay/controller"
)

func SetApiRouter(router *gin.Engine) {
	apiRouter := router.Group("/api")
	apiRouter.Use(cors.Default())
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/status", controller.GetStatus)
		apiRouter.GET("/templates", controller.GetTemplates)

		authed := apiRouter.Group("")
		authed.Use(middleware.TokenAuth())
		{
			authed.POST("/generate", middleware.GenerateRateLimit(), relaycontroller.RelayGenerate)

			handbookRoute := authed.Group("/handbook")
			{
				handbookRoute.GET("", controller.GetAllHandbooks)
				handbookRoute.POST("", controller.AddHandbook)
				handbookRoute.GET("/:id", controller.GetHandbook)
				handbookRoute.PUT("/:id", controller.UpdateHandbook)
				handbookRoute.DELETE("/:id", controller.DeleteHandbook)
				handbookRoute.GET("/:id/chapters", controller.GetChapters)
				handbookRoute.POST("/:id/chapters", controller.AddChapter)
				handbookRoute.POST("/:id/share", controller.CreateShareLink)
				handbookRoute.GET("/:id/share", controller.GetShareLinks)
				handbookRoute.DELETE("/:id/share", controller.RevokeShareLinks)
			}
			chapterRoute := authed.Group("/chapter")
			{
				chapterRoute.GET("/:id", controller.GetChapter)
				chapterRoute.PUT("/:id", controller.UpdateChapter)
				chapterRoute.DELETE("/:id", controller.DeleteChapter)
			}
		}
	}
}
