package router

import (
	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/controller"
	"github.com/handboekai/handboek-api/middleware"
)

func SetRouter(router *gin.Engine) {
	SetApiRouter(router)
	setPublicRouter(router)
}

// setPublicRouter covers the anonymous share pages: no auth, strict headers,
// per-IP rate limiting.
func setPublicRouter(router *gin.Engine) {
	publicRouter := router.Group("/s")
	publicRouter.Use(middleware.SecurityHeaders(), middleware.PublicRateLimit())
	{
		publicRouter.GET("/:slug", controller.GetSharedHandbook)
	}
}
