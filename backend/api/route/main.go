package route

import (
	"optiwave/backend/api/handler"
	"optiwave/backend/api/middleware"
	"optiwave/backend/common"

	"github.com/gin-gonic/gin"
)

func SetRouter(router *gin.Engine, videoAPI *handler.VideoAPI) {
	if *common.EnableGzip {
		router.Use(middleware.GzipDecodeMiddleware())
		router.Use(middleware.GzipEncodeMiddleware())
	}

	SetApiRouter(router, videoAPI)
	setWebRouter(router)
}
