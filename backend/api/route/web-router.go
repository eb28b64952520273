package route

import (
	"optiwave/backend/api/middleware"
	"optiwave/backend/common"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// setWebRouter serves uploaded binaries as static byte streams. The stored
// filename is the only addressing token.
func setWebRouter(router *gin.Engine) {
	router.Use(middleware.GlobalWebRateLimit())
	router.Use(static.Serve("/uploads", static.LocalFile(common.UploadPath, false)))
}
