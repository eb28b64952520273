package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"optiwave/backend/api/handler"
	"optiwave/backend/api/middleware"
	"optiwave/backend/api/route"
	"optiwave/backend/common"
	"optiwave/backend/library/storage"
	"optiwave/backend/model"
	"optiwave/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	common.SetupGinLog()
	common.SysLog("OptiWave " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := common.LoadConfigFile(); err != nil {
		common.FatalLog(err)
	}
	common.ApplyFlagOverrides()

	// Initialize Redis
	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}
	// Initialize SQL database
	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.FatalLog(err)
		}
	}()

	// Initialize the upload store and the video data path around it
	uploadStore, err := storage.NewLocalStore(common.UploadPath)
	if err != nil {
		common.FatalLog(err)
	}
	videoAPI := handler.NewVideoAPI(service.NewVideoService(uploadStore))

	// Initialize HTTP server
	server := gin.Default()
	server.Use(middleware.CORS())

	// Initialize session store
	if common.RedisEnabled {
		opt := common.ParseRedisOption()
		store, _ := redis.NewStore(opt.MinIdleConns, opt.Network, opt.Addr, "", opt.Password, []byte(common.SessionSecret))
		server.Use(sessions.Sessions("session", store))
	} else {
		store := cookie.NewStore([]byte(common.SessionSecret))
		server.Use(sessions.Sessions("session", store))
	}

	route.SetRouter(server, videoAPI)
	server.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "API route not found",
			})
			return
		}
		c.Status(http.StatusNotFound)
	})

	port := strconv.Itoa(*common.Port)
	common.SysLog("Server listening on port: " + port)

	setupGracefulShutdown()

	if err := server.Run(":" + port); err != nil {
		log.Fatal("failed to start server: " + err.Error())
	}
}

// setupGracefulShutdown registers signal handlers to ensure clean shutdown
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		common.SysLog("Shutting down...")
		if err := model.CloseDB(); err != nil {
			common.SysLog("Error closing database: " + err.Error())
		}
		os.Exit(0)
	}()
}
