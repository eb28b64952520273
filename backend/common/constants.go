package common

import (
	"flag"
	"os"
	"time"
)

var Version = "v0.2.0"

var StartTime = time.Now().Unix()

// Role constants
const (
	RoleGuestUser  = 0
	RoleCommonUser = 1
	RoleAdminUser  = 10
	RoleRootUser   = 100
)

// Status constants
const (
	UserStatusEnabled  = 1
	UserStatusDisabled = 2
)

var (
	Port           = flag.Int("port", 3000, "the listening port")
	PrintVersion   = flag.Bool("version", false, "print version and exit")
	PrintHelpFlag  = flag.Bool("help", false, "print help and exit")
	LogDir         = flag.String("log-dir", "", "specify the log directory")
	EnableGzip     = flag.Bool("gzip", true, "enable gzip compression for http responses")
	UploadPathFlag = flag.String("upload-path", "", "override the upload directory")
	SQLitePathFlag = flag.String("sqlite-path", "", "override the sqlite database path")
)

var (
	SQLitePath       = "data/optiwave.db"
	UploadPath       = "uploads"
	SessionSecret    = "optiwave-session-secret"
	JWTSecret        = ""
	JWTRefreshSecret = ""
)

var (
	ItemsPerPage       = 10
	DefaultRecentLimit = 12
	MaxFeaturedVideos  = 10
	MaxTrendingVideos  = 20
	TrendingWindow     = 7 * 24 * time.Hour
)

var (
	GlobalApiRateLimitNum            = 180
	GlobalApiRateLimitDuration int64 = 3 * 60
	CriticalRateLimitNum             = 20
	CriticalRateLimitDuration  int64 = 20 * 60
	GlobalWebRateLimitNum            = 300
	GlobalWebRateLimitDuration int64 = 3 * 60
)

func PrintHelp() {
	println("OptiWave " + Version)
	println("A video catalog for programming and tech education content.")
	println()
	println("Usage: optiwave [--port <port>] [--log-dir <log dir>]")
	flag.PrintDefaults()
}

// ApplyFlagOverrides copies explicitly set flags over the config-file values.
// Must run after both flag.Parse and the config file load.
func ApplyFlagOverrides() {
	if *SQLitePathFlag != "" {
		SQLitePath = *SQLitePathFlag
	}
	if *UploadPathFlag != "" {
		UploadPath = *UploadPathFlag
	}
	if env := os.Getenv("SESSION_SECRET"); env != "" {
		SessionSecret = env
	}
	if env := os.Getenv("JWT_SECRET"); env != "" {
		JWTSecret = env
	}
	if env := os.Getenv("JWT_REFRESH_SECRET"); env != "" {
		JWTRefreshSecret = env
	}
	if JWTRefreshSecret == "" {
		JWTRefreshSecret = JWTSecret
	}
}
