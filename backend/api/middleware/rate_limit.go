package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"optiwave/backend/common"

	"github.com/gin-gonic/gin"
)

// memoryRateLimiter keeps request timestamps per key for the no-redis case.
type memoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string][]int64
}

var memLimiter = &memoryRateLimiter{entries: make(map[string][]int64)}

func (l *memoryRateLimiter) allow(key string, maxRequests int, duration int64) bool {
	now := time.Now().Unix()
	cutoff := now - duration

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamps := l.entries[key]
	kept := timestamps[:0]
	for _, ts := range timestamps {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= maxRequests {
		l.entries[key] = kept
		return false
	}
	l.entries[key] = append(kept, now)
	return true
}

func redisAllow(c *gin.Context, key string, maxRequests int, duration int64) bool {
	count, err := common.RDB.Incr(c, key).Result()
	if err != nil {
		// If redis misbehaves, fail open rather than blocking every request.
		common.SysError("rate limiter redis error: " + err.Error())
		return true
	}
	if count == 1 {
		common.RDB.Expire(c, key, time.Duration(duration)*time.Second)
	}
	return count <= int64(maxRequests)
}

func rateLimit(prefix string, maxRequests int, duration int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate:%s:%s", prefix, c.ClientIP())
		var allowed bool
		if common.RedisEnabled {
			allowed = redisAllow(c, key, maxRequests, duration)
		} else {
			allowed = memLimiter.allow(key, maxRequests, duration)
		}
		if !allowed {
			c.Status(http.StatusTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

func GlobalAPIRateLimit() gin.HandlerFunc {
	return rateLimit("api", common.GlobalApiRateLimitNum, common.GlobalApiRateLimitDuration)
}

// CriticalRateLimit guards endpoints like login and register.
func CriticalRateLimit() gin.HandlerFunc {
	return rateLimit("critical", common.CriticalRateLimitNum, common.CriticalRateLimitDuration)
}

func GlobalWebRateLimit() gin.HandlerFunc {
	return rateLimit("web", common.GlobalWebRateLimitNum, common.GlobalWebRateLimitDuration)
}
