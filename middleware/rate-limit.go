package middleware

import (
	"fmt"
	"net/http"
	"time"

	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/common"
	"github.com/handboekai/handboek-api/common/config"
	"github.com/handboekai/handboek-api/common/ctxkey"
)

var timeFormat = "2006-01-02T15:04:05.999999999"

var inMemoryRateLimiter common.InMemoryRateLimiter

func redisRateLimitRequest(c *gin.Context, key string, maxRequestNum int, duration int64) bool {
	ctx := c.Request.Context()
	rdb := common.RDB
	listLength, err := rdb.LLen(ctx, key).Result()
	if err != nil {
		gmw.GetLogger(c).Error("rate limit redis query failed, allowing request", zap.Error(err))
		return true
	}
	if listLength < int64(maxRequestNum) {
		rdb.LPush(ctx, key, time.Now().Format(timeFormat))
		rdb.Expire(ctx, key, config.RateLimitKeyExpirationDuration)
		return true
	}
	oldTimeStr, _ := rdb.LIndex(ctx, key, -1).Result()
	oldTime, err := time.Parse(timeFormat, oldTimeStr)
	if err != nil {
		gmw.GetLogger(c).Error("rate limit timestamp parse failed, allowing request", zap.Error(err))
		return true
	}
	if int64(time.Since(oldTime).Seconds()) < duration {
		rdb.Expire(ctx, key, config.RateLimitKeyExpirationDuration)
		return false
	}
	rdb.LPush(ctx, key, time.Now().Format(timeFormat))
	rdb.LTrim(ctx, key, 0, int64(maxRequestNum-1))
	rdb.Expire(ctx, key, config.RateLimitKeyExpirationDuration)
	return true
}

func rateLimit(c *gin.Context, mark string, subject string, maxRequestNum int, duration int64) {
	if maxRequestNum <= 0 {
		c.Next()
		return
	}
	key := fmt.Sprintf("rateLimit:%s:%s", mark, subject)
	var allowed bool
	if common.IsRedisEnabled() {
		allowed = redisRateLimitRequest(c, key, maxRequestNum, duration)
	} else {
		allowed = inMemoryRateLimiter.Request(key, maxRequestNum, duration)
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"message": "too many requests, please try again later",
		})
		c.Abort()
		return
	}
	c.Next()
}

// GlobalAPIRateLimit covers the whole authenticated API surface, keyed by the
// caller's token when present and the client IP otherwise.
func GlobalAPIRateLimit() func(c *gin.Context) {
	inMemoryRateLimiter.Init(config.RateLimitKeyExpirationDuration)
	return func(c *gin.Context) {
		rateLimit(c, "GA", rateLimitSubject(c), config.GlobalApiRateLimitNum, config.GlobalApiRateLimitDuration)
	}
}

// GenerateRateLimit guards the generation endpoint separately; one upstream
// call is far more expensive than any CRUD request.
func GenerateRateLimit() func(c *gin.Context) {
	inMemoryRateLimiter.Init(config.RateLimitKeyExpirationDuration)
	return func(c *gin.Context) {
		rateLimit(c, "GEN", rateLimitSubject(c), config.GenerateRateLimitNum, config.GenerateRateLimitDuration)
	}
}

// PublicRateLimit covers the anonymous share pages, keyed by client IP.
func PublicRateLimit() func(c *gin.Context) {
	inMemoryRateLimiter.Init(config.RateLimitKeyExpirationDuration)
	return func(c *gin.Context) {
		rateLimit(c, "PUB", c.ClientIP(), config.PublicRateLimitNum, config.PublicRateLimitDuration)
	}
}

func rateLimitSubject(c *gin.Context) string {
	if owner := c.GetString(ctxkey.OwnerKey); owner != "" {
		return owner
	}
	return c.ClientIP()
}
