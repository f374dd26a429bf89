package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/common/cache"
	"github.com/handboekai/handboek-api/common/config"
	"github.com/handboekai/handboek-api/common/ctxkey"
	"github.com/handboekai/handboek-api/model"
	"github.com/handboekai/handboek-api/monitor"
)

var (
	shareCacheOnce sync.Once
	shareCacheInst cache.Cache
)

// shareCache holds resolved share pages keyed by slug, so repeated anonymous
// hits on a popular link skip the database. Built on first use, after main
// has initialized the Redis client, so Redis deployments share one cache
// across instances.
func shareCache() cache.Cache {
	shareCacheOnce.Do(func() {
		shareCacheInst = cache.Default("share", config.ShareCacheTTL)
	})
	return shareCacheInst
}

type shareRequest struct {
	TTLHours int `json:"ttl_hours"`
}

func CreateShareLink(c *gin.Context) {
	ownerKey := c.GetString(ctxkey.OwnerKey)
	handbookId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	if _, err := model.GetHandbookById(handbookId, ownerKey); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "handbook not found",
		})
		return
	}
	var req shareRequest
	_ = c.ShouldBindJSON(&req)

	link, err := model.CreateShareLink(handbookId, req.TTLHours)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"slug":         link.Slug,
			"url":          fmt.Sprintf("%s/s/%s", config.ServerAddress, link.Slug),
			"expired_time": link.ExpiredTime,
		},
	})
}

func GetShareLinks(c *gin.Context) {
	ownerKey := c.GetString(ctxkey.OwnerKey)
	handbookId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	if _, err := model.GetHandbookById(handbookId, ownerKey); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "handbook not found",
		})
		return
	}
	links, err := model.GetShareLinks(handbookId)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    links,
	})
}

func RevokeShareLinks(c *gin.Context) {
	ownerKey := c.GetString(ctxkey.OwnerKey)
	handbookId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	if _, err := model.GetHandbookById(handbookId, ownerKey); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "handbook not found",
		})
		return
	}
	if err := model.RevokeShareLinks(handbookId); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	links, _ := model.GetShareLinks(handbookId)
	for _, link := range links {
		_ = shareCache().Evict(link.Slug)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
	})
}

// GetSharedHandbook serves GET /s/:slug for anonymous readers. The response
// is cached per slug; revocation evicts eagerly but a stale entry can still
// be served for at most the cache TTL.
func GetSharedHandbook(c *gin.Context) {
	slug := c.Param("slug")

	if cached, err := shareCache().Get(slug); err == nil {
		monitor.RecordShareResolution("hit")
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	handbookId, err := model.ResolveShareLink(slug)
	if err != nil {
		if errors.Is(err, model.ErrShareLinkExpired) {
			monitor.RecordShareResolution("expired")
			c.JSON(http.StatusGone, gin.H{
				"success": false,
				"message": "share link expired",
			})
			return
		}
		monitor.RecordShareResolution("miss")
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "share link not found",
		})
		return
	}

	handbook, err := model.GetHandbookWithChapters(handbookId, "")
	if err != nil {
		monitor.RecordShareResolution("miss")
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "handbook not found",
		})
		return
	}

	body, err := json.Marshal(gin.H{
		"success": true,
		"message": "",
		"data":    handbook,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	if err := shareCache().Set(slug, string(body), config.ShareCacheTTL); err != nil {
		gmw.GetLogger(c).Warn("share cache set failed", zap.Error(err))
	}
	monitor.RecordShareResolution("db")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
