package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/common"
	"github.com/handboekai/handboek-api/common/config"
	"github.com/handboekai/handboek-api/common/graceful"
)

func GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"version":        common.Version,
			"start_time":     common.StartTime,
			"system_name":    config.SystemName,
			"server_address": config.ServerAddress,
			"model":          config.GenerationModel,
			"redis":          common.IsRedisEnabled(),
			"draining":       graceful.IsDraining(),
		},
	})
}
