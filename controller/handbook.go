package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/common/config"
	"github.com/handboekai/handboek-api/common/ctxkey"
	"github.com/handboekai/handboek-api/model"
	"github.com/handboekai/handboek-api/relay/budget"
)

func GetAllHandbooks(c *gin.Context) {
	ownerKey := c.GetString(ctxkey.OwnerKey)
	p, _ := strconv.Atoi(c.Query("p"))
	if p < 0 {
		p = 0
	}
	size, _ := strconv.Atoi(c.Query("size"))
	if size <= 0 {
		size = config.DefaultItemsPerPage
	}
	if size > config.MaxItemsPerPage {
		size = config.MaxItemsPerPage
	}

	handbooks, err := model.GetHandbooks(ownerKey, p*size, size)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	total, err := model.GetHandbookCount(ownerKey)
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
		"data":    handbooks,
		"total":   total,
	})
}

func GetHandbook(c *gin.Context) {
	ownerKey := c.GetString(ctxkey.OwnerKey)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	handbook, err := model.GetHandbookWithChapters(id, ownerKey)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "handbook not found",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    handbook,
	})
}

func AddHandbook(c *gin.Context) {
	ownerKey := c.GetString(ctxkey.OwnerKey)
	var handbook model.Handbook
	if err := c.ShouldBindJSON(&handbook); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	if handbook.TemplateID != "" {
		if _, ok := budget.Templates[handbook.TemplateID]; !ok {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"message": "unknown template id",
			})
			return
		}
	}
	handbook.Id = 0
	handbook.OwnerKey = ownerKey
	if err := handbook.Insert(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    handbook,
	})
}

func UpdateHandbook(c *gin.Context) {
	ownerKey := c.GetString(ctxkey.OwnerKey)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	existing, err := model.GetHandbookById(id, ownerKey)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "handbook not found",
		})
		return
	}
	var handbook model.Handbook
	if err := c.ShouldBindJSON(&handbook); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	handbook.Id = existing.Id
	handbook.OwnerKey = ownerKey
	if err := handbook.Update(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    handbook,
	})
}

func DeleteHandbook(c *gin.Context) {
	ownerKey := c.GetString(ctxkey.OwnerKey)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	handbook, err := model.GetHandbookById(id, ownerKey)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "handbook not found",
		})
		return
	}
	if err := handbook.Delete(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
	})
}
