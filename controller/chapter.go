package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/common/ctxkey"
	"github.com/handboekai/handboek-api/model"
)

func GetChapters(c *gin.Context) {
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
	chapters, err := model.GetChaptersByHandbookId(handbookId)
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
		"data":    chapters,
	})
}

// AddChapter creates an empty draft chapter. Content normally arrives via
// the generate endpoint, this covers hand-written chapters.
func AddChapter(c *gin.Context) {
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
	var chapter model.Chapter
	if err := c.ShouldBindJSON(&chapter); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	if chapter.Title == "" {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "title is empty",
		})
		return
	}
	chapter.Id = 0
	chapter.HandbookId = handbookId
	chapter.Status = model.ChapterStatusDraft
	if chapter.ChapterIndex <= 0 {
		index, err := model.NextChapterIndex(handbookId)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}
		chapter.ChapterIndex = index
	}
	if err := chapter.Insert(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    chapter,
	})
}

func GetChapter(c *gin.Context) {
	ownerKey := c.GetString(ctxkey.OwnerKey)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	chapter, err := model.GetChapterById(id, ownerKey)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "chapter not found",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    chapter,
	})
}

// UpdateChapter lets the teacher edit a chapter after generation. Status
// moves to draft unless the payload sets it explicitly.
func UpdateChapter(c *gin.Context) {
	ownerKey := c.GetString(ctxkey.OwnerKey)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	existing, err := model.GetChapterById(id, ownerKey)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "chapter not found",
		})
		return
	}
	var chapter model.Chapter
	if err := c.ShouldBindJSON(&chapter); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	chapter.Id = existing.Id
	chapter.HandbookId = existing.HandbookId
	if chapter.Status == 0 {
		chapter.Status = model.ChapterStatusDraft
	}
	if chapter.ChapterIndex == 0 {
		chapter.ChapterIndex = existing.ChapterIndex
	}
	if err := chapter.Update(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    chapter,
	})
}

func DeleteChapter(c *gin.Context) {
	ownerKey := c.GetString(ctxkey.OwnerKey)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	chapter, err := model.GetChapterById(id, ownerKey)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "chapter not found",
		})
		return
	}
	if err := chapter.Delete(); err != nil {
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
