package controller

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/relay/budget"
)

// GetTemplates lists the built-in chapter templates, in stable order so the
// UI can render them deterministically.
func GetTemplates(c *gin.Context) {
	templates := make([]budget.Template, 0, len(budget.Templates))
	for _, tmpl := range budget.Templates {
		templates = append(templates, tmpl)
	}
	sort.Slice(templates, func(i, j int) bool {
		return len(templates[i].Sections) < len(templates[j].Sections)
	})
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data":    templates,
	})
}
