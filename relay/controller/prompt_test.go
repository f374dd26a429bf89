package controller

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	relaymodel "github.com/handboekai/handboek-api/relay/model"
)

func TestBuildPrompt(t *testing.T) {
	base := &relaymodel.GenerateRequest{
		HandbookID:   1,
		ChapterTitle: "Fotosynthese",
		ChapterIndex: 2,
		TemplateID:   "standaard",
	}

	t.Run("names the chapter and handbook", func(t *testing.T) {
		prompt := BuildPrompt(base, "Biologie 3havo", "biologie", "3havo", nil)
		assert.Contains(t, prompt, "Fotosynthese")
		assert.Contains(t, prompt, "Biologie 3havo")
		assert.Contains(t, prompt, "biologie")
		assert.Contains(t, prompt, "3havo")
	})

	t.Run("template sections are listed", func(t *testing.T) {
		prompt := BuildPrompt(base, "Biologie", "", "", nil)
		assert.Contains(t, prompt, "Gebruik deze opbouw:")
	})

	t.Run("custom sections win over the template", func(t *testing.T) {
		req := *base
		req.CustomSections = []string{"Eigen paragraaf", "Nog een"}
		prompt := BuildPrompt(&req, "Biologie", "", "", nil)
		assert.Contains(t, prompt, "Eigen paragraaf")
		assert.Contains(t, prompt, "Nog een")
	})

	t.Run("word count overrides preset", func(t *testing.T) {
		req := *base
		req.WordCount = 1234
		prompt := BuildPrompt(&req, "Biologie", "", "", nil)
		assert.Contains(t, prompt, "1234 woorden")
	})

	t.Run("preset word count is used when no explicit count", func(t *testing.T) {
		req := *base
		req.SizePreset = "kort"
		prompt := BuildPrompt(&req, "Biologie", "", "", nil)
		assert.Contains(t, prompt, "800 woorden")
	})

	t.Run("prior chapters are listed for continuity", func(t *testing.T) {
		prompt := BuildPrompt(base, "Biologie", "", "", []string{"Cellen", "Ademhaling"})
		assert.Contains(t, prompt, "1. Cellen")
		assert.Contains(t, prompt, "2. Ademhaling")
	})

	t.Run("flags add instructions", func(t *testing.T) {
		req := *base
		req.IncludeImages = true
		req.IncludeSources = true
		req.Instructions = "leg extra nadruk op practica"
		prompt := BuildPrompt(&req, "Biologie", "", "", nil)
		assert.Contains(t, prompt, "AFBEELDING")
		assert.Contains(t, prompt, "bronnenlijst")
		assert.Contains(t, prompt, "leg extra nadruk op practica")
	})

	t.Run("no unused dutch artifacts for empty fields", func(t *testing.T) {
		prompt := BuildPrompt(base, "Biologie", "", "", nil)
		assert.False(t, strings.Contains(prompt, "Vak: ."))
		assert.False(t, strings.Contains(prompt, "Niveau: ."))
	})
}
