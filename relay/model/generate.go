package model

// GenerateRequest is the body for POST /api/generate. HandbookID scopes the
// chapter to an existing handbook; the remaining fields drive the prompt and
// the token budget.
type GenerateRequest struct {
	HandbookID     int      `json:"handbook_id" binding:"required"`
	ChapterTitle   string   `json:"chapter_title" binding:"required"`
	ChapterIndex   int      `json:"chapter_index"`
	WordCount      int      `json:"word_count"`
	SizePreset     string   `json:"size_preset"`
	TemplateID     string   `json:"template_id"`
	CustomSections []string `json:"custom_sections"`
	IncludeImages  bool     `json:"include_images"`
	IncludeSources bool     `json:"include_sources"`
	Instructions   string   `json:"instructions"`
	Model          string   `json:"model"`
}
