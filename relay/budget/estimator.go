// Package budget sizes the max_tokens parameter for generation requests. The
// estimate must be large enough that the chapter is not truncated mid-section
// and small enough to bound upstream latency and cost. It is deliberately
// arithmetic: no tokenizer is consulted, so it can never fail the request.
package budget

import (
	"math"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"

	"github.com/handboekai/handboek-api/common/logger"
)

// Size presets map the three length tiers teachers pick in the UI to target
// word counts.
const (
	SizeKort   = "kort"
	SizeMiddel = "middel"
	SizeLang   = "lang"
)

var presetWords = map[string]int{
	SizeKort:   800,
	SizeMiddel: 1500,
	SizeLang:   2500,
}

const (
	// tokensPerWord models Dutch prose at roughly 0.75 words per token.
	tokensPerWord = 4.0 / 3.0

	// sectionTokenAllowance covers headers and formatting per section.
	sectionTokenAllowance = 80
	// imageTokenAllowance covers one image placeholder block; the number of
	// placeholders is capped at the section count and at maxImageAllowances.
	imageTokenAllowance = 40
	maxImageAllowances  = 6
	// sourcesTokenAllowance covers the citation block at the chapter end.
	sourcesTokenAllowance = 200
	// contextTokenAllowance reflects the extra tracking the model does when
	// prior chapters are included in the prompt.
	contextTokenAllowance = 150

	// safetyMargin pads the estimate against the truncation risk of the
	// words-to-tokens approximation.
	safetyMargin = 1.3

	// MinMaxTokens and AbsoluteMaxTokens clamp the final budget: the floor
	// prevents degenerate tiny budgets, the ceiling bounds worst-case latency.
	MinMaxTokens      = 1024
	AbsoluteMaxTokens = 16384

	// DefaultMaxTokens is the safe fallback when estimation inputs are
	// unusable; generation must never fail because of the estimator.
	DefaultMaxTokens = 4096

	defaultSectionCount = 5
)

// Params describes the requested chapter, as far as sizing is concerned.
// Immutable input; nothing here is persisted.
type Params struct {
	// WordCount overrides the size preset when positive.
	WordCount int `json:"word_count"`
	// SizePreset is one of kort/middel/lang; middel when empty.
	SizePreset string `json:"size_preset"`
	// TemplateID selects a built-in template for the section count.
	TemplateID string `json:"template_id"`
	// CustomSections wins over the template when non-empty.
	CustomSections []string `json:"custom_sections"`

	IncludeImages  bool `json:"include_images"`
	IncludeSources bool `json:"include_sources"`
	// PriorChapters is how many earlier chapters ride along as prompt context.
	PriorChapters int `json:"prior_chapters"`
}

// Estimate computes the max_tokens budget for a generation request. It is
// pure and deterministic; any internal failure is swallowed and replaced by
// DefaultMaxTokens.
func Estimate(p Params) (tokens int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logger.Error("token budget estimation panicked, using default",
				zap.Any("recovered", r))
			tokens = DefaultMaxTokens
		}
	}()

	tokens, err := estimate(p)
	if err != nil {
		logger.Logger.Warn("token budget estimation failed, using default",
			zap.Error(err), zap.Any("params", p))
		return DefaultMaxTokens
	}
	return tokens
}

func estimate(p Params) (int, error) {
	words, err := resolveWordCount(p)
	if err != nil {
		return 0, err
	}
	sections := resolveSectionCount(p)

	base := math.Ceil(float64(words) * tokensPerWord)

	overhead := float64(sections * sectionTokenAllowance)
	if p.IncludeImages {
		overhead += float64(min(sections, maxImageAllowances) * imageTokenAllowance)
	}
	if p.IncludeSources {
		overhead += sourcesTokenAllowance
	}
	if p.PriorChapters > 0 {
		overhead += contextTokenAllowance
	}

	budget := int(math.Ceil((base + overhead) * safetyMargin))
	return clamp(budget), nil
}

func resolveWordCount(p Params) (int, error) {
	if p.WordCount > 0 {
		return p.WordCount, nil
	}
	if p.WordCount < 0 {
		return 0, errors.Errorf("negative word count %d", p.WordCount)
	}
	preset := p.SizePreset
	if preset == "" {
		preset = SizeMiddel
	}
	words, ok := presetWords[preset]
	if !ok {
		return 0, errors.Errorf("unknown size preset %q", p.SizePreset)
	}
	return words, nil
}

func resolveSectionCount(p Params) int {
	if len(p.CustomSections) > 0 {
		return len(p.CustomSections)
	}
	if n := RequiredSectionCount(p.TemplateID); n > 0 {
		return n
	}
	return defaultSectionCount
}

func clamp(v int) int {
	if v < MinMaxTokens {
		return MinMaxTokens
	}
	if v > AbsoluteMaxTokens {
		return AbsoluteMaxTokens
	}
	return v
}

// PresetWordCount returns the target word count for a size preset.
func PresetWordCount(preset string) (int, bool) {
	words, ok := presetWords[preset]
	return words, ok
}
