package controller

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/common"
	"github.com/handboekai/handboek-api/common/config"
	"github.com/handboekai/handboek-api/common/ctxkey"
	"github.com/handboekai/handboek-api/common/graceful"
	"github.com/handboekai/handboek-api/common/helper"
	"github.com/handboekai/handboek-api/common/logger"
	"github.com/handboekai/handboek-api/model"
	"github.com/handboekai/handboek-api/monitor"
	"github.com/handboekai/handboek-api/relay/adaptor/openrouter"
	"github.com/handboekai/handboek-api/relay/budget"
	relaymodel "github.com/handboekai/handboek-api/relay/model"
)

// RelayGenerate handles POST /api/generate: it sizes the token budget, opens
// the upstream stream and relays it to the client, then persists the chapter.
// Everything after the SSE stream opens is reported in-stream; HTTP error
// codes only happen before the first byte is written.
func RelayGenerate(c *gin.Context) {
	lg := gmw.GetLogger(c)
	ownerKey := c.GetString(ctxkey.OwnerKey)
	startTime := time.Now()

	var req relaymodel.GenerateRequest
	if err := common.UnmarshalBodyReusable(c, &req); err != nil {
		abortGenerate(c, http.StatusBadRequest, errors.Wrap(err, "invalid request"))
		return
	}

	handbook, err := model.GetHandbookById(req.HandbookID, ownerKey)
	if err != nil {
		abortGenerate(c, http.StatusNotFound, errors.New("handbook not found"))
		return
	}
	if req.TemplateID == "" {
		req.TemplateID = handbook.TemplateID
	}
	if req.ChapterIndex <= 0 {
		count, err := model.NextChapterIndex(req.HandbookID)
		if err != nil {
			abortGenerate(c, http.StatusInternalServerError, err)
			return
		}
		req.ChapterIndex = count
	}

	priorTitles, err := model.GetChapterTitles(req.HandbookID, req.ChapterIndex)
	if err != nil {
		lg.Warn("failed to load prior chapter titles", zap.Error(err))
	}

	maxTokens := budget.Estimate(budget.Params{
		WordCount:      req.WordCount,
		SizePreset:     req.SizePreset,
		TemplateID:     req.TemplateID,
		CustomSections: req.CustomSections,
		IncludeImages:  req.IncludeImages,
		IncludeSources: req.IncludeSources,
		PriorChapters:  len(priorTitles),
	})
	c.Set(ctxkey.TokenBudget, maxTokens)

	modelName := req.Model
	if modelName == "" {
		modelName = config.GenerationModel
	}
	prompt := BuildPrompt(&req, handbook.Title, handbook.Subject, handbook.Level, priorTitles)
	chatReq := &relaymodel.ChatRequest{
		Model:  modelName,
		Stream: true,
		Messages: []relaymodel.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	}

	chapter := &model.Chapter{
		HandbookId:   req.HandbookID,
		ChapterIndex: req.ChapterIndex,
		Title:        req.ChapterTitle,
		Status:       model.ChapterStatusGenerating,
		Model:        modelName,
	}
	if err := chapter.Insert(); err != nil {
		abortGenerate(c, http.StatusInternalServerError, err)
		return
	}

	lg.Info("starting chapter generation",
		zap.Int("handbook_id", req.HandbookID),
		zap.Int("chapter_id", chapter.Id),
		zap.String("model", modelName),
		zap.Int("max_tokens", maxTokens))

	resp, err := openrouter.DoRequest(c, chatReq)
	if err != nil {
		markFailed(chapter.Id)
		monitor.RecordGeneration(modelName, "connect_error", time.Since(startTime))
		if connectFailureStatus(err) == http.StatusGatewayTimeout {
			abortGenerate(c, http.StatusGatewayTimeout, errors.New("upstream connection timed out"))
		} else {
			abortGenerate(c, http.StatusBadGateway, errors.New("upstream connection failed"))
		}
		return
	}
	if resp.StatusCode != http.StatusOK {
		errWithCode := RelayErrorHandlerWithContext(c, resp)
		markFailed(chapter.Id)
		monitor.RecordGeneration(modelName, "upstream_error", time.Since(startTime))
		c.JSON(errWithCode.StatusCode, gin.H{
			"success": false,
			"message": errWithCode.Error.Message,
		})
		return
	}

	content, usage := openrouter.StreamHandler(c, resp, prompt)
	elapsed := time.Since(startTime)

	promptTokens := openrouter.CountTokenMessages(chatReq.Messages)
	if usage == nil {
		usage = openrouter.ResponseText2Usage(content, promptTokens)
	}

	status := model.ChapterStatusDone
	outcome := "ok"
	if content == "" {
		status = model.ChapterStatusFailed
		outcome = "empty"
	}
	monitor.RecordGeneration(modelName, outcome, elapsed)
	monitor.RecordTokens(modelName, usage)

	lg.Info("chapter generation finished",
		zap.Int("chapter_id", chapter.Id),
		zap.String("outcome", outcome),
		zap.Int("prompt_tokens", usage.PromptTokens),
		zap.Int("completion_tokens", usage.CompletionTokens),
		zap.Int64("elapsed_ms", helper.CalcElapsedTime(startTime)))

	// Persist after the stream closed; shutdown waits for this to finish.
	chapter.Content = content
	chapter.Status = status
	chapter.PromptTokens = usage.PromptTokens
	chapter.CompletionTokens = usage.CompletionTokens
	graceful.GoCritical(context.Background(), "persist chapter", func(ctx context.Context) {
		if err := chapter.Update(); err != nil {
			logger.Logger.Error("failed to persist generated chapter",
				zap.Int("chapter_id", chapter.Id), zap.Error(err))
		}
	})
}

// connectFailureStatus maps a connect-phase error to the outward status.
// Context deadlines and transport timeouts (including the header deadline)
// report 504, anything else 502.
func connectFailureStatus(err error) int {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func abortGenerate(c *gin.Context, statusCode int, err error) {
	gmw.GetLogger(c).Warn("generation rejected",
		zap.Int("status_code", statusCode), zap.Error(err))
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": helper.MessageWithRequestId(err.Error(), c.GetString(helper.RequestIdKey)),
	})
}

func markFailed(chapterId int) {
	if err := model.UpdateChapterStatus(chapterId, model.ChapterStatusFailed); err != nil {
		logger.Logger.Error("failed to mark chapter failed",
			zap.Int("chapter_id", chapterId), zap.Error(err))
	}
}
