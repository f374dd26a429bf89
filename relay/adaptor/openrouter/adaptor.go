package openrouter

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/common/client"
	"github.com/handboekai/handboek-api/common/config"
	relaymodel "github.com/handboekai/handboek-api/relay/model"
)

// GetRequestURL returns the chat-completions endpoint of the configured
// OpenRouter-compatible provider.
func GetRequestURL() string {
	return config.UpstreamBaseURL + "/chat/completions"
}

// DoRequest sends the generation request upstream. The request context is the
// inbound request's context, so a client disconnect aborts the upstream call.
// Connection-phase failures are reported as errors here; the caller maps them
// to an outward status before any stream is opened.
func DoRequest(c *gin.Context, request *relaymodel.ChatRequest) (*http.Response, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "marshal upstream request")
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost,
		GetRequestURL(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, errors.Wrap(err, "build upstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.UpstreamAPIKey)
	// OpenRouter attribution headers.
	req.Header.Set("HTTP-Referer", config.ServerAddress)
	req.Header.Set("X-Title", config.SystemName)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := client.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do upstream request")
	}
	return resp, nil
}
