package common

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/common/ctxkey"
)

// GetRequestBody reads the request body once and caches it on the context so
// later readers (validators, handlers) can consume it again.
func GetRequestBody(c *gin.Context) ([]byte, error) {
	if requestBody, ok := c.Get(ctxkey.KeyRequestBody); ok {
		return requestBody.([]byte), nil
	}
	requestBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read request body")
	}
	_ = c.Request.Body.Close()
	c.Set(ctxkey.KeyRequestBody, requestBody)
	return requestBody, nil
}

// UnmarshalBodyReusable decodes the JSON body into v and restores the body so
// it can be bound again downstream.
func UnmarshalBodyReusable(c *gin.Context, v any) error {
	requestBody, err := GetRequestBody(c)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(requestBody, &v); err != nil {
		return errors.Wrap(err, "unmarshal request body")
	}
	// Restore the body for any subsequent ShouldBind calls.
	c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
	return nil
}

// SetEventStreamHeaders prepares the response for Server-Sent Events.
func SetEventStreamHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
}
