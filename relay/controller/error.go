package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/common/config"
	"github.com/handboekai/handboek-api/relay/model"
)

// GeneralErrorResponse covers the error envelopes upstream providers use.
// OpenRouter follows the OpenAI shape but proxied providers behind it do not
// always agree on the field name.
type GeneralErrorResponse struct {
	Error    model.Error `json:"error"`
	Message  string      `json:"message"`
	Msg      string      `json:"msg"`
	ErrorMsg string      `json:"error_msg"`
}

func (e GeneralErrorResponse) ToMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Msg != "" {
		return e.Msg
	}
	return e.ErrorMsg
}

// RelayErrorHandler parses an upstream error response into our unified error
// model. For request-scoped logging, prefer RelayErrorHandlerWithContext.
func RelayErrorHandler(resp *http.Response) (errWithCode *model.ErrorWithStatusCode) {
	if resp == nil {
		return &model.ErrorWithStatusCode{
			StatusCode: http.StatusInternalServerError,
			Error: model.Error{
				Message: "resp is nil",
				Type:    "upstream_error",
				Code:    "bad_response",
			},
		}
	}
	errWithCode = &model.ErrorWithStatusCode{
		StatusCode: resp.StatusCode,
		Error: model.Error{
			Type:  "upstream_error",
			Code:  "bad_response_status_code",
			Param: strconv.Itoa(resp.StatusCode),
		},
	}
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}
	if err = resp.Body.Close(); err != nil {
		return
	}
	var errResponse GeneralErrorResponse
	if err = json.Unmarshal(responseBody, &errResponse); err != nil {
		errWithCode.Error.Message = string(responseBody)
		return
	}

	if errResponse.Error.Message != "" {
		// OpenAI format error, keep the full structure
		errWithCode.Error = errResponse.Error
	} else {
		errWithCode.Error.Message = errResponse.ToMessage()
	}
	if errWithCode.Error.Message == "" {
		errWithCode.Error.Message = fmt.Sprintf("bad response status code %d", resp.StatusCode)
	}
	return
}

// RelayErrorHandlerWithContext logs the upstream body with the request-scoped
// logger before parsing it.
func RelayErrorHandlerWithContext(c *gin.Context, resp *http.Response) *model.ErrorWithStatusCode {
	if resp == nil {
		return RelayErrorHandler(resp)
	}
	responseBody, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if config.DebugEnabled {
		gmw.GetLogger(c).Info("upstream error response",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response", responseBody),
		)
	}
	resp.Body = io.NopCloser(bytes.NewReader(responseBody))
	return RelayErrorHandler(resp)
}
