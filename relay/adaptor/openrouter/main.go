package openrouter

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
	"strings"

	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/handboekai/handboek-api/common"
	"github.com/handboekai/handboek-api/common/render"
	relaymodel "github.com/handboekai/handboek-api/relay/model"
	"github.com/handboekai/handboek-api/relay/sanitize"
	"github.com/handboekai/handboek-api/relay/streaming"
)

const (
	scanBufferSize = 64 * 1024
	maxEventSize   = 1024 * 1024
)

// StreamHandler relays the upstream chat-completion response to the browser
// as normalized SSE events: one prompt event first, sanitized content events
// in upstream order, at most one error event, and exactly one done event on
// every path. It returns the sanitized text that was emitted plus the usage
// reported by the upstream (nil when none was sent).
//
// A relay instance state is local to this call; concurrent requests each run
// their own. Each event is flushed before the next upstream read so a slow
// client applies backpressure instead of growing a buffer.
func StreamHandler(c *gin.Context, resp *http.Response, prompt string) (collected string, usage *relaymodel.Usage) {
	lg := gmw.GetLogger(c)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			lg.Warn("close upstream body", zap.Error(err))
		}
	}()

	common.SetEventStreamHeaders(c)

	var (
		contentText strings.Builder
		carry       sanitize.TagCarry
		rawBody     bytes.Buffer

		events      int
		emitted     bool
		doneSeen    bool
		errorSeen   bool
		errorOut    bool
	)

	writeMessage := func(msg streaming.StreamMessage) {
		if err := render.ObjectData(c, msg); err != nil {
			lg.Warn("write stream message", zap.Error(err))
		}
	}

	emitContent := func(fragment string) {
		clean := sanitize.Sanitize(fragment)
		if clean == "" {
			return
		}
		writeMessage(streaming.StreamMessage{Type: streaming.TypeContent, Content: clean})
		contentText.WriteString(clean)
		emitted = true
	}

	emitError := func(message string) {
		errorSeen = true
		if errorOut {
			return
		}
		errorOut = true
		writeMessage(streaming.StreamMessage{Type: streaming.TypeError, Error: message})
	}

	// The prompt message is always first so the client can associate the
	// stream with the request it issued.
	writeMessage(streaming.StreamMessage{Type: streaming.TypePrompt, Content: prompt})

	contentType := resp.Header.Get("Content-Type")
	isEventStream := strings.Contains(contentType, "text/event-stream") ||
		!strings.Contains(contentType, "application/json")

	if isEventStream {
		// Tee the raw bytes so the JSON fallback can re-read the body after
		// the SSE parse consumed it.
		scanner := bufio.NewScanner(io.TeeReader(resp.Body, &rawBody))
		scanner.Buffer(make([]byte, 0, scanBufferSize), maxEventSize)
		scanner.Split(streaming.ScanEvents)

		for scanner.Scan() {
			data, ok := streaming.ParseEventData(scanner.Text())
			if !ok {
				continue
			}
			events++

			msgs, chunkUsage := streaming.DecodeUpstreamData(data)
			if chunkUsage != nil {
				usage = chunkUsage
			}
			for _, msg := range msgs {
				switch msg.Kind {
				case streaming.KindDone:
					doneSeen = true
				case streaming.KindError:
					// Surface the upstream error but keep draining; partial
					// content may still follow.
					lg.Warn("upstream reported error mid-stream", zap.String("message", msg.Text))
					emitError(msg.Text)
				case streaming.KindContent:
					if doneSeen {
						continue
					}
					emitContent(carry.Split(msg.Text))
				}
			}
		}
		if err := scanner.Err(); err != nil {
			// Mid-stream read failure (timeout, abort): best-effort error,
			// then the unconditional done below.
			lg.Warn("upstream stream read failed", zap.Error(err))
			emitError("stream interrupted")
		}

		// The carry buffer must be flushed even if the tag never completed.
		if held := carry.Flush(); held != "" {
			emitContent(held)
		}
	} else {
		lg.Warn("upstream returned non-streaming content type", zap.String("content_type", contentType))
		if _, err := io.Copy(&rawBody, resp.Body); err != nil {
			lg.Warn("read upstream body", zap.Error(err))
		}
	}

	// Fallback: nothing reached the client and the stream either failed or
	// never produced a single event. Some providers answer a streaming
	// request with one complete JSON document instead.
	if !emitted && (errorSeen || events == 0) {
		msgs, fallbackUsage := streaming.DecodeUpstreamData(rawBody.String())
		if fallbackUsage != nil {
			usage = fallbackUsage
		}
		for _, msg := range msgs {
			switch msg.Kind {
			case streaming.KindContent:
				emitContent(msg.Text)
			case streaming.KindError:
				emitError(msg.Text)
			}
		}
		if emitted {
			lg.Info("json fallback recovered content", zap.Int("bytes", rawBody.Len()))
		}
	}

	// Unconditional: the client reader must never hang waiting for done.
	writeMessage(streaming.StreamMessage{Type: streaming.TypeDone})

	return contentText.String(), usage
}
