package streaming

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/Laisky/errors/v2"
)

// Outbound stream message types, mirrored by the browser client.
const (
	TypePrompt  = "prompt"
	TypeContent = "content"
	TypeError   = "error"
	TypeDone    = "done"
)

// StreamMessage is one event on the browser-facing stream. The prompt message
// is emitted first and at most once; content messages preserve upstream
// order; exactly one done message closes every stream.
type StreamMessage struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ReadStream consumes an outbound SSE body and invokes onMessage for each
// successfully decoded StreamMessage. Blocks without a data line, the [DONE]
// sentinel, and undecodable payloads are skipped silently; they are expected
// provider noise, not errors. This is the Go counterpart of the browser-side
// consumer and is what integration tests use to assert stream contents.
func ReadStream(r io.Reader, onMessage func(StreamMessage)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, scanBufferSize), maxEventSize)
	scanner.Split(ScanEvents)

	for scanner.Scan() {
		data, ok := ParseEventData(scanner.Text())
		if !ok {
			continue
		}
		if strings.TrimSpace(data) == DoneSentinel {
			continue
		}
		var msg StreamMessage
		if err := json.Unmarshal([]byte(data), &msg); err != nil {
			continue
		}
		onMessage(msg)
	}
	return errors.Wrap(scanner.Err(), "read sse stream")
}
