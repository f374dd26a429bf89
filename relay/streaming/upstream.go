package streaming

import (
	"encoding/json"
	"strings"

	relaymodel "github.com/handboekai/handboek-api/relay/model"
)

// MessageKind tags the normalized messages produced from upstream events.
type MessageKind int

const (
	KindContent MessageKind = iota
	KindError
	KindDone
)

// Message is the relay's internal representation of one normalized upstream
// signal. A single upstream event may yield zero, one, or two messages (an
// error alongside partial content).
type Message struct {
	Kind MessageKind
	Text string
}

// upstreamChunk covers the chat-completion payload shapes we recognize, in
// priority order: an error object, a streaming delta, and the non-streaming
// message shape some providers fall back to mid-stream.
type upstreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *relaymodel.Error `json:"error"`
	Usage *relaymodel.Usage `json:"usage"`
}

// DecodeUpstreamData normalizes one SSE data payload into messages, plus the
// usage block when the provider attaches one to the final chunk. The [DONE]
// sentinel short-circuits before any JSON parsing. Payloads that fail to
// parse are treated as provider keep-alive noise and yield nothing; they
// never abort the stream.
func DecodeUpstreamData(data string) ([]Message, *relaymodel.Usage) {
	if strings.TrimSpace(data) == DoneSentinel {
		return []Message{{Kind: KindDone}}, nil
	}

	var chunk upstreamChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return nil, nil
	}

	var msgs []Message
	if chunk.Error != nil && chunk.Error.Message != "" {
		msgs = append(msgs, Message{Kind: KindError, Text: chunk.Error.Message})
	}
	if len(chunk.Choices) > 0 {
		choice := chunk.Choices[0]
		switch {
		case choice.Delta.Content != "":
			msgs = append(msgs, Message{Kind: KindContent, Text: choice.Delta.Content})
		case choice.Message.Content != "":
			msgs = append(msgs, Message{Kind: KindContent, Text: choice.Message.Content})
		}
	}
	return msgs, chunk.Usage
}
