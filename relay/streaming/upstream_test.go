package streaming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUpstreamData(t *testing.T) {
	t.Run("done sentinel", func(t *testing.T) {
		msgs, usage := DecodeUpstreamData("[DONE]")
		require.Len(t, msgs, 1)
		assert.Equal(t, KindDone, msgs[0].Kind)
		assert.Nil(t, usage)
	})

	t.Run("done sentinel with surrounding whitespace", func(t *testing.T) {
		msgs, _ := DecodeUpstreamData("  [DONE] ")
		require.Len(t, msgs, 1)
		assert.Equal(t, KindDone, msgs[0].Kind)
	})

	t.Run("streaming delta content", func(t *testing.T) {
		msgs, _ := DecodeUpstreamData(`{"choices":[{"delta":{"content":"Hallo"}}]}`)
		require.Len(t, msgs, 1)
		assert.Equal(t, KindContent, msgs[0].Kind)
		assert.Equal(t, "Hallo", msgs[0].Text)
	})

	t.Run("non-streaming message content", func(t *testing.T) {
		msgs, _ := DecodeUpstreamData(`{"choices":[{"message":{"content":"volledige tekst"}}]}`)
		require.Len(t, msgs, 1)
		assert.Equal(t, KindContent, msgs[0].Kind)
		assert.Equal(t, "volledige tekst", msgs[0].Text)
	})

	t.Run("delta wins over message", func(t *testing.T) {
		msgs, _ := DecodeUpstreamData(`{"choices":[{"delta":{"content":"d"},"message":{"content":"m"}}]}`)
		require.Len(t, msgs, 1)
		assert.Equal(t, "d", msgs[0].Text)
	})

	t.Run("error payload", func(t *testing.T) {
		msgs, _ := DecodeUpstreamData(`{"error":{"message":"rate limited","type":"rate_limit"}}`)
		require.Len(t, msgs, 1)
		assert.Equal(t, KindError, msgs[0].Kind)
		assert.Equal(t, "rate limited", msgs[0].Text)
	})

	t.Run("error alongside content yields both, error first", func(t *testing.T) {
		msgs, _ := DecodeUpstreamData(`{"error":{"message":"cut off"},"choices":[{"delta":{"content":"partial"}}]}`)
		require.Len(t, msgs, 2)
		assert.Equal(t, KindError, msgs[0].Kind)
		assert.Equal(t, KindContent, msgs[1].Kind)
	})

	t.Run("invalid json is keep-alive noise", func(t *testing.T) {
		msgs, usage := DecodeUpstreamData("not json at all")
		assert.Nil(t, msgs)
		assert.Nil(t, usage)
	})

	t.Run("empty delta yields nothing", func(t *testing.T) {
		msgs, _ := DecodeUpstreamData(`{"choices":[{"delta":{}}]}`)
		assert.Empty(t, msgs)
	})

	t.Run("usage is captured from the final chunk", func(t *testing.T) {
		msgs, usage := DecodeUpstreamData(`{"choices":[{"delta":{}}],"usage":{"prompt_tokens":12,"completion_tokens":345,"total_tokens":357}}`)
		assert.Empty(t, msgs)
		require.NotNil(t, usage)
		assert.Equal(t, 12, usage.PromptTokens)
		assert.Equal(t, 345, usage.CompletionTokens)
	})
}

func TestReadStream(t *testing.T) {
	t.Run("decodes the outbound event sequence", func(t *testing.T) {
		body := `data: {"type":"prompt","content":"schrijf hoofdstuk 1"}` + "\n\n" +
			`data: {"type":"content","content":"Hallo "}` + "\n\n" +
			`data: {"type":"content","content":"wereld"}` + "\n\n" +
			`data: {"type":"done"}` + "\n\n"

		var got []StreamMessage
		err := ReadStream(strings.NewReader(body), func(msg StreamMessage) {
			got = append(got, msg)
		})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, TypePrompt, got[0].Type)
		assert.Equal(t, "Hallo wereld", got[1].Content+got[2].Content)
		assert.Equal(t, TypeDone, got[3].Type)
	})

	t.Run("skips undecodable payloads", func(t *testing.T) {
		body := "data: ???\n\n" + `data: {"type":"done"}` + "\n\n"
		var got []StreamMessage
		err := ReadStream(strings.NewReader(body), func(msg StreamMessage) {
			got = append(got, msg)
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, TypeDone, got[0].Type)
	})
}
