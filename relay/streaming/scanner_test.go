package streaming

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkedReader returns at most size bytes per Read call, simulating
// arbitrary network fragmentation.
type chunkedReader struct {
	data []byte
	size int
	pos  int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := r.size
	if n > len(p) {
		n = len(p)
	}
	if r.pos+n > len(r.data) {
		n = len(r.data) - r.pos
	}
	copy(p, r.data[r.pos:r.pos+n])
	r.pos += n
	return n, nil
}

func scanAll(t *testing.T, r io.Reader) []string {
	t.Helper()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, scanBufferSize), maxEventSize)
	scanner.Split(ScanEvents)
	var events []string
	for scanner.Scan() {
		events = append(events, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestScanEvents(t *testing.T) {
	t.Run("blank line delimits events", func(t *testing.T) {
		events := scanAll(t, strings.NewReader("data: one\n\ndata: two\n\n"))
		assert.Equal(t, []string{"data: one", "data: two"}, events)
	})

	t.Run("single newline does not delimit", func(t *testing.T) {
		events := scanAll(t, strings.NewReader("data: one\ndata: two\n\n"))
		assert.Equal(t, []string{"data: one\ndata: two"}, events)
	})

	t.Run("crlf framing", func(t *testing.T) {
		events := scanAll(t, strings.NewReader("data: one\r\n\r\ndata: two\r\n\r\n"))
		assert.Equal(t, []string{"data: one", "data: two"}, events)
	})

	t.Run("trailing partial block is flushed at EOF", func(t *testing.T) {
		events := scanAll(t, strings.NewReader("data: one\n\ndata: tail"))
		assert.Equal(t, []string{"data: one", "data: tail"}, events)
	})
}

// The event sequence must not depend on how the bytes were chunked on the
// wire.
func TestScanEventsChunkBoundaryInvariance(t *testing.T) {
	stream := "data: {\"a\": 1}\n\n" +
		": keep-alive comment\n\n" +
		"data: {\"b\": \"long payload with \\n escapes and <tags>\"}\n\n" +
		"data: [DONE]\n\n"

	want := scanAll(t, strings.NewReader(stream))
	require.Len(t, want, 4)

	for _, size := range []int{1, 2, 3, 5, 7, 16, 64, len(stream)} {
		got := scanAll(t, &chunkedReader{data: []byte(stream), size: size})
		assert.Equal(t, want, got, "chunk size %d", size)
	}
}

func TestParseEventData(t *testing.T) {
	t.Run("single data line", func(t *testing.T) {
		data, ok := ParseEventData("data: {\"x\":1}")
		require.True(t, ok)
		assert.Equal(t, "{\"x\":1}", data)
	})

	t.Run("no space after colon", func(t *testing.T) {
		data, ok := ParseEventData("data:{\"x\":1}")
		require.True(t, ok)
		assert.Equal(t, "{\"x\":1}", data)
	})

	t.Run("multiple data lines joined with newline", func(t *testing.T) {
		data, ok := ParseEventData("data: first\ndata: second")
		require.True(t, ok)
		assert.Equal(t, "first\nsecond", data)
	})

	t.Run("other fields are ignored", func(t *testing.T) {
		data, ok := ParseEventData("event: message\nid: 42\ndata: payload")
		require.True(t, ok)
		assert.Equal(t, "payload", data)
	})

	t.Run("comment-only block has no data", func(t *testing.T) {
		_, ok := ParseEventData(": keep-alive")
		assert.False(t, ok)
	})

	t.Run("trailing carriage return is stripped", func(t *testing.T) {
		data, ok := ParseEventData("data: payload\r")
		require.True(t, ok)
		assert.Equal(t, "payload", data)
	})
}
