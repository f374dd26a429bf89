package streaming

import (
	"bytes"
	"strings"
)

// DoneSentinel is the literal data payload that terminates a chat-completion
// stream. It is never valid JSON and must never be parsed as such.
const DoneSentinel = "[DONE]"

// scanBufferSize is the initial scanner buffer; maxEventSize bounds a single
// event block so a missing delimiter cannot grow the buffer without limit.
const (
	scanBufferSize = 64 * 1024
	maxEventSize   = 1024 * 1024
)

// ScanEvents is a bufio.SplitFunc that tokenizes a Server-Sent-Events byte
// stream into complete event blocks. Events are delimited by a blank line;
// single newlines never terminate a token, so a JSON payload split across
// arbitrary network chunks is reassembled before anyone tries to parse it.
// At EOF the trailing partial block is emitted as a final token.
func ScanEvents(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i, delim := eventBoundary(data); i >= 0 {
		return i + delim, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	// Request more data.
	return 0, nil, nil
}

// eventBoundary finds the earliest blank-line delimiter, handling both LF and
// CRLF framing. Returns -1 when no complete event is buffered yet.
func eventBoundary(data []byte) (idx, delimLen int) {
	lf := bytes.Index(data, []byte("\n\n"))
	crlf := bytes.Index(data, []byte("\r\n\r\n"))
	switch {
	case lf < 0 && crlf < 0:
		return -1, 0
	case crlf < 0:
		return lf, 2
	case lf < 0 || crlf < lf:
		return crlf, 4
	default:
		return lf, 2
	}
}

// ParseEventData extracts the data payload from one SSE event block. An event
// may carry multiple data lines; they are joined with a newline per the SSE
// specification. Both the "data:" and "data: " prefix variants are accepted.
// Blocks without any data line (comments, keep-alives) report ok=false.
func ParseEventData(block string) (data string, ok bool) {
	var parts []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		v := strings.TrimPrefix(line, "data:")
		v = strings.TrimPrefix(v, " ")
		parts = append(parts, v)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}
