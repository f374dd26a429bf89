package render

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"
)

// Event renders one raw Server-Sent Event block. gin's built-in SSEvent
// always emits an "event:" line, which the browser-side reader does not
// expect; this render type writes the bare "data: ...\n\n" framing instead.
type Event struct {
	Data string
}

func (e Event) Render(w http.ResponseWriter) error {
	e.WriteContentType(w)
	_, err := w.Write([]byte(e.Data + "\n\n"))
	return errors.Wrap(err, "write sse event")
}

func (e Event) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "text/event-stream")
	}
}

// StringData writes str as a single SSE data event and flushes immediately so
// slow clients apply backpressure per event rather than per buffer.
func StringData(c *gin.Context, str string) {
	str = strings.TrimPrefix(str, "data: ")
	str = strings.TrimSuffix(str, "\r")
	c.Render(-1, Event{Data: "data: " + str})
	c.Writer.Flush()
}

// ObjectData marshals object to JSON and writes it as a single SSE data event.
func ObjectData(c *gin.Context, object any) error {
	jsonData, err := json.Marshal(object)
	if err != nil {
		return errors.Wrapf(err, "marshal sse object %v", object)
	}
	StringData(c, string(jsonData))
	return nil
}
