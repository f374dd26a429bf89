// Package sanitize converts the stray inline HTML that generation models emit
// into Markdown before it reaches the browser. It operates on incremental
// stream fragments, so it also owns the carry buffer that keeps a tag split
// across chunk boundaries from leaking to the client half-rendered.
package sanitize

import (
	"regexp"
	"strings"
)

// tagRe matches one HTML tag, opening or closing, with any attributes.
// A bare '<' not followed by a letter (e.g. "a < b") is left alone.
var tagRe = regexp.MustCompile(`(?i)<(/?)([a-z][a-z0-9]*)\b[^<>]*?/?>`)

// tagMarkdown maps the safe inline subset to Markdown. Open and close
// replacements are listed separately; anything absent from the table is
// dropped entirely, attributes included.
var tagMarkdown = map[string][2]string{
	"strong": {"**", "**"},
	"b":      {"**", "**"},
	"em":     {"_", "_"},
	"i":      {"_", "_"},
	"code":   {"`", "`"},
	"br":     {"\n", ""},
	"p":      {"", "\n\n"},
	"li":     {"- ", "\n"},
	"h1":     {"# ", "\n\n"},
	"h2":     {"## ", "\n\n"},
	"h3":     {"### ", "\n\n"},
}

// Sanitize rewrites safe inline HTML as Markdown and strips everything else.
// It is pure and idempotent: content without HTML tags passes through
// untouched, so sanitizing twice equals sanitizing once. It never panics;
// on any internal failure it degrades to stripping all tags.
func Sanitize(s string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = stripTags(s)
		}
	}()

	if !strings.Contains(s, "<") {
		return s
	}
	return tagRe.ReplaceAllStringFunc(s, func(tag string) string {
		m := tagRe.FindStringSubmatch(tag)
		if m == nil {
			return ""
		}
		closing := m[1] == "/"
		repl, ok := tagMarkdown[strings.ToLower(m[2])]
		if !ok {
			return ""
		}
		if closing {
			return repl[1]
		}
		return repl[0]
	})
}

// stripTags is the degraded fallback: remove anything tag-shaped, keep text.
// A '<' that is never closed drops only the '<' itself, the rest of the
// text is kept.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for {
		open := strings.IndexByte(s, '<')
		if open < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:open])
		rest := s[open+1:]
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		s = rest[end+1:]
	}
}

// TagCarry buffers a possibly incomplete HTML tag that spans a chunk
// boundary. It holds at most one partial tag, starting at the last unmatched
// '<'. The held suffix must be flushed through the sanitizer when the stream
// ends, even if the tag never completed.
//
// The last-'<'-vs-last-'>' comparison is a heuristic, not a tokenizer: a
// literal '<' that is not part of a tag ("a < b") is held until the next
// fragment arrives. That delay is accepted; the text is never lost.
type TagCarry struct {
	held string
}

// Split prepends any held fragment, then returns the prefix that is safe to
// sanitize and emit now. A trailing incomplete tag is retained for the next
// call.
func (tc *TagCarry) Split(fragment string) (emit string) {
	s := tc.held + fragment
	tc.held = ""

	lastOpen := strings.LastIndex(s, "<")
	if lastOpen < 0 {
		return s
	}
	if lastOpen > strings.LastIndex(s, ">") {
		// Fragment ends mid-tag; hold from the last '<' onward.
		tc.held = s[lastOpen:]
		return s[:lastOpen]
	}
	return s
}

// Flush returns whatever is still held and clears the buffer.
func (tc *TagCarry) Flush() string {
	held := tc.held
	tc.held = ""
	return held
}
