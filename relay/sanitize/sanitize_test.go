package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Run("plain text passes through", func(t *testing.T) {
		assert.Equal(t, "gewone tekst", Sanitize("gewone tekst"))
	})

	t.Run("inline tags become markdown", func(t *testing.T) {
		assert.Equal(t, "**vet** en _schuin_ en `code`",
			Sanitize("<strong>vet</strong> en <em>schuin</em> en <code>code</code>"))
		assert.Equal(t, "**Wereld**", Sanitize("<b>Wereld</b>"))
	})

	t.Run("headers and lists", func(t *testing.T) {
		assert.Equal(t, "## Titel\n\n", Sanitize("<h2>Titel</h2>"))
		assert.Equal(t, "- een\n- twee\n", Sanitize("<li>een</li><li>twee</li>"))
	})

	t.Run("unknown tags are dropped with attributes", func(t *testing.T) {
		assert.Equal(t, "klik hier", Sanitize(`<a href="https://example.com">klik hier</a>`))
		assert.Equal(t, "tekst", Sanitize(`<span class="x" data-y="z">tekst</span>`))
	})

	t.Run("self-closing br", func(t *testing.T) {
		assert.Equal(t, "regel\nvolgende", Sanitize("regel<br/>volgende"))
	})

	t.Run("bare less-than survives", func(t *testing.T) {
		assert.Equal(t, "a < b", Sanitize("a < b"))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{
			"<b>Wereld</b>",
			"**al** _markdown_ `hier`",
			"<h1>Kop</h1><p>alinea</p>",
			"a < b en c > d",
		}
		for _, in := range inputs {
			once := Sanitize(in)
			assert.Equal(t, once, Sanitize(once), "input %q", in)
		}
	})
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "vet tekst", stripTags("<b>vet</b> tekst"))
	assert.Equal(t, "ab", stripTags("a<b"))
	// An unmatched '<' must not swallow the rest of the text.
	assert.Equal(t, "aunclosed b", stripTags("a<unclosed b"))
	assert.Equal(t, "einde", stripTags("einde<"))
}

func TestTagCarry(t *testing.T) {
	t.Run("complete fragment emits everything", func(t *testing.T) {
		var tc TagCarry
		assert.Equal(t, "<b>klaar</b>", tc.Split("<b>klaar</b>"))
		assert.Empty(t, tc.Flush())
	})

	t.Run("complete tags pass through unheld", func(t *testing.T) {
		var carry TagCarry
		first := carry.Split("Hello <b>Wor")
		second := carry.Split("ld</b>!")
		assert.Equal(t, "Hello <b>Wor", first)
		assert.Equal(t, "ld</b>!", second)
		assert.Empty(t, carry.Flush())
	})

	t.Run("chunk ending mid-tag", func(t *testing.T) {
		var tc TagCarry
		emit := tc.Split("Hello <b")
		assert.Equal(t, "Hello ", emit)
		emit = tc.Split(">Wereld</b>")
		assert.Equal(t, "<b>Wereld</b>", emit)
	})

	t.Run("flush returns held partial tag", func(t *testing.T) {
		var tc TagCarry
		_ = tc.Split("einde <img src=")
		assert.Equal(t, "<img src=", tc.Flush())
		assert.Empty(t, tc.Flush())
	})

	t.Run("chunked tag renders identically to unchunked", func(t *testing.T) {
		full := "Hello <b>World</b>!"
		var tc TagCarry
		var out string
		for _, chunk := range []string{"Hello <b>Wor", "ld</b>!"} {
			out += Sanitize(tc.Split(chunk))
		}
		out += Sanitize(tc.Flush())
		assert.Equal(t, Sanitize(full), out)
		assert.Equal(t, "Hello **World**!", out)
	})
}
