package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLToTextExtractsParagraphs(t *testing.T) {
	src := `<html><body><p>Hello there,</p><p>see the attached report.</p></body></html>`

	got := HTMLToText(src)

	assert.Contains(t, got, "Hello there,")
	assert.Contains(t, got, "see the attached report.")
	assert.NotContains(t, got, "<p>")
}

func TestHTMLToTextDropsScriptAndStyle(t *testing.T) {
	src := `<html><head><style>p{color:red}</style></head>` +
		`<body><script>alert(1)</script><p>visible</p></body></html>`

	got := HTMLToText(src)

	assert.Contains(t, got, "visible")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "color:red")
}

func TestHTMLToTextBreaksOnBlockElements(t *testing.T) {
	src := `<div>first</div><div>second</div>`

	got := HTMLToText(src)

	assert.Contains(t, got, "first")
	assert.Contains(t, got, "second")
	assert.NotContains(t, got, "first second", "block elements separate lines")
}

func TestHTMLToTextSqueezesBlankLines(t *testing.T) {
	src := `<p>one</p><br><br><br><p>two</p>`

	got := HTMLToText(src)

	assert.NotContains(t, got, "\n\n\n")
}

func TestHTMLToTextPlainInputPassesThrough(t *testing.T) {
	got := HTMLToText("just words")
	assert.Equal(t, "just words", got)
}
