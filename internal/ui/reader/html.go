package reader

import (
	"strings"

	"golang.org/x/net/html"
)

// skipElements are containers whose text content never belongs in a
// plain-text rendering of an email body.
var skipElements = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
	"title":  true,
}

// blockElements force a line break before and after their content.
var blockElements = map[string]bool{
	"p":          true,
	"div":        true,
	"br":         true,
	"tr":         true,
	"li":         true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"blockquote": true,
	"table":      true,
	"ul":         true,
	"ol":         true,
}

// HTMLToText extracts readable plain text from an HTML email body. Malformed
// markup is tolerated; on a hard parse error the raw input is returned so the
// user still sees something.
func HTMLToText(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return src
	}

	var b strings.Builder
	extractText(doc, &b)

	return collapseBlankLines(b.String())
}

func extractText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && skipElements[n.Data] {
		return
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			b.WriteString(text)
			b.WriteString(" ")
		}
	}

	if n.Type == html.ElementNode && blockElements[n.Data] {
		b.WriteString("\n")
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, b)
	}

	if n.Type == html.ElementNode && blockElements[n.Data] {
		b.WriteString("\n")
	}
}

// collapseBlankLines trims trailing spaces and squeezes runs of blank lines
// down to a single one.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
