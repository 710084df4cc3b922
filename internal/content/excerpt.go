package content

import (
	"strings"

	"golang.org/x/net/html"
)

// Excerpt reduces a rich-text CMS body to a plain-text snippet of at
// most maxRunes runes, truncated at a word boundary. Used for search
// result listings and the preview detail view.
func Excerpt(richText string, maxRunes int) string {
	if richText == "" {
		return ""
	}

	text := richText
	if doc, err := html.Parse(strings.NewReader(richText)); err == nil {
		var b strings.Builder
		collectText(doc, &b)
		text = b.String()
	}

	text = strings.Join(strings.Fields(text), " ")
	if maxRunes <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}

	cut := string(runes[:maxRunes])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
