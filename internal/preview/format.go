// Package preview provides an interactive content preview TUI built on
// Bubble Tea, for eyeballing what the normalization layer hands the
// site before a build.
package preview

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Item is one normalized content entry prepared for display.
type Item struct {
	Title     string
	Slug      string
	Published time.Time
	Featured  bool
	Excerpt   string
	CoverURL  string

	// Entity is the full normalized value, rendered in the JSON view.
	Entity any
}

// wrapText wraps text to the specified width, breaking at word boundaries when possible
func wrapText(text string, width int) string {
	if width <= 0 {
		width = 70
	}

	var result strings.Builder
	var line strings.Builder
	lineLen := 0

	words := strings.Fields(text)
	for i, word := range words {
		wordLen := len(word)

		if lineLen > 0 && lineLen+1+wordLen > width {
			result.WriteString(line.String())
			result.WriteString("\n")
			line.Reset()
			lineLen = 0
		}

		if lineLen > 0 {
			line.WriteString(" ")
			lineLen++
		}

		line.WriteString(word)
		lineLen += wordLen

		if i == len(words)-1 {
			result.WriteString(line.String())
		}
	}

	return result.String()
}

// FormatCompactListItem formats a single entry in compact list format
// Example: "3. ★ 2025-10-21 - Article Title (article-slug)"
func FormatCompactListItem(index int, item Item) string {
	marker := " "
	if item.Featured {
		marker = "★"
	}

	date := "          "
	if !item.Published.IsZero() {
		date = item.Published.Format("2006-01-02")
	}

	return fmt.Sprintf("%d. %s %s - %s (%s)", index+1, marker, date, item.Title, item.Slug)
}

// FormatDetailedItem formats a full entry for the detail view.
func FormatDetailedItem(item Item) string {
	var b strings.Builder

	b.WriteString(item.Title)
	b.WriteString("\n\n")
	b.WriteString("Slug:      " + item.Slug + "\n")
	if !item.Published.IsZero() {
		b.WriteString("Published: " + item.Published.Format(time.RFC3339) + "\n")
	}
	if item.Featured {
		b.WriteString("Featured:  yes\n")
	}
	if item.CoverURL != "" {
		b.WriteString("Cover:     " + item.CoverURL + "\n")
	}
	if item.Excerpt != "" {
		b.WriteString("\n")
		b.WriteString(wrapText(item.Excerpt, 78))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatJSONItem renders the normalized entity as indented JSON, the
// exact shape the rendering layer consumes.
func FormatJSONItem(item Item) string {
	encoded, err := json.MarshalIndent(item.Entity, "", "  ")
	if err != nil {
		return fmt.Sprintf("failed to render entity: %v", err)
	}
	return string(encoded)
}
