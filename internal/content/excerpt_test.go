package content

import "testing"

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			maxRunes: 100,
			expected: "",
		},
		{
			name:     "strips markup",
			input:    "<p>First paragraph.</p><p>Second <strong>bold</strong> paragraph.</p>",
			maxRunes: 100,
			expected: "First paragraph. Second bold paragraph.",
		},
		{
			name:     "skips script content",
			input:    "<p>Visible</p><script>alert('hidden')</script>",
			maxRunes: 100,
			expected: "Visible",
		},
		{
			name:     "collapses whitespace",
			input:    "line one\n\n   line two",
			maxRunes: 100,
			expected: "line one line two",
		},
		{
			name:     "truncates at word boundary",
			input:    "one two three four five",
			maxRunes: 12,
			expected: "one two…",
		},
		{
			name:     "no limit when maxRunes is zero",
			input:    "anything goes here",
			maxRunes: 0,
			expected: "anything goes here",
		},
		{
			name:     "arabic text counted in runes",
			input:    "مرحبا بكم في المجلة الرقمية",
			maxRunes: 12,
			expected: "مرحبا بكم…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Excerpt(tt.input, tt.maxRunes)
			if got != tt.expected {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.input, tt.maxRunes, got, tt.expected)
			}
		})
	}
}
