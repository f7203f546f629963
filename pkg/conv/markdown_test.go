package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToTerminal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "plain text",
			input:    "Hello world",
			contains: []string{"Hello world"},
		},
		{
			name:     "bold survives as text",
			input:    "this is **important** stuff",
			contains: []string{"important"},
			excludes: []string{"<strong>", "**"},
		},
		{
			name:     "code block content preserved",
			input:    "```\nfunc main() {}\n```",
			contains: []string{"func main() {}"},
			excludes: []string{"<pre>", "```"},
		},
		{
			name:     "list items preserved",
			input:    "- first\n- second",
			contains: []string{"first", "second"},
			excludes: []string{"<li>"},
		},
		{
			name:     "script tags stripped",
			input:    "hello <script>alert(1)</script> there",
			excludes: []string{"<script>", "alert(1)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTerminal([]byte(tt.input))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output %q does not contain %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output %q should not contain %q", got, bad)
				}
			}
		})
	}
}
