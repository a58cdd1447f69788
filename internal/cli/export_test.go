package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to pdf", "", []string{"pdf"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and empties", " json, ,svg ", []string{"json", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "resume.json", "resume"},
		{"", "docs/cv.toml", "docs/cv"},
		{"out/jane.pdf", "resume.json", "out/jane"},
		{"out/jane", "resume.json", "out/jane"},
		{"jane.v2", "resume.json", "jane.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestNeedsConverter(t *testing.T) {
	if needsConverter([]string{"svg", "json"}) {
		t.Error("svg and json should not need rsvg-convert")
	}
	if !needsConverter([]string{"svg", "png"}) {
		t.Error("png needs rsvg-convert")
	}
}
