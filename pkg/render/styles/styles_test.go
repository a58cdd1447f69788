package styles

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/resumake/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	if err := DefaultLeftColumn().Validate(); err != nil {
		t.Errorf("DefaultLeftColumn().Validate() = %v", err)
	}
}

func TestNormalize(t *testing.T) {
	got := Styles{FontSize: "18", FontFamily: "georgia"}.Normalize()
	want := Styles{FontSize: "18px", FontFamily: "Georgia, serif", Color: "#111827"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() (-want +got):\n%s", diff)
	}
	if got.FontName() != "Georgia" {
		t.Errorf("FontName() = %q", got.FontName())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		s    Styles
	}{
		{"size not offered", Styles{FontSize: "13px", FontFamily: Fonts[0].Stack, Color: "#000"}},
		{"family not offered", Styles{FontSize: "14px", FontFamily: "Comic Sans", Color: "#000"}},
		{"bad color", Styles{FontSize: "14px", FontFamily: Fonts[0].Stack, Color: "red"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(); !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("Validate() = %v, want %s", err, errors.ErrCodeInvalidStyle)
			}
		})
	}
}

func TestBaseSize(t *testing.T) {
	if got := (Styles{FontSize: "16px"}).BaseSize(); got != 12 {
		t.Errorf("BaseSize(16px) = %v, want 12", got)
	}
	if got := (Styles{FontSize: "junk"}).BaseSize(); got != 10.5 {
		t.Errorf("BaseSize(junk) = %v, want fallback 10.5", got)
	}
}

func TestLookupTheme(t *testing.T) {
	th, err := LookupTheme("")
	if err != nil || th.Name != DefaultTheme {
		t.Errorf("LookupTheme(\"\") = %v, %v", th.Name, err)
	}
	if th, err := LookupTheme("Green"); err != nil || th.Accent != "#059669" {
		t.Errorf("LookupTheme(Green) = %+v, %v", th, err)
	}
	if _, err := LookupTheme("pink"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("LookupTheme(pink) error = %v", err)
	}
}

func TestLeftColumnNormalize(t *testing.T) {
	got := LeftColumn{Text: "#fff"}.Normalize()
	if got.Background != "#f3f4f6" || got.Text != "#fff" {
		t.Errorf("Normalize() = %+v", got)
	}
	if err := (LeftColumn{Background: "nope", Text: "#fff"}).Validate(); err == nil {
		t.Error("Validate() accepted a bad background")
	}
}

func TestWrap(t *testing.T) {
	// size 10 -> 5.5 units per glyph; width 55 -> 10 glyphs per line
	tests := []struct {
		in   string
		want []string
	}{
		{"Go SQL Docker", []string{"Go SQL", "Docker"}},
		{"abcdefghijklmnop", []string{"abcdefghij", "klmnop"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"fits fine", []string{"fits fine"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Wrap(tt.in, 55, 10)); diff != "" {
			t.Errorf("Wrap(%q) (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestSplitURLs(t *testing.T) {
	got := SplitURLs("see https://github.com/jane and http://x.io")
	want := []Segment{
		{Text: "see "},
		{Text: "https://github.com/jane", URL: "https://github.com/jane"},
		{Text: " and "},
		{Text: "http://x.io", URL: "http://x.io"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitURLs() (-want +got):\n%s", diff)
	}
	if got := SplitURLs(""); len(got) != 0 {
		t.Errorf("SplitURLs(\"\") = %v", got)
	}
}

func TestCase(t *testing.T) {
	if got := Upper("Skills"); got != "SKILLS" {
		t.Errorf("Upper() = %q", got)
	}
	if got := Title("social media"); got != "Social Media" {
		t.Errorf("Title() = %q", got)
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`R&D <lead>`); got != "R&amp;D &lt;lead&gt;" {
		t.Errorf("EscapeXML() = %q", got)
	}
}
