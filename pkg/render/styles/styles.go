// Package styles holds presentation settings for resume rendering: fonts,
// text color, color themes and the left column colors of two-column
// templates, plus the text measuring helpers the SVG sink lays out with.
//
// None of these settings influence which region a section lands in. They
// are passed through the editor untouched and consumed only by renderers.
package styles

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/resumake/pkg/errors"
)

// Styles are the user-selected text settings.
type Styles struct {
	FontSize   string `json:"fontSize" toml:"font_size"`
	FontFamily string `json:"fontFamily" toml:"font_family"`
	Color      string `json:"color" toml:"color"`
}

// FontSizes are the selectable font sizes.
var FontSizes = []string{"12px", "14px", "16px", "18px", "22px"}

// Font is a selectable font: a short name and the CSS family stack written
// into the SVG.
type Font struct {
	Name  string
	Stack string
}

// Fonts are the selectable font families.
var Fonts = []Font{
	{Name: "Inter", Stack: "Inter, Arial, sans-serif"},
	{Name: "Georgia", Stack: "Georgia, serif"},
	{Name: "Helvetica", Stack: "Helvetica, sans-serif"},
}

// Default returns the styles new documents start with.
func Default() Styles {
	return Styles{
		FontSize:   "14px",
		FontFamily: Fonts[0].Stack,
		Color:      "#111827",
	}
}

// Normalize fills empty fields from Default, expands a short font name
// ("georgia") to its family stack and adds a missing "px" unit.
func (s Styles) Normalize() Styles {
	d := Default()
	if s.FontSize == "" {
		s.FontSize = d.FontSize
	} else if _, err := strconv.Atoi(s.FontSize); err == nil {
		s.FontSize += "px"
	}
	if s.FontFamily == "" {
		s.FontFamily = d.FontFamily
	}
	for _, f := range Fonts {
		if strings.EqualFold(s.FontFamily, f.Name) {
			s.FontFamily = f.Stack
		}
	}
	if s.Color == "" {
		s.Color = d.Color
	}
	return s
}

// Validate checks s against the selectable options. Call Normalize first to
// accept short forms.
func (s Styles) Validate() error {
	if !slices.Contains(FontSizes, s.FontSize) {
		return errors.New(errors.ErrCodeInvalidStyle, "font size %q not one of %s", s.FontSize, strings.Join(FontSizes, ", "))
	}
	if !slices.ContainsFunc(Fonts, func(f Font) bool { return f.Stack == s.FontFamily }) {
		return errors.New(errors.ErrCodeInvalidStyle, "font family %q not one of %s", s.FontFamily, strings.Join(FontNames(), ", "))
	}
	return errors.ValidateColor(s.Color)
}

// FontNames returns the short names of the selectable fonts.
func FontNames() []string {
	out := make([]string, len(Fonts))
	for i, f := range Fonts {
		out[i] = f.Name
	}
	return out
}

// FontName returns the short name for the family stack of s.
func (s Styles) FontName() string {
	for _, f := range Fonts {
		if f.Stack == s.FontFamily {
			return f.Name
		}
	}
	return s.FontFamily
}

// pxToUnits converts CSS pixels to page units (points, 96 dpi).
const pxToUnits = 0.75

// BaseSize returns the body font size in page units.
func (s Styles) BaseSize() float64 {
	px, err := strconv.ParseFloat(strings.TrimSuffix(s.FontSize, "px"), 64)
	if err != nil || px <= 0 {
		px = 14
	}
	return px * pxToUnits
}

// =============================================================================
// Themes
// =============================================================================

// Theme is an accent palette used for headings, rules and bars.
type Theme struct {
	Name   string
	Accent string // headings, rules, accent bars
	Soft   string // heading bands, tinted backgrounds
}

// DefaultTheme is the theme new documents start with.
const DefaultTheme = "blue"

// Themes are the selectable themes in display order.
var Themes = []Theme{
	{Name: "blue", Accent: "#2563eb", Soft: "#dbeafe"},
	{Name: "green", Accent: "#059669", Soft: "#d1fae5"},
	{Name: "gray", Accent: "#4b5563", Soft: "#e5e7eb"},
}

// LookupTheme returns the theme with the given name (case-insensitive).
// An empty name selects DefaultTheme.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	for _, t := range Themes {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Theme{}, errors.New(errors.ErrCodeInvalidStyle, "unknown theme %q (valid: %s)", name, strings.Join(ThemeNames(), ", "))
}

// ThemeNames returns the names of the selectable themes.
func ThemeNames() []string {
	out := make([]string, len(Themes))
	for i, t := range Themes {
		out[i] = t.Name
	}
	return out
}

// =============================================================================
// Left column
// =============================================================================

// LeftColumn holds the colors of the left column in the two-column template.
type LeftColumn struct {
	Background string `json:"background" toml:"background"`
	Text       string `json:"text" toml:"text"`
}

// DefaultLeftColumn returns the default left column colors.
func DefaultLeftColumn() LeftColumn {
	return LeftColumn{Background: "#f3f4f6", Text: "#111827"}
}

// Normalize fills empty colors from DefaultLeftColumn.
func (l LeftColumn) Normalize() LeftColumn {
	d := DefaultLeftColumn()
	if l.Background == "" {
		l.Background = d.Background
	}
	if l.Text == "" {
		l.Text = d.Text
	}
	return l
}

// Validate checks both colors.
func (l LeftColumn) Validate() error {
	if err := errors.ValidateColor(l.Background); err != nil {
		return err
	}
	return errors.ValidateColor(l.Text)
}
