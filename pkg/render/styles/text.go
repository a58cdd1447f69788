package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	fontCharWidth = 0.55 // average glyph advance as a fraction of font size
	lineHeight    = 1.4
)

// CharWidth returns the estimated glyph advance for the font size.
func CharWidth(size float64) float64 { return size * fontCharWidth }

// LineHeight returns the line pitch for the font size.
func LineHeight(size float64) float64 { return size * lineHeight }

// TextWidth estimates the rendered width of s.
func TextWidth(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * CharWidth(size)
}

// Wrap breaks text into lines that fit width at the given font size.
// Explicit newlines are kept. Words longer than a line are split.
func Wrap(text string, width, size float64) []string {
	maxChars := max(1, int(width/CharWidth(size)))
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var cur []rune
		for _, w := range words {
			word := []rune(w)
			for len(word) > maxChars {
				if len(cur) > 0 {
					lines = append(lines, string(cur))
					cur = nil
				}
				lines = append(lines, string(word[:maxChars]))
				word = word[maxChars:]
			}
			switch {
			case len(cur) == 0:
				cur = word
			case len(cur)+1+len(word) <= maxChars:
				cur = append(append(cur, ' '), word...)
			default:
				lines = append(lines, string(cur))
				cur = word
			}
		}
		if len(cur) > 0 {
			lines = append(lines, string(cur))
		}
	}
	return lines
}

// Segment is a run of text, optionally linking to URL.
type Segment struct {
	Text string
	URL  string
}

var urlRegex = regexp.MustCompile(`https?://[^\s]+`)

// SplitURLs splits s into plain and link segments so renderers can turn
// bare URLs into anchors.
func SplitURLs(s string) []Segment {
	var out []Segment
	last := 0
	for _, loc := range urlRegex.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, Segment{Text: s[last:loc[0]]})
		}
		u := s[loc[0]:loc[1]]
		out = append(out, Segment{Text: u, URL: u})
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, Segment{Text: s[last:]})
	}
	return out
}

// Upper returns s in upper case, for accent-bar headings.
func Upper(s string) string { return cases.Upper(language.English).String(s) }

// Title returns s in title case, for banded headings.
// Casers keep state, so one is built per call.
func Title(s string) string { return cases.Title(language.English).String(s) }

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// WrapURL writes an anchor around whatever fn writes when url is set.
func WrapURL(buf *bytes.Buffer, url string, fn func()) {
	if url != "" {
		fmt.Fprintf(buf, `<a href="%s" target="_blank">`, EscapeXML(url))
	}
	fn()
	if url != "" {
		buf.WriteString("</a>")
	}
}
