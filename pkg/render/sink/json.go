package sink

import (
	"encoding/json"

	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/render/styles"
	"github.com/matzehuels/resumake/pkg/section"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	styles  *styles.Styles
	theme   string
	content bool
}

// WithJSONStyles records the text styles in the output.
func WithJSONStyles(s styles.Styles) JSONOption {
	return func(r *jsonRenderer) { n := s.Normalize(); r.styles = &n }
}

// WithJSONTheme records the theme name in the output.
func WithJSONTheme(name string) JSONOption { return func(r *jsonRenderer) { r.theme = name } }

// WithJSONContent includes section content and entries, not only their
// identity. External renderers need this; drag-and-drop front ends do not.
func WithJSONContent() JSONOption { return func(r *jsonRenderer) { r.content = true } }

type jsonOutput struct {
	Template string         `json:"template"`
	Family   string         `json:"family"`
	Theme    string         `json:"theme,omitempty"`
	Styles   *styles.Styles `json:"styles,omitempty"`
	Header   []jsonSection  `json:"header"`
	Regions  []jsonRegion   `json:"regions"`
	Excluded []jsonSection  `json:"excluded,omitempty"`
}

type jsonRegion struct {
	ID       string        `json:"id"`
	Sections []jsonSection `json:"sections"`
}

type jsonSection struct {
	ID      string           `json:"id"`
	Type    string           `json:"type"`
	Title   string           `json:"title"`
	Content string           `json:"content,omitempty"`
	Jobs    []section.Job    `json:"jobs,omitempty"`
	Schools []section.School `json:"schools,omitempty"`
}

// RenderJSON encodes the region tree of v.
func RenderJSON(v layout.View, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Template: string(v.Template),
		Family:   string(v.Family),
		Theme:    r.theme,
		Styles:   r.styles,
		Header:   r.sections(v.Header),
		Regions:  make([]jsonRegion, 0, len(v.Regions)),
	}
	for _, rv := range v.Regions {
		out.Regions = append(out.Regions, jsonRegion{ID: string(rv.ID), Sections: r.sections(rv.Sections)})
	}
	if len(v.Excluded) > 0 {
		out.Excluded = r.sections(v.Excluded)
	}
	return json.MarshalIndent(out, "", "  ")
}

func (r jsonRenderer) sections(secs []section.Section) []jsonSection {
	out := make([]jsonSection, 0, len(secs))
	for _, s := range secs {
		js := jsonSection{ID: s.ID, Type: string(s.Type), Title: s.Title}
		if r.content {
			switch s.Kind() {
			case section.KindJobs:
				js.Jobs = s.Jobs
			case section.KindSchools:
				js.Schools = s.Schools
			default:
				js.Content = s.Content
			}
		}
		out = append(out, js)
	}
	return out
}
