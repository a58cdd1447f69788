package layout

import (
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// RegionView is one draggable region as handed to the presentation layer.
type RegionView struct {
	ID       template.RegionID `json:"id"`
	Sections []section.Section `json:"sections"`
}

// View is the fully resolved region tree of one render.
type View struct {
	Template template.ID     `json:"template"`
	Family   template.Family `json:"family"`

	// Header holds the sections of fixed regions in policy order.
	Header []section.Section `json:"header"`

	// Regions holds the draggable regions in policy order.
	Regions []RegionView `json:"regions"`

	// Excluded holds sections the template does not show.
	Excluded []section.Section `json:"excluded,omitempty"`
}

// BuildView classifies seq under p and splits the result into fixed header
// sections and draggable regions.
func BuildView(p template.Policy, seq []section.Section) View {
	c := Classify(p, seq)
	v := View{
		Template: p.Template,
		Family:   p.Family,
		Header:   []section.Section{},
		Excluded: c.Excluded,
	}
	for _, rl := range c.Regions {
		if !rl.Region.Draggable {
			v.Header = append(v.Header, rl.Sections...)
			continue
		}
		v.Regions = append(v.Regions, RegionView{ID: rl.Region.ID, Sections: rl.Sections})
	}
	return v
}

// Region returns the sections of a draggable region.
func (v View) Region(id template.RegionID) []section.Section {
	for _, r := range v.Regions {
		if r.ID == id {
			return r.Sections
		}
	}
	return nil
}

// Name returns the first name section, which renders as the document
// heading. Further name sections render as plain text.
func (v View) Name() (section.Section, bool) {
	for _, s := range v.Header {
		if s.Type == section.TypeName {
			return s, true
		}
	}
	for _, r := range v.Regions {
		for _, s := range r.Sections {
			if s.Type == section.TypeName {
				return s, true
			}
		}
	}
	return section.Section{}, false
}

// HeaderExtras returns the header sections other than the heading name, in
// order. In the profile template these are the contact sections.
func (v View) HeaderExtras() []section.Section {
	name, _ := v.Name()
	var out []section.Section
	for _, s := range v.Header {
		if s.ID == name.ID {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Len returns the number of sections shown by the view.
func (v View) Len() int {
	n := len(v.Header)
	for _, r := range v.Regions {
		n += len(r.Sections)
	}
	return n
}
