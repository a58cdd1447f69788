// Package template holds the static table that maps a template identifier to
// the regions it defines.
//
// # Regions
//
// A template splits the page into named [Region] slots. Each region owns a
// set of section types and is either draggable (its sections can be
// reordered and moved by the user) or fixed, like the heading that shows the
// person's name.
//
// Region membership is a pure function of section type and template. A
// section never remembers which region it was in, so switching templates
// only regroups sections and never loses data.
//
// # Templates
//
// Six templates are built in, in three families:
//
//   - Single column ([Classic], [Modern], [Minimal], [Stylish]): a fixed
//     "header" region holding the name, then one "main" region with every
//     other section.
//   - [TwoColumn]: fixed "header" (name), "left" (contact, skills, language,
//     social) and "right" (summary, experience, education, projects).
//   - [ProfileTwoColumn]: fixed "header" (name, contact), "left" (skills,
//     language, social) and "right" (same as two-column).
//
// The order of regions in a [Policy] is the order in which region lists are
// concatenated back into one canonical sequence after a move.
//
// Adding a template is one entry in the table; the layout package needs no
// change.
//
//	p, err := template.Lookup("two-column")
//	if err != nil {
//	    return err
//	}
//	r, _ := p.RegionOf(section.TypeSkills) // "left"
package template
