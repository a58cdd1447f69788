package template

import (
	"slices"
	"strings"

	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/section"
)

// ID identifies a template.
type ID string

// Built-in templates.
const (
	Classic          ID = "classic"
	Modern           ID = "modern"
	Minimal          ID = "minimal"
	Stylish          ID = "stylish"
	TwoColumn        ID = "two-column"
	ProfileTwoColumn ID = "profile-two-column"
)

// Default is the template new documents start with.
const Default = Classic

// Family groups templates that share a page arrangement.
type Family string

const (
	FamilySingle    Family = "single-column"
	FamilyTwoColumn Family = "two-column"
	FamilyProfile   Family = "profile-two-column"
)

// RegionID names a region within a template.
type RegionID string

// Region identifiers used by the built-in templates.
const (
	RegionHeader RegionID = "header"
	RegionMain   RegionID = "main"
	RegionLeft   RegionID = "left"
	RegionRight  RegionID = "right"
)

// Region is one named slot of a template.
type Region struct {
	ID        RegionID       `json:"id"`
	Types     []section.Type `json:"types"`
	Draggable bool           `json:"draggable"`
}

// Accepts reports whether sections of type t belong to r.
func (r Region) Accepts(t section.Type) bool {
	return slices.Contains(r.Types, t)
}

// Policy is the region layout of one template.
type Policy struct {
	Template ID       `json:"template"`
	Family   Family   `json:"family"`
	Regions  []Region `json:"regions"`
}

// Region returns the region with the given id.
func (p Policy) Region(id RegionID) (Region, bool) {
	for _, r := range p.Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// RegionOf returns the region that sections of type t are assigned to.
// ok is false when no region of p accepts t.
func (p Policy) RegionOf(t section.Type) (id RegionID, ok bool) {
	for _, r := range p.Regions {
		if r.Accepts(t) {
			return r.ID, true
		}
	}
	return "", false
}

// Draggable returns the ids of the draggable regions in table order.
func (p Policy) Draggable() []RegionID {
	var ids []RegionID
	for _, r := range p.Regions {
		if r.Draggable {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Validate checks that region ids are unique and non-empty and that no
// section type is claimed by two regions. Built-in policies always pass;
// the check exists for policies constructed by hand.
func (p Policy) Validate() error {
	seenRegion := make(map[RegionID]bool, len(p.Regions))
	owner := make(map[section.Type]RegionID)
	for _, r := range p.Regions {
		if r.ID == "" {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %s: region without id", p.Template)
		}
		if seenRegion[r.ID] {
			return errors.New(errors.ErrCodeInvalidTemplate, "template %s: duplicate region %q", p.Template, r.ID)
		}
		seenRegion[r.ID] = true
		for _, t := range r.Types {
			if prev, ok := owner[t]; ok {
				return errors.New(errors.ErrCodeInvalidTemplate,
					"template %s: type %s claimed by regions %q and %q", p.Template, t, prev, r.ID)
			}
			owner[t] = r.ID
		}
	}
	return nil
}

// =============================================================================
// Table
// =============================================================================

var (
	nameOnly = []section.Type{section.TypeName}

	allButName = []section.Type{
		section.TypeContact, section.TypeSkills, section.TypeLanguage, section.TypeSummary,
		section.TypeExperience, section.TypeEducation, section.TypeProjects, section.TypeSocial,
	}

	rightColumn = []section.Type{
		section.TypeSummary, section.TypeExperience, section.TypeEducation, section.TypeProjects,
	}
)

func singleColumn(id ID) Policy {
	return Policy{
		Template: id,
		Family:   FamilySingle,
		Regions: []Region{
			{ID: RegionHeader, Types: nameOnly},
			{ID: RegionMain, Types: allButName, Draggable: true},
		},
	}
}

var table = map[ID]Policy{
	Classic: singleColumn(Classic),
	Modern:  singleColumn(Modern),
	Minimal: singleColumn(Minimal),
	Stylish: singleColumn(Stylish),
	TwoColumn: {
		Template: TwoColumn,
		Family:   FamilyTwoColumn,
		Regions: []Region{
			{ID: RegionHeader, Types: nameOnly},
			{ID: RegionLeft, Types: []section.Type{
				section.TypeContact, section.TypeSkills, section.TypeLanguage, section.TypeSocial,
			}, Draggable: true},
			{ID: RegionRight, Types: rightColumn, Draggable: true},
		},
	},
	ProfileTwoColumn: {
		Template: ProfileTwoColumn,
		Family:   FamilyProfile,
		Regions: []Region{
			{ID: RegionHeader, Types: []section.Type{section.TypeName, section.TypeContact}},
			{ID: RegionLeft, Types: []section.Type{
				section.TypeSkills, section.TypeLanguage, section.TypeSocial,
			}, Draggable: true},
			{ID: RegionRight, Types: rightColumn, Draggable: true},
		},
	},
}

// IDs lists the built-in templates in display order.
var IDs = []ID{Classic, Modern, Minimal, Stylish, TwoColumn, ProfileTwoColumn}

// Lookup returns the policy for the template id. The id is matched
// case-insensitively. Unknown ids fail with INVALID_TEMPLATE.
//
// The returned policy is a copy and may be modified freely.
func Lookup(id ID) (Policy, error) {
	p, ok := table[ID(strings.ToLower(strings.TrimSpace(string(id))))]
	if !ok {
		return Policy{}, errors.New(errors.ErrCodeInvalidTemplate,
			"unknown template %q (valid: %s)", id, strings.Join(Names(), ", "))
	}
	return clonePolicy(p), nil
}

// MustLookup is like Lookup but panics on unknown ids. Use it only with the
// constants of this package.
func MustLookup(id ID) Policy {
	p, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return p
}

// Valid reports whether id names a built-in template.
func Valid(id ID) bool {
	_, err := Lookup(id)
	return err == nil
}

// Names returns the built-in template ids as strings, for help text and
// shell completion.
func Names() []string {
	out := make([]string, len(IDs))
	for i, id := range IDs {
		out[i] = string(id)
	}
	return out
}

func clonePolicy(p Policy) Policy {
	c := p
	c.Regions = make([]Region, len(p.Regions))
	for i, r := range p.Regions {
		c.Regions[i] = r
		c.Regions[i].Types = slices.Clone(r.Types)
	}
	return c
}
