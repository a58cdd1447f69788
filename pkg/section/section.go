// Package section defines resume sections, the palette they are created
// from, and the Store that owns their canonical order.
//
// # Sections
//
// A [Section] is one typed content block of a resume. Its [Type] comes from a
// closed set and determines both the region it lands in (see the template
// package) and the shape of its content, expressed as a [Kind]:
//
//   - [KindName]: the person's name, rendered as the document heading
//   - [KindText]: free text (contact, skills, summary, ...)
//   - [KindJobs]: a list of [Job] entries (experience)
//   - [KindSchools]: a list of [School] entries (education)
//
// # Store
//
// The [Store] is the single source of truth for section order. Every other
// view of the sections (regions, rendered pages) is derived from it.
//
//	s := section.NewStore()
//	sec, err := s.Add(section.TypeSkills)
//	s.Update(sec.ID, section.Patch{Content: section.String("Go, SQL")})
package section

import (
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/resumake/pkg/errors"
)

// Type identifies the kind of content a section holds.
type Type string

// The closed set of section types.
const (
	TypeName       Type = "name"
	TypeContact    Type = "contact"
	TypeSkills     Type = "skills"
	TypeLanguage   Type = "language"
	TypeSummary    Type = "summary"
	TypeExperience Type = "experience"
	TypeEducation  Type = "education"
	TypeProjects   Type = "projects"
	TypeSocial     Type = "social"
)

// Types lists every section type in palette order.
var Types = []Type{
	TypeName, TypeContact, TypeSkills, TypeLanguage, TypeSummary,
	TypeExperience, TypeEducation, TypeProjects, TypeSocial,
}

// Valid reports whether t is one of the known section types.
func (t Type) Valid() bool {
	switch t {
	case TypeName, TypeContact, TypeSkills, TypeLanguage, TypeSummary,
		TypeExperience, TypeEducation, TypeProjects, TypeSocial:
		return true
	}
	return false
}

// ParseType converts s to a Type, ignoring case and surrounding space.
// Returns an UNKNOWN_SECTION_TYPE error for anything outside the set.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", errors.New(errors.ErrCodeUnknownSectionType, "unknown section type: %q", s)
	}
	return t, nil
}

// Kind is the content shape of a section, derived from its Type.
type Kind int

const (
	// KindText is free-form text content.
	KindText Kind = iota
	// KindName is the document owner's name.
	KindName
	// KindJobs is a list of job entries.
	KindJobs
	// KindSchools is a list of school entries.
	KindSchools
)

// String returns a short lowercase label for the kind.
func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindJobs:
		return "jobs"
	case KindSchools:
		return "schools"
	default:
		return "text"
	}
}

// Kind returns the content shape for sections of type t.
func (t Type) Kind() Kind {
	switch t {
	case TypeName:
		return KindName
	case TypeExperience:
		return KindJobs
	case TypeEducation:
		return KindSchools
	default:
		return KindText
	}
}

// Job is one entry of an experience section.
type Job struct {
	Role    string `json:"role" toml:"role"`
	Company string `json:"company" toml:"company"`
	Date    string `json:"date" toml:"date"` // month, as entered ("2024-03")
}

// School is one entry of an education section.
type School struct {
	Degree string `json:"degree" toml:"degree"`
	School string `json:"school" toml:"school"`
	Year   string `json:"year" toml:"year"`
	Grade  string `json:"grade,omitempty" toml:"grade,omitempty"` // percentage or letter grade
}

// Section is one content block of a resume.
//
// ID is assigned at creation and never changes. Content is used by text and
// name sections; Jobs and Schools by experience and education sections. The
// Content of a list section is kept (it holds the palette hint) but is not
// rendered.
type Section struct {
	ID      string   `json:"id" toml:"id"`
	Type    Type     `json:"type" toml:"type"`
	Title   string   `json:"title" toml:"title"`
	Content string   `json:"content,omitempty" toml:"content,omitempty"`
	Jobs    []Job    `json:"jobs,omitempty" toml:"jobs,omitempty"`
	Schools []School `json:"schools,omitempty" toml:"schools,omitempty"`
}

// Kind returns the content shape of the section.
func (s Section) Kind() Kind { return s.Type.Kind() }

// CheckEntries returns INVALID_INPUT when s holds job or school entries its
// kind does not carry.
func (s Section) CheckEntries() error {
	if len(s.Jobs) > 0 && s.Kind() != KindJobs {
		return errors.New(errors.ErrCodeInvalidInput, "%s section %s has no job entries", s.Type, s.ID)
	}
	if len(s.Schools) > 0 && s.Kind() != KindSchools {
		return errors.New(errors.ErrCodeInvalidInput, "%s section %s has no school entries", s.Type, s.ID)
	}
	return nil
}

// Clone returns a deep copy of s. Entry slices are copied so the clone can
// be handed out without exposing store internals.
func (s Section) Clone() Section {
	c := s
	if s.Jobs != nil {
		c.Jobs = append([]Job(nil), s.Jobs...)
	}
	if s.Schools != nil {
		c.Schools = append([]School(nil), s.Schools...)
	}
	return c
}

// IDs returns the ids of secs in order.
func IDs(secs []Section) []string {
	ids := make([]string, len(secs))
	for i, s := range secs {
		ids[i] = s.ID
	}
	return ids
}

// NewID returns a fresh section identifier.
func NewID() string {
	return uuid.NewString()
}
