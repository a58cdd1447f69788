package section

import "github.com/matzehuels/resumake/pkg/errors"

// Entry is one palette item: the defaults a new section starts with.
type Entry struct {
	Type    Type   `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Palette is the fixed, ordered catalog sections are instantiated from.
var Palette = []Entry{
	{Type: TypeName, Title: "Full Name", Content: "Enter your full name"},
	{Type: TypeContact, Title: "Contact", Content: "Email, phone,Address..."},
	{Type: TypeSkills, Title: "Skills", Content: "List of skills..."},
	{Type: TypeLanguage, Title: "Language", Content: "Tamil,English....."},
	{Type: TypeSummary, Title: "Summary", Content: "Write a short summary..."},
	{Type: TypeExperience, Title: "Experience", Content: "jobs,role,company..."},
	{Type: TypeEducation, Title: "Education", Content: "school/college name,degree,year, percentage...."},
	{Type: TypeProjects, Title: "Projects", Content: "Project description..."},
	{Type: TypeSocial, Title: "Social Media", Content: "Enter socialLinks..."},
}

// Lookup returns the palette entry for t.
func Lookup(t Type) (Entry, error) {
	for _, e := range Palette {
		if e.Type == t {
			return e, nil
		}
	}
	return Entry{}, errors.New(errors.ErrCodeUnknownSectionType, "unknown section type: %q", t)
}

// Instantiate creates a new section from the palette entry for t with a
// fresh id. List sections start with empty, non-nil entry lists.
func Instantiate(t Type) (Section, error) {
	e, err := Lookup(t)
	if err != nil {
		return Section{}, err
	}
	s := Section{
		ID:      NewID(),
		Type:    e.Type,
		Title:   e.Title,
		Content: e.Content,
	}
	switch t.Kind() {
	case KindJobs:
		s.Jobs = []Job{}
	case KindSchools:
		s.Schools = []School{}
	}
	return s, nil
}

// Suggestions are the option lists offered by editing forms for entry fields.
type Suggestions struct {
	Roles     []string `json:"roles"`
	Companies []string `json:"companies"`
	Degrees   []string `json:"degrees"`
}

// DefaultSuggestions returns the built-in entry field suggestions.
func DefaultSuggestions() Suggestions {
	return Suggestions{
		Roles: []string{
			"Software Engineer",
			"Frontend Developer",
			"Backend Developer",
			"Full Stack Developer",
			"Project Manager",
			"Designer",
		},
		Companies: []string{
			"Google",
			"Amazon",
			"Microsoft",
			"Facebook",
			"Apple",
			"Netflix",
		},
		Degrees: []string{
			"10th Standard",
			"12th Standard",
			"B.Sc Computer Science",
			"B.Tech Information Technology",
			"M.Sc Software Engineering",
			"MBA",
			"PhD",
			"BCA",
			"Diploma",
			"Certificate",
			"Other",
		},
	}
}
