package io

import (
	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/render/styles"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// Document is a complete resume: sections in canonical order plus
// presentation settings.
type Document struct {
	Template   template.ID       `json:"template" toml:"template"`
	Theme      string            `json:"theme" toml:"theme"`
	Styles     styles.Styles     `json:"styles" toml:"styles"`
	LeftColumn styles.LeftColumn `json:"leftColumn" toml:"left_column"`
	Photo      string            `json:"photo,omitempty" toml:"photo,omitempty"`
	Selected   string            `json:"selected,omitempty" toml:"selected,omitempty"`
	Sections   []section.Section `json:"sections" toml:"sections"`
}

// New returns an empty document with default settings.
func New() Document {
	return Document{
		Template:   template.Default,
		Theme:      styles.DefaultTheme,
		Styles:     styles.Default(),
		LeftColumn: styles.DefaultLeftColumn(),
		Sections:   []section.Section{},
	}
}

// Normalize fills defaults and validates d in place.
func (d *Document) Normalize() error {
	if d.Template == "" {
		d.Template = template.Default
	}
	p, err := template.Lookup(d.Template)
	if err != nil {
		return err
	}
	d.Template = p.Template

	th, err := styles.LookupTheme(d.Theme)
	if err != nil {
		return err
	}
	d.Theme = th.Name

	d.Styles = d.Styles.Normalize()
	if err := d.Styles.Validate(); err != nil {
		return err
	}
	d.LeftColumn = d.LeftColumn.Normalize()
	if err := d.LeftColumn.Validate(); err != nil {
		return err
	}

	if d.Sections == nil {
		d.Sections = []section.Section{}
	}
	seen := make(map[string]bool, len(d.Sections))
	for i := range d.Sections {
		s := &d.Sections[i]
		t, err := section.ParseType(string(s.Type))
		if err != nil {
			return errors.Wrap(errors.ErrCodeUnknownSectionType, err, "section %d", i)
		}
		s.Type = t
		if s.ID == "" {
			s.ID = section.NewID()
		}
		if seen[s.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
		if err := s.CheckEntries(); err != nil {
			return err
		}
		switch t.Kind() {
		case section.KindJobs:
			if s.Jobs == nil {
				s.Jobs = []section.Job{}
			}
		case section.KindSchools:
			if s.Schools == nil {
				s.Schools = []section.School{}
			}
		}
	}
	if d.Selected != "" && !seen[d.Selected] {
		d.Selected = ""
	}
	return nil
}
