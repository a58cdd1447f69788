package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

func sampleDoc() Document {
	doc := New()
	doc.Template = template.TwoColumn
	doc.Theme = "green"
	doc.Photo = "me.jpg"
	doc.Selected = "3"
	doc.Sections = []section.Section{
		{ID: "1", Type: section.TypeName, Title: "Full Name", Content: "Jane Doe"},
		{ID: "2", Type: section.TypeContact, Title: "Contact", Content: "jane@example.com, +1 555 010 9999"},
		{ID: "3", Type: section.TypeExperience, Title: "Experience", Jobs: []section.Job{
			{Role: "Backend Developer", Company: "Netflix", Date: "2023-01"},
		}},
		{ID: "4", Type: section.TypeEducation, Title: "Education", Schools: []section.School{
			{Degree: "BCA", School: "State College", Year: "2019", Grade: "82%"},
		}},
	}
	return doc
}

func TestJSONRoundTrip(t *testing.T) {
	doc := sampleDoc()
	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	doc := sampleDoc()
	var buf bytes.Buffer
	if err := WriteTOML(doc, &buf); err != nil {
		t.Fatalf("WriteTOML() error: %v", err)
	}
	if !strings.Contains(buf.String(), "[[sections]]") {
		t.Errorf("TOML output has no sections table array:\n%s", buf.String())
	}
	got, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("ReadTOML() error: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONNormalizes(t *testing.T) {
	in := `{"sections": [
		{"type": "Language", "title": "Language", "content": "Tamil"},
		{"id": "x", "type": "experience", "title": "Experience"}
	], "selected": "gone", "styles": {"fontFamily": "helvetica"}}`

	doc, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if doc.Template != template.Classic || doc.Theme != "blue" {
		t.Errorf("defaults not applied: template=%s theme=%s", doc.Template, doc.Theme)
	}
	if doc.Styles.FontFamily != "Helvetica, sans-serif" || doc.Styles.FontSize != "14px" {
		t.Errorf("styles = %+v", doc.Styles)
	}
	if doc.Sections[0].Type != section.TypeLanguage {
		t.Errorf("type = %q, want language", doc.Sections[0].Type)
	}
	if doc.Sections[0].ID == "" {
		t.Error("missing id was not assigned")
	}
	if doc.Sections[1].Jobs == nil {
		t.Error("experience Jobs should be non-nil")
	}
	if doc.Selected != "" {
		t.Errorf("dangling selection kept: %q", doc.Selected)
	}
}

func TestReadJSONRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `{"sections": [`, errors.ErrCodeInvalidInput},
		{"unknown type", `{"sections": [{"id": "1", "type": "hobbies"}]}`, errors.ErrCodeUnknownSectionType},
		{"duplicate id", `{"sections": [{"id": "1", "type": "name"}, {"id": "1", "type": "skills"}]}`, errors.ErrCodeInvalidInput},
		{"unknown template", `{"template": "three-column"}`, errors.ErrCodeInvalidTemplate},
		{"unknown theme", `{"theme": "pink"}`, errors.ErrCodeInvalidStyle},
		{"bad color", `{"leftColumn": {"background": "blue"}}`, errors.ErrCodeInvalidStyle},
		{"jobs on skills", `{"sections": [{"id": "1", "type": "skills", "jobs": [{"role": "x"}]}]}`, errors.ErrCodeInvalidInput},
		{"schools on experience", `{"sections": [{"id": "1", "type": "experience", "schools": [{"degree": "d"}]}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.in)); !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"resume.json", "resume.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			doc := sampleDoc()
			if err := Export(doc, path); err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatalf("Import() error: %v", err)
			}
			if diff := cmp.Diff(doc, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("Export left temporary files behind: %d entries", len(entries))
	}
}

func TestImportErrors(t *testing.T) {
	if _, err := Import("resume.yaml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Import(.yaml) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
	missing := filepath.Join(t.TempDir(), "missing.json")
	if _, err := Import(missing); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Import(missing) error = %v, want %s", err, errors.ErrCodeNotFound)
	}
	if _, err := Import(""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Import(\"\") error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
}

func TestNewIsNormalized(t *testing.T) {
	doc := New()
	want := New()
	if err := doc.Normalize(); err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("New() is not normalized (-want +got):\n%s", diff)
	}
}
