package sink

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/resumake/pkg/render/styles"
	"github.com/matzehuels/resumake/pkg/template"
)

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(view(t, template.TwoColumn), WithJSONTheme("green"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Template != "two-column" || out.Family != "two-column" || out.Theme != "green" {
		t.Errorf("header fields = %s %s %s", out.Template, out.Family, out.Theme)
	}
	if len(out.Header) != 1 || out.Header[0].ID != "1" {
		t.Errorf("header = %+v", out.Header)
	}

	got := map[string][]string{}
	for _, r := range out.Regions {
		for _, s := range r.Sections {
			got[r.ID] = append(got[r.ID], s.ID)
		}
	}
	want := map[string][]string{
		"left":  {"2", "3", "7"},
		"right": {"4", "5", "6"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("regions (-want +got):\n%s", diff)
	}
	if out.Regions[1].Sections[1].Jobs != nil {
		t.Error("content included without WithJSONContent")
	}
}

func TestRenderJSONContent(t *testing.T) {
	data, err := RenderJSON(view(t, template.Classic), WithJSONContent(), WithJSONStyles(styles.Styles{FontSize: "16"}))
	if err != nil {
		t.Fatal(err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Styles == nil || out.Styles.FontSize != "16px" {
		t.Errorf("styles = %+v", out.Styles)
	}
	main := out.Regions[0].Sections
	if len(main) != 6 {
		t.Fatalf("main has %d sections, want 6", len(main))
	}
	if main[3].Type != "experience" || len(main[3].Jobs) != 1 || main[3].Jobs[0].Company != "Netflix" {
		t.Errorf("experience entry = %+v", main[3])
	}
	if main[0].Content != "jane@example.com" {
		t.Errorf("contact content = %q", main[0].Content)
	}
}
