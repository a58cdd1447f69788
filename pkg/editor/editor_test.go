package editor

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/resumake/pkg/errors"
	pkgio "github.com/matzehuels/resumake/pkg/io"
	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/observability"
	"github.com/matzehuels/resumake/pkg/render/styles"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

func debugLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

// scenario builds [name, contact, skills, summary] under two-column.
func scenario(t *testing.T, opts ...Option) (*Editor, []string) {
	t.Helper()
	ctx := context.Background()
	e := New(opts...)
	if err := e.SetTemplate(ctx, template.TwoColumn); err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, typ := range []section.Type{section.TypeName, section.TypeContact, section.TypeSkills, section.TypeSummary} {
		sec, err := e.Add(ctx, typ)
		if err != nil {
			t.Fatalf("Add(%s) error: %v", typ, err)
		}
		ids = append(ids, sec.ID)
	}
	return e, ids
}

func TestAddSelects(t *testing.T) {
	e := New()
	sec, err := e.Add(context.Background(), section.TypeSkills)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if e.Selected() != sec.ID {
		t.Errorf("Selected() = %q, want %q", e.Selected(), sec.ID)
	}
	if len(e.Sections()) != 1 {
		t.Errorf("len(Sections()) = %d, want 1", len(e.Sections()))
	}
}

func TestMoveScenario(t *testing.T) {
	e, ids := scenario(t)
	res, err := e.Move(context.Background(), layout.Move{
		From: layout.RegionRef{Region: template.RegionLeft, Index: 1},
		To:   layout.RegionRef{Region: template.RegionRight, Index: 0},
	})
	if err != nil || !res.Applied {
		t.Fatalf("Move() = %+v, %v", res, err)
	}
	if got := section.IDs(e.Sections()); !cmp.Equal(got, ids) {
		t.Errorf("order = %v, want %v", got, ids)
	}
}

func TestMoveSameRegionCommits(t *testing.T) {
	e, ids := scenario(t)
	// left = [contact, skills]
	res, err := e.Move(context.Background(), layout.Move{
		From: layout.RegionRef{Region: template.RegionLeft, Index: 1},
		To:   layout.RegionRef{Region: template.RegionLeft, Index: 0},
	})
	if err != nil || !res.Applied {
		t.Fatalf("Move() = %+v, %v", res, err)
	}
	want := []string{ids[0], ids[2], ids[1], ids[3]}
	if got := section.IDs(e.Sections()); !cmp.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestMoveInvalidIsAbsorbed(t *testing.T) {
	var buf bytes.Buffer
	e, ids := scenario(t, WithLogger(debugLogger(&buf)))

	res, err := e.Move(context.Background(), layout.Move{
		From: layout.RegionRef{Region: template.RegionLeft, Index: 7},
		To:   layout.RegionRef{Region: template.RegionRight, Index: 0},
	})
	if err != nil {
		t.Fatalf("Move() error = %v, want nil", err)
	}
	if res.Applied || res.Reason == "" {
		t.Errorf("Move() = %+v, want not applied with a reason", res)
	}
	if got := section.IDs(e.Sections()); !cmp.Equal(got, ids) {
		t.Errorf("invalid move changed order: %v", got)
	}
	if !strings.Contains(buf.String(), "move ignored") {
		t.Errorf("invalid move not logged at debug level:\n%s", buf.String())
	}
}

func TestUpdateContactWarnsButApplies(t *testing.T) {
	var buf bytes.Buffer
	e, ids := scenario(t, WithLogger(debugLogger(&buf)))

	sec, err := e.Update(context.Background(), ids[1], section.Patch{Content: section.String("jane@@example")})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if sec.Content != "jane@@example" {
		t.Errorf("Content = %q, update not applied", sec.Content)
	}
	if !strings.Contains(buf.String(), "contact format") {
		t.Errorf("no warning logged:\n%s", buf.String())
	}
}

func TestUpdateRemoveNotFound(t *testing.T) {
	e := New()
	ctx := context.Background()
	if _, err := e.Update(ctx, "missing", section.Patch{}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Update(missing) error = %v", err)
	}
	if err := e.Remove(ctx, "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Remove(missing) error = %v", err)
	}
}

func TestRemoveClearsSelection(t *testing.T) {
	e, ids := scenario(t)
	ctx := context.Background()
	if err := e.Select(ctx, ids[2]); err != nil {
		t.Fatal(err)
	}
	if err := e.Remove(ctx, ids[2]); err != nil {
		t.Fatal(err)
	}
	if e.Selected() != "" {
		t.Errorf("Selected() = %q, want none", e.Selected())
	}
}

func TestSetTemplateRegroupsWithoutLoss(t *testing.T) {
	e, ids := scenario(t)
	ctx := context.Background()

	if err := e.SetTemplate(ctx, template.ProfileTwoColumn); err != nil {
		t.Fatal(err)
	}
	v := e.View()
	if got := section.IDs(v.Header); !cmp.Equal(got, []string{ids[0], ids[1]}) {
		t.Errorf("profile header = %v", got)
	}

	if err := e.SetTemplate(ctx, "three-column"); !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("SetTemplate(three-column) error = %v", err)
	}
	if e.Policy().Template != template.ProfileTwoColumn {
		t.Errorf("failed SetTemplate changed template to %s", e.Policy().Template)
	}
	if got := section.IDs(e.Sections()); !cmp.Equal(got, ids) {
		t.Errorf("template switch changed sections: %v", got)
	}
}

func TestSettings(t *testing.T) {
	e := New()
	ctx := context.Background()

	if err := e.SetStyles(ctx, styles.Styles{FontSize: "18", FontFamily: "Georgia", Color: "#222"}); err != nil {
		t.Fatalf("SetStyles() error: %v", err)
	}
	if err := e.SetStyles(ctx, styles.Styles{FontSize: "99px"}); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("SetStyles(99px) error = %v", err)
	}
	if err := e.SetTheme(ctx, "gray"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetLeftColumn(ctx, styles.LeftColumn{Background: "#000000"}); err != nil {
		t.Fatal(err)
	}
	if err := e.SetPhoto(ctx, "https://example.com/me.png"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetPhoto(ctx, "ftp://example.com/me.png"); err == nil {
		t.Error("SetPhoto accepted an ftp URL")
	}

	doc := e.Document()
	if doc.Styles.FontSize != "18px" || doc.Styles.FontFamily != "Georgia, serif" || doc.Styles.Color != "#222" {
		t.Errorf("styles = %+v", doc.Styles)
	}
	if doc.Theme != "gray" || doc.LeftColumn.Background != "#000000" || doc.LeftColumn.Text != "#111827" {
		t.Errorf("theme/left column = %s %+v", doc.Theme, doc.LeftColumn)
	}
	if doc.Photo != "https://example.com/me.png" {
		t.Errorf("photo = %q", doc.Photo)
	}
}

func TestApplySettingsIsAllOrNothing(t *testing.T) {
	e := New()
	ctx := context.Background()
	before := e.Document()

	bad := []Settings{
		{Theme: section.String("green"), Photo: section.String("ftp://x/y.png")},
		{FontSize: section.String("18"), LeftBackground: section.String("blue")},
		{Color: section.String("#222"), Theme: section.String("pink")},
		{Photo: section.String("me.png"), FontFamily: section.String("Comic Sans")},
	}
	for _, s := range bad {
		if err := e.ApplySettings(ctx, s); !errors.IsValidation(err) {
			t.Errorf("ApplySettings(%+v) error = %v, want a validation error", s, err)
		}
	}
	if diff := cmp.Diff(before, e.Document()); diff != "" {
		t.Errorf("rejected settings changed the document (-want +got):\n%s", diff)
	}

	err := e.ApplySettings(ctx, Settings{
		FontSize: section.String("22"),
		Theme:    section.String("Gray"),
		LeftText: section.String("#fff"),
		Photo:    section.String(" https://example.com/me.png "),
	})
	if err != nil {
		t.Fatalf("ApplySettings() error: %v", err)
	}
	doc := e.Document()
	if doc.Styles.FontSize != "22px" || doc.Styles.FontFamily != before.Styles.FontFamily {
		t.Errorf("styles = %+v", doc.Styles)
	}
	if doc.Theme != "gray" || doc.LeftColumn.Text != "#fff" || doc.LeftColumn.Background != before.LeftColumn.Background {
		t.Errorf("theme/left column = %s %+v", doc.Theme, doc.LeftColumn)
	}
	if doc.Photo != "https://example.com/me.png" {
		t.Errorf("photo = %q", doc.Photo)
	}
}

func TestUpdateRejectsEntriesOfOtherKind(t *testing.T) {
	e, ids := scenario(t)
	jobs := []section.Job{{Role: "x", Company: "y"}}
	if _, err := e.Update(context.Background(), ids[2], section.Patch{Jobs: &jobs}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Update(jobs on skills) error = %v", err)
	}
	if sec, _ := e.Get(ids[2]); len(sec.Jobs) != 0 {
		t.Errorf("skills section holds jobs: %+v", sec.Jobs)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	e, ids := scenario(t)
	doc := e.Document()

	e2, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument() error: %v", err)
	}
	if diff := cmp.Diff(doc, e2.Document()); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
	if e2.Selected() != ids[3] {
		t.Errorf("selection lost: %q", e2.Selected())
	}
}

func TestFromDocumentRejectsInvalid(t *testing.T) {
	doc := pkgio.New()
	doc.Sections = []section.Section{{ID: "1", Type: "hobbies"}}
	if _, err := FromDocument(doc); !errors.Is(err, errors.ErrCodeUnknownSectionType) {
		t.Errorf("FromDocument() error = %v", err)
	}
}

// Concurrent moves are serialized: the result is still a permutation.
func TestConcurrentMoves(t *testing.T) {
	e, ids := scenario(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			from, to := template.RegionLeft, template.RegionRight
			if i%2 == 1 {
				from, to = to, from
			}
			_, err := e.Move(ctx, layout.Move{
				From: layout.RegionRef{Region: from, Index: 0},
				To:   layout.RegionRef{Region: to, Index: 0},
			})
			if err != nil {
				t.Errorf("Move() error: %v", err)
			}
		}()
	}
	wg.Wait()

	got := section.IDs(e.Sections())
	want := append([]string(nil), ids...)
	sort.Strings(got)
	sort.Strings(want)
	if !cmp.Equal(got, want) {
		t.Errorf("sections after concurrent moves = %v, want permutation of %v", got, want)
	}
}

type recordingHooks struct {
	observability.NoopEditorHooks
	mu       sync.Mutex
	moves    int
	rejected int
	events   []string
}

func (h *recordingHooks) OnMove(context.Context, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.moves++
}

func (h *recordingHooks) OnMoveRejected(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rejected++
}

func (h *recordingHooks) OnCommit(_ context.Context, event string, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

func TestEditorHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetEditorHooks(h)
	defer observability.Reset()

	e, _ := scenario(t)
	ctx := context.Background()
	e.Move(ctx, layout.Move{
		From: layout.RegionRef{Region: template.RegionLeft, Index: 0},
		To:   layout.RegionRef{Region: template.RegionRight, Index: 1},
	})
	e.Move(ctx, layout.Move{
		From: layout.RegionRef{Region: template.RegionHeader, Index: 0},
		To:   layout.RegionRef{Region: template.RegionRight, Index: 0},
	})

	if h.moves != 1 || h.rejected != 1 {
		t.Errorf("moves=%d rejected=%d, want 1 and 1", h.moves, h.rejected)
	}
	want := []string{"template", "add", "add", "add", "add", "move"}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}
