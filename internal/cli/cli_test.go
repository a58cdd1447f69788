package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/resumake/pkg/errors"
	pkgio "github.com/matzehuels/resumake/pkg/io"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// workspace isolates config, cache and the working document in a temp dir.
type workspace struct {
	t   *testing.T
	dir string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return &workspace{t: t, dir: dir}
}

func (w *workspace) doc() string { return filepath.Join(w.dir, "resume.json") }

// run executes one resumake command and returns its output.
func (w *workspace) run(args ...string) (string, error) {
	w.t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	defer func() { out = prev }()

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--file", w.doc()}, args...))
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func (w *workspace) mustRun(args ...string) string {
	w.t.Helper()
	s, err := w.run(args...)
	if err != nil {
		w.t.Fatalf("resumake %s: %v\n%s", strings.Join(args, " "), err, s)
	}
	return s
}

func (w *workspace) load() pkgio.Document {
	w.t.Helper()
	doc, err := pkgio.Import(w.doc())
	if err != nil {
		w.t.Fatalf("Import() error: %v", err)
	}
	return doc
}

func types(doc pkgio.Document) []section.Type {
	var ts []section.Type
	for _, s := range doc.Sections {
		ts = append(ts, s.Type)
	}
	return ts
}

// twoColumnScenario creates [name, contact, skills, summary] under two-column.
func twoColumnScenario(t *testing.T) *workspace {
	t.Helper()
	w := newWorkspace(t)
	w.mustRun("init", "--template", "two-column")
	for _, typ := range []string{"name", "contact", "skills", "summary"} {
		w.mustRun("add", typ)
	}
	return w
}

func TestInit(t *testing.T) {
	w := newWorkspace(t)
	w.mustRun("init", "-t", "Modern")

	doc := w.load()
	if doc.Template != template.Modern || len(doc.Sections) != 0 {
		t.Errorf("init document = %+v", doc)
	}
	if _, err := w.run("init"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("second init error = %v, want INVALID_INPUT", err)
	}
	w.mustRun("init", "--force")
	if doc := w.load(); doc.Template != template.Classic {
		t.Errorf("forced init template = %s", doc.Template)
	}
}

func TestMissingDocument(t *testing.T) {
	w := newWorkspace(t)
	_, err := w.run("sections")
	if !errors.Is(err, errors.ErrCodeNotFound) || !strings.Contains(err.Error(), "resumake init") {
		t.Errorf("error = %v", err)
	}
}

func TestAddAndList(t *testing.T) {
	w := twoColumnScenario(t)
	doc := w.load()

	want := []section.Type{section.TypeName, section.TypeContact, section.TypeSkills, section.TypeSummary}
	if diff := cmp.Diff(want, types(doc)); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
	if doc.Selected != doc.Sections[3].ID {
		t.Errorf("latest section not selected")
	}

	listing := w.mustRun("sections")
	if !strings.Contains(listing, "Summary") || !strings.Contains(listing, short(doc.Sections[0].ID)) {
		t.Errorf("listing:\n%s", listing)
	}

	if _, err := w.run("add", "hobbies"); !errors.Is(err, errors.ErrCodeUnknownSectionType) {
		t.Errorf("add hobbies error = %v", err)
	}
}

func TestSetSection(t *testing.T) {
	w := newWorkspace(t)
	w.mustRun("init")
	w.mustRun("add", "experience")

	// No id: the selected section is edited.
	w.mustRun("set", "--title", "Work",
		"--job", "Backend Developer|Netflix|2023-01",
		"--job", "Intern | Google")
	sec := w.load().Sections[0]
	want := []section.Job{
		{Role: "Backend Developer", Company: "Netflix", Date: "2023-01"},
		{Role: "Intern", Company: "Google"},
	}
	if sec.Title != "Work" {
		t.Errorf("title = %q", sec.Title)
	}
	if diff := cmp.Diff(want, sec.Jobs); diff != "" {
		t.Errorf("jobs (-want +got):\n%s", diff)
	}

	w.mustRun("add", "education")
	w.mustRun("set", "2", "--school", "BCA|State College|2019|82%")
	if got := w.load().Sections[1].Schools; len(got) != 1 || got[0].Grade != "82%" {
		t.Errorf("schools = %+v", got)
	}

	if _, err := w.run("set", "1", "--school", "BCA|X"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("school on experience error = %v", err)
	}
	if _, err := w.run("set", "1", "--job", "only-role"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("malformed job error = %v", err)
	}
	if _, err := w.run("set", "1"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty set error = %v", err)
	}
	w.mustRun("set", "1", "--clear-jobs")
	if got := w.load().Sections[0].Jobs; len(got) != 0 {
		t.Errorf("jobs after clear = %+v", got)
	}
}

func TestRemoveAndSelect(t *testing.T) {
	w := twoColumnScenario(t)
	doc := w.load()

	w.mustRun("select", short(doc.Sections[1].ID))
	if got := w.load().Selected; got != doc.Sections[1].ID {
		t.Errorf("selected = %q", got)
	}
	w.mustRun("remove", doc.Sections[1].ID)
	after := w.load()
	if len(after.Sections) != 3 || after.Selected != "" {
		t.Errorf("after remove: %d sections, selected %q", len(after.Sections), after.Selected)
	}
	if _, err := w.run("rm", "99"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("remove 99 error = %v", err)
	}
	w.mustRun("select", "--clear")
}

func TestLayoutAndMove(t *testing.T) {
	w := twoColumnScenario(t)
	before := w.load()

	layoutOut := w.mustRun("layout")
	for _, s := range []string{"HEADER", "(fixed)", "LEFT", "RIGHT", "left:1", "right:0"} {
		if !strings.Contains(layoutOut, s) {
			t.Errorf("layout output missing %q:\n%s", s, layoutOut)
		}
	}

	// Skills to the top of the right column: reassembly puts it back after
	// contact, so the canonical order is unchanged.
	w.mustRun("move", "left:1", "right:0")
	if diff := cmp.Diff(section.IDs(before.Sections), section.IDs(w.load().Sections)); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}

	// Swap within the left column.
	w.mustRun("move", "left:1", "left:0")
	want := []section.Type{section.TypeName, section.TypeSkills, section.TypeContact, section.TypeSummary}
	if diff := cmp.Diff(want, types(w.load())); diff != "" {
		t.Errorf("types after move (-want +got):\n%s", diff)
	}
}

func TestMoveRejected(t *testing.T) {
	w := twoColumnScenario(t)
	before, _ := os.ReadFile(w.doc())

	for _, args := range [][]string{
		{"move", "header:0", "right:0"},
		{"move", "left:7", "right:0"},
		{"move", "sidebar:0", "right:0"},
	} {
		if _, err := w.run(args...); !errors.Is(err, errors.ErrCodeInvalidMove) {
			t.Errorf("%v error = %v, want INVALID_MOVE", args, err)
		}
	}
	if _, err := w.run("move", "left", "right:0"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("malformed position error = %v", err)
	}

	after, _ := os.ReadFile(w.doc())
	if !bytes.Equal(before, after) {
		t.Error("rejected moves changed the document")
	}
}

func TestLayoutJSON(t *testing.T) {
	w := twoColumnScenario(t)
	got := w.mustRun("layout", "--json")
	if !strings.Contains(got, `"family": "two-column"`) || !strings.Contains(got, `"id": "left"`) {
		t.Errorf("layout --json:\n%s", got)
	}
}

func TestTemplateCommand(t *testing.T) {
	w := twoColumnScenario(t)
	listing := w.mustRun("template")
	for _, id := range template.IDs {
		if !strings.Contains(listing, string(id)) {
			t.Errorf("template list missing %s", id)
		}
	}

	before := w.load()
	w.mustRun("template", "profile-two-column")
	after := w.load()
	if after.Template != template.ProfileTwoColumn {
		t.Errorf("template = %s", after.Template)
	}
	if diff := cmp.Diff(before.Sections, after.Sections); diff != "" {
		t.Errorf("template switch changed sections (-want +got):\n%s", diff)
	}
	if _, err := w.run("template", "three-column"); !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("unknown template error = %v", err)
	}
}

func TestStyleCommand(t *testing.T) {
	w := newWorkspace(t)
	w.mustRun("init")

	w.mustRun("style", "--size", "18", "--font", "georgia", "--theme", "green", "--left-bg", "#000", "--photo", "https://example.com/me.png")
	doc := w.load()
	if doc.Styles.FontSize != "18px" || doc.Styles.FontFamily != "Georgia, serif" || doc.Theme != "green" {
		t.Errorf("styles = %+v theme = %s", doc.Styles, doc.Theme)
	}
	if doc.LeftColumn.Background != "#000" || doc.Photo != "https://example.com/me.png" {
		t.Errorf("left column = %+v photo = %q", doc.LeftColumn, doc.Photo)
	}

	shown := w.mustRun("style")
	if !strings.Contains(shown, "Georgia") || !strings.Contains(shown, "green") {
		t.Errorf("style output:\n%s", shown)
	}

	w.mustRun("style", "--no-photo")
	if doc := w.load(); doc.Photo != "" {
		t.Errorf("photo = %q after --no-photo", doc.Photo)
	}
	if _, err := w.run("style", "--size", "13px"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("bad size error = %v", err)
	}
	if _, err := w.run("style", "--color", "red"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("bad color error = %v", err)
	}

	before := w.load()
	if _, err := w.run("style", "--theme", "gray", "--photo", "ftp://x/y.png"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad photo error = %v", err)
	}
	if diff := cmp.Diff(before, w.load()); diff != "" {
		t.Errorf("rejected style changed the document (-want +got):\n%s", diff)
	}
}

func TestCheckCommand(t *testing.T) {
	w := newWorkspace(t)
	w.mustRun("init")
	if got := w.mustRun("check"); !strings.Contains(got, "No contact sections") {
		t.Errorf("check output: %s", got)
	}

	w.mustRun("add", "contact")
	w.mustRun("set", "--content", "jane@example.com, +1 555 010 9999")
	if got := w.mustRun("check"); !strings.Contains(got, "look fine") {
		t.Errorf("check output: %s", got)
	}

	w.mustRun("set", "--content", "jane@@example")
	if _, err := w.run("check"); !errors.Is(err, errors.ErrCodeInvalidContact) {
		t.Errorf("check error = %v", err)
	}
}

func TestExportCommand(t *testing.T) {
	w := twoColumnScenario(t)
	base := filepath.Join(w.dir, "out", "jane")

	first := w.mustRun("export", "-t", "svg,json", "-o", base)
	if !strings.Contains(first, "Exported resume.json") {
		t.Errorf("export output missing success line:\n%s", first)
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil || !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Fatalf("svg output: %v %.40q", err, svg)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json output missing: %v", err)
	}

	// The second export is served from the artifact cache.
	again := w.mustRun("export", "-t", "svg,json", "-o", base)
	if !strings.Contains(again, iconCached) {
		t.Errorf("second export not cached:\n%s", again)
	}

	if _, err := w.run("export", "-t", "docx"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	w := newWorkspace(t)
	cfgDir := filepath.Join(w.dir, "config", appName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := "template = \"stylish\"\ntheme = \"gray\"\n\n[styles]\nfont_size = \"16\"\n\n[cache]\nbackend = \"none\"\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	w.mustRun("init")
	doc := w.load()
	if doc.Template != template.Stylish || doc.Theme != "gray" || doc.Styles.FontSize != "16px" {
		t.Errorf("document from config = template %s theme %s styles %+v", doc.Template, doc.Theme, doc.Styles)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	cfg, err := LoadConfig(write("ok.toml", "[cache]\nbackend = \"Redis\"\n[cache.redis]\naddr = \"cache:6379\"\ndb = 2\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.Redis.Addr != "cache:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != DefaultServerAddr || cfg.Template != template.Classic {
		t.Errorf("defaults not kept: %+v", cfg)
	}

	tests := []struct {
		name, body string
		code       errors.Code
	}{
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidInput},
		{"bad template", "template = \"three-column\"\n", errors.ErrCodeInvalidTemplate},
		{"bad theme", "theme = \"pink\"\n", errors.ErrCodeInvalidStyle},
		{"bad toml", "template = \n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(write(tt.name+".toml", tt.body)); !errors.Is(err, tt.code) {
				t.Errorf("LoadConfig() error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("explicit missing config error = %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	w := twoColumnScenario(t)
	path := strings.TrimSpace(w.mustRun("cache", "path"))
	if path != filepath.Join(w.dir, "cache", appName) {
		t.Errorf("cache path = %q", path)
	}

	w.mustRun("export", "-t", "svg", "-o", filepath.Join(w.dir, "r"))
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("cache dir not created: %v", err)
	}
	w.mustRun("cache", "clear")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("cache dir still present after clear: %v", err)
	}
}
