// Package editor holds the application state of one resume being edited and
// the only entry points that mutate it.
//
// An [Editor] owns the section store, the selection, the active template and
// every presentation setting. Front ends (the CLI, the arrange TUI and the
// HTTP API) call its methods; each call is one event and runs to completion
// under a mutex, so events are applied strictly one after another and a move
// is always resolved against the latest committed sequence.
package editor

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/resumake/pkg/errors"
	pkgio "github.com/matzehuels/resumake/pkg/io"
	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/observability"
	"github.com/matzehuels/resumake/pkg/render/styles"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// Editor is the application state aggregate. It is safe for concurrent use.
type Editor struct {
	mu sync.Mutex

	store  *section.Store
	policy template.Policy
	styles styles.Styles
	theme  string
	left   styles.LeftColumn
	photo  string

	logger *log.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger for diagnostics. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an editor for an empty document with default settings.
func New(opts ...Option) *Editor {
	e, err := FromDocument(pkgio.New(), opts...)
	if err != nil {
		// The default document always normalizes.
		panic(err)
	}
	return e
}

// FromDocument creates an editor holding doc. The document is normalized
// first; invalid documents are rejected.
func FromDocument(doc pkgio.Document, opts ...Option) (*Editor, error) {
	if err := doc.Normalize(); err != nil {
		return nil, err
	}
	store, err := section.NewStoreFrom(doc.Sections)
	if err != nil {
		return nil, err
	}
	if err := store.Select(doc.Selected); err != nil {
		return nil, err
	}

	e := &Editor{
		store:  store,
		policy: template.MustLookup(doc.Template),
		styles: doc.Styles,
		theme:  doc.Theme,
		left:   doc.LeftColumn,
		photo:  doc.Photo,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// =============================================================================
// Section events
// =============================================================================

// Add appends a new section of type t and selects it.
func (e *Editor) Add(ctx context.Context, t section.Type) (section.Section, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sec, err := e.store.Add(t)
	if err != nil {
		e.logger.Debug("add rejected", "type", t, "err", err)
		return section.Section{}, err
	}
	e.logger.Debug("section added", "id", sec.ID, "type", sec.Type)
	e.committed(ctx, "add")
	return sec, nil
}

// Update merges p into the section with the given id.
//
// Contact sections get a format check of their new content. A failed check
// is logged as a warning; the update is applied either way.
func (e *Editor) Update(ctx context.Context, id string, p section.Patch) (section.Section, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sec, err := e.store.Update(id, p)
	if err != nil {
		e.logger.Debug("update rejected", "id", id, "err", err)
		return section.Section{}, err
	}
	if sec.Type == section.TypeContact && p.Content != nil {
		if err := errors.ValidateContact(sec.Content); err != nil {
			e.logger.Warn("contact format", "id", id, "err", errors.UserMessage(err))
		}
	}
	e.committed(ctx, "update")
	return sec, nil
}

// Remove deletes the section with the given id. A removed selection becomes
// no selection.
func (e *Editor) Remove(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Remove(id); err != nil {
		e.logger.Debug("remove rejected", "id", id, "err", err)
		return err
	}
	e.logger.Debug("section removed", "id", id)
	e.committed(ctx, "remove")
	return nil
}

// Select marks id as selected. An empty id clears the selection.
func (e *Editor) Select(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Select(id); err != nil {
		return err
	}
	e.committed(ctx, "select")
	return nil
}

// =============================================================================
// Moves
// =============================================================================

// MoveResult reports the outcome of a move event.
type MoveResult struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

// Move resolves m against the current sequence and commits the result.
//
// Invalid moves (unknown or fixed regions, out-of-range indices) are
// expected while dragging. They are logged at debug level and reported as
// not applied; the returned error is nil. A commit that fails with
// SEQUENCE_MISMATCH is a bug in the resolver or its caller and is returned.
func (e *Editor) Move(ctx context.Context, m layout.Move) (MoveResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tmpl := string(e.policy.Template)
	next, err := layout.Resolve(e.policy, e.store.Sections(), m)
	if err != nil {
		e.logger.Debug("move ignored", "template", tmpl, "move", m.String(), "err", errors.UserMessage(err))
		observability.Editor().OnMoveRejected(ctx, tmpl, m.String(), err)
		return MoveResult{Reason: errors.UserMessage(err)}, nil
	}
	if m.Noop() {
		return MoveResult{Applied: true}, nil
	}
	if err := e.store.ReplaceOrder(next); err != nil {
		e.logger.Error("move produced an invalid sequence", "template", tmpl, "move", m.String(), "err", err)
		return MoveResult{}, err
	}
	e.logger.Debug("section moved", "template", tmpl, "move", m.String())
	observability.Editor().OnMove(ctx, tmpl, m.String())
	e.committed(ctx, "move")
	return MoveResult{Applied: true}, nil
}

// =============================================================================
// Settings events
// =============================================================================

// SetTemplate switches the active template. Sections are only regrouped;
// none is changed or dropped.
func (e *Editor) SetTemplate(ctx context.Context, id template.ID) error {
	p, err := template.Lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.policy = p
	e.committed(ctx, "template")
	return nil
}

// SetStyles replaces the text styles. Empty fields keep their defaults and
// short font names are accepted.
func (e *Editor) SetStyles(ctx context.Context, s styles.Styles) error {
	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.styles = s
	e.committed(ctx, "styles")
	return nil
}

// SetTheme selects the color theme by name.
func (e *Editor) SetTheme(ctx context.Context, name string) error {
	return e.ApplySettings(ctx, Settings{Theme: &name})
}

// SetLeftColumn replaces the left column colors of the two-column template.
func (e *Editor) SetLeftColumn(ctx context.Context, lc styles.LeftColumn) error {
	return e.ApplySettings(ctx, Settings{LeftBackground: &lc.Background, LeftText: &lc.Text})
}

// SetPhoto sets the photo reference: a file path or an http(s) URL. An
// empty reference removes the photo. The photo itself is not loaded here.
func (e *Editor) SetPhoto(ctx context.Context, ref string) error {
	return e.ApplySettings(ctx, Settings{Photo: &ref})
}

func checkPhoto(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	if strings.Contains(ref, "://") {
		return ref, errors.ValidateURL(ref)
	}
	return ref, errors.ValidatePath(ref)
}

// Settings is a partial change of the presentation settings. Nil fields
// are left untouched.
type Settings struct {
	FontSize       *string
	FontFamily     *string
	Color          *string
	Theme          *string
	LeftBackground *string
	LeftText       *string
	Photo          *string
}

// ApplySettings merges s into the current settings. Every field is
// validated before any is applied, so a rejected change leaves all
// settings as they were.
func (e *Editor) ApplySettings(ctx context.Context, s Settings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.styles
	setIf(&st.FontSize, s.FontSize)
	setIf(&st.FontFamily, s.FontFamily)
	setIf(&st.Color, s.Color)
	st = st.Normalize()
	if err := st.Validate(); err != nil {
		return err
	}

	theme := e.theme
	if s.Theme != nil {
		th, err := styles.LookupTheme(*s.Theme)
		if err != nil {
			return err
		}
		theme = th.Name
	}

	lc := e.left
	setIf(&lc.Background, s.LeftBackground)
	setIf(&lc.Text, s.LeftText)
	lc = lc.Normalize()
	if err := lc.Validate(); err != nil {
		return err
	}

	photo := e.photo
	if s.Photo != nil {
		ref, err := checkPhoto(*s.Photo)
		if err != nil {
			return err
		}
		photo = ref
	}

	e.styles, e.theme, e.left, e.photo = st, theme, lc, photo
	e.committed(ctx, "settings")
	return nil
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// =============================================================================
// Reads
// =============================================================================

// View returns the current rendering boundary.
func (e *Editor) View() layout.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return layout.BuildView(e.policy, e.store.Sections())
}

// Document returns a snapshot of the full state.
func (e *Editor) Document() pkgio.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return pkgio.Document{
		Template:   e.policy.Template,
		Theme:      e.theme,
		Styles:     e.styles,
		LeftColumn: e.left,
		Photo:      e.photo,
		Selected:   e.store.Selected(),
		Sections:   e.store.Sections(),
	}
}

// Sections returns a copy of the canonical sequence.
func (e *Editor) Sections() []section.Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Sections()
}

// Get returns the section with the given id.
func (e *Editor) Get(id string) (section.Section, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Get(id)
}

// Selected returns the selected section id, or "" for none.
func (e *Editor) Selected() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Selected()
}

// Policy returns a copy of the active template policy.
func (e *Editor) Policy() template.Policy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return template.MustLookup(e.policy.Template)
}

// committed reports a successful event. Callers hold e.mu.
func (e *Editor) committed(ctx context.Context, event string) {
	observability.Editor().OnCommit(ctx, event, e.store.Len())
}
