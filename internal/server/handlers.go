package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/resumake/pkg/editor"
	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/pipeline"
	"github.com/matzehuels/resumake/pkg/render/styles"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// =============================================================================
// Catalogs
// =============================================================================

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, section.Palette)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, section.DefaultSuggestions())
}

type templatesResponse struct {
	Current   template.ID       `json:"current"`
	Templates []template.Policy `json:"templates"`
	Themes    []string          `json:"themes"`
	Fonts     []string          `json:"fonts"`
	FontSizes []string          `json:"fontSizes"`
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	resp := templatesResponse{
		Current:   s.editor.Policy().Template,
		Themes:    styles.ThemeNames(),
		Fonts:     styles.FontNames(),
		FontSizes: styles.FontSizes,
	}
	for _, id := range template.IDs {
		resp.Templates = append(resp.Templates, template.MustLookup(id))
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Reads
// =============================================================================

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.editor.View())
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.editor.Document())
}

type sectionsResponse struct {
	Selected string            `json:"selected,omitempty"`
	Sections []section.Section `json:"sections"`
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sectionsResponse{
		Selected: s.editor.Selected(),
		Sections: s.editor.Sections(),
	})
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sec, ok := s.editor.Get(id)
	if !ok {
		writeError(w, r, s.logger, errors.New(errors.ErrCodeNotFound, "section not found: %q", id))
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

// =============================================================================
// Section events
// =============================================================================

type addRequest struct {
	Type string `json:"type"`
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	t, err := section.ParseType(req.Type)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	sec, err := s.editor.Add(r.Context(), t)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.committed(r.Context())
	w.Header().Set("Location", "/sections/"+sec.ID)
	writeJSON(w, http.StatusCreated, sec)
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	var p section.Patch
	if err := decode(r, &p); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	sec, err := s.editor.Update(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.committed(r.Context())
	writeJSON(w, http.StatusOK, sec)
}

func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	if err := s.editor.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.committed(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := s.editor.Select(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.committed(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	if err := s.editor.Select(r.Context(), ""); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.committed(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Moves
// =============================================================================

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var m layout.Move
	if err := decode(r, &m); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	res, err := s.editor.Move(r.Context(), m)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if res.Applied && !m.Noop() {
		s.committed(r.Context())
	}
	writeJSON(w, http.StatusOK, res)
}

// =============================================================================
// Settings
// =============================================================================

type templateRequest struct {
	Template template.ID `json:"template"`
}

func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := s.editor.SetTemplate(r.Context(), req.Template); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.committed(r.Context())
	writeJSON(w, http.StatusOK, s.editor.View())
}

// stylesRequest changes only the fields that are present.
type stylesRequest struct {
	FontSize   *string            `json:"fontSize"`
	FontFamily *string            `json:"fontFamily"`
	Color      *string            `json:"color"`
	Theme      *string            `json:"theme"`
	LeftColumn *styles.LeftColumn `json:"leftColumn"`
	Photo      *string            `json:"photo"`
}

func (s *Server) handleSetStyles(w http.ResponseWriter, r *http.Request) {
	var req stylesRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	set := editor.Settings{
		FontSize:   req.FontSize,
		FontFamily: req.FontFamily,
		Color:      req.Color,
		Theme:      req.Theme,
		Photo:      req.Photo,
	}
	if req.LeftColumn != nil {
		set.LeftBackground = &req.LeftColumn.Background
		set.LeftText = &req.LeftColumn.Text
	}
	if err := s.editor.ApplySettings(r.Context(), set); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.committed(r.Context())
	writeJSON(w, http.StatusOK, s.editor.Document())
}

// =============================================================================
// Export
// =============================================================================

var contentTypes = map[string]string{
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats: []string{format},
		Content: q.Get("content") == "1" || q.Get("content") == "true",
		Refresh: q.Get("refresh") == "1" || q.Get("refresh") == "true",
		Logger:  s.logger,
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, r, s.logger, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}

	result, err := s.runner.Render(r.Context(), s.editor.Document(), opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	data := result.Artifacts[format]

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.%s"`, pipeline.DefaultFilename, format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	for _, warn := range result.Warnings {
		w.Header().Add("X-Warning", warn)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
