// Package pipeline turns a resume document into exported files.
//
// It is the one export path shared by the CLI and the HTTP server:
//
//  1. View: classify the document's sections under its template
//  2. Photo: load the photo reference, if any
//  3. Render: produce each requested format, through the artifact cache
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, doc, pipeline.Options{
//	    Formats: []string{pipeline.FormatPDF},
//	})
//	pdf := result.Artifacts[pipeline.FormatPDF]
//
// A photo that cannot be loaded does not fail the export; the resume is
// rendered without it and the failure is reported in [Result.Warnings].
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/resumake/pkg/cache"
	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth and DefaultHeight are A4 portrait in points.
	DefaultWidth  = sink.PageWidth
	DefaultHeight = sink.PageHeight

	// DefaultMargin is half an inch.
	DefaultMargin = sink.DefaultMargin

	// DefaultScale is the PNG scale factor.
	DefaultScale = sink.DefaultScale

	// DefaultFilename is the base name of exported files.
	DefaultFilename = "resume"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatPDF, FormatPNG, FormatSVG, FormatJSON}

// ValidateFormat checks that a format is supported. Formats are lowercase.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures one export.
type Options struct {
	Formats  []string `json:"formats,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Margin   float64  `json:"margin,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Filename string   `json:"filename,omitempty"`

	// Content includes section content in JSON output.
	Content bool `json:"content,omitempty"`
	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	formats := make([]string, len(o.Formats))
	for i, f := range o.Formats {
		formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	o.Formats = formats
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Filename == "" {
		o.Filename = DefaultFilename
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Validate checks the options. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "page size must be positive, got %gx%g", o.Width, o.Height)
	}
	if o.Margin < 0 || 2*o.Margin >= min(o.Width, o.Height) {
		return errors.New(errors.ErrCodeInvalidInput, "margin %g does not fit the page", o.Margin)
	}
	if o.Scale <= 0 || o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be in (0, 8], got %g", o.Scale)
	}
	return errors.ValidatePath(o.Filename)
}

// ValidateAndSetDefaults applies defaults and validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// FileName returns the output file name for format, e.g. "resume.pdf".
func (o *Options) FileName(format string) string {
	return o.Filename + "." + format
}

// ArtifactKeyOpts returns the cache key options for format.
func (o *Options) ArtifactKeyOpts(format, photoHash string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    format,
		Width:     o.Width,
		Height:    o.Height,
		Margin:    o.Margin,
		PhotoHash: photoHash,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if format == FormatJSON && o.Content {
		k.Format = "json+content"
	}
	return k
}

// =============================================================================
// Results
// =============================================================================

// Result is the output of one export.
type Result struct {
	// View is the region tree that was rendered.
	View layout.View

	// DocHash is the content hash of the rendered document.
	DocHash string

	// Artifacts maps format to file contents.
	Artifacts map[string][]byte

	// Warnings lists problems that did not stop the export.
	Warnings []string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timing and size information.
type Stats struct {
	Sections   int
	PhotoTime  time.Duration
	RenderTime time.Duration
	Bytes      int
}

// CacheInfo reports cache use.
type CacheInfo struct {
	Hits      int  // artifacts served from cache
	RenderHit bool // every artifact came from cache
}
