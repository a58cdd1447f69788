package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/resumake/pkg/cache"
	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/httputil"
	pkgio "github.com/matzehuels/resumake/pkg/io"
	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/observability"
	"github.com/matzehuels/resumake/pkg/photo"
)

// Runner executes exports with artifact caching. It holds no per-export
// state and may be shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	photoOpts []photo.URLOption
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPhotoCache caches downloaded photos in c.
func WithPhotoCache(c *httputil.Cache) RunnerOption {
	return func(r *Runner) { r.photoOpts = append(r.photoOpts, photo.WithCache(c)) }
}

// WithHTTPClient sets the client used to download photos.
func WithHTTPClient(c *http.Client) RunnerOption {
	return func(r *Runner) { r.photoOpts = append(r.photoOpts, photo.WithClient(c)) }
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default key scheme and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, opts ...RunnerOption) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render exports doc in every requested format.
func (r *Runner) Render(ctx context.Context, doc pkgio.Document, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	v, doc, err := BuildView(doc)
	if err != nil {
		return nil, err
	}
	tmpl := string(v.Template)
	observability.Render().OnRenderStart(ctx, tmpl, opts.Formats)
	start := time.Now()

	result, err := r.render(ctx, v, doc, opts)
	observability.Render().OnRenderComplete(ctx, tmpl, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Runner) render(ctx context.Context, v layout.View, doc pkgio.Document, opts Options) (*Result, error) {
	result := &Result{View: v, Artifacts: make(map[string][]byte, len(opts.Formats))}
	result.Stats.Sections = v.Len()

	photoStart := time.Now()
	img, warn := r.loadPhoto(ctx, doc.Photo)
	if warn != "" {
		result.Warnings = append(result.Warnings, warn)
	}
	result.Stats.PhotoTime = time.Since(photoStart)

	docHash, err := hashDocument(doc)
	if err != nil {
		return nil, err
	}
	result.DocHash = docHash
	photoHash := ""
	if !img.Empty() {
		photoHash = cache.Hash(img.Data)
	}

	renderStart := time.Now()
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format, photoHash))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact:"+format)
				result.Artifacts[format] = data
				result.CacheInfo.Hits++
				continue
			} else if err != nil {
				opts.Logger.Debug("cache read failed", "format", format, "err", err)
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact:"+format)
		missing = append(missing, format)
	}

	if len(missing) > 0 {
		renderOpts := opts
		renderOpts.Formats = missing
		rendered, err := Render(v, doc, img, renderOpts)
		if err != nil {
			return nil, err
		}
		for format, data := range rendered {
			result.Artifacts[format] = data
			key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format, photoHash))
			if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
				opts.Logger.Debug("cache write failed", "format", format, "err", err)
				continue
			}
			observability.Cache().OnCacheSet(ctx, "artifact:"+format, len(data))
		}
	}
	result.CacheInfo.RenderHit = len(missing) == 0
	result.Stats.RenderTime = time.Since(renderStart)
	for _, data := range result.Artifacts {
		result.Stats.Bytes += len(data)
	}

	opts.Logger.Info("rendered resume",
		"template", v.Template,
		"sections", result.Stats.Sections,
		"formats", opts.Formats,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// loadPhoto loads ref. Failures are logged and returned as a warning; the
// export continues without a photo.
func (r *Runner) loadPhoto(ctx context.Context, ref string) (photo.Image, string) {
	if ref == "" {
		return photo.Image{}, ""
	}
	src, err := photo.Resolve(ref, r.photoOpts...)
	if err == nil {
		var img photo.Image
		if img, err = src.Load(ctx); err == nil {
			return img, ""
		}
	}
	r.Logger.Warn("photo skipped", "ref", ref, "err", errors.UserMessage(err))
	return photo.Image{}, "photo skipped: " + errors.UserMessage(err)
}

// hashDocument hashes the parts of doc that affect rendering. The
// selection is editor state and is left out.
func hashDocument(doc pkgio.Document) (string, error) {
	doc.Selected = ""
	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash document")
	}
	return cache.Hash(data), nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}
