// Package photo loads the optional profile photo of a resume.
//
// A photo reference is either a local file path or an http(s) URL.
// [Resolve] turns the reference into a [Source]; loading it yields an
// [Image] that renderers inline as a data URI.
//
//	src, err := photo.Resolve(doc.Photo)
//	img, err := src.Load(ctx)
//	svg := sink.RenderSVG(view, sink.WithPhoto(img))
package photo

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"strings"

	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/httputil"
)

// MaxBytes is the largest photo accepted from any source.
const MaxBytes = 5 << 20

// Image is a decoded photo ready for embedding.
type Image struct {
	MIME string `json:"mime"`
	Data []byte `json:"data"`
}

// Empty reports whether the image holds no data.
func (i Image) Empty() bool { return len(i.Data) == 0 }

// DataURI returns the image as an RFC 2397 data URI.
func (i Image) DataURI() string {
	return "data:" + i.MIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

var supported = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// Decode sniffs the content type of data and rejects anything that is not
// a supported image.
func Decode(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, errors.New(errors.ErrCodeInvalidFormat, "photo is empty")
	}
	if len(data) > MaxBytes {
		return Image{}, errors.New(errors.ErrCodeInvalidInput, "photo exceeds %d bytes", MaxBytes)
	}
	mime := http.DetectContentType(data)
	if !supported[mime] {
		return Image{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported photo type %s", mime)
	}
	return Image{MIME: mime, Data: data}, nil
}

// Source loads a photo.
type Source interface {
	Load(ctx context.Context) (Image, error)
}

// Resolve picks the Source for ref: a URL source for references with a
// scheme, a file source otherwise.
func Resolve(ref string, opts ...URLOption) (Source, error) {
	ref = strings.TrimSpace(ref)
	if strings.Contains(ref, "://") {
		if err := errors.ValidateURL(ref); err != nil {
			return nil, err
		}
		return NewURLSource(ref, opts...), nil
	}
	if err := errors.ValidatePath(ref); err != nil {
		return nil, err
	}
	return FileSource{Path: ref}, nil
}

// FileSource reads a photo from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return Image{}, errors.New(errors.ErrCodeNotFound, "photo %s does not exist", s.Path)
	}
	if err != nil {
		return Image{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read photo %s", s.Path)
	}
	return Decode(data)
}

// URLOption configures a [URLSource].
type URLOption func(*URLSource)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) URLOption { return func(s *URLSource) { s.client = c } }

// WithCache caches downloaded photos.
func WithCache(c *httputil.Cache) URLOption {
	return func(s *URLSource) {
		if c != nil {
			s.cache = c.Namespace("photo:")
		}
	}
}

// WithRetry overrides the retry policy.
func WithRetry(p httputil.Policy) URLOption { return func(s *URLSource) { s.policy = p } }

// URLSource downloads a photo, retrying transient failures.
type URLSource struct {
	URL string

	client *http.Client
	cache  *httputil.Cache
	policy httputil.Policy
}

// NewURLSource creates a source for url.
func NewURLSource(url string, opts ...URLOption) *URLSource {
	s := &URLSource{URL: url, client: http.DefaultClient, policy: httputil.DefaultPolicy}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *URLSource) Load(ctx context.Context) (Image, error) {
	if s.cache != nil {
		var img Image
		if ok, _ := s.cache.Get(s.URL, &img); ok && !img.Empty() {
			return img, nil
		}
	}

	data, err := httputil.Fetch(ctx, s.client, s.URL,
		httputil.WithPolicy(s.policy), httputil.WithMaxBytes(MaxBytes))
	if err != nil {
		return Image{}, err
	}
	img, err := Decode(data)
	if err != nil {
		return Image{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(s.URL, img)
	}
	return img, nil
}
