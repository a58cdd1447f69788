package httputil

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/resumake/pkg/buildinfo"
	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/observability"
)

// DefaultMaxBytes caps a fetched body unless [WithMaxBytes] says otherwise.
const DefaultMaxBytes = 5 << 20

// FetchOption configures [Fetch].
type FetchOption func(*fetchConfig)

type fetchConfig struct {
	policy   Policy
	maxBytes int64
}

// WithPolicy overrides [DefaultPolicy].
func WithPolicy(p Policy) FetchOption { return func(c *fetchConfig) { c.policy = p } }

// WithMaxBytes sets the largest accepted body.
func WithMaxBytes(n int64) FetchOption { return func(c *fetchConfig) { c.maxBytes = n } }

// Fetch GETs url and returns the body. Transient failures are retried.
func Fetch(ctx context.Context, client *http.Client, url string, opts ...FetchOption) ([]byte, error) {
	cfg := fetchConfig{policy: DefaultPolicy, maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(&cfg)
	}
	if client == nil {
		client = http.DefaultClient
	}

	var body []byte
	err := Retry(ctx, cfg.policy, func(ctx context.Context) error {
		b, err := get(ctx, client, url, cfg.maxBytes)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		var re *RetryableError
		if stderrors.As(err, &re) {
			err = re.Err
		}
		return nil, err
	}
	return body, nil
}

func get(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad url %q", url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeInternal, err, "fetch %s", url)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "fetch %s: not found", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: statusError(url, resp.StatusCode)}
	case resp.StatusCode >= 400:
		return nil, statusError(url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeInternal, err, "read %s", url)}
	}
	if int64(len(data)) > maxBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "fetch %s: body exceeds %d bytes", url, maxBytes)
	}
	return data, nil
}

func statusError(url string, code int) error {
	return errors.New(errors.ErrCodeInternal, "fetch %s: %d %s", url, code, http.StatusText(code))
}
