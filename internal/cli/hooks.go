package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/resumake/pkg/observability"
)

// logHooks reports observability events to the debug log.
type logHooks struct {
	logger *log.Logger
}

// RegisterLogHooks routes editor, render, cache and HTTP events to logger
// at debug level.
func RegisterLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger}
	observability.SetEditorHooks(h)
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnMove(_ context.Context, tmpl, move string) {
	h.logger.Debug("move", "template", tmpl, "move", move)
}

func (h logHooks) OnMoveRejected(_ context.Context, tmpl, move string, err error) {
	h.logger.Debug("move rejected", "template", tmpl, "move", move, "err", err)
}

func (h logHooks) OnCommit(_ context.Context, event string, sections int) {
	h.logger.Debug("commit", "event", event, "sections", sections)
}

func (h logHooks) OnRenderStart(_ context.Context, tmpl string, formats []string) {
	h.logger.Debug("render start", "template", tmpl, "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, tmpl string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "template", tmpl, "formats", formats, "took", d, "err", err)
		return
	}
	h.logger.Debug("render complete", "template", tmpl, "formats", formats, "took", d)
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
