package pipeline

import (
	"github.com/matzehuels/resumake/pkg/errors"
	pkgio "github.com/matzehuels/resumake/pkg/io"
	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/photo"
	"github.com/matzehuels/resumake/pkg/render/sink"
)

// Render produces every format in opts.Formats from a view of doc. doc must
// be normalized (see [BuildView]); img may be empty.
func Render(v layout.View, doc pkgio.Document, img photo.Image, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(doc, img, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(v, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(v, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(v, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			jsonOpts := []sink.JSONOption{sink.WithJSONTheme(doc.Theme), sink.WithJSONStyles(doc.Styles)}
			if opts.Content {
				jsonOpts = append(jsonOpts, sink.WithJSONContent())
			}
			data, err = sink.RenderJSON(v, jsonOpts...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(doc pkgio.Document, img photo.Image, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithStyles(doc.Styles),
		sink.WithTheme(theme(doc)),
		sink.WithLeftColumn(doc.LeftColumn),
		sink.WithPageSize(opts.Width, opts.Height),
		sink.WithMargin(opts.Margin),
	}
	if !img.Empty() {
		svgOpts = append(svgOpts, sink.WithPhoto(img))
	}
	return svgOpts
}
