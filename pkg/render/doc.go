// Package render turns a resolved resume layout into exportable documents.
//
// # Overview
//
// The layout package decides which section goes where. This package and its
// subpackages decide how that looks on a page:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Fonts, themes and text helpers (in [styles] subpackage)
//   - Output formats SVG, PDF, PNG and JSON (in [sink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). This is the document
// rendering capability the export sinks delegate to.
//
//	svg := sink.RenderSVG(view, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 1.5)
//
// [styles]: github.com/matzehuels/resumake/pkg/render/styles
// [sink]: github.com/matzehuels/resumake/pkg/render/sink
package render
