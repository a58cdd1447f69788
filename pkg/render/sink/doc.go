// Package sink renders a resolved resume [layout.View] into output formats.
//
// # Overview
//
// A "sink" takes the region tree produced by the layout package and turns it
// into a file:
//
//   - SVG: one A4 page, the base format for everything else
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster preview (requires rsvg-convert)
//   - JSON: the region tree for external renderers
//
// # SVG Output
//
// [RenderSVG] arranges the page by template family:
//
//   - single column: photo and name on one row, then the main region
//   - two column: a colored left column holding photo, name and the left
//     region; the right region beside it
//   - profile: photo and header sections across the top, then two columns
//
// Single-column templates differ in their section headings: classic draws a
// rule, modern a themed band, minimal nothing, stylish an accent bar with
// upper-case titles. Bare URLs in text become links.
//
//	svg := sink.RenderSVG(view,
//	    sink.WithStyles(doc.Styles),
//	    sink.WithTheme(theme),
//	    sink.WithPhoto(img),
//	)
//
// # PDF and PNG
//
// [RenderPDF] and [RenderPNG] render SVG first and convert it with
// [render.ToPDF] and [render.ToPNG]. Pass SVG options through with
// [WithPDFSVGOptions] or [WithPNGSVGOptions].
package sink
