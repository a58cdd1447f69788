package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/photo"
	"github.com/matzehuels/resumake/pkg/render/styles"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// A4 portrait in points.
const (
	PageWidth     = 595.0
	PageHeight    = 842.0
	DefaultMargin = 36.0
)

const (
	photoSize  = 72.0
	leftShare  = 0.34 // left column share of the page in two-column layouts
	columnGap  = 18.0
	sectionGap = 0.9 // in base font sizes
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	styles styles.Styles
	theme  styles.Theme
	left   styles.LeftColumn
	photo  photo.Image
	width  float64
	height float64
	margin float64
}

func WithStyles(s styles.Styles) SVGOption { return func(r *svgRenderer) { r.styles = s.Normalize() } }
func WithTheme(t styles.Theme) SVGOption   { return func(r *svgRenderer) { r.theme = t } }
func WithLeftColumn(lc styles.LeftColumn) SVGOption {
	return func(r *svgRenderer) { r.left = lc.Normalize() }
}
func WithPhoto(img photo.Image) SVGOption { return func(r *svgRenderer) { r.photo = img } }

// WithPageSize sets the page size in points. Non-positive values are ignored.
func WithPageSize(w, h float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 && h > 0 {
			r.width, r.height = w, h
		}
	}
}

// WithMargin sets the page margin in points.
func WithMargin(m float64) SVGOption {
	return func(r *svgRenderer) {
		if m >= 0 {
			r.margin = m
		}
	}
}

// RenderSVG draws v on a single page. The page grows downward when the
// content does not fit.
func RenderSVG(v layout.View, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	p := &page{r: r, base: r.styles.BaseSize()}
	p.heading, _ = v.Name()

	var bottom float64
	switch v.Family {
	case template.FamilyTwoColumn:
		bottom = r.twoColumn(p, v)
	case template.FamilyProfile:
		bottom = r.profile(p, v)
	default:
		bottom = r.singleColumn(p, v)
	}
	height := max(r.height, bottom+r.margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, height, r.width, height)
	renderDefs(&buf, r)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", r.width, height)
	for _, b := range p.bands {
		h := b.h
		if h == 0 {
			h = height - b.y
		}
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			b.x, b.y, b.w, h, styles.EscapeXML(b.fill))
	}
	fmt.Fprintf(&buf, `  <g font-family="%s" fill="%s">`+"\n",
		styles.EscapeXML(r.styles.FontFamily), styles.EscapeXML(r.styles.Color))
	buf.Write(p.buf.Bytes())
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) *svgRenderer {
	th, _ := styles.LookupTheme(styles.DefaultTheme)
	r := &svgRenderer{
		styles: styles.Default(),
		theme:  th,
		left:   styles.DefaultLeftColumn(),
		width:  PageWidth,
		height: PageHeight,
		margin: DefaultMargin,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func renderDefs(buf *bytes.Buffer, r *svgRenderer) {
	if r.photo.Empty() {
		return
	}
	fmt.Fprintf(buf, `  <defs><clipPath id="photo-clip" clipPathUnits="objectBoundingBox"><circle cx="0.5" cy="0.5" r="0.5"/></clipPath></defs>`+"\n")
}

// =============================================================================
// Arrangements
// =============================================================================

func (r *svgRenderer) singleColumn(p *page, v layout.View) float64 {
	x, w := r.margin, r.width-2*r.margin
	y := p.headerRow(x, r.margin, w, v, r.styles.Color)
	if v.Template == template.Modern {
		p.bands = append(p.bands, band{x: 0, y: 0, w: r.width, h: y - p.base*0.4, fill: r.theme.Soft})
	}

	col := &column{x: x, width: w, y: y, text: r.styles.Color, accent: r.theme.Accent, variant: v.Template}
	for _, rv := range v.Regions {
		p.sections(col, rv.Sections)
	}
	return col.y
}

func (r *svgRenderer) twoColumn(p *page, v layout.View) float64 {
	leftW := r.width * leftShare
	inset := r.margin * 0.75
	p.bands = append(p.bands, band{x: 0, y: 0, w: leftW, fill: r.left.Background})

	left := &column{x: inset, width: leftW - 2*inset, y: r.margin, text: r.left.Text, accent: r.left.Text, variant: template.Classic}
	if !r.photo.Empty() {
		p.image(left.x, left.y, photoSize)
		left.y += photoSize + p.base
	}
	if s, ok := v.Name(); ok {
		left.y = p.name(left, s.Content)
	}
	for _, s := range v.HeaderExtras() {
		p.body(left, s)
	}
	left.y += p.base * sectionGap
	p.sections(left, v.Region(template.RegionLeft))

	rx := leftW + inset
	right := &column{x: rx, width: r.width - rx - r.margin, y: r.margin, text: r.styles.Color, accent: r.theme.Accent, variant: template.Classic}
	p.sections(right, v.Region(template.RegionRight))

	return max(left.y, right.y)
}

func (r *svgRenderer) profile(p *page, v layout.View) float64 {
	x, w := r.margin, r.width-2*r.margin
	y := p.headerRow(x, r.margin, w, v, r.styles.Color)
	p.rule(x, y-p.base*0.5, w, r.theme.Accent, 1)

	leftW := (w - columnGap) * leftShare
	left := &column{x: x, width: leftW, y: y, text: r.styles.Color, accent: r.theme.Accent, variant: template.Minimal}
	right := &column{x: x + leftW + columnGap, width: w - leftW - columnGap, y: y, text: r.styles.Color, accent: r.theme.Accent, variant: template.Classic}
	p.sections(left, v.Region(template.RegionLeft))
	p.sections(right, v.Region(template.RegionRight))
	return max(left.y, right.y)
}

// =============================================================================
// Page primitives
// =============================================================================

// band is a background rectangle painted beneath all content. A zero height
// extends it to the bottom of the page.
type band struct {
	x, y, w, h float64
	fill       string
}

// column is a vertical flow of sections with a cursor at y.
type column struct {
	x, width float64
	y        float64
	text     string
	accent   string
	variant  template.ID
}

type page struct {
	r       *svgRenderer
	buf     bytes.Buffer
	base    float64
	bands   []band
	heading section.Section // the name drawn as document heading
}

// headerRow draws the photo, the heading name and the other header sections
// in one row and returns the y below it.
func (p *page) headerRow(x, y, width float64, v layout.View, fill string) float64 {
	top := y
	tx := x
	if !p.r.photo.Empty() {
		p.image(x, y, photoSize)
		tx += photoSize + columnGap
	}
	col := &column{x: tx, width: width - (tx - x), y: y, text: fill, accent: p.r.theme.Accent, variant: v.Template}
	if s, ok := v.Name(); ok {
		col.y = p.name(col, s.Content)
	}
	for _, s := range v.HeaderExtras() {
		p.body(col, s)
	}
	bottom := col.y
	if !p.r.photo.Empty() {
		bottom = max(bottom, top+photoSize)
	}
	return bottom + p.base*1.5
}

func (p *page) sections(col *column, secs []section.Section) {
	for _, s := range secs {
		if s.ID == p.heading.ID {
			continue
		}
		p.section(col, s)
	}
}

func (p *page) section(col *column, s section.Section) {
	switch s.Kind() {
	case section.KindName:
		p.body(col, s)
	case section.KindJobs:
		p.title(col, s)
		for _, j := range s.Jobs {
			p.line(col, j.Role, p.base, "bold", col.text)
			p.line(col, joinNonEmpty(" | ", j.Company, j.Date), p.base*0.9, "normal", col.text)
			col.y += p.base * 0.3
		}
	case section.KindSchools:
		p.title(col, s)
		for _, sc := range s.Schools {
			p.line(col, sc.Degree, p.base, "bold", col.text)
			grade := ""
			if sc.Grade != "" {
				grade = "Grade: " + sc.Grade
			}
			p.line(col, joinNonEmpty(" | ", sc.School, sc.Year, grade), p.base*0.9, "normal", col.text)
			col.y += p.base * 0.3
		}
	default:
		p.title(col, s)
		p.paragraph(col, s.Content, p.base)
	}
	col.y += p.base * sectionGap
}

// body draws a section's content without a heading.
func (p *page) body(col *column, s section.Section) {
	if s.Kind() == section.KindName {
		p.line(col, s.Content, p.base*1.2, "bold", col.text)
		return
	}
	p.paragraph(col, s.Content, p.base)
}

func (p *page) name(col *column, text string) float64 {
	size := p.base * 1.8
	if text == "" {
		return col.y
	}
	for _, ln := range styles.Wrap(text, col.width, size) {
		p.text(col.x, col.y+size, size, "bold", col.text, ln)
		col.y += styles.LineHeight(size)
	}
	return col.y
}

// title draws a section heading in the column's variant.
func (p *page) title(col *column, s section.Section) {
	title := s.Title
	if title == "" {
		title = styles.Title(string(s.Type))
	}
	size := p.base * 1.15
	lh := styles.LineHeight(size)

	switch col.variant {
	case template.Modern:
		p.rect(col.x, col.y, col.width, lh+4, p.r.theme.Soft)
		p.text(col.x+4, col.y+size+2, size, "bold", col.accent, styles.Title(title))
		col.y += lh + 4
	case template.Minimal:
		p.text(col.x, col.y+size, size, "bold", col.text, title)
		col.y += lh
	case template.Stylish:
		p.rect(col.x, col.y+1, 3, size+2, col.accent)
		fmt.Fprintf(&p.buf, `    <text x="%.1f" y="%.1f" font-size="%.1f" font-weight="bold" letter-spacing="1" fill="%s">%s</text>`+"\n",
			col.x+8, col.y+size, size, styles.EscapeXML(col.accent), styles.EscapeXML(styles.Upper(title)))
		col.y += lh
	default:
		p.text(col.x, col.y+size, size, "bold", col.accent, title)
		col.y += lh
		p.rule(col.x, col.y, col.width, col.accent, 0.75)
	}
	col.y += p.base * 0.4
}

// paragraph draws wrapped text. Bare URLs become links.
func (p *page) paragraph(col *column, text string, size float64) {
	for _, ln := range styles.Wrap(text, col.width, size) {
		if ln != "" {
			fmt.Fprintf(&p.buf, `    <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">`,
				col.x, col.y+size, size, styles.EscapeXML(col.text))
			for _, seg := range styles.SplitURLs(ln) {
				styles.WrapURL(&p.buf, seg.URL, func() {
					if seg.URL != "" {
						fmt.Fprintf(&p.buf, `<tspan fill="%s" text-decoration="underline">%s</tspan>`,
							styles.EscapeXML(p.r.theme.Accent), styles.EscapeXML(seg.Text))
						return
					}
					fmt.Fprintf(&p.buf, `<tspan>%s</tspan>`, styles.EscapeXML(seg.Text))
				})
			}
			p.buf.WriteString("</text>\n")
		}
		col.y += styles.LineHeight(size)
	}
}

// line draws one wrapped run in a single weight. Empty text draws nothing.
func (p *page) line(col *column, text string, size float64, weight, fill string) {
	if text == "" {
		return
	}
	for _, ln := range styles.Wrap(text, col.width, size) {
		p.text(col.x, col.y+size, size, weight, fill, ln)
		col.y += styles.LineHeight(size)
	}
}

func (p *page) text(x, y, size float64, weight, fill, s string) {
	fmt.Fprintf(&p.buf, `    <text x="%.1f" y="%.1f" font-size="%.1f" font-weight="%s" fill="%s">%s</text>`+"\n",
		x, y, size, weight, styles.EscapeXML(fill), styles.EscapeXML(s))
}

func (p *page) rect(x, y, w, h float64, fill string) {
	fmt.Fprintf(&p.buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		x, y, w, h, styles.EscapeXML(fill))
}

func (p *page) rule(x, y, w float64, stroke string, width float64) {
	fmt.Fprintf(&p.buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x, y, x+w, y, styles.EscapeXML(stroke), width)
}

func (p *page) image(x, y, size float64) {
	uri := p.r.photo.DataURI()
	fmt.Fprintf(&p.buf, `    <image x="%.1f" y="%.1f" width="%.1f" height="%.1f" href="%s" xlink:href="%s" preserveAspectRatio="xMidYMid slice" clip-path="url(#photo-clip)"/>`+"\n",
		x, y, size, size, uri, uri)
}

func joinNonEmpty(sep string, parts ...string) string {
	var out string
	for _, s := range parts {
		if s == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += s
	}
	return out
}
