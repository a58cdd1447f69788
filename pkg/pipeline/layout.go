package pipeline

import (
	pkgio "github.com/matzehuels/resumake/pkg/io"
	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/render/styles"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// BuildView normalizes doc and resolves its region tree. doc is not
// modified; the normalized copy is returned.
func BuildView(doc pkgio.Document) (layout.View, pkgio.Document, error) {
	doc = cloneDocument(doc)
	if err := doc.Normalize(); err != nil {
		return layout.View{}, pkgio.Document{}, err
	}
	p, err := template.Lookup(doc.Template)
	if err != nil {
		return layout.View{}, pkgio.Document{}, err
	}
	return layout.BuildView(p, doc.Sections), doc, nil
}

// theme returns the document theme. Normalized documents always have one.
func theme(doc pkgio.Document) styles.Theme {
	th, err := styles.LookupTheme(doc.Theme)
	if err != nil {
		th, _ = styles.LookupTheme(styles.DefaultTheme)
	}
	return th
}

func cloneDocument(doc pkgio.Document) pkgio.Document {
	secs := doc.Sections
	doc.Sections = make([]section.Section, len(secs))
	for i, s := range secs {
		doc.Sections[i] = s.Clone()
	}
	return doc
}
