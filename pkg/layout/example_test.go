package layout_test

import (
	"fmt"

	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

func titles(secs []section.Section) []string {
	out := make([]string, len(secs))
	for i, s := range secs {
		out[i] = s.Title
	}
	return out
}

func ExampleClassify() {
	seq := []section.Section{
		{ID: "1", Type: section.TypeName, Title: "Jane Doe"},
		{ID: "2", Type: section.TypeContact, Title: "Contact"},
		{ID: "3", Type: section.TypeSkills, Title: "Skills"},
		{ID: "4", Type: section.TypeSummary, Title: "Summary"},
	}

	c := layout.Classify(template.MustLookup(template.TwoColumn), seq)
	for _, rl := range c.Regions {
		fmt.Println(rl.Region.ID, titles(rl.Sections))
	}
	// Output:
	// header [Jane Doe]
	// left [Contact Skills]
	// right [Summary]
}

func ExampleResolve() {
	seq := []section.Section{
		{ID: "1", Type: section.TypeName, Title: "Jane Doe"},
		{ID: "2", Type: section.TypeContact, Title: "Contact"},
		{ID: "3", Type: section.TypeSkills, Title: "Skills"},
		{ID: "4", Type: section.TypeExperience, Title: "Experience"},
	}

	// Drag Experience to the top of the single column.
	next, err := layout.Resolve(template.MustLookup(template.Classic), seq, layout.Move{
		From: layout.RegionRef{Region: template.RegionMain, Index: 2},
		To:   layout.RegionRef{Region: template.RegionMain, Index: 0},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(titles(next))
	// Output:
	// [Jane Doe Experience Contact Skills]
}

func ExampleResolve_invalid() {
	seq := []section.Section{
		{ID: "1", Type: section.TypeName, Title: "Jane Doe"},
		{ID: "2", Type: section.TypeSkills, Title: "Skills"},
	}

	// The header is fixed; the sequence comes back unchanged.
	next, err := layout.Resolve(template.MustLookup(template.Classic), seq, layout.Move{
		From: layout.RegionRef{Region: template.RegionHeader, Index: 0},
		To:   layout.RegionRef{Region: template.RegionMain, Index: 1},
	})
	fmt.Println(titles(next))
	fmt.Println(err)
	// Output:
	// [Jane Doe Skills]
	// INVALID_MOVE: region "header" is fixed
}

func ExampleBuildView() {
	seq := []section.Section{
		{ID: "1", Type: section.TypeName, Title: "Jane Doe"},
		{ID: "2", Type: section.TypeContact, Title: "Contact"},
		{ID: "3", Type: section.TypeLanguage, Title: "Language"},
		{ID: "4", Type: section.TypeProjects, Title: "Projects"},
	}

	v := layout.BuildView(template.MustLookup(template.ProfileTwoColumn), seq)
	fmt.Println("header", titles(v.Header))
	for _, r := range v.Regions {
		fmt.Println(r.ID, titles(r.Sections))
	}
	// Output:
	// header [Jane Doe Contact]
	// left [Language]
	// right [Projects]
}
