// Package pkg provides the core libraries for resumake, a template-driven
// resume builder.
//
// # Overview
//
// A resume is an ordered list of typed sections (name, contact, skills,
// experience, ...). A template decides which sections appear in which page
// region and which regions the user may rearrange. The pkg directory is
// organized into four main areas:
//
//  1. Domain - [section], [template] and [layout]: the section store, the
//     region policy table, classification and move resolution
//  2. State - [editor] and [io]: the mutable application state and its
//     JSON/TOML document format
//  3. Output - [render], [pipeline] and [photo]: SVG/PDF/PNG/JSON export
//  4. Infrastructure - [cache], [httputil], [observability], [errors]
//
// # Architecture
//
// The typical data flow through resumake:
//
//	Document (JSON/TOML)
//	         ↓
//	    [editor] (add, update, remove, select, move, settings)
//	         ↓
//	    [layout] (classify the sequence into template regions)
//	         ↓
//	    [pipeline] (cache lookup, photo fetch, render)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Build a two-column resume and move a section between columns:
//
//	e := editor.New()
//	e.SetTemplate(ctx, template.TwoColumn)
//	e.Add(ctx, section.TypeName)
//	e.Add(ctx, section.TypeContact)
//	e.Add(ctx, section.TypeSummary)
//
//	res, _ := e.Move(ctx, layout.Move{
//	    From: layout.RegionRef{Region: template.RegionLeft, Index: 0},
//	    To:   layout.RegionRef{Region: template.RegionRight, Index: 1},
//	})
//	if !res.Applied {
//	    fmt.Println("not moved:", res.Reason)
//	}
//
// Export it:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), cache.NewDefaultKeyer(), logger)
//	result, _ := runner.Render(ctx, e.Document(), pipeline.Options{Formats: []string{"svg"}})
//	os.WriteFile("resume.svg", result.Artifacts["svg"], 0o644)
//
// # Main Packages
//
// [section] - Section types, the palette of defaults and the [section.Store]
// holding the canonical sequence. Ids are unique and stable; the store is the
// only owner of order.
//
// [template] - The template/region policy table. Each template lists its
// regions in page order, the section types each region accepts and whether
// the region is draggable.
//
// [layout] - [layout.Classify] splits the sequence into region lists,
// [layout.Resolve] turns a drag-and-drop move into a new canonical sequence
// and [layout.BuildView] produces the rendering boundary.
//
// [editor] - The application state aggregate. Every front end mutates state
// through it, one event at a time.
//
// [pipeline] - Export orchestration used by the CLI and the HTTP API:
// hash the document, look up cached artifacts, render what is missing.
//
// [cache] - Artifact caches: file (CLI), Redis (shared) and null.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example                 # Examples only
//
// [section]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/section
// [template]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/template
// [layout]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/layout
// [editor]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/editor
// [io]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/pipeline
// [photo]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/photo
// [cache]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/resumake/pkg/errors
package pkg
