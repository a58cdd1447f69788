// Package io reads and writes resume documents as JSON or TOML.
//
// # Overview
//
// A [Document] is the working file of the command-line front end: the
// ordered sections plus every presentation setting (template, theme, text
// styles, left column colors, photo reference) and the current selection.
// It is not a persistence layer; the file is whatever the user points the
// CLI at.
//
// # JSON Format
//
//	{
//	  "template": "two-column",
//	  "theme": "blue",
//	  "styles": {"fontSize": "14px", "fontFamily": "Inter, Arial, sans-serif", "color": "#111827"},
//	  "leftColumn": {"background": "#f3f4f6", "text": "#111827"},
//	  "photo": "me.jpg",
//	  "sections": [
//	    {"id": "1", "type": "name", "title": "Full Name", "content": "Jane Doe"},
//	    {"id": "2", "type": "experience", "title": "Experience",
//	     "jobs": [{"role": "Backend Developer", "company": "Netflix", "date": "2023-01"}]}
//	  ]
//	}
//
// # TOML Format
//
// The same fields with snake_case keys; sections are an array of tables:
//
//	template = "classic"
//
//	[[sections]]
//	id = "1"
//	type = "name"
//	title = "Full Name"
//	content = "Jane Doe"
//
// # Import
//
// [Import] picks the format from the file extension. Decoded documents are
// normalized: missing settings get defaults, section types are matched
// case-insensitively, missing section ids are assigned, and duplicate ids,
// unknown types or unknown templates are rejected.
//
//	doc, err := io.Import("resume.toml")
//
// # Export
//
// [Export] writes a document in the format given by the file extension.
// Round-tripping through either format preserves every field.
package io
