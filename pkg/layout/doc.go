// Package layout partitions a section sequence into template regions and
// resolves drag-and-drop moves back into a canonical order.
//
// # Classification
//
// [Classify] runs one stable filter pass per region of a [template.Policy]:
// each region receives, in sequence order, the sections whose type it
// accepts. Sections no region accepts are reported as excluded. They stay
// in the canonical sequence and reappear when a template that accepts them
// is selected. Classification never mutates its input.
//
// # Moves
//
// A [Move] names a source and a destination by region id and region-local
// index. [Resolve] translates it into a new canonical sequence:
//
//  1. Classify the sequence under the policy.
//  2. Reject unknown or fixed regions and out-of-range indices. The input
//     is returned unchanged together with an INVALID_MOVE error that is
//     meant for diagnostics only.
//  3. Same region: remove at the source index, then insert at the
//     destination index of the shortened list.
//  4. Cross region: remove from the source list, insert into the
//     destination list. The section's type is never changed, so a section
//     moved into a region that does not accept its type classifies back to
//     its own region on the next pass.
//  5. Concatenate the region lists in policy order. Excluded sections keep
//     their absolute positions in the sequence.
//
// Resolve is pure. Committing the result is the caller's job (see
// [section.Store.ReplaceOrder]).
//
//	p := template.MustLookup(template.TwoColumn)
//	next, err := layout.Resolve(p, seq, layout.Move{
//	    From: layout.RegionRef{Region: template.RegionLeft, Index: 1},
//	    To:   layout.RegionRef{Region: template.RegionRight, Index: 0},
//	})
//
// # Views
//
// [BuildView] produces the rendering boundary: the fixed header sections and
// the draggable regions in policy order, ready for an export sink.
package layout
