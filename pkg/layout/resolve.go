package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// RegionRef addresses a position within a region's current list.
type RegionRef struct {
	Region template.RegionID `json:"region"`
	Index  int               `json:"index"`
}

// String formats r as "region:index".
func (r RegionRef) String() string {
	return fmt.Sprintf("%s:%d", r.Region, r.Index)
}

// ParseRegionRef parses "region:index", the form used on the command line.
func ParseRegionRef(s string) (RegionRef, error) {
	region, idx, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || region == "" {
		return RegionRef{}, errors.New(errors.ErrCodeInvalidInput, "invalid position %q (want region:index)", s)
	}
	n, err := strconv.Atoi(idx)
	if err != nil {
		return RegionRef{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid index in %q", s)
	}
	return RegionRef{Region: template.RegionID(strings.ToLower(region)), Index: n}, nil
}

// Move describes one drag-and-drop outcome.
type Move struct {
	From RegionRef `json:"from"`
	To   RegionRef `json:"to"`
}

// String formats m as "from -> to".
func (m Move) String() string {
	return m.From.String() + " -> " + m.To.String()
}

// SameRegion reports whether the move stays within one region.
func (m Move) SameRegion() bool { return m.From.Region == m.To.Region }

// Noop reports whether the move drops a section back where it was picked up.
func (m Move) Noop() bool { return m.From == m.To }

// Resolve computes the canonical sequence that results from applying m to
// seq under policy p. It has no side effects.
//
// When m names an unknown or fixed region, or an index outside its list,
// Resolve returns seq itself and an INVALID_MOVE error. Callers are expected
// to log that error and carry on; drag gestures produce such moves all the
// time.
//
// Valid indices are 0 <= From.Index < len(source). For a same-region move
// the destination is an index into the list after removal, so
// 0 <= To.Index <= len(source)-1. For a cross-region move
// 0 <= To.Index <= len(destination), where len(destination) appends.
//
// A move that drops a section back where it was picked up returns seq
// unchanged with no error.
func Resolve(p template.Policy, seq []section.Section, m Move) ([]section.Section, error) {
	c := Classify(p, seq)

	src, err := draggableList(c, m.From.Region)
	if err != nil {
		return seq, err
	}
	dst, err := draggableList(c, m.To.Region)
	if err != nil {
		return seq, err
	}

	if m.From.Index < 0 || m.From.Index >= len(src.Sections) {
		return seq, invalidMove(m, "source index %d out of range [0,%d)", m.From.Index, len(src.Sections))
	}
	maxTo := len(dst.Sections)
	if m.SameRegion() {
		maxTo--
	}
	if m.To.Index < 0 || m.To.Index > maxTo {
		return seq, invalidMove(m, "destination index %d out of range [0,%d]", m.To.Index, maxTo)
	}

	if m.Noop() {
		return seq, nil
	}

	moved := src.Sections[m.From.Index]
	src.Sections = remove(src.Sections, m.From.Index)
	dst.Sections = insert(dst.Sections, m.To.Index, moved)

	return reassemble(seq, c), nil
}

// draggableList returns a pointer into c.Regions so edits to the list are
// seen by reassemble.
func draggableList(c Classification, id template.RegionID) (*RegionList, error) {
	for i := range c.Regions {
		rl := &c.Regions[i]
		if rl.Region.ID != id {
			continue
		}
		if !rl.Region.Draggable {
			return nil, errors.New(errors.ErrCodeInvalidMove, "region %q is fixed", id)
		}
		return rl, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidMove, "unknown region %q", id)
}

func invalidMove(m Move, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidMove, "move %s: %s", m, fmt.Sprintf(format, args...))
}

// remove returns a new slice without the element at i.
func remove(s []section.Section, i int) []section.Section {
	out := make([]section.Section, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// insert returns a new slice with v placed before the element at i, or
// appended when i == len(s).
func insert(s []section.Section, i int, v section.Section) []section.Section {
	out := make([]section.Section, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}

// reassemble concatenates the region lists of c in policy order and puts
// excluded sections back at the absolute positions they held in seq.
func reassemble(seq []section.Section, c Classification) []section.Section {
	var flat []section.Section
	for _, rl := range c.Regions {
		flat = append(flat, rl.Sections...)
	}
	if len(c.Excluded) == 0 {
		return flat
	}

	excluded := make(map[string]bool, len(c.Excluded))
	for _, s := range c.Excluded {
		excluded[s.ID] = true
	}
	out := make([]section.Section, 0, len(seq))
	next := 0
	for _, s := range seq {
		if excluded[s.ID] {
			out = append(out, s)
			continue
		}
		out = append(out, flat[next])
		next++
	}
	return out
}
