package layout

import (
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// RegionList is the ordered content of one region.
type RegionList struct {
	Region   template.Region
	Sections []section.Section
}

// Classification is the result of partitioning a sequence under a policy.
type Classification struct {
	// Regions holds one list per policy region, in policy order. Regions
	// with no sections are present with an empty list.
	Regions []RegionList

	// Excluded holds sections whose type no region accepts, in sequence
	// order.
	Excluded []section.Section
}

// Region returns the sections of the region with the given id.
func (c Classification) Region(id template.RegionID) ([]section.Section, bool) {
	for _, rl := range c.Regions {
		if rl.Region.ID == id {
			return rl.Sections, true
		}
	}
	return nil, false
}

// Len returns the number of classified sections, excluded ones included.
func (c Classification) Len() int {
	n := len(c.Excluded)
	for _, rl := range c.Regions {
		n += len(rl.Sections)
	}
	return n
}

// Classify partitions seq into the regions of p, preserving relative order
// within each region. seq is not modified.
func Classify(p template.Policy, seq []section.Section) Classification {
	c := Classification{Regions: make([]RegionList, len(p.Regions))}
	for i, r := range p.Regions {
		c.Regions[i] = RegionList{Region: r, Sections: []section.Section{}}
	}

	for _, sec := range seq {
		placed := false
		for i := range c.Regions {
			if c.Regions[i].Region.Accepts(sec.Type) {
				c.Regions[i].Sections = append(c.Regions[i].Sections, sec)
				placed = true
				break
			}
		}
		if !placed {
			c.Excluded = append(c.Excluded, sec)
		}
	}
	return c
}
