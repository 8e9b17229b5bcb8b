package schema

// region is a half-open byte span [Start, End) of text governed by one
// declared section.
type region struct {
	section *Section
	start   int
	end     int
}

// detectRegions walks text top-to-bottom opening a region at each
// section's earliest start marker and closing it at the earliest of its
// own end markers, the next section's start, or the document end (§4.5
// step 1). Overlapping regions are
// resolved by regionFor, which picks the tightest (shortest) enclosing
// region for a given offset rather than here.
func detectRegions(text string, sections []Section) []region {
	type open struct {
		section *Section
		start   int
	}
	var opens []open
	for i := range sections {
		s := &sections[i]
		earliest := -1
		for _, marker := range s.StartMarkers {
			loc := marker.FindStringIndex(text)
			if loc == nil {
				continue
			}
			if earliest == -1 || loc[1] < earliest {
				earliest = loc[1]
			}
		}
		if earliest >= 0 {
			opens = append(opens, open{section: s, start: earliest})
		}
	}

	regions := make([]region, 0, len(opens))
	for i, o := range opens {
		end := len(text)
		for _, marker := range o.section.EndMarkers {
			loc := marker.FindStringIndex(text[o.start:])
			if loc == nil {
				continue
			}
			candidate := o.start + loc[0]
			if candidate < end {
				end = candidate
			}
		}
		for j, other := range opens {
			if j == i {
				continue
			}
			if other.start > o.start && other.start < end {
				end = other.start
			}
		}
		regions = append(regions, region{section: o.section, start: o.start, end: end})
	}
	return regions
}

// regionFor returns the tightest region covering offset, or nil if no
// declared section covers it (§4.5 step 1, "tightest enclosing region").
func regionFor(regions []region, offset int) *region {
	var best *region
	for i := range regions {
		r := &regions[i]
		if offset >= r.start && offset < r.end {
			if best == nil || (r.end-r.start) < (best.end-best.start) {
				best = r
			}
		}
	}
	return best
}

// fieldDeclaredInSection reports whether fieldName is restricted to sec
// (i.e. sec.FieldsInSection is non-empty and lists it, or is empty,
// meaning the section imposes no restriction).
func fieldDeclaredInSection(sec *Section, fieldName string) bool {
	if sec == nil || len(sec.FieldsInSection) == 0 {
		return true
	}
	for _, n := range sec.FieldsInSection {
		if n == fieldName {
			return true
		}
	}
	return false
}
