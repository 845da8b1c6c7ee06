package quote

// groupLoc addresses a price group by package and group index.
type groupLoc struct {
	pkg, group int
}

// lineLoc addresses a price-group line item.
type lineLoc struct {
	groupLoc
	line int
}

func findPackage(q Quote, pkgID string) (int, bool) {
	if pkgID == "" {
		return -1, false
	}
	for i, p := range q.Packages {
		if p.ID == pkgID {
			return i, true
		}
	}
	return -1, false
}

func findGroup(q Quote, groupID string) (groupLoc, bool) {
	if groupID == "" {
		return groupLoc{}, false
	}
	for pi, p := range q.Packages {
		for gi, pg := range p.PriceGroups {
			if pg.ID == groupID {
				return groupLoc{pkg: pi, group: gi}, true
			}
		}
	}
	return groupLoc{}, false
}

func findLine(q Quote, lineID string) (lineLoc, bool) {
	if lineID == "" {
		return lineLoc{}, false
	}
	for pi, p := range q.Packages {
		for gi, pg := range p.PriceGroups {
			for li, l := range pg.LineItems {
				if l.ID == lineID {
					return lineLoc{groupLoc: groupLoc{pkg: pi, group: gi}, line: li}, true
				}
			}
		}
	}
	return lineLoc{}, false
}

// HasGroup reports whether a price group with the given id exists.
func (q Quote) HasGroup(groupID string) bool {
	_, ok := findGroup(q, groupID)
	return ok
}

// groupOrder flattens every price group into document order.
func groupOrder(q Quote) []groupLoc {
	var order []groupLoc
	for pi, p := range q.Packages {
		for gi := range p.PriceGroups {
			order = append(order, groupLoc{pkg: pi, group: gi})
		}
	}
	return order
}

func (q *Quote) group(loc groupLoc) *PriceGroup {
	return &q.Packages[loc.pkg].PriceGroups[loc.group]
}

// precedingPrimary scans backward from index idx (exclusive) and returns the
// id of the nearest primary, non-note line, or "" when there is none.
func precedingPrimary(lines []LineItem, idx int) string {
	if idx > len(lines) {
		idx = len(lines)
	}
	for i := idx - 1; i >= 0; i-- {
		if lines[i].IsPrimary() {
			return lines[i].ID
		}
	}
	return ""
}

// attach points a supporting line or note at the primary preceding idx.
// Primary lines are left untouched.
func attach(l *LineItem, lines []LineItem, idx int) {
	if l.IsPrimary() {
		l.PrimaryID = ""
		return
	}
	l.PrimaryID = precedingPrimary(lines, idx)
}

// detachDangling clears references that no longer resolve to a primary line
// anywhere in the quote.
func detachDangling(q *Quote) {
	primaries := make(map[string]bool)
	for _, l := range q.Lines() {
		if l.IsPrimary() {
			primaries[l.ID] = true
		}
	}
	for pi := range q.Packages {
		for gi := range q.Packages[pi].PriceGroups {
			lines := q.Packages[pi].PriceGroups[gi].LineItems
			for li := range lines {
				if lines[li].IsPrimary() {
					lines[li].PrimaryID = ""
					continue
				}
				if lines[li].PrimaryID != "" && !primaries[lines[li].PrimaryID] {
					lines[li].PrimaryID = ""
				}
			}
		}
	}
}

func insertAt[T any](s []T, idx int, v T) []T {
	s = append(s, v)
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}

func removeAt[T any](s []T, idx int) ([]T, T) {
	v := s[idx]
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:idx]...)
	out = append(out, s[idx+1:]...)
	return out, v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
