package quote

import "strings"

// Position places a moved price group relative to an anchor group.
type Position string

const (
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
	PositionEnd    Position = "end"
)

// AddGroup appends an empty price group to a package.
func AddGroup(q Quote, pkgID string) Quote {
	pi, ok := findPackage(q, pkgID)
	if !ok {
		return q
	}
	out := q.Clone()
	out.Packages[pi].PriceGroups = append(out.Packages[pi].PriceGroups, NewGroup())
	return out
}

// RenameGroup sets a user-chosen group name and locks it against
// auto-naming. A blank name unlocks the group and restores the derived name.
func RenameGroup(q Quote, groupID, name string) Quote {
	loc, ok := findGroup(q, groupID)
	if !ok {
		return q
	}
	out := q.Clone()
	pg := out.group(loc)
	if strings.TrimSpace(name) == "" {
		pg.NameLocked = false
		relabel(pg)
		return out
	}
	pg.Name = name
	pg.NameLocked = true
	return out
}

// DeleteGroup removes a price group together with its line items and
// alternates.
func DeleteGroup(q Quote, groupID string) Quote {
	loc, ok := findGroup(q, groupID)
	if !ok {
		return q
	}
	out := q.Clone()
	p := &out.Packages[loc.pkg]
	p.PriceGroups, _ = removeAt(p.PriceGroups, loc.group)
	detachDangling(&out)
	return out
}

// MoveGroup moves a price group one slot up (dir < 0) or down (dir > 0)
// inside its package. At a package boundary the group is appended to the end
// of the previous package, or prepended to the next one.
func MoveGroup(q Quote, groupID string, dir int) Quote {
	loc, ok := findGroup(q, groupID)
	if !ok || dir == 0 {
		return q
	}
	n := len(q.Packages[loc.pkg].PriceGroups)

	switch {
	case dir < 0 && loc.group > 0:
		out := q.Clone()
		groups := out.Packages[loc.pkg].PriceGroups
		groups[loc.group-1], groups[loc.group] = groups[loc.group], groups[loc.group-1]
		return out
	case dir > 0 && loc.group < n-1:
		out := q.Clone()
		groups := out.Packages[loc.pkg].PriceGroups
		groups[loc.group], groups[loc.group+1] = groups[loc.group+1], groups[loc.group]
		return out
	case dir < 0 && loc.pkg > 0:
		out := q.Clone()
		src := &out.Packages[loc.pkg]
		var moved PriceGroup
		src.PriceGroups, moved = removeAt(src.PriceGroups, loc.group)
		dst := &out.Packages[loc.pkg-1]
		dst.PriceGroups = append(dst.PriceGroups, moved)
		return out
	case dir > 0 && loc.pkg < len(q.Packages)-1:
		out := q.Clone()
		src := &out.Packages[loc.pkg]
		var moved PriceGroup
		src.PriceGroups, moved = removeAt(src.PriceGroups, loc.group)
		dst := &out.Packages[loc.pkg+1]
		dst.PriceGroups = insertAt(dst.PriceGroups, 0, moved)
		return out
	}
	return q
}

// MoveGroupTo moves a price group into a package, before or after an anchor
// group of that package, or to its end. An anchor that is not in the
// destination package means the end.
func MoveGroupTo(q Quote, groupID, pkgID, anchorID string, pos Position) Quote {
	src, ok := findGroup(q, groupID)
	if !ok {
		return q
	}
	dstPkg, ok := findPackage(q, pkgID)
	if !ok {
		return q
	}

	dstGroups := q.Packages[dstPkg].PriceGroups
	index := len(dstGroups)
	if pos != PositionEnd && anchorID != "" {
		for i, pg := range dstGroups {
			if pg.ID != anchorID {
				continue
			}
			index = i
			if pos == PositionAfter {
				index = i + 1
			}
			break
		}
	}
	if src.pkg == dstPkg && src.group < index {
		index--
	}

	out := q.Clone()
	from := &out.Packages[src.pkg]
	var moved PriceGroup
	from.PriceGroups, moved = removeAt(from.PriceGroups, src.group)
	to := &out.Packages[dstPkg]
	index = clamp(index, 0, len(to.PriceGroups))
	to.PriceGroups = insertAt(to.PriceGroups, index, moved)
	return out
}
