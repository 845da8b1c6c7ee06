package quote

import "slices"

// UpdateHeader replaces the project metadata.
func UpdateHeader(q Quote, h Header) Quote {
	out := q.Clone()
	out.Header = h
	return out
}

// AddPackage appends an empty package.
func AddPackage(q Quote) Quote {
	out := q.Clone()
	out.Packages = append(out.Packages, NewPackage())
	return out
}

// UpdatePackage renames a package and sets its type. An empty name keeps the
// current one; a type outside PackageTypes keeps the current type.
func UpdatePackage(q Quote, pkgID, name, typ string) Quote {
	pi, ok := findPackage(q, pkgID)
	if !ok {
		return q
	}
	out := q.Clone()
	p := &out.Packages[pi]
	if name != "" {
		p.Name = name
	}
	if slices.Contains(PackageTypes, typ) {
		p.Type = typ
	}
	return out
}

// MovePackage swaps a package with its neighbour. Moving past either end is a
// no-op.
func MovePackage(q Quote, pkgID string, dir int) Quote {
	pi, ok := findPackage(q, pkgID)
	if !ok || dir == 0 {
		return q
	}
	next := pi + 1
	if dir < 0 {
		next = pi - 1
	}
	if next < 0 || next >= len(q.Packages) {
		return q
	}
	out := q.Clone()
	out.Packages[pi], out.Packages[next] = out.Packages[next], out.Packages[pi]
	return out
}

// DeletePackages removes packages by id without losing their price groups.
// Orphaned groups are appended to the first surviving package, or to a new
// "Unassigned" package when no package survives.
func DeletePackages(q Quote, ids ...string) Quote {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	if !slices.ContainsFunc(q.Packages, func(p Package) bool { return drop[p.ID] }) {
		return q
	}

	out := q.Clone()
	kept := make([]Package, 0, len(out.Packages))
	var orphans []PriceGroup
	for _, p := range out.Packages {
		if drop[p.ID] {
			orphans = append(orphans, p.PriceGroups...)
			continue
		}
		kept = append(kept, p)
	}
	out.Packages = kept

	switch {
	case len(orphans) == 0:
	case len(kept) == 0:
		out.Packages = []Package{{
			ID:          NewID(),
			Name:        UnassignedPackage,
			Type:        "Custom",
			PriceGroups: orphans,
		}}
	default:
		out.Packages[0].PriceGroups = append(out.Packages[0].PriceGroups, orphans...)
	}
	return out
}
