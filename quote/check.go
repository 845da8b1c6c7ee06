package quote

import (
	"errors"
	"fmt"
)

// Check reports structural problems in a tree: empty or duplicated ids,
// primary lines carrying a reference, references that do not resolve to a
// primary line, and notes or primaries inside alternates. It returns nil for a
// well-formed tree.
func Check(q Quote) error {
	var errs []error
	seen := make(map[string]string)
	see := func(kind, id string) {
		if id == "" {
			errs = append(errs, fmt.Errorf("%s with empty id", kind))
			return
		}
		if prev, ok := seen[id]; ok {
			errs = append(errs, fmt.Errorf("duplicate id %q (%s and %s)", id, prev, kind))
			return
		}
		seen[id] = kind
	}

	primaries := make(map[string]bool)
	for _, l := range q.Lines() {
		if l.IsPrimary() {
			primaries[l.ID] = true
		}
	}

	for _, p := range q.Packages {
		see("package", p.ID)
		for _, pg := range p.PriceGroups {
			see("price group", pg.ID)
			for _, l := range pg.LineItems {
				see("line", l.ID)
				switch {
				case l.IsPrimary() && l.PrimaryID != "":
					errs = append(errs, fmt.Errorf("primary line %q references %q", l.ID, l.PrimaryID))
				case l.PrimaryID != "" && !primaries[l.PrimaryID]:
					errs = append(errs, fmt.Errorf("line %q references missing primary %q", l.ID, l.PrimaryID))
				}
			}
			for _, ad := range pg.AddDeducts {
				see("add/deduct", ad.ID)
				if ad.Type != AlternateAdd && ad.Type != AlternateDeduct {
					errs = append(errs, fmt.Errorf("add/deduct %q has type %q", ad.ID, ad.Type))
				}
				for _, l := range ad.LineItems {
					see("add/deduct line", l.ID)
					if l.IsNote || l.Role != RoleSupporting {
						errs = append(errs, fmt.Errorf("add/deduct line %q must be a supporting line", l.ID))
					}
				}
			}
		}
	}
	return errors.Join(errs...)
}
