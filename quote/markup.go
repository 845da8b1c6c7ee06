package quote

import "math"

// validMarkup rejects markups that would make margin figures meaningless.
func validMarkup(mu float64) bool {
	return mu > 0 && !math.IsInf(mu, 0) && !math.IsNaN(mu)
}

// ApplyMarkup overwrites the markup of every line in a scope. The scope id
// names either a package (all of its price groups) or a single price group.
// Non-positive markups are rejected.
func ApplyMarkup(q Quote, scopeID string, mu float64) Quote {
	if !validMarkup(mu) {
		return q
	}
	if pi, ok := findPackage(q, scopeID); ok {
		out := q.Clone()
		for gi := range out.Packages[pi].PriceGroups {
			setMarkup(out.Packages[pi].PriceGroups[gi].LineItems, mu)
		}
		return out
	}
	if loc, ok := findGroup(q, scopeID); ok {
		out := q.Clone()
		setMarkup(out.group(loc).LineItems, mu)
		return out
	}
	return q
}

// ApplyMarkupAll overwrites the markup of every price-group line in the quote.
func ApplyMarkupAll(q Quote, mu float64) Quote {
	if !validMarkup(mu) {
		return q
	}
	for _, p := range q.Packages {
		q = ApplyMarkup(q, p.ID, mu)
	}
	return q
}

func setMarkup(lines []LineItem, mu float64) {
	for i := range lines {
		lines[i].MU = mu
	}
}
