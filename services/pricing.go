// Package services provides pricing, formatting and export functions for
// quotes.
package services

import "quotebuilder/quote"

// LineCalc holds the figures derived from one line item.
type LineCalc struct {
	MfgNet   float64 `json:"mfgNet"`
	MfgComm  float64 `json:"mfgComm"`
	TotalNet float64 `json:"totalNet"`
	BidPrice float64 `json:"bidPrice"`
	Comm     float64 `json:"comm"`
}

// Calc prices a single line. Notes always price at zero. No rounding is
// applied; inputs are not validated.
func Calc(l quote.LineItem) LineCalc {
	if l.IsNote {
		return LineCalc{}
	}
	mfgNet := l.List * (1 + l.DollarUp/100) * l.Multi
	totalNet := mfgNet + l.Freight
	bid := totalNet * l.MU
	return LineCalc{
		MfgNet:   mfgNet,
		MfgComm:  mfgNet * (l.Pay / 100),
		TotalNet: totalNet,
		BidPrice: bid,
		Comm:     bid - totalNet,
	}
}

// Totals is the field-wise sum of LineCalc over a set of lines, plus the raw
// freight of every non-note line.
type Totals struct {
	MfgNet   float64 `json:"mfgNet"`
	MfgComm  float64 `json:"mfgComm"`
	TotalNet float64 `json:"totalNet"`
	BidPrice float64 `json:"bidPrice"`
	Comm     float64 `json:"comm"`
	Freight  float64 `json:"freight"`
}

// Add returns the field-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		MfgNet:   t.MfgNet + o.MfgNet,
		MfgComm:  t.MfgComm + o.MfgComm,
		TotalNet: t.TotalNet + o.TotalNet,
		BidPrice: t.BidPrice + o.BidPrice,
		Comm:     t.Comm + o.Comm,
		Freight:  t.Freight + o.Freight,
	}
}

// MarginPercent returns Comm/BidPrice as a ratio, or 0 when nothing is bid.
func (t Totals) MarginPercent() float64 {
	if t.BidPrice == 0 {
		return 0
	}
	return t.Comm / t.BidPrice
}

// SumLines aggregates the given lines.
func SumLines(lines []quote.LineItem) Totals {
	var t Totals
	for _, l := range lines {
		c := Calc(l)
		t.MfgNet += c.MfgNet
		t.MfgComm += c.MfgComm
		t.TotalNet += c.TotalNet
		t.BidPrice += c.BidPrice
		t.Comm += c.Comm
		if !l.IsNote {
			t.Freight += l.Freight
		}
	}
	return t
}

// GroupTotals aggregates a price group's own lines. Alternates are excluded.
func GroupTotals(pg quote.PriceGroup) Totals {
	return SumLines(pg.LineItems)
}

// PackageTotals aggregates every price-group line in a package.
func PackageTotals(p quote.Package) Totals {
	return SumLines(p.Lines())
}

// QuoteTotals aggregates every price-group line in the quote.
func QuoteTotals(q quote.Quote) Totals {
	return SumLines(q.Lines())
}

// AddDeductTotals aggregates an alternate's lines without applying its sign.
func AddDeductTotals(ad quote.AddDeduct) Totals {
	return SumLines(ad.LineItems)
}

// SignedAlternate returns an alternate's bid price, negated for deducts.
func SignedAlternate(ad quote.AddDeduct) float64 {
	bid := AddDeductTotals(ad).BidPrice
	if ad.Type == quote.AlternateDeduct {
		return -bid
	}
	return bid
}

// GroupSummary is the per-group view of a quote's totals.
type GroupSummary struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Totals     Totals             `json:"totals"`
	Alternates map[string]float64 `json:"alternates,omitempty"`
}

// PackageSummary is the per-package view of a quote's totals.
type PackageSummary struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Totals Totals         `json:"totals"`
	Groups []GroupSummary `json:"groups"`
}

// Summary holds totals for every level of a quote. It is recomputed from the
// tree on every call.
type Summary struct {
	Totals        Totals           `json:"totals"`
	MarginPercent float64          `json:"marginPercent"`
	Packages      []PackageSummary `json:"packages"`
}

// Summarize computes totals for the whole quote, each package and each group.
func Summarize(q quote.Quote) Summary {
	s := Summary{Packages: make([]PackageSummary, 0, len(q.Packages))}
	for _, p := range q.Packages {
		ps := PackageSummary{ID: p.ID, Name: p.Name, Groups: make([]GroupSummary, 0, len(p.PriceGroups))}
		for _, pg := range p.PriceGroups {
			gs := GroupSummary{ID: pg.ID, Name: pg.Name, Totals: GroupTotals(pg)}
			for _, ad := range pg.AddDeducts {
				if gs.Alternates == nil {
					gs.Alternates = make(map[string]float64, len(pg.AddDeducts))
				}
				gs.Alternates[ad.ID] = SignedAlternate(ad)
			}
			ps.Totals = ps.Totals.Add(gs.Totals)
			ps.Groups = append(ps.Groups, gs)
		}
		s.Totals = s.Totals.Add(ps.Totals)
		s.Packages = append(s.Packages, ps)
	}
	s.MarginPercent = s.Totals.MarginPercent()
	return s
}
