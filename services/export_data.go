package services

import (
	"fmt"
	"strings"

	"quotebuilder/quote"
)

// ExportRow represents a single row in the pricing sheet export.
type ExportRow struct {
	Level        int    // 0 = package, 1 = price group, 2 = line item, 3 = alternate
	Index        string // "1", "1.1", "1.1.1" etc
	Description  string
	Qty          int
	Manufacturer string
	Model        string
	Tag          string
	Category     string
	IsNote       bool
	PrimaryIndex string // index of the primary row a supporting line belongs to
	MfgNet       float64
	Freight      float64
	TotalNet     float64
	MU           float64
	BidPrice     float64
	Comm         float64
}

// ExportData holds all data needed for export.
type ExportData struct {
	Title         string
	QuoteNumber   string
	Location      string
	CreatedDate   string
	Rows          []ExportRow
	Totals        Totals
	MarginPercent float64
}

// BuildExportData flattens a quote into indexed pricing rows. Package and
// group rows carry their subtotals; alternate rows carry their signed bid and
// are never part of any subtotal. Supporting rows are indented under their
// primary and name its index when the primary sits in another price group.
func BuildExportData(q quote.Quote, createdDate string) ExportData {
	data := ExportData{
		Title:       q.ProjectName,
		QuoteNumber: q.QuoteNumber,
		Location:    q.Location,
		CreatedDate: createdDate,
	}
	if data.Title == "" {
		data.Title = "Quote"
	}

	primaries := primaryIndexes(q)

	for pi, p := range q.Packages {
		pt := PackageTotals(p)
		data.Rows = append(data.Rows, ExportRow{
			Level:       0,
			Index:       fmt.Sprintf("%d", pi+1),
			Description: p.Name,
			MfgNet:      pt.MfgNet,
			Freight:     pt.Freight,
			TotalNet:    pt.TotalNet,
			BidPrice:    pt.BidPrice,
			Comm:        pt.Comm,
		})

		for gi, pg := range p.PriceGroups {
			gt := GroupTotals(pg)
			groupIndex := fmt.Sprintf("%d.%d", pi+1, gi+1)
			data.Rows = append(data.Rows, ExportRow{
				Level:       1,
				Index:       groupIndex,
				Description: pg.Name,
				MfgNet:      gt.MfgNet,
				Freight:     gt.Freight,
				TotalNet:    gt.TotalNet,
				BidPrice:    gt.BidPrice,
				Comm:        gt.Comm,
			})

			for li, l := range pg.LineItems {
				r := lineRow(l, fmt.Sprintf("%s.%d", groupIndex, li+1))
				if key := l.GroupKey(); !l.IsNote && key != l.ID {
					r.PrimaryIndex = primaries[key]
					r.Description = "  " + r.Description
					if r.PrimaryIndex != "" && !strings.HasPrefix(r.PrimaryIndex, groupIndex+".") {
						r.Description += " (for " + r.PrimaryIndex + ")"
					}
				}
				data.Rows = append(data.Rows, r)
			}

			for ai, ad := range pg.AddDeducts {
				desc := strings.TrimSpace(ad.Description)
				if desc == "" {
					desc = "(no description)"
				}
				at := AddDeductTotals(ad)
				data.Rows = append(data.Rows, ExportRow{
					Level:       3,
					Index:       fmt.Sprintf("%s.A%d", groupIndex, ai+1),
					Description: string(ad.Type) + ": " + desc,
					MfgNet:      at.MfgNet,
					Freight:     at.Freight,
					TotalNet:    at.TotalNet,
					BidPrice:    SignedAlternate(ad),
					Comm:        at.Comm,
				})
			}
		}
	}

	data.Totals = QuoteTotals(q)
	data.MarginPercent = data.Totals.MarginPercent()
	return data
}

// primaryIndexes maps every primary line id to its row index.
func primaryIndexes(q quote.Quote) map[string]string {
	idx := make(map[string]string)
	for pi, p := range q.Packages {
		for gi, pg := range p.PriceGroups {
			for li, l := range pg.LineItems {
				if l.IsPrimary() {
					idx[l.ID] = fmt.Sprintf("%d.%d.%d", pi+1, gi+1, li+1)
				}
			}
		}
	}
	return idx
}

func lineRow(l quote.LineItem, index string) ExportRow {
	if l.IsNote {
		return ExportRow{Level: 2, Index: index, Description: "NOTE: " + l.NoteText, IsNote: true}
	}
	c := Calc(l)
	return ExportRow{
		Level:        2,
		Index:        index,
		Description:  l.Equipment,
		Qty:          l.Qty,
		Manufacturer: l.Manufacturer,
		Model:        l.Model,
		Tag:          l.Tag,
		Category:     l.Category,
		MfgNet:       c.MfgNet,
		Freight:      l.Freight,
		TotalNet:     c.TotalNet,
		MU:           l.MU,
		BidPrice:     c.BidPrice,
		Comm:         c.Comm,
	}
}
