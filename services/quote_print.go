package services

import (
	"regexp"
	"strings"

	"quotebuilder/quote"
)

// GroupTotalLabel is printed beside every price group's bid on a quotation.
const GroupTotalLabel = "TOTAL NET PRICE, STANDARD BUILD, FREIGHT ALLOWED"

// Disclaimer is printed at the bottom of every quotation page.
const Disclaimer = "Sales and use taxes NOT included. Goods will conform to APPROVED/REVIEWED submittals. Quotes are valid for 30 days."

var bulletSplit = regexp.MustCompile(`\n|\s*\|\s*`)

// PrintItem is one entry listed under a price group on a quotation: either a
// primary equipment line or a block of notes.
type PrintItem struct {
	IsNote  bool
	Qty     int
	Title   string
	Tag     string
	Bullets []string
}

// PrintAlternate is an add/deduct line shown beneath a group total.
type PrintAlternate struct {
	Description string
	Amount      string
}

// PrintGroup is a price group as shown on a quotation.
type PrintGroup struct {
	Name       string
	Items      []PrintItem
	Total      string
	Alternates []PrintAlternate
}

// PrintPage is one package rendered as one quotation page.
type PrintPage struct {
	Number      int
	Of          int
	PackageName string
	Groups      []PrintGroup
}

// BuildPrintPages lays out a quote for printing, one page per package. Only
// primaries and non-empty notes are listed. Alternates without a description
// or lines are omitted.
func BuildPrintPages(q quote.Quote) []PrintPage {
	pages := make([]PrintPage, 0, len(q.Packages))
	for pi, p := range q.Packages {
		page := PrintPage{Number: pi + 1, Of: len(q.Packages), PackageName: p.Name}
		for _, pg := range p.PriceGroups {
			group := PrintGroup{Name: pg.Name, Total: FormatUSD(GroupTotals(pg).BidPrice)}
			for _, l := range pg.LineItems {
				if item, ok := printItem(l); ok {
					group.Items = append(group.Items, item)
				}
			}
			for _, ad := range pg.AddDeducts {
				if strings.TrimSpace(ad.Description) == "" || len(ad.LineItems) == 0 {
					continue
				}
				group.Alternates = append(group.Alternates, PrintAlternate{
					Description: ad.Description,
					Amount:      AlternateAmount(ad),
				})
			}
			page.Groups = append(page.Groups, group)
		}
		pages = append(pages, page)
	}
	return pages
}

func printItem(l quote.LineItem) (PrintItem, bool) {
	if l.IsNote {
		var bullets []string
		for _, s := range strings.Split(strings.ReplaceAll(l.NoteText, "\r\n", "\n"), "\n") {
			if s = strings.TrimSpace(s); s != "" {
				bullets = append(bullets, s)
			}
		}
		return PrintItem{IsNote: true, Title: "NOTES:", Bullets: bullets}, len(bullets) > 0
	}
	if l.Role != quote.RolePrimary {
		return PrintItem{}, false
	}

	item := PrintItem{Qty: l.Qty, Tag: l.Tag, Bullets: DescriptionBullets(l.Description)}
	name := l.Model
	if name == "" {
		name = l.Equipment
	}
	item.Title = strings.TrimSpace(l.Manufacturer + " " + name)
	if len(item.Bullets) > 0 {
		item.Title += " with:"
	}
	return item, true
}

// DescriptionBullets splits a line description on newlines or "|" into
// non-blank bullet points.
func DescriptionBullets(desc string) []string {
	var out []string
	for _, b := range bulletSplit.Split(desc, -1) {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// AlternateAmount formats an alternate's bid for print. Deducts are wrapped in
// angle brackets rather than signed.
func AlternateAmount(ad quote.AddDeduct) string {
	s := FormatUSD(AddDeductTotals(ad).BidPrice)
	if ad.Type == quote.AlternateDeduct {
		return "<" + s + ">"
	}
	return s
}

// MissingRequired lists the labels of required header fields left blank.
func MissingRequired(h quote.Header) []string {
	required := []struct {
		label string
		value string
	}{
		{"Project Name", h.ProjectName},
		{"Quote #", h.QuoteNumber},
		{"Bid Date", h.BidDate},
		{"Sales Engineer", h.SalesEngineer},
		{"To", h.To},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.label)
		}
	}
	return missing
}
