package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"quotebuilder/quote"
)

var (
	brandBlue   = &props.Color{Red: 0, Green: 88, Blue: 164}
	brandOrange = &props.Color{Red: 228, Green: 107, Blue: 3}
	mutedGray   = &props.Color{Red: 85, Green: 85, Blue: 85}
	white       = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// GenerateQuotePDF renders the printable quotation for q using maroto/v2,
// one page per package. It returns the raw PDF bytes or an error.
func GenerateQuotePDF(q quote.Quote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12).
		WithTopMargin(10).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	pages := BuildPrintPages(q)
	for _, pp := range pages {
		var rows []core.Row
		rows = append(rows, headerRows(q.Header, pp)...)
		rows = append(rows, bannerRow(pp.PackageName))
		for _, g := range pp.Groups {
			rows = append(rows, groupRows(g)...)
		}
		rows = append(rows, disclaimerRows()...)
		m.AddPages(page.New().Add(rows...))
	}
	if len(pages) == 0 {
		m.AddRows(headerRows(q.Header, PrintPage{Number: 1, Of: 1})...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// headerRows builds the quotation title block printed at the top of a page.
func headerRows(h quote.Header, pp PrintPage) []core.Row {
	small := props.Text{Size: 8, Color: mutedGray}
	pair := func(label, value string) core.Component {
		return text.New(label+" "+value, small)
	}

	return []core.Row{
		row.New(12).Add(
			col.New(9).Add(
				text.New(fmt.Sprintf("QUOTATION  pg.%d of %d", pp.Number, pp.Of), props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Color: brandBlue,
				}),
			),
			col.New(3).Add(
				text.New("SVL", props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: brandOrange,
				}),
			),
		),
		row.New(7).Add(
			col.New(12).Add(text.New(h.QuoteName, props.Text{Size: 11, Style: fontstyle.Bold})),
		),
		row.New(5).Add(
			col.New(6).Add(pair("Project:", h.ProjectName)),
			col.New(6).Add(pair("Bid Date:", h.BidDate)),
		),
		row.New(5).Add(
			col.New(6).Add(pair("Location:", h.Location)),
			col.New(3).Add(pair("Quote #:", h.QuoteNumber)),
			col.New(3).Add(pair("Addendums:", h.Addendums)),
		),
		row.New(5).Add(
			col.New(6).Add(pair("Sales Engineer:", h.SalesEngineer)),
			col.New(6).Add(pair("Date:", h.Date)),
		),
		row.New(5).Add(
			col.New(6).Add(pair("Project Engineer:", h.ProjectEngineer)),
			col.New(6).Add(pair("To:", h.To)),
		),
		row.New(5).Add(
			col.New(6).Add(pair("Contact:", "Projects@svl.com 651-481-8000 SVL.com")),
			col.New(6).Add(pair("Engineer:", h.Engineer)),
		),
		row.New(3),
	}
}

func bannerRow(name string) core.Row {
	return row.New(9).Add(
		col.New(12).Add(
			text.New(name, props.Text{
				Size:  11,
				Style: fontstyle.Bold,
				Align: align.Center,
				Top:   1.5,
				Color: white,
			}),
		).WithStyle(&props.Cell{BackgroundColor: brandBlue}),
	)
}

// groupRows lists a price group's items, its total line and its alternates.
func groupRows(g PrintGroup) []core.Row {
	rows := []core.Row{
		row.New(3),
		row.New(7).Add(
			col.New(12).Add(text.New(g.Name, props.Text{Size: 10, Style: fontstyle.Bold, Color: brandBlue})),
		),
	}

	bullet := props.Text{Size: 8, Left: 6}
	for _, it := range g.Items {
		if it.IsNote {
			rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(it.Title, props.Text{Size: 8, Style: fontstyle.Bold, Left: 6}))))
			for _, b := range it.Bullets {
				rows = append(rows, row.New(4).Add(col.New(12).Add(text.New("• "+b, props.Text{Size: 8, Style: fontstyle.Bold, Left: 6}))))
			}
			continue
		}

		title := col.New(9).Add(text.New(fmt.Sprintf("(%d) %s", it.Qty, it.Title), props.Text{Size: 9, Style: fontstyle.Bold}))
		tag := col.New(3)
		if it.Tag != "" {
			tag = col.New(3).Add(text.New("TAG: "+it.Tag, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}))
		}
		rows = append(rows, row.New(6).Add(title, tag))
		for _, b := range it.Bullets {
			rows = append(rows, row.New(4).Add(col.New(12).Add(text.New("• "+b, bullet))))
		}
	}

	totalCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	rows = append(rows, row.New(7).Add(
		col.New(9).Add(text.New(GroupTotalLabel, props.Text{Size: 9, Style: fontstyle.Bold, Top: 1})).WithStyle(totalCell),
		col.New(3).Add(text.New(g.Total, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 1})).WithStyle(totalCell),
	))

	for _, alt := range g.Alternates {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New(alt.Description, props.Text{Size: 8, Style: fontstyle.Italic, Color: brandOrange})),
			col.New(3).Add(text.New(alt.Amount, props.Text{Size: 8, Style: fontstyle.Italic, Align: align.Right, Color: brandOrange})),
		))
	}
	return rows
}

func disclaimerRows() []core.Row {
	return []core.Row{
		row.New(6),
		row.New(10).Add(
			col.New(12).Add(
				text.New("DISCLAIMERS: "+Disclaimer+" ALL SALES ARE SUBJECT TO SVL'S TERMS & CONDITIONS OF SALE https://www.svl.com/terms-and-conditions/",
					props.Text{Size: 7, Color: mutedGray}),
			),
		),
	}
}
