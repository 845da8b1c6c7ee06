// Package templates renders the HTML pages of the quote builder.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"quotebuilder/quote"
	"quotebuilder/services"
)

// QuotePreviewData holds everything the printable quotation needs.
type QuotePreviewData struct {
	ID      string
	Header  quote.Header
	Pages   []services.PrintPage
	Missing []string
	Status  string
}

// htmlWriter writes escaped and raw fragments, remembering the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

// field writes a "<strong>label</strong> value" line.
func (h *htmlWriter) field(label, value string) {
	h.raw(`<div><strong>`)
	h.text(label)
	h.raw(`</strong> `)
	h.text(value)
	h.raw(`</div>`)
}

const previewStyle = `<style>
body{font-family:Arial,sans-serif;color:#222;margin:0;background:#eee}
.q-page{background:#fff;max-width:8.5in;margin:16px auto;padding:28px 36px;page-break-after:always}
.q-title{font-size:26px;font-weight:900;color:#0058A4}
.q-title span{font-size:14px;font-weight:400;color:#666}
.q-brand{font-size:22px;font-weight:900;color:#E46B03}
.q-info{display:grid;grid-template-columns:1fr 1fr;margin-top:8px;font-size:12px;line-height:1.6}
.q-banner{background:#0058A4;color:#fff;font-weight:700;text-align:center;padding:6px;margin:14px 0 8px}
.q-pg{font-weight:700;color:#0058A4;border-bottom:1px solid #0058A4;margin-top:12px}
.q-equip{margin:6px 0}
.q-bullet{padding-left:18px;font-size:12px}
.q-total{display:flex;justify-content:space-between;background:#f0f0f0;font-weight:700;padding:4px 6px;margin-top:6px}
.q-ad{display:flex;justify-content:space-between;font-style:italic;padding:2px 6px;color:#E46B03}
.q-disclaim{font-size:10px;color:#555;margin-top:18px}
.q-warn{max-width:8.5in;margin:16px auto;background:#fff4e5;border:1px solid #E46B03;padding:8px 12px}
@media print{body{background:#fff}.q-warn,.q-status{display:none}.q-page{margin:0}}
</style>`

// QuotePreview renders the printable quotation, one page per package.
func QuotePreview(data QuotePreviewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		title := data.Header.QuoteName
		if title == "" {
			title = "Quotation"
		}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title>`)
		h.raw(previewStyle)
		h.raw(`</head><body>`)

		if data.Status != "" {
			h.raw(`<div class="q-warn q-status">`)
			h.text(data.Status)
			h.raw(`</div>`)
		}
		if len(data.Missing) > 0 {
			h.raw(`<div class="q-warn">Missing required project details: `)
			for i, m := range data.Missing {
				if i > 0 {
					h.raw(", ")
				}
				h.text(m)
			}
			h.raw(`</div>`)
		}

		for _, p := range data.Pages {
			writePage(h, data.Header, p)
		}

		h.raw(`</body></html>`)
		return h.err
	})
}

func writePage(h *htmlWriter, hdr quote.Header, p services.PrintPage) {
	h.raw(`<section class="q-page">`)
	h.raw(`<div style="display:flex;justify-content:space-between"><div>`)
	h.rawf(`<div class="q-title">QUOTATION <span>pg.%d of %d</span></div>`, p.Number, p.Of)
	h.raw(`<div><strong>`)
	h.text(hdr.QuoteName)
	h.raw(`</strong></div></div><div class="q-brand">SVL<sup>&reg;</sup></div></div>`)

	h.raw(`<div class="q-info"><div>`)
	h.field("Project:", hdr.ProjectName)
	h.field("Location:", hdr.Location)
	h.raw(`</div><div>`)
	h.field("Bid Date:", hdr.BidDate)
	h.field("Quote #:", hdr.QuoteNumber)
	h.field("Addendums:", hdr.Addendums)
	h.raw(`</div></div>`)

	h.raw(`<div class="q-info"><div>`)
	h.field("Contact:", "Projects@svl.com 651-481-8000 SVL.com")
	h.field("Sales Engineer:", hdr.SalesEngineer)
	h.field("Project Engineer:", hdr.ProjectEngineer)
	h.raw(`</div><div>`)
	h.field("Date:", hdr.Date)
	h.field("To:", hdr.To)
	h.field("Engineer:", hdr.Engineer)
	h.raw(`</div></div>`)

	h.raw(`<div class="q-banner">`)
	h.text(p.PackageName)
	h.raw(`</div>`)

	for _, g := range p.Groups {
		h.raw(`<div class="q-pg">`)
		h.text(g.Name)
		h.raw(`</div>`)
		for _, it := range g.Items {
			writeItem(h, it)
		}
		h.raw(`<div class="q-total"><span>`)
		h.text(services.GroupTotalLabel)
		h.raw(`</span><span>`)
		h.text(g.Total)
		h.raw(`</span></div>`)
		for _, alt := range g.Alternates {
			h.raw(`<div class="q-ad"><span>`)
			h.text(alt.Description)
			h.raw(`</span><span>`)
			h.text(alt.Amount)
			h.raw(`</span></div>`)
		}
	}

	h.raw(`<div class="q-disclaim"><strong>DISCLAIMERS:</strong> `)
	h.text(services.Disclaimer)
	h.raw(` <strong>ALL SALES ARE SUBJECT TO SVL'S TERMS &amp; CONDITIONS OF SALE</strong> https://www.svl.com/terms-and-conditions/</div>`)
	h.raw(`</section>`)
}

func writeItem(h *htmlWriter, it services.PrintItem) {
	if it.IsNote {
		h.raw(`<div class="q-equip"><div class="q-bullet"><strong>`)
		h.text(it.Title)
		h.raw(`</strong></div>`)
		for _, b := range it.Bullets {
			h.raw(`<div class="q-bullet"><strong>&bull; `)
			h.text(b)
			h.raw(`</strong></div>`)
		}
		h.raw(`</div>`)
		return
	}

	h.raw(`<div class="q-equip"><div style="display:flex;justify-content:space-between">`)
	h.rawf(`<div><strong>(%d)</strong> `, it.Qty)
	h.text(it.Title)
	h.raw(`</div>`)
	if it.Tag != "" {
		h.raw(`<div><strong>TAG: `)
		h.text(it.Tag)
		h.raw(`</strong></div>`)
	}
	h.raw(`</div>`)
	for _, b := range it.Bullets {
		h.raw(`<div class="q-bullet">&bull; `)
		h.text(b)
		h.raw(`</div>`)
	}
	h.raw(`</div>`)
}
