package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// QuoteListItem is one row of the quote list page.
type QuoteListItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	QuoteNumber string `json:"quoteNumber"`
	BidTotal    string `json:"bidTotal"`
	Updated     string `json:"updated"`
}

// QuoteList renders every stored quote with links to its preview and exports.
func QuoteList(items []QuoteListItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Quotes</title>`)
		h.raw(previewStyle)
		h.raw(`</head><body><section class="q-page"><div class="q-title">Quotes</div>`)
		h.raw(`<form method="post" action="/quotes" style="margin:12px 0">`)
		h.raw(`<button name="template" value="empty">New quote</button> `)
		h.raw(`<button name="template" value="sample">New from sample</button></form>`)
		h.raw(`<p><a href="/quotes/import-template">Download line import template</a></p>`)

		if len(items) == 0 {
			h.raw(`<p>No quotes yet.</p>`)
		} else {
			h.raw(`<table style="width:100%;font-size:13px;border-collapse:collapse">`)
			h.raw(`<tr><th align="left">Name</th><th align="left">Quote #</th><th align="right">Bid Total</th><th align="left">Updated</th><th></th></tr>`)
			for _, it := range items {
				href := "/quotes/" + templ.EscapeString(it.ID)
				h.raw(`<tr id="quote-` + templ.EscapeString(it.ID) + `"><td><a href="` + href + `/preview">`)
				h.text(it.Name)
				h.raw(`</a></td><td>`)
				h.text(it.QuoteNumber)
				h.raw(`</td><td align="right">`)
				h.text(it.BidTotal)
				h.raw(`</td><td>`)
				h.text(it.Updated)
				h.raw(`</td><td><a href="` + href + `/export/pdf">PDF</a> <a href="` + href + `/export/excel">Excel</a>`)
				h.raw(` <button hx-delete="` + href + `" hx-confirm="Delete this quote?">Delete</button></td></tr>`)
			}
			h.raw(`</table>`)
		}
		h.raw(`</section></body></html>`)
		return h.err
	})
}
