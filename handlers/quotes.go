package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/drafts"
	"quotebuilder/quote"
	"quotebuilder/services"
	"quotebuilder/templates"
)

// quoteView is the JSON document returned for a single quote.
type quoteView struct {
	ID      string           `json:"id"`
	Quote   quote.Quote      `json:"quote"`
	Totals  services.Summary `json:"totals"`
	Status  drafts.Status    `json:"status"`
	Options quote.Options    `json:"options"`
}

func newQuoteView(id string, ws *drafts.Workspace) quoteView {
	q := ws.Quote()
	return quoteView{
		ID:      id,
		Quote:   q,
		Totals:  services.Summarize(q),
		Status:  ws.Status(),
		Options: quote.SuggestOptions(q),
	}
}

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(e *core.RequestEvent) bool {
	return strings.Contains(e.Request.Header.Get("Accept"), "application/json")
}

// HandleQuoteList returns a handler that lists every stored quote, newest
// first, as HTML or JSON.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter(drafts.Collection, "", "-updated", 0, 0)
		if err != nil {
			log.Printf("quote_list: could not query quotes: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to load quotes")
		}

		items := make([]templates.QuoteListItem, 0, len(records))
		for _, rec := range records {
			item := templates.QuoteListItem{
				ID:      rec.Id,
				Name:    rec.GetString("name"),
				Updated: rec.GetDateTime("updated").Time().Format("02 Jan 2006 15:04"),
			}
			var q quote.Quote
			if err := rec.UnmarshalJSONField("data", &q); err != nil {
				log.Printf("quote_list: quote %s has unreadable data: %v", rec.Id, err)
			} else {
				item.QuoteNumber = q.QuoteNumber
				item.BidTotal = services.FormatUSD(services.QuoteTotals(q).BidPrice)
			}
			items = append(items, item)
		}

		if wantsJSON(e) {
			return e.JSON(http.StatusOK, items)
		}
		component := templates.QuoteList(items)
		return component.Render(e.Request.Context(), e.Response)
	}
}

type createQuoteInput struct {
	Template string `json:"template" form:"template"`
}

// HandleQuoteCreate returns a handler that stores a new quote, either empty
// or a copy of the sample quote.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var input createQuoteInput
		if err := e.BindBody(&input); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		var q quote.Quote
		switch input.Template {
		case "", "empty":
			q = quote.Empty()
		case "sample":
			q = quote.Sample()
		default:
			return ErrorToast(e, http.StatusBadRequest, fmt.Sprintf("Unknown template %q", input.Template))
		}

		record, err := drafts.CreateRecord(app, q)
		if err != nil {
			log.Printf("quote_create: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to create quote")
		}
		log.Printf("quote_create: created quote %s (%s)", record.Id, record.GetString("name"))

		if wantsJSON(e) {
			return e.JSON(http.StatusCreated, map[string]string{"id": record.Id, "name": record.GetString("name")})
		}

		redirectURL := fmt.Sprintf("/quotes/%s/preview", record.Id)
		SetToast(e, "success", "Quote created")
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", redirectURL)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, redirectURL)
	}
}

// HandleQuoteView returns a handler that responds with the quote tree, its
// totals, save status and suggestion lists.
func HandleQuoteView(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}
		return e.JSON(http.StatusOK, newQuoteView(e.Request.PathValue("id"), ws))
	}
}

// HandleQuoteDelete returns a handler that deletes a quote and drops its open
// workspace without saving it.
func HandleQuoteDelete(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		record, err := app.FindRecordById(drafts.Collection, id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Quote not found")
		}

		reg.Forget(id)
		if err := app.Delete(record); err != nil {
			log.Printf("quote_delete: could not delete quote %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete quote")
		}

		SetToast(e, "success", "Quote deleted")
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/quotes")
			return e.String(http.StatusOK, "")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
