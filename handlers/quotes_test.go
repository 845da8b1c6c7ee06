package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"quotebuilder/drafts"
	"quotebuilder/quote"
	"quotebuilder/services"
	"quotebuilder/templates"
	"quotebuilder/testhelpers"
)

func TestHandleQuoteList_HTML(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := testhelpers.CreateTestQuote(t, app, quote.Sample())

	resp := serve(t, app, HandleQuoteList(app), http.MethodGet, "/quotes", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	testhelpers.AssertHTMLContains(t, resp.Body.String(),
		"Vent Quote",
		fmt.Sprintf("/quotes/%s/preview", rec.Id),
		"1182950",
	)
}

func TestHandleQuoteList_JSON(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestQuote(t, app, quote.Sample())
	testhelpers.CreateTestQuote(t, app, quote.Empty())

	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	if err := HandleQuoteList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var items []templates.QuoteListItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(items))
	}
	names := []string{items[0].Name, items[1].Name}
	if !slices.Contains(names, "Vent Quote") || !slices.Contains(names, "Untitled quote") {
		t.Errorf("unexpected names %v", names)
	}
	for _, it := range items {
		if !strings.HasPrefix(it.BidTotal, "$") {
			t.Errorf("BidTotal = %q, want a dollar amount", it.BidTotal)
		}
	}
}

func TestHandleQuoteCreate_SampleHTMX(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(`{"template":"sample"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	if err := HandleQuoteCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	records, err := app.FindAllRecords(drafts.Collection)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected one stored quote, got %d (%v)", len(records), err)
	}
	created := records[0]
	if created.GetString("name") != "Vent Quote" {
		t.Errorf("name = %q, want Vent Quote", created.GetString("name"))
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), fmt.Sprintf("/quotes/%s/preview", created.Id))
}

func TestHandleQuoteCreate_EmptyJSON(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(`{"template":"empty"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	if err := HandleQuoteCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	store := drafts.NewRecordStore(app, body["id"])
	d, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Data.CountLines() != 1 || body["name"] != "Untitled quote" {
		t.Errorf("unexpected new quote: %d lines, name %q", d.Data.CountLines(), body["name"])
	}
}

func TestHandleQuoteCreate_UnknownTemplate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := serve(t, app, HandleQuoteCreate(app), http.MethodPost, "/quotes", "", `{"template":"bogus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleQuoteView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	record := testhelpers.CreateTestQuote(t, app, quote.Sample())

	rec := serve(t, app, HandleQuoteView(app, reg), http.MethodGet, "/quotes/"+record.Id, record.Id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var view quoteView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if view.ID != record.Id {
		t.Errorf("ID = %q, want %q", view.ID, record.Id)
	}
	if len(view.Quote.Packages) != 2 || view.Quote.CountLines() != 12 {
		t.Errorf("unexpected tree: %d packages, %d lines", len(view.Quote.Packages), view.Quote.CountLines())
	}
	want := services.QuoteTotals(quote.Sample()).BidPrice
	if math.Abs(view.Totals.Totals.BidPrice-want) > 0.001 {
		t.Errorf("BidPrice = %f, want %f", view.Totals.Totals.BidPrice, want)
	}
	if view.Status.Dirty {
		t.Error("a freshly opened quote should be clean")
	}
	if !slices.Contains(view.Options.Manufacturers, "Aaon") {
		t.Error("expected default manufacturers in options")
	}
}

func TestHandleQuoteView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	rec := serve(t, app, HandleQuoteView(app, reg), http.MethodGet, "/quotes/nonexistent", "nonexistent", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleQuoteDelete_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	record := testhelpers.CreateTestQuote(t, app, quote.Sample())

	// Open and dirty the workspace first; deleting must not resurrect it.
	ws, err := reg.Get(t.Context(), record.Id)
	if err != nil {
		t.Fatal(err)
	}
	ws.Apply(quote.Request{Op: quote.OpAddPackage})

	req := httptest.NewRequest(http.MethodDelete, "/quotes/"+record.Id, nil)
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", record.Id)
	rec := httptest.NewRecorder()
	if err := HandleQuoteDelete(app, reg)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/quotes")

	if _, err := app.FindRecordById(drafts.Collection, record.Id); err == nil {
		t.Error("expected quote to be deleted")
	}
}

func TestHandleQuoteDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	rec := serve(t, app, HandleQuoteDelete(app, reg), http.MethodDelete, "/quotes/nonexistent", "nonexistent", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
