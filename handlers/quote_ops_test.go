package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"quotebuilder/drafts"
	"quotebuilder/quote"
	"quotebuilder/testhelpers"
)

func decodeView(t *testing.T, body []byte) quoteView {
	t.Helper()
	var view quoteView
	if err := json.Unmarshal(body, &view); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return view
}

func TestHandleQuoteOp_AddPackage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	record := testhelpers.CreateTestQuote(t, app, quote.Sample())
	target := fmt.Sprintf("/quotes/%s/ops", record.Id)

	rec := serve(t, app, HandleQuoteOp(app, reg), http.MethodPost, target, record.Id, `{"op":"addPackage"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec.Body.Bytes())
	if len(view.Quote.Packages) != 3 {
		t.Errorf("expected 3 packages, got %d", len(view.Quote.Packages))
	}
	if !view.Status.Dirty || view.Status.Label != "Unsaved changes" {
		t.Errorf("Status = %+v, want dirty", view.Status)
	}

	// The registry flushes the workspace to the record on close.
	reg.Close(t.Context())
	d, err := drafts.NewRecordStore(app, record.Id).Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(d.Data.Packages) != 3 {
		t.Errorf("stored quote has %d packages, want 3", len(d.Data.Packages))
	}
}

func TestHandleQuoteOp_ValidationErrors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	record := testhelpers.CreateTestQuote(t, app, quote.Sample())

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing op", `{}`, "op"},
		{"unknown op", `{"op":"explode"}`, "op"},
		{"move without direction", `{"op":"moveLine","lineId":"x"}`, "dir"},
		{"delete group without id", `{"op":"deleteGroup"}`, "groupId"},
		{"non-positive markup", `{"op":"applyMarkupAll","markup":0}`, "markup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, app, HandleQuoteOp(app, reg), http.MethodPost, "/quotes/"+record.Id+"/ops", record.Id, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var body struct {
				Errors map[string]string `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if _, ok := body.Errors[tt.field]; !ok {
				t.Errorf("expected an error for %q, got %v", tt.field, body.Errors)
			}
		})
	}
}

func TestHandleQuoteOp_InvalidBody(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	record := testhelpers.CreateTestQuote(t, app, quote.Sample())

	rec := serve(t, app, HandleQuoteOp(app, reg), http.MethodPost, "/quotes/"+record.Id+"/ops", record.Id, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleQuoteOp_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	rec := serve(t, app, HandleQuoteOp(app, reg), http.MethodPost, "/quotes/nonexistent/ops", "nonexistent", `{"op":"addPackage"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleSelectionDelete_ThenUndo(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	q := quote.Sample()
	record := testhelpers.CreateTestQuote(t, app, q)
	rtu := q.Packages[0].PriceGroups[0].LineItems
	body := fmt.Sprintf(`{"type":"line","ids":[%q,%q]}`, rtu[2].ID, rtu[3].ID)

	rec := serve(t, app, HandleSelectionDelete(app, reg), http.MethodPost, "/quotes/"+record.Id+"/selection/delete", record.Id, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec.Body.Bytes())
	if got := view.Quote.CountLines(); got != 10 {
		t.Errorf("expected 10 lines after delete, got %d", got)
	}
	if !view.Status.CanUndo {
		t.Error("a delete should be undoable")
	}
	if rec.Header().Get("HX-Trigger") == "" {
		t.Error("expected a toast after delete")
	}

	rec = serve(t, app, HandleQuoteUndo(app, reg), http.MethodPost, "/quotes/"+record.Id+"/undo", record.Id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from undo, got %d", rec.Code)
	}
	view = decodeView(t, rec.Body.Bytes())
	if got := view.Quote.CountLines(); got != 12 {
		t.Errorf("expected 12 lines after undo, got %d", got)
	}

	rec = serve(t, app, HandleQuoteUndo(app, reg), http.MethodPost, "/quotes/"+record.Id+"/undo", record.Id, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 when nothing to undo, got %d", rec.Code)
	}
}

func TestHandleQuoteOp_RepeatedDeleteKeepsUndo(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	q := quote.Sample()
	record := testhelpers.CreateTestQuote(t, app, q)
	base := "/quotes/" + record.Id
	lineID := q.Packages[0].PriceGroups[0].LineItems[0].ID
	deleteBody := fmt.Sprintf(`{"op":"deleteLine","lineId":%q}`, lineID)

	rec := serve(t, app, HandleQuoteOp(app, reg), http.MethodPost, base+"/ops", record.Id, deleteBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("HX-Trigger") == "" {
		t.Error("expected a toast after delete")
	}

	// Deletes whose target is already gone change nothing.
	for _, body := range []string{deleteBody, `{"op":"deleteLine","lineId":"missing"}`} {
		rec = serve(t, app, HandleQuoteOp(app, reg), http.MethodPost, base+"/ops", record.Id, body)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got := rec.Header().Get("HX-Trigger"); got != "" {
			t.Errorf("no-op delete %s set a toast: %s", body, got)
		}
		if got := decodeView(t, rec.Body.Bytes()).Quote.CountLines(); got != 11 {
			t.Errorf("expected 11 lines after no-op delete, got %d", got)
		}
	}

	rec = serve(t, app, HandleQuoteUndo(app, reg), http.MethodPost, base+"/undo", record.Id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from undo, got %d", rec.Code)
	}
	if got := decodeView(t, rec.Body.Bytes()).Quote.CountLines(); got != 12 {
		t.Errorf("expected 12 lines after undo, got %d", got)
	}
}

func TestHandleSelectionCopy(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	q := quote.Sample()
	record := testhelpers.CreateTestQuote(t, app, q)
	groupID := q.Packages[0].PriceGroups[1].ID
	body := fmt.Sprintf(`{"type":"priceGroup","ids":[%q]}`, groupID)

	rec := serve(t, app, HandleSelectionCopy(app, reg), http.MethodPost, "/quotes/"+record.Id+"/selection/copy", record.Id, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec.Body.Bytes())
	groups := view.Quote.Packages[0].PriceGroups
	if len(groups) != len(q.Packages[0].PriceGroups)+1 {
		t.Fatalf("expected one extra group, got %d", len(groups))
	}
	if groups[2].ID == groupID || len(groups[2].LineItems) != len(groups[1].LineItems) {
		t.Error("expected a fresh copy right after the original group")
	}
	if err := quote.Check(view.Quote); err != nil {
		t.Errorf("copied quote fails Check(): %v", err)
	}
}

func TestHandleSelection_Invalid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	record := testhelpers.CreateTestQuote(t, app, quote.Sample())

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"type":"building","ids":["a"]}`},
		{"no ids", `{"type":"line","ids":[]}`},
		{"bad json", `[`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, app, HandleSelectionDelete(app, reg), http.MethodPost, "/quotes/"+record.Id+"/selection/delete", record.Id, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}
