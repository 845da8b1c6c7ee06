package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotebuilder/quote"
	"quotebuilder/testhelpers"
)

func TestGetWorkspace_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetWorkspace(req); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestQuoteMiddleware_StoresWorkspace(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)
	record := testhelpers.CreateTestQuote(t, app, quote.Sample())

	req := httptest.NewRequest(http.MethodGet, "/quotes/"+record.Id, nil)
	req.SetPathValue("id", record.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := QuoteMiddleware(app, reg)(e); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	ws := GetWorkspace(e.Request)
	if ws == nil {
		t.Fatal("expected workspace in context")
	}
	want, _ := reg.Get(context.Background(), record.Id)
	if ws != want {
		t.Error("middleware should store the registry's workspace")
	}

	// Handlers reuse the stored workspace.
	got, err := loadWorkspace(e, app, reg)
	if err != nil || got != ws {
		t.Errorf("loadWorkspace() = %v, %v; want the stored workspace", got, err)
	}
}

func TestQuoteMiddleware_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	reg := newTestRegistry(t, app)

	req := httptest.NewRequest(http.MethodGet, "/quotes/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := QuoteMiddleware(app, reg)(e); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if GetWorkspace(e.Request) != nil {
		t.Error("no workspace should be stored for an unknown quote")
	}
}
