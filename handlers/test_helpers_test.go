package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/drafts"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestRegistry returns a registry backed by the app's quotes collection.
// Autosave is effectively disabled; open workspaces are flushed on cleanup.
func newTestRegistry(t *testing.T, app *pocketbase.PocketBase) *drafts.Registry {
	t.Helper()
	reg := drafts.NewRegistry(func(id string) drafts.Store {
		return drafts.NewRecordStore(app, id)
	}, time.Hour)
	t.Cleanup(func() { reg.Close(context.Background()) })
	return reg
}

// serve runs handler for a request with the given {id} path value. A non-empty
// body is sent as JSON.
func serve(t *testing.T, app *pocketbase.PocketBase, handler func(*core.RequestEvent) error, method, target, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if id != "" {
		req.SetPathValue("id", id)
	}
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}
