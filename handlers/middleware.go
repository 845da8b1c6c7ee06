package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/drafts"
)

type contextKey string

const WorkspaceKey contextKey = "workspace"
const QuoteIDKey contextKey = "quoteId"

var errQuoteNotFound = errors.New("quote not found")

// GetWorkspace extracts the quote workspace from the request context.
func GetWorkspace(r *http.Request) *drafts.Workspace {
	if val, ok := r.Context().Value(WorkspaceKey).(*drafts.Workspace); ok {
		return val
	}
	return nil
}

// QuoteMiddleware resolves the {id} path value to an open workspace and
// stores it in the request context. Unknown ids are answered with a 404.
func QuoteMiddleware(app *pocketbase.PocketBase, reg *drafts.Registry) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}

		ctx := context.WithValue(e.Request.Context(), WorkspaceKey, ws)
		ctx = context.WithValue(ctx, QuoteIDKey, e.Request.PathValue("id"))
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}

// loadWorkspace returns the workspace for the quote named by the {id} path
// value, reusing the one the middleware stored when present.
func loadWorkspace(e *core.RequestEvent, app *pocketbase.PocketBase, reg *drafts.Registry) (*drafts.Workspace, error) {
	id := e.Request.PathValue("id")
	if ws := GetWorkspace(e.Request); ws != nil {
		if ctxID, _ := e.Request.Context().Value(QuoteIDKey).(string); ctxID == id {
			return ws, nil
		}
	}
	if id == "" {
		return nil, fmt.Errorf("missing quote id: %w", errQuoteNotFound)
	}

	if _, err := app.FindRecordById(drafts.Collection, id); err != nil {
		return nil, fmt.Errorf("quote %s: %w", id, errQuoteNotFound)
	}
	ws, err := reg.Get(e.Request.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("open quote %s: %w", id, err)
	}
	return ws, nil
}

// workspaceError writes the response for a failed loadWorkspace call.
func workspaceError(e *core.RequestEvent, err error) error {
	if errors.Is(err, errQuoteNotFound) {
		return ErrorToast(e, http.StatusNotFound, "Quote not found")
	}
	log.Printf("quotes: %v", err)
	return ErrorToast(e, http.StatusInternalServerError, "Failed to open quote")
}
