package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/drafts"
	"quotebuilder/quote"
)

// HandleQuoteOp returns a handler that applies one tree operation to a quote.
// Expects a JSON quote.Request body, e.g. {"op":"moveLine","lineId":"abc","dir":1}.
func HandleQuoteOp(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}

		var req quote.Request
		if err := e.BindBody(&req); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid request body")
		}
		return applyRequest(e, ws, req)
	}
}

// HandleSelectionDelete returns a handler that deletes every entity of a
// multi-select. Expects a JSON body: {"type":"line","ids":["id1","id2"]}.
func HandleSelectionDelete(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return handleSelection(app, reg, quote.OpDeleteSelection)
}

// HandleSelectionCopy returns a handler that duplicates every entity of a
// multi-select next to its original.
func HandleSelectionCopy(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return handleSelection(app, reg, quote.OpDuplicate)
}

func handleSelection(app *pocketbase.PocketBase, reg *drafts.Registry, op quote.Op) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}

		var sel quote.Selection
		if err := e.BindBody(&sel); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid request body")
		}
		if !sel.Type.Valid() {
			return ErrorToast(e, http.StatusBadRequest, "Invalid selection type")
		}
		if sel.Empty() {
			return ErrorToast(e, http.StatusBadRequest, "No IDs provided")
		}
		return applyRequest(e, ws, quote.Request{Op: op, Selection: &sel})
	}
}

// applyRequest validates req, applies it and responds with the updated quote.
// A delete whose targets are already gone changes nothing and keeps the
// earlier undo snapshot.
func applyRequest(e *core.RequestEvent, ws *drafts.Workspace, req quote.Request) error {
	if err := req.Validate(); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{
			"message": "Invalid operation",
			"errors":  err,
		})
	}

	if _, changed := ws.Apply(req); changed && req.Destructive() {
		SetToast(e, "success", "Deleted. Undo is available.")
	}
	return e.JSON(http.StatusOK, newQuoteView(e.Request.PathValue("id"), ws))
}

// HandleQuoteUndo returns a handler that restores the tree as it was before
// the last delete.
func HandleQuoteUndo(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}

		if !ws.Undo() {
			return ErrorToast(e, http.StatusConflict, "Nothing to undo")
		}
		log.Printf("quote_undo: restored quote %s", e.Request.PathValue("id"))
		SetToast(e, "success", "Delete undone")
		return e.JSON(http.StatusOK, newQuoteView(e.Request.PathValue("id"), ws))
	}
}
