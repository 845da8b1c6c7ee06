package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/drafts"
)

// HandleQuoteSave writes the open workspace to its record without waiting
// for the autosaver.
// Route: POST /quotes/{id}/save
func HandleQuoteSave(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}
		if err := ws.Save(e.Request.Context()); err != nil {
			log.Printf("quote_save: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to save quote")
		}
		SetToast(e, "success", "Quote saved")
		return e.JSON(http.StatusOK, newQuoteView(e.Request.PathValue("id"), ws))
	}
}

// HandleQuoteReload discards unsaved edits and reopens the stored draft.
// Route: POST /quotes/{id}/reload
func HandleQuoteReload(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}
		if err := ws.Reload(e.Request.Context()); err != nil {
			log.Printf("quote_reload: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to reload quote")
		}
		SetToast(e, "success", "Reloaded saved quote")
		return e.JSON(http.StatusOK, newQuoteView(e.Request.PathValue("id"), ws))
	}
}

// HandleQuoteReset replaces the tree with the sample quote, or with an empty
// one when ?template=empty. The replacement is an unsaved edit.
// Route: POST /quotes/{id}/reset
func HandleQuoteReset(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}

		switch e.Request.URL.Query().Get("template") {
		case "", "sample":
			ws.Reset()
			SetToast(e, "success", "Quote reset to sample")
		case "empty":
			ws.New()
			SetToast(e, "success", "Started a new quote")
		default:
			return ErrorToast(e, http.StatusBadRequest, "Unknown template")
		}
		return e.JSON(http.StatusOK, newQuoteView(e.Request.PathValue("id"), ws))
	}
}
