package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/drafts"
	"quotebuilder/quote"
	"quotebuilder/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleLineImport parses an uploaded .csv or .xlsx file and appends its rows
// to a price group. Nothing is imported when any row fails validation; the
// row errors are returned as JSON instead.
// Route: POST /quotes/{id}/groups/{groupId}/import
func HandleLineImport(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}

		groupID := e.Request.PathValue("groupId")
		if !ws.Quote().HasGroup(groupID) {
			return ErrorToast(e, http.StatusNotFound, "Price group not found")
		}

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ParseLineFile(file, header.Filename)
		if err != nil {
			log.Printf("line_import: %v", err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}
		if result.ErrorRows > 0 {
			return e.JSON(http.StatusUnprocessableEntity, result)
		}
		if len(result.Lines) == 0 {
			return ErrorToast(e, http.StatusBadRequest, "File contains no line items")
		}

		req := quote.Request{Op: quote.OpImportLines, GroupID: groupID, Lines: result.Lines}
		if err := req.Validate(); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{
				"message": "Invalid operation",
				"errors":  err,
			})
		}
		ws.Apply(req)
		log.Printf("line_import: added %d lines to group %s of quote %s", len(result.Lines), groupID, e.Request.PathValue("id"))
		SetToast(e, "success", fmt.Sprintf("Imported %d line items", len(result.Lines)))
		return e.JSON(http.StatusOK, newQuoteView(e.Request.PathValue("id"), ws))
	}
}

// HandleLineTemplate downloads the blank line import workbook.
// Route: GET /quotes/import-template
func HandleLineTemplate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateLineTemplate()
		if err != nil {
			log.Printf("line_template: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate template")
		}

		filename := fmt.Sprintf("LineItems_Template_%d.xlsx", time.Now().Year())
		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleLineImportErrors turns posted row errors into a downloadable workbook.
// Route: POST /quotes/import/errors
func HandleLineImportErrors(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var errs []services.ValidationError
		if err := json.NewDecoder(e.Request.Body).Decode(&errs); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid error data")
		}

		xlsxBytes, err := services.GenerateErrorReport(errs)
		if err != nil {
			log.Printf("line_import_errors: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := fmt.Sprintf("LineItems_Errors_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
