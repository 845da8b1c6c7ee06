package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/drafts"
	"quotebuilder/quote"
	"quotebuilder/services"
	"quotebuilder/templates"
)

// exportDate is the date printed on exports: the quote's own date when set,
// otherwise today.
func exportDate(q quote.Quote, now time.Time) string {
	if d := strings.TrimSpace(q.Date); d != "" {
		return d
	}
	return now.Format("02 Jan 2006")
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// exportFilename builds "Quote_<name>_<year>.<ext>" for a quote.
func exportFilename(q quote.Quote, ext string) string {
	return fmt.Sprintf("Quote_%s_%d.%s", sanitizeFilename(drafts.DisplayName(q)), time.Now().Year(), ext)
}

// HandleQuotePreview returns a handler that renders the printable quotation.
func HandleQuotePreview(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}

		q := ws.Quote()
		data := templates.QuotePreviewData{
			ID:      e.Request.PathValue("id"),
			Header:  q.Header,
			Pages:   services.BuildPrintPages(q),
			Missing: services.MissingRequired(q.Header),
			Status:  ws.Status().Label,
		}
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		component := templates.QuotePreview(data)
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteExportExcel returns a handler that generates and downloads the
// pricing sheet of a quote.
func HandleQuoteExportExcel(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}

		q := ws.Quote()
		xlsxBytes, err := services.GenerateQuoteExcel(services.BuildExportData(q, exportDate(q, time.Now())))
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(q, "xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleQuoteExportPDF returns a handler that generates and downloads the
// printable quotation as a PDF file.
func HandleQuoteExportPDF(app *pocketbase.PocketBase, reg *drafts.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ws, err := loadWorkspace(e, app, reg)
		if err != nil {
			return workspaceError(e, err)
		}

		q := ws.Quote()
		pdfBytes, err := services.GenerateQuotePDF(q)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(q, "pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}
