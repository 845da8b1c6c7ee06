package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/collections"
	"quotebuilder/drafts"
	"quotebuilder/handlers"
)

// autosaveDelay reads QUOTE_AUTOSAVE_MS, falling back to the default delay.
func autosaveDelay() time.Duration {
	raw := os.Getenv("QUOTE_AUTOSAVE_MS")
	if raw == "" {
		return drafts.DefaultAutosaveDelay
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		log.Printf("Warning: ignoring invalid QUOTE_AUTOSAVE_MS=%q", raw)
		return drafts.DefaultAutosaveDelay
	}
	return time.Duration(ms) * time.Millisecond
}

func main() {
	app := pocketbase.New()

	reg := drafts.NewRegistry(func(id string) drafts.Store {
		return drafts.NewRecordStore(app, id)
	}, autosaveDelay())

	app.RootCmd.AddCommand(newQuoteCommand(app))

	// Create collections, seed and migrate drafts on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateLegacyDrafts(app); err != nil {
			log.Printf("Warning: legacy draft migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Quote list & create ──────────────────────────────────
		se.Router.GET("/quotes", handlers.HandleQuoteList(app))
		se.Router.POST("/quotes", handlers.HandleQuoteCreate(app))

		// ── Line import (template & error report are quote-independent) ──
		se.Router.GET("/quotes/import-template", handlers.HandleLineTemplate(app))
		se.Router.POST("/quotes/import/errors", handlers.HandleLineImportErrors(app))

		// ── Quote editing (workspace resolved by middleware) ─────
		quotes := se.Router.Group("/quotes/{id}")
		quotes.BindFunc(handlers.QuoteMiddleware(app, reg))
		quotes.GET("", handlers.HandleQuoteView(app, reg))
		quotes.POST("/ops", handlers.HandleQuoteOp(app, reg))
		quotes.POST("/selection/delete", handlers.HandleSelectionDelete(app, reg))
		quotes.POST("/selection/copy", handlers.HandleSelectionCopy(app, reg))
		quotes.POST("/undo", handlers.HandleQuoteUndo(app, reg))
		quotes.POST("/groups/{groupId}/import", handlers.HandleLineImport(app, reg))
		quotes.POST("/save", handlers.HandleQuoteSave(app, reg))
		quotes.POST("/reload", handlers.HandleQuoteReload(app, reg))
		quotes.POST("/reset", handlers.HandleQuoteReset(app, reg))

		// ── Preview & export ─────────────────────────────────────
		quotes.GET("/preview", handlers.HandleQuotePreview(app, reg))
		quotes.GET("/export/pdf", handlers.HandleQuoteExportPDF(app, reg))
		quotes.GET("/export/excel", handlers.HandleQuoteExportExcel(app, reg))

		// Delete skips the middleware so no workspace is opened for it
		se.Router.DELETE("/quotes/{id}", handlers.HandleQuoteDelete(app, reg))

		// Redirect home to quotes list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quotes")
		})

		return se.Next()
	})

	// Flush pending edits before the process exits
	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		reg.Close(ctx)
		return e.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
