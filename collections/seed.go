package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"quotebuilder/drafts"
	"quotebuilder/quote"
)

// Seed inserts the sample quote when the quotes collection is empty.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if quotes already exist ────────────────────
	quotesCol, err := app.FindCollectionByNameOrId(drafts.Collection)
	if err != nil {
		return fmt.Errorf("seed: could not find quotes collection: %w", err)
	}
	total, err := app.CountRecords(quotesCol)
	if err != nil {
		return fmt.Errorf("seed: could not count quotes: %w", err)
	}
	if total > 0 {
		return nil // already seeded
	}

	log.Println("seed: quotes collection is empty – inserting sample quote …")

	record, err := drafts.CreateRecord(app, quote.Sample())
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	log.Printf("seed: created sample quote %s (%s)\n", record.Id, record.GetString("name"))
	return nil
}
