package collections

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pocketbase/pocketbase"

	"quotebuilder/drafts"
)

// MigrateLegacyDrafts rewrites quotes whose lines still tie supporting items
// to primaries through shared groupId tokens. Decoding resolves the tokens to
// primaryId references; saving stores the converted tree.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateLegacyDrafts(app *pocketbase.PocketBase) error {
	quotesCol, err := app.FindCollectionByNameOrId(drafts.Collection)
	if err != nil {
		return fmt.Errorf("migrate: could not find quotes collection: %w", err)
	}

	records, err := app.FindAllRecords(quotesCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query quotes: %w", err)
	}

	var legacy []string
	for _, r := range records {
		if strings.Contains(r.GetString("data"), `"groupId"`) {
			legacy = append(legacy, r.Id)
		}
	}
	if len(legacy) == 0 {
		return nil
	}

	log.Printf("migrate: found %d quote(s) with legacy groupId references -- converting...\n", len(legacy))

	for _, id := range legacy {
		store := drafts.NewRecordStore(app, id)
		d, err := store.Load(context.Background())
		if err != nil {
			log.Printf("migrate: failed to load quote %s: %v\n", id, err)
			continue
		}
		if err := store.Save(context.Background(), d); err != nil {
			log.Printf("migrate: failed to save quote %s: %v\n", id, err)
			continue
		}
		log.Printf("migrate: quote %s converted\n", id)
	}

	log.Println("migrate: legacy draft migration complete.")
	return nil
}
