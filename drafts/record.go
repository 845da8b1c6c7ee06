package drafts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"quotebuilder/quote"
)

// Collection is the PocketBase collection holding quote drafts.
const Collection = "quotes"

// RecordStore keeps one draft in a record of the quotes collection.
type RecordStore struct {
	app core.App
	id  string
}

// NewRecordStore returns a store bound to the quotes record with the given id.
func NewRecordStore(app core.App, id string) *RecordStore {
	return &RecordStore{app: app, id: id}
}

// Load implements Store.
func (s *RecordStore) Load(ctx context.Context) (Draft, error) {
	if err := ctx.Err(); err != nil {
		return Draft{}, err
	}
	record, err := s.find()
	if err != nil {
		return Draft{}, err
	}

	raw := record.GetString("data")
	if strings.TrimSpace(raw) == "" || raw == "null" {
		return Draft{}, ErrNotFound
	}
	var q quote.Quote
	if err := record.UnmarshalJSONField("data", &q); err != nil {
		return Draft{}, fmt.Errorf("decode quote %s: %w", s.id, err)
	}
	return Draft{SavedAt: record.GetDateTime("saved_at").Time(), Data: q}, nil
}

// Save implements Store. The record must already exist.
func (s *RecordStore) Save(ctx context.Context, d Draft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	record, err := s.find()
	if err != nil {
		return err
	}
	if err := fillRecord(record, d); err != nil {
		return err
	}
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("save quote %s: %w", s.id, err)
	}
	return nil
}

func (s *RecordStore) find() (*core.Record, error) {
	record, err := s.app.FindRecordById(Collection, s.id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quote %s: %w", s.id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find quote %s: %w", s.id, err)
	}
	return record, nil
}

// CreateRecord inserts a new quotes record holding q and returns it.
func CreateRecord(app core.App, q quote.Quote) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId(Collection)
	if err != nil {
		return nil, fmt.Errorf("find %s collection: %w", Collection, err)
	}

	record := core.NewRecord(col)
	if err := fillRecord(record, Draft{SavedAt: time.Now(), Data: q}); err != nil {
		return nil, err
	}
	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	return record, nil
}

func fillRecord(record *core.Record, d Draft) error {
	data, err := json.Marshal(d.Data)
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}

	savedAt, err := types.ParseDateTime(d.SavedAt)
	if err != nil {
		return fmt.Errorf("saved_at: %w", err)
	}
	record.Set("name", DisplayName(d.Data))
	record.Set("data", types.JSONRaw(data))
	record.Set("saved_at", savedAt)
	return nil
}

// DisplayName is the label a quote is listed under.
func DisplayName(q quote.Quote) string {
	for _, s := range []string{q.QuoteName, q.ProjectName} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return "Untitled quote"
}
