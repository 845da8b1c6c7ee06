// Package drafts persists quotes and tracks the editing session around them:
// the current tree, whether it has unsaved changes, when it was last saved,
// and a single level of undo for deletions.
package drafts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quotebuilder/quote"
)

// ErrNotFound is returned by a Store that holds no draft yet.
var ErrNotFound = errors.New("draft not found")

// Draft is the persisted envelope around a quote.
type Draft struct {
	SavedAt time.Time   `json:"savedAt"`
	Data    quote.Quote `json:"data"`
}

// Store loads and saves a single draft.
type Store interface {
	Load(ctx context.Context) (Draft, error)
	Save(ctx context.Context, d Draft) error
}

// UnmarshalJSON accepts savedAt either as an RFC 3339 string or as Unix
// milliseconds, which is how older browser drafts were stamped. A draft with
// no packages array is rejected.
func (d *Draft) UnmarshalJSON(b []byte) error {
	var raw struct {
		SavedAt json.RawMessage `json:"savedAt"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var shape struct {
		Packages json.RawMessage `json:"packages"`
	}
	if len(raw.Data) == 0 || json.Unmarshal(raw.Data, &shape) != nil || !bytes.HasPrefix(bytes.TrimSpace(shape.Packages), []byte("[")) {
		return fmt.Errorf("draft has no packages: %w", ErrNotFound)
	}

	var q quote.Quote
	if err := json.Unmarshal(raw.Data, &q); err != nil {
		return fmt.Errorf("decode quote: %w", err)
	}

	savedAt, err := parseSavedAt(raw.SavedAt)
	if err != nil {
		return err
	}
	*d = Draft{SavedAt: savedAt, Data: q}
	return nil
}

func parseSavedAt(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}
	if raw[0] == '"' {
		var t time.Time
		if err := json.Unmarshal(raw, &t); err != nil {
			return time.Time{}, fmt.Errorf("decode savedAt: %w", err)
		}
		return t, nil
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, fmt.Errorf("decode savedAt: %w", err)
	}
	return time.UnixMilli(int64(ms)), nil
}

// Encode serialises a draft for storage.
func Encode(d Draft) ([]byte, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	return b, nil
}

// Decode parses a stored draft. Structural problems in the quote are logged by
// the caller, never rejected here.
func Decode(b []byte) (Draft, error) {
	var d Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}
