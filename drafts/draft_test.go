package drafts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"quotebuilder/quote"
)

func TestDecode_SavedAtFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"unix millis", `{"savedAt":1768996800000,"data":{"packages":[]}}`, time.UnixMilli(1768996800000)},
		{"rfc3339", `{"savedAt":"2026-01-21T12:00:00Z","data":{"packages":[]}}`, time.Date(2026, 1, 21, 12, 0, 0, 0, time.UTC)},
		{"null", `{"savedAt":null,"data":{"packages":[]}}`, time.Time{}},
		{"missing", `{"data":{"packages":[]}}`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !d.SavedAt.Equal(tt.want) {
				t.Errorf("SavedAt = %v, want %v", d.SavedAt, tt.want)
			}
		})
	}
}

func TestDecode_RejectsDraftWithoutPackages(t *testing.T) {
	for _, raw := range []string{
		`{"savedAt":1}`,
		`{"savedAt":1,"data":null}`,
		`{"savedAt":1,"data":{"projectName":"x"}}`,
		`{"savedAt":1,"data":{"packages":{}}}`,
	} {
		if _, err := Decode([]byte(raw)); !errors.Is(err, ErrNotFound) {
			t.Errorf("Decode(%s) error = %v, want ErrNotFound", raw, err)
		}
	}
	if _, err := Decode([]byte(`not json`)); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Decode(garbage) error = %v, want a syntax error", err)
	}
}

func TestDecode_LegacyDraft(t *testing.T) {
	raw := `{"savedAt":1768996800000,"data":{"projectName":"Skyway","packages":[{"id":"p1","name":"B1","priceGroups":[
		{"id":"g1","name":"Fans","lineItems":[
			{"id":"a","groupId":"t1","role":"primary","equipment":"Fans","list":"$1,000.00","multi":1,"mu":1.4},
			{"id":"b","groupId":"t1","role":"supporting","equipment":"Curbs","list":"250"}
		]}
	]}]}}`

	d, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	lines := d.Data.Packages[0].PriceGroups[0].LineItems
	if lines[1].PrimaryID != "a" {
		t.Errorf("supporting line PrimaryID = %q, want %q", lines[1].PrimaryID, "a")
	}
	if lines[0].List != 1000 || lines[1].List != 250 {
		t.Errorf("list prices = %v, %v", lines[0].List, lines[1].List)
	}
	if err := quote.Check(d.Data); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestStores_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(dir, "nested", "draft.json")),
	}
	sample := quote.Sample()
	stamp := time.Date(2026, 1, 21, 9, 30, 0, 0, time.UTC)

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Load() on empty store error = %v, want ErrNotFound", err)
			}

			if err := s.Save(ctx, Draft{SavedAt: stamp, Data: sample}); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !got.SavedAt.Equal(stamp) {
				t.Errorf("SavedAt = %v, want %v", got.SavedAt, stamp)
			}
			if diff := cmp.Diff(sample, got.Data, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			// Overwrite keeps only the latest draft.
			empty := quote.Empty()
			if err := s.Save(ctx, Draft{SavedAt: stamp.Add(time.Minute), Data: empty}); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, _ = s.Load(ctx)
			if diff := cmp.Diff(empty, got.Data, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("overwrite mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMemoryStore_LoadIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Save(ctx, Draft{Data: quote.Sample()}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	a, _ := s.Load(ctx)
	a.Data.Packages[0].Name = "changed"
	b, _ := s.Load(ctx)
	if b.Data.Packages[0].Name == "changed" {
		t.Error("Load() shares state between callers")
	}
}

func TestFileStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestFileStore_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist", "draft.json")
	if _, err := NewFileStore(path).Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestFileStore_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")
	s := NewFileStore(path)

	// Hold the lock from a second handle so Save has to wait.
	other := NewFileStore(path)
	unlock, err := other.lock(context.Background(), true)
	if err != nil {
		t.Fatalf("lock() error = %v", err)
	}
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, Draft{Data: quote.Empty()}); err == nil {
		t.Error("Save() with a held lock and cancelled context should fail")
	}
}
