package drafts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"quotebuilder/quote"
)

// Workspace is one editing session over a stored draft. All methods are safe
// for concurrent use.
type Workspace struct {
	mu      sync.Mutex
	store   Store
	now     func() time.Time
	current quote.Quote
	version uint64
	dirty   bool
	savedAt time.Time
	undo    *quote.Quote

	onChange func()
}

// Status describes the save state of a workspace.
type Status struct {
	Dirty   bool      `json:"dirty"`
	SavedAt time.Time `json:"savedAt,omitzero"`
	Label   string    `json:"label"`
	CanUndo bool      `json:"canUndo"`
}

// Open loads the draft held by store. A store with no usable draft opens on
// an empty quote.
func Open(ctx context.Context, store Store) (*Workspace, error) {
	w := &Workspace{store: store, now: time.Now}

	d, err := store.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		w.current = quote.Empty()
		return w, nil
	case err != nil:
		return nil, fmt.Errorf("open draft: %w", err)
	}

	if cerr := quote.Check(d.Data); cerr != nil {
		log.Printf("drafts: loaded draft has structural problems: %v", cerr)
	}
	w.current = d.Data
	w.savedAt = d.SavedAt
	return w, nil
}

// Quote returns the current tree. It must be treated as read-only.
func (w *Workspace) Quote() quote.Quote {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Apply runs a request against the current tree and reports whether it
// changed. Destructive requests that change the tree keep the previous tree as
// the undo snapshot; requests that change nothing leave the workspace as it
// was, undo snapshot included.
func (w *Workspace) Apply(r quote.Request) (quote.Quote, bool) {
	w.mu.Lock()
	prev := w.current
	next, changed := quote.Apply(prev, r)
	if !changed {
		w.mu.Unlock()
		return prev, false
	}
	if r.Destructive() {
		w.undo = &prev
	}
	w.setLocked(next)
	notify := w.onChange
	w.mu.Unlock()

	if notify != nil {
		notify()
	}
	return next, true
}

// Undo restores the tree from before the last destructive request. It
// reports false when there is nothing to undo.
func (w *Workspace) Undo() bool {
	w.mu.Lock()
	if w.undo == nil {
		w.mu.Unlock()
		return false
	}
	w.setLocked(*w.undo)
	w.undo = nil
	notify := w.onChange
	w.mu.Unlock()

	if notify != nil {
		notify()
	}
	return true
}

// Reset replaces the tree with the sample quote.
func (w *Workspace) Reset() {
	w.replace(quote.Sample())
}

// New replaces the tree with an empty quote.
func (w *Workspace) New() {
	w.replace(quote.Empty())
}

func (w *Workspace) replace(q quote.Quote) {
	w.mu.Lock()
	w.setLocked(q)
	w.undo = nil
	notify := w.onChange
	w.mu.Unlock()

	if notify != nil {
		notify()
	}
}

func (w *Workspace) setLocked(q quote.Quote) {
	w.current = q
	w.version++
	w.dirty = true
}

// Save writes the current tree to the store. Changes made while the write is
// in flight leave the workspace dirty.
func (w *Workspace) Save(ctx context.Context) error {
	w.mu.Lock()
	snapshot := w.current
	version := w.version
	stamp := w.now()
	w.mu.Unlock()

	if err := w.store.Save(ctx, Draft{SavedAt: stamp, Data: snapshot}); err != nil {
		log.Printf("drafts: save failed: %v", err)
		return fmt.Errorf("save draft: %w", err)
	}

	w.mu.Lock()
	w.savedAt = stamp
	if w.version == version {
		w.dirty = false
	}
	w.mu.Unlock()
	return nil
}

// Reload discards the current tree in favour of the stored draft. When the
// store holds nothing the workspace is left untouched.
func (w *Workspace) Reload(ctx context.Context) error {
	d, err := w.store.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reload draft: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = d.Data
	w.version++
	w.dirty = false
	w.undo = nil
	w.savedAt = d.SavedAt
	if w.savedAt.IsZero() {
		w.savedAt = w.now()
	}
	return nil
}

// Dirty reports whether the tree has changes not yet saved.
func (w *Workspace) Dirty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dirty
}

// Status returns the save state and its label as of now.
func (w *Workspace) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Status{
		Dirty:   w.dirty,
		SavedAt: w.savedAt,
		Label:   SaveLabel(w.dirty, w.savedAt, w.now()),
		CanUndo: w.undo != nil,
	}
}

// SaveLabel renders the save state for display.
func SaveLabel(dirty bool, savedAt, now time.Time) string {
	if dirty {
		return "Unsaved changes"
	}
	if savedAt.IsZero() {
		return "Not saved yet"
	}
	elapsed := int(max(0, now.Sub(savedAt)/time.Second))
	if elapsed < 5 {
		return "Saved just now"
	}
	if elapsed < 60 {
		return fmt.Sprintf("Saved %ds ago", elapsed)
	}
	mins := elapsed / 60
	if mins < 60 {
		return fmt.Sprintf("Saved %dm ago", mins)
	}
	return fmt.Sprintf("Saved %dh ago", mins/60)
}
