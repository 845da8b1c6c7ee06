package drafts

import (
	"context"
	"sync"
	"time"
)

// Registry keeps one open workspace per draft id so that concurrent requests
// for the same quote share its undo snapshot and autosaver.
type Registry struct {
	open  func(id string) Store
	delay time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	ws    *Workspace
	saver *Autosaver
}

// NewRegistry returns a registry that opens stores with open and autosaves
// after delay.
func NewRegistry(open func(id string) Store, delay time.Duration) *Registry {
	return &Registry{open: open, delay: delay, entries: map[string]*entry{}}
}

// Get returns the workspace for id, opening it on first use.
func (r *Registry) Get(ctx context.Context, id string) (*Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		return e.ws, nil
	}
	ws, err := Open(ctx, r.open(id))
	if err != nil {
		return nil, err
	}
	r.entries[id] = &entry{ws: ws, saver: NewAutosaver(ws, r.delay)}
	return ws, nil
}

// Forget closes the workspace for id, if open, without saving it.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()

	if ok {
		e.saver.Stop()
	}
}

// Close flushes and closes every open workspace.
func (r *Registry) Close(ctx context.Context) {
	r.mu.Lock()
	entries := r.entries
	r.entries = map[string]*entry{}
	r.mu.Unlock()

	for _, e := range entries {
		e.saver.Close(ctx)
	}
}
