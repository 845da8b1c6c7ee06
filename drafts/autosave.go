package drafts

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultAutosaveDelay is how long the tree must stay unchanged before it is
// written out.
const DefaultAutosaveDelay = 900 * time.Millisecond

// saveTimeout bounds a single background save.
const saveTimeout = 5 * time.Second

// Autosaver saves a workspace once edits have paused for the configured
// delay. Each change restarts the countdown.
type Autosaver struct {
	ws    *Workspace
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	wg     sync.WaitGroup
}

// NewAutosaver attaches a debounced saver to ws. A non-positive delay uses
// DefaultAutosaveDelay.
func NewAutosaver(ws *Workspace, delay time.Duration) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	a := &Autosaver{ws: ws, delay: delay}

	ws.mu.Lock()
	ws.onChange = a.Touch
	ws.mu.Unlock()
	return a
}

// Touch schedules a save after the delay, cancelling any pending one.
func (a *Autosaver) Touch() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	if a.timer != nil && a.timer.Stop() {
		a.wg.Done()
	}
	a.wg.Add(1)
	a.timer = time.AfterFunc(a.delay, func() {
		defer a.wg.Done()
		a.flush(context.Background())
	})
}

func (a *Autosaver) flush(ctx context.Context) {
	if !a.ws.Dirty() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	if err := a.ws.Save(ctx); err != nil {
		log.Printf("drafts: autosave: %v", err)
	}
}

// Stop cancels any pending save and detaches the saver from its workspace.
// Unsaved changes are left unsaved.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	if a.timer != nil && a.timer.Stop() {
		a.wg.Done()
	}
	a.mu.Unlock()

	a.ws.mu.Lock()
	a.ws.onChange = nil
	a.ws.mu.Unlock()
}

// Close stops the saver and flushes any unsaved changes.
func (a *Autosaver) Close(ctx context.Context) {
	a.Stop()
	a.wg.Wait()
	a.flush(ctx)
}
