package web

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/FocuswithJustin/havarot/core/havarot"
	"github.com/FocuswithJustin/havarot/internal/corpus"
	"github.com/FocuswithJustin/havarot/internal/logging"
	"github.com/FocuswithJustin/havarot/internal/store"
)

// defaultDebounce is how long the watcher waits for more changes
// before re-analyzing.
const defaultDebounce = 500 * time.Millisecond

// Watcher re-analyzes corpus files when they change and broadcasts the
// results over the WebSocket hub.
type Watcher struct {
	watcher  *fsnotify.Watcher
	hub      *Hub
	st       *store.Store
	opts     *havarot.Options
	preset   string
	debounce time.Duration

	// watched maps absolute corpus paths to their original pattern
	// paths, so re-analysis reads the same path the corpus loader saw.
	watched map[string]string

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]struct{}
}

// NewWatcher resolves the corpus patterns and prepares watches on the
// directories containing the matched files.
func NewWatcher(patterns []string, debounce time.Duration, hub *Hub, st *store.Store, opts *havarot.Options, preset string) (*Watcher, error) {
	files, err := corpus.ExpandGlobs(patterns)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		watcher:  fsw,
		hub:      hub,
		st:       st,
		opts:     opts,
		preset:   preset,
		debounce: debounce,
		watched:  make(map[string]string),
		pending:  make(map[string]struct{}),
	}

	// fsnotify watches directories; editors replace files on save, so
	// watching the file inode directly would lose it after one write.
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.watched[abs] = f
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Start begins watching. The watcher stops when ctx is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	go w.run(ctx)

	logging.Info("corpus watcher started",
		"files", len(w.watched),
		"debounce", w.debounce)
	return nil
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// run handles filesystem events with debouncing.
func (w *Watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleEvent records a change to a watched corpus file.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	path, ok := w.watched[abs]
	if !ok {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = struct{}{}
	w.pendingMu.Unlock()

	logging.WatchEvent(path, event.Op.String())
}

// flushPending re-analyzes every file that changed since the last tick.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	pending := w.pending
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	for path := range pending {
		w.analyzeFile(path)
	}
}

// analyzeFile reads a corpus file, syllabifies every unit, records a
// run when a store is configured, and broadcasts the result.
func (w *Watcher) analyzeFile(path string) {
	started := time.Now()

	doc, err := corpus.ReadFile(path)
	if err != nil {
		logging.AnalysisError(path, "read", err)
		w.broadcastError(path, err)
		return
	}

	var run *store.Run
	if w.st != nil {
		run, err = w.st.BeginRun(doc.Path, w.preset, doc.Hash)
		if err != nil {
			logging.AnalysisError(path, "begin_run", err)
			w.broadcastError(path, err)
			return
		}
	}

	var words, syllables int
	for _, unit := range doc.Units {
		text, err := havarot.NewText(unit.Text, w.opts)
		if err != nil {
			logging.AnalysisError(path, "syllabify", err, "ref", unit.Ref)
			continue
		}
		words += len(text.Words())
		syllables += len(text.Syllables())

		if run != nil {
			if _, err := w.st.InsertWords(run.ID, unit.Ref, text.Words()); err != nil {
				logging.AnalysisError(path, "store", err, "ref", unit.Ref)
			}
		}
	}

	if run != nil {
		if err := w.st.FinishRun(run.ID, words, syllables); err != nil {
			logging.AnalysisError(path, "finish_run", err)
		}
		invalidateStoreCaches()
	}

	logging.AnalysisEvent(path, words, syllables, time.Since(started))
	if w.hub != nil {
		w.hub.Broadcast(AnalysisMessage{
			Type:      "analysis",
			Source:    path,
			Words:     words,
			Syllables: syllables,
		})
	}
}

func (w *Watcher) broadcastError(path string, err error) {
	if w.hub == nil {
		return
	}
	w.hub.Broadcast(AnalysisMessage{
		Type:    "error",
		Source:  path,
		Message: err.Error(),
	})
}
