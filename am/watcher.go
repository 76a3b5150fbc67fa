package am

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/dojodts/errors"
	"github.com/teranos/dojodts/logger"
)

// Watcher watches the configuration files and the inputs they name, and
// calls back with a freshly loaded config once changes settle.
type Watcher struct {
	watcher        *fsnotify.Watcher
	files          map[string]bool // absolute paths
	callbacks      []ChangeCallback
	mu             sync.Mutex
	pending        map[string]bool
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	load           func() (*Config, error)
	log            *zap.SugaredLogger
}

// ChangeCallback is called after a debounced batch of changes with the
// reloaded config and the changed files, sorted.
type ChangeCallback func(cfg *Config, changed []string) error

// NewWatcher watches files. Parent directories are watched rather than the
// files themselves so that editors replacing a file by rename are noticed.
func NewWatcher(files []string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		watcher:        fw,
		files:          make(map[string]bool),
		pending:        make(map[string]bool),
		debouncePeriod: debounce,
		load:           reloadGlobal,
		log:            logger.ComponentLogger("watch"),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", f)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}

	return w, nil
}

// WatchConfig watches the existing configuration files, any extra files and
// cfg's inputs
func WatchConfig(cfg *Config, extra ...string) (*Watcher, error) {
	files := append(ConfigFiles(), extra...)
	files = append(files, cfg.InputFiles()...)
	return NewWatcher(files, cfg.Debounce())
}

// Files returns the watched files, sorted
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// OnChange registers a callback
func (w *Watcher) OnChange(callback ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops watching and cancels a pending reload
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("Change detected",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.schedule(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// relevant reports whether event touches a watched file with a content change
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	if isEditorTempFile(event.Name) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

// schedule debounces rapid changes into one reload
func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	abs, _ := filepath.Abs(name)
	w.pending[abs] = true

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.fire)
}

// fire reloads the configuration and runs every callback
func (w *Watcher) fire() {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for f := range w.pending {
		changed = append(changed, f)
	}
	w.pending = make(map[string]bool)
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()
	sort.Strings(changed)

	cfg, err := w.load()
	if err != nil {
		w.log.Errorw("Config reload failed", logger.FieldError, err)
		return
	}

	w.log.Infow("Inputs changed",
		logger.FieldCount, len(changed),
		logger.FieldFile, strings.Join(changed, ","))

	for _, callback := range callbacks {
		if err := callback(cfg, changed); err != nil {
			// Remaining callbacks still run
			w.log.Warnw("Change callback failed", logger.FieldError, err)
		}
	}
}

func reloadGlobal() (*Config, error) {
	Reset()
	cfg, err := Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// isEditorTempFile matches swap and backup files written next to the real one
func isEditorTempFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#")
}
