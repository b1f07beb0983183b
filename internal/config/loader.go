package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Loader reads a YAML dialogue document and watches it for changes.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *Document
	onChange []func(*Document)
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	doc, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = doc
	return l, nil
}

// Path returns the watched file.
func (l *Loader) Path() string { return l.path }

// Config returns the initially loaded document, or the last reload that
// passed validation.
func (l *Loader) Config() *Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the document reloads.
func (l *Loader) OnChange(fn func(*Document)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that hot-reloads the document on file
// changes. Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", l.path, err)
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					if _, err := l.Reload(); err != nil {
						slog.Warn("config reload failed, keeping previous document", "path", l.path, "err", err)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "path", l.path, "err", err)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}

// Reload forces an immediate re-read of the document. A document that fails
// to parse or validate is returned as an error and the previous one is kept.
func (l *Loader) Reload() (*Document, error) {
	doc, err := l.load()
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, fmt.Errorf("reload %s: %w", l.path, err)
	}
	l.mu.Lock()
	l.current = doc
	callbacks := make([]func(*Document), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(doc)
	}
	return doc, nil
}

func (l *Loader) load() (*Document, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", l.path, err)
	}
	return doc, nil
}

// Parse decodes a document and applies defaults.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Server.Addr == "" {
		doc.Server.Addr = ":8080"
	}
	if doc.Server.ReadTimeoutMs == 0 {
		doc.Server.ReadTimeoutMs = 10000
	}
	if doc.Server.WriteTimeoutMs == 0 {
		doc.Server.WriteTimeoutMs = 30000
	}
	return &doc, nil
}
