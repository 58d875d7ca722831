package theme

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Store keeps the current theme in memory, backed by a YAML file.
type Store struct {
	path string

	mu  sync.RWMutex
	cur Config
}

// Open loads the theme file, writing the defaults when it does not exist.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	cfg, err := readFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default()
		if err := writeFile(path, cfg); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}
	s.cur = cfg
	return s, nil
}

func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Update merges p into the current theme, validates it and persists it.
func (s *Store) Update(p Patch) (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cur.Merge(p)
	if err := next.Validate(); err != nil {
		return Config{}, err
	}
	if err := writeFile(s.path, next); err != nil {
		return Config{}, err
	}
	s.cur = next
	return next, nil
}

// Reload re-reads the file. An invalid file leaves the current theme in
// place and returns the error.
func (s *Store) Reload() (Config, bool, error) {
	cfg, err := readFile(s.path)
	if err != nil {
		return s.Get(), false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	changed := cfg != s.cur
	s.cur = cfg
	return cfg, changed, nil
}

// Watch reloads the theme whenever the file changes on disk and calls
// onChange with the new value. It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create theme watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file by rename.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	name := filepath.Clean(s.path)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				debounce = time.After(100 * time.Millisecond)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("theme watcher error:", err)
		case <-debounce:
			debounce = nil
			cfg, changed, err := s.Reload()
			if err != nil {
				log.Printf("⚠️ Ignoring invalid theme file %s: %v", s.path, err)
				continue
			}
			if changed && onChange != nil {
				onChange(cfg)
			}
		}
	}
}

func readFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse theme file: %w", err)
	}
	cfg = cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("theme file %s: %w", path, err)
	}
	return cfg, nil
}

// writeFile replaces the file atomically so watchers never see a partial
// document.
func writeFile(path string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create theme dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".theme-*.yaml")
	if err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write theme: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write theme: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}
