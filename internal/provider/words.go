// Package provider contains fetch collaborators for the demo application.
package provider

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"autosuggest/internal/domain"
	"autosuggest/internal/eventbus"
)

// DefaultLimit caps the number of suggestions a provider returns
const DefaultLimit = 50

// Words suggests entries of a word list ranked by fuzzy match
type Words struct {
	mu      sync.RWMutex
	path    string
	entries []*domain.Item
	labels  []string
	limit   int
	bus     eventbus.EventBus
	logger  *log.Logger
}

// WordsOptions configures a Words provider
type WordsOptions struct {
	Limit  int
	Bus    eventbus.EventBus
	Logger *log.Logger
}

// NewWords creates a provider over a fixed list
func NewWords(entries []*domain.Item, opts WordsOptions) *Words {
	w := &Words{
		limit:  opts.Limit,
		bus:    opts.Bus,
		logger: opts.Logger,
	}
	if w.limit <= 0 {
		w.limit = DefaultLimit
	}
	if w.logger == nil {
		w.logger = log.Default().WithPrefix("words")
	}
	w.set(entries)
	return w
}

// LoadWords creates a provider from a word list file
func LoadWords(path string, opts WordsOptions) (*Words, error) {
	w := NewWords(nil, opts)
	w.path = path
	if err := w.Reload(); err != nil {
		return nil, err
	}
	return w, nil
}

// ParseWords reads one entry per line. A line of the form "category: word"
// puts the word in a group; blank lines and lines starting with # are
// skipped.
func ParseWords(r io.Reader) ([]*domain.Item, error) {
	var entries []*domain.Item
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		item := &domain.Item{Text: line}
		if category, word, ok := strings.Cut(line, ":"); ok && strings.TrimSpace(word) != "" {
			item.Category = strings.TrimSpace(category)
			item.Text = strings.TrimSpace(word)
		}
		entries = append(entries, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return entries, nil
}

// Reload rereads the word list file
func (w *Words) Reload() error {
	if w.path == "" {
		return nil
	}
	f, err := os.Open(w.path)
	if err != nil {
		return fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	entries, err := ParseWords(f)
	if err != nil {
		return err
	}
	w.set(entries)

	w.logger.Info("word list loaded", "path", w.path, "count", len(entries))
	if w.bus != nil {
		w.bus.Publish(eventbus.CorpusReloadedEvent{Path: w.path, Count: len(entries)})
	}
	return nil
}

func (w *Words) set(entries []*domain.Item) {
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Text
	}
	w.mu.Lock()
	w.entries = entries
	w.labels = labels
	w.mu.Unlock()
}

// Entries returns a snapshot of the word list
func (w *Words) Entries() []*domain.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*domain.Item(nil), w.entries...)
}

// Fetch ranks the word list against text. Groups appear in the order their
// best match ranks; within a group, words keep their rank order.
func (w *Words) Fetch(ctx context.Context, text string) ([]domain.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.RLock()
	matches := fuzzy.RankFindFold(text, w.labels)
	entries := w.entries
	w.mu.RUnlock()

	sort.Stable(matches)

	var groups []string
	byGroup := make(map[string][]domain.Suggestion)
	for _, m := range matches {
		item := entries[m.OriginalIndex]
		if _, seen := byGroup[item.Category]; !seen {
			groups = append(groups, item.Category)
		}
		byGroup[item.Category] = append(byGroup[item.Category], item)
	}

	out := make([]domain.Suggestion, 0, min(len(matches), w.limit))
	for _, g := range groups {
		for _, s := range byGroup[g] {
			if len(out) == w.limit {
				return out, nil
			}
			out = append(out, s)
		}
	}
	return out, nil
}

// Watch reloads the word list whenever its file changes, until ctx ends.
// The parent directory is watched so that editors replacing the file are
// noticed too.
func (w *Words) Watch(ctx context.Context) error {
	if w.path == "" {
		return fmt.Errorf("word list has no file to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	abs, err := filepath.Abs(w.path)
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to resolve %s: %w", w.path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %q: %w", w.path, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := w.Reload(); err != nil {
					w.logger.Warn("failed to reload word list", "err", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.logger.Error("word list watcher failed", "err", err)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
