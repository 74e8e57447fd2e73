package provider

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"autosuggest/internal/domain"
)

// Files suggests paths below Root matching Pattern, grouped by directory.
// The tree is scanned once on first use.
type Files struct {
	Root    string
	Pattern string
	Limit   int

	once  sync.Once
	items []*domain.Item
	err   error
}

// NewFiles creates a file provider
func NewFiles(root, pattern string, limit int) *Files {
	return &Files{Root: root, Pattern: pattern, Limit: limit}
}

func (f *Files) load() {
	pattern := f.Pattern
	if pattern == "" {
		pattern = "**/*"
	}
	if !doublestar.ValidatePattern(pattern) {
		f.err = fmt.Errorf("invalid pattern %q", pattern)
		return
	}

	paths, err := doublestar.Glob(os.DirFS(f.Root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		f.err = fmt.Errorf("failed to scan %s: %w", f.Root, err)
		return
	}

	sort.Slice(paths, func(i, j int) bool {
		di, dj := path.Dir(paths[i]), path.Dir(paths[j])
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})

	f.items = make([]*domain.Item, len(paths))
	for i, p := range paths {
		f.items[i] = &domain.Item{
			Text:     path.Base(p),
			Category: path.Dir(p),
			Value:    p,
		}
	}
}

// Paths returns every path the provider knows
func (f *Files) Paths() ([]string, error) {
	f.once.Do(f.load)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, len(f.items))
	for i, it := range f.items {
		out[i] = it.Value
	}
	return out, nil
}

// Fetch returns the paths containing text, ignoring case
func (f *Files) Fetch(ctx context.Context, text string) ([]domain.Suggestion, error) {
	f.once.Do(f.load)
	if f.err != nil {
		return nil, f.err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := strings.ToLower(text)
	out := make([]domain.Suggestion, 0)
	for _, it := range f.items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !strings.Contains(strings.ToLower(it.Value), query) {
			continue
		}
		out = append(out, it)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
