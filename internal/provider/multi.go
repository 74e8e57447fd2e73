package provider

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"autosuggest/internal/domain"
	"autosuggest/internal/fetch"
)

// Multi asks several fetchers at once and concatenates their answers in
// order. Failing members are logged and skipped; the fetch fails only when
// every member does.
type Multi struct {
	Fetchers []fetch.Fetcher
	Logger   *log.Logger
}

// NewMulti combines fetchers
func NewMulti(logger *log.Logger, fetchers ...fetch.Fetcher) *Multi {
	if logger == nil {
		logger = log.Default().WithPrefix("multi")
	}
	return &Multi{Fetchers: fetchers, Logger: logger}
}

func (m *Multi) Fetch(ctx context.Context, text string) ([]domain.Suggestion, error) {
	results := make([][]domain.Suggestion, len(m.Fetchers))
	errs := make([]error, len(m.Fetchers))

	// A plain group: one failing member must not cancel the others. Wait
	// only reports the first error, so each slot keeps its own for the
	// combined report.
	var g errgroup.Group
	for i, f := range m.Fetchers {
		g.Go(func() error {
			res, err := f.Fetch(ctx, text)
			if err != nil {
				errs[i] = fmt.Errorf("fetcher %d: %w", i, err)
				return errs[i]
			}
			results[i] = res
			return nil
		})
	}
	failed := g.Wait() != nil

	var merr *multierror.Error
	var out []domain.Suggestion
	answered := false
	for i := range m.Fetchers {
		if errs[i] != nil {
			merr = multierror.Append(merr, errs[i])
			continue
		}
		if results[i] != nil {
			answered = true
			out = append(out, results[i]...)
		}
	}

	if failed {
		if !answered {
			return nil, merr.ErrorOrNil()
		}
		m.Logger.Warn("partial suggestions", "text", text, "err", merr)
	}
	if answered && out == nil {
		out = []domain.Suggestion{}
	}
	return out, nil
}
