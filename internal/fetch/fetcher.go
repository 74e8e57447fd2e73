package fetch

import (
	"context"
	"sync"

	"autosuggest/internal/domain"
)

// Fetcher supplies suggestions for the current input text.
//
// A nil slice with a nil error means "no answer" and leaves the session
// untouched; an empty non-nil slice is an empty result.
type Fetcher interface {
	Fetch(ctx context.Context, text string) ([]domain.Suggestion, error)
}

// FetchFunc adapts a function to the Fetcher interface
type FetchFunc func(ctx context.Context, text string) ([]domain.Suggestion, error)

func (f FetchFunc) Fetch(ctx context.Context, text string) ([]domain.Suggestion, error) {
	return f(ctx, text)
}

// Continuation adapts a callback style collaborator that hands its result to
// done. Only the first call to done counts. If done is never called the fetch
// resolves when ctx ends.
type Continuation func(text string, done func([]domain.Suggestion))

func (c Continuation) Fetch(ctx context.Context, text string) ([]domain.Suggestion, error) {
	ch := make(chan []domain.Suggestion, 1)
	var once sync.Once
	c(text, func(items []domain.Suggestion) {
		once.Do(func() { ch <- items })
	})

	select {
	case items := <-ch:
		return items, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
