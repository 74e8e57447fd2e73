package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"autosuggest/internal/config"
	"autosuggest/internal/eventbus"
	"autosuggest/internal/fetch"
	"autosuggest/internal/provider"
)

// sampleWords is used when no word list file is configured
const sampleWords = `# fruit, vegetables and a few cities
fruit: apple
fruit: apricot
fruit: avocado
fruit: banana
fruit: blackberry
fruit: cherry
fruit: grape
fruit: mango
fruit: melon
fruit: orange
fruit: peach
fruit: pear
fruit: plum
vegetable: artichoke
vegetable: asparagus
vegetable: aubergine
vegetable: broccoli
vegetable: carrot
vegetable: celery
vegetable: leek
vegetable: parsnip
vegetable: pepper
vegetable: potato
city: amsterdam
city: athens
city: berlin
city: lisbon
city: madrid
city: paris
city: prague
city: vienna
`

// source is a configured fetcher plus the text the browse pager shows
type source struct {
	fetcher fetch.Fetcher
	corpus  func() (string, error)
}

// buildSource creates the provider chain selected by cfg. Watching stops
// when ctx ends.
func buildSource(ctx context.Context, cfg *config.Config, bus eventbus.EventBus, logger *log.Logger) (*source, error) {
	var (
		fetchers []fetch.Fetcher
		corpora  []func() (string, error)
	)

	kind := cfg.Provider.Kind
	if kind == "words" || kind == "both" {
		words, corpus, err := buildWords(ctx, cfg, bus, logger)
		if err != nil {
			return nil, err
		}
		fetchers = append(fetchers, words)
		corpora = append(corpora, corpus)
	}
	if kind == "files" || kind == "both" {
		files := provider.NewFiles(cfg.Provider.Root, cfg.Provider.Pattern, cfg.Provider.Limit)
		fetchers = append(fetchers, files)
		corpora = append(corpora, func() (string, error) {
			paths, err := files.Paths()
			if err != nil {
				return "", err
			}
			return strings.Join(paths, "\n"), nil
		})
	}
	if len(fetchers) == 0 {
		return nil, fmt.Errorf("unknown provider kind %q", kind)
	}

	f := fetchers[0]
	if len(fetchers) > 1 {
		f = provider.NewMulti(logger.WithPrefix("multi"), fetchers...)
	}

	return &source{
		fetcher: provider.WithLatency(f, cfg.Provider.Latency()),
		corpus: func() (string, error) {
			parts := make([]string, 0, len(corpora))
			for _, c := range corpora {
				text, err := c()
				if err != nil {
					return "", err
				}
				parts = append(parts, strings.TrimRight(text, "\n"))
			}
			return strings.Join(parts, "\n\n"), nil
		},
	}, nil
}

func buildWords(ctx context.Context, cfg *config.Config, bus eventbus.EventBus, logger *log.Logger) (*provider.Words, func() (string, error), error) {
	opts := provider.WordsOptions{
		Limit:  cfg.Provider.Limit,
		Bus:    bus,
		Logger: logger.WithPrefix("words"),
	}

	path := cfg.Provider.WordsFile
	if path == "" {
		entries, err := provider.ParseWords(strings.NewReader(sampleWords))
		if err != nil {
			return nil, nil, err
		}
		return provider.NewWords(entries, opts), func() (string, error) { return sampleWords, nil }, nil
	}

	words, err := provider.LoadWords(path, opts)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Provider.Watch {
		if err := words.Watch(ctx); err != nil {
			logger.Warn("not watching word list", "path", path, "err", err)
		}
	}
	return words, func() (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read word list: %w", err)
		}
		return string(data), nil
	}, nil
}
