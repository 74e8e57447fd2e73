package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autosuggest/internal/config"
	"autosuggest/internal/domain"
	"autosuggest/internal/eventbus"
	"autosuggest/internal/provider"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func labels(items []domain.Suggestion) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Label()
	}
	return out
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[autocomplete]\nmin_length = 4\nempty_msg = \"none\"\n")

	opts := &options{}
	root := newRootCmd(opts)
	require.NoError(t, root.ParseFlags([]string{
		"--config", path,
		"--min-length", "3",
		"--latency", "250ms",
		"--words", "words.txt",
		"--dir", dir,
	}))

	cfg, err := loadConfig(root, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Autocomplete.MinLength)
	assert.Equal(t, "none", cfg.Autocomplete.EmptyMsg, "unset flags keep the file value")
	assert.Equal(t, 250, cfg.Provider.LatencyMS)
	assert.Equal(t, "both", cfg.Provider.Kind)
	assert.Equal(t, "words.txt", cfg.Provider.WordsFile)
	assert.Equal(t, dir, cfg.Provider.Root)
}

func TestLoadConfigKeepsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[autocomplete]\nmin_length = 4\n")

	opts := &options{}
	root := newRootCmd(opts)
	require.NoError(t, root.ParseFlags([]string{"--config", path}))

	cfg, err := loadConfig(root, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Autocomplete.MinLength)
	assert.Equal(t, "words", cfg.Provider.Kind)
}

func TestLoadConfigPublishesLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "")

	bus := eventbus.New()
	defer bus.Close()
	got := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { got <- e })

	opts := &options{}
	root := newRootCmd(opts)
	require.NoError(t, root.ParseFlags([]string{"--config", path}))
	_, err := loadConfig(root, opts, bus)
	require.NoError(t, err)

	select {
	case e := <-got:
		assert.Equal(t, path, e.(eventbus.ConfigLoadedEvent).Path)
	case <-time.After(time.Second):
		t.Fatal("no config event")
	}
}

func TestLoadConfigRejectsInvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "")

	opts := &options{}
	root := newRootCmd(opts)
	require.NoError(t, root.ParseFlags([]string{"--config", path, "--min-length", "0"}))

	_, err := loadConfig(root, opts, nil)
	assert.ErrorContains(t, err, "min_length")
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	opts := &options{}
	root := newRootCmd(opts)
	require.NoError(t, root.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "nope.toml")}))

	_, err := loadConfig(root, opts, nil)
	assert.Error(t, err)
}

func TestRootHasBrowse(t *testing.T) {
	root := NewRootCmd()

	browse, _, err := root.Find([]string{"browse"})
	require.NoError(t, err)
	assert.Equal(t, "browse", browse.Name())
	assert.NotNil(t, browse.InheritedFlags().Lookup("words"), "persistent flags reach subcommands")
}

func TestSetupLogging(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	cfg := config.DefaultConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "test.log")
	cfg.Log.Level = "debug"

	logger, closeLog, err := setupLogging(cfg)
	require.NoError(t, err)
	logger.Debug("hello", "k", "v")
	closeLog()

	assert.Equal(t, log.DebugLevel, logger.GetLevel())
	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestSetupLoggingBadLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "test.log")
	cfg.Log.Level = "loud"

	_, _, err := setupLogging(cfg)
	assert.Error(t, err)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestBuildSourceSampleWords(t *testing.T) {
	cfg := config.DefaultConfig()

	src, err := buildSource(context.Background(), cfg, nil, quietLogger())
	require.NoError(t, err)

	items, err := src.fetcher.Fetch(context.Background(), "apric")
	require.NoError(t, err)
	assert.Contains(t, labels(items), "apricot")

	corpus, err := src.corpus()
	require.NoError(t, err)
	assert.Equal(t, strings.TrimRight(sampleWords, "\n"), corpus)
}

func TestBuildSourceBoth(t *testing.T) {
	wordsPath := filepath.Join(t.TempDir(), "words.txt")
	writeFile(t, wordsPath, "fruit: quince\n")
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docs", "quince.md"), "")

	cfg := config.DefaultConfig()
	cfg.Provider.Kind = "both"
	cfg.Provider.WordsFile = wordsPath
	cfg.Provider.Root = root

	src, err := buildSource(context.Background(), cfg, nil, quietLogger())
	require.NoError(t, err)

	items, err := src.fetcher.Fetch(context.Background(), "quince")
	require.NoError(t, err)
	assert.Equal(t, []string{"quince", "quince.md"}, labels(items))

	corpus, err := src.corpus()
	require.NoError(t, err)
	assert.Equal(t, "fruit: quince\n\ndocs/quince.md", corpus)
}

func TestBuildSourceLatency(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.LatencyMS = 5

	src, err := buildSource(context.Background(), cfg, nil, quietLogger())
	require.NoError(t, err)

	assert.IsType(t, &provider.Latency{}, src.fetcher)
}

func TestBuildSourceMissingWordsFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider.WordsFile = filepath.Join(t.TempDir(), "missing.txt")

	_, err := buildSource(context.Background(), cfg, nil, quietLogger())
	assert.Error(t, err)
}
