package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autosuggest/internal/eventbus"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 2, cfg.Autocomplete.MinLength)
	assert.Equal(t, 200*time.Millisecond, cfg.Autocomplete.BlurDelay())
	assert.Zero(t, cfg.Autocomplete.FetchTimeout())
	assert.Equal(t, "words", cfg.Provider.Kind)
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	svc := NewConfigService()

	cfg := DefaultConfig()
	cfg.Autocomplete.EmptyMsg = "No matches"
	cfg.Autocomplete.ClassName = "soft"
	cfg.Provider.Kind = "files"
	cfg.Provider.LatencyMS = 300
	cfg.Classes["soft"] = ClassConfig{Border: "rounded", BorderColor: "63"}

	require.NoError(t, svc.SaveToPath(cfg, path))
	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
	assert.Equal(t, 300*time.Millisecond, loaded.Provider.Latency())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[autocomplete]
min_length = 3
empty_msg = "Nothing found"

[classes.loud]
border = "thick"
foreground = "#ff0000"
`), 0644))

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Autocomplete.MinLength)
	assert.Equal(t, "Nothing found", cfg.Autocomplete.EmptyMsg)
	assert.Equal(t, 200, cfg.Autocomplete.BlurDelayMS)
	assert.Equal(t, "words", cfg.Provider.Kind)
	assert.Equal(t, "autosuggest.log", cfg.Log.File)

	class, err := cfg.Classes["loud"].Class()
	require.NoError(t, err)
	require.NotNil(t, class.Border)
	assert.Equal(t, lipgloss.ThickBorder(), *class.Border)
	assert.Equal(t, lipgloss.Color("#ff0000"), class.Foreground)
	assert.Nil(t, class.Background)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewConfigService().LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad toml":       "[autocomplete\n",
		"unknown kind":   "[provider]\nkind = \"ftp\"\n",
		"zero min":       "[autocomplete]\nmin_length = 0\n",
		"unknown border": "[classes.x]\nborder = \"wavy\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := NewConfigService().LoadFromPath(path)

			assert.Error(t, err)
		})
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	svc := &configService{filePath: filepath.Join(t.TempDir(), "config.toml")}

	cfg, err := svc.Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveUsesServicePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := &configService{filePath: path}

	require.NoError(t, svc.Save(DefaultConfig()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestEventsPublished(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.DomainEvent, 2)
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) { got <- e })
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { got <- e })

	path := filepath.Join(t.TempDir(), FileName)
	svc := &configService{bus: bus}
	require.NoError(t, svc.SaveToPath(DefaultConfig(), path))
	_, err := svc.LoadFromPath(path)
	require.NoError(t, err)

	for _, want := range []eventbus.DomainEvent{
		eventbus.ConfigSavedEvent{Path: path},
		eventbus.ConfigLoadedEvent{Path: path},
	} {
		select {
		case e := <-got:
			assert.Equal(t, want, e)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %T", want)
		}
	}
}
