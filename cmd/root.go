// Package cmd wires the autosuggest demo into a command line program.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"autosuggest/internal/config"
	"autosuggest/internal/eventbus"
	"autosuggest/internal/ui"
)

type options struct {
	configPath string
	minLength  int
	emptyMsg   string
	words      string
	dir        string
	latency    time.Duration
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "autosuggest",
		Short:         "Suggestion dropdown for a terminal input",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default ./"+config.FileName+" or the user config)")
	flags.IntVar(&opts.minLength, "min-length", 0, "Characters typed before suggestions are requested")
	flags.StringVar(&opts.emptyMsg, "empty-msg", "", "Message shown when nothing matches")
	flags.StringVarP(&opts.words, "words", "w", "", "Word list file, one \"category: word\" per line")
	flags.StringVarP(&opts.dir, "dir", "d", "", "Suggest file paths below this directory")
	flags.DurationVar(&opts.latency, "latency", 0, "Artificial delay added to every fetch")

	rootCmd.AddCommand(newBrowseCmd(opts))
	return rootCmd
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(cmd *cobra.Command, opts *options, bus eventbus.EventBus) (*config.Config, error) {
	svc := config.NewConfigServiceWithBus(bus)

	var (
		cfg *config.Config
		err error
	)
	switch {
	case opts.configPath != "":
		cfg, err = svc.LoadFromPath(opts.configPath)
	default:
		if _, statErr := os.Stat(config.FileName); statErr == nil {
			cfg, err = svc.LoadFromPath(config.FileName)
		} else if errors.Is(statErr, fs.ErrNotExist) {
			cfg, err = svc.Load()
		} else {
			err = statErr
		}
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("min-length") {
		cfg.Autocomplete.MinLength = opts.minLength
	}
	if flags.Changed("empty-msg") {
		cfg.Autocomplete.EmptyMsg = opts.emptyMsg
	}
	if flags.Changed("latency") {
		cfg.Provider.LatencyMS = int(opts.latency / time.Millisecond)
	}
	if opts.words != "" {
		cfg.Provider.WordsFile = opts.words
		cfg.Provider.Kind = "words"
	}
	if opts.dir != "" {
		cfg.Provider.Root = opts.dir
		cfg.Provider.Kind = "files"
		if opts.words != "" {
			cfg.Provider.Kind = "both"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging points a logger at the configured file. The returned
// function closes it.
func setupLogging(cfg *config.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	log.SetDefault(logger)
	return logger, func() { _ = logFile.Close() }, nil
}

var forwardedEvents = []eventbus.EventType{
	eventbus.EventSuggestionsShown,
	eventbus.EventSuggestionSelected,
	eventbus.EventFetchDiscarded,
	eventbus.EventFetchFailed,
	eventbus.EventConfigLoaded,
	eventbus.EventCorpusReloaded,
}

func runDemo(cmd *cobra.Command, opts *options) error {
	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	// Subscribe before loading so the config event is buffered for the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			log.Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	for _, t := range forwardedEvents {
		defer bus.Subscribe(t, forward)()
	}

	cfg, err := loadConfig(cmd, opts, bus)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := buildSource(ctx, cfg, bus, logger)
	if err != nil {
		return err
	}

	zones := zone.New()
	defer zones.Close()

	uiModel, err := ui.NewModel(ui.Options{
		Bus:     bus,
		Config:  cfg,
		Fetcher: src.fetcher,
		Zones:   zones,
		Logger:  logger,
		Corpus:  src.corpus,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(uiModel,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	uiModel.SetProgram(p)

	// Start forwarding events to UI in background
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	logger.Info("starting", "provider", cfg.Provider.Kind, "min_length", cfg.Autocomplete.MinLength)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
