package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"autosuggest/internal/eventbus"
	"autosuggest/internal/ui"
)

func newBrowseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Page through the suggestion corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := eventbus.New()
			defer bus.Close()

			cfg, err := loadConfig(cmd, opts, bus)
			if err != nil {
				return err
			}

			logger, closeLog, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			src, err := buildSource(cmd.Context(), cfg, bus, logger)
			if err != nil {
				return err
			}
			content, err := src.corpus()
			if err != nil {
				return err
			}
			return ui.RunPager(strings.NewReader(content))
		},
	}
}
