package main

import (
	"fmt"
	"os"

	"github.com/janekbaraniewski/ctxline/internal/config"
	"github.com/janekbaraniewski/ctxline/internal/tui"
	"github.com/spf13/cobra"
)

func newEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Interactively configure the widget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			item, save, err := tui.RunEditor(newRenderer(os.Stdout), cfg.Item, cfg.Settings)
			if err != nil {
				return err
			}
			if !save {
				return nil
			}
			if err := config.SaveItem(item); err != nil {
				return fmt.Errorf("saving widget: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", config.ConfigPath())
			return nil
		},
	}
}
