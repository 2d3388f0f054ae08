package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/janekbaraniewski/ctxline/internal/config"
	"github.com/janekbaraniewski/ctxline/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	if os.Getenv("CTXLINE_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var preview bool

	root := &cobra.Command{
		Use:   "ctxline",
		Short: "ctxline prints how much of the usable context window a coding session has consumed.",
		Long: "ctxline reads the status payload from stdin, measures the session transcript and\n" +
			"prints one status-line segment. Configure it with `ctxline edit`.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runRender(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, preview)
		},
	}
	root.Flags().BoolVar(&preview, "preview", false, "render sample values instead of live usage")

	root.AddCommand(
		newEditCommand(),
		newToggleCommand(),
		newWatchCommand(),
		newVersionCommand(),
	)
	return root
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		return cfg, err
	}
	return cfg, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "ctxline "+version.String())
		},
	}
}
