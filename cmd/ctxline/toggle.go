package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/janekbaraniewski/ctxline/internal/config"
	"github.com/janekbaraniewski/ctxline/internal/core"
	"github.com/janekbaraniewski/ctxline/internal/widgets"
	"github.com/spf13/cobra"
)

var errUnknownAction = errors.New("unknown action")

func newToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <action|key>",
		Short: "Apply one editor action (e.g. toggle-inverse, or its key l) and save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runToggle(cmd.OutOrStdout(), config.ConfigPath(), cfg.Item, args[0])
		},
	}
}

// applyAction resolves arg as a keybind first and as an action name
// otherwise.
func applyAction(w core.Widget, item core.WidgetItem, arg string) (core.WidgetItem, error) {
	action := strings.TrimSpace(arg)
	if a, ok := widgets.ActionForKey(w, action); ok {
		action = a
	}
	next, ok := w.HandleEditorAction(action, item)
	if !ok {
		return item, fmt.Errorf("%w %q", errUnknownAction, arg)
	}
	return next, nil
}

func runToggle(out io.Writer, path string, item core.WidgetItem, arg string) error {
	w, ok := widgets.DefaultRegistry().Get(item.Type)
	if !ok {
		return fmt.Errorf("unknown widget type %q", item.Type)
	}

	next, err := applyAction(w, item, arg)
	if err != nil {
		return err
	}
	if err := config.SaveItemTo(path, next); err != nil {
		return fmt.Errorf("saving widget: %w", err)
	}

	display := w.EditorDisplay(next)
	fmt.Fprintln(out, strings.TrimSpace(display.DisplayText+" "+display.ModifierText))
	return nil
}
