package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"fobs/internal/logger"
	"fobs/internal/obsfile"
	"fobs/internal/tui"
)

// newPreviewCmd steps through a conversion in the terminal UI.
func newPreviewCmd() *cobra.Command {
	var logPath string

	cmd := &cobra.Command{
		Use:   "preview <obstable> <actions> [<substitution>...]",
		Short: "Step through a conversion action by action in an interactive TUI",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			// the TUI owns the terminal, so logs only go to a file
			cleanup, err := logger.Setup(logger.Config{Path: obsfile.ExpandPath(logPath), Fallback: io.Discard, Debug: debug})
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer func() { _ = cleanup() }()

			conv, err := convert(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := tui.Run(conv, filepath.Base(args[0])); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&logPath, "log", "l", "", "Path of the log file (default: no logging)")
	return cmd
}
