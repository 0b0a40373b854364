package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fobs/internal/actions"
	"fobs/internal/core"
	"fobs/internal/logger"
	"fobs/internal/obsfile"
	"fobs/internal/substitute"
	"fobs/pkg/obstable"
)

// version is overridden at build time with -ldflags "-X fobs/cmd/fobs/cmd.version=...".
var version = "0.2"

// rootOptions holds the flags of the convert command.
type rootOptions struct {
	force bool
	out   string
	log   string
	diff  bool
	debug bool
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "fobs <obstable> <actions> [<substitution>...]",
		Short: "Convert a 45m/ASTE obstable to one for FMLO observation",
		Long: `fobs applies the actions listed in a YAML file to an obstable (*.start),
then replaces every <param> token with the value of a param=value substitution.

The converted obstable is printed to standard output unless --out is given.`,
		Version:      version,
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cleanup, err := logger.Setup(logger.Config{
				Path:     obsfile.ExpandPath(opts.log),
				Fallback: cmd.ErrOrStderr(),
				Debug:    opts.debug,
			})
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer func() { _ = cleanup() }()

			conv, err := convert(cmd.Context(), args)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), args[0], conv, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Force to overwrite an existing converted obstable")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Path of the converted obstable (default: standard output)")
	cmd.Flags().StringVarP(&opts.log, "log", "l", "", "Path of the log file (default: standard error)")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "Output a unified diff against the original instead of the obstable")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log every applied action")

	cmd.AddCommand(newPreviewCmd(), newLintCmd())
	return cmd
}

// convert reads the obstable and actions named by args and runs the
// conversion, substitutions included.
func convert(ctx context.Context, args []string) (*core.Conversion, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.L()

	doc, err := obsfile.Read(args[0])
	if err != nil {
		return nil, err
	}
	acts, err := actions.Load(obsfile.ExpandPath(args[1]))
	if err != nil {
		return nil, err
	}
	log.Info("converting obstable", "obstable", args[0], "actions", args[1], "count", len(acts))

	return core.Convert(ctx, doc, core.Options{
		Actions:       acts,
		Substitutions: substitute.Parse(args[2:], log),
		Logger:        log,
	})
}

func writeResult(stdout io.Writer, source string, conv *core.Conversion, opts rootOptions) error {
	log := logger.L()

	if opts.diff {
		diff, err := obsfile.UnifiedDiff(conv.Source, conv.Result(), source, "converted")
		if err != nil {
			return fmt.Errorf("failed to diff obstables: %w", err)
		}
		if opts.out == "" {
			if obsfile.IsTerminal(stdout) {
				diff = obsfile.Colorize(diff)
			}
			_, err = io.WriteString(stdout, diff)
			return err
		}
		return writeFile(opts.out, obstable.Parse(diff), opts.force)
	}

	if opts.out == "" {
		return obsfile.Print(stdout, conv.Result())
	}
	if err := writeFile(opts.out, conv.Result(), opts.force); err != nil {
		return err
	}
	log.Info("converted obstable written", "path", opts.out)
	return nil
}

// writeFile refuses to clobber an existing file without force. That case is
// logged, not returned, so the command still exits 0.
func writeFile(path string, doc obstable.Document, force bool) error {
	err := obsfile.Write(path, doc, force)
	if errors.Is(err, obstable.ErrExists) {
		logger.L().Warn(fmt.Sprintf("%s already exists", path))
		logger.L().Warn("use -f option to overwrite it")
		return nil
	}
	return err
}
