package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bjaus/nbhtml"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Precision int
	Preview   int

	logger *slog.Logger
}

// NewRootCommand creates the root command for the nbhtml CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "nbhtml",
		Short:         "Render datasets as notebook HTML",
		Long:          "Render labeled n-dimensional datasets and data arrays as HTML tables and collapsible views.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Precision < 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid precision %d: must not be negative", opts.Precision))
			}
			if opts.Preview < 1 {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid preview length %d: must be positive", opts.Preview))
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().IntVarP(&opts.Precision, "precision", "p", nbhtml.DefaultPrecision, "digits used when formatting floats")
	cmd.PersistentFlags().IntVar(&opts.Preview, "preview", nbhtml.DefaultPreviewLength, "values shown per variable in the collapsible view")

	cmd.AddCommand(NewTableCommand(opts))
	cmd.AddCommand(NewReprCommand(opts))
	cmd.AddCommand(NewClassifyCommand(opts))

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *RootOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

func (o *RootOptions) renderOptions() []nbhtml.Option {
	return []nbhtml.Option{
		nbhtml.WithPrecision(o.Precision),
		nbhtml.WithPreviewLength(o.Preview),
	}
}

// load reads the input file and maps failures to ExitCommandError.
func (o *RootOptions) load(path string) (nbhtml.Input, error) {
	o.log().Debug("loading input", "path", path)
	in, err := nbhtml.LoadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot load "+path, err)
	}
	return in, nil
}

// render writes in using format f and maps failures to ExitFailure.
func (o *RootOptions) render(w io.Writer, f nbhtml.Format, in nbhtml.Input) error {
	o.log().Debug("rendering", "format", f.String(), "precision", o.Precision)
	out, err := nbhtml.Marshal(f, in, o.renderOptions()...)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot render "+f.String(), err)
	}
	if _, err := w.Write(out); err != nil {
		return WrapExitError(ExitFailure, "cannot write output", err)
	}
	o.log().Debug("rendered", "bytes", len(out))
	return nil
}
