package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/bjaus/nbhtml"
)

var tableFormats = []nbhtml.Format{nbhtml.HTML, nbhtml.Text, nbhtml.Bundle}

// NewTableCommand creates the table command.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "table <file>",
		Short: "Render a dataset as HTML tables",
		Long: `Render a dataset or data array file as HTML tables.

Variables are grouped into the data array itself, 0-D variables and one
table per dimension for 1-D variables.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := nbhtml.ParseFormat(format)
			if err != nil || !slices.Contains(tableFormats, f) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", format, tableFormats))
			}
			in, err := rootOpts.load(args[0])
			if err != nil {
				return err
			}
			return rootOpts.render(cmd.OutOrStdout(), f, in)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", nbhtml.HTML.String(), "output format (html|text|bundle)")

	return cmd
}

// NewReprCommand creates the repr command.
func NewReprCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "repr <file>",
		Short:         "Render a collapsible HTML view",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := rootOpts.load(args[0])
			if err != nil {
				return err
			}
			return rootOpts.render(cmd.OutOrStdout(), nbhtml.Repr, in)
		},
	}
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "classify <file>",
		Short:         "Print the display groups as YAML",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := rootOpts.load(args[0])
			if err != nil {
				return err
			}
			return rootOpts.render(cmd.OutOrStdout(), nbhtml.YAML, in)
		},
	}
}
