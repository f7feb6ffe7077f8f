// Package main provides the CLI entry point for pldgen.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	ctx := logger.WithContext(context.Background())

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("pldgen failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	rootCmd := &cobra.Command{
		Use:   "pldgen [rules.xlsx]",
		Short: "Generate a PLD workbook from a rules workbook",
		Long: `pldgen reads a rules workbook (Rules-Keyword, Rules-PCRF, Rules-Cases-*, ...)
and writes PLD_<ID>_<POID>.xlsx with the full PLD sheet set.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}
	opts.addFlags(rootCmd)
	return rootCmd
}
