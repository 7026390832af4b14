package main

import "github.com/spf13/cobra"

func newRootCommand() *cobra.Command {
	var logLevel string
	var logFormat string

	ctx := newCommandContext(&logLevel, &logFormat)

	rootCmd := &cobra.Command{
		Use:           "uniqueid",
		Short:         "Generate deterministic person identifiers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json, console)")

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newBatchCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}
