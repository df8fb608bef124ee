package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "grove",
		Short: "grove is a tool to inspect tabular data for tree induction",
		Long:  `A tool to load AFM, ARFF and schema-typed CSV data files, describe their features, and rank candidate features by split quality against a target`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), describeCmd(config), rankCmd(config))
	return rootCmd
}

func (rcc *rootCmdConfig) Logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if rcc.verbose {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
