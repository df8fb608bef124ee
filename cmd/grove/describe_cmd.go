package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type describeCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
}

func describeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &describeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe the features of a data file",
		Long:  `Load a data file and print, for every feature, its kind and summary statistics: real (non-missing) sample count, category count for categorical features and token-set entropy for textual ones`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.Validate(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				cmd.Usage()
				os.Exit(1)
			}
			logger := config.Logger()
			t, err := loadTable(config.dataInput, config.metadataInput, false)
			if err != nil {
				logger.Error().Err(err).Msg("loading data")
				os.Exit(2)
			}
			logger.Info().
				Int("features", t.FeatureCount()).
				Int("samples", t.SampleCount()).
				Msg("loaded table")

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "FEATURE\tKIND\tREAL SAMPLES\tDETAIL")
			for i := 0; i < t.FeatureCount(); i++ {
				detail := ""
				switch {
				case t.IsCategorical(i):
					detail = fmt.Sprintf("%d categories", t.NCategories(i))
				case t.IsTextual(i):
					detail = fmt.Sprintf("entropy %.4f", t.FeatureEntropy(i))
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					t.FeatureName(i), t.Feature(i).Kind(), t.NRealSamples(i), detail)
			}
			w.Flush()
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to the data file to describe (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YAML file declaring feature kinds (required for CSV input)")
	return cmd
}

func (dcc *describeCmdConfig) Validate() error {
	if dcc.dataInput == "" {
		return fmt.Errorf("required input data file flag is missing")
	}
	return nil
}
