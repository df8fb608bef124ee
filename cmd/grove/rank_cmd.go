package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovelab/grove"
	"github.com/grovelab/grove/random"
	"github.com/grovelab/grove/table"
)

type rankCmdConfig struct {
	*rootCmdConfig
	dataInput       string
	metadataInput   string
	target          string
	minSamples      int
	contrasts       bool
	seed            uint64
	sampleFraction  float64
	withReplacement bool
}

func rankCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &rankCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank features by split quality against a target",
		Long:  `Load a data file, draw a bootstrap sample of the rows with a real target value, and rank every other feature by the impurity reduction of its best split against the target. With contrasts enabled, shadow copies of every feature are permuted and ranked alongside the originals as a noise baseline`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.Validate(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				cmd.Usage()
				os.Exit(1)
			}
			logger := config.Logger()
			t, err := loadTable(config.dataInput, config.metadataInput, config.contrasts)
			if err != nil {
				logger.Error().Err(err).Msg("loading data")
				os.Exit(2)
			}
			targetIdx := t.FeatureIndex(config.target)
			if targetIdx == table.NotFound {
				logger.Error().Str("target", config.target).Msg("target feature not found")
				os.Exit(3)
			}
			if t.IsTextual(targetIdx) {
				logger.Error().Str("target", config.target).Msg("cannot rank against a textual target")
				os.Exit(3)
			}

			r := random.New(config.seed)
			if config.contrasts {
				t.PermuteContrasts(r)
			}
			inBag, outOfBag, err := t.Bootstrap(r, config.withReplacement, config.sampleFraction, targetIdx)
			if err != nil {
				logger.Error().Err(err).Msg("drawing bootstrap sample")
				os.Exit(3)
			}
			logger.Info().
				Int("inBag", len(inBag)).
				Int("outOfBag", len(outOfBag)).
				Msg("drew bootstrap sample")

			scores, err := rankFeatures(t, targetIdx, config.minSamples, inBag, r)
			if err != nil {
				logger.Error().Err(err).Msg("ranking features")
				os.Exit(4)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "FEATURE\tDELTA IMPURITY")
			for _, s := range scores {
				fmt.Fprintf(w, "%s\t%g\n", s.name, s.deltaImpurity)
			}
			w.Flush()
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to the data file to rank (required)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YAML file declaring feature kinds (required for CSV input)")
	cmd.PersistentFlags().StringVarP(&(config.target), "target", "t", "", "name of the target feature (required)")
	cmd.PersistentFlags().IntVarP(&(config.minSamples), "min-samples", "n", 1, "minimum number of samples on each side of a split")
	cmd.PersistentFlags().BoolVarP(&(config.contrasts), "contrasts", "c", false, "rank permuted shadow copies of the features as a noise baseline")
	cmd.PersistentFlags().Uint64VarP(&(config.seed), "seed", "s", 0, "seed for the random source")
	cmd.PersistentFlags().Float64VarP(&(config.sampleFraction), "sample-fraction", "f", 1.0, "fraction of the real samples to draw into the bootstrap sample")
	cmd.PersistentFlags().BoolVarP(&(config.withReplacement), "with-replacement", "r", true, "draw the bootstrap sample with replacement")
	return cmd
}

func (rcc *rankCmdConfig) Validate() error {
	if rcc.dataInput == "" {
		return fmt.Errorf("required input data file flag is missing")
	}
	if rcc.target == "" {
		return fmt.Errorf("required target feature flag is missing")
	}
	if rcc.minSamples < 1 {
		return fmt.Errorf("min-samples must be at least 1")
	}
	return nil
}

type featureScore struct {
	name          string
	deltaImpurity float64
}

/*
rankFeatures evaluates the best split of every feature but the target
over the given sample-index list and returns the scores sorted by
descending impurity reduction. Each evaluation works on its own copy of
the index list, since split searches compact it in place.
*/
func rankFeatures(t *table.Table, targetIdx, minSamples int, samples []int, r random.Source) ([]featureScore, error) {
	total := t.FeatureCount()
	if t.HasContrasts() {
		total *= 2
	}
	scores := make([]featureScore, 0, total-1)
	for i := 0; i < total; i++ {
		if i == targetIdx {
			continue
		}
		node := make([]int, len(samples))
		copy(node, samples)

		var split *grove.Split
		var err error
		switch {
		case t.IsNumerical(i):
			split, err = grove.NumericSplit(t, targetIdx, i, minSamples, node)
		case t.IsCategorical(i):
			split, err = grove.CategoricalSplit(t, targetIdx, i, minSamples, node)
		default:
			token, ok := pickToken(t, i, node, r)
			if !ok {
				scores = append(scores, featureScore{name: t.FeatureName(i)})
				continue
			}
			split, err = grove.TextualSplit(t, targetIdx, i, token, minSamples, node)
		}
		if err != nil {
			return nil, fmt.Errorf("evaluating feature %s: %v", t.FeatureName(i), err)
		}
		scores = append(scores, featureScore{name: t.FeatureName(i), deltaImpurity: split.DeltaImpurity})
	}
	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].deltaImpurity > scores[b].deltaImpurity
	})
	return scores, nil
}

// pickToken draws a candidate hash token for a textual feature from the
// token set of a random sample in the node.
func pickToken(t *table.Table, featureIdx int, samples []int, r random.Source) (uint32, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	f := t.Feature(featureIdx)
	idx := samples[r.Intn(len(samples))]
	return f.TokenAt(idx, uint(r.Intn(math.MaxInt32)))
}
