package grove_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grovelab/grove"
	"github.com/grovelab/grove/feature"
	"github.com/grovelab/grove/table"
)

func newSplitTable(t *testing.T, features ...*feature.Feature) *table.Table {
	t.Helper()
	tbl, err := table.New(features, nil, false)
	require.NoError(t, err)
	return tbl
}

func allSamples(tbl *table.Table) []int {
	indices := make([]int, tbl.SampleCount())
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func TestNumericSplitDeterministic(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{1, 2, 3, 4, 10, 11, 12, 13}),
		feature.NewNumeric("x", []float64{1, 2, 3, 4, 5, 6, 7, 8}),
	)

	split, err := grove.NumericSplit(tbl, 0, 1, 2, allSamples(tbl))
	require.NoError(t, err)

	require.Equal(t, 4.0, split.Threshold)
	require.Equal(t, []int{0, 1, 2, 3}, split.Left)
	require.Equal(t, []int{4, 5, 6, 7}, split.Right)
	// (4*4/8) * (11.5-2.5)^2
	require.InDelta(t, 162.0, split.DeltaImpurity, 1e-9)
}

func TestNumericSplitNoBoundaryBetweenEqualValues(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{0, 0, 0, 0, 5, 5, 5, 5}),
		feature.NewNumeric("x", []float64{1, 1, 1, 1, 2, 2, 2, 2}),
	)

	split, err := grove.NumericSplit(tbl, 0, 1, 1, allSamples(tbl))
	require.NoError(t, err)

	// the only admissible boundary lies between the two distinct values
	require.Equal(t, 1.0, split.Threshold)
	require.ElementsMatch(t, []int{0, 1, 2, 3}, split.Left)
	require.ElementsMatch(t, []int{4, 5, 6, 7}, split.Right)
	require.True(t, split.DeltaImpurity > 0)
}

func TestNumericSplitSkipsMissing(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{1, 2, feature.Missing, 4, 10, 11, 12, 13}),
		feature.NewNumeric("x", []float64{1, 2, 3, feature.Missing, 5, 6, 7, 8}),
	)

	split, err := grove.NumericSplit(tbl, 0, 1, 1, allSamples(tbl))
	require.NoError(t, err)

	// samples 2 and 3 are dropped before the search
	all := append(append([]int(nil), split.Left...), split.Right...)
	sort.Ints(all)
	require.Equal(t, []int{0, 1, 4, 5, 6, 7}, all)
	require.True(t, split.DeltaImpurity > 0)
}

func TestNumericSplitInadmissible(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{1, 2, 3}),
		feature.NewNumeric("x", []float64{1, 2, 3}),
	)

	split, err := grove.NumericSplit(tbl, 0, 1, 2, allSamples(tbl))
	require.NoError(t, err)

	require.Equal(t, 0.0, split.DeltaImpurity)
	require.Empty(t, split.Left)
	require.Equal(t, []int{0, 1, 2}, split.Right)
}

func TestNumericSplitConstantFeature(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{1, 2, 3, 4}),
		feature.NewNumeric("x", []float64{7, 7, 7, 7}),
	)

	split, err := grove.NumericSplit(tbl, 0, 1, 1, allSamples(tbl))
	require.NoError(t, err)

	require.Equal(t, 0.0, split.DeltaImpurity)
	require.Empty(t, split.Left)
	require.Len(t, split.Right, 4)
}

func TestNumericSplitCategoricalTarget(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewCategorical("target", []string{"a", "a", "a", "b", "b", "b"}),
		feature.NewNumeric("x", []float64{1, 2, 3, 4, 5, 6}),
	)

	split, err := grove.NumericSplit(tbl, 0, 1, 1, allSamples(tbl))
	require.NoError(t, err)

	require.Equal(t, 3.0, split.Threshold)
	require.Equal(t, []int{0, 1, 2}, split.Left)
	require.Equal(t, []int{3, 4, 5}, split.Right)
	require.True(t, split.DeltaImpurity > 0)
}

func TestNumericSplitKindErrors(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{1, 2}),
		feature.NewCategorical("c", []string{"a", "b"}),
		feature.NewTextual("doc", []string{"x", "y"}),
	)

	_, err := grove.NumericSplit(tbl, 0, 1, 1, allSamples(tbl))
	require.Error(t, err)

	_, err = grove.NumericSplit(tbl, 2, 0, 1, allSamples(tbl))
	require.Error(t, err)
}

func TestCategoricalSplitNumericTarget(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{1, 1, 10, 10, 1, 10}),
		feature.NewCategorical("c", []string{"a", "a", "b", "b", "a", "b"}),
	)

	split, err := grove.CategoricalSplit(tbl, 0, 1, 1, allSamples(tbl))
	require.NoError(t, err)

	require.True(t, split.DeltaImpurity > 0)
	require.ElementsMatch(t, []int{0, 1, 4}, split.Left)
	require.ElementsMatch(t, []int{2, 3, 5}, split.Right)

	codeA, ok := tbl.Feature(1).CategoryCode("a")
	require.True(t, ok)
	codeB, ok := tbl.Feature(1).CategoryCode("b")
	require.True(t, ok)
	require.Equal(t, map[float64]bool{codeA: true}, split.LeftValues)
	require.Equal(t, map[float64]bool{codeB: true}, split.RightValues)
}

func TestCategoricalSplitCategoryIntegrity(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{1, 5, 9, 1, 5, 9, 2, 6, 8}),
		feature.NewCategorical("c", []string{"a", "b", "c", "a", "b", "c", "a", "b", "c"}),
	)

	split, err := grove.CategoricalSplit(tbl, 0, 1, 1, allSamples(tbl))
	require.NoError(t, err)
	require.True(t, split.DeltaImpurity > 0)

	// every filtered category lands wholly on exactly one side
	for code := range split.LeftValues {
		require.False(t, split.RightValues[code])
	}
	f := tbl.Feature(1)
	for _, idx := range split.Left {
		require.True(t, split.LeftValues[f.Value(idx)])
	}
	for _, idx := range split.Right {
		require.True(t, split.RightValues[f.Value(idx)])
	}
	require.Equal(t, f.NCategories(), len(split.LeftValues)+len(split.RightValues))
}

func TestCategoricalSplitCategoricalTarget(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewCategorical("target", []string{"x", "x", "y", "y", "x", "y"}),
		feature.NewCategorical("c", []string{"a", "a", "b", "b", "a", "b"}),
	)

	split, err := grove.CategoricalSplit(tbl, 0, 1, 1, allSamples(tbl))
	require.NoError(t, err)

	require.True(t, split.DeltaImpurity > 0)
	require.ElementsMatch(t, []int{0, 1, 4}, split.Left)
	require.ElementsMatch(t, []int{2, 3, 5}, split.Right)
}

func TestCategoricalSplitNoGain(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{5, 5, 5, 5}),
		feature.NewCategorical("c", []string{"a", "b", "a", "b"}),
	)

	split, err := grove.CategoricalSplit(tbl, 0, 1, 1, allSamples(tbl))
	require.NoError(t, err)

	require.Equal(t, 0.0, split.DeltaImpurity)
	require.Empty(t, split.Left)
	require.Len(t, split.Right, 4)
	require.Nil(t, split.LeftValues)
}

func TestCategoricalSplitInadmissible(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{1, 10, feature.Missing}),
		feature.NewCategorical("c", []string{"a", "b", "a"}),
	)

	split, err := grove.CategoricalSplit(tbl, 0, 1, 2, allSamples(tbl))
	require.NoError(t, err)

	require.Equal(t, 0.0, split.DeltaImpurity)
	require.Empty(t, split.Left)
	require.Equal(t, []int{0, 1}, split.Right)
}

func TestTextualSplit(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{1, 2, 10, 11}),
		feature.NewTextual("doc", []string{"apple pie", "apple tart", "banana bread", "banana split"}),
	)

	f := tbl.Feature(1)
	token, ok := f.TokenAt(0, 0)
	require.True(t, ok)
	if !f.HasToken(1, token) {
		// position 0 of sample 0's set may be "pie"; find "apple"
		token, ok = f.TokenAt(0, 1)
		require.True(t, ok)
	}
	require.True(t, f.HasToken(1, token))

	split, err := grove.TextualSplit(tbl, 0, 1, token, 1, allSamples(tbl))
	require.NoError(t, err)

	require.ElementsMatch(t, []int{0, 1}, split.Left)
	require.ElementsMatch(t, []int{2, 3}, split.Right)
	// (2*2/4) * (10.5-1.5)^2
	require.InDelta(t, 81.0, split.DeltaImpurity, 1e-9)
}

func TestTextualSplitCategoricalTarget(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewCategorical("target", []string{"x", "x", "y", "y"}),
		feature.NewTextual("doc", []string{"alpha", "alpha", "beta", "beta"}),
	)

	f := tbl.Feature(1)
	token, ok := f.TokenAt(0, 0)
	require.True(t, ok)

	split, err := grove.TextualSplit(tbl, 0, 1, token, 1, allSamples(tbl))
	require.NoError(t, err)

	require.ElementsMatch(t, []int{0, 1}, split.Left)
	require.ElementsMatch(t, []int{2, 3}, split.Right)
	require.True(t, split.DeltaImpurity > 0)
}

func TestTextualSplitInadmissible(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewNumeric("target", []float64{1, 2, 3, 4}),
		feature.NewTextual("doc", []string{"same word", "same word", "same word", "same word"}),
	)

	f := tbl.Feature(1)
	token, ok := f.TokenAt(0, 0)
	require.True(t, ok)

	// the token is present everywhere, leaving the right side empty
	split, err := grove.TextualSplit(tbl, 0, 1, token, 1, allSamples(tbl))
	require.NoError(t, err)

	require.Equal(t, 0.0, split.DeltaImpurity)
	require.Nil(t, split.Left)
	require.Nil(t, split.Right)
}

func TestSplitsRejectTextualTarget(t *testing.T) {
	tbl := newSplitTable(t,
		feature.NewTextual("target", []string{"a", "b"}),
		feature.NewNumeric("x", []float64{1, 2}),
		feature.NewCategorical("c", []string{"u", "v"}),
		feature.NewTextual("doc", []string{"p", "q"}),
	)

	_, err := grove.NumericSplit(tbl, 0, 1, 1, allSamples(tbl))
	require.Error(t, err)
	_, err = grove.CategoricalSplit(tbl, 0, 2, 1, allSamples(tbl))
	require.Error(t, err)
	_, err = grove.TextualSplit(tbl, 0, 3, 1234, 1, allSamples(tbl))
	require.Error(t, err)
}
