package feature_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grovelab/grove/feature"
)

func TestNewCategoricalEncoding(t *testing.T) {
	f := feature.NewCategorical("color", []string{"red", "blue", "red", "NA", "green", "blue"})

	require.Equal(t, feature.Categorical, f.Kind())
	require.Equal(t, 6, f.Len())
	require.Equal(t, 3, f.NCategories())

	// codes are assigned in order of first appearance
	code, ok := f.CategoryCode("red")
	require.True(t, ok)
	require.Equal(t, 0.0, code)
	code, ok = f.CategoryCode("blue")
	require.True(t, ok)
	require.Equal(t, 1.0, code)
	code, ok = f.CategoryCode("green")
	require.True(t, ok)
	require.Equal(t, 2.0, code)

	require.True(t, feature.IsMissing(f.Value(3)))
	require.Equal(t, f.Value(0), f.Value(2))
}

func TestCategoricalRoundtrip(t *testing.T) {
	raw := []string{"a", "b", "c", "b", "a"}
	f := feature.NewCategorical("letters", raw)
	for i, s := range raw {
		label, ok := f.CategoryLabel(f.Value(i))
		require.True(t, ok)
		require.Equal(t, s, label)
	}
	for _, s := range []string{"a", "b", "c"} {
		code, ok := f.CategoryCode(s)
		require.True(t, ok)
		label, ok := f.CategoryLabel(code)
		require.True(t, ok)
		require.Equal(t, s, label)
	}
	_, ok := f.CategoryCode("z")
	require.False(t, ok)
	_, ok = f.CategoryLabel(42.0)
	require.False(t, ok)
}

func TestCategoriesAscendingCodeOrder(t *testing.T) {
	f := feature.NewCategorical("color", []string{"red", "blue", "green"})
	require.Equal(t, []string{"red", "blue", "green"}, f.Categories())
}

func TestNewNumericCopiesValues(t *testing.T) {
	values := []float64{1, 2, 3}
	f := feature.NewNumeric("x", values)
	values[0] = 99
	require.Equal(t, 1.0, f.Value(0))
}

func TestNewTextualValuesAllMissing(t *testing.T) {
	f := feature.NewTextual("doc", []string{"some words here", ""})
	require.Equal(t, 2, f.Len())
	for i := 0; i < f.Len(); i++ {
		require.True(t, feature.IsMissing(f.Value(i)))
	}
	require.Equal(t, 3, f.NTokens(0))
	require.Equal(t, 0, f.NTokens(1))
}

func TestIsMissingToken(t *testing.T) {
	for _, s := range []string{"", "?", "NA", "na", "NaN", "nan", "null", "NULL", " NaN "} {
		require.True(t, feature.IsMissingToken(s), "expected %q to spell a missing value", s)
	}
	for _, s := range []string{"0", "n", "none", "nah", "x"} {
		require.False(t, feature.IsMissingToken(s), "expected %q not to spell a missing value", s)
	}
}

func TestTokenAt(t *testing.T) {
	f := feature.NewTextual("doc", []string{"alpha beta gamma", ""})

	n := uint(f.NTokens(0))
	first, ok := f.TokenAt(0, 0)
	require.True(t, ok)
	// selection wraps around the set size
	wrapped, ok := f.TokenAt(0, n)
	require.True(t, ok)
	require.Equal(t, first, wrapped)

	// deterministic for a fixed key
	for i := 0; i < 10; i++ {
		token, ok := f.TokenAt(0, 7)
		require.True(t, ok)
		again, ok := f.TokenAt(0, 7)
		require.True(t, ok)
		require.Equal(t, token, again)
	}

	_, ok = f.TokenAt(1, 3)
	require.False(t, ok)
}

func TestHasToken(t *testing.T) {
	f := feature.NewTextual("doc", []string{"alpha beta", "gamma"})
	token, ok := f.TokenAt(0, 0)
	require.True(t, ok)
	require.True(t, f.HasToken(0, token))
	require.False(t, f.HasToken(1, token))
}

func TestClone(t *testing.T) {
	f := feature.NewCategorical("color", []string{"red", "blue", "red"})
	c := f.Clone("color_shadow")

	require.Equal(t, "color_shadow", c.Name())
	require.Equal(t, f.Kind(), c.Kind())
	require.Equal(t, f.Len(), c.Len())
	for i := 0; i < f.Len(); i++ {
		require.Equal(t, f.Value(i), c.Value(i))
	}

	// mutating the clone's values must not touch the original
	c.SetValue(0, 1.0)
	require.Equal(t, 0.0, f.Value(0))

	// encoding state is shared
	label, ok := c.CategoryLabel(1.0)
	require.True(t, ok)
	require.Equal(t, "blue", label)
}

func TestEntropy(t *testing.T) {
	// one token present in 1 of 2 samples: -2*(0.5*ln(0.5)) = ln(2)
	f := feature.NewTextual("doc", []string{"word", ""})
	require.InDelta(t, math.Log(2), f.Entropy(), 1e-12)

	// a token present in every sample contributes nothing
	all := feature.NewTextual("doc", []string{"word", "word"})
	require.InDelta(t, 0.0, all.Entropy(), 1e-12)
}
