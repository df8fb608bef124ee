package table

import "github.com/grovelab/grove/feature"

/*
FilteredValues returns the values of the feature at the given sample
indices with missing entries dropped, shrinking the index list in place
to match. The returned value slice and the returned index list are
always the same length, with the relative order of retained entries
preserved; the returned index list shares the backing array of the
input, which must not be reused by the caller at its original length.
*/
func (t *Table) FilteredValues(featureIdx int, indices []int) ([]float64, []int) {
	f := t.features[featureIdx]
	values := make([]float64, len(indices))
	nReal := 0
	for _, idx := range indices {
		v := f.Value(idx)
		if !feature.IsMissing(v) {
			values[nReal] = v
			indices[nReal] = idx
			nReal++
		}
	}
	return values[:nReal], indices[:nReal]
}

/*
FilteredPair returns the values of the two given features at the given
sample indices, dropping every index where either value is missing, and
shrinks the index list in place to match. The two returned value slices
and the returned index list are always the same length, with relative
order preserved.
*/
func (t *Table) FilteredPair(featureIdx1, featureIdx2 int, indices []int) ([]float64, []float64, []int) {
	f1, f2 := t.features[featureIdx1], t.features[featureIdx2]
	values1 := make([]float64, len(indices))
	values2 := make([]float64, len(indices))
	nReal := 0
	for _, idx := range indices {
		v1 := f1.Value(idx)
		v2 := f2.Value(idx)
		if !feature.IsMissing(v1) && !feature.IsMissing(v2) {
			values1[nReal] = v1
			values2[nReal] = v2
			indices[nReal] = idx
			nReal++
		}
	}
	return values1[:nReal], values2[:nReal], indices[:nReal]
}
