package grove

// minCategoricalGain is the near-zero threshold a categorical split's
// impurity reduction must exceed to be admissible.
const minCategoricalGain = 1e-12

// deltaImpurityNumeric returns the between-group variance attributable
// to a split of a numeric target, computed purely from group means and
// counts: (nLeft*nRight/nTot) * (muLeft-muRight)^2.
func deltaImpurityNumeric(muLeft float64, nLeft int, muRight float64, nRight int) float64 {
	nTot := float64(nLeft + nRight)
	d := muLeft - muRight
	return float64(nLeft) * float64(nRight) / nTot * d * d
}

// deltaImpurityCategorical returns the weighted Gini gain of a split of
// a categorical target, from the sums of squared per-category counts of
// the left, right and unsplit groups.
func deltaImpurityCategorical(sfTot float64, nTot int, sfLeft float64, nLeft int, sfRight float64, nRight int) float64 {
	return sfLeft/float64(nLeft) + sfRight/float64(nRight) - sfTot/float64(nTot)
}

// meanAccumulator maintains a running mean without a running sum of
// squares, using the online update mean += (x-mean)/n.
type meanAccumulator struct {
	n    int
	mean float64
}

func (m *meanAccumulator) add(x float64) {
	m.n++
	m.mean += (x - m.mean) / float64(m.n)
}

func (m *meanAccumulator) remove(x float64) {
	m.n--
	if m.n == 0 {
		m.mean = 0
		return
	}
	m.mean += (m.mean - x) / float64(m.n)
}

// frequencyAccumulator maintains per-category occurrence counts and the
// sum of their squares, updated incrementally: raising a count from c
// to c+1 adds 2c+1 to the sum, lowering it subtracts 2c-1.
type frequencyAccumulator struct {
	n      int
	sf     float64
	counts map[float64]int
}

func newFrequencyAccumulator() *frequencyAccumulator {
	return &frequencyAccumulator{counts: make(map[float64]int)}
}

func (f *frequencyAccumulator) add(x float64) {
	c := f.counts[x]
	f.sf += float64(2*c + 1)
	f.counts[x] = c + 1
	f.n++
}

func (f *frequencyAccumulator) remove(x float64) {
	c := f.counts[x]
	f.sf -= float64(2*c - 1)
	f.counts[x] = c - 1
	f.n--
}
