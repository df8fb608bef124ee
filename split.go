/*
Package grove implements the split-search engine of a tree-induction
toolkit: given a target feature and a candidate feature restricted to a
node's current sample set, it finds the binary partition of the samples
that maximizes the reduction in target impurity. Variance reduction is
used for numeric targets and a Gini-style gain for categorical ones,
both computed from running aggregates in a single boundary scan.

The sample data itself lives in a table.Table; the engine only reads it,
apart from compacting missing entries out of the sample-index lists it
is handed.
*/
package grove

import (
	"fmt"
	"sort"

	"github.com/grovelab/grove/table"
)

/*
Split describes the outcome of a split search: the achieved impurity
reduction and the partition of the node's sample-index list. A zero
DeltaImpurity means no admissible split was found, in which case Left is
empty and Right holds whatever samples survived missing-value removal;
the partition fields of an inadmissible textual split are nil and must
not be used.

Threshold is set for numeric-feature splits: samples with feature value
less than or equal to it go left. LeftValues and RightValues are set for
categorical-feature splits: the two disjoint category-code sets assigned
to either side.
*/
type Split struct {
	DeltaImpurity float64
	Left          []int
	Right         []int
	Threshold     float64
	LeftValues    map[float64]bool
	RightValues   map[float64]bool
}

/*
NumericSplit searches the best threshold split of a numeric feature
against the target over the given sample-index list. The samples are
filtered pairwise for missing values, sorted by feature value (stable
with respect to their original order among ties), and scanned once,
considering only boundaries between distinct adjacent feature values. A
boundary is admissible when both sides hold at least minSamples samples;
if fewer than 2*minSamples real samples exist, or no boundary is
admissible, the returned split has zero DeltaImpurity.

The given index list is compacted in place by missing-value removal and
must not be reused by the caller at its original length.
*/
func NumericSplit(t *table.Table, targetIdx, featureIdx, minSamples int, samples []int) (*Split, error) {
	if !t.IsNumerical(featureIdx) {
		return nil, fmt.Errorf("numeric split on %s feature %s", t.Feature(featureIdx).Kind(), t.FeatureName(featureIdx))
	}
	if t.IsTextual(targetIdx) {
		return nil, fmt.Errorf("cannot split against textual target %s", t.FeatureName(targetIdx))
	}

	tv, fv, kept := t.FilteredPair(targetIdx, featureIdx, samples)
	n := len(fv)
	if n < 2*minSamples {
		return &Split{Right: kept}, nil
	}

	// Stable argsort by feature value, carrying target values and
	// sample indices along in the same permutation.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return fv[order[a]] < fv[order[b]] })
	sortedT := make([]float64, n)
	sortedF := make([]float64, n)
	sortedIdx := make([]int, n)
	for i, o := range order {
		sortedT[i] = tv[o]
		sortedF[i] = fv[o]
		sortedIdx[i] = kept[o]
	}

	var bestIdx int
	var bestDI float64
	if t.IsNumerical(targetIdx) {
		bestIdx, bestDI = numericTargetBoundary(sortedT, sortedF, minSamples)
	} else {
		bestIdx, bestDI = categoricalTargetBoundary(sortedT, sortedF, minSamples)
	}
	if bestIdx < 0 {
		return &Split{Right: sortedIdx}, nil
	}

	return &Split{
		DeltaImpurity: bestDI,
		Threshold:     sortedF[bestIdx],
		Left:          sortedIdx[:bestIdx+1],
		Right:         sortedIdx[bestIdx+1:],
	}, nil
}

// numericTargetBoundary scans split boundaries between distinct adjacent
// feature values, absorbing each sample into the growing left mean and
// out of the shrinking right mean, and returns the boundary index with
// the highest variance reduction, or -1 if none is admissible.
func numericTargetBoundary(tv, fv []float64, minSamples int) (int, float64) {
	var left, right meanAccumulator
	for _, x := range tv {
		right.add(x)
	}
	bestIdx, bestDI := -1, 0.0
	for i := 0; i < len(fv)-1; i++ {
		left.add(tv[i])
		right.remove(tv[i])
		if fv[i] == fv[i+1] {
			continue
		}
		if left.n < minSamples || right.n < minSamples {
			continue
		}
		if di := deltaImpurityNumeric(left.mean, left.n, right.mean, right.n); di > bestDI {
			bestIdx, bestDI = i, di
		}
	}
	return bestIdx, bestDI
}

// categoricalTargetBoundary is the Gini-gain counterpart of
// numericTargetBoundary, tracking sums of squared category counts
// instead of means.
func categoricalTargetBoundary(tv, fv []float64, minSamples int) (int, float64) {
	left := newFrequencyAccumulator()
	right := newFrequencyAccumulator()
	total := newFrequencyAccumulator()
	for _, x := range tv {
		right.add(x)
		total.add(x)
	}
	bestIdx, bestDI := -1, 0.0
	for i := 0; i < len(fv)-1; i++ {
		left.add(tv[i])
		right.remove(tv[i])
		if fv[i] == fv[i+1] {
			continue
		}
		if left.n < minSamples || right.n < minSamples {
			continue
		}
		di := deltaImpurityCategorical(total.sf, total.n, left.sf, left.n, right.sf, right.n)
		if di > bestDI {
			bestIdx, bestDI = i, di
		}
	}
	return bestIdx, bestDI
}

/*
CategoricalSplit searches the best two-way partition of the categories
of a categorical feature against the target over the given sample-index
list. Samples are filtered pairwise for missing values and grouped by
category; the categories are then ordered — by their mean target value
for numeric targets, by category code for categorical targets — and the
ordered category blocks are scanned with the same boundary machinery as
numeric splits, each category landing wholly on one side. The split is
admissible only if its impurity reduction exceeds a near-zero threshold
and both sides hold at least minSamples samples.

The given index list is compacted in place by missing-value removal and
must not be reused by the caller at its original length.
*/
func CategoricalSplit(t *table.Table, targetIdx, featureIdx, minSamples int, samples []int) (*Split, error) {
	if !t.IsCategorical(featureIdx) {
		return nil, fmt.Errorf("categorical split on %s feature %s", t.Feature(featureIdx).Kind(), t.FeatureName(featureIdx))
	}
	if t.IsTextual(targetIdx) {
		return nil, fmt.Errorf("cannot split against textual target %s", t.FeatureName(targetIdx))
	}

	tv, fv, kept := t.FilteredPair(targetIdx, featureIdx, samples)
	n := len(fv)
	if n < 2*minSamples {
		return &Split{Right: kept}, nil
	}

	blocks := orderedCategoryBlocks(t.IsNumerical(targetIdx), tv, fv)

	var bestBlock int
	var bestDI float64
	if t.IsNumerical(targetIdx) {
		bestBlock, bestDI = numericTargetBlockBoundary(tv, blocks, minSamples)
	} else {
		bestBlock, bestDI = categoricalTargetBlockBoundary(tv, blocks, minSamples)
	}
	if bestBlock < 0 || bestDI <= minCategoricalGain {
		return &Split{Right: kept}, nil
	}

	split := &Split{
		DeltaImpurity: bestDI,
		LeftValues:    make(map[float64]bool),
		RightValues:   make(map[float64]bool),
	}
	for b, block := range blocks {
		if b <= bestBlock {
			split.LeftValues[block.code] = true
			for _, pos := range block.positions {
				split.Left = append(split.Left, kept[pos])
			}
		} else {
			split.RightValues[block.code] = true
			for _, pos := range block.positions {
				split.Right = append(split.Right, kept[pos])
			}
		}
	}
	return split, nil
}

type categoryBlock struct {
	code      float64
	positions []int
}

// orderedCategoryBlocks groups filtered samples by category code and
// orders the groups: ascending mean target for numeric targets (so the
// partition search reduces to a boundary scan), ascending code for
// categorical targets (a fixed canonical order).
func orderedCategoryBlocks(numericTarget bool, tv, fv []float64) []categoryBlock {
	grouped := make(map[float64]*categoryBlock)
	var blocks []categoryBlock
	for pos, code := range fv {
		block, ok := grouped[code]
		if !ok {
			blocks = append(blocks, categoryBlock{code: code})
			block = &blocks[len(blocks)-1]
			grouped[code] = block
		}
		block.positions = append(block.positions, pos)
	}
	if numericTarget {
		means := make(map[float64]float64, len(blocks))
		for _, block := range blocks {
			var m meanAccumulator
			for _, pos := range block.positions {
				m.add(tv[pos])
			}
			means[block.code] = m.mean
		}
		sort.SliceStable(blocks, func(a, b int) bool { return means[blocks[a].code] < means[blocks[b].code] })
	} else {
		sort.SliceStable(blocks, func(a, b int) bool { return blocks[a].code < blocks[b].code })
	}
	return blocks
}

func numericTargetBlockBoundary(tv []float64, blocks []categoryBlock, minSamples int) (int, float64) {
	var left, right meanAccumulator
	for _, block := range blocks {
		for _, pos := range block.positions {
			right.add(tv[pos])
		}
	}
	bestBlock, bestDI := -1, 0.0
	for b := 0; b < len(blocks)-1; b++ {
		for _, pos := range blocks[b].positions {
			left.add(tv[pos])
			right.remove(tv[pos])
		}
		if left.n < minSamples || right.n < minSamples {
			continue
		}
		if di := deltaImpurityNumeric(left.mean, left.n, right.mean, right.n); di > bestDI {
			bestBlock, bestDI = b, di
		}
	}
	return bestBlock, bestDI
}

func categoricalTargetBlockBoundary(tv []float64, blocks []categoryBlock, minSamples int) (int, float64) {
	left := newFrequencyAccumulator()
	right := newFrequencyAccumulator()
	total := newFrequencyAccumulator()
	for _, block := range blocks {
		for _, pos := range block.positions {
			right.add(tv[pos])
			total.add(tv[pos])
		}
	}
	bestBlock, bestDI := -1, 0.0
	for b := 0; b < len(blocks)-1; b++ {
		for _, pos := range blocks[b].positions {
			left.add(tv[pos])
			right.remove(tv[pos])
		}
		if left.n < minSamples || right.n < minSamples {
			continue
		}
		di := deltaImpurityCategorical(total.sf, total.n, left.sf, left.n, right.sf, right.n)
		if di > bestDI {
			bestBlock, bestDI = b, di
		}
	}
	return bestBlock, bestDI
}

/*
TextualSplit evaluates the binary partition of the given sample-index
list induced by membership of a single pre-selected hash token, chosen
externally through Feature.TokenAt. Samples whose target value is
missing are dropped; the remainder are routed left if their token set
contains the token and right otherwise, accumulating the target
aggregate for both sides and the total in the same single pass. If
either side ends up below minSamples the returned split has zero
DeltaImpurity and nil partitions, which must not be used.

The given index list is compacted in place by missing-value removal and
must not be reused by the caller at its original length.
*/
func TextualSplit(t *table.Table, targetIdx, featureIdx int, token uint32, minSamples int, samples []int) (*Split, error) {
	if !t.IsTextual(featureIdx) {
		return nil, fmt.Errorf("textual split on %s feature %s", t.Feature(featureIdx).Kind(), t.FeatureName(featureIdx))
	}
	if t.IsTextual(targetIdx) {
		return nil, fmt.Errorf("cannot split against textual target %s", t.FeatureName(targetIdx))
	}

	tv, kept := t.FilteredValues(targetIdx, samples)
	n := len(kept)
	if n < 2*minSamples {
		return &Split{}, nil
	}

	f := t.Feature(featureIdx)
	left := make([]int, 0, n)
	right := make([]int, 0, n)
	var di float64

	if t.IsNumerical(targetIdx) {
		var muLeft, muRight meanAccumulator
		for i, idx := range kept {
			if f.HasToken(idx, token) {
				left = append(left, idx)
				muLeft.add(tv[i])
			} else {
				right = append(right, idx)
				muRight.add(tv[i])
			}
		}
		di = deltaImpurityNumeric(muLeft.mean, muLeft.n, muRight.mean, muRight.n)
	} else {
		freqLeft := newFrequencyAccumulator()
		freqRight := newFrequencyAccumulator()
		freqTot := newFrequencyAccumulator()
		for i, idx := range kept {
			if f.HasToken(idx, token) {
				left = append(left, idx)
				freqLeft.add(tv[i])
			} else {
				right = append(right, idx)
				freqRight.add(tv[i])
			}
			freqTot.add(tv[i])
		}
		if len(left) > 0 && len(right) > 0 {
			di = deltaImpurityCategorical(freqTot.sf, freqTot.n, freqLeft.sf, len(left), freqRight.sf, len(right))
		}
	}

	if len(left) < minSamples || len(right) < minSamples {
		return &Split{}, nil
	}
	return &Split{DeltaImpurity: di, Left: left, Right: right}, nil
}
