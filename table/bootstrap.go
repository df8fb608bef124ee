package table

import (
	"fmt"
	"math"
	"sort"

	"github.com/grovelab/grove/feature"
	"github.com/grovelab/grove/random"
)

/*
Bootstrap draws an in-bag sample-index set from the samples whose value
for the feature at targetIdx is not missing, together with the
complementary out-of-bag set, both sorted ascending.

With replacement, floor(sampleFraction*R) independent uniform draws are
made from the R real samples, duplicates allowed. Without replacement,
the first floor(sampleFraction*R) elements of a uniform random
permutation of the real samples are taken; sampleFraction must then not
exceed 1. A non-positive sampleFraction is an error.
*/
func (t *Table) Bootstrap(r random.Source, withReplacement bool, sampleFraction float64, targetIdx int) (inBag, outOfBag []int, err error) {
	if sampleFraction <= 0 {
		return nil, nil, fmt.Errorf("bootstrap sample fraction must be positive, got %g", sampleFraction)
	}
	if !withReplacement && sampleFraction > 1.0 {
		return nil, nil, fmt.Errorf("cannot sample more than 100%% without replacement")
	}

	f := t.features[targetIdx]
	real := make([]int, 0, t.SampleCount())
	for i := 0; i < t.SampleCount(); i++ {
		if !feature.IsMissing(f.Value(i)) {
			real = append(real, i)
		}
	}

	nReal := len(real)
	nDraw := int(math.Floor(sampleFraction * float64(nReal)))
	inBag = make([]int, nDraw)

	if withReplacement {
		for i := 0; i < nDraw; i++ {
			inBag[i] = real[r.Intn(nReal)]
		}
	} else {
		perm := make([]int, nReal)
		for i := range perm {
			perm[i] = i
		}
		r.Shuffle(nReal, func(a, b int) {
			perm[a], perm[b] = perm[b], perm[a]
		})
		for i := 0; i < nDraw; i++ {
			inBag[i] = real[perm[i]]
		}
	}
	sort.Ints(inBag)

	// Set difference over the two sorted lists; duplicates in the
	// in-bag list collapse against a single real index.
	outOfBag = make([]int, 0, nReal)
	j := 0
	for _, idx := range real {
		for j < len(inBag) && inBag[j] < idx {
			j++
		}
		if j < len(inBag) && inBag[j] == idx {
			continue
		}
		outOfBag = append(outOfBag, idx)
	}
	return inBag, outOfBag, nil
}
