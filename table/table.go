/*
Package table provides the FeatureTable aggregate: an ordered collection
of typed features with per-sample labels, built once and then queried and
selectively mutated by a tree-building consumer. The table also hosts the
missing-value filter and the bootstrap sampler, both of which operate on
sample-index lists into its columns.
*/
package table

import (
	"fmt"
	"strconv"

	"github.com/grovelab/grove/feature"
	"github.com/grovelab/grove/random"
	"gonum.org/v1/gonum/stat"
)

const (
	// NotFound is the sentinel index returned by FeatureIndex for
	// unknown feature names.
	NotFound = -1

	// ContrastSuffix is appended to a feature's name to form the name
	// of its contrast copy.
	ContrastSuffix = "_CONTRAST"

	// placeholder sample label used when none are supplied
	noSampleLabel = "NO_SAMPLE_ID"

	// string rendering of the missing-value sentinel
	missingString = "NaN"
)

/*
Table owns an ordered collection of features plus sample labels. The
feature order is significant: a feature's position is its id. With
contrasts enabled the internal feature sequence is doubled, indices
[0, n) holding the real features and [n, 2n) their shadow copies;
FeatureCount still reports n.

A table's shape is fixed at construction. Afterwards only feature data
may be replaced in place, and contrast columns permuted.
*/
type Table struct {
	features     []*feature.Feature
	nameIndex    map[string]int
	sampleLabels []string
	useContrasts bool
}

/*
New takes an ordered slice of features, optional sample labels and a
contrast flag and returns a table built with them, or an error if two
features share a name, the features disagree on sample count, the label
count does not match, or the table would be empty. When sampleLabels is
empty, placeholder labels are synthesized. When useContrasts is true the
feature sequence is doubled with shadow copies named after the originals
with ContrastSuffix appended.
*/
func New(features []*feature.Feature, sampleLabels []string, useContrasts bool) (*Table, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("table must have at least one feature")
	}
	nSamples := features[0].Len()
	if nSamples == 0 {
		return nil, fmt.Errorf("table must have at least one sample")
	}
	t := &Table{
		features:     append([]*feature.Feature(nil), features...),
		nameIndex:    make(map[string]int, 2*len(features)),
		useContrasts: useContrasts,
	}
	for i, f := range t.features {
		if f.Len() != nSamples {
			return nil, fmt.Errorf("feature %s has %d values, expected %d", f.Name(), f.Len(), nSamples)
		}
		if _, dup := t.nameIndex[f.Name()]; dup {
			return nil, fmt.Errorf("duplicate feature header %q", f.Name())
		}
		t.nameIndex[f.Name()] = i
	}
	if len(sampleLabels) == 0 {
		t.sampleLabels = make([]string, nSamples)
		for i := range t.sampleLabels {
			t.sampleLabels[i] = noSampleLabel
		}
	} else {
		if len(sampleLabels) != nSamples {
			return nil, fmt.Errorf("%d sample labels for %d samples", len(sampleLabels), nSamples)
		}
		t.sampleLabels = append([]string(nil), sampleLabels...)
	}
	if useContrasts {
		t.createContrasts()
	}
	return t, nil
}

/*
FromRaw builds a table from the four parallel artifacts an ingestion
layer produces: a feature-major raw string matrix, feature names,
per-feature kinds and sample labels (empty to synthesize placeholders).
Numeric columns are parsed with missing-value spellings mapping to the
missing sentinel; categorical and textual columns are encoded by their
feature constructors.
*/
func FromRaw(rawMatrix [][]string, names []string, kinds []feature.Kind, sampleLabels []string, useContrasts bool) (*Table, error) {
	if len(rawMatrix) != len(names) || len(kinds) != len(names) {
		return nil, fmt.Errorf("raw matrix, names and kinds disagree: %d/%d/%d", len(rawMatrix), len(names), len(kinds))
	}
	features := make([]*feature.Feature, len(names))
	for i, raw := range rawMatrix {
		switch kinds[i] {
		case feature.Numeric:
			values, err := parseNumeric(raw)
			if err != nil {
				return nil, fmt.Errorf("feature %s: %v", names[i], err)
			}
			features[i] = feature.NewNumeric(names[i], values)
		case feature.Categorical:
			features[i] = feature.NewCategorical(names[i], raw)
		case feature.Textual:
			features[i] = feature.NewTextual(names[i], raw)
		default:
			return nil, fmt.Errorf("feature %s has unknown kind", names[i])
		}
	}
	return New(features, sampleLabels, useContrasts)
}

func parseNumeric(raw []string) ([]float64, error) {
	values := make([]float64, len(raw))
	for i, s := range raw {
		if feature.IsMissingToken(s) {
			values[i] = feature.Missing
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as number: %v", s, err)
		}
		values[i] = v
	}
	return values, nil
}

// createContrasts doubles the feature sequence with shadow copies of the
// real features. Deliberately not idempotent: the constructor invokes it
// at most once, driven by the fixed contrast flag.
func (t *Table) createContrasts() {
	n := len(t.features)
	for i := 0; i < n; i++ {
		contrast := t.features[i].Clone(t.features[i].Name() + ContrastSuffix)
		t.nameIndex[contrast.Name()] = len(t.features)
		t.features = append(t.features, contrast)
	}
}

/*
FeatureCount returns the number of real features in the table. Contrast
copies are not counted, though they remain addressable by index and name.
*/
func (t *Table) FeatureCount() int {
	if t.useContrasts {
		return len(t.features) / 2
	}
	return len(t.features)
}

/*
SampleCount returns the number of samples in the table.
*/
func (t *Table) SampleCount() int {
	return len(t.sampleLabels)
}

/*
HasContrasts returns true if the table was built with contrast features.
*/
func (t *Table) HasContrasts() bool {
	return t.useContrasts
}

/*
ContrastIndex returns the index of the contrast copy of the feature at
the given index, or NotFound if the table has no contrasts.
*/
func (t *Table) ContrastIndex(featureIdx int) int {
	if !t.useContrasts {
		return NotFound
	}
	return featureIdx + t.FeatureCount()
}

/*
FeatureIndex returns the index of the feature with the given name, or
NotFound if no feature has it.
*/
func (t *Table) FeatureIndex(name string) int {
	idx, ok := t.nameIndex[name]
	if !ok {
		return NotFound
	}
	return idx
}

/*
Feature returns the feature at the given index. Contrast features are
addressable through indices [FeatureCount(), 2*FeatureCount()).
*/
func (t *Table) Feature(featureIdx int) *feature.Feature {
	return t.features[featureIdx]
}

/*
FeatureName returns the name of the feature at the given index.
*/
func (t *Table) FeatureName(featureIdx int) string {
	return t.features[featureIdx].Name()
}

/*
SampleLabel returns the label of the sample at the given index.
*/
func (t *Table) SampleLabel(sampleIdx int) string {
	return t.sampleLabels[sampleIdx]
}

/*
IsNumerical returns true if the feature at the given index is numeric.
*/
func (t *Table) IsNumerical(featureIdx int) bool {
	return t.features[featureIdx].IsNumerical()
}

/*
IsCategorical returns true if the feature at the given index is
categorical.
*/
func (t *Table) IsCategorical(featureIdx int) bool {
	return t.features[featureIdx].IsCategorical()
}

/*
IsTextual returns true if the feature at the given index is textual.
*/
func (t *Table) IsTextual(featureIdx int) bool {
	return t.features[featureIdx].IsTextual()
}

/*
Value returns the value of the feature at the given feature and sample
indices.
*/
func (t *Table) Value(featureIdx, sampleIdx int) float64 {
	return t.features[featureIdx].Value(sampleIdx)
}

/*
RawValue returns the original string representation of the value at the
given feature and sample indices: "NaN" for missing entries, a canonical
number rendering for numeric features, and the back-mapped label for
categorical features. It returns an error for a categorical code the
feature does not map, which cannot occur for values the table produced
itself.
*/
func (t *Table) RawValue(featureIdx, sampleIdx int) (string, error) {
	f := t.features[featureIdx]
	v := f.Value(sampleIdx)
	if feature.IsMissing(v) {
		return missingString, nil
	}
	if f.IsNumerical() {
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	}
	label, ok := f.CategoryLabel(v)
	if !ok {
		return "", fmt.Errorf("feature %s has no category mapped to value %v", f.Name(), v)
	}
	return label, nil
}

/*
ReplaceNumericData reconstructs the feature at the given index as a
numeric feature holding the given values, keeping its name. It returns
an error if the value count does not match the table's sample count.
*/
func (t *Table) ReplaceNumericData(featureIdx int, values []float64) error {
	if len(values) != t.SampleCount() {
		return fmt.Errorf("replacing data of feature %s: %d values for %d samples", t.FeatureName(featureIdx), len(values), t.SampleCount())
	}
	t.features[featureIdx] = feature.NewNumeric(t.FeatureName(featureIdx), values)
	return nil
}

/*
ReplaceStringData reconstructs the feature at the given index as a
categorical feature encoded from the given raw strings, keeping its
name. The categorical mapping is re-derived from scratch; codes from the
replaced feature are not preserved. It returns an error if the value
count does not match the table's sample count.
*/
func (t *Table) ReplaceStringData(featureIdx int, raw []string) error {
	if len(raw) != t.SampleCount() {
		return fmt.Errorf("replacing data of feature %s: %d values for %d samples", t.FeatureName(featureIdx), len(raw), t.SampleCount())
	}
	t.features[featureIdx] = feature.NewCategorical(t.FeatureName(featureIdx), raw)
	return nil
}

/*
PermuteContrasts applies, to each contrast feature, a uniform random
permutation of its non-missing values, writing the permuted values back
to their original sample positions. The feature's marginal value
distribution and its missing-value pattern are preserved while any
residual correlation with a target is broken.
*/
func (t *Table) PermuteContrasts(r random.Source) {
	n := t.FeatureCount()
	if !t.useContrasts {
		return
	}
	for i := n; i < 2*n; i++ {
		indices := make([]int, t.SampleCount())
		for j := range indices {
			indices[j] = j
		}
		values, kept := t.FilteredValues(i, indices)
		r.Shuffle(len(values), func(a, b int) {
			values[a], values[b] = values[b], values[a]
		})
		f := t.features[i]
		for j, idx := range kept {
			f.SetValue(idx, values[j])
		}
	}
}

/*
Categories returns the distinct original string labels of the
categorical feature at the given index, and an empty slice for other
kinds.
*/
func (t *Table) Categories(featureIdx int) []string {
	return t.features[featureIdx].Categories()
}

/*
NCategories returns the number of distinct categories of the feature at
the given index, and 0 for non-categorical features.
*/
func (t *Table) NCategories(featureIdx int) int {
	return t.features[featureIdx].NCategories()
}

/*
MaxCategories returns the largest category count among the table's real
features.
*/
func (t *Table) MaxCategories() int {
	max := 0
	for i := 0; i < t.FeatureCount(); i++ {
		if n := t.features[i].NCategories(); n > max {
			max = n
		}
	}
	return max
}

/*
FeatureEntropy returns the token-presence entropy of the textual feature
at the given index.
*/
func (t *Table) FeatureEntropy(featureIdx int) float64 {
	return t.features[featureIdx].Entropy()
}

/*
NRealSamples returns the number of samples whose value for the feature
at the given index is not missing.
*/
func (t *Table) NRealSamples(featureIdx int) int {
	f := t.features[featureIdx]
	n := 0
	for i := 0; i < f.Len(); i++ {
		if !feature.IsMissing(f.Value(i)) {
			n++
		}
	}
	return n
}

/*
NRealSamplesPair returns the number of samples whose values for both
given features are not missing.
*/
func (t *Table) NRealSamplesPair(featureIdx1, featureIdx2 int) int {
	f1, f2 := t.features[featureIdx1], t.features[featureIdx2]
	n := 0
	for i := 0; i < t.SampleCount(); i++ {
		if !feature.IsMissing(f1.Value(i)) && !feature.IsMissing(f2.Value(i)) {
			n++
		}
	}
	return n
}

/*
PearsonCorrelation returns the linear correlation coefficient between
the two given features over their pairwise-complete samples.
*/
func (t *Table) PearsonCorrelation(featureIdx1, featureIdx2 int) float64 {
	indices := make([]int, t.SampleCount())
	for i := range indices {
		indices[i] = i
	}
	v1, v2, _ := t.FilteredPair(featureIdx1, featureIdx2, indices)
	return stat.Correlation(v1, v2, nil)
}
