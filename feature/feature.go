/*
Package feature provides the typed column model for tabular data: numeric,
categorical and textual features, each owning its own encoding state.
*/
package feature

import (
	"math"
	"sort"
	"strings"
)

/*
Kind identifies the type of a feature. It is fixed at construction:
re-typing a column always means building a new Feature.
*/
type Kind int

const (
	// Numeric features hold one floating-point value per sample.
	Numeric Kind = iota
	// Categorical features hold one category code per sample, with a
	// bijective mapping between codes and the original string labels.
	Categorical
	// Textual features hold one set of hashed word tokens per sample.
	Textual
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Textual:
		return "textual"
	}
	return "unknown"
}

/*
Missing is the sentinel value marking a missing entry in a feature's
value sequence.
*/
var Missing = math.NaN()

/*
IsMissing returns true if the given value is the missing-value sentinel.
*/
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

/*
IsMissingToken returns true if the given raw string spells a missing
value: the empty string, "?", "NA", "NaN" or "null", ignoring case.
*/
func IsMissingToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "?", "na", "nan", "null":
		return true
	}
	return false
}

/*
Feature represents a single named, typed column of sample values.

Numeric and categorical features populate the value sequence, with
categorical values encoded as numeric codes. Textual features populate
per-sample token sets instead; their value sequence is filled with the
missing sentinel so that every feature in a table has one value slot per
sample regardless of kind.
*/
type Feature struct {
	kind   Kind
	name   string
	values []float64
	// categorical encoding state
	codes  map[string]float64
	labels map[float64]string
	// textual encoding state: one sorted, deduplicated token set per sample
	tokens [][]uint32
}

/*
NewNumeric takes a name and a slice of values and returns a numeric
feature owning a copy of the values. Missing entries are represented by
the Missing sentinel.
*/
func NewNumeric(name string, values []float64) *Feature {
	vs := make([]float64, len(values))
	copy(vs, values)
	return &Feature{kind: Numeric, name: name, values: vs}
}

/*
NewCategorical takes a name and a slice of raw string values and returns
a categorical feature. Each distinct non-missing string is assigned a
numeric code in order of first appearance; both the string-to-code and
code-to-string mappings are retained. Strings spelling a missing value
(see IsMissingToken) encode to the Missing sentinel.
*/
func NewCategorical(name string, raw []string) *Feature {
	f := &Feature{
		kind:   Categorical,
		name:   name,
		values: make([]float64, len(raw)),
		codes:  make(map[string]float64),
		labels: make(map[float64]string),
	}
	for i, s := range raw {
		if IsMissingToken(s) {
			f.values[i] = Missing
			continue
		}
		code, ok := f.codes[s]
		if !ok {
			code = float64(len(f.codes))
			f.codes[s] = code
			f.labels[code] = s
		}
		f.values[i] = code
	}
	return f
}

/*
NewTextual takes a name and a slice of raw text values and returns a
textual feature with one hashed token set per sample. The value sequence
is present but entirely missing, so table-level length invariants hold
uniformly across kinds.
*/
func NewTextual(name string, raw []string) *Feature {
	f := &Feature{
		kind:   Textual,
		name:   name,
		values: make([]float64, len(raw)),
		tokens: make([][]uint32, len(raw)),
	}
	for i, s := range raw {
		f.values[i] = Missing
		f.tokens[i] = HashTokens(s)
	}
	return f
}

/*
Name returns the name of the feature.
*/
func (f *Feature) Name() string {
	return f.name
}

/*
Kind returns the kind of the feature.
*/
func (f *Feature) Kind() Kind {
	return f.kind
}

/*
IsNumerical returns true if the feature is numeric.
*/
func (f *Feature) IsNumerical() bool {
	return f.kind == Numeric
}

/*
IsCategorical returns true if the feature is categorical.
*/
func (f *Feature) IsCategorical() bool {
	return f.kind == Categorical
}

/*
IsTextual returns true if the feature is textual.
*/
func (f *Feature) IsTextual() bool {
	return f.kind == Textual
}

/*
Len returns the number of samples the feature holds values for.
*/
func (f *Feature) Len() int {
	return len(f.values)
}

/*
Value returns the value of the feature at the given sample index.
*/
func (f *Feature) Value(sampleIdx int) float64 {
	return f.values[sampleIdx]
}

/*
SetValue overwrites the value of the feature at the given sample index.
It does not alter the feature's encoding state, so for categorical
features the new value must be an existing code or the Missing sentinel.
*/
func (f *Feature) SetValue(sampleIdx int, v float64) {
	f.values[sampleIdx] = v
}

/*
NCategories returns the number of distinct categories of a categorical
feature, and 0 for any other kind.
*/
func (f *Feature) NCategories() int {
	return len(f.codes)
}

/*
Categories returns the distinct original string labels of a categorical
feature, in ascending code order. It returns an empty slice for numeric
and textual features.
*/
func (f *Feature) Categories() []string {
	codes := make([]float64, 0, len(f.labels))
	for code := range f.labels {
		codes = append(codes, code)
	}
	sort.Float64s(codes)
	labels := make([]string, len(codes))
	for i, code := range codes {
		labels[i] = f.labels[code]
	}
	return labels
}

/*
CategoryLabel returns the original string label for a category code and
true, or "" and false if the code is not mapped by the feature.
*/
func (f *Feature) CategoryLabel(code float64) (string, bool) {
	label, ok := f.labels[code]
	return label, ok
}

/*
CategoryCode returns the code a string label encodes to and true, or the
Missing sentinel and false if the label is unknown to the feature.
*/
func (f *Feature) CategoryCode(label string) (float64, bool) {
	code, ok := f.codes[label]
	if !ok {
		return Missing, false
	}
	return code, true
}

/*
Clone returns a copy of the feature under a new name. The value sequence
is deep-copied so the clone can be mutated independently; encoding state
is shared, as it is never modified after construction.
*/
func (f *Feature) Clone(name string) *Feature {
	vs := make([]float64, len(f.values))
	copy(vs, f.values)
	return &Feature{
		kind:   f.kind,
		name:   name,
		values: vs,
		codes:  f.codes,
		labels: f.labels,
		tokens: f.tokens,
	}
}

/*
TokenAt deterministically selects one token from the token set of the
given sample of a textual feature: the token at position key modulo the
set size, under the set's ascending order. It returns false if the
sample's token set is empty.
*/
func (f *Feature) TokenAt(sampleIdx int, key uint) (uint32, bool) {
	set := f.tokens[sampleIdx]
	if len(set) == 0 {
		return 0, false
	}
	return set[key%uint(len(set))], true
}

/*
HasToken returns true if the token set of the given sample of a textual
feature contains the given token.
*/
func (f *Feature) HasToken(sampleIdx int, token uint32) bool {
	set := f.tokens[sampleIdx]
	i := sort.Search(len(set), func(i int) bool { return set[i] >= token })
	return i < len(set) && set[i] == token
}

/*
NTokens returns the size of the token set of the given sample of a
textual feature.
*/
func (f *Feature) NTokens(sampleIdx int) int {
	return len(f.tokens[sampleIdx])
}

/*
Entropy returns, for a textual feature, the sum over all tokens observed
anywhere in the feature of the binary entropy of the token's presence:
with p the fraction of samples whose token set contains the token, each
token contributes -(p*ln(p) + (1-p)*ln(1-p)).
*/
func (f *Feature) Entropy() float64 {
	n := float64(len(f.tokens))
	counts := make(map[uint32]int)
	for _, set := range f.tokens {
		for _, token := range set {
			counts[token]++
		}
	}
	entropy := 0.0
	for _, c := range counts {
		p := float64(c) / n
		entropy -= p * math.Log(p)
		if q := 1 - p; q > 0 {
			entropy -= q * math.Log(q)
		}
	}
	return entropy
}
