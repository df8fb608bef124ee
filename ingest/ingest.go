/*
Package ingest parses the two supported tabular input formats — the
delimited attribute matrix (AFM) and the relational-attribute format
(ARFF) — plus plain CSV typed by a feature-kind schema, into the four
parallel artifacts a table is constructed from: a feature-major raw
string matrix, feature names, per-feature kinds and sample labels.
*/
package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/grovelab/grove/feature"
	"github.com/grovelab/grove/table"
)

/*
Artifacts holds the parsed contents of a data file, ready for table
construction. RawMatrix is feature-major: one row of sample values per
feature. SampleLabels may be empty, in which case the table synthesizes
placeholders.
*/
type Artifacts struct {
	RawMatrix    [][]string
	Names        []string
	Kinds        []feature.Kind
	SampleLabels []string
}

/*
Table builds a table from the artifacts.
*/
func (a *Artifacts) Table(useContrasts bool) (*table.Table, error) {
	return table.FromRaw(a.RawMatrix, a.Names, a.Kinds, a.SampleLabels, useContrasts)
}

/*
LoadTable opens the file at the given path, parses it according to its
extension — ".arff" for ARFF, anything else for AFM with the default
delimiters — and returns a table built from it.
*/
func LoadTable(path string, useContrasts bool) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening data file: %v", err)
	}
	defer f.Close()
	var artifacts *Artifacts
	if strings.EqualFold(strings.TrimPrefix(filepathExt(path), "."), "arff") {
		artifacts, err = ReadARFF(f)
	} else {
		artifacts, err = ReadAFM(f, DefaultDataDelimiter, DefaultHeaderDelimiter)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing data file %s: %v", path, err)
	}
	return artifacts.Table(useContrasts)
}

func filepathExt(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i:]
	}
	return ""
}

// transpose flips a sample-major matrix into a feature-major one (or
// vice versa). The matrix must be rectangular and non-empty.
func transpose(matrix [][]string) [][]string {
	nRows := len(matrix)
	nCols := len(matrix[0])
	out := make([][]string, nCols)
	for i := range out {
		out[i] = make([]string, nRows)
		for j := 0; j < nRows; j++ {
			out[i][j] = matrix[j][i]
		}
	}
	return out
}
