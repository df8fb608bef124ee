package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/grovelab/grove/feature"
)

/*
ReadCSV parses a plain CSV stream whose columns are typed by the given
feature-kind mapping, as read from a metadata file. The header row
names the features; every name must be declared in the mapping. The
first column is used as sample labels when its header is not declared
as a feature. Cells holding "?" or other missing-value spellings are
treated as missing by table construction.
*/
func ReadCSV(r io.Reader, kinds map[string]feature.Kind) (*Artifacts, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("empty header")
	}

	labelColumn := -1
	if _, declared := kinds[header[0]]; !declared {
		labelColumn = 0
	}

	artifacts := &Artifacts{}
	var columns []int
	for i, name := range header {
		if i == labelColumn {
			continue
		}
		kind, declared := kinds[name]
		if !declared {
			return nil, fmt.Errorf("parsing header: reference to undeclared feature %s", name)
		}
		columns = append(columns, i)
		artifacts.Names = append(artifacts.Names, name)
		artifacts.Kinds = append(artifacts.Kinds, kind)
	}
	artifacts.RawMatrix = make([][]string, len(columns))

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		if labelColumn >= 0 {
			artifacts.SampleLabels = append(artifacts.SampleLabels, row[labelColumn])
		}
		for j, col := range columns {
			artifacts.RawMatrix[j] = append(artifacts.RawMatrix[j], row[col])
		}
	}
	if len(artifacts.RawMatrix) == 0 || len(artifacts.RawMatrix[0]) == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	return artifacts, nil
}
