package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/grovelab/grove/feature"
)

/*
ReadARFF parses a relational-attribute file: a @relation declaration,
one @attribute declaration per feature (numeric and real attributes are
numeric features, everything else categorical), a @data marker and one
comma-separated sample per row. Comment lines starting with % and blank
lines are skipped. ARFF carries no sample labels; the table synthesizes
placeholders.
*/
func ReadARFF(r io.Reader) (*Artifacts, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	artifacts := &Artifacts{}
	hasRelation := false
	hasData := false
	for scanner.Scan() {
		row := chomp(scanner.Text())
		if row == "" || strings.HasPrefix(row, "%") {
			continue
		}
		upper := strings.ToUpper(row)
		switch {
		case !hasRelation && strings.HasPrefix(upper, "@RELATION"):
			hasRelation = true
		case strings.HasPrefix(upper, "@ATTRIBUTE"):
			name, kind, err := parseARFFAttribute(row)
			if err != nil {
				return nil, err
			}
			artifacts.Names = append(artifacts.Names, name)
			artifacts.Kinds = append(artifacts.Kinds, kind)
		case !hasData && strings.HasPrefix(upper, "@DATA"):
			hasData = true
		default:
			if !hasData {
				return nil, fmt.Errorf("incorrectly formatted ARFF row %q", row)
			}
			fields := strings.Split(row, ",")
			if len(fields) != len(artifacts.Names) {
				return nil, fmt.Errorf("sample contains %d fields, expected %d", len(fields), len(artifacts.Names))
			}
			for i := range fields {
				fields[i] = strings.TrimSpace(fields[i])
			}
			artifacts.RawMatrix = append(artifacts.RawMatrix, fields)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %v", err)
	}
	if !hasRelation {
		return nil, fmt.Errorf("could not find @relation identifier")
	}
	if !hasData {
		return nil, fmt.Errorf("could not find @data identifier")
	}
	if len(artifacts.RawMatrix) == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	artifacts.RawMatrix = transpose(artifacts.RawMatrix)
	return artifacts, nil
}

func parseARFFAttribute(row string) (string, feature.Kind, error) {
	fields := strings.Fields(row)
	if len(fields) < 3 {
		return "", 0, fmt.Errorf("incorrectly formatted ARFF attribute %q", row)
	}
	name := fields[1]
	kind := feature.Categorical
	switch strings.ToUpper(fields[2]) {
	case "NUMERIC", "REAL":
		kind = feature.Numeric
	}
	return name, kind, nil
}
