package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/grovelab/grove/feature"
)

const (
	// DefaultDataDelimiter separates the cells of an AFM row.
	DefaultDataDelimiter = "\t"
	// DefaultHeaderDelimiter separates the type letter from the rest
	// of an AFM feature header, as in "N:height".
	DefaultHeaderDelimiter = ":"
)

/*
ReadAFM parses a delimited attribute matrix. The first row carries
column headers (its leading cell, over the row-header column, is
ignored); every other row starts with a row header. Features may be
stored as rows or as columns: if at least one column header is a valid
typed feature header the features are taken to be columns and the
matrix is transposed, otherwise the row headers are the feature
headers. A feature header is typed by its first letter and the header
delimiter: N for numeric, C or B for categorical, T for textual.
*/
func ReadAFM(r io.Reader, dataDelim, headerDelim string) (*Artifacts, error) {
	if headerDelim == " " {
		return nil, fmt.Errorf("header delimiter must not be a space")
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("empty input")
	}
	headerCells := strings.Split(chomp(scanner.Text()), dataDelim)
	if len(headerCells) < 2 {
		return nil, fmt.Errorf("header row has no columns")
	}
	columnHeaders := headerCells[1:]

	featuresAsRows := true
	for _, h := range columnHeaders {
		if _, ok := headerKind(h, headerDelim); ok {
			featuresAsRows = false
			break
		}
	}

	var rowHeaders []string
	var matrix [][]string
	for line := 2; scanner.Scan(); line++ {
		row := chomp(scanner.Text())
		if row == "" {
			continue
		}
		cells := strings.Split(row, dataDelim)
		if len(cells) != len(columnHeaders)+1 {
			return nil, fmt.Errorf("line %d contains %d fields, expected %d", line, len(cells), len(columnHeaders)+1)
		}
		rowHeaders = append(rowHeaders, cells[0])
		values := make([]string, len(columnHeaders))
		for i, c := range cells[1:] {
			values[i] = strings.TrimSpace(c)
		}
		matrix = append(matrix, values)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %v", err)
	}
	if len(matrix) == 0 {
		return nil, fmt.Errorf("no data rows")
	}

	artifacts := &Artifacts{}
	if featuresAsRows {
		artifacts.RawMatrix = matrix
		artifacts.Names = rowHeaders
		artifacts.SampleLabels = columnHeaders
	} else {
		artifacts.RawMatrix = transpose(matrix)
		artifacts.Names = columnHeaders
		artifacts.SampleLabels = rowHeaders
	}

	artifacts.Kinds = make([]feature.Kind, len(artifacts.Names))
	for i, name := range artifacts.Names {
		kind, ok := headerKind(name, headerDelim)
		if !ok {
			return nil, fmt.Errorf("unknown feature type for header %q", name)
		}
		artifacts.Kinds[i] = kind
	}
	return artifacts, nil
}

// headerKind derives a feature kind from a typed AFM header.
func headerKind(header, headerDelim string) (feature.Kind, bool) {
	if len(header) < 2 || header[1:2] != headerDelim {
		return 0, false
	}
	switch header[0] {
	case 'N':
		return feature.Numeric, true
	case 'C', 'B':
		return feature.Categorical, true
	case 'T':
		return feature.Textual, true
	}
	return 0, false
}

func chomp(s string) string {
	return strings.TrimRight(s, "\r\n")
}
