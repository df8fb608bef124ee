package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/grovelab/grove/feature/yaml"
	"github.com/grovelab/grove/ingest"
	"github.com/grovelab/grove/table"
)

/*
loadTable builds a table from the data file at dataPath. CSV files need
the feature kinds declared in a YAML metadata file; AFM and ARFF files
carry their own typing and ignore metadataPath.
*/
func loadTable(dataPath, metadataPath string, useContrasts bool) (*table.Table, error) {
	if !strings.EqualFold(fileExt(dataPath), ".csv") {
		return ingest.LoadTable(dataPath, useContrasts)
	}
	if metadataPath == "" {
		return nil, fmt.Errorf("CSV input requires a metadata file declaring feature kinds")
	}
	kinds, err := yaml.ReadKindsFromFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("parsing metadata file %s: %v", metadataPath, err)
	}
	f, err := os.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("opening data file: %v", err)
	}
	defer f.Close()
	artifacts, err := ingest.ReadCSV(f, kinds)
	if err != nil {
		return nil, fmt.Errorf("parsing data file %s: %v", dataPath, err)
	}
	return artifacts.Table(useContrasts)
}

func fileExt(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i:]
	}
	return ""
}
