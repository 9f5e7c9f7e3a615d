package schema

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FromCSVHeader reads the column schema out of a dataset file: variable
// names come from the header record, and type tags are inferred from the
// first data record when one exists (a cell that parses as a number tags
// its column Numeric, anything else Categorical). A header-only file
// yields a VarSet with every column tagged Unknown.
func FromCSVHeader(r io.Reader) (*VarSet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}

	first, err := cr.Read()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading first data record: %w", err)
	}

	vs := New()
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t := Unknown
		if i < len(first) {
			t = inferColumnType(first[i])
		}
		vs.Add(name, t)
	}
	return vs, nil
}

func inferColumnType(cell string) ColumnType {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return Unknown
	}
	if _, err := strconv.ParseFloat(cell, 64); err == nil {
		return Numeric
	}
	return Categorical
}
