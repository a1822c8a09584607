// Package dataset holds the immutable table a symbolic regression run
// fits against. Feature columns keep their input order; the target
// column is extracted by name. A Dataset is shared read-only by all
// concurrent fitness evaluations.
package dataset

import (
	"fmt"

	"github.com/yugcodes-bit/updated-evo/internal/types"
)

// Column is one named numeric column of the input table.
type Column struct {
	Name   string
	Values []float64
}

// Dataset is a fixed-column-order table of features plus one target.
type Dataset struct {
	names    []string
	features [][]float64
	target   []float64
	rows     int
}

// New assembles a Dataset from ordered columns, extracting the target
// column by name. Any named constants the caller wants available to
// formulas must already be injected as ordinary columns.
func New(cols []Column, targetName string) (*Dataset, error) {
	if len(cols) == 0 {
		return nil, &types.DatasetError{Reason: "no columns"}
	}

	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c.Name] {
			return nil, &types.DatasetError{Reason: fmt.Sprintf("duplicate column %q", c.Name)}
		}
		seen[c.Name] = true
	}

	rows := len(cols[0].Values)
	if rows == 0 {
		return nil, &types.DatasetError{Reason: "dataset has zero rows"}
	}
	for _, c := range cols {
		if len(c.Values) != rows {
			return nil, &types.DatasetError{
				Reason: fmt.Sprintf("column %q has %d rows, expected %d", c.Name, len(c.Values), rows),
			}
		}
	}

	ds := &Dataset{rows: rows}
	for _, c := range cols {
		if c.Name == targetName {
			ds.target = append([]float64(nil), c.Values...)
			continue
		}
		ds.names = append(ds.names, c.Name)
		ds.features = append(ds.features, append([]float64(nil), c.Values...))
	}

	if ds.target == nil {
		return nil, &types.DatasetError{Reason: fmt.Sprintf("target column %q not found", targetName)}
	}
	if len(ds.features) == 0 {
		return nil, &types.DatasetError{Reason: "no feature columns besides the target"}
	}
	return ds, nil
}

// Rows returns the number of rows.
func (d *Dataset) Rows() int { return d.rows }

// NumFeatures returns the number of feature columns.
func (d *Dataset) NumFeatures() int { return len(d.features) }

// FeatureNames returns the feature column names in table order.
func (d *Dataset) FeatureNames() []string {
	return append([]string(nil), d.names...)
}

// Features returns the feature columns. Callers must treat the slices
// as read-only.
func (d *Dataset) Features() [][]float64 { return d.features }

// Target returns the target column. Read-only for callers.
func (d *Dataset) Target() []float64 { return d.target }
