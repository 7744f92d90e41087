package domain

import (
	"errors"
	"math"
	"strings"
)

// Table is the immutable reference table. The zero value is an empty table.
type Table struct {
	rows      []ReferenceRow
	materials []string
}

type rowKey struct {
	mountType, fixture, poleSize, material string
	height, wind                           float64
}

func keyOf(r ReferenceRow) rowKey {
	return rowKey{
		mountType: r.MountType,
		fixture:   r.FixtureConfiguration,
		poleSize:  r.PoleSize,
		material:  r.Material,
		height:    r.PoleHeightFt,
		wind:      r.WindSpeedMPH,
	}
}

// NewTable validates rows and returns a Table holding its own copy of them.
// Materials are ordered by first appearance. Errors are *RowError values whose
// Line is the 1-based position in rows.
func NewTable(rows []ReferenceRow) (*Table, error) {
	t := &Table{rows: make([]ReferenceRow, len(rows))}
	copy(t.rows, rows)

	seen := make(map[rowKey]int, len(rows))
	known := make(map[string]bool)
	for i, r := range t.rows {
		if err := validateRow(r); err != nil {
			var re *RowError
			if errors.As(err, &re) {
				re.Line = i + 1
				return nil, re
			}
			return nil, err
		}
		k := keyOf(r)
		if first, dup := seen[k]; dup {
			return nil, &RowError{Line: i + 1, Previous: first, Err: ErrDuplicateKey}
		}
		seen[k] = i + 1
		if !known[r.Material] {
			known[r.Material] = true
			t.materials = append(t.materials, r.Material)
		}
	}
	return t, nil
}

func validateRow(r ReferenceRow) error {
	categories := []struct {
		column, value string
	}{
		{"mount_type", r.MountType},
		{"fixture_configuration", r.FixtureConfiguration},
		{"pole_size", r.PoleSize},
		{"material", r.Material},
	}
	for _, c := range categories {
		if strings.TrimSpace(c.value) == "" {
			return &RowError{Column: c.column, Err: errors.New("value is empty")}
		}
	}

	numerics := []struct {
		column string
		value  float64
	}{
		{"pole_height_ft", r.PoleHeightFt},
		{"wind_speed_mph", r.WindSpeedMPH},
		{"epa", r.EPA},
	}
	for _, n := range numerics {
		if err := checkNonNegative(n.value); err != nil {
			return &RowError{Column: n.column, Err: err}
		}
	}
	return nil
}

func checkNonNegative(v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return errors.New("must be a finite number")
	case v < 0:
		return errors.New("must not be negative")
	}
	return nil
}

// Len returns the number of normalized rows.
func (t *Table) Len() int { return len(t.rows) }

// Materials returns the table's materials in first-appearance order.
func (t *Table) Materials() []string {
	out := make([]string, len(t.materials))
	copy(out, t.materials)
	return out
}

// Rows returns a copy of the normalized rows.
func (t *Table) Rows() []ReferenceRow {
	out := make([]ReferenceRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// Stats summarizes a table for operators.
type Stats struct {
	Rows         int            `json:"rows"`
	Materials    []string       `json:"materials"`
	SentinelRows int            `json:"sentinel_rows"`
	Distinct     map[string]int `json:"distinct"`
}

// Stats counts rows, sentinel rows, and distinct values per selectable field.
func (t *Table) Stats() Stats {
	distinct := make(map[Field]map[string]struct{}, len(FieldOrder))
	for _, f := range FieldOrder {
		distinct[f] = make(map[string]struct{})
	}

	s := Stats{Rows: len(t.rows), Materials: t.Materials(), Distinct: make(map[string]int, len(FieldOrder))}
	for _, r := range t.rows {
		if !r.Possible() {
			s.SentinelRows++
		}
		for _, f := range FieldOrder {
			distinct[f][r.value(f)] = struct{}{}
		}
	}
	for _, f := range FieldOrder {
		s.Distinct[f.String()] = len(distinct[f])
	}
	return s
}
