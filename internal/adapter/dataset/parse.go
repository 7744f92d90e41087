package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ktg84478/erovista/internal/domain"
)

// Layout identifies which CSV shape a dataset used.
type Layout string

const (
	// LayoutWide has one capacity column per material ("<material> Poles").
	LayoutWide Layout = "wide"
	// LayoutLong has wood_type and epa columns, one row per material.
	LayoutLong Layout = "long"
)

const (
	colMountType  = "mount_type"
	colFixture    = "fixture_configuration"
	colPoleSize   = "pole_size"
	colEroVista   = "ero_vista_pole_size"
	colPoleHeight = "pole_height_ft"
	colWindSpeed  = "wind_speed_mph"
	colWoodType   = "wood_type"
	colEPA        = "epa"

	materialSuffix = " Poles"
)

// Dataset is a parsed reference table plus where it came from.
type Dataset struct {
	Table  *domain.Table
	Layout Layout
	Source string
	Lines  int
}

type materialColumn struct {
	index    int
	header   string
	material string
}

type header struct {
	layout    Layout
	index     map[string]int
	materials []materialColumn
}

// Parse reads a reference table in either layout. Header problems are returned as
// *domain.SchemaError, bad rows as *domain.RowError with the CSV line number.
func Parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	names, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.SchemaError{Reason: "dataset is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	h, err := parseHeader(names)
	if err != nil {
		return nil, err
	}

	var rows []domain.ReferenceRow
	var lines []int
	total := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &domain.RowError{Line: pe.Line, Err: pe.Err}
			}
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		line, _ := cr.FieldPos(0)
		total = line

		parsed, err := h.rows(rec)
		if err != nil {
			var re *domain.RowError
			if errors.As(err, &re) {
				re.Line = line
			}
			return nil, err
		}
		for range parsed {
			lines = append(lines, line)
		}
		rows = append(rows, parsed...)
	}

	table, err := domain.NewTable(rows)
	if err != nil {
		var re *domain.RowError
		if errors.As(err, &re) && re.Line > 0 && re.Line <= len(lines) {
			re.Line = lines[re.Line-1]
			if re.Previous > 0 {
				re.Previous = lines[re.Previous-1]
			}
		}
		return nil, err
	}

	return &Dataset{Table: table, Layout: h.layout, Lines: total}, nil
}

func parseHeader(names []string) (*header, error) {
	h := &header{index: make(map[string]int, len(names))}
	for i, n := range names {
		n = strings.TrimSpace(strings.TrimPrefix(n, "\ufeff"))
		if _, dup := h.index[n]; dup {
			return nil, &domain.SchemaError{Reason: fmt.Sprintf("column %q appears more than once", n)}
		}
		h.index[n] = i
		if strings.HasSuffix(n, materialSuffix) {
			material := strings.TrimSpace(strings.TrimSuffix(n, materialSuffix))
			if material != "" {
				h.materials = append(h.materials, materialColumn{index: i, header: n, material: material})
			}
		}
	}

	// Either pole size column name is accepted.
	if _, ok := h.index[colPoleSize]; !ok {
		if i, ok := h.index[colEroVista]; ok {
			h.index[colPoleSize] = i
		}
	}

	var missing []string
	for _, c := range []string{colMountType, colFixture, colPoleSize, colPoleHeight, colWindSpeed} {
		if _, ok := h.index[c]; !ok {
			missing = append(missing, c)
		}
	}

	_, hasWood := h.index[colWoodType]
	_, hasEPA := h.index[colEPA]
	switch {
	case hasWood || hasEPA:
		h.layout = LayoutLong
		if !hasWood {
			missing = append(missing, colWoodType)
		}
		if !hasEPA {
			missing = append(missing, colEPA)
		}
	case len(h.materials) > 0:
		h.layout = LayoutWide
	default:
		if len(missing) == 0 {
			return nil, &domain.SchemaError{Reason: `no material capacity columns (expected "<material> Poles" or wood_type and epa)`}
		}
	}

	if len(missing) > 0 {
		return nil, &domain.SchemaError{Missing: missing}
	}
	return h, nil
}

func (h *header) rows(rec []string) ([]domain.ReferenceRow, error) {
	base := domain.ReferenceRow{
		MountType:            h.text(rec, colMountType),
		FixtureConfiguration: h.text(rec, colFixture),
		PoleSize:             h.text(rec, colPoleSize),
	}

	var err error
	if base.PoleHeightFt, err = h.number(rec, colPoleHeight, false); err != nil {
		return nil, err
	}
	if base.WindSpeedMPH, err = h.number(rec, colWindSpeed, false); err != nil {
		return nil, err
	}

	if h.layout == LayoutLong {
		row := base
		row.Material = h.text(rec, colWoodType)
		if row.EPA, err = h.number(rec, colEPA, true); err != nil {
			return nil, err
		}
		return []domain.ReferenceRow{row}, nil
	}

	out := make([]domain.ReferenceRow, 0, len(h.materials))
	for _, mc := range h.materials {
		row := base
		row.Material = mc.material
		if row.EPA, err = parseNumber(rec[mc.index], mc.header, true); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (h *header) text(rec []string, col string) string {
	return strings.TrimSpace(rec[h.index[col]])
}

func (h *header) number(rec []string, col string, emptyIsSentinel bool) (float64, error) {
	return parseNumber(rec[h.index[col]], col, emptyIsSentinel)
}

// parseNumber parses a numeric cell. An empty capacity cell is the sentinel.
func parseNumber(raw, col string, emptyIsSentinel bool) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if emptyIsSentinel {
			return domain.SentinelEPA, nil
		}
		return 0, &domain.RowError{Column: col, Err: errors.New("value is empty")}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &domain.RowError{Column: col, Err: fmt.Errorf("not a number: %q", raw)}
	}
	return v, nil
}
