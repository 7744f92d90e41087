package domain

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// LookupCapacity returns the maximum fixture EPA of every material for one exact
// configuration. A stored sentinel is reported as StatusNotPossible and a missing
// row as StatusNoMatch; the two are never conflated.
func (t *Table) LookupCapacity(key CapacityKey) ([]MaterialCapacity, error) {
	if err := validateNumeric("pole_height_ft", key.PoleHeightFt); err != nil {
		return nil, err
	}
	if err := validateNumeric("wind_speed_mph", key.WindSpeedMPH); err != nil {
		return nil, err
	}

	found := make(map[string]ReferenceRow, len(t.materials))
	for _, r := range t.rows {
		if r.MountType != key.MountType ||
			r.FixtureConfiguration != key.FixtureConfiguration ||
			r.PoleSize != key.PoleSize ||
			r.PoleHeightFt != key.PoleHeightFt ||
			r.WindSpeedMPH != key.WindSpeedMPH {
			continue
		}
		if _, ok := found[r.Material]; !ok {
			found[r.Material] = r
		}
	}

	out := make([]MaterialCapacity, 0, len(t.materials))
	for _, m := range t.materials {
		r, ok := found[m]
		switch {
		case !ok:
			out = append(out, MaterialCapacity{Material: m, Status: StatusNoMatch})
		case !r.Possible():
			out = append(out, MaterialCapacity{Material: m, Status: StatusNotPossible})
		default:
			out = append(out, MaterialCapacity{Material: m, Status: StatusAvailable, EPA: r.EPA})
		}
	}
	return out, nil
}

// ResolveSizes returns, per material, the distinct pole sizes whose capacity is a
// real value of at least q.MinEPA. Each material is resolved independently.
func (t *Table) ResolveSizes(q SizeQuery) ([]MaterialSizes, error) {
	if err := validateNumeric("pole_height_ft", q.PoleHeightFt); err != nil {
		return nil, err
	}
	if err := validateNumeric("wind_speed_mph", q.WindSpeedMPH); err != nil {
		return nil, err
	}
	if err := validateNumeric("min_epa", q.MinEPA); err != nil {
		return nil, err
	}

	sizes := make(map[string]map[string]bool, len(t.materials))
	for _, r := range t.rows {
		if r.MountType != q.MountType ||
			r.FixtureConfiguration != q.FixtureConfiguration ||
			r.PoleHeightFt != q.PoleHeightFt ||
			r.WindSpeedMPH != q.WindSpeedMPH {
			continue
		}
		// Threshold 0 must still exclude the sentinel.
		if !r.Possible() || r.EPA < q.MinEPA {
			continue
		}
		if sizes[r.Material] == nil {
			sizes[r.Material] = make(map[string]bool)
		}
		sizes[r.Material][r.PoleSize] = true
	}

	out := make([]MaterialSizes, 0, len(t.materials))
	for _, m := range t.materials {
		set := sizes[m]
		if len(set) == 0 {
			out = append(out, MaterialSizes{Material: m, Status: StatusNoSolution, Sizes: []string{}})
			continue
		}
		list := make([]string, 0, len(set))
		for s := range set {
			list = append(list, s)
		}
		sort.Slice(list, func(i, j int) bool { return naturalLess(list[i], list[j]) })
		out = append(out, MaterialSizes{Material: m, Status: StatusSolved, Sizes: list})
	}
	return out, nil
}

// AllowedValues returns the distinct values of field among rows matching every
// field upstream of it in FieldOrder. All upstream fields must be selected;
// selections on field itself or downstream fields are ignored.
func (t *Table) AllowedValues(field Field, sel Selection) ([]string, error) {
	pos := -1
	for i, f := range FieldOrder {
		if f == field {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, &InvalidInputError{Field: "field", Reason: "unknown field " + strconv.Itoa(int(field))}
	}

	upstream := FieldOrder[:pos]
	for _, f := range upstream {
		if !sel.has(f) {
			return nil, &InvalidInputError{Field: f.String(), Reason: "must be selected before " + field.String()}
		}
		if err := sel.validate(f); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool)
	var values []string
	var numbers []float64
rows:
	for _, r := range t.rows {
		for _, f := range upstream {
			if !sel.matches(r, f) {
				continue rows
			}
		}
		v := r.value(field)
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
		switch field {
		case FieldWindSpeed:
			numbers = append(numbers, r.WindSpeedMPH)
		case FieldPoleHeight:
			numbers = append(numbers, r.PoleHeightFt)
		}
	}

	if field.Numeric() {
		sort.Float64s(numbers)
		for i, n := range numbers {
			values[i] = FormatNumber(n)
		}
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func validateNumeric(field string, v float64) error {
	if err := checkNonNegative(v); err != nil {
		return &InvalidInputError{Field: field, Reason: err.Error()}
	}
	return nil
}

// naturalLess orders pole sizes so embedded numbers compare by value,
// e.g. "6x6" < "8x8" < "10x10".
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ca, ra := chunk(a)
		cb, rb := chunk(b)
		if ca != cb {
			da, db := isDigits(ca), isDigits(cb)
			switch {
			case da && db:
				na, nb := strings.TrimLeft(ca, "0"), strings.TrimLeft(cb, "0")
				if len(na) != len(nb) {
					return len(na) < len(nb)
				}
				if na != nb {
					return na < nb
				}
			default:
				return ca < cb
			}
		}
		a, b = ra, rb
	}
	return len(a) < len(b)
}

// chunk splits off the leading run of digits or non-digits.
func chunk(s string) (string, string) {
	digit := unicode.IsDigit(rune(s[0]))
	i := 1
	for i < len(s) && unicode.IsDigit(rune(s[i])) == digit {
		i++
	}
	return s[:i], s[i:]
}

func isDigits(s string) bool {
	return s != "" && unicode.IsDigit(rune(s[0]))
}
