package domain

import (
	"strconv"
	"strings"
)

// Field is a selectable key column of the reference table.
type Field int

const (
	FieldMountType Field = iota
	FieldFixtureConfiguration
	FieldWindSpeed
	FieldPoleHeight
	FieldPoleSize
)

// FieldOrder is the fixed left-to-right order in which selections narrow the table.
var FieldOrder = []Field{
	FieldMountType,
	FieldFixtureConfiguration,
	FieldWindSpeed,
	FieldPoleHeight,
	FieldPoleSize,
}

var fieldNames = map[Field]string{
	FieldMountType:            "mount_type",
	FieldFixtureConfiguration: "fixture_configuration",
	FieldWindSpeed:            "wind_speed_mph",
	FieldPoleHeight:           "pole_height_ft",
	FieldPoleSize:             "pole_size",
}

var fieldAliases = map[string]Field{
	"mount_type":            FieldMountType,
	"fixture_configuration": FieldFixtureConfiguration,
	"wind_speed_mph":        FieldWindSpeed,
	"wind_speed":            FieldWindSpeed,
	"pole_height_ft":        FieldPoleHeight,
	"pole_height":           FieldPoleHeight,
	"pole_size":             FieldPoleSize,
	"ero_vista_pole_size":   FieldPoleSize,
}

func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "unknown"
}

// Numeric reports whether the field holds a number rather than a category.
func (f Field) Numeric() bool {
	return f == FieldWindSpeed || f == FieldPoleHeight
}

// ParseField maps a column name or alias to a Field.
func ParseField(name string) (Field, error) {
	f, ok := fieldAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, &InvalidInputError{Field: "field", Reason: strconv.Quote(name) + " is not a selectable field"}
	}
	return f, nil
}

// Selection holds the values chosen so far. Nil numeric pointers and empty
// strings mean "not chosen".
type Selection struct {
	MountType            string
	FixtureConfiguration string
	WindSpeedMPH         *float64
	PoleHeightFt         *float64
	PoleSize             string
}

func (s Selection) has(f Field) bool {
	switch f {
	case FieldMountType:
		return s.MountType != ""
	case FieldFixtureConfiguration:
		return s.FixtureConfiguration != ""
	case FieldWindSpeed:
		return s.WindSpeedMPH != nil
	case FieldPoleHeight:
		return s.PoleHeightFt != nil
	case FieldPoleSize:
		return s.PoleSize != ""
	}
	return false
}

func (s Selection) validate(f Field) error {
	switch f {
	case FieldWindSpeed:
		return validateNumeric(f.String(), *s.WindSpeedMPH)
	case FieldPoleHeight:
		return validateNumeric(f.String(), *s.PoleHeightFt)
	}
	return nil
}

func (s Selection) matches(r ReferenceRow, f Field) bool {
	switch f {
	case FieldMountType:
		return r.MountType == s.MountType
	case FieldFixtureConfiguration:
		return r.FixtureConfiguration == s.FixtureConfiguration
	case FieldWindSpeed:
		return r.WindSpeedMPH == *s.WindSpeedMPH
	case FieldPoleHeight:
		return r.PoleHeightFt == *s.PoleHeightFt
	case FieldPoleSize:
		return r.PoleSize == s.PoleSize
	}
	return false
}

// value returns the row's value for f, formatted the way AllowedValues reports it.
func (r ReferenceRow) value(f Field) string {
	switch f {
	case FieldMountType:
		return r.MountType
	case FieldFixtureConfiguration:
		return r.FixtureConfiguration
	case FieldWindSpeed:
		return FormatNumber(r.WindSpeedMPH)
	case FieldPoleHeight:
		return FormatNumber(r.PoleHeightFt)
	case FieldPoleSize:
		return r.PoleSize
	}
	return ""
}

// FormatNumber renders a numeric key with the shortest exact representation.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
