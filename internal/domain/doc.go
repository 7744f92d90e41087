// Package domain models the EroVista pole configuration reference table and the
// lookups run against it.
//
// # Data Source
//
// The reference table is a small precomputed CSV (a few hundred rows) shipped with
// the sales tool. Each row ties an installation (mount type, fixture configuration,
// pole height, wind speed) and a physical pole (pole size, wood type) to the
// maximum fixture EPA the pole can carry. The table is loaded once at startup and
// never mutated; see [NewTable].
//
// # Table Conventions
//
// Two CSV layouts exist and normalize to the same [ReferenceRow] values:
//
//	Wide:  mount_type, fixture_configuration, ero_vista_pole_size, pole_height_ft,
//	       wind_speed_mph, "Alaskan Yellow Cedar Poles", "Southern Yellow Pine Poles"
//	Long:  mount_type, fixture_configuration, wood_type, pole_size, pole_height_ft,
//	       wind_speed_mph, epa
//
// In the wide layout every "<material> Poles" column becomes one row per material.
//
// EPA encoding:
//
//	Equivalent projected area in square feet.
//	0 (or an empty wide cell) is the sentinel for "this combination is structurally
//	invalid". It is reported as [StatusNotPossible] or excluded from size
//	resolution, never as a capacity of zero.
//
// # Selection Order
//
// Form inputs are resolved left to right:
//
//	mount_type → fixture_configuration → wind_speed_mph → pole_height_ft → pole_size
//
// The values offered for a field are those remaining after filtering on every
// upstream field. See [AllowedValues] and [FieldOrder].
package domain
