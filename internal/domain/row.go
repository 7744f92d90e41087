package domain

// SentinelEPA marks a configuration that is not structurally possible.
const SentinelEPA = 0.0

// ReferenceRow is one normalized configuration/capacity record.
type ReferenceRow struct {
	MountType            string  `json:"mount_type"`
	FixtureConfiguration string  `json:"fixture_configuration"`
	PoleSize             string  `json:"pole_size"`
	Material             string  `json:"material"`
	PoleHeightFt         float64 `json:"pole_height_ft"`
	WindSpeedMPH         float64 `json:"wind_speed_mph"`
	EPA                  float64 `json:"epa"`
}

// Possible reports whether the row carries a real capacity rather than the sentinel.
func (r ReferenceRow) Possible() bool {
	return r.EPA > SentinelEPA
}

// CapacityKey identifies a single pole configuration for a capacity lookup.
type CapacityKey struct {
	MountType            string  `json:"mount_type"`
	FixtureConfiguration string  `json:"fixture_configuration"`
	PoleSize             string  `json:"pole_size"`
	PoleHeightFt         float64 `json:"pole_height_ft"`
	WindSpeedMPH         float64 `json:"wind_speed_mph"`
}

// SizeQuery asks which pole sizes carry at least MinEPA for an installation.
type SizeQuery struct {
	MountType            string  `json:"mount_type"`
	FixtureConfiguration string  `json:"fixture_configuration"`
	PoleHeightFt         float64 `json:"pole_height_ft"`
	WindSpeedMPH         float64 `json:"wind_speed_mph"`
	MinEPA               float64 `json:"min_epa"`
}

// Status is the outcome of a resolver query for one material.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusNotPossible Status = "not_possible"
	StatusNoMatch     Status = "no_match"
	StatusSolved      Status = "ok"
	StatusNoSolution  Status = "no_solution"
)

// Message returns the user-facing wording for a status.
func (s Status) Message() string {
	switch s {
	case StatusNotPossible:
		return "Selected Configuration is not Possible"
	case StatusNoMatch:
		return "No matching data found."
	case StatusNoSolution:
		return "No solution"
	default:
		return ""
	}
}

// MaterialCapacity is the capacity lookup result for one material. EPA is only
// meaningful when Status is StatusAvailable.
type MaterialCapacity struct {
	Material string  `json:"material"`
	Status   Status  `json:"status"`
	EPA      float64 `json:"epa,omitempty"`
}

// MaterialSizes is the size resolution result for one material. Sizes is empty
// when Status is StatusNoSolution.
type MaterialSizes struct {
	Material string   `json:"material"`
	Status   Status   `json:"status"`
	Sizes    []string `json:"sizes"`
}
