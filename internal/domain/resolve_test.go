package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTop        = "Top Mount"
	testSide       = "Side Mount"
	testSingleTop  = "Single Top Mount"
	testSingleSide = "Single Side Mount"
	testTwoSide    = "Two or More Side Mount"
	testCedar      = "Alaskan Yellow Cedar"
	testPine       = "Southern Yellow Pine"
)

func ptr(v float64) *float64 { return &v }

// sampleTable mirrors a slice of the wide data.csv after normalization.
func sampleTable(t *testing.T) *Table {
	t.Helper()
	rows := []ReferenceRow{
		{testTop, testSingleTop, "6x6", testCedar, 20, 100, 12.5},
		{testTop, testSingleTop, "6x6", testPine, 20, 100, 0},
		{testTop, testSingleTop, "8x8", testCedar, 20, 100, 24},
		{testTop, testSingleTop, "8x8", testPine, 20, 100, 18.2},
		{testTop, testSingleTop, "10x10", testCedar, 20, 100, 40},
		{testTop, testSingleTop, "10x10", testPine, 20, 100, 33},
		{testTop, testSingleTop, "6x6", testCedar, 25, 100, 6},
		{testTop, testSingleTop, "6x6", testPine, 25, 100, 0},
		{testTop, testSingleTop, "6x6", testCedar, 20, 130, 5.5},
		{testTop, testSingleTop, "6x6", testPine, 20, 130, 0},
		{testSide, testSingleSide, "8x8", testCedar, 16, 90, 9},
		{testSide, testSingleSide, "8x8", testPine, 16, 90, 7.25},
		{testSide, testTwoSide, "8x8", testCedar, 16, 110, 0},
		{testSide, testTwoSide, "8x8", testPine, 16, 110, 0},
	}
	table, err := NewTable(rows)
	require.NoError(t, err)
	return table
}

func TestLookupCapacity(t *testing.T) {
	table := sampleTable(t)

	t.Run("both materials available", func(t *testing.T) {
		got, err := table.LookupCapacity(CapacityKey{testTop, testSingleTop, "8x8", 20, 100})
		require.NoError(t, err)
		want := []MaterialCapacity{
			{Material: testCedar, Status: StatusAvailable, EPA: 24},
			{Material: testPine, Status: StatusAvailable, EPA: 18.2},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("LookupCapacity mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("sentinel reported as not possible", func(t *testing.T) {
		got, err := table.LookupCapacity(CapacityKey{testTop, testSingleTop, "6x6", 20, 100})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, StatusAvailable, got[0].Status)
		assert.Equal(t, 12.5, got[0].EPA)
		assert.Equal(t, StatusNotPossible, got[1].Status)
		assert.Zero(t, got[1].EPA)
	})

	t.Run("absent key is no match for every material", func(t *testing.T) {
		got, err := table.LookupCapacity(CapacityKey{testTop, testSingleTop, "12x12", 20, 100})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, mc := range got {
			assert.Equal(t, StatusNoMatch, mc.Status, mc.Material)
		}
	})

	t.Run("matching is exact", func(t *testing.T) {
		got, err := table.LookupCapacity(CapacityKey{"top mount", testSingleTop, "6x6", 20, 100})
		require.NoError(t, err)
		assert.Equal(t, StatusNoMatch, got[0].Status)
	})

	t.Run("invalid numerics rejected", func(t *testing.T) {
		for _, key := range []CapacityKey{
			{testTop, testSingleTop, "6x6", -20, 100},
			{testTop, testSingleTop, "6x6", 20, math.NaN()},
			{testTop, testSingleTop, "6x6", math.Inf(1), 100},
		} {
			_, err := table.LookupCapacity(key)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

func TestLookupCapacity_SingleRowExample(t *testing.T) {
	table, err := NewTable([]ReferenceRow{
		{"Top", "Single Top", "6x6", "cedar", 20, 100, 12.5},
		{"Top", "Single Top", "6x6", "pine", 20, 100, 0},
	})
	require.NoError(t, err)

	got, err := table.LookupCapacity(CapacityKey{"Top", "Single Top", "6x6", 20, 100})
	require.NoError(t, err)
	assert.Equal(t, []MaterialCapacity{
		{Material: "cedar", Status: StatusAvailable, EPA: 12.5},
		{Material: "pine", Status: StatusNotPossible},
	}, got)
}

func TestLookupCapacity_EveryStoredRow(t *testing.T) {
	table := sampleTable(t)
	for _, r := range table.Rows() {
		got, err := table.LookupCapacity(CapacityKey{r.MountType, r.FixtureConfiguration, r.PoleSize, r.PoleHeightFt, r.WindSpeedMPH})
		require.NoError(t, err)

		var hits int
		for _, mc := range got {
			if mc.Material != r.Material {
				continue
			}
			hits++
			if r.Possible() {
				assert.Equal(t, StatusAvailable, mc.Status)
				assert.Equal(t, r.EPA, mc.EPA)
			} else {
				assert.Equal(t, StatusNotPossible, mc.Status)
			}
		}
		assert.Equal(t, 1, hits)
	}
}

func TestResolveSizes(t *testing.T) {
	table := sampleTable(t)

	tests := []struct {
		name   string
		query  SizeQuery
		cedar  []string
		pine   []string
		status [2]Status
	}{
		{
			name:   "zero threshold excludes sentinel",
			query:  SizeQuery{testTop, testSingleTop, 20, 100, 0},
			cedar:  []string{"6x6", "8x8", "10x10"},
			pine:   []string{"8x8", "10x10"},
			status: [2]Status{StatusSolved, StatusSolved},
		},
		{
			name:   "threshold filters smaller poles",
			query:  SizeQuery{testTop, testSingleTop, 20, 100, 20},
			cedar:  []string{"8x8", "10x10"},
			pine:   []string{"10x10"},
			status: [2]Status{StatusSolved, StatusSolved},
		},
		{
			name:   "threshold is inclusive",
			query:  SizeQuery{testTop, testSingleTop, 20, 100, 33},
			cedar:  []string{"10x10"},
			pine:   []string{"10x10"},
			status: [2]Status{StatusSolved, StatusSolved},
		},
		{
			name:   "materials resolved independently",
			query:  SizeQuery{testTop, testSingleTop, 25, 100, 1},
			cedar:  []string{"6x6"},
			pine:   []string{},
			status: [2]Status{StatusSolved, StatusNoSolution},
		},
		{
			name:   "all sentinel rows give no solution",
			query:  SizeQuery{testSide, testTwoSide, 16, 110, 0},
			cedar:  []string{},
			pine:   []string{},
			status: [2]Status{StatusNoSolution, StatusNoSolution},
		},
		{
			name:   "unknown installation gives no solution",
			query:  SizeQuery{testSide, testSingleSide, 40, 90, 0},
			cedar:  []string{},
			pine:   []string{},
			status: [2]Status{StatusNoSolution, StatusNoSolution},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.ResolveSizes(tt.query)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, testCedar, got[0].Material)
			assert.Equal(t, tt.status[0], got[0].Status)
			assert.Equal(t, tt.cedar, got[0].Sizes)
			assert.Equal(t, testPine, got[1].Material)
			assert.Equal(t, tt.status[1], got[1].Status)
			assert.Equal(t, tt.pine, got[1].Sizes)
		})
	}
}

func TestResolveSizes_Example(t *testing.T) {
	table, err := NewTable([]ReferenceRow{
		{"Top", "SingleTop", "A", "AYC", 20, 100, 10},
		{"Top", "SingleTop", "B", "SYP", 20, 100, 0},
	})
	require.NoError(t, err)

	got, err := table.ResolveSizes(SizeQuery{"Top", "SingleTop", 20, 100, 5})
	require.NoError(t, err)
	assert.Equal(t, []MaterialSizes{
		{Material: "AYC", Status: StatusSolved, Sizes: []string{"A"}},
		{Material: "SYP", Status: StatusNoSolution, Sizes: []string{}},
	}, got)
}

func TestResolveSizes_Monotonic(t *testing.T) {
	table := sampleTable(t)
	thresholds := []float64{0, 1, 5.5, 6, 12.5, 18.2, 24, 33, 40, 41}

	for i := 1; i < len(thresholds); i++ {
		lower, err := table.ResolveSizes(SizeQuery{testTop, testSingleTop, 20, 100, thresholds[i-1]})
		require.NoError(t, err)
		higher, err := table.ResolveSizes(SizeQuery{testTop, testSingleTop, 20, 100, thresholds[i]})
		require.NoError(t, err)

		for m := range higher {
			assert.Subset(t, lower[m].Sizes, higher[m].Sizes,
				"%s: sizes at %v must be a subset of sizes at %v", higher[m].Material, thresholds[i], thresholds[i-1])
		}
	}
}

func TestResolveSizes_InvalidThreshold(t *testing.T) {
	table := sampleTable(t)
	for _, minEPA := range []float64{-0.01, math.NaN(), math.Inf(1)} {
		_, err := table.ResolveSizes(SizeQuery{testTop, testSingleTop, 20, 100, minEPA})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)

		var ie *InvalidInputError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, "min_epa", ie.Field)
	}
}

func TestAllowedValues(t *testing.T) {
	table := sampleTable(t)

	tests := []struct {
		name  string
		field Field
		sel   Selection
		want  []string
	}{
		{"mount types in table order", FieldMountType, Selection{}, []string{testTop, testSide}},
		{"fixtures for side mount", FieldFixtureConfiguration, Selection{MountType: testSide}, []string{testSingleSide, testTwoSide}},
		{"wind speeds ascending", FieldWindSpeed, Selection{MountType: testTop, FixtureConfiguration: testSingleTop}, []string{"100", "130"}},
		{"heights for wind speed", FieldPoleHeight, Selection{MountType: testTop, FixtureConfiguration: testSingleTop, WindSpeedMPH: ptr(100)}, []string{"20", "25"}},
		{"heights narrowed by wind speed", FieldPoleHeight, Selection{MountType: testTop, FixtureConfiguration: testSingleTop, WindSpeedMPH: ptr(130)}, []string{"20"}},
		{"pole sizes last", FieldPoleSize, Selection{MountType: testTop, FixtureConfiguration: testSingleTop, WindSpeedMPH: ptr(100), PoleHeightFt: ptr(20)}, []string{"6x6", "8x8", "10x10"}},
		{"downstream selections ignored", FieldFixtureConfiguration, Selection{MountType: testTop, PoleSize: "8x8", PoleHeightFt: ptr(99)}, []string{testSingleTop}},
		{"no rows left", FieldFixtureConfiguration, Selection{MountType: "Wall Mount"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.AllowedValues(tt.field, tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllowedValues_MissingUpstream(t *testing.T) {
	table := sampleTable(t)

	_, err := table.AllowedValues(FieldPoleHeight, Selection{MountType: testTop, WindSpeedMPH: ptr(100)})
	require.Error(t, err)

	var ie *InvalidInputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "fixture_configuration", ie.Field)
}

func TestAllowedValues_UnknownField(t *testing.T) {
	table := sampleTable(t)
	_, err := table.AllowedValues(Field(42), Selection{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAllowedValues_SubsetOfGlobal(t *testing.T) {
	table := sampleTable(t)

	global := make(map[Field][]string)
	for _, f := range FieldOrder {
		var vals []string
		seen := map[string]bool{}
		for _, r := range table.Rows() {
			if v := r.value(f); !seen[v] {
				seen[v] = true
				vals = append(vals, v)
			}
		}
		global[f] = vals
	}

	mounts, err := table.AllowedValues(FieldMountType, Selection{})
	require.NoError(t, err)
	for _, m := range mounts {
		fixtures, err := table.AllowedValues(FieldFixtureConfiguration, Selection{MountType: m})
		require.NoError(t, err)
		assert.Subset(t, global[FieldFixtureConfiguration], fixtures)

		for _, fx := range fixtures {
			winds, err := table.AllowedValues(FieldWindSpeed, Selection{MountType: m, FixtureConfiguration: fx})
			require.NoError(t, err)
			assert.Subset(t, global[FieldWindSpeed], winds)
			assert.NotEmpty(t, winds)
		}
	}
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"6x6", "8x8", true},
		{"8x8", "10x10", true},
		{"10x10", "6x6", false},
		{"6x6", "6x8", true},
		{"A", "B", true},
		{"6x6", "6x6 Tapered", true},
		{"006x6", "7x7", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, naturalLess(tt.a, tt.b), "%q < %q", tt.a, tt.b)
	}
}
