package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openday/internal/model"
)

func dayEvents() []model.EventRecord {
	return []model.EventRecord{
		{Date: "2025-05-12", TimeSpec: "9:00–10:00", Title: "Lab aperto", Department: "A"},
		{Date: "2025-05-12", TimeSpec: "9:30–10:30", Title: "Seminario", Department: "A"},
		{Date: "2025-05-12", TimeSpec: "11:00–12:00", Title: "Visita guidata", Department: "A"},
	}
}

// TestProject_FractionBounds tests that projected fractions stay in [0,1]
func TestProject_FractionBounds(t *testing.T) {
	axis := Axis{Min: 540, Max: 720}

	offset, extent := Project(Interval{540, 720}, axis)
	assert.Equal(t, 0.0, offset)
	assert.Equal(t, 1.0, extent)

	offset, extent = Project(Interval{600, 660}, axis)
	assert.InDelta(t, 1.0/3.0, offset, 1e-9)
	assert.InDelta(t, 1.0/3.0, extent, 1e-9)
}

// TestBuildDayLayout_EndToEnd tests the documented example: three events
// in one department expect lanes [0,1,0] and axis {540,720}
func TestBuildDayLayout_EndToEnd(t *testing.T) {
	layout, ok := BuildDayLayout(dayEvents())
	require.True(t, ok)

	assert.Equal(t, Axis{Min: 540, Max: 720}, layout.Axis)
	require.Len(t, layout.Departments, 1)

	dept := layout.Departments[0]
	assert.Equal(t, "A", dept.ID)
	assert.Equal(t, 2, dept.Lanes)

	lanesByIndex := make(map[int]int)
	for _, res := range dept.Events {
		lanesByIndex[res.Index] = res.Lane
	}
	assert.Equal(t, map[int]int{0: 0, 1: 1, 2: 0}, lanesByIndex)
}

// TestBuildDayLayout_PerDepartmentPacking tests that lanes are assigned
// within a department, not across the whole day
func TestBuildDayLayout_PerDepartmentPacking(t *testing.T) {
	events := []model.EventRecord{
		{TimeSpec: "9:00–11:00", Department: "A"},
		{TimeSpec: "9:30–11:30", Department: "B"},
		{TimeSpec: "10:00–12:00", Department: "B"},
	}
	layout, ok := BuildDayLayout(events)
	require.True(t, ok)
	require.Len(t, layout.Departments, 2)

	// Departments are sorted by ID.
	assert.Equal(t, "A", layout.Departments[0].ID)
	assert.Equal(t, "B", layout.Departments[1].ID)

	// A's only event overlaps both of B's, but packs alone in its lane.
	assert.Equal(t, 1, layout.Departments[0].Lanes)
	assert.Equal(t, 2, layout.Departments[1].Lanes)
}

// TestBuildDayLayout_GeometryWithinAxis tests that every projected event
// fits the shared axis
func TestBuildDayLayout_GeometryWithinAxis(t *testing.T) {
	events := []model.EventRecord{
		{TimeSpec: "mattino", Department: "Fisica"},
		{TimeSpec: "pomeriggio", Department: "Chimica"},
		{TimeSpec: "12:15–13:45", Department: "Fisica"},
	}
	layout, ok := BuildDayLayout(events)
	require.True(t, ok)

	for _, dept := range layout.Departments {
		for _, res := range dept.Events {
			assert.GreaterOrEqual(t, res.OffsetFraction, 0.0)
			assert.LessOrEqual(t, res.OffsetFraction+res.ExtentFraction, 1.0+1e-9)
			assert.Greater(t, res.ExtentFraction, 0.0)
		}
	}
}

// TestBuildDayLayout_Deterministic tests that the full pipeline run twice
// on identical input yields identical geometry
func TestBuildDayLayout_Deterministic(t *testing.T) {
	events := []model.EventRecord{
		{TimeSpec: "9–13", Department: "DST"},
		{TimeSpec: "10:00–11:00", Department: "DST"},
		{TimeSpec: "mattino", Department: "DSTF"},
		{TimeSpec: "11:30", Department: "DST"},
	}
	first, ok := BuildDayLayout(events)
	require.True(t, ok)

	second, ok := BuildDayLayout(events)
	require.True(t, ok)

	assert.Equal(t, first, second)
}

// TestBuildDayLayout_Empty tests the no-events guard
func TestBuildDayLayout_Empty(t *testing.T) {
	_, ok := BuildDayLayout(nil)
	assert.False(t, ok)
}
