package model

// EventRecord is one scheduled occurrence as loaded from the CSV source.
// Records are created once at load time and never mutated afterwards;
// layout geometry lives in internal/timeline side tables, not here.
type EventRecord struct {
	// Date is the calendar date in ISO form (YYYY-MM-DD).
	Date string

	// Day is the weekday name in the source data's locale (Italian).
	// It is derived from Date when the CSV value is missing or does not
	// match the weekday Date implies.
	Day string

	// TimeSpec is the free-text time specification: an en-dash range
	// ("14:00–15:30"), a bare start ("9", "9:30") or a named period
	// ("mattino", "pomeriggio"). Resolution into a minute interval is
	// done by internal/timeline.
	TimeSpec string

	Title      string
	Location   string
	Department string
}

// DepartmentMeta is the display metadata for a department: full name,
// emoji badge and accent color. Unknown departments fall back to
// DefaultDepartmentMeta.
type DepartmentMeta struct {
	Name  string `yaml:"name" json:"name"`
	Emoji string `yaml:"emoji" json:"emoji"`
	Color string `yaml:"color" json:"color"`
}

// DefaultDepartmentMeta is used for departments with no configured entry.
func DefaultDepartmentMeta(id string) DepartmentMeta {
	return DepartmentMeta{Name: id, Emoji: "📚", Color: "#999999"}
}
