package schedule

import (
	"strings"

	"openday/internal/model"
)

// Selection is the immutable filter state: free-text search, an optional
// single selected date, and a multi-select department set. Transitions
// produce a new value; nothing is mutated in place.
type Selection struct {
	Search      string
	Date        string
	Departments []string
}

// WithSearch returns the selection with a new search term.
func (s Selection) WithSearch(term string) Selection {
	s.Search = term
	return s
}

// ToggleDate selects the date, or clears the date filter when the same
// date is already selected (single-select toggle).
func (s Selection) ToggleDate(date string) Selection {
	if s.Date == date {
		s.Date = ""
	} else {
		s.Date = date
	}
	return s
}

// ToggleDepartment adds or removes a department from the multi-select
// set.
func (s Selection) ToggleDepartment(dept string) Selection {
	for i, d := range s.Departments {
		if d == dept {
			next := make([]string, 0, len(s.Departments)-1)
			next = append(next, s.Departments[:i]...)
			next = append(next, s.Departments[i+1:]...)
			s.Departments = next
			return s
		}
	}
	next := make([]string, len(s.Departments), len(s.Departments)+1)
	copy(next, s.Departments)
	s.Departments = append(next, dept)
	return s
}

// Clear drops all filters.
func (s Selection) Clear() Selection {
	return Selection{}
}

// Matches reports whether a single event passes the selection: the
// search term must substring-match title, location, or department
// (case-insensitive), the date must equal the selected one, and the
// department must be in the selected set — each clause only when the
// corresponding filter is active.
func (s Selection) Matches(ev model.EventRecord) bool {
	if s.Search != "" {
		term := strings.ToLower(s.Search)
		if !strings.Contains(strings.ToLower(ev.Title), term) &&
			!strings.Contains(strings.ToLower(ev.Location), term) &&
			!strings.Contains(strings.ToLower(ev.Department), term) {
			return false
		}
	}

	if s.Date != "" && ev.Date != s.Date {
		return false
	}

	if len(s.Departments) > 0 {
		found := false
		for _, d := range s.Departments {
			if d == ev.Department {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// ComputeVisible filters the base event list down to the selection.
// It is a pure function of its inputs; the returned slice holds the
// surviving records in their original order.
func ComputeVisible(all []model.EventRecord, sel Selection) []model.EventRecord {
	visible := make([]model.EventRecord, 0, len(all))
	for _, ev := range all {
		if sel.Matches(ev) {
			visible = append(visible, ev)
		}
	}
	return visible
}
