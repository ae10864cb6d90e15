package web

import (
	"openday/internal/model"
	"openday/internal/timeline"
)

// stateResponse is returned by every data endpoint while the store is
// not Ready yet (or has failed without a previous good snapshot).
type stateResponse struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// eventDTO is one card in the flat list view.
type eventDTO struct {
	Date         string `json:"date"`
	Day          string `json:"day"`
	DayColor     string `json:"day_color"`
	Time         string `json:"time"`
	StartMinutes int    `json:"start_minutes"`
	EndMinutes   int    `json:"end_minutes"`
	Title        string `json:"title"`
	Location     string `json:"location,omitempty"`
	Department   string `json:"department,omitempty"`
	DeptName     string `json:"department_name,omitempty"`
	DeptEmoji    string `json:"department_emoji,omitempty"`
	DeptColor    string `json:"department_color,omitempty"`
}

type eventsResponse struct {
	State  string     `json:"state"`
	Count  int        `json:"count"`
	Events []eventDTO `json:"events"`
}

// dateDTO backs the date filter buttons and the timeline day tabs.
type dateDTO struct {
	Date  string `json:"date"`
	Day   string `json:"day"`
	Color string `json:"color"`
}

// departmentDTO backs the department filter chips.
type departmentDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

func (s *Server) eventDTO(ev model.EventRecord) eventDTO {
	iv := timeline.ResolveInterval(ev.TimeSpec)
	dto := eventDTO{
		Date:         ev.Date,
		Day:          ev.Day,
		DayColor:     s.cfg.DayColor(ev.Day),
		Time:         ev.TimeSpec,
		StartMinutes: iv.Start,
		EndMinutes:   iv.End,
		Title:        ev.Title,
		Location:     ev.Location,
		Department:   ev.Department,
	}
	if ev.Department != "" {
		meta := s.cfg.DepartmentMeta(ev.Department)
		dto.DeptName = meta.Name
		dto.DeptEmoji = meta.Emoji
		dto.DeptColor = meta.Color
	}
	return dto
}
