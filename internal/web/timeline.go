package web

import (
	"net/http"

	"openday/internal/schedule"
	"openday/internal/timeline"
)

// axisDTO describes the shared hour grid of one day.
type axisDTO struct {
	MinMinutes int       `json:"min_minutes"`
	MaxMinutes int       `json:"max_minutes"`
	Ticks      []tickDTO `json:"ticks"`
}

type tickDTO struct {
	Minutes int    `json:"minutes"`
	Label   string `json:"label"`
}

// timelineEventDTO carries one event's geometry plus its display fields.
// Lane is the row for the horizontal view; Lane together with
// TotalColumns gives the column placement for the vertical view.
type timelineEventDTO struct {
	Title        string  `json:"title"`
	Location     string  `json:"location,omitempty"`
	Time         string  `json:"time"`
	StartMinutes int     `json:"start_minutes"`
	EndMinutes   int     `json:"end_minutes"`
	Lane         int     `json:"lane"`
	TotalColumns int     `json:"total_columns"`
	Offset       float64 `json:"offset"`
	Extent       float64 `json:"extent"`
}

type timelineDeptDTO struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Emoji  string             `json:"emoji"`
	Color  string             `json:"color"`
	Lanes  int                `json:"lanes"`
	Events []timelineEventDTO `json:"events"`
}

type timelineResponse struct {
	Date        string            `json:"date"`
	Day         string            `json:"day"`
	DayColor    string            `json:"day_color"`
	Empty       bool              `json:"empty"`
	Axis        *axisDTO          `json:"axis,omitempty"`
	Departments []timelineDeptDTO `json:"departments,omitempty"`
}

// handleTimeline returns the packed multi-track layout for one day.
//
// GET /api/timeline?date=YYYY-MM-DD&search=&dept=A&dept=B
//
// date defaults to the first date in the schedule. search and dept
// filters apply before packing, so the geometry reflects exactly the
// events the visitor sees.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readySnapshot(w)
	if !ok {
		return
	}

	sel := selectionFromQuery(r)
	if sel.Date == "" {
		dates := schedule.Dates(snap.Events)
		if len(dates) == 0 {
			writeJSON(w, http.StatusOK, timelineResponse{Empty: true})
			return
		}
		sel.Date = dates[0]
	}

	dayEvents := schedule.ComputeVisible(snap.Events, sel)

	resp := timelineResponse{Date: sel.Date, Empty: true}
	for _, ev := range snap.Events {
		if ev.Date == sel.Date {
			resp.Day = ev.Day
			resp.DayColor = s.cfg.DayColor(ev.Day)
			break
		}
	}

	layout, ok := timeline.BuildDayLayout(dayEvents)
	if !ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.Empty = false

	resp.Axis = &axisDTO{
		MinMinutes: layout.Axis.Min,
		MaxMinutes: layout.Axis.Max,
	}
	for _, tick := range layout.Axis.HourTicks() {
		resp.Axis.Ticks = append(resp.Axis.Ticks, tickDTO{
			Minutes: tick,
			Label:   timeline.FormatTick(tick),
		})
	}

	for _, dept := range layout.Departments {
		meta := s.cfg.DepartmentMeta(dept.ID)
		dd := timelineDeptDTO{
			ID:     dept.ID,
			Name:   meta.Name,
			Emoji:  meta.Emoji,
			Color:  meta.Color,
			Lanes:  dept.Lanes,
			Events: make([]timelineEventDTO, 0, len(dept.Events)),
		}
		for _, lr := range dept.Events {
			ev := dayEvents[lr.Index]
			dd.Events = append(dd.Events, timelineEventDTO{
				Title:        ev.Title,
				Location:     ev.Location,
				Time:         ev.TimeSpec,
				StartMinutes: lr.Interval.Start,
				EndMinutes:   lr.Interval.End,
				Lane:         lr.Lane,
				TotalColumns: lr.TotalColumns,
				Offset:       lr.OffsetFraction,
				Extent:       lr.ExtentFraction,
			})
		}
		resp.Departments = append(resp.Departments, dd)
	}

	writeJSON(w, http.StatusOK, resp)
}
