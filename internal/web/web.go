package web

import (
	"crypto/subtle"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"openday/internal/config"
	"openday/internal/export"
	appLog "openday/internal/log"
	"openday/internal/schedule"
)

// Server provides the HTTP API for the schedule page plus the embedded
// static UI. All filtering and layout work happens server-side per
// request against the store's current snapshot; every request recomputes
// from scratch (the dataset is tens to low hundreds of events).
type Server struct {
	cfg         *config.Config
	store       *schedule.Store
	previewPath string
	mux         *http.ServeMux

	// Short-TTL cache for the ICS feed, which is the one response whose
	// construction cost grows with subscriber polling frequency.
	icsMu    sync.RWMutex
	icsCache *icsCache
}

// embeddedStatic contains the schedule page (index.html and assets).
//
//go:embed all:static
var embeddedStatic embed.FS

// NewServer constructs a new Server. previewPath is where the snapshot
// command writes its PNG; /preview.png serves that file.
func NewServer(cfg *config.Config, store *schedule.Store, previewPath string) *Server {
	s := &Server{
		cfg:         cfg,
		store:       store,
		previewPath: previewPath,
		mux:         http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty username or password counts as disabled.
	if s.cfg.BasicAuth.Username == "" || s.cfg.BasicAuth.Password == "" {
		return false
	}
	return true
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /health stays unauthenticated for probes.
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="OpenDay", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/events", s.handleEvents)
	s.mux.HandleFunc("/api/dates", s.handleDates)
	s.mux.HandleFunc("/api/departments", s.handleDepartments)
	s.mux.HandleFunc("/api/timeline", s.handleTimeline)
	s.mux.HandleFunc("/api/schedule.ics", s.handleICS)
	s.mux.HandleFunc("/preview.png", s.handlePreview)

	// Embedded static UI; all non-/api/* paths fall back to it.
	s.mux.Handle("/", s.staticFileServer())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// selectionFromQuery builds the filter selection from request query
// parameters: ?search=...&date=YYYY-MM-DD&dept=A&dept=B
func selectionFromQuery(r *http.Request) schedule.Selection {
	q := r.URL.Query()
	return schedule.Selection{
		Search:      q.Get("search"),
		Date:        q.Get("date"),
		Departments: q["dept"],
	}
}

// readySnapshot fetches the store snapshot and writes the appropriate
// non-Ready response. ok is false when the caller should return.
func (s *Server) readySnapshot(w http.ResponseWriter) (schedule.Snapshot, bool) {
	snap := s.store.Snapshot()
	switch snap.State {
	case schedule.StateReady:
		return snap, true
	case schedule.StateLoading:
		writeJSON(w, http.StatusOK, stateResponse{State: snap.State.String()})
		return snap, false
	default:
		msg := "schedule data unavailable"
		if snap.Err != nil {
			msg = snap.Err.Error()
		}
		writeJSON(w, http.StatusServiceUnavailable, stateResponse{
			State: snap.State.String(),
			Error: msg,
		})
		return snap, false
	}
}

// handleEvents returns the filtered flat event list for the card view.
//
// GET /api/events?search=&date=&dept=A&dept=B
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readySnapshot(w)
	if !ok {
		return
	}

	sel := selectionFromQuery(r)
	visible := schedule.ComputeVisible(snap.Events, sel)

	dtos := make([]eventDTO, 0, len(visible))
	for _, ev := range visible {
		dtos = append(dtos, s.eventDTO(ev))
	}

	writeJSON(w, http.StatusOK, eventsResponse{
		State:  snap.State.String(),
		Count:  len(dtos),
		Events: dtos,
	})
}

// handleDates returns the distinct event dates with display metadata,
// for building the date filter buttons and the timeline day tabs.
func (s *Server) handleDates(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.readySnapshot(w)
	if !ok {
		return
	}

	dayByDate := make(map[string]string)
	for _, ev := range snap.Events {
		if _, seen := dayByDate[ev.Date]; !seen {
			dayByDate[ev.Date] = ev.Day
		}
	}

	dates := schedule.Dates(snap.Events)
	dtos := make([]dateDTO, 0, len(dates))
	for _, d := range dates {
		day := dayByDate[d]
		dtos = append(dtos, dateDTO{
			Date:  d,
			Day:   day,
			Color: s.cfg.DayColor(day),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// handleDepartments returns the distinct departments with their display
// metadata for the filter chips.
func (s *Server) handleDepartments(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.readySnapshot(w)
	if !ok {
		return
	}

	ids := schedule.Departments(snap.Events)
	dtos := make([]departmentDTO, 0, len(ids))
	for _, id := range ids {
		meta := s.cfg.DepartmentMeta(id)
		dtos = append(dtos, departmentDTO{
			ID:    id,
			Name:  meta.Name,
			Emoji: meta.Emoji,
			Color: meta.Color,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// handleICS serves the schedule as an iCalendar feed. The serialized
// body is cached for a short TTL since calendar clients poll.
func (s *Server) handleICS(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.readySnapshot(w)
	if !ok {
		return
	}

	const icsCacheTTL = 30 * time.Second
	now := time.Now()

	s.icsMu.RLock()
	cached := s.icsCache
	s.icsMu.RUnlock()

	var body string
	if cached != nil && now.Sub(cached.updatedAt) < icsCacheTTL {
		body = cached.body
	} else {
		loc := resolveLocationOrLocal(s.cfg.Timezone)
		body = export.Serialize(snap.Events, loc)

		s.icsMu.Lock()
		s.icsCache = &icsCache{body: body, updatedAt: time.Now()}
		s.icsMu.Unlock()
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// handlePreview serves the last captured PNG snapshot from disk.
// http.ServeFile returns 404 when no snapshot has been taken yet.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, s.previewPath)
}

// staticFileServer serves the embedded schedule page.
func (s *Server) staticFileServer() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		appLog.Error("failed to initialize embedded static filesystem", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "static UI not available", http.StatusServiceUnavailable)
		})
	}

	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// /api/* must never fall through to the static UI: a missing API
		// handler should 404, not return HTML.
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			http.NotFound(w, r)
			return
		}

		fileServer.ServeHTTP(w, r)
	})
}

// icsCache holds the last serialized feed and its timestamp.
type icsCache struct {
	body      string
	updatedAt time.Time
}

func resolveLocationOrLocal(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", name)
		return time.Local
	}
	return loc
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}
