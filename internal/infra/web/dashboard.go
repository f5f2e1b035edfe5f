// Package web serves the read-only team status dashboard.
package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"team_status_bot/internal/domain/status"

	"github.com/sirupsen/logrus"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

const msgDBError = "Ошибка подключения к БД"

// RecentLister is the part of the status service the dashboard reads.
type RecentLister interface {
	ListRecent(ctx context.Context, windowDays int) ([]*status.RecentEntry, error)
}

// Pinger checks the database; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type dayGroup struct {
	Date    string
	Entries []*status.RecentEntry
}

type dashboardPage struct {
	WindowDays int
	Days       []dayGroup
}

type Dashboard struct {
	statuses   RecentLister
	db         Pinger
	windowDays int
	logger     *logrus.Entry
}

func NewDashboard(statuses RecentLister, db Pinger, windowDays int, logger *logrus.Entry) *Dashboard {
	return &Dashboard{statuses: statuses, db: db, windowDays: windowDays, logger: logger}
}

// Handler returns the dashboard routes.
func (d *Dashboard) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", d.index)
	mux.HandleFunc("GET /healthz", d.healthz)
	return mux
}

func (d *Dashboard) index(w http.ResponseWriter, r *http.Request) {
	entries, err := d.statuses.ListRecent(r.Context(), d.windowDays)
	if err != nil {
		d.logger.WithError(err).Error("Failed to list recent statuses")
		http.Error(w, msgDBError, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, dashboardPage{WindowDays: d.windowDays, Days: groupByDate(entries)}); err != nil {
		d.logger.WithError(err).Error("Failed to render dashboard")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (d *Dashboard) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := d.db.PingContext(ctx); err != nil {
		d.logger.WithError(err).Warn("Health check failed")
		http.Error(w, msgDBError, http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("ok"))
}

// groupByDate keeps the input order; entries arrive sorted by date descending.
func groupByDate(entries []*status.RecentEntry) []dayGroup {
	var days []dayGroup
	for _, e := range entries {
		date := e.Date.Format(status.DateLayout)
		if n := len(days); n == 0 || days[n-1].Date != date {
			days = append(days, dayGroup{Date: date})
		}
		last := &days[len(days)-1]
		last.Entries = append(last.Entries, e)
	}
	return days
}
