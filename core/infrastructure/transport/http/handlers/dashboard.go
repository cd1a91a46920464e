package handlers

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
	"github.com/hyperterse/reportdeck/core/infrastructure/presentation"
)

//go:embed dashboard.html
var dashboardHTML string

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardHTML))

type dashboardPage struct {
	Title    string
	Sections []dashboardSection
}

type dashboardSection struct {
	Heading string
	Label   string
	Query   string
	ShowSQL string
	Failed  bool
	Empty   bool
	Message string
	Columns []string
	Rows    [][]string
}

// DashboardHandler renders every report as one HTML page.
type DashboardHandler struct {
	*BaseHandler
	service interfaces.ReportService
}

// NewDashboardHandler creates the HTML dashboard handler.
func NewDashboardHandler(service interfaces.ReportService) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler("dashboard"),
		service:     service,
	}
}

// ServeHTTP handles GET /.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	outcomes, err := h.service.RunAll(r.Context())
	if err != nil {
		h.WriteError(w, err)
		return
	}

	page := dashboardPage{
		Title:    presentation.Title,
		Sections: make([]dashboardSection, len(outcomes)),
	}
	for i, outcome := range outcomes {
		page.Sections[i] = newDashboardSection(outcome)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, page); err != nil {
		h.logger.Errorf("Failed to render dashboard: %v", err)
	}
}

func newDashboardSection(outcome domain.ReportOutcome) dashboardSection {
	section := dashboardSection{
		Heading: presentation.Heading(outcome),
		Label:   outcome.Label,
		Query:   presentation.TrimQuery(outcome.Query),
		ShowSQL: presentation.ShowSQLText,
	}

	switch {
	case outcome.Result.IsFailure():
		section.Failed = true
		section.Message = outcome.Result.Message()
	case outcome.Result.IsEmpty():
		section.Empty = true
		section.Message = presentation.EmptyResultText
	default:
		table, _ := outcome.Result.Table()
		section.Columns = table.Columns
		section.Rows = presentation.Rows(table)
	}
	return section
}
