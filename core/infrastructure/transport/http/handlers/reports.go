package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hyperterse/reportdeck/core/domain/interfaces"
	"github.com/hyperterse/reportdeck/core/infrastructure/presentation"
	"github.com/hyperterse/reportdeck/core/infrastructure/transport/http/dto"
)

// ReportHandler serves the report API.
type ReportHandler struct {
	*BaseHandler
	service interfaces.ReportService
	source  string
}

// NewReportHandler creates a handler over service. source names the catalog
// in listings.
func NewReportHandler(service interfaces.ReportService, source string) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler("handler"),
		service:     service,
		source:      source,
	}
}

// List handles GET /api/reports.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	defs := h.service.Reports()
	reports := make([]dto.Report, len(defs))
	for i, def := range defs {
		reports[i] = dto.NewReport(def)
	}
	h.WriteSuccess(w, dto.ReportListResponse{
		Success: true,
		Source:  h.source,
		Reports: reports,
	})
}

// Get handles GET /api/reports/{number}. Numbers are one-based as in the
// "Question N" headings.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		h.WriteValidationError(w, map[string]string{"number": "numeric"})
		return
	}

	outcome, err := h.service.RunReport(r.Context(), number-1)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.logger.Debugf("Report %d: %s", number, outcome.Result.Status())
	h.WriteSuccess(w, dto.OutcomeResponse{
		Success: true,
		Outcome: dto.NewOutcome(outcome),
	})
}

// Dashboard handles GET /api/dashboard.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	outcomes, err := h.service.RunAll(r.Context())
	if err != nil {
		h.WriteError(w, err)
		return
	}

	out := make([]dto.Outcome, len(outcomes))
	for i, outcome := range outcomes {
		out[i] = dto.NewOutcome(outcome)
	}
	h.WriteSuccess(w, dto.DashboardResponse{
		Success:  true,
		Title:    presentation.Title,
		Outcomes: out,
	})
}

// Purge handles POST /api/cache/purge. With {"report": N} only that report's
// entry is dropped.
func (h *ReportHandler) Purge(w http.ResponseWriter, r *http.Request) {
	var req dto.PurgeRequest
	fields, err := DecodeJSON(r, &req)
	if err != nil {
		if errors.Is(err, errInvalidJSON) {
			h.WriteJSON(w, http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: "Invalid JSON"})
			return
		}
		h.WriteError(w, err)
		return
	}
	if len(fields) > 0 {
		h.WriteValidationError(w, fields)
		return
	}

	if req.Report != nil {
		forgotten, err := h.service.ForgetReport(*req.Report - 1)
		if err != nil {
			h.WriteError(w, err)
			return
		}
		purged := 0
		if forgotten {
			purged = 1
		}
		h.WriteSuccess(w, dto.PurgeResponse{Success: true, Purged: purged})
		return
	}

	h.WriteSuccess(w, dto.PurgeResponse{Success: true, Purged: h.service.PurgeCache()})
}

// Heartbeat handles GET /heartbeat.
func (h *ReportHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	h.WriteSuccess(w, dto.HealthResponse{Success: true, Reports: len(h.service.Reports())})
}

// NotFound answers unknown routes in the API's error format.
func (h *ReportHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusNotFound, dto.ErrorResponse{
		Success: false,
		Error:   "Not found",
	})
}
