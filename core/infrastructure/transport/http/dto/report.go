package dto

import (
	"github.com/hyperterse/reportdeck/core/domain"
)

// Report describes one catalog entry.
type Report struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
	Query  string `json:"query"`
}

// ReportListResponse lists the catalog.
type ReportListResponse struct {
	Success bool     `json:"success"`
	Source  string   `json:"source"`
	Reports []Report `json:"reports"`
}

// Result is the JSON form of a QueryResult. Status is "success" or
// "failure"; Empty marks a successful query without rows.
type Result struct {
	Status  string           `json:"status"`
	Empty   bool             `json:"empty"`
	Columns []string         `json:"columns,omitempty"`
	Rows    []map[string]any `json:"rows,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Outcome is one executed report.
type Outcome struct {
	Report
	Result Result `json:"result"`
}

// OutcomeResponse wraps a single outcome.
type OutcomeResponse struct {
	Success bool    `json:"success"`
	Outcome Outcome `json:"outcome"`
}

// DashboardResponse carries every outcome in catalog order.
type DashboardResponse struct {
	Success  bool      `json:"success"`
	Title    string    `json:"title"`
	Outcomes []Outcome `json:"outcomes"`
}

// PurgeRequest optionally narrows a purge to one report. A missing report
// purges everything.
type PurgeRequest struct {
	Report *int `json:"report" validate:"omitempty,min=1"`
}

// PurgeResponse reports what was dropped.
type PurgeResponse struct {
	Success bool `json:"success"`
	Purged  int  `json:"purged"`
}

// NewReport converts a definition.
func NewReport(def domain.ReportDefinition) Report {
	return Report{
		Number: def.Number(),
		Label:  def.Label,
		Query:  def.Query,
	}
}

// NewOutcome converts an outcome.
func NewOutcome(outcome domain.ReportOutcome) Outcome {
	return Outcome{
		Report: Report{
			Number: outcome.Index + 1,
			Label:  outcome.Label,
			Query:  outcome.Query,
		},
		Result: NewResult(outcome.Result),
	}
}

// NewResult converts a QueryResult.
func NewResult(result domain.QueryResult) Result {
	out := Result{Status: string(result.Status())}
	if result.IsFailure() {
		out.Error = result.Message()
		return out
	}

	table, _ := result.Table()
	out.Empty = table.Len() == 0
	out.Columns = table.Columns
	out.Rows = make([]map[string]any, len(table.Rows))
	for i, row := range table.Rows {
		out.Rows[i] = map[string]any(row)
	}
	return out
}
