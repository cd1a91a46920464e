package domain

import "strings"

// ReportDefinition is one entry of the report catalog: a question shown to
// the reader and the SQL that answers it.
type ReportDefinition struct {
	// Index is the zero-based position of the report in its catalog.
	Index int
	Label string
	Query string
}

// Validate validates the report definition
func (r ReportDefinition) Validate() error {
	if strings.TrimSpace(r.Label) == "" {
		return ErrEmptyReportLabel
	}
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyReportQuery
	}
	return nil
}

// Number returns the one-based position used in headings ("Question 3").
func (r ReportDefinition) Number() int {
	return r.Index + 1
}

// ReportOutcome is what the driver hands to a presenter for each report.
type ReportOutcome struct {
	Index  int
	Label  string
	Query  string
	Result QueryResult
}

// NewReportOutcome pairs a definition with the result of executing it.
func NewReportOutcome(def ReportDefinition, result QueryResult) ReportOutcome {
	return ReportOutcome{
		Index:  def.Index,
		Label:  def.Label,
		Query:  def.Query,
		Result: result,
	}
}

// Domain errors
var (
	ErrEmptyReportLabel = &DomainError{Message: "report label cannot be empty"}
	ErrEmptyReportQuery = &DomainError{Message: "report query cannot be empty"}
)

// DomainError represents a domain-level error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
