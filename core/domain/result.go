package domain

import "reflect"

// Row maps column names to scalar values.
type Row map[string]any

// Table is a fully materialized result set. Columns keeps the select-list
// order and Rows keeps the order the database returned them in.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Values returns the cells of row i in column order.
func (t Table) Values(i int) []any {
	row := t.Rows[i]
	out := make([]any, len(t.Columns))
	for j, col := range t.Columns {
		out[j] = row[col]
	}
	return out
}

// Clone returns a deep copy of the column list and rows. Cell values are
// scalars and are shared.
func (t Table) Clone() Table {
	out := Table{}
	if t.Columns != nil {
		out.Columns = append([]string(nil), t.Columns...)
	}
	if t.Rows == nil {
		return out
	}
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		if row == nil {
			continue
		}
		copyRow := make(Row, len(row))
		for key, value := range row {
			copyRow[key] = value
		}
		out.Rows[i] = copyRow
	}
	return out
}

// ResultStatus tags a QueryResult.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusFailure ResultStatus = "failure"
)

// QueryResult is either Success(table) or Failure(message). Construct it with
// Success or Failure; the zero value is not a valid result.
type QueryResult struct {
	status  ResultStatus
	table   Table
	message string
}

// Success wraps a materialized table.
func Success(table Table) QueryResult {
	return QueryResult{status: StatusSuccess, table: table}
}

// Failure wraps a human-readable diagnostic.
func Failure(message string) QueryResult {
	return QueryResult{status: StatusFailure, message: message}
}

// Status returns the variant tag.
func (r QueryResult) Status() ResultStatus {
	return r.status
}

// IsSuccess reports whether the query ran, including zero-row results.
func (r QueryResult) IsSuccess() bool {
	return r.status == StatusSuccess
}

// IsFailure reports whether the query failed to execute.
func (r QueryResult) IsFailure() bool {
	return r.status == StatusFailure
}

// IsEmpty reports a successful query that returned no rows.
func (r QueryResult) IsEmpty() bool {
	return r.status == StatusSuccess && len(r.table.Rows) == 0
}

// Table returns the result table and true for Success results.
func (r QueryResult) Table() (Table, bool) {
	if r.status != StatusSuccess {
		return Table{}, false
	}
	return r.table, true
}

// Message returns the diagnostic of a Failure, or "" otherwise.
func (r QueryResult) Message() string {
	return r.message
}

// Clone returns a copy that shares no row maps with r.
func (r QueryResult) Clone() QueryResult {
	if r.status == StatusSuccess {
		return Success(r.table.Clone())
	}
	return r
}

// Equal reports whether two results carry the same variant and payload.
func (r QueryResult) Equal(other QueryResult) bool {
	return r.status == other.status &&
		r.message == other.message &&
		reflect.DeepEqual(r.table, other.table)
}
