// Package presentation holds the display helpers shared by the terminal and
// HTTP presenters.
package presentation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hyperterse/reportdeck/core/domain"
)

const (
	Title           = "Database Report Dashboard"
	EmptyResultText = "No rows returned for this query."
	ShowSQLText     = "Show SQL Query"
)

// NullText is shown for SQL NULL cells.
const NullText = "NULL"

// Heading returns the "Question N" heading of a report.
func Heading(outcome domain.ReportOutcome) string {
	return fmt.Sprintf("Question %d", outcome.Index+1)
}

// FormatCell renders a scalar cell value for display.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return NullText
	case string:
		return val
	case []byte:
		return string(val)
	case float32:
		return formatFloat(float64(val))
	case float64:
		return formatFloat(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	case time.Duration:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// formatFloat keeps at most four decimals and drops trailing zeros.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Rows renders every row of table as display strings in column order.
func Rows(table domain.Table) [][]string {
	out := make([][]string, table.Len())
	for i := range table.Rows {
		values := table.Values(i)
		cells := make([]string, len(values))
		for j, value := range values {
			cells[j] = FormatCell(value)
		}
		out[i] = cells
	}
	return out
}

// TrimQuery strips the blank lines around a catalog query for display. The
// query text itself is untouched.
func TrimQuery(query string) string {
	return strings.Trim(query, "\n\r\t ")
}
