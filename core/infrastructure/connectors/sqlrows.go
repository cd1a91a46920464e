package connectors

import (
	"database/sql"
	"fmt"

	"github.com/hyperterse/reportdeck/core/domain"
)

// scanTable materializes database/sql rows into a table, keeping the
// driver's column and row order.
func scanTable(rows *sql.Rows) (domain.Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to get columns: %w", err)
	}

	table := domain.Table{
		Columns: columns,
		Rows:    []domain.Row{},
	}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return domain.Table{}, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(domain.Row, len(columns))
		for i, col := range columns {
			// []byte becomes string so tables render and serialize cleanly
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return domain.Table{}, fmt.Errorf("error iterating rows: %w", err)
	}

	return table, nil
}
