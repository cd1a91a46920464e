package presentation

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/hyperterse/reportdeck/core/domain"
)

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: "NULL"},
		{name: "string", value: "Drill", want: "Drill"},
		{name: "bytes", value: []byte("P1"), want: "P1"},
		{name: "int64", value: int64(42), want: "42"},
		{name: "whole float", value: 10.0, want: "10"},
		{name: "zero float", value: 0.0, want: "0"},
		{name: "average", value: 12.3456789, want: "12.3457"},
		{name: "price", value: 99.5, want: "99.5"},
		{name: "float32", value: float32(2.25), want: "2.25"},
		{name: "bool", value: true, want: "true"},
		{name: "date", value: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), want: "2024-03-09"},
		{name: "timestamp", value: time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC), want: "2024-03-09T14:05:00Z"},
		{name: "duration", value: 90 * time.Second, want: "1m30s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCell(tt.value))
		})
	}
}

func TestRows(t *testing.T) {
	table := domain.Table{
		Columns: []string{"prodname", "times_sold", "avg_price"},
		Rows: []domain.Row{
			{"prodname": "Drill", "times_sold": int64(12), "avg_price": 99.5},
			{"prodname": "Saw", "times_sold": int64(3), "avg_price": nil},
		},
	}

	want := [][]string{
		{"Drill", "12", "99.5"},
		{"Saw", "3", "NULL"},
	}
	if diff := cmp.Diff(want, Rows(table)); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "Question 1", Heading(domain.ReportOutcome{Index: 0}))
	assert.Equal(t, "Question 21", Heading(domain.ReportOutcome{Index: 20}))
}

func TestTrimQuery(t *testing.T) {
	assert.Equal(t, "SELECT 1\nFROM dual", TrimQuery("\n  SELECT 1\nFROM dual\n\n"))
}
