// Package terminal renders report outcomes as styled text sections.
package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
	"github.com/hyperterse/reportdeck/core/infrastructure/presentation"
	"github.com/hyperterse/reportdeck/core/observability"
)

const separator = "────────────────────────────────────────"

// Presenter writes each report as a section: heading, label, SQL, then a
// table, an empty-result notice or an error banner.
type Presenter struct {
	out     io.Writer
	showSQL bool

	mu      sync.Mutex
	started bool
	stats   Stats
}

// Stats counts what has been presented so far.
type Stats struct {
	Reports int
	Tables  int
	Empty   int
	Failed  int
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithSQL controls whether the query text is printed. The default is true.
func WithSQL(show bool) Option {
	return func(p *Presenter) {
		p.showSQL = show
	}
}

// New creates a presenter writing to out.
func New(out io.Writer, opts ...Option) *Presenter {
	p := &Presenter{out: out, showSQL: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Present renders one outcome. The dashboard title is written before the
// first report.
func (p *Presenter) Present(ctx context.Context, outcome domain.ReportOutcome) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	if !p.started {
		b.WriteString(pterm.DefaultHeader.WithFullWidth(false).Sprint(presentation.Title))
		b.WriteString("\n")
		b.WriteString(separator + "\n")
		p.started = true
	}

	b.WriteString(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprint(presentation.Heading(outcome)))
	b.WriteString("\n")
	b.WriteString(pterm.NewStyle(pterm.Bold).Sprint(outcome.Label))
	b.WriteString("\n\n")

	if p.showSQL {
		b.WriteString(pterm.NewStyle(pterm.FgGray).Sprint(presentation.TrimQuery(outcome.Query)))
		b.WriteString("\n\n")
	}

	body, err := p.renderResult(outcome.Result)
	if err != nil {
		return fmt.Errorf("render report %d: %w", outcome.Index+1, err)
	}
	b.WriteString(body)
	b.WriteString("\n" + separator + "\n")

	if _, err := io.WriteString(p.out, b.String()); err != nil {
		return err
	}

	observability.RecordReportRendered(ctx, "terminal", string(outcome.Result.Status()))
	return nil
}

func (p *Presenter) renderResult(result domain.QueryResult) (string, error) {
	p.stats.Reports++

	if result.IsFailure() {
		p.stats.Failed++
		return pterm.Error.Sprint(result.Message()), nil
	}
	if result.IsEmpty() {
		p.stats.Empty++
		return pterm.Warning.Sprint(presentation.EmptyResultText), nil
	}

	table, _ := result.Table()
	data := pterm.TableData{table.Columns}
	data = append(data, presentation.Rows(table)...)

	rendered, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	p.stats.Tables++
	return rendered, nil
}

// Stats returns the counts so far.
func (p *Presenter) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// PrintSummary writes a one-line tally of the run.
func (p *Presenter) PrintSummary() error {
	stats := p.Stats()
	line := fmt.Sprintf("%d report(s): %d with rows, %d empty, %d failed",
		stats.Reports, stats.Tables, stats.Empty, stats.Failed)
	if stats.Failed > 0 {
		line = pterm.NewStyle(pterm.FgYellow).Sprint(line)
	} else {
		line = pterm.NewStyle(pterm.FgGreen).Sprint(line)
	}
	_, err := fmt.Fprintln(p.out, line)
	return err
}

var _ interfaces.Presenter = (*Presenter)(nil)
