// Package report renders roster evaluations and benchmark tables for the terminal.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/scoring"
	"github.com/okian/cupline/internal/domain/types"
)

// Format selects the output encoding.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name; empty means table.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Options controls rendering.
type Options struct {
	Format    Format
	UseColors bool
	Precision int
	// Explain adds the explanation column to roster tables.
	Explain bool
}

func (o Options) float(v float64) string {
	p := o.Precision
	if p <= 0 {
		p = 2
	}
	return strconv.FormatFloat(v, 'f', p, 64)
}

func (o Options) severity(s scoring.Severity) string {
	if !o.UseColors {
		return string(s)
	}
	var c *color.Color
	switch s {
	case scoring.SeverityCritical:
		c = color.New(color.FgRed, color.Bold)
	case scoring.SeverityHigh:
		c = color.New(color.FgRed)
	case scoring.SeverityModerate:
		c = color.New(color.FgYellow)
	case scoring.SeverityMinor:
		c = color.New(color.FgCyan)
	default:
		c = color.New(color.FgGreen)
	}
	return c.Sprint(string(s))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func writeCSV(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteRoster outputs a roster evaluation, worst player first.
func WriteRoster(w io.Writer, rep *types.RosterReport, opts Options) error {
	if opts.Format == FormatJSON {
		return writeJSON(w, rep)
	}

	headers := []string{"Rank", "Player", "Role", "Bench", "PPG", "PPG z", "Composite", "Weight", "Ranking", "Severity", "Band"}
	if opts.Explain {
		headers = append(headers, "Explanation")
	}
	o := opts
	if opts.Format == FormatCSV {
		o.UseColors = false
	}

	rows := make([][]string, 0, len(rep.Scores))
	for i := range rep.Scores {
		s := &rep.Scores[i]
		name := s.PlayerID
		if s.Name != "" {
			name = s.Name
		}
		bench := string(s.BenchmarkRole)
		if s.RoleMismatch {
			bench += "*"
		}
		row := []string{
			strconv.Itoa(i + 1),
			name,
			string(s.Role),
			bench,
			o.float(s.PointsPerGame),
			o.float(s.MetricZScores.PPG),
			o.float(s.CompositeZScore),
			o.float(s.PositionWeight),
			o.float(s.RankingScore),
			o.severity(s.Severity),
			string(s.PPGBand),
		}
		if opts.Explain {
			row = append(row, s.Explanation)
		}
		rows = append(rows, row)
	}

	if opts.Format == FormatCSV {
		return writeCSV(w, headers, rows)
	}
	if err := renderTable(w, headers, rows); err != nil {
		return err
	}
	return writeRosterSummary(w, rep, opts)
}

func writeRosterSummary(w io.Writer, rep *types.RosterReport, opts Options) error {
	sum := rep.Summary
	tiers := make([]string, 0, len(scoring.Severities()))
	for _, sev := range scoring.Severities() {
		tiers = append(tiers, fmt.Sprintf("%s=%d", opts.severity(sev), sum.TierCounts[sev]))
	}
	if _, err := fmt.Fprintf(w, "Evaluated %d, excluded %d, mean composite z %s\n",
		sum.Evaluated, sum.Excluded, opts.float(sum.MeanCompositeZ)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Tiers: %s\n", strings.Join(tiers, " ")); err != nil {
		return err
	}
	for _, ex := range rep.Excluded {
		if _, err := fmt.Fprintf(w, "  excluded %s: %s\n", ex.PlayerID, ex.Reason); err != nil {
			return err
		}
	}
	if rep.EvaluationID != "" {
		if _, err := fmt.Fprintf(w, "Evaluation %s\n", rep.EvaluationID); err != nil {
			return err
		}
	}
	return nil
}

// WriteBenchmarks outputs role benchmarks in canonical role order.
func WriteBenchmarks(w io.Writer, entries []types.BenchmarkEntry, opts Options) error {
	if opts.Format == FormatJSON {
		return writeJSON(w, entries)
	}
	headers := []string{"Role", "N", "Mean PPG", "SD PPG", "P25", "Median", "P75", "Min", "Max", "Age", "Cap Hit", "CF%", "FF%"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		b := e.Benchmark
		rows = append(rows, []string{
			string(e.Role),
			strconv.Itoa(b.SampleSize),
			opts.float(b.MeanPPG),
			opts.float(b.StdDevPPG),
			opts.float(b.P25PPG),
			opts.float(b.MedianPPG),
			opts.float(b.P75PPG),
			opts.float(b.MinPPG),
			opts.float(b.MaxPPG),
			orDash(b.HasAge(), opts.float(b.MeanAge)),
			orDash(b.HasCapHit(), opts.float(b.MeanCapHit)),
			orDash(b.HasCorsi(), opts.float(b.MeanCorsiForPct)),
			orDash(b.HasFenwick(), opts.float(b.MeanFenwickForPct)),
		})
	}
	if opts.Format == FormatCSV {
		return writeCSV(w, headers, rows)
	}
	return renderTable(w, headers, rows)
}

// WriteBuildReport summarizes a benchmark build.
func WriteBuildReport(w io.Writer, rep benchmark.Report, path string, opts Options) error {
	if opts.Format == FormatJSON {
		return writeJSON(w, rep)
	}
	if _, err := fmt.Fprintf(w, "Built benchmarks from %d rosters (%d players, %d qualified)\n",
		rep.Rosters, rep.Players, rep.Qualified); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Excluded: %d thin sample, %d invalid, %d unknown role\n",
		rep.Excluded.InsufficientSample, rep.Excluded.InvalidInput, rep.Excluded.UnknownRole); err != nil {
		return err
	}
	for _, r := range model.Roles() {
		if n, ok := rep.Roles[r]; ok {
			if _, err := fmt.Fprintf(w, "  %-10s %d\n", r, n); err != nil {
				return err
			}
		}
	}
	if path != "" {
		if _, err := fmt.Fprintf(w, "Saved to %s\n", path); err != nil {
			return err
		}
	}
	return nil
}

func orDash(ok bool, s string) string {
	if !ok {
		return "-"
	}
	return s
}
