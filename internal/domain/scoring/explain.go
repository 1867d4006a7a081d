package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
)

// gap is one metric's distance from the benchmark.
type gap struct {
	label        string
	player, mean float64
	z            float64
	contribution float64
	suffix       string
}

// drivers returns the metrics pulling the composite down, largest first.
func drivers(ws *WeaknessScore, stat model.PlayerStat, b benchmark.RoleBenchmark) []gap { //nolint:gocritic // hugeParam
	pos := ws.BenchmarkRole.Position()
	single := func(z MetricZScores) float64 { return Composite(pos, z) }

	var out []gap
	ppg := ws.MetricZScores.PPG
	if ppg < 0 {
		suffix := ""
		if ws.PPGBand == BandBelowP25 {
			suffix = fmt.Sprintf(", below p25 %.2f", b.P25PPG)
		}
		out = append(out, gap{
			label: "PPG", player: stat.PointsPerGame, mean: b.MeanPPG, z: ppg,
			contribution: single(MetricZScores{PPG: ppg}), suffix: suffix,
		})
	}
	if ws.MetricZScores.CorsiUsed && ws.MetricZScores.Corsi < 0 {
		v, _ := stat.CorsiForPct.Value()
		out = append(out, gap{
			label: "CF%", player: v, mean: b.MeanCorsiForPct, z: ws.MetricZScores.Corsi,
			contribution: single(MetricZScores{Corsi: ws.MetricZScores.Corsi, CorsiUsed: true}),
		})
	}
	if ws.MetricZScores.FenwickUsed && ws.MetricZScores.Fenwick < 0 {
		v, _ := stat.FenwickForPct.Value()
		out = append(out, gap{
			label: "FF%", player: v, mean: b.MeanFenwickForPct, z: ws.MetricZScores.Fenwick,
			contribution: single(MetricZScores{Fenwick: ws.MetricZScores.Fenwick, FenwickUsed: true}),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].contribution < out[j].contribution })
	return out
}

func explain(ws *WeaknessScore, stat model.PlayerStat, b benchmark.RoleBenchmark) string { //nolint:gocritic // hugeParam
	var sb strings.Builder

	switch {
	case ws.Severity == SeverityNone:
		fmt.Fprintf(&sb, "%s meets the champion benchmark (composite z %+.2f, PPG %.2f vs mean %.2f).",
			ws.BenchmarkRole, ws.CompositeZScore, stat.PointsPerGame, b.MeanPPG)
	case !ws.Severity.NeedsExplanation():
		fmt.Fprintf(&sb, "%s slightly below the champion benchmark (composite z %+.2f, PPG %.2f vs mean %.2f).",
			ws.BenchmarkRole, ws.CompositeZScore, stat.PointsPerGame, b.MeanPPG)
	default:
		fmt.Fprintf(&sb, "%s gap at %s (composite z %+.2f, %d champion samples).",
			strings.ToUpper(string(ws.Severity)), ws.BenchmarkRole, ws.CompositeZScore, b.SampleSize)
		parts := make([]string, 0, 3)
		for _, g := range drivers(ws, stat, b) {
			parts = append(parts, fmt.Sprintf("%s %.2f vs champion mean %.2f (z %+.2f%s)",
				g.label, g.player, g.mean, g.z, g.suffix))
		}
		if len(parts) > 0 {
			sb.WriteString(" Drivers: ")
			sb.WriteString(strings.Join(parts, "; "))
			sb.WriteString(".")
		}
		if !ws.MetricZScores.CorsiUsed && !ws.MetricZScores.FenwickUsed {
			sb.WriteString(" No shot-share comparison available.")
		}
	}

	if ws.RoleMismatch {
		fmt.Fprintf(&sb, " Benchmarked as %s on cap hit $%.2fM; rate stats alone say %s.",
			ws.BenchmarkRole, stat.SalaryMillions, ws.Role)
	}
	return sb.String()
}
