// Package report renders an analysis result for terminal output.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/varwatch/varwatch/internal/analysis"
	"github.com/varwatch/varwatch/internal/variant"
)

// Render writes a human-readable report: risk bar, summary block, and
// the variant table. Color is controlled globally via color.NoColor.
func Render(w io.Writer, res *analysis.Result) {
	dim := color.New(color.FgHiBlack)
	bold := color.New(color.Bold)

	fmt.Fprintln(w)
	_, _ = dim.Fprintln(w, "  "+strings.Repeat("━", 50))
	renderRiskBar(w, res.Summary.RiskScore)
	fmt.Fprintln(w)

	_, _ = bold.Fprintln(w, "SUMMARY")
	fmt.Fprintf(w, "  Reference length  %d\n", res.Summary.ReferenceLength)
	fmt.Fprintf(w, "  Substitutions     %d\n", res.Summary.Substitutions)
	fmt.Fprintf(w, "  Indels            %d\n", res.Summary.Indels)
	fmt.Fprintf(w, "  Total variants    %d\n", res.Summary.TotalVariants)
	fmt.Fprintln(w)

	if len(res.Variants) == 0 {
		_, _ = dim.Fprintln(w, "  No variants detected.")
		return
	}

	_, _ = bold.Fprintln(w, "VARIANTS")
	fmt.Fprintf(w, "  %-8s %-4s %-4s %s\n", "POS", "REF", "ALT", "TYPE")
	for _, v := range res.Variants {
		fmt.Fprintf(w, "  %-8d %-4s %-4s ", v.Pos, v.Ref, v.Alt)
		_, _ = typeColor(v.Type).Fprintln(w, string(v.Type))
	}
}

func renderRiskBar(w io.Writer, score int) {
	const barWidth = 24
	filled := score * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}

	var barColor *color.Color
	switch {
	case score >= 70:
		barColor = color.New(color.FgRed)
	case score >= 40:
		barColor = color.New(color.FgYellow)
	default:
		barColor = color.New(color.FgGreen)
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	fmt.Fprintf(w, "  Risk score: %d/100 ", score)
	_, _ = barColor.Fprint(w, bar)
	dim := color.New(color.FgHiBlack)
	_, _ = dim.Fprintf(w, " (%s)\n", riskLabel(score))
}

func riskLabel(score int) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 40:
		return "moderate"
	default:
		return "low"
	}
}

func typeColor(t variant.Type) *color.Color {
	if t == variant.TypeIndel {
		return color.New(color.FgYellow)
	}
	return color.New(color.FgRed)
}
