package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/mixrng/internal/config"
	"github.com/agbru/mixrng/internal/mixer"
	"github.com/agbru/mixrng/internal/ui"
)

const (
	colWidthWorker = 8
	colWidthShift  = 5
	colWidthDec    = 20
	colWidthHex    = 18
)

// PrintExecutionConfig displays the run configuration: workers, loops, seed,
// the selected policies and the environment.
func PrintExecutionConfig(cfg config.AppConfig, seed uint64, out io.Writer) {
	seedSource := "process source"
	if cfg.SeedSet {
		seedSource = "explicit"
	}
	budget := "unlimited"
	if cfg.MaxWorkers > 0 {
		budget = fmt.Sprintf("%d", cfg.MaxWorkers)
	}

	fmt.Fprintf(out, "%s--- Execution Configuration ---%s\n", ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(out, "Running %s%d%s worker(s) x %s%d%s loops from seed %s%s%s %s(%s)%s.\n",
		ui.ColorPrimary(), cfg.Threads, ui.ColorReset(),
		ui.ColorPrimary(), cfg.Loops, ui.ColorReset(),
		ui.ColorInfo(), FormatResult(seed, cfg.Format), ui.ColorReset(),
		ui.ColorSecondary(), seedSource, ui.ColorReset())
	fmt.Fprintf(out, "Mixer: %s%s%s, aggregator: %s%s%s, worker budget: %s.\n",
		ui.ColorSuccess(), cfg.Mixer, ui.ColorReset(),
		ui.ColorSuccess(), cfg.Aggregator, ui.ColorReset(), budget)
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorInfo(), runtime.NumCPU(), ui.ColorReset(), ui.ColorInfo(), runtime.Version(), ui.ColorReset())
}

// RenderWorkerTable renders one row per worker with its shift pair and final
// state. states and params are indexed by worker.
func RenderWorkerTable(states []uint64, params []mixer.Params, format string) string {
	pal := ui.GetCurrentTablePalette()
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(pal.Header)
	indexStyle := lipgloss.NewStyle().Foreground(pal.Index)
	valueStyle := lipgloss.NewStyle().Foreground(pal.Value)
	sepStyle := lipgloss.NewStyle().Foreground(pal.Dim)

	valueWidth := colWidthDec
	if format == config.FormatHex {
		valueWidth = colWidthHex
	}
	colWorker := lipgloss.NewStyle().Width(colWidthWorker)
	colShift := lipgloss.NewStyle().Width(colWidthShift).Align(lipgloss.Right)
	colState := lipgloss.NewStyle().Width(valueWidth).Align(lipgloss.Right)

	var b strings.Builder
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		colWorker.Render("Worker"), " ",
		colShift.Render("A"), " ",
		colShift.Render("B"), " ",
		colState.Render("State"),
	)
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(sepStyle.Render(strings.Repeat("─", colWidthWorker+2*colWidthShift+valueWidth+3)))

	for i, s := range states {
		var a, bShift string
		if i < len(params) {
			a = fmt.Sprintf("%d", params[i].A)
			bShift = fmt.Sprintf("%d", params[i].B)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			indexStyle.Render(colWorker.Render(fmt.Sprintf("#%d", i))), " ",
			colShift.Render(a), " ",
			colShift.Render(bShift), " ",
			valueStyle.Render(colState.Render(FormatResult(s, format))),
		)
		b.WriteString("\n")
		b.WriteString(row)
	}
	return b.String()
}
