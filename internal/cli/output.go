// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* and Print* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [PrintExecutionConfig].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatResult], [FormatExecutionDuration].

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/mixrng/internal/config"
	"github.com/agbru/mixrng/internal/engine"
	"github.com/agbru/mixrng/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// Format is config.FormatDecimal or config.FormatHex.
	Format string
	// Quiet prints the bare value only.
	Quiet bool
	// Verbose adds the per-worker table.
	Verbose bool
}

// FormatResult renders v in the requested format. Hex output is always 16
// digits wide with a 0x prefix; anything else is decimal.
func FormatResult(v uint64, format string) string {
	if format == config.FormatHex {
		return fmt.Sprintf("0x%016x", v)
	}
	return fmt.Sprintf("%d", v)
}

// FormatExecutionDuration formats a duration for display. It shows
// microseconds below a millisecond, milliseconds below a second, and the
// default representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// DisplayQuietResult writes the bare result followed by a newline.
func DisplayQuietResult(out io.Writer, v uint64, format string) {
	fmt.Fprintln(out, FormatResult(v, format))
}

// DisplayResult writes a run's result according to cfg. cfgRun supplies the
// per-worker parameters shown in verbose mode.
func DisplayResult(out io.Writer, rep engine.Report, cfgRun engine.Config, cfg OutputConfig) {
	if cfg.Quiet {
		DisplayQuietResult(out, rep.Value, cfg.Format)
		return
	}

	if cfg.Verbose {
		fmt.Fprintf(out, "\n%s--- Worker States ---%s\n", ui.ColorUnderline(), ui.ColorReset())
		fmt.Fprintln(out, RenderWorkerTable(rep.States, cfgRun.Params, cfg.Format))
	}

	fmt.Fprintf(out, "\n%s--- Result ---%s\n", ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(out, "Value: %s%s%s\n", ui.ColorBold(), FormatResult(rep.Value, cfg.Format), ui.ColorReset())
	fmt.Fprintf(out, "Computed by %s%d%s worker(s) x %s%d%s loops in %s%s%s.\n",
		ui.ColorInfo(), cfgRun.Threads, ui.ColorReset(),
		ui.ColorInfo(), cfgRun.Loops, ui.ColorReset(),
		ui.ColorWarning(), FormatExecutionDuration(rep.Duration), ui.ColorReset())
}
