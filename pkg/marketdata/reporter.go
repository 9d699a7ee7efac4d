package marketdata

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rxtech-lab/stock-history/internal/types"
)

// ruleWidth is the width of the separator line around a batch.
const ruleWidth = 60

// Reporter receives the user-facing notices of a download run.
// Diagnostics go to the logger instead.
type Reporter interface {
	DownloadStarted(ticker string, start time.Time, end time.Time)
	NoData(ticker string)
	Saved(result Result)
	DownloadFailed(ticker string, err error)
	BatchStarted(count int, outputDir string)
	Resolved(name string, ticker string)
	BatchFinished(succeeded int, total int)
	PresetStarted(name string)
	UnknownPreset(name string, available []string)
}

// ConsoleReporter writes notices as plain lines.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a ConsoleReporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

func (r *ConsoleReporter) DownloadStarted(ticker string, start time.Time, end time.Time) {
	fmt.Fprintf(r.out, "\n📊 Downloading %s...\n", ticker)
	fmt.Fprintf(r.out, "   Period: %s to %s\n", start.Format(types.DateLayout), end.Format(types.DateLayout))
}

func (r *ConsoleReporter) NoData(ticker string) {
	fmt.Fprintf(r.out, "   ❌ No data found for %s\n", ticker)
}

func (r *ConsoleReporter) Saved(result Result) {
	fmt.Fprintf(r.out, "   ✅ Saved %d rows to %s\n", result.Rows, result.Path)
	fmt.Fprintf(r.out, "   📅 Date range: %s to %s\n", result.FirstDate.Format(types.DateLayout), result.LastDate.Format(types.DateLayout))
	fmt.Fprintf(r.out, "   💰 Price range: $%s - $%s\n", result.MinClose.StringFixed(2), result.MaxClose.StringFixed(2))
}

func (r *ConsoleReporter) DownloadFailed(ticker string, err error) {
	fmt.Fprintf(r.out, "   ❌ Error downloading %s: %v\n", ticker, err)
}

func (r *ConsoleReporter) BatchStarted(count int, outputDir string) {
	fmt.Fprintf(r.out, "\n🚀 Downloading %d stocks...\n", count)
	fmt.Fprintf(r.out, "📁 Output directory: %s\n", outputDir)
	fmt.Fprintln(r.out, strings.Repeat("=", ruleWidth))
}

func (r *ConsoleReporter) Resolved(name string, ticker string) {
	fmt.Fprintf(r.out, "💡 '%s' → %s\n", name, ticker)
}

func (r *ConsoleReporter) BatchFinished(succeeded int, total int) {
	fmt.Fprintf(r.out, "\n%s\n", strings.Repeat("=", ruleWidth))
	fmt.Fprintf(r.out, "✅ Successfully downloaded %d/%d stocks\n", succeeded, total)
}

func (r *ConsoleReporter) PresetStarted(name string) {
	fmt.Fprintf(r.out, "📦 Downloading preset: %s\n", name)
}

func (r *ConsoleReporter) UnknownPreset(name string, available []string) {
	fmt.Fprintf(r.out, "❌ Unknown preset: %s\n", name)
	fmt.Fprintf(r.out, "Available presets: %s\n", strings.Join(available, ", "))
}
