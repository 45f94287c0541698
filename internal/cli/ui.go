package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pathfinder/pkg/pipeline"
	"github.com/matzehuels/pathfinder/pkg/store"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, "  "+styleKey.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Results
// =============================================================================

// printResult shows a solve result: the status line, then the path and the
// run statistics.
func printResult(w io.Writer, res *pipeline.Result) {
	if !res.Solved() {
		printWarning(w, "No path found (%s)", res.Outcome)
		printStats(w, res)
		return
	}
	printSuccess(w, "Solution Distance: %s", StyleNumber.Render(formatDistance(res.Distance)))
	printKeyValue(w, "algorithm", res.Algorithm.String())
	printKeyValue(w, "path", formatPath(res.Path))
	printKeyValue(w, "hops", strconv.Itoa(max(len(res.Path)-1, 0)))
	printStats(w, res)
}

// printStats prints run statistics on a single line.
func printStats(w io.Writer, res *pipeline.Result) {
	parts := []string{
		fmt.Sprintf("%d nodes", res.Nodes),
		fmt.Sprintf("%d links", res.Links),
		fmt.Sprintf("%d iterations", res.Iterations),
		fmt.Sprintf("%d visited", res.Visited),
		res.Duration.Round(time.Microsecond).String(),
	}

	status := styleComputed.Render(iconFresh)
	if res.CacheHit {
		status = styleCached.Render(iconCached)
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	b.WriteString(StyleDim.Render(" · ") + status)
	fmt.Fprintln(w, b.String())
}

func formatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', 2, 64)
}

func formatPath(path []int) string {
	ids := make([]string, len(path))
	for i, id := range path {
		ids[i] = strconv.Itoa(id)
	}
	return strings.Join(ids, " "+iconArrow+" ")
}

// printGraphTable lists stored graphs.
func printGraphTable(w io.Writer, infos []store.Info) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("NAME", "NODES", "LINKS", "UPDATED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, in := range infos {
		t.Row(in.Name, strconv.Itoa(in.Nodes), strconv.Itoa(in.Links), in.UpdatedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintln(w, t.Render())
}
