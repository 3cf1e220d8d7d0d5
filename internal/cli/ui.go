package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/routemap/pkg/graph"
	"github.com/matzehuels/routemap/pkg/route"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - route
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleRoute for path nodes.
	StyleRoute = lipgloss.NewStyle().Bold(true).Foreground(colorRed)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats prints graph statistics on a single line.
func printStats(w io.Writer, nodeCount, edgeCount int) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodeCount),
		fmt.Sprintf("%d edges", edgeCount),
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// =============================================================================
// Graph Output
// =============================================================================

// printNodes lists the nodes of g, one per line.
func printNodes(w io.Writer, g *graph.Graph) {
	fmt.Fprintln(w, StyleTitle.Render("Available nodes:"))
	for _, n := range g.Nodes() {
		fmt.Fprintln(w, n)
	}
}

// printStructure prints every node followed by its adjacency:
//
//	A:
//	  -> B (weight: 4)
func printStructure(w io.Writer, g *graph.Graph) {
	fmt.Fprintln(w, StyleTitle.Render("Loaded graph:"))
	for _, n := range g.Nodes() {
		fmt.Fprintf(w, "%s:\n", n)
		for _, e := range g.Neighbors(n) {
			fmt.Fprintf(w, "  -> %s (weight: %s)\n", e.To, StyleNumber.Render(fmt.Sprint(e.Weight)))
		}
	}
}

// printRoute prints the outcome of a query from from to to.
func printRoute(w io.Writer, from, to string, res route.Result) {
	if !res.Found {
		fmt.Fprintf(w, "Shortest distance from %s to %s is %s\n", from, to, StyleDim.Render("infinity (no path)"))
		printWarning(w, "No path found from %s to %s", from, to)
		return
	}
	fmt.Fprintf(w, "Shortest distance from %s to %s is %s\n", from, to, StyleNumber.Render(res.CostString()))

	nodes := make([]string, len(res.Path))
	for i, n := range res.Path {
		nodes[i] = StyleRoute.Render("[" + n + "]")
	}
	fmt.Fprintf(w, "\nPATH: %s\n", strings.Join(nodes, route.PathSeparator))
}

// distanceTable renders the distances from start as a bordered table.
func distanceTable(start string, dists []route.Distance) string {
	rows := make([][]string, 0, len(dists))
	for _, d := range dists {
		cost := "infinity (no path)"
		if d.Reachable {
			cost = fmt.Sprint(d.Cost)
		}
		rows = append(rows, []string{d.Node, cost})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("To", "Distance from "+start).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row < len(dists) && !dists[row].Reachable {
				return StyleDim
			}
			if col == 1 {
				return StyleNumber
			}
			return StyleValue
		})
	return t.Render()
}
