package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/mwestveld/newscanvas/pkg/model"
	"github.com/mwestveld/newscanvas/pkg/state"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"})
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"})
	styleGroup  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"})

	kindStyles = map[model.NodeKind]lipgloss.Style{
		model.KindArticle:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}),
		model.KindNote:      lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}),
		model.KindEntity:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}),
		model.KindNarrative: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}),
		model.KindClaim:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}),
	}
)

// terminalWidth reports the usable column count, falling back to 100 when
// stdout is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 100
	}
	return w
}

func printCanvas(w io.Writer, st *state.Store) {
	s := st.State()
	width := terminalWidth()

	// Fixed columns: id(20) kind(10) x(9) y(9) z(7); the label takes the rest.
	labelWidth := width - 20 - 10 - 9 - 9 - 7 - 6
	if labelWidth < 12 {
		labelWidth = 12
	}

	header := fmt.Sprintf("%-20s %-10s %-*s %8s %8s %6s",
		"ID", "KIND", labelWidth, "LABEL", "X", "Y", "Z")
	fmt.Fprintln(w, styleHeader.Render(header))

	for _, n := range s.Nodes {
		kind := kindStyles[n.Kind].Render(fmt.Sprintf("%-10s", n.Kind))
		label := runewidth.Truncate(n.DisplayName(), labelWidth, "…")
		fmt.Fprintf(w, "%-20s %s %-*s %s\n",
			runewidth.Truncate(n.ID, 20, "…"),
			kind,
			labelWidth, label,
			styleMuted.Render(fmt.Sprintf("%8.1f %8.1f %6.1f", n.Position.X, n.Position.Y, n.Position.Z)))
	}

	fmt.Fprintln(w, styleMuted.Render(fmt.Sprintf("\n%d nodes, %d edges", len(s.Nodes), len(s.Edges))))

	if s.ActiveLayoutMode == "" {
		return
	}
	line := fmt.Sprintf("layout: %s", s.ActiveLayoutMode)
	if lbl := st.DepthLabel(); lbl != "" {
		line += fmt.Sprintf(" (depth %d, %s)", s.LayoutDepth, lbl)
	}
	fmt.Fprintln(w, styleMuted.Render(line))

	for _, g := range s.LayoutGroups {
		fmt.Fprintf(w, "%s %s\n",
			styleGroup.Render(fmt.Sprintf("▪ %s", g.Label)),
			styleMuted.Render(fmt.Sprintf("(%d nodes)", len(g.NodeIDs))))
	}
}
