package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/routemap/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive node selection
// =============================================================================

// NodeListModel is the bubbletea model for picking one node of a graph.
// Typing narrows the list to nodes containing the typed text.
type NodeListModel struct {
	Title    string
	Nodes    []string
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewNodeListModel creates a node list model.
func NewNodeListModel(title string, nodes []string) NodeListModel {
	return NodeListModel{
		Title:  title,
		Nodes:  nodes,
		Height: 15,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

// visible returns the nodes matching the current filter.
func (m NodeListModel) visible() []string {
	if m.Filter == "" {
		return m.Nodes
	}
	needle := strings.ToLower(m.Filter)
	var out []string
	for _, n := range m.Nodes {
		if strings.Contains(strings.ToLower(n), needle) {
			out = append(out, n)
		}
	}
	return out
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		items := m.visible()
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if len(items) == 0 {
				return m, nil
			}
			m.Selected = items[m.Cursor]
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.Filter != "" {
				r := []rune(m.Filter)
				m.Filter = string(r[:len(r)-1])
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes, tea.KeySpace:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString(StyleDim.Render("filter: ") + StyleValue.Render(m.Filter))
	}
	b.WriteString("\n\n")

	items := m.visible()
	end := min(m.Offset+m.Height, len(items))
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + items[i]))
		} else {
			b.WriteString(listNormalStyle.Render("  " + items[i]))
		}
		b.WriteString("\n")
	}
	if len(items) == 0 {
		b.WriteString(listDimStyle.Render("  no matching nodes"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(items)), len(items))))
	return b.String()
}

// =============================================================================
// Picking
// =============================================================================

// interactive reports whether stdin and stdout are terminals.
var interactive = func() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}

// pickNode returns value when it is set, otherwise asks the user to choose
// among nodes. Without a terminal a missing value is an INVALID_INPUT error
// naming flag. Quitting the picker returns context.Canceled.
func pickNode(ctx context.Context, value, flag, title string, nodes []string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}
	if !interactive() {
		return "", errors.New(errors.ErrCodeInvalidInput, "--%s is required when not running in a terminal", flag)
	}
	if len(nodes) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "graph has no nodes to choose from")
	}

	final, err := tea.NewProgram(NewNodeListModel(title, nodes), tea.WithContext(ctx)).Run()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "node picker")
	}
	m, ok := final.(NodeListModel)
	if !ok || m.Selected == "" {
		return "", context.Canceled
	}
	return m.Selected, nil
}
