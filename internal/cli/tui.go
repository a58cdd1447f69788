package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/resumake/pkg/editor"
	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listHeldStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			Width(30)
	activeColumnStyle = columnStyle.BorderForeground(colorCyan)
)

// =============================================================================
// ArrangeModel - Drag and drop over template regions
// =============================================================================

// ArrangeModel is the bubbletea model for rearranging sections. Space picks
// up the section under the cursor; moving the cursor and pressing space
// again drops it there. Every drop is one move event on the editor.
type ArrangeModel struct {
	ctx    context.Context
	editor *editor.Editor

	Regions []template.RegionID
	Col     int // cursor region
	Row     int // cursor position within the region
	Held    *layout.RegionRef

	Status  string
	Changed bool
	Saved   bool
}

// NewArrangeModel creates an arrange model over e's draggable regions.
func NewArrangeModel(ctx context.Context, e *editor.Editor) ArrangeModel {
	return ArrangeModel{
		ctx:     ctx,
		editor:  e,
		Regions: e.Policy().Draggable(),
	}
}

func (m ArrangeModel) Init() tea.Cmd {
	return nil
}

func (m ArrangeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Regions) == 0 {
		if ok && isQuit(key.String()) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.Held == nil {
			return m, tea.Quit
		}
		m.Held = nil
		m.Status = "cancelled"
	case "enter":
		m.Saved = true
		return m, tea.Quit
	case "up", "k":
		if m.Row > 0 {
			m.Row--
		}
	case "down", "j":
		if m.Row < m.maxRow() {
			m.Row++
		}
	case "left", "h", "shift+tab":
		m.Col = (m.Col + len(m.Regions) - 1) % len(m.Regions)
		m.Row = min(m.Row, m.maxRow())
	case "right", "l", "tab":
		m.Col = (m.Col + 1) % len(m.Regions)
		m.Row = min(m.Row, m.maxRow())
	case " ":
		m = m.toggle()
	}
	return m, nil
}

func isQuit(k string) bool { return k == "q" || k == "ctrl+c" || k == "esc" }

// toggle picks up the section under the cursor or drops the held one.
func (m ArrangeModel) toggle() ArrangeModel {
	cur := layout.RegionRef{Region: m.Regions[m.Col], Index: m.Row}
	if m.Held == nil {
		if m.Row >= len(m.list(m.Col)) {
			return m
		}
		m.Held = &cur
		m.Status = "picked up " + m.list(m.Col)[m.Row].Title
		return m
	}

	mv := layout.Move{From: *m.Held, To: cur}
	m.Held = nil
	res, err := m.editor.Move(m.ctx, mv)
	switch {
	case err != nil:
		m.Status = err.Error()
	case !res.Applied:
		m.Status = "not moved: " + res.Reason
	case mv.Noop():
		m.Status = ""
	default:
		m.Changed = true
		m.Status = "moved " + mv.String()
	}
	m.Row = min(m.Row, m.maxRow())
	return m
}

func (m ArrangeModel) list(col int) []section.Section {
	return m.editor.View().Region(m.Regions[col])
}

// maxRow is the last reachable row in the cursor region. While a section
// from another region is held, the slot after the last item is reachable
// so the section can be appended.
func (m ArrangeModel) maxRow() int {
	n := len(m.list(m.Col))
	if m.Held != nil && m.Held.Region != m.Regions[m.Col] {
		return n
	}
	return max(0, n-1)
}

func (m ArrangeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Arrange Sections"))
	b.WriteString(listDimStyle.Render("  " + string(m.editor.Policy().Template)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ region  ↑/↓ position  space pick/drop  ⏎ save  q quit"))
	b.WriteString("\n\n")

	if len(m.Regions) == 0 {
		b.WriteString(listDimStyle.Render("This template has no movable regions."))
		b.WriteString("\n")
		return b.String()
	}

	cols := make([]string, len(m.Regions))
	for i := range m.Regions {
		cols[i] = m.column(i)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")
	if m.Status != "" {
		b.WriteString(listDimStyle.Render(m.Status))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ArrangeModel) column(col int) string {
	var lines []string
	lines = append(lines, styleRegion.Render(strings.ToUpper(string(m.Regions[col]))))

	secs := m.list(col)
	for i, s := range secs {
		lines = append(lines, m.item(col, i, s.Title))
	}
	if m.Held != nil && col == m.Col && m.Row == len(secs) {
		lines = append(lines, listSelectedStyle.Render("› "+iconArrow))
	}
	if len(secs) == 0 && (m.Held == nil || col != m.Col) {
		lines = append(lines, listDimStyle.Render("  (empty)"))
	}

	style := columnStyle
	if col == m.Col {
		style = activeColumnStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m ArrangeModel) item(col, i int, title string) string {
	held := m.Held != nil && m.Held.Region == m.Regions[col] && m.Held.Index == i
	cursor := col == m.Col && i == m.Row
	switch {
	case held:
		return listHeldStyle.Render(fmt.Sprintf("%s %s", iconSelected, title))
	case cursor:
		return listSelectedStyle.Render("› " + title)
	}
	return listNormalStyle.Render("  " + title)
}

// arrangeCommand opens the interactive arrange view.
func (c *CLI) arrangeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "arrange",
		Short: "Rearrange sections interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEditor(c.docPath, c.Logger)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(NewArrangeModel(cmd.Context(), e)).Run()
			if err != nil {
				return err
			}
			m := final.(ArrangeModel)
			if !m.Changed {
				printInfo("No changes")
				return nil
			}
			if !m.Saved {
				printWarning("Changes discarded (press enter to save)")
				return nil
			}
			if err := saveEditor(c.docPath, e); err != nil {
				return err
			}
			printSuccess("Saved %s", c.docPath)
			return nil
		},
	}
}
