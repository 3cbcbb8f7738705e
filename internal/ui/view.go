package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nconklindev/gridedit/internal/grid"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	minColWidth = 4
	maxColWidth = 30
)

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateLoading:
		return m.viewLoading()
	case stateTable, stateEditCell:
		return m.viewTable()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("▦ gridedit"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Select a file to edit (%s)", strings.Join(m.cfg.AllowedTypes, ", "))))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n")
	s.WriteString(m.viewStatus())

	hint := "Press q to quit"
	if m.file != nil {
		hint = "esc: back to table • q: quit"
	}
	s.WriteString(HelpStyle.Render(hint))

	return s.String()
}

func (m Model) viewLoading() string {
	return BoxStyle.Render(TitleStyle.Render("Loading...") + "\n\n" + m.initPath)
}

func (m Model) viewTable() string {
	var s strings.Builder

	g, _ := m.session.Grid()

	title := filepath.Base(m.file.Path)
	if m.session.Dirty() {
		title += " *"
	}
	s.WriteString(TitleStyle.Render(title))
	s.WriteString("\n")
	s.WriteString(DimStyle.Render(fmt.Sprintf("[%d,%d]  %d rows × %d cols", m.cy, m.cx, g.Rows(), g.Cols())))
	s.WriteString("\n\n")

	s.WriteString(m.renderGrid(g))
	s.WriteString("\n")

	if m.state == stateEditCell {
		s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Editing (%d,%d): enter to save, esc to cancel", m.cy, m.cx)))
		s.WriteString("\n")
		s.WriteString(m.input.View())
		s.WriteString("\n")
	}

	s.WriteString(m.viewStatus())
	s.WriteString(HelpStyle.Render(m.help.View(m.keys)))

	return s.String()
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return ErrorStyle.Render("✗ "+m.status) + "\n"
	}
	return SuccessStyle.Render("✓ "+m.status) + "\n"
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

// renderGrid draws row 0 as the header and the rows that fit below it.
func (m Model) renderGrid(g grid.Grid) string {
	if g.Rows() == 0 {
		return DimStyle.Render("(no rows)")
	}

	widths := columnWidths(g)
	start, end := visibleRange(widths, m.cx, m.scrollX, m.width)

	bodyHeight := max(m.height-12, 3)
	scrollY := m.scrollY
	if m.cy > 0 {
		if m.cy-1 < scrollY {
			scrollY = m.cy - 1
		}
		if m.cy-1 >= scrollY+bodyHeight {
			scrollY = m.cy - bodyHeight
		}
	}
	first := scrollY + 1
	last := min(g.Rows(), first+bodyHeight)

	body := make([][]string, 0, max(last-first, 0))
	for ri := first; ri < last; ri++ {
		body = append(body, windowCells(g[ri], start, end))
	}

	// cellAt maps table coordinates back to the grid; table.HeaderRow is -1.
	cellAt := func(row, col int) (int, int) {
		if row == table.HeaderRow {
			return 0, start + col
		}
		return first + row, start + col
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(DimStyle).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		Headers(windowCells(g[0], start, end)...).
		Rows(body...).
		StyleFunc(func(row, col int) lipgloss.Style {
			ri, ci := cellAt(row, col)
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case ri == m.cy && ci == m.cx:
				return CursorStyle.Padding(0, 1)
			case ri == 0:
				return HeaderStyle.Padding(0, 1)
			case ci >= len(g[ri]):
				return DimStyle.Padding(0, 1)
			}
			return cell
		})

	return t.Render()
}

// windowCells returns the cells of r in [start, end), truncated for display.
// Columns the row does not have are shown as a dot.
func windowCells(r grid.Row, start, end int) []string {
	cells := make([]string, 0, end-start)
	for ci := start; ci < end; ci++ {
		if ci >= len(r) {
			cells = append(cells, "·")
			continue
		}
		cells = append(cells, truncate(r[ci], maxColWidth))
	}
	return cells
}

func columnWidths(g grid.Grid) []int {
	widths := make([]int, maxCols(g))
	for i := range widths {
		widths[i] = minColWidth
	}

	// sample rows for width
	sampleEnd := min(len(g), 100)
	for _, row := range g[:sampleEnd] {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColWidth)
	}
	return widths
}

// visibleRange returns the [start, end) columns that fit in the terminal
// width while keeping the cursor column on screen.
func visibleRange(widths []int, cursor, scroll, termWidth int) (int, int) {
	if len(widths) == 0 {
		return 0, 0
	}
	avail := termWidth - 2
	if termWidth == 0 {
		avail = 1 << 30
	}

	start := min(scroll, cursor)
	for {
		used, end := 0, start
		for end < len(widths) {
			w := widths[end] + 3
			if used+w > avail && end > start {
				break
			}
			used += w
			end++
		}
		if cursor < end || start >= cursor {
			return start, end
		}
		start++
	}
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
