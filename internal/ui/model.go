package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nconklindev/gridedit/internal/config"
	"github.com/nconklindev/gridedit/internal/converter"
	"github.com/nconklindev/gridedit/internal/grid"
	"github.com/nconklindev/gridedit/internal/session"
	"github.com/nconklindev/gridedit/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateFilePicker state = iota
	stateLoading
	stateTable
	stateEditCell
	stateError
)

type Model struct {
	state      state
	cfg        config.EditorConfig
	filepicker filepicker.Model
	input      textinput.Model
	help       help.Model
	keys       keyMap

	session  *session.Session
	file     *types.FileData
	initPath string

	// cursor in grid coordinates; row 0 is the header
	cx, cy  int
	scrollX int
	scrollY int

	status    string
	statusErr bool
	quitArmed bool
	// file picked over unsaved changes, loaded if picked again
	pendingLoad string

	err    error
	width  int
	height int
}

type fileLoadedMsg struct {
	data *types.FileData
	err  error
}

type exportCompleteMsg struct {
	result *types.ExportResult
	err    error
}

// InitialModel builds the editor UI around sess. When path is non-empty the
// file is loaded on start instead of showing the picker.
func InitialModel(cfg config.EditorConfig, sess *session.Session, path string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = cfg.AllowedTypes
	fp.CurrentDirectory = cfg.StartDir
	if fp.CurrentDirectory == "" {
		fp.CurrentDirectory, _ = os.Getwd()
	}

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42"))
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42")).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	ti := textinput.New()
	ti.Prompt = "› "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42"))

	m := Model{
		state:      stateFilePicker,
		cfg:        cfg,
		filepicker: fp,
		input:      ti,
		help:       help.New(),
		keys:       defaultKeyMap(),
		session:    sess,
		initPath:   path,
	}
	if path != "" {
		m.state = stateLoading
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.initPath != "" {
		return loadFile(m.initPath)
	}
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-10, 10)

		// Subtract space for title, subtitle, help text, and padding
		m.filepicker.SetHeight(max(msg.Height-14, 5))
		return m, nil

	case fileLoadedMsg:
		if msg.err != nil {
			if m.initPath != "" && m.file == nil {
				m.err = msg.err
				m.state = stateError
				return m, nil
			}
			m.setError(msg.err)
			m.state = stateFilePicker
			return m, nil
		}
		m.session.Load(msg.data.Text)
		m.file = msg.data
		m.cx, m.cy = 0, 0
		m.scrollX, m.scrollY = 0, 0
		if g, ok := m.session.Grid(); ok && g.Rows() > 1 {
			m.cy = 1
		}
		m.quitArmed = false
		m.pendingLoad = ""
		m.state = stateTable
		loaded := fmt.Sprintf("Loaded %s", filepath.Base(msg.data.Path))
		if msg.data.HeaderRow > 0 {
			loaded += fmt.Sprintf(" (header at row %d)", msg.data.HeaderRow+1)
		}
		m.setStatus(loaded)
		return m, nil

	case exportCompleteMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.session.MarkClean()
		m.quitArmed = false
		m.setStatus(fmt.Sprintf("Exported %d rows to %s", msg.result.Rows, filepath.Base(msg.result.OutputFile)))
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilePicker:
			if msg.String() != "q" {
				m.quitArmed = false
			}
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "q":
				return m.confirmQuit()
			case "esc":
				if m.file != nil {
					m.state = stateTable
					return m, nil
				}
			}

		case stateTable:
			return m.updateTable(msg)

		case stateEditCell:
			return m.updateEditCell(msg)

		case stateLoading:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil

		case stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
			return m, nil
		}
	}

	switch m.state {
	case stateFilePicker:
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			return m.openFile(path)
		}
		if didSelect, path := m.filepicker.DidSelectDisabledFile(msg); didSelect {
			m.setError(fmt.Errorf("%s is not a supported file", filepath.Base(path)))
		}
		return m, cmd

	case stateEditCell:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g, _ := m.session.Grid()

	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit):
		return m.confirmQuit()

	case key.Matches(msg, m.keys.Up):
		if m.cy > 0 {
			m.cy--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cy < g.Rows()-1 {
			m.cy++
		}
	case key.Matches(msg, m.keys.Left):
		if m.cx > 0 {
			m.cx--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cx < maxCols(g)-1 {
			m.cx++
		}

	case key.Matches(msg, m.keys.Edit):
		value := ""
		if m.cy < g.Rows() && m.cx < len(g[m.cy]) {
			value = g[m.cy][m.cx]
		}
		m.input.SetValue(value)
		m.input.CursorEnd()
		m.state = stateEditCell
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.AddRow):
		if err := m.session.AddRow(); err != nil {
			m.setError(err)
			return m, nil
		}
		g, _ = m.session.Grid()
		m.cy = g.Rows() - 1
		m.setStatus("Row added")

	case key.Matches(msg, m.keys.DeleteRow):
		if m.cy == 0 {
			m.setError(errors.New("the header row cannot be deleted"))
			return m, nil
		}
		deleted := m.cy
		if err := m.session.DeleteRow(deleted); err != nil {
			m.setError(err)
			return m, nil
		}
		g, _ = m.session.Grid()
		m.cy = min(m.cy, g.Rows()-1)
		m.cx = max(min(m.cx, maxCols(g)-1), 0)
		m.setStatus(fmt.Sprintf("Row %d deleted", deleted))

	case key.Matches(msg, m.keys.Undo):
		m.applyHistory(m.session.Undo, "Undone", "Nothing to undo")
	case key.Matches(msg, m.keys.Redo):
		m.applyHistory(m.session.Redo, "Redone", "Nothing to redo")

	case key.Matches(msg, m.keys.SaveCSV):
		return m.export(types.FormatCSV)
	case key.Matches(msg, m.keys.SaveXLSX):
		return m.export(types.FormatXLSX)

	case key.Matches(msg, m.keys.Open):
		m.state = stateFilePicker
		return m, m.filepicker.Init()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.follow()
	return m, nil
}

// follow keeps the scroll offsets close to the cursor between renders.
func (m *Model) follow() {
	g, ok := m.session.Grid()
	if !ok {
		return
	}
	m.scrollX, _ = visibleRange(columnWidths(g), m.cx, m.scrollX, m.width)

	bodyHeight := max(m.height-12, 3)
	if m.cy > 0 && m.cy-1 < m.scrollY {
		m.scrollY = m.cy - 1
	}
	if m.cy-1 >= m.scrollY+bodyHeight {
		m.scrollY = m.cy - bodyHeight
	}
}

// confirmQuit quits, unless there are unsaved changes and this is the
// first q in a row.
func (m Model) confirmQuit() (tea.Model, tea.Cmd) {
	if m.session.Dirty() && !m.quitArmed {
		m.quitArmed = true
		m.setError(errors.New("unsaved changes, press q again to quit"))
		return m, nil
	}
	return m, tea.Quit
}

// openFile loads path, asking for a second selection of the same file
// before unsaved changes are replaced.
func (m Model) openFile(path string) (tea.Model, tea.Cmd) {
	if m.session.Dirty() && m.pendingLoad != path {
		m.pendingLoad = path
		m.setError(fmt.Errorf("unsaved changes, select %s again to discard them", filepath.Base(path)))
		return m, nil
	}
	m.pendingLoad = ""
	m.state = stateLoading
	return m, loadFile(path)
}

func (m Model) updateEditCell(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		m.state = stateTable
		return m, nil
	case "enter":
		m.input.Blur()
		m.state = stateTable
		if err := m.session.EditCell(m.cy, m.cx, m.input.Value()); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Cell updated")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) applyHistory(step func() (bool, error), done, empty string) {
	ok, err := step()
	switch {
	case err != nil:
		m.setError(err)
		return
	case !ok:
		m.setStatus(empty)
		return
	}
	g, _ := m.session.Grid()
	m.cy = max(min(m.cy, g.Rows()-1), 0)
	m.cx = max(min(m.cx, maxCols(g)-1), 0)
	m.setStatus(done)
	m.follow()
}

// snapshot freezes the current grid so the export command can run off the
// event loop without touching the session.
type snapshot struct {
	text string
	g    grid.Grid
}

func (s snapshot) Export() (string, error) { return s.text, nil }

func (s snapshot) Grid() (grid.Grid, bool) { return s.g, true }

func (m Model) export(format types.Format) (tea.Model, tea.Cmd) {
	text, err := m.session.Export()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	g, _ := m.session.Grid()

	input := m.file.Path
	output := converter.OutputPath(input, m.cfg.ExportSuffix, format)
	src := snapshot{text: text, g: g}

	m.setStatus(fmt.Sprintf("Exporting to %s...", filepath.Base(output)))
	return m, func() tea.Msg {
		result, err := converter.Export(src, input, output)
		return exportCompleteMsg{result: result, err: err}
	}
}

func loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := converter.ReadFile(path)
		return fileLoadedMsg{data: data, err: err}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	slog.Debug("ui error", "error", err)
	m.status = err.Error()
	m.statusErr = true
}

func maxCols(g grid.Grid) int {
	n := 0
	for _, r := range g {
		n = max(n, len(r))
	}
	return n
}
