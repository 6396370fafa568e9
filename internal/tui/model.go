// Package tui provides the Bubble Tea solver interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rotsolve/internal/freq"
	"rotsolve/internal/model"
	"rotsolve/internal/report"
	"rotsolve/internal/solver"
	"rotsolve/internal/store"
)

const (
	tableHeight     = 10
	tablePreviewLen = 48
	inputCharLimit  = 4096
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true)
	bestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	paneStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	selStyle    = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#C89A3A"))
)

// Model implements the interactive solver UI.
type Model struct {
	store    *store.Store
	settings model.Settings

	input      textinput.Model
	candTable  table.Model
	preview    viewport.Model
	tableFocus bool

	candidates []model.Candidate
	best       model.Candidate
	letters    int

	notice string

	width  int
	height int
}

// NewModel constructs a solver TUI model. The store may be nil when
// history recording is disabled.
func NewModel(st *store.Store, settings model.Settings, initial string) *Model {
	input := textinput.New()
	input.Placeholder = "Paste or type ciphertext"
	input.CharLimit = inputCharLimit
	input.Focus()
	input.SetValue(initial)

	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Shift", Width: 5},
		{Title: "Score", Width: 9},
		{Title: "Preview", Width: tablePreviewLen},
	}
	candTable := table.New(
		table.WithColumns(columns),
		table.WithHeight(tableHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = headerStyle
	styles.Selected = selStyle
	candTable.SetStyles(styles)

	m := &Model{
		store:     st,
		settings:  settings,
		input:     input,
		candTable: candTable,
		preview:   viewport.New(0, 0),
	}
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.toggleFocus()
			return m, nil
		case tea.KeyEnter:
			if !m.tableFocus {
				m.recordSolve()
				return m, nil
			}
		}
	}
	return m, m.route(msg)
}

func (m *Model) route(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.tableFocus {
		m.candTable, cmd = m.candTable.Update(msg)
		m.refreshPreview()
		return cmd
	}
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.notice = ""
		m.recompute()
	}
	return cmd
}

func (m *Model) toggleFocus() {
	m.tableFocus = !m.tableFocus
	if m.tableFocus {
		m.input.Blur()
		m.candTable.Focus()
	} else {
		m.candTable.Blur()
		m.input.Focus()
	}
}

func (m *Model) recompute() {
	ciphertext := m.input.Value()
	m.candidates = solver.Candidates(ciphertext)
	m.best = solver.Best(m.candidates)
	m.letters = freq.LetterCount(ciphertext)

	rows := make([]table.Row, 0, len(m.candidates))
	for _, c := range m.candidates {
		mark := ""
		if c.Shift == m.best.Shift {
			mark = "*"
		}
		rows = append(rows, table.Row{
			mark,
			strconv.Itoa(c.Shift),
			fmt.Sprintf("%.4f", c.Score),
			report.Preview(c.Plaintext, tablePreviewLen),
		})
	}
	m.candTable.SetRows(rows)
	m.refreshPreview()
}

func (m *Model) refreshPreview() {
	selected := m.best
	if m.tableFocus {
		cursor := m.candTable.Cursor()
		if cursor >= 0 && cursor < len(m.candidates) {
			selected = m.candidates[cursor]
		}
	}
	width := m.preview.Width
	if width <= 0 {
		width = 60
	}
	m.preview.SetContent(wrapText(selected.Plaintext, width))
}

func (m *Model) recordSolve() {
	if m.store == nil || m.settings.NoHistory {
		m.notice = "history disabled"
		return
	}
	if m.letters == 0 {
		m.notice = "nothing to record"
		return
	}
	rec := model.SolveRecord{
		SolvedAt: time.Now(),
		Preview:  report.Preview(m.input.Value(), m.settings.PreviewLen),
		Letters:  m.letters,
		Shift:    m.best.Shift,
		Score:    m.best.Score,
	}
	if _, err := m.store.InsertSolve(context.Background(), rec); err != nil {
		m.notice = fmt.Sprintf("failed to record solve: %v", err)
		logErrf("failed to record solve: %v\n", err)
		return
	}
	m.notice = fmt.Sprintf("recorded shift %d", m.best.Shift)
}

func (m *Model) resize() {
	inner := m.width - 4
	if inner < 20 {
		inner = 20
	}
	m.input.Width = inner
	m.preview.Width = inner
	previewHeight := m.height - tableHeight - 10
	if previewHeight < 3 {
		previewHeight = 3
	}
	m.preview.Height = previewHeight
	m.refreshPreview()
}

// View implements tea.Model.
func (m *Model) View() string {
	var header string
	if m.letters == 0 {
		header = titleStyle.Render("rotsolve") + "  " + noticeStyle.Render("waiting for letters")
	} else {
		header = titleStyle.Render("rotsolve") + "  " +
			bestStyle.Render(fmt.Sprintf("best shift %d (score %.4f)", m.best.Shift, m.best.Score))
	}
	sections := []string{
		header,
		paneStyle.Render(m.input.View()),
		m.candTable.View(),
		paneStyle.Render(m.preview.View()),
	}
	if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}
	sections = append(sections, helpStyle.Render("tab focus · enter record · esc quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
