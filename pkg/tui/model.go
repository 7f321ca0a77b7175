// Package tui hosts the graph editor in a terminal. A bubbletea program
// turns terminal events into editor frames and paints the resulting draw
// lists on a cell canvas.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-grapheditor/pkg/document"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
	"github.com/dd0wney/cluso-grapheditor/pkg/layout"
	"github.com/dd0wney/cluso-grapheditor/pkg/logging"
	"github.com/dd0wney/cluso-grapheditor/pkg/metrics"
	"github.com/dd0wney/cluso-grapheditor/pkg/raster"
)

// Styles
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3C3C50")).
			Padding(0, 1)

	modeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// statusRows is the number of terminal rows below the canvas.
const statusRows = 2

// ErrNoScenePath is returned when saving a document that was not loaded
// from a file.
var ErrNoScenePath = errors.New("no scene file to save to")

// Options configures the terminal editor.
type Options struct {
	Document *document.Document
	Editor   grapheditor.Config
	// Templates feed the context menu's add entries.
	Templates []document.NodeTemplate
	Layout    layout.Layout
	// ScenePath is where ctrl+s saves; SceneName is written into the file.
	ScenePath string
	SceneName string

	CellWidth     float64
	CellHeight    float64
	FrameInterval time.Duration

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// Model is the bubbletea model of the terminal editor.
type Model struct {
	doc    *document.Document
	editor *grapheditor.Editor
	term   *raster.Terminal
	input  *inputFolder
	menu   *contextMenu
	opts   Options

	help   help.Model
	keys   keyMap
	width  int
	height int

	message    string
	messageErr bool

	logger logging.Logger
}

type tickMsg time.Time

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// New creates the model. The editor's text metrics and font size follow the
// terminal cell size so labels land on whole cells.
func New(opts Options) Model {
	if opts.Document == nil {
		opts.Document = document.New(document.Config{Logger: opts.Logger, Metrics: opts.Metrics})
	}
	if opts.Templates == nil {
		opts.Templates = document.DefaultTemplates()
	}
	if opts.Layout == nil {
		opts.Layout = layout.NewHierarchical(layout.DefaultConfig())
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 33 * time.Millisecond
	}

	term := raster.NewTerminal(0, 0, opts.CellWidth, opts.CellHeight)
	cfg := opts.Editor
	cfg.Style.MeasureText = term.MeasureText
	cfg.Style.FontSize = term.CellSize().Y

	menu := &contextMenu{}
	opts.Document.SetContextMenuHook(menu.request)

	return Model{
		doc:    opts.Document,
		editor: grapheditor.New(cfg, opts.Logger, opts.Metrics),
		term:   term,
		input:  &inputFolder{},
		menu:   menu,
		opts:   opts,
		help:   help.New(),
		keys:   keys,
		logger: logging.OrNop(opts.Logger).With(logging.Component("tui")),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.term.Resize(msg.Width, max(msg.Height-statusRows, 0))

	case tickMsg:
		m.frame()
		return m, m.tickCmd()

	case tea.MouseMsg:
		m.mouse(msg)

	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	if m.menu.open {
		if msg.Action != tea.MouseActionPress {
			if i := m.menu.itemAt(msg.X, msg.Y); i >= 0 {
				m.menu.cursor = i
			}
			return
		}
		if msg.Button == tea.MouseButtonLeft {
			if i := m.menu.itemAt(msg.X, msg.Y); i >= 0 {
				m.choose(m.menu.items[i])
			}
		}
		m.menu.close()
		return
	}
	m.input.mouseEvent(msg, m.term.CellCenter(msg.X, msg.Y))
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu.open {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.menu.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.menu.move(1)
		case key.Matches(msg, m.keys.Enter):
			m.choose(m.menu.items[m.menu.cursor])
			m.menu.close()
		case key.Matches(msg, m.keys.Close, m.keys.Menu):
			m.menu.close()
		}
		return m, nil
	}

	if k, ctrl, ok := m.keys.editorKey(msg); ok {
		m.input.key(k, ctrl)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Fit):
		m.editor.FitToContent(m.doc)
	case key.Matches(msg, m.keys.Arrange):
		m.arrange()
	case key.Matches(msg, m.keys.ResetZoom):
		vp := m.editor.Viewport()
		vp.Zoom, vp.TargetZoom = 1, 1
		m.editor.SetViewport(vp)
	case key.Matches(msg, m.keys.Save):
		if err := m.save(); err != nil {
			m.fail("save failed: %v", err)
		} else {
			m.succeed("saved %s", m.opts.ScenePath)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// frame runs one editor frame and repaints the canvas.
func (m *Model) frame() {
	in := m.input.next(m.term.Region())
	in.Captured = m.menu.open

	dl := m.editor.Frame(m.doc, in, true)
	m.term.Clear()
	m.term.Draw(dl.Commands())

	if req := m.menu.pending; req != nil {
		m.menu.pending = nil
		m.input.clear()
		col, row := m.term.PixelToCell(in.Mouse)
		cols, rows := m.term.Size()
		m.menu.show(*req, m.doc.Nodes(), m.opts.Templates, col, row, cols, rows)
	}
	m.menu.draw(m.term)
}

func (m *Model) choose(it menuItem) {
	switch it.action {
	case actionAddNode:
		t := m.opts.Templates[it.template]
		n := m.doc.AddNode(t, m.menu.anchor)
		m.editor.Select(n)
		m.succeed("added %s", t.Name)
	case actionDeleteNode:
		m.doc.BeginTransaction(true)
		m.doc.DeleteNodes([]grapheditor.NodeIndex{m.menu.node})
		m.doc.EndTransaction()
		m.editor.Select()
	case actionFit:
		m.editor.FitToContent(m.doc)
	case actionArrange:
		m.arrange()
	}
}

func (m *Model) arrange() {
	m.doc.BeginTransaction(true)
	err := m.doc.Arrange(m.opts.Layout)
	m.doc.EndTransaction()
	if err != nil {
		m.fail("arrange failed: %v", err)
		return
	}
	m.editor.FitToContent(m.doc)
}

func (m *Model) save() error {
	if m.opts.ScenePath == "" {
		return ErrNoScenePath
	}
	return document.SaveScene(m.opts.ScenePath, m.doc.Scene(m.opts.SceneName))
}

func (m *Model) fail(format string, args ...any) {
	m.message, m.messageErr = fmt.Sprintf(format, args...), true
	m.logger.Warn(m.message)
}

func (m *Model) succeed(format string, args ...any) {
	m.message, m.messageErr = fmt.Sprintf(format, args...), false
	m.logger.Info(m.message)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(m.term.String())
	s.WriteString("\n")
	s.WriteString(m.statusLine())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m Model) statusLine() string {
	nodes, links := m.doc.Len()
	parts := []string{
		fmt.Sprintf("zoom %3.0f%%", m.editor.Viewport().Zoom*100),
		fmt.Sprintf("%d selected", len(m.editor.Selected())),
		fmt.Sprintf("%d nodes, %d links", nodes, links),
	}
	if recent := m.doc.Journal().Recent(1); len(recent) == 1 {
		parts = append(parts, describeEntry(recent[0]))
	}
	line := modeStyle.Render(m.editor.Mode().String()) + statusStyle.Render(strings.Join(parts, " · "))

	if m.message != "" {
		if m.messageErr {
			line += " " + errorStyle.Render("✗ "+m.message)
		} else {
			line += " " + successStyle.Render("✓ "+m.message)
		}
	}
	return line
}

// describeEntry summarises a journal entry as its operation kinds.
func describeEntry(e *document.Entry) string {
	kinds := make([]string, len(e.Ops))
	for i, op := range e.Ops {
		kinds[i] = string(op.Kind)
	}
	return "last: " + strings.Join(kinds, "+")
}

// Run runs the editor until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal editor: %w", err)
	}
	return nil
}

