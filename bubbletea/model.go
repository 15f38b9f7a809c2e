package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gknews/newspro"
	painter "github.com/gknews/newspro/lipgloss"
	"github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the document viewer.
type Model struct {
	// Viewport is the scrollable document area. Exported for test access.
	Viewport viewport.Model
	// Spinner animates while the document loads. Exported for test access.
	Spinner spinner.Model

	load      LoadFunc
	formatter newspro.Formatter
	painter   *painter.Painter
	styles    Styles
	title     string

	doc     newspro.Document
	ctx     context.Context
	cancel  context.CancelFunc
	loading bool
	err     error
	ready   bool
	width   int
}

// New creates a viewer that shows the markdown returned by load, formatted
// with formatter and painted with theme.
func New(load LoadFunc, formatter newspro.Formatter, theme newspro.Theme) Model {
	styles := NewStyles(theme)
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.Spinner),
		),
		load:      load,
		formatter: formatter,
		painter:   painter.New(theme),
		styles:    styles,
		ctx:       ctx,
		cancel:    cancel,
		loading:   true,
	}
}

// WithTitle returns a copy of m showing title in the status line.
func (m Model) WithTitle(title string) Model {
	m.title = title
	return m
}

// Loading returns whether the LoadFunc is still running.
func (m Model) Loading() bool { return m.loading }

// Err returns the load error, if any.
func (m Model) Err() error { return m.err }

// Document returns the formatted document, empty until loading finishes.
func (m Model) Document() newspro.Document { return m.doc }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, startLoad(m.ctx, m.load))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		m.loading = false
		m.cancel()
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				m.err = errors.New("cancelled")
			} else {
				m.err = msg.Err
			}
			return m, nil
		}
		m.doc = m.formatter.Format(msg.Text)
		if m.ready {
			m.Viewport.SetContent(m.renderContent())
			m.Viewport.GotoTop()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	if m.loading {
		b.WriteString(m.Spinner.View())
		b.WriteString(" Loading...")
		b.WriteString(strings.Repeat("\n", max(m.Viewport.Height-1, 0)))
	} else {
		b.WriteString(m.Viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	statusHeight := 1
	borderHeight := 1 // newline between viewport and status
	vpHeight := msg.Height - statusHeight - borderHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.width = msg.Width

	// Repaint from the stored document; formatting is width independent.
	if !m.loading {
		m.Viewport.SetContent(m.renderContent())
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		if m.loading {
			m.cancel()
			return m, nil
		}
		return m, tea.Quit

	case msg.Type == tea.KeyRunes && msg.String() == "q":
		m.cancel()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) renderContent() string {
	return m.painter.Paint(m.doc, m.Viewport.Width)
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(m.truncate(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.loading {
		return m.styles.Muted.Render(m.truncate("Ctrl+C to cancel, q to quit"))
	}
	hint := fmt.Sprintf("%3.0f%%  q to quit", m.Viewport.ScrollPercent()*100)
	if m.title == "" {
		return m.styles.Muted.Render(m.truncate(hint))
	}
	room := m.width - runewidth.StringWidth(hint) - 2
	if room < 1 {
		return m.styles.Title.Render(m.truncate(m.title))
	}
	title := runewidth.Truncate(m.title, room, "…")
	return m.styles.Title.Render(title) + "  " + m.styles.Muted.Render(hint)
}

func (m Model) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return runewidth.Truncate(s, m.width, "…")
}

// startLoad runs load off the UI goroutine and reports the result.
func startLoad(ctx context.Context, load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		text, err := load(ctx)
		return LoadedMsg{Text: text, Err: err}
	}
}
