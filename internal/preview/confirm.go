package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Decision is the answer to "write the synced manifest?"
type Decision int

const (
	Cancel Decision = iota
	Write
	ShowDiff
)

func (d Decision) String() string {
	switch d {
	case Write:
		return "write"
	case ShowDiff:
		return "show diff"
	default:
		return "cancel"
	}
}

// Confirmer decides whether a pending manifest change gets written.
type Confirmer interface {
	Confirm(path, diff string) (Decision, error)
}

// AutoConfirm always writes. It is the non-interactive default.
type AutoConfirm struct{}

func (AutoConfirm) Confirm(path, diff string) (Decision, error) {
	return Write, nil
}

// Interactive shows the diff and asks with a keyboard-driven menu.
// Diffs longer than PagerLines open in a full-screen pager.
type Interactive struct {
	Out        io.Writer
	PagerLines int
}

// NewConfirmer picks AutoConfirm, or Interactive when review is set.
func NewConfirmer(review bool, out io.Writer) Confirmer {
	if !review {
		return AutoConfirm{}
	}
	return &Interactive{Out: out, PagerLines: 20}
}

func (c *Interactive) Confirm(path, diff string) (Decision, error) {
	if err := c.show(path, diff); err != nil {
		return Cancel, err
	}

	for {
		p := tea.NewProgram(newMenuModel(path, Count(diff)))
		final, err := p.Run()
		if err != nil {
			return Cancel, fmt.Errorf("failed to show menu: %w", err)
		}

		m := final.(menuModel)
		if m.selected == nil {
			return Cancel, nil
		}
		if *m.selected != ShowDiff {
			return *m.selected, nil
		}
		if err := c.show(path, diff); err != nil {
			return Cancel, err
		}
	}
}

func (c *Interactive) show(path, diff string) error {
	rendered := Render(diff, nil)
	if strings.Count(rendered, "\n") <= c.PagerLines {
		_, err := io.WriteString(c.Out, rendered)
		return err
	}

	p := tea.NewProgram(newPagerModel(path, rendered), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to show diff: %w", err)
	}
	return nil
}

var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type menuChoice struct {
	label    string
	decision Decision
}

type menuModel struct {
	path     string
	stats    Stats
	choices  []menuChoice
	cursor   int
	selected *Decision
}

func newMenuModel(path string, stats Stats) menuModel {
	return menuModel{
		path:  path,
		stats: stats,
		choices: []menuChoice{
			{"Write changes", Write},
			{"Show diff again", ShowDiff},
			{"Cancel (leave file untouched)", Cancel},
		},
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter":
		d := m.choices[m.cursor].decision
		m.selected = &d
		return m, tea.Quit
	}
	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("✏️  Pending changes to ") + m.path + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("    %d lines added, %d removed", m.stats.Added, m.stats.Removed)) + "\n\n")
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [q] Cancel") + "\n\n")

	for i, c := range m.choices {
		if i == m.cursor {
			b.WriteString("    " + selectedStyle.Render("> "+c.label) + "\n")
		} else {
			b.WriteString("      " + c.label + "\n")
		}
	}
	return b.String()
}

type pagerModel struct {
	path     string
	content  string
	viewport viewport.Model
	ready    bool
}

func newPagerModel(path, content string) pagerModel {
	return pagerModel{path: path, content: content}
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc", "enter":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		const chrome = 2 // title and footer
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return "Loading diff..."
	}
	title := borderStyle.Render("─ Diff: " + m.path + " ")
	footer := borderStyle.Render(fmt.Sprintf(" [↑/↓/PgUp/PgDn] Scroll  [q] Back to menu  %3.f%% ", m.viewport.ScrollPercent()*100))
	return title + "\n" + m.viewport.View() + "\n" + footer
}
