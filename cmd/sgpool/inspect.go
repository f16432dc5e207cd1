package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/slotpool"
	"github.com/wippyai/slotpool/resource"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Interactive pool inspector",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("inspect needs an interactive terminal")
			}

			// Logs would corrupt the TUI; keep them at warn and above.
			if opts.logLevel == "" {
				opts.logLevel = "warn"
			}
			_, reg, log, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			defer reg.Close()

			_, err = tea.NewProgram(newInspectModel(reg), tea.WithAltScreen()).Run()
			return err
		},
	}
}

type inspectModel struct {
	reg     *resource.Registry
	maker   *maker
	err     error
	message string
	handles []slotpool.Handle
	lookup  textinput.Model
	kind    int
	cursor  int
	typing  bool
}

func newInspectModel(reg *resource.Registry) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "0x00010001"
	ti.CharLimit = 10
	ti.Width = 12

	m := &inspectModel{
		reg:    reg,
		maker:  newMaker(reg),
		lookup: ti,
	}
	m.refresh()
	return m
}

func (m *inspectModel) currentKind() resource.Kind {
	return resource.Kinds[m.kind]
}

func (m *inspectModel) refresh() {
	m.handles = m.reg.Handles(m.currentKind())
	if m.cursor >= len(m.handles) {
		m.cursor = len(m.handles) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.typing {
		return m.updateLookup(key)
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.kind = (m.kind + 1) % len(resource.Kinds)
		m.cursor = 0
	case "shift+tab", "left", "h":
		m.kind = (m.kind + len(resource.Kinds) - 1) % len(resource.Kinds)
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.handles)-1 {
			m.cursor++
		}
	case "a":
		h, err := m.maker.make(m.currentKind())
		m.setResult(fmt.Sprintf("allocated %v", h), err)
	case "r", "d":
		if len(m.handles) == 0 {
			break
		}
		h := m.handles[m.cursor]
		err := m.reg.Destroy(m.currentKind(), h)
		m.setResult(fmt.Sprintf("released %v", h), err)
	case "/":
		m.typing = true
		m.lookup.SetValue("")
		m.lookup.Focus()
		return m, textinput.Blink
	}
	m.refresh()
	return m, nil
}

func (m *inspectModel) updateLookup(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.typing = false
		m.lookup.Blur()
		return m, nil
	case tea.KeyEnter:
		m.typing = false
		m.lookup.Blur()
		m.runLookup(m.lookup.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.lookup, cmd = m.lookup.Update(key)
	return m, cmd
}

func (m *inspectModel) runLookup(input string) {
	h, err := parseHandle(input)
	if err != nil {
		m.setResult("", err)
		return
	}
	k := m.currentKind()
	if desc, ok := m.reg.Describe(k, h); ok {
		m.setResult(fmt.Sprintf("%v [%s] %s", h, m.reg.StateOf(k, h), desc), nil)
		return
	}
	m.setResult(fmt.Sprintf("%v: no live %s (stale, freed or out of range)", h, k), nil)
}

func (m *inspectModel) setResult(msg string, err error) {
	m.message = msg
	m.err = err
}

// parseHandle accepts hex (0x prefix) or decimal handle values.
func parseHandle(s string) (slotpool.Handle, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid handle %q: %w", s, err)
	}
	return slotpool.Handle(v), nil
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sgpool inspect"))
	b.WriteString("\n\n")

	stats := m.reg.Stats()
	for i, k := range resource.Kinds {
		label := fmt.Sprintf("%s %d/%d", k, stats[i].Live, stats[i].Capacity-1)
		if i == m.kind {
			b.WriteString(activeTabStyle.Render(label))
		} else {
			b.WriteString(tabStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	if len(m.handles) == 0 {
		b.WriteString(helpStyle.Render("  (no live resources)"))
		b.WriteString("\n")
	}
	for i, h := range m.handles {
		desc, _ := m.reg.Describe(m.currentKind(), h)
		line := fmt.Sprintf("%#010x  slot=%-5d gen=%-5d %-5s %s",
			uint32(h), h.Index(), h.Generation(), m.reg.StateOf(m.currentKind(), h), desc)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.typing {
		b.WriteString("lookup: ")
		b.WriteString(m.lookup.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.message != "" {
		b.WriteString(resultStyle.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/←→ kind • ↑↓ select • a allocate • r release • / lookup • q quit"))
	return b.String()
}
