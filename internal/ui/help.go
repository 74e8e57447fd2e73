package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// renderHelpContent renders the help shown in the pager
func renderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	row := func(k, desc string) string {
		return fmt.Sprintf("  %-10s %s\n", keyStyle.Render(k), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("autosuggest Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Suggestions"))
	help.WriteString("\n")
	help.WriteString(row("↑/↓", "Move the selection (↓ also reopens the list)"))
	help.WriteString(row("enter", "Accept the selected suggestion"))
	help.WriteString(row("esc", "Dismiss the list"))
	help.WriteString(row("click", "Accept the clicked suggestion"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Page"))
	help.WriteString("\n")
	help.WriteString(row("wheel", "Scroll the page"))
	help.WriteString(row("pgup/pgdn", "Scroll the page"))
	help.WriteString(row("tab", "Toggle input focus"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(row("ctrl+o", "Browse the suggestion corpus"))
	help.WriteString(row("f1", "Show this help"))
	help.WriteString(row("ctrl+c", "Quit"))

	return help.String()
}

// RunPager pages r with ov. It takes over the terminal until the user quits.
func RunPager(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showInPager hands the terminal to ov while content is paged
func showInPager(program *tea.Program, content string) error {
	if program == nil {
		return fmt.Errorf("program not set")
	}

	if err := program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = program.RestoreTerminal()
	}()

	return RunPager(strings.NewReader(content))
}

// pagerCmd returns a command that shows content using ov
func (m *Model) pagerCmd(content string) tea.Cmd {
	program := m.program
	return func() tea.Msg {
		return pagerMsg{err: showInPager(program, content)}
	}
}
