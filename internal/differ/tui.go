// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss/v2"
	"golang.org/x/term"
)

// Page writes text to w. When w is a terminal and text does not fit on the
// screen, it is shown in a scrollable pager instead.
func Page(w io.Writer, title string, text string) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := fmt.Fprint(w, text)
		return err
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	_, height, err := term.GetSize(int(f.Fd()))
	if err != nil || len(lines) < height {
		_, err := fmt.Fprint(w, text)
		return err
	}

	p := tea.NewProgram(newPager(title, lines, height), tea.WithOutput(f), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var titleStyle = lipgloss.NewStyle().Bold(true)

type pager struct {
	title  string
	lines  []string
	offset int
	height int
}

func newPager(title string, lines []string, height int) pager {
	return pager{title: title, lines: lines, height: height}
}

func (m pager) Init() tea.Cmd { return nil }

func (m pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.offset = m.clamp(m.offset)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.offset = m.clamp(m.offset - 1)
		case "down", "j", "enter":
			m.offset = m.clamp(m.offset + 1)
		case "pgup", "b":
			m.offset = m.clamp(m.offset - m.rows())
		case "pgdown", " ", "f":
			m.offset = m.clamp(m.offset + m.rows())
		case "home", "g":
			m.offset = 0
		case "end", "G":
			m.offset = m.clamp(len(m.lines))
		}
	}
	return m, nil
}

func (m pager) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")

	end := min(m.offset+m.rows(), len(m.lines))
	for _, line := range m.lines[m.offset:end] {
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "lines %d-%d of %d  UP/DOWN: scroll, SPACE/B: page, Q/ESCAPE: quit",
		m.offset+1, end, len(m.lines))
	return b.String()
}

// rows is the number of content lines between the title and the footer.
func (m pager) rows() int {
	return max(m.height-2, 1)
}

func (m pager) clamp(offset int) int {
	last := max(len(m.lines)-m.rows(), 0)
	return min(max(offset, 0), last)
}
