package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. Once Submitted, the cursor
// freezes; with Reveal set the correct and chosen options are coloured.
type MultiChoice struct {
	Options      []string
	Selected     int
	Submitted    bool
	Reveal       bool
	CorrectIndex int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, CorrectIndex: -1}
}

// Update handles keyboard navigation. Enter marks the choice submitted;
// the caller reads Selected.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
	default:
		// Letter shortcuts select directly.
		if len(key) == 1 {
			if i := int(strings.ToLower(key)[0] - 'a'); i >= 0 && i < len(m.Options) {
				m.Selected = i
			}
		}
	}
	return m, nil
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+rune(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Submitted && m.Reveal && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && m.Reveal && i == m.Selected:
			style = theme.Incorrect
		case m.Submitted && i == m.Selected:
			style = theme.Selected
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
