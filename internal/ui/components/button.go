package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/ui/theme"
)

// Button is one entry of a ButtonRow.
type Button struct {
	Label   string
	OnPress func() tea.Cmd
}

// ButtonRow is a horizontal set of buttons navigated with left/right.
type ButtonRow struct {
	Buttons  []Button
	Selected int
}

// NewButtonRow creates a row with the first button selected.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update handles key events.
func (b ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(b.Buttons) == 0 {
		return b, nil
	}

	switch kmsg.String() {
	case "left", "h", "shift+tab":
		if b.Selected > 0 {
			b.Selected--
		}
	case "right", "l", "tab":
		if b.Selected < len(b.Buttons)-1 {
			b.Selected++
		}
	case "enter":
		if fn := b.Buttons[b.Selected].OnPress; fn != nil {
			return b, fn()
		}
	}
	return b, nil
}

// View renders the row.
func (b ButtonRow) View() string {
	parts := make([]string, 0, 2*len(b.Buttons))
	for i, btn := range b.Buttons {
		if i > 0 {
			parts = append(parts, "  ")
		}
		if i == b.Selected {
			parts = append(parts, theme.ButtonActive.Render("▸ "+btn.Label))
		} else {
			parts = append(parts, theme.ButtonInactive.Render(btn.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
