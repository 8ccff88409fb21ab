package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/screen"
)

func sendTicks(w *WelcomeScreen, n int) (screen.Screen, tea.Cmd) {
	var s screen.Screen = w
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		s, cmd = s.Update(tickMsg(time.Now()))
	}
	return s, cmd
}

func TestPhaseTransitions(t *testing.T) {
	w := New()

	view := w.View(100, 30)
	if strings.Contains(view, tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != bannerAt {
		t.Errorf("expected elapsed %v, got %v", bannerAt, w.elapsed)
	}

	sendTicks(w, 10)
	view = w.View(100, 30)
	if !strings.Contains(view, tagline) {
		t.Error("tagline should be visible after the intro")
	}
	if !strings.Contains(view, "Initialize Profile") {
		t.Error("buttons should be visible after the intro")
	}
}

func TestKeypressDuringIntroSkips(t *testing.T) {
	w := New()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("keypress during the intro should not navigate")
	}
	if w.elapsed != totalDur {
		t.Errorf("expected intro skipped to %v, got %v", totalDur, w.elapsed)
	}
}

func TestButtonsNavigate(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyPressMsg
		want string
	}{
		{"onboarding", nil, "onboarding"},
		{"login", []tea.KeyPressMsg{{Code: tea.KeyRight}}, "login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			sendTicks(w, 20)
			for _, k := range tt.keys {
				w.Update(k)
			}
			_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("expected a navigation command")
			}
			msg, ok := cmd().(nav.GoMsg)
			if !ok {
				t.Fatalf("expected nav.GoMsg, got %T", cmd())
			}
			if msg.To.Name() != tt.want || msg.Mode != nav.Push {
				t.Errorf("navigated to %s (mode %v), want push %s", msg.To.Name(), msg.Mode, tt.want)
			}
		})
	}
}

func TestNoAutoTransition(t *testing.T) {
	w := New()
	_, cmd := sendTicks(w, 45)
	if cmd == nil {
		t.Fatal("ticks should keep the sparkle animating")
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestTitleEmpty(t *testing.T) {
	if New().Title() != "" {
		t.Error("expected empty title")
	}
}
