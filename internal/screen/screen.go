package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/academy/internal/cache"
	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/platform/logger"
	"github.com/abhisek/academy/internal/quiz"
	"github.com/abhisek/academy/internal/session"
	"github.com/abhisek/academy/internal/tutor"
	"github.com/abhisek/academy/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with a focused text field. While
// it reports true, the app does not treat printable keys as shortcuts.
type InputCapturer interface {
	CapturingInput() bool
}

// Deps are the services screens are built with.
type Deps struct {
	Catalog *catalog.Catalog
	Session *session.Session
	Tutor   *tutor.Client
	// Cache holds the news digest; nil disables caching.
	Cache cache.Cache
	Log   *logger.Logger
	// Shuffler returns the question shuffler for a new exam.
	Shuffler func() quiz.Shuffler
	Now      func() time.Time
}

// Clock returns d.Now, defaulting to time.Now.
func (d Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Logger returns d.Log, defaulting to a no-op logger.
func (d Deps) Logger() *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Nop()
}
