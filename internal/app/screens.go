package app

import (
	"github.com/abhisek/academy/internal/nav"
	"github.com/abhisek/academy/internal/screen"
	"github.com/abhisek/academy/internal/screens/admin"
	"github.com/abhisek/academy/internal/screens/chat"
	"github.com/abhisek/academy/internal/screens/courses"
	"github.com/abhisek/academy/internal/screens/curriculum"
	"github.com/abhisek/academy/internal/screens/dashboard"
	"github.com/abhisek/academy/internal/screens/exam"
	"github.com/abhisek/academy/internal/screens/login"
	"github.com/abhisek/academy/internal/screens/onboarding"
	"github.com/abhisek/academy/internal/screens/player"
	"github.com/abhisek/academy/internal/screens/profile"
	"github.com/abhisek/academy/internal/screens/welcome"
)

// screenFor builds the screen for a resolved destination.
func screenFor(deps screen.Deps, d nav.Destination) screen.Screen {
	switch d := d.(type) {
	case nav.Welcome:
		return welcome.New()
	case nav.Login:
		return login.New(deps)
	case nav.Onboarding:
		return onboarding.New(deps)
	case nav.Catalog:
		return courses.New(deps, d)
	case nav.Curriculum:
		return curriculum.New(deps, d)
	case nav.CoursePlayer:
		s, err := player.New(deps, d)
		if err != nil {
			deps.Logger().Warn("open course player", "topic", d.Topic().ID, "error", err)
			return curriculum.New(deps, nav.ToCurriculum(d.Curriculum()))
		}
		return s
	case nav.FinalExam:
		return exam.New(deps, d)
	case nav.Tutor:
		return chat.New(deps, d)
	case nav.Profile:
		return profile.New(deps)
	case nav.Admin:
		return admin.New(deps)
	default:
		return dashboard.New(deps)
	}
}
