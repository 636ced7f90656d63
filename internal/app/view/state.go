package view

import (
	"time"

	"isiboard/internal/domain/model"
)

// Nav is the navigation payload carried with a view switch: at most one of a
// challenge, quiz, or student target.
type Nav struct {
	ChallengeID string `json:"challenge_id,omitempty"`
	QuizID      string `json:"quiz_id,omitempty"`
	StudentID   string `json:"student_id,omitempty"`
}

// State is one admin's persisted dashboard state: the current view, its
// navigation payload, the last route for display, and the editor draft if one
// is open. It is serialized as typed JSON at the store boundary and survives
// restarts.
type State struct {
	CurrentView View                  `json:"current_view"`
	Nav         Nav                   `json:"nav"`
	LastRoute   string                `json:"last_route"`
	Editor      *model.ChallengeDraft `json:"editor,omitempty"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// DefaultState is what a session starts from before any view switch has been
// persisted.
func DefaultState() State {
	return State{CurrentView: Home, LastRoute: routeFor(Home, Nav{})}
}

// routeFor renders the display route for a view and its payload.
func routeFor(v View, nav Nav) string {
	route := "/" + string(v)
	switch {
	case nav.ChallengeID != "" && v.NeedsChallengeID():
		route += "/" + nav.ChallengeID
	case nav.QuizID != "" && v.NeedsQuizID():
		route += "/" + nav.QuizID
	case nav.StudentID != "" && v.NeedsStudentID():
		route += "/" + nav.StudentID
	}
	return route
}
