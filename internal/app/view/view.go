package view

import (
	"fmt"

	"isiboard/internal/common"
)

// View is the closed set of dashboard views. Navigation is typed end to end:
// anything that does not parse is rejected before it reaches the store.
type View string

const (
	Home                  View = "home"
	Analytics             View = "analytics"
	Challenges            View = "challenges"
	ChallengeDrafts       View = "challenge-drafts"
	ChallengeDetails      View = "challenge-details"
	ChallengeCreate       View = "challenge-create"
	ChallengeEdit         View = "challenge-edit"
	Quizzes               View = "quizzes"
	QuizDrafts            View = "quiz-drafts"
	QuizDetails           View = "quiz-details"
	Leaderboards          View = "leaderboards"
	ChallengesLeaderboard View = "challenges-leaderboard"
	QuizzesLeaderboard    View = "quizzes-leaderboard"
	StudentFiles          View = "student-files"
	Settings              View = "settings"
)

// All lists every view, in sidebar order.
func All() []View {
	return []View{
		Home,
		Analytics,
		Challenges,
		ChallengeDrafts,
		ChallengeDetails,
		ChallengeCreate,
		ChallengeEdit,
		Quizzes,
		QuizDrafts,
		QuizDetails,
		Leaderboards,
		ChallengesLeaderboard,
		QuizzesLeaderboard,
		StudentFiles,
		Settings,
	}
}

func Parse(raw string) (View, error) {
	for _, v := range All() {
		if v == View(raw) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown view %q", common.ErrValidation, raw)
}

// NeedsChallengeID reports whether the view is addressed to one challenge.
func (v View) NeedsChallengeID() bool {
	return v == ChallengeDetails || v == ChallengeEdit
}

func (v View) NeedsQuizID() bool {
	return v == QuizDetails
}

func (v View) NeedsStudentID() bool {
	return v == StudentFiles
}
