package service

import (
	"context"

	"isiboard/internal/app/resource"
	"isiboard/internal/domain/model"
)

type LeaderboardService struct {
	resources *Resources
}

func NewLeaderboardService(resources *Resources) *LeaderboardService {
	return &LeaderboardService{resources: resources}
}

// PodiumSlot is one of the three top spots. Slots are filled by
// server-assigned rank, regardless of how long the board is.
type PodiumSlot struct {
	Place string                  `json:"place"`
	Title string                  `json:"title"`
	Entry *model.LeaderboardEntry `json:"entry,omitempty"`
}

type BoardComponent struct {
	Podium  []PodiumSlot             `json:"podium"`
	Entries []model.LeaderboardEntry `json:"entries"`
	Meta    ResourceMeta             `json:"meta"`
}

// CombinedBoardsComponent joins both boards, fetched concurrently. Failed is
// the all-or-nothing flag of the pair fetch; each board still carries its own
// data and error.
type CombinedBoardsComponent struct {
	Challenges BoardComponent `json:"challenges"`
	Quizzes    BoardComponent `json:"quizzes"`
	Failed     bool           `json:"failed"`
}

func (s *LeaderboardService) Challenges(ctx context.Context, force bool) BoardComponent {
	if force {
		s.resources.ChallengeBoard.Refresh(ctx)
	} else {
		s.resources.ChallengeBoard.Ensure(ctx)
	}
	return boardComponent(s.resources.ChallengeBoard.Snapshot())
}

func (s *LeaderboardService) Quizzes(ctx context.Context, force bool) BoardComponent {
	if force {
		s.resources.QuizBoard.Refresh(ctx)
	} else {
		s.resources.QuizBoard.Ensure(ctx)
	}
	return boardComponent(s.resources.QuizBoard.Snapshot())
}

func (s *LeaderboardService) Combined(ctx context.Context, force bool) CombinedBoardsComponent {
	var err error
	if force {
		err = resource.RefreshPair(ctx, s.resources.ChallengeBoard, s.resources.QuizBoard)
	} else {
		err = resource.EnsurePair(ctx, s.resources.ChallengeBoard, s.resources.QuizBoard)
	}
	return CombinedBoardsComponent{
		Challenges: boardComponent(s.resources.ChallengeBoard.Snapshot()),
		Quizzes:    boardComponent(s.resources.QuizBoard.Snapshot()),
		Failed:     err != nil,
	}
}

func boardComponent(snap resource.Snapshot[[]model.LeaderboardEntry]) BoardComponent {
	return BoardComponent{
		Podium:  buildPodium(snap.Data),
		Entries: snap.Data,
		Meta:    metaOf(snap),
	}
}

// buildPodium slots ranks 1-3 into Champion, Silver and Bronze. Empty slots
// stay in place so the podium always renders three positions.
func buildPodium(entries []model.LeaderboardEntry) []PodiumSlot {
	slots := []PodiumSlot{
		{Place: "1st", Title: "Champion"},
		{Place: "2nd", Title: "Silver"},
		{Place: "3rd", Title: "Bronze"},
	}
	for i := range entries {
		rank := entries[i].Rank
		if rank >= 1 && rank <= 3 && slots[rank-1].Entry == nil {
			entry := entries[i]
			slots[rank-1].Entry = &entry
		}
	}
	return slots
}
