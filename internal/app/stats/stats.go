package stats

import (
	"isiboard/internal/domain/model"
)

// ClassifyQuiz buckets a quiz into a difficulty from its time limit, total
// points and question count. Boundary values are inclusive: 30 minutes at 2
// points/minute and 15 points/question is still Easy, 45 minutes (or 4 ppm,
// or 25 ppq) is already Hard. A zero or negative time limit or question count
// classifies as Medium. Challenges carry a stored difficulty and are never
// classified.
func ClassifyQuiz(timeLimitMinutes, totalPoints, totalQuestions int) model.Difficulty {
	if timeLimitMinutes <= 0 || totalQuestions <= 0 {
		return model.DifficultyMedium
	}
	pointsPerMinute := float64(totalPoints) / float64(timeLimitMinutes)
	pointsPerQuestion := float64(totalPoints) / float64(totalQuestions)

	if timeLimitMinutes <= 30 && pointsPerMinute <= 2 && pointsPerQuestion <= 15 {
		return model.DifficultyEasy
	}
	if timeLimitMinutes >= 45 || pointsPerMinute >= 4 || pointsPerQuestion >= 25 {
		return model.DifficultyHard
	}
	return model.DifficultyMedium
}

type RateBand struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Band maps a pass-rate percentage to its qualitative tier. Boundaries are
// inclusive downward: 80 is Excellent, 60 is Good.
func Band(rate float64) RateBand {
	switch {
	case rate >= 80:
		return RateBand{Label: "Excellent", Color: "emerald"}
	case rate >= 60:
		return RateBand{Label: "Good", Color: "orange"}
	default:
		return RateBand{Label: "Needs Improvement", Color: "red"}
	}
}

// Aggregate is the unweighted roll-up of a statistics slice.
type Aggregate struct {
	AverageScore    float64 `json:"average_score"`
	AveragePassRate float64 `json:"average_pass_rate"`
	TotalAttempts   int     `json:"total_attempts"`
	TotalCompleted  int     `json:"total_completed"`
}

// Summarize computes arithmetic means and sums over the given statistics.
// An empty slice yields zeros, never NaN.
func Summarize(items []model.Statistics) Aggregate {
	if len(items) == 0 {
		return Aggregate{}
	}
	var agg Aggregate
	for _, item := range items {
		agg.AverageScore += item.AverageScore
		agg.AveragePassRate += item.PassRate
		agg.TotalAttempts += item.Attempts
		agg.TotalCompleted += item.UsersCompleted
	}
	agg.AverageScore /= float64(len(items))
	agg.AveragePassRate /= float64(len(items))
	return agg
}

// DifficultyColor is the badge color for a difficulty, the same trio the
// pass-rate bands use.
func DifficultyColor(d model.Difficulty) string {
	switch d {
	case model.DifficultyEasy:
		return "emerald"
	case model.DifficultyHard:
		return "red"
	default:
		return "orange"
	}
}

var tagPalette = []string{"blue", "purple", "emerald", "orange", "pink", "cyan"}

// TagColor cycles the fixed palette by tag position, so a tag's color is
// stable for as long as its position is.
func TagColor(index int) string {
	if index < 0 {
		index = -index
	}
	return tagPalette[index%len(tagPalette)]
}
