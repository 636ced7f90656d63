package stats

import (
	"testing"

	"isiboard/internal/domain/model"
)

func TestClassifyQuiz(t *testing.T) {
	tests := []struct {
		name           string
		timeLimit      int
		totalPoints    int
		totalQuestions int
		want           model.Difficulty
	}{
		{"short low-stakes quiz", 20, 20, 5, model.DifficultyEasy},
		{"all easy boundaries inclusive", 30, 60, 4, model.DifficultyEasy},
		{"time limit at hard threshold", 45, 50, 10, model.DifficultyHard},
		{"points per minute at hard threshold", 25, 100, 20, model.DifficultyHard},
		{"points per question at hard threshold", 40, 100, 4, model.DifficultyHard},
		{"between the bands", 40, 100, 10, model.DifficultyMedium},
		{"just over an easy boundary", 31, 31, 5, model.DifficultyMedium},
		{"zero time limit", 0, 100, 10, model.DifficultyMedium},
		{"zero questions", 30, 100, 0, model.DifficultyMedium},
		{"negative time limit", -5, 100, 10, model.DifficultyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyQuiz(tt.timeLimit, tt.totalPoints, tt.totalQuestions)
			if got != tt.want {
				t.Errorf("ClassifyQuiz(%d, %d, %d) = %q, want %q",
					tt.timeLimit, tt.totalPoints, tt.totalQuestions, got, tt.want)
			}
		})
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		rate      float64
		wantLabel string
		wantColor string
	}{
		{100, "Excellent", "emerald"},
		{80, "Excellent", "emerald"},
		{79.9, "Good", "orange"},
		{60, "Good", "orange"},
		{59.9, "Needs Improvement", "red"},
		{0, "Needs Improvement", "red"},
	}

	for _, tt := range tests {
		got := Band(tt.rate)
		if got.Label != tt.wantLabel || got.Color != tt.wantColor {
			t.Errorf("Band(%v) = {%q %q}, want {%q %q}",
				tt.rate, got.Label, got.Color, tt.wantLabel, tt.wantColor)
		}
	}
}

func TestSummarize(t *testing.T) {
	items := []model.Statistics{
		{PassRate: 80, AverageScore: 90, Attempts: 10, UsersCompleted: 5},
		{PassRate: 40, AverageScore: 50, Attempts: 30, UsersCompleted: 7},
	}

	agg := Summarize(items)
	if agg.AveragePassRate != 60 {
		t.Errorf("AveragePassRate = %v, want 60", agg.AveragePassRate)
	}
	if agg.AverageScore != 70 {
		t.Errorf("AverageScore = %v, want 70", agg.AverageScore)
	}
	if agg.TotalAttempts != 40 {
		t.Errorf("TotalAttempts = %v, want 40", agg.TotalAttempts)
	}
	if agg.TotalCompleted != 12 {
		t.Errorf("TotalCompleted = %v, want 12", agg.TotalCompleted)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	agg := Summarize(nil)
	if agg != (Aggregate{}) {
		t.Errorf("Summarize(nil) = %+v, want zero aggregate", agg)
	}
}

func TestDifficultyColor(t *testing.T) {
	if got := DifficultyColor(model.DifficultyEasy); got != "emerald" {
		t.Errorf("DifficultyColor(easy) = %q, want emerald", got)
	}
	if got := DifficultyColor(model.DifficultyMedium); got != "orange" {
		t.Errorf("DifficultyColor(medium) = %q, want orange", got)
	}
	if got := DifficultyColor(model.DifficultyHard); got != "red" {
		t.Errorf("DifficultyColor(hard) = %q, want red", got)
	}
}

func TestTagColorCycles(t *testing.T) {
	if got := TagColor(0); got != "blue" {
		t.Errorf("TagColor(0) = %q, want blue", got)
	}
	if got := TagColor(5); got != "cyan" {
		t.Errorf("TagColor(5) = %q, want cyan", got)
	}
	if got := TagColor(6); got != "blue" {
		t.Errorf("TagColor(6) = %q, want blue", got)
	}
	if got := TagColor(-1); got != TagColor(1) {
		t.Errorf("TagColor(-1) = %q, want %q", got, TagColor(1))
	}
}
