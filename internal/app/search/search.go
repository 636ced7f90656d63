package search

import (
	"sort"
	"strings"
	"time"

	"isiboard/internal/domain/model"
)

// Match reports whether q is a case-insensitive substring of any field. An
// empty query matches everything.
func Match(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Filter keeps the items matching q over the strings produced by fields,
// preserving input order. An empty query returns the input unchanged.
func Filter[T any](items []T, q string, fields func(T) []string) []T {
	if strings.TrimSpace(q) == "" {
		return items
	}
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if Match(q, fields(item)...) {
			matched = append(matched, item)
		}
	}
	return matched
}

func Challenges(items []model.Challenge, q string) []model.Challenge {
	return Filter(items, q, func(c model.Challenge) []string {
		return []string{c.Title, c.ShortDescription}
	})
}

func Quizzes(items []model.Quiz, q string) []model.Quiz {
	return Filter(items, q, func(qz model.Quiz) []string {
		return []string{qz.Title, qz.Description}
	})
}

func Files(items []model.SavedFile, q string) []model.SavedFile {
	return Filter(items, q, func(f model.SavedFile) []string {
		return []string{f.Name}
	})
}

func ChallengesByStatus(items []model.Challenge, status model.PublishStatus) []model.Challenge {
	kept := make([]model.Challenge, 0, len(items))
	for _, item := range items {
		if item.Status == status {
			kept = append(kept, item)
		}
	}
	return kept
}

func QuizzesByStatus(items []model.Quiz, status model.PublishStatus) []model.Quiz {
	kept := make([]model.Quiz, 0, len(items))
	for _, item := range items {
		if item.Status == status {
			kept = append(kept, item)
		}
	}
	return kept
}

// ascending resolves the effective sort direction: created_at defaults to
// newest first, everything else to ascending.
func ascending(orderBy, orderDirection string) bool {
	switch orderDirection {
	case "asc":
		return true
	case "desc":
		return false
	default:
		return orderBy != "created_at"
	}
}

// SortChallenges orders a copy of items by order_by/order_direction. Empty
// arguments default to newest first.
func SortChallenges(items []model.Challenge, orderBy, orderDirection string) []model.Challenge {
	if orderBy == "" {
		orderBy = "created_at"
	}
	sorted := make([]model.Challenge, len(items))
	copy(sorted, items)
	less := func(a, b model.Challenge) bool {
		switch orderBy {
		case "title":
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case "reward_points":
			return a.RewardPoints < b.RewardPoints
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	asc := ascending(orderBy, orderDirection)
	sort.SliceStable(sorted, func(i, j int) bool {
		if asc {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}

// SortQuizzes orders a copy of items; defaults match SortChallenges.
func SortQuizzes(items []model.Quiz, orderBy, orderDirection string) []model.Quiz {
	if orderBy == "" {
		orderBy = "created_at"
	}
	sorted := make([]model.Quiz, len(items))
	copy(sorted, items)
	less := func(a, b model.Quiz) bool {
		switch orderBy {
		case "title":
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case "due_date":
			return timeBefore(a.DueDate, b.DueDate)
		case "total_points":
			return a.TotalPoints < b.TotalPoints
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	asc := ascending(orderBy, orderDirection)
	sort.SliceStable(sorted, func(i, j int) bool {
		if asc {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}

// timeBefore orders nil due dates last.
func timeBefore(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}
