package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"isiboard/internal/common"
	"isiboard/internal/domain/model"
	"isiboard/internal/upstream"

	"github.com/rs/zerolog"
)

func quizFixture(t *testing.T, handler http.Handler) *QuizService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := upstream.New(server.URL, 5*time.Second, zerolog.Nop(), nil)
	resources := NewResources(client, zerolog.Nop(), nil)
	return NewQuizService(resources, nil)
}

const quizListBody = `{"data": {"quizzes": [
	{"id": "qz-1", "title": "Loops", "status": "published",
	 "time_limit_minutes": 20, "total_points": 20, "total_questions": 5,
	 "statistics": {"pass_rate": 85, "attempts": 12}},
	{"id": "qz-2", "title": "Recursion", "status": "published",
	 "time_limit_minutes": 60, "total_points": 120, "total_questions": 6},
	{"id": "qz-3", "title": "Draft quiz", "status": "draft"}
]}}`

func TestQuizListDerivesDifficulty(t *testing.T) {
	ctx := context.Background()
	svc := quizFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, quizListBody)
	}))

	component := svc.List(ctx, QuizListQuery{}, false)
	if component.Total != 3 {
		t.Fatalf("total = %d, want 3", component.Total)
	}

	byID := make(map[string]QuizRow, len(component.Rows))
	for _, row := range component.Rows {
		byID[row.ID] = row
	}
	if got := byID["qz-1"].Difficulty; got != model.DifficultyEasy {
		t.Errorf("qz-1 difficulty = %q, want easy", got)
	}
	if got := byID["qz-2"].Difficulty; got != model.DifficultyHard {
		t.Errorf("qz-2 difficulty = %q, want hard", got)
	}
	// No time limit or questions: classified medium, not easy.
	if got := byID["qz-3"].Difficulty; got != model.DifficultyMedium {
		t.Errorf("qz-3 difficulty = %q, want medium", got)
	}

	if byID["qz-1"].Band == nil || byID["qz-1"].Band.Label != "Excellent" {
		t.Errorf("qz-1 band = %+v, want Excellent", byID["qz-1"].Band)
	}
	if byID["qz-2"].Band != nil {
		t.Error("qz-2 has no statistics, band should be absent")
	}
}

func TestQuizListStatusFilter(t *testing.T) {
	ctx := context.Background()
	svc := quizFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, quizListBody)
	}))

	component := svc.List(ctx, QuizListQuery{Status: model.StatusDraft}, false)
	if component.Total != 1 || component.Rows[0].ID != "qz-3" {
		t.Errorf("draft filter rows = %+v, want only qz-3", component.Rows)
	}
}

func TestQuizDetails(t *testing.T) {
	ctx := context.Background()
	svc := quizFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, quizListBody)
	}))

	component, err := svc.Details(ctx, "qz-2")
	if err != nil {
		t.Fatalf("Details returned %v", err)
	}
	if component.Quiz.ID != "qz-2" || component.Difficulty != model.DifficultyHard {
		t.Errorf("details = %+v", component)
	}

	if _, err := svc.Details(ctx, "qz-404"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("missing quiz: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Details(ctx, ""); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("empty id: err = %v, want ErrBadRequest", err)
	}
}

func TestQuizDeleteRemovesRowOptimistically(t *testing.T) {
	ctx := context.Background()
	var listCalls, deleteCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/quizzes", func(w http.ResponseWriter, r *http.Request) {
		listCalls++
		io.WriteString(w, quizListBody)
	})
	mux.HandleFunc("DELETE /api/admin/quizzes/qz-1", func(w http.ResponseWriter, r *http.Request) {
		deleteCalls++
		io.WriteString(w, `{"message": "deleted"}`)
	})
	svc := quizFixture(t, mux)

	svc.List(ctx, QuizListQuery{}, false)
	if err := svc.Delete(ctx, "qz-1"); err != nil {
		t.Fatalf("Delete returned %v", err)
	}

	component := svc.List(ctx, QuizListQuery{}, false)
	if component.Total != 2 {
		t.Errorf("total after delete = %d, want 2", component.Total)
	}
	for _, row := range component.Rows {
		if row.ID == "qz-1" {
			t.Error("deleted quiz still listed")
		}
	}
	if listCalls != 1 {
		t.Errorf("list fetched %d times, want 1 (no confirming re-fetch)", listCalls)
	}
	if deleteCalls != 1 {
		t.Errorf("delete called %d times, want 1", deleteCalls)
	}
}

func TestQuizDeleteFailureKeepsListAndReportsTransientError(t *testing.T) {
	ctx := context.Background()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/quizzes", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, quizListBody)
	})
	mux.HandleFunc("DELETE /api/admin/quizzes/qz-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"message": "quiz has submissions"}`)
	})
	svc := quizFixture(t, mux)

	svc.List(ctx, QuizListQuery{}, false)
	err := svc.Delete(ctx, "qz-1")
	if err == nil {
		t.Fatal("Delete should have failed")
	}
	if !errors.Is(err, common.ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream in the chain", err)
	}

	component := svc.List(ctx, QuizListQuery{}, false)
	if component.Total != 3 {
		t.Errorf("total after failed delete = %d, want all 3 kept", component.Total)
	}
	if component.DeleteError != "quiz has submissions" {
		t.Errorf("delete_error = %q, want the upstream message", component.DeleteError)
	}
}
