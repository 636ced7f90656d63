package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"isiboard/internal/app/view"
	"isiboard/internal/common"
	"isiboard/internal/domain/model"
	"isiboard/internal/upstream"

	"github.com/rs/zerolog"
)

// editorFixture wires a ChallengeService against a stub upstream and an
// in-memory view store.
func editorFixture(t *testing.T, handler http.Handler) (*ChallengeService, *view.Controller) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := upstream.New(server.URL, 5*time.Second, zerolog.Nop(), nil)
	resources := NewResources(client, zerolog.Nop(), nil)
	controller := view.NewController(view.NewMemoryStore(), zerolog.Nop(), nil)
	return NewChallengeService(resources, client, controller), controller
}

func noUpstream(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL.Path)
	})
}

func TestEditorStartsWithOneExampleCase(t *testing.T) {
	ctx := context.Background()
	svc, _ := editorFixture(t, noUpstream(t))

	component, err := svc.Editor(ctx, "admin-1")
	if err != nil {
		t.Fatalf("Editor returned %v", err)
	}
	if !component.IsNew {
		t.Error("fresh draft should report is_new")
	}
	if component.Draft.Difficulty != model.DifficultyEasy {
		t.Errorf("default difficulty = %q, want easy", component.Draft.Difficulty)
	}
	if len(component.Draft.TestCases) != 1 {
		t.Fatalf("fresh draft has %d test cases, want 1", len(component.Draft.TestCases))
	}
	tc := component.Draft.TestCases[0]
	if !strings.HasPrefix(tc.Key, "tc-") {
		t.Errorf("test case key = %q, want tc- prefix", tc.Key)
	}
	if !tc.IsExample || tc.PointsWeight != 1 {
		t.Errorf("fresh case = %+v, want example with weight 1", tc)
	}
}

func TestEditorTestCaseLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := editorFixture(t, noUpstream(t))

	component, err := svc.Editor(ctx, "admin-1")
	if err != nil {
		t.Fatalf("Editor returned %v", err)
	}
	firstKey := component.Draft.TestCases[0].Key

	component, err = svc.AddTestCase(ctx, "admin-1", TestCaseRequest{
		InputData:      []string{"5"},
		ExpectedOutput: "25",
	})
	if err != nil {
		t.Fatalf("AddTestCase returned %v", err)
	}
	if len(component.Draft.TestCases) != 2 {
		t.Fatalf("after add: %d cases, want 2", len(component.Draft.TestCases))
	}
	secondKey := component.Draft.TestCases[1].Key
	if secondKey == firstKey {
		t.Error("test case keys must be distinct")
	}
	if component.Draft.TestCases[1].PointsWeight != 1 {
		t.Errorf("zero weight = %v, want defaulted to 1", component.Draft.TestCases[1].PointsWeight)
	}

	// Updating keeps the key stable.
	component, err = svc.UpdateTestCase(ctx, "admin-1", secondKey, TestCaseRequest{
		InputData:      []string{"6"},
		ExpectedOutput: "36",
		IsHidden:       true,
		PointsWeight:   2,
	})
	if err != nil {
		t.Fatalf("UpdateTestCase returned %v", err)
	}
	updated := component.Draft.TestCases[1]
	if updated.Key != secondKey {
		t.Errorf("key after update = %q, want %q", updated.Key, secondKey)
	}
	if updated.ExpectedOutput != "36" || !updated.IsHidden || updated.PointsWeight != 2 {
		t.Errorf("updated case = %+v", updated)
	}

	if _, err := svc.UpdateTestCase(ctx, "admin-1", "tc-missing", TestCaseRequest{}); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("updating a missing key: err = %v, want ErrNotFound", err)
	}

	component, err = svc.RemoveTestCase(ctx, "admin-1", firstKey)
	if err != nil {
		t.Fatalf("RemoveTestCase returned %v", err)
	}
	if len(component.Draft.TestCases) != 1 {
		t.Fatalf("after remove: %d cases, want 1", len(component.Draft.TestCases))
	}

	// The last row cannot be removed.
	if _, err := svc.RemoveTestCase(ctx, "admin-1", secondKey); !errors.Is(err, common.ErrValidation) {
		t.Errorf("removing the last case: err = %v, want ErrValidation", err)
	}
}

func TestUpdateEditorPartialFieldsAndTags(t *testing.T) {
	ctx := context.Background()
	svc, _ := editorFixture(t, noUpstream(t))

	title := "While Loops"
	component, err := svc.UpdateEditor(ctx, "admin-1", UpdateEditorRequest{Title: &title})
	if err != nil {
		t.Fatalf("UpdateEditor returned %v", err)
	}
	if component.Draft.Title != "While Loops" {
		t.Errorf("title = %q", component.Draft.Title)
	}
	if component.Draft.Difficulty != model.DifficultyEasy {
		t.Errorf("untouched difficulty = %q, want easy default kept", component.Draft.Difficulty)
	}

	tags := []string{"Linked Lists", "linked-lists", "", "Maths!"}
	component, err = svc.UpdateEditor(ctx, "admin-1", UpdateEditorRequest{Tags: &tags})
	if err != nil {
		t.Fatalf("UpdateEditor returned %v", err)
	}
	got := component.Draft.Tags
	if len(got) != 2 || got[0] != "linked-lists" || got[1] != "maths" {
		t.Errorf("normalized tags = %v, want [linked-lists maths]", got)
	}
	if component.Draft.Title != "While Loops" {
		t.Error("tag update clobbered the title")
	}

	bad := model.Difficulty("impossible")
	if _, err := svc.UpdateEditor(ctx, "admin-1", UpdateEditorRequest{Difficulty: &bad}); !errors.Is(err, common.ErrValidation) {
		t.Errorf("unknown difficulty: err = %v, want ErrValidation", err)
	}
}

func TestSaveValidatesPublishAndClearsDraft(t *testing.T) {
	ctx := context.Background()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/challenges", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"challenge": {"id": "ch-9", "title": "While Loops", "status": "published"}}}`)
	})
	mux.HandleFunc("GET /api/admin/challenges", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"challenges": []}}`)
	})
	svc, controller := editorFixture(t, mux)

	if _, err := svc.Save(ctx, "admin-1", "archive"); !errors.Is(err, common.ErrValidation) {
		t.Errorf("unknown action: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Save(ctx, "admin-1", model.ActionPublish); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("publish with no draft open: err = %v, want ErrNotFound", err)
	}

	// An empty draft cannot be published; the error names the missing fields.
	if _, err := svc.Editor(ctx, "admin-1"); err != nil {
		t.Fatalf("Editor returned %v", err)
	}
	_, err := svc.Save(ctx, "admin-1", model.ActionPublish)
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("publish empty draft: err = %v, want ErrValidation", err)
	}
	for _, field := range []string{"title", "short_description", "problem_statement"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q should name missing field %s", err.Error(), field)
		}
	}

	// Filling the required fields makes publish go through and clear the
	// draft.
	title, short, statement := "While Loops", "Looping basics", "Write a loop."
	if _, err := svc.UpdateEditor(ctx, "admin-1", UpdateEditorRequest{
		Title:            &title,
		ShortDescription: &short,
		ProblemStatement: &statement,
	}); err != nil {
		t.Fatalf("UpdateEditor returned %v", err)
	}
	result, err := svc.Save(ctx, "admin-1", model.ActionPublish)
	if err != nil {
		t.Fatalf("Save returned %v", err)
	}
	if result.Challenge.ID != "ch-9" || result.Action != model.ActionPublish {
		t.Errorf("result = %+v", result)
	}

	state, _ := controller.Current(ctx, "admin-1")
	if state.Editor != nil {
		t.Error("draft not cleared after successful save")
	}
}

func TestLoadIntoEditorCopiesChallenge(t *testing.T) {
	ctx := context.Background()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/challenges/ch-5", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"challenge": {
			"id": "ch-5",
			"title": "Word Count",
			"short_description": "strings",
			"problem_statement": "Count the words.",
			"difficulty_level": "hard",
			"tags": ["Strings", "strings"],
			"test_cases": [
				{"id": "real-1", "input_data": ["a b"], "expected_output": "2"},
				{"id": "real-2", "input_data": ["a"], "expected_output": "1", "is_hidden": true}
			]
		}}}`)
	})
	svc, _ := editorFixture(t, mux)

	component, err := svc.LoadIntoEditor(ctx, "admin-1", "ch-5")
	if err != nil {
		t.Fatalf("LoadIntoEditor returned %v", err)
	}
	draft := component.Draft
	if component.IsNew {
		t.Error("a draft of an existing challenge should not report is_new")
	}
	if draft.ChallengeID != "ch-5" || draft.Title != "Word Count" {
		t.Errorf("draft = %+v", draft)
	}
	if draft.Difficulty != model.DifficultyHard {
		t.Errorf("difficulty = %q, want hard", draft.Difficulty)
	}
	if len(draft.Tags) != 1 || draft.Tags[0] != "strings" {
		t.Errorf("tags = %v, want deduplicated [strings]", draft.Tags)
	}
	if len(draft.TestCases) != 2 {
		t.Fatalf("test cases = %d, want 2", len(draft.TestCases))
	}
	// Loaded cases get fresh ephemeral keys, not the server IDs.
	for _, tc := range draft.TestCases {
		if !strings.HasPrefix(tc.Key, "tc-") {
			t.Errorf("loaded case key = %q, want tc- prefix", tc.Key)
		}
	}
	if !draft.TestCases[1].IsHidden {
		t.Error("hidden flag lost on load")
	}

	if _, err := svc.LoadIntoEditor(ctx, "admin-1", ""); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("empty id: err = %v, want ErrBadRequest", err)
	}
}
