package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"isiboard/internal/common"
	"isiboard/internal/upstream"

	"github.com/rs/zerolog"
)

func filesFixture(t *testing.T, handler http.Handler) *FilesService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := upstream.New(server.URL, 5*time.Second, zerolog.Nop(), nil)
	resources := NewResources(client, zerolog.Nop(), nil)
	return NewFilesService(resources, nil)
}

func TestFilesListIsPerStudent(t *testing.T) {
	ctx := context.Background()
	svc := filesFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/saved/u-1":
			io.WriteString(w, `{"data": {"files": [
				{"id": "f-1", "file_name": "loops.isi"},
				{"id": "f-2", "file_name": "notes.isi"}
			]}}`)
		case "/api/saved/u-2":
			io.WriteString(w, `{"data": {"files": [{"id": "f-9", "name": "solo.isi"}]}}`)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))

	component, err := svc.List(ctx, "u-1", "", false)
	if err != nil {
		t.Fatalf("List returned %v", err)
	}
	if component.StudentID != "u-1" || component.Total != 2 {
		t.Errorf("component = %+v, want 2 files for u-1", component)
	}

	// Switching students swaps the slot; u-1's files never leak into u-2's
	// view. The name falls back to the alternate key.
	component, err = svc.List(ctx, "u-2", "", false)
	if err != nil {
		t.Fatalf("List returned %v", err)
	}
	if component.Total != 1 || component.Rows[0].Name != "solo.isi" {
		t.Errorf("u-2 component = %+v, want only solo.isi", component)
	}

	// Search filters by name, case-insensitive.
	component, err = svc.List(ctx, "u-2", "SOLO", false)
	if err != nil {
		t.Fatalf("List returned %v", err)
	}
	if component.Total != 1 {
		t.Errorf("search total = %d, want 1", component.Total)
	}

	if _, err := svc.List(ctx, "", "", false); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("empty student id: err = %v, want ErrBadRequest", err)
	}
}

func TestFilesDeleteSendsOwnerAndRemovesRow(t *testing.T) {
	ctx := context.Background()
	var deleteBody map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/saved/u-1", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"files": [
			{"id": "f-1", "file_name": "loops.isi"},
			{"id": "f-2", "file_name": "notes.isi"}
		]}}`)
	})
	mux.HandleFunc("DELETE /api/saved/delete/f-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&deleteBody)
		io.WriteString(w, `{"message": "deleted"}`)
	})
	svc := filesFixture(t, mux)

	if err := svc.Delete(ctx, "u-1", "f-1"); err != nil {
		t.Fatalf("Delete returned %v", err)
	}
	if deleteBody["user_id"] != "u-1" {
		t.Errorf("delete body = %v, want the owning student id", deleteBody)
	}

	component, err := svc.List(ctx, "u-1", "", false)
	if err != nil {
		t.Fatalf("List returned %v", err)
	}
	if component.Total != 1 || component.Rows[0].ID != "f-2" {
		t.Errorf("rows after delete = %+v, want only f-2", component.Rows)
	}
}
