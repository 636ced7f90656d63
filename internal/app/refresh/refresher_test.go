package refresh

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"isiboard/internal/app/resource"
	"isiboard/internal/app/service"
	"isiboard/internal/upstream"

	"github.com/rs/zerolog"
)

func testResources(t *testing.T, hits *atomic.Int32) *service.Resources {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/api/admin/dashboard/stats" {
			io.WriteString(w, `{"data": {"stats": {"total_students": 240}}}`)
			return
		}
		io.WriteString(w, `{"data": []}`)
	}))
	t.Cleanup(server.Close)
	client := upstream.New(server.URL, 5*time.Second, zerolog.Nop(), nil)
	return service.NewResources(client, zerolog.Nop(), nil)
}

func TestStartOffDisables(t *testing.T) {
	var hits atomic.Int32
	r := New(testResources(t, &hits), "off", zerolog.Nop())
	if err := r.Start(); err != nil {
		t.Fatalf("Start(off) returned %v", err)
	}
	r.Stop()
	if hits.Load() != 0 {
		t.Errorf("disabled refresher still hit upstream %d times", hits.Load())
	}
}

func TestStartRejectsBadInterval(t *testing.T) {
	var hits atomic.Int32
	r := New(testResources(t, &hits), "sometimes", zerolog.Nop())
	if err := r.Start(); err == nil {
		t.Error("Start should reject an unparseable interval")
	}
}

func TestRunOnceWarmsResources(t *testing.T) {
	var hits atomic.Int32
	resources := testResources(t, &hits)
	r := New(resources, "10m", zerolog.Nop())

	r.runOnce()

	// Stats, challenges, quizzes and both leaderboards.
	if got := hits.Load(); got != 5 {
		t.Errorf("refresh hit upstream %d times, want 5", got)
	}
	if snap := resources.Stats.Snapshot(); snap.Status != resource.StatusReady {
		t.Errorf("stats status = %q, want ready", snap.Status)
	}
	if snap := resources.Challenges.Snapshot(); snap.Status != resource.StatusReady {
		t.Errorf("challenges status = %q, want ready", snap.Status)
	}
	if snap := resources.QuizBoard.Snapshot(); snap.Status != resource.StatusReady {
		t.Errorf("quiz board status = %q, want ready", snap.Status)
	}
}
