package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"isiboard/internal/app/service"
	"isiboard/internal/app/view"
	"isiboard/internal/common/security"
	"isiboard/internal/domain/model"
	"isiboard/internal/platform/config"
	"isiboard/internal/upstream"

	"github.com/rs/zerolog"
)

// stubUpstream serves the handful of IsiPython endpoints the routed services
// touch.
func stubUpstream() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/quizzes", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"quizzes": [
			{"id": "qz-1", "title": "Loops", "status": "published", "time_limit_minutes": 20, "total_points": 20, "total_questions": 5}
		]}}`)
	})
	mux.HandleFunc("/api/admin/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"stats": {"total_students": 240, "total_challenges": 12}}}`)
	})
	mux.HandleFunc("/api/admin/challenges/ch-1", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"challenge": {"id": "ch-1", "title": "Sum of Squares", "status": "published"}}}`)
	})
	mux.HandleFunc("/api/admin/challenges", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"challenges": []}}`)
	})
	return mux
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	zerolog.SetGlobalLevel(zerolog.Disabled)
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()

	server := httptest.NewServer(stubUpstream())
	t.Cleanup(server.Close)

	client := upstream.New(server.URL, 5*time.Second, zerolog.Nop(), nil)
	resources := service.NewResources(client, zerolog.Nop(), nil)
	controller := view.NewController(view.NewMemoryStore(), zerolog.Nop(), nil)

	authService := service.NewAuthService(nil)
	challengeService := service.NewChallengeService(resources, client, controller)
	quizService := service.NewQuizService(resources, nil)
	leaderboardService := service.NewLeaderboardService(resources)
	filesService := service.NewFilesService(resources, nil)
	dashboardService := service.NewDashboardService(resources, controller, nil, challengeService, quizService, leaderboardService, filesService)

	return NewRouter(authService, dashboardService, challengeService, quizService, leaderboardService, filesService, controller)
}

func doRequest(router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rr := doRequest(router, http.MethodGet, "/health", "", "")
	if rr.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want 200", rr.Code)
	}
}

func TestDashboardRequiresToken(t *testing.T) {
	router := newTestRouter(t)
	rr := doRequest(router, http.MethodGet, "/api/v1/quizzes", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("no token = %d, want 401", rr.Code)
	}
}

func TestStaffRoleIsForbidden(t *testing.T) {
	router := newTestRouter(t)
	token, err := security.GenerateToken("staff-1", model.RoleStaff)
	if err != nil {
		t.Fatalf("GenerateToken returned %v", err)
	}
	rr := doRequest(router, http.MethodGet, "/api/v1/quizzes", token, "")
	if rr.Code != http.StatusForbidden {
		t.Errorf("staff token = %d, want 403", rr.Code)
	}
}

func TestAdminListsQuizzes(t *testing.T) {
	router := newTestRouter(t)
	token, err := security.GenerateToken("admin-1", model.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken returned %v", err)
	}
	rr := doRequest(router, http.MethodGet, "/api/v1/quizzes", token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("admin token = %d, want 200, body %s", rr.Code, rr.Body.String())
	}

	var component service.QuizListComponent
	if err := json.Unmarshal(rr.Body.Bytes(), &component); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if component.Total != 1 || component.Rows[0].ID != "qz-1" {
		t.Errorf("component = %+v, want the stubbed quiz", component)
	}
	if component.Rows[0].Difficulty != model.DifficultyEasy {
		t.Errorf("derived difficulty = %q, want easy", component.Rows[0].Difficulty)
	}
}

func TestViewSwitchAndResolve(t *testing.T) {
	router := newTestRouter(t)
	token, err := security.GenerateToken("admin-1", model.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken returned %v", err)
	}

	// A detail view without its target is rejected.
	rr := doRequest(router, http.MethodPost, "/api/v1/dashboard/view", token,
		`{"view": "challenge-details"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("switch without challenge_id = %d, want 400", rr.Code)
	}

	rr = doRequest(router, http.MethodPost, "/api/v1/dashboard/view", token,
		`{"view": "challenge-details", "challenge_id": "ch-1"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("switch = %d, want 200, body %s", rr.Code, rr.Body.String())
	}

	// Resolving the dashboard lands on the persisted view.
	rr = doRequest(router, http.MethodGet, "/api/v1/dashboard", token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("resolve = %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	var payload struct {
		View      string `json:"view"`
		LastRoute string `json:"last_route"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if payload.View != "challenge-details" {
		t.Errorf("resolved view = %q, want challenge-details", payload.View)
	}
	if payload.LastRoute != "/challenge-details/ch-1" {
		t.Errorf("last_route = %q, want /challenge-details/ch-1", payload.LastRoute)
	}

	// Another admin still resolves to the default home view.
	otherToken, err := security.GenerateToken("admin-2", model.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken returned %v", err)
	}
	rr = doRequest(router, http.MethodGet, "/api/v1/dashboard", otherToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("resolve for admin-2 = %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if payload.View != "home" {
		t.Errorf("admin-2 view = %q, want home", payload.View)
	}
}

func TestUnknownViewRejected(t *testing.T) {
	router := newTestRouter(t)
	token, err := security.GenerateToken("admin-1", model.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken returned %v", err)
	}
	rr := doRequest(router, http.MethodPost, "/api/v1/dashboard/view", token,
		`{"view": "backdoor"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown view = %d, want 400", rr.Code)
	}
}
