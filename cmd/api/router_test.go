package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	authdomain "taskbot/internal/auth/domain"
	authrepo "taskbot/internal/auth/repository"
	authUsecase "taskbot/internal/auth/usecase"
	dashboardUsecase "taskbot/internal/dashboard/usecase"
	"taskbot/internal/extract"
	taskdomain "taskbot/internal/task/domain"
	taskrepo "taskbot/internal/task/repository"
	taskUsecase "taskbot/internal/task/usecase"
	"taskbot/pkg/config"
	"taskbot/pkg/database"

	"github.com/gin-gonic/gin"
)

type testServer struct {
	engine   *gin.Engine
	settings *RuntimeSettings
	taskID   uint
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open("sqlite://:memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	if err := db.AutoMigrate(&authdomain.User{}, &taskdomain.Task{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		DashboardUser:     "admin",
		DashboardPassword: "secret",
		JWTSecret:         "test-secret",
		JWTAccessExpiry:   time.Minute,
	}
	authUc, err := authUsecase.NewAuthUsecase(cfg)
	if err != nil {
		t.Fatalf("NewAuthUsecase: %v", err)
	}

	users := authrepo.NewUserRepository(db)
	tasks := taskrepo.NewGormTaskRepository(db)
	taskUc := taskUsecase.NewTaskUsecase(tasks, users, extract.New(extract.Russian()), 0)

	anna, _ := users.GetOrCreate(1, "anna")
	task, err := taskUc.CreateFromText(anna, "Задача: отчет завтра. Срочно")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	settings := NewRuntimeSettings("ru-RU")
	h := NewHandler(authUc, taskUc, dashboardUsecase.NewDashboardUsecase(tasks, users), settings)
	return &testServer{engine: h.Engine(), settings: settings, taskID: task.ID}
}

func (s *testServer) do(method, path, body string, auth func(*http.Request)) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != nil {
		auth(req)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func basic(user, pass string) func(*http.Request) {
	return func(r *http.Request) { r.SetBasicAuth(user, pass) }
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestDashboardRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("WWW-Authenticate"), "Basic") {
		t.Errorf("Expected Basic challenge, got %q", w.Header().Get("WWW-Authenticate"))
	}

	w = s.do(http.MethodGet, "/", "", basic("admin", "wrong"))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for wrong password, got %d", w.Code)
	}

	w = s.do(http.MethodGet, "/", "", basic("admin", "secret"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Панель аналитики задач") {
		t.Error("Expected dashboard HTML")
	}
}

func TestLoginAndStats(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"nope"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}

	w = s.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"secret"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &token); err != nil || token.AccessToken == "" {
		t.Fatalf("Expected access token, got %s", w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/stats", "", bearer(token.AccessToken))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var stats struct {
		TotalTasks int64 `json:"total_tasks"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &stats)
	if stats.TotalTasks != 1 {
		t.Errorf("Expected 1 task, got %d", stats.TotalTasks)
	}

	w = s.do(http.MethodGet, "/api/stats", "", bearer("garbage"))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for bad token, got %d", w.Code)
	}
}

func TestTaskRoutes(t *testing.T) {
	s := newTestServer(t)
	auth := basic("admin", "secret")
	id := strconv.FormatUint(uint64(s.taskID), 10)

	w := s.do(http.MethodGet, "/api/tasks", "", auth)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"total":1`) {
		t.Errorf("Unexpected task list: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/tasks?status=bogus", "", auth)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad status filter, got %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/tasks/"+id, "", auth)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"priority":"high"`) {
		t.Errorf("Unexpected task: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/tasks/999", "", auth)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/tasks/abc", "", auth)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	w = s.do(http.MethodPatch, "/api/tasks/"+id+"/status", `{"status":"completed"}`, auth)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"completed"`) {
		t.Errorf("Unexpected status update: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPatch, "/api/tasks/"+id+"/status", `{"status":"archived"}`, auth)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid status, got %d", w.Code)
	}
}

func TestSpeechSettings(t *testing.T) {
	s := newTestServer(t)
	auth := basic("admin", "secret")

	w := s.do(http.MethodGet, "/api/settings/speech", "", auth)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"language":"ru-RU"`) {
		t.Errorf("Unexpected settings: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPut, "/api/settings/speech", `{"language":"en-US"}`, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if got := s.settings.SpeechLanguage(); got != "en-US" {
		t.Errorf("Expected en-US, got %s", got)
	}

	for _, body := range []string{`{}`, `{"language":"русский"}`, `{"language":"e"}`} {
		w = s.do(http.MethodPut, "/api/settings/speech", body, auth)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for %s, got %d", body, w.Code)
		}
	}

	w = s.do(http.MethodPut, "/api/settings/speech", `{"language":"cmn-Hans-CN"}`, auth)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for cmn-Hans-CN, got %d", w.Code)
	}

	w = s.do(http.MethodPut, "/api/settings/speech", `{"language":"de-DE"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without credentials, got %d", w.Code)
	}
}

func TestValidLanguageTag(t *testing.T) {
	for _, tag := range []string{"ru", "ru-RU", "en-US", "es-419", "yue-Hant", "cmn-Hans-CN", "yue-Hant-HK", "sr-Latn-RS"} {
		if !validLanguageTag(tag) {
			t.Errorf("Expected %q to be valid", tag)
		}
	}
	for _, tag := range []string{"", "r", "ru-", "ru_RU", "1u-RU", "en-1234", "русский"} {
		if validLanguageTag(tag) {
			t.Errorf("Expected %q to be invalid", tag)
		}
	}
}
