package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskbot/internal/dashboard/domain"
	taskdomain "taskbot/internal/task/domain"

	"github.com/gin-gonic/gin"
)

type mockDashboardUsecase struct {
	SummaryFunc func() (*domain.Summary, error)
}

func (m *mockDashboardUsecase) Summary() (*domain.Summary, error) {
	return m.SummaryFunc()
}

func sampleSummary() *domain.Summary {
	return &domain.Summary{
		TotalTasks:     4,
		CompletedTasks: 1,
		ActiveUsers:    2,
		CompletionRate: 25,
		ByPriority: []taskdomain.PriorityCount{
			{Priority: taskdomain.PriorityHigh, Count: 3},
			{Priority: taskdomain.PriorityLow, Count: 1},
		},
		Timeline: []taskdomain.DailyCount{{Date: "2026-03-10", Count: 4}},
		Users: []taskdomain.UserStats{
			{Username: "@anna", Created: 4},
			{Username: "<script>", Assigned: 1},
		},
	}
}

func setupRouter(uc *mockDashboardUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDashboardHandler(uc)
	r.GET("/", h.Page)
	r.GET("/api/stats", h.Stats)
	return r
}

func TestPage(t *testing.T) {
	r := setupRouter(&mockDashboardUsecase{SummaryFunc: func() (*domain.Summary, error) {
		return sampleSummary(), nil
	}})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`id="total-tasks">4<`,
		`id="completion-rate">25.0%<`,
		"@anna",
		"&lt;script&gt;",
		`"type":"pie"`,
		`"2026-03-10"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
}

func TestPageError(t *testing.T) {
	r := setupRouter(&mockDashboardUsecase{SummaryFunc: func() (*domain.Summary, error) {
		return nil, errors.New("db down")
	}})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestStats(t *testing.T) {
	r := setupRouter(&mockDashboardUsecase{SummaryFunc: func() (*domain.Summary, error) {
		return sampleSummary(), nil
	}})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/stats", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var got domain.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalTasks != 4 || len(got.Users) != 2 || got.ByPriority[0].Count != 3 {
		t.Errorf("Unexpected summary: %+v", got)
	}
}
