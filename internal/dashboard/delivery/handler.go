package delivery

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"taskbot/internal/dashboard/domain"
	"taskbot/internal/dashboard/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// DashboardHandler serves the analytics page and its JSON twin
type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

type pageData struct {
	*domain.Summary
	PriorityChart plotlyFigure
	TimelineChart plotlyFigure
}

// Page renders the dashboard
// GET /
func (h *DashboardHandler) Page(c *gin.Context) {
	summary, err := h.dashboardUsecase.Summary()
	if err != nil {
		log.Printf("[Dashboard] Failed to build summary: %v", err)
		c.String(http.StatusInternalServerError, "Не удалось загрузить статистику")
		return
	}

	c.Render(http.StatusOK, render.HTML{
		Template: dashboardTemplate,
		Name:     "dashboard.html",
		Data: pageData{
			Summary:       summary,
			PriorityChart: priorityChart(summary),
			TimelineChart: timelineChart(summary),
		},
	})
}

// Stats returns the dashboard numbers as JSON
// GET /api/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	summary, err := h.dashboardUsecase.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
