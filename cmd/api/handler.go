package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	authUsecase "taskbot/internal/auth/usecase"
	dashboardDelivery "taskbot/internal/dashboard/delivery"
	dashboardUsecase "taskbot/internal/dashboard/usecase"
	taskDelivery "taskbot/internal/task/delivery"
	taskUsecase "taskbot/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase      authUsecase.AuthUsecase
	dashboardHandler *dashboardDelivery.DashboardHandler
	taskHandler      *taskDelivery.TaskHandler
	settings         *RuntimeSettings
}

func NewHandler(authUc authUsecase.AuthUsecase, taskUc taskUsecase.TaskUsecase, dashboardUc dashboardUsecase.DashboardUsecase, settings *RuntimeSettings) *Handler {
	return &Handler{
		authUsecase:      authUc,
		dashboardHandler: dashboardDelivery.NewDashboardHandler(dashboardUc),
		taskHandler:      taskDelivery.NewTaskHandler(taskUc),
		settings:         settings,
	}
}

// Engine builds the gin engine with middleware and routes.
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.dashboardHandler, h.taskHandler, h.settings)
	return r
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[API] Dashboard listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[API] Shutting down dashboard server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
