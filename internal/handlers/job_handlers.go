package handlers

import (
	"net/http"

	"stockroom/internal/jobs/background"

	"github.com/labstack/echo/v4"
)

// JobHandlers exposes the background scheduler state.
type JobHandlers struct {
	scheduler *background.JobScheduler
}

func NewJobHandlers(scheduler *background.JobScheduler) *JobHandlers {
	return &JobHandlers{scheduler: scheduler}
}

// JobStatus reports the registered background jobs.
func (h *JobHandlers) JobStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.JobStatus())
}
