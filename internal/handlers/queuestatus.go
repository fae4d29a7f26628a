package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"br.com.tucano.courier/internal/model"
	"br.com.tucano.courier/internal/queue"
)

type queueStatusResponse struct {
	Metrics queue.Stats `json:"metrics"`
}

func QueueStatus(q QueueReader) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := q.Stats(c.Request().Context())
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, queueStatusResponse{Metrics: stats})
	}
}

type jobStateResponse struct {
	State queue.JobState `json:"state"`
}

func GetJobState(q QueueReader) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := model.MessageID(c.Param("id"))
		state, err := q.JobState(c.Request().Context(), id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, jobStateResponse{State: state})
	}
}
