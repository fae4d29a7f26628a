package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"br.com.tucano.courier/internal/auth"
	"br.com.tucano.courier/internal/model"
)

func SendMessage(messages MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.SendMessageParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		if params.Content == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "content must not be empty")
		}
		if params.Priority == "" {
			params.Priority = model.PriorityNormal
		}
		if params.Priority != model.PriorityNormal && params.Priority != model.PriorityUrgent {
			return echo.NewHTTPError(http.StatusBadRequest, "priority must be NORMAL or URGENT")
		}

		message, err := messages.Send(c.Request().Context(), auth.CallerID(c), params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusCreated, message)
	}
}

func ListMessages(messages MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := messages.List(c.Request().Context(), auth.CallerID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

func GetMessage(messages MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := model.MessageID(c.Param("id"))
		message, err := messages.Get(c.Request().Context(), id, auth.CallerID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, message)
	}
}

type statusResponse struct {
	Status model.Status `json:"status"`
}

func GetMessageStatus(messages MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := model.MessageID(c.Param("id"))
		status, err := messages.Status(c.Request().Context(), id, auth.CallerID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, statusResponse{Status: status})
	}
}
