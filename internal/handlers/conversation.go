package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"br.com.tucano.courier/internal/auth"
	"br.com.tucano.courier/internal/model"
)

func ListConversations(conversations ConversationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := conversations.ListForOwner(c.Request().Context(), auth.CallerID(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

func GetConversation(conversations ConversationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := model.ConversationID(c.Param("id"))
		conversation, err := conversations.Get(c.Request().Context(), id)
		if err != nil {
			return httpError(err)
		}
		if !CanAccess(auth.CallerID(c), conversation.OwnerAccountID) {
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		}
		return c.JSON(http.StatusOK, conversation)
	}
}

func GetConversationMessages(conversations ConversationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := model.ConversationID(c.Param("id"))
		conversation, err := conversations.Get(c.Request().Context(), id)
		if err != nil {
			return httpError(err)
		}
		if !CanAccess(auth.CallerID(c), conversation.OwnerAccountID) {
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		}

		messages, err := conversations.Messages(c.Request().Context(), id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, messages)
	}
}
