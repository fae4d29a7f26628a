package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"br.com.tucano.courier/internal/auth"
	"br.com.tucano.courier/internal/model"
)

func CreateAccount(accounts AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.CreateAccountParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		account, err := accounts.Create(c.Request().Context(), params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusCreated, account)
	}
}

func GetBalance(accounts AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		accountID := model.AccountID(c.Param("id"))
		if !CanAccess(auth.CallerID(c), accountID) {
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		}

		balance, err := accounts.Balance(c.Request().Context(), accountID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, balance)
	}
}

func UpdateAccount(accounts AccountService) echo.HandlerFunc {
	return func(c echo.Context) error {
		accountID := model.AccountID(c.Param("id"))
		if !CanAccess(auth.CallerID(c), accountID) {
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		}

		params := &model.CreateAccountParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		account, err := accounts.Update(c.Request().Context(), accountID, params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, account)
	}
}

type tokenRequest struct {
	DocumentID string `json:"documentId"`
	Secret     string `json:"secret"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func IssueToken(accounts AccountService, issuer TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &tokenRequest{}
		if err := c.Bind(params); err != nil {
			return err
		}

		account, err := accounts.Verify(c.Request().Context(), params.DocumentID, params.Secret)
		if err != nil {
			return httpError(err)
		}

		token, err := issuer.Issue(account.ID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, tokenResponse{Token: token})
	}
}
