package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"br.com.tucano.courier/internal/model"
	"br.com.tucano.courier/internal/queue"
	"br.com.tucano.courier/internal/service/account"
)

type AccountService interface {
	Create(ctx context.Context, params *model.CreateAccountParams) (*model.Account, error)
	Get(ctx context.Context, id model.AccountID) (*model.Account, error)
	Update(ctx context.Context, id model.AccountID, params *model.CreateAccountParams) (*model.Account, error)
	Balance(ctx context.Context, id model.AccountID) (*account.BalanceView, error)
	Verify(ctx context.Context, documentID, secret string) (*model.Account, error)
}

type MessageService interface {
	Send(ctx context.Context, senderID model.AccountID, params *model.SendMessageParams) (*model.Message, error)
	List(ctx context.Context, senderID model.AccountID) ([]model.Message, error)
	Get(ctx context.Context, id model.MessageID, senderID model.AccountID) (*model.Message, error)
	Status(ctx context.Context, id model.MessageID, senderID model.AccountID) (model.Status, error)
}

type ConversationService interface {
	ListForOwner(ctx context.Context, ownerID model.AccountID) ([]model.Conversation, error)
	Get(ctx context.Context, id model.ConversationID) (*model.Conversation, error)
	Messages(ctx context.Context, id model.ConversationID) ([]model.Message, error)
}

type TokenIssuer interface {
	Issue(accountID model.AccountID) (string, error)
}

// httpError maps the core's sentinel errors onto boundary responses.
func httpError(err error) error {
	switch {
	case errors.Is(err, model.ErrorAccountNotFoundOrInactive):
		return echo.NewHTTPError(http.StatusUnauthorized, "no authorization to access this resource")
	case errors.Is(err, model.ErrorInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, model.ErrorInsufficientBalance),
		errors.Is(err, model.ErrorLimitExceeded):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, model.ErrorMessageNotFound),
		errors.Is(err, model.ErrorConversationNotFound),
		errors.Is(err, model.ErrorJobNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrorDocumentInUse):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return err
	}
}

type QueueReader interface {
	Stats(ctx context.Context) (queue.Stats, error)
	JobState(ctx context.Context, id model.MessageID) (queue.JobState, error)
}
