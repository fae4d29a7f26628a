// Package message orchestrates the send path: debit, conversation update,
// persist, enqueue. The returned message is whatever the caller sees; delivery
// itself happens later on the worker pool.
package message

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"br.com.tucano.courier/internal/model"
	"br.com.tucano.courier/internal/queue"
)

type Ledger interface {
	Debit(ctx context.Context, accountID model.AccountID, amount model.Money) (*model.Account, error)
}

type Conversations interface {
	Upsert(ctx context.Context, senderID, recipientID model.AccountID, content string) (*model.Conversation, error)
}

type Store interface {
	CreateMessage(message *model.Message) error
	MessageByID(id model.MessageID, ownerID model.AccountID) (*model.Message, error)
	MessageStatus(id model.MessageID, ownerID model.AccountID) (model.Status, error)
	MessagesBySender(senderID model.AccountID) ([]model.Message, error)
}

type service struct {
	ledger        Ledger
	conversations Conversations
	store         Store
	queue         queue.Queue
	logger        *log.Logger
}

func New(ledger Ledger, conversations Conversations, store Store, q queue.Queue) *service {
	return &service{
		ledger:        ledger,
		conversations: conversations,
		store:         store,
		queue:         q,
		logger:        log.New("message"),
	}
}

// Send charges the sender, updates their conversation aggregate, persists the
// message as QUEUED and hands it to the dispatcher. A failed debit aborts
// before anything is written or queued.
func (s *service) Send(ctx context.Context, senderID model.AccountID, params *model.SendMessageParams) (*model.Message, error) {
	cost := model.CostFor(params.Priority)

	if _, err := s.ledger.Debit(ctx, senderID, cost); err != nil {
		return nil, fmt.Errorf("debiting account: %w", err)
	}

	conversation, err := s.conversations.Upsert(ctx, senderID, params.RecipientID, params.Content)
	if err != nil {
		return nil, fmt.Errorf("updating conversation: %w", err)
	}

	now := time.Now().UTC()
	message := &model.Message{
		ID:             model.MessageID(model.CreateID()),
		CreatedAt:      now,
		ConversationID: conversation.ID,
		SenderID:       senderID,
		RecipientID:    params.RecipientID,
		Content:        params.Content,
		Priority:       params.Priority,
		Cost:           cost,
		Status:         model.StatusQueued,
		Timestamp:      now,
	}

	if err := s.store.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("persisting message: %w", err)
	}

	if err := s.queue.Enqueue(ctx, queue.NewJob(message)); err != nil {
		return nil, fmt.Errorf("enqueueing message: %w", err)
	}

	s.logger.Infof("message %s queued for delivery (priority %s)", message.ID, message.Priority)
	return message, nil
}

func (s *service) List(ctx context.Context, senderID model.AccountID) ([]model.Message, error) {
	messages, err := s.store.MessagesBySender(senderID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}

func (s *service) Get(ctx context.Context, id model.MessageID, senderID model.AccountID) (*model.Message, error) {
	message, err := s.store.MessageByID(id, senderID)
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (s *service) Status(ctx context.Context, id model.MessageID, senderID model.AccountID) (model.Status, error) {
	status, err := s.store.MessageStatus(id, senderID)
	if err != nil {
		return "", err
	}
	return status, nil
}
