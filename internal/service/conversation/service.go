// Package conversation maintains the per-sender conversation summary.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"br.com.tucano.courier/internal/model"
)

type Store interface {
	Conversation(id model.ConversationID) (*model.Conversation, error)
	ConversationByOwner(ownerID model.AccountID) (*model.Conversation, error)
	ConversationsByOwner(ownerID model.AccountID) ([]model.Conversation, error)
	CreateConversation(conversation *model.Conversation) error
	SaveConversation(conversation *model.Conversation) error
	MessagesByConversation(conversationID model.ConversationID) ([]model.Message, error)
}

type service struct {
	store  Store
	logger *log.Logger
}

func New(store Store) *service {
	return &service{
		store:  store,
		logger: log.New("conversation"),
	}
}

// Upsert finds the sender's aggregate, creating it lazily, then records the
// latest message on it. The lookup keys on the sender alone: a sender keeps a
// single aggregate regardless of recipient. That mirrors the billing system
// this replaces and is pinned by a test, so a per-recipient split has to be an
// agreed change, not a drive-by one.
func (s *service) Upsert(ctx context.Context, senderID, recipientID model.AccountID, content string) (*model.Conversation, error) {
	conversation, err := s.store.ConversationByOwner(senderID)
	if err != nil {
		if !errors.Is(err, model.ErrorConversationNotFound) {
			return nil, fmt.Errorf("looking up conversation: %w", err)
		}

		s.logger.Infof("creating conversation for account %s", senderID)
		conversation = &model.Conversation{
			ID:              model.ConversationID(model.CreateID()),
			CreatedAt:       time.Now().UTC(),
			OwnerAccountID:  senderID,
			CounterpartyID:  recipientID,
			LastMessageTime: time.Now().UTC(),
			UnreadCount:     0,
		}
		if err := s.store.CreateConversation(conversation); err != nil {
			return nil, fmt.Errorf("creating conversation: %w", err)
		}
	}

	conversation.LastMessageContent = content
	conversation.LastMessageTime = time.Now().UTC()
	conversation.UnreadCount++

	if err := s.store.SaveConversation(conversation); err != nil {
		return nil, fmt.Errorf("saving conversation: %w", err)
	}

	return conversation, nil
}

func (s *service) ListForOwner(ctx context.Context, ownerID model.AccountID) ([]model.Conversation, error) {
	conversations, err := s.store.ConversationsByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	return conversations, nil
}

func (s *service) Get(ctx context.Context, id model.ConversationID) (*model.Conversation, error) {
	conversation, err := s.store.Conversation(id)
	if err != nil {
		if errors.Is(err, model.ErrorConversationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetching conversation: %w", err)
	}
	return conversation, nil
}

func (s *service) Messages(ctx context.Context, id model.ConversationID) ([]model.Message, error) {
	if _, err := s.store.Conversation(id); err != nil {
		if errors.Is(err, model.ErrorConversationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("checking conversation: %w", err)
	}

	messages, err := s.store.MessagesByConversation(id)
	if err != nil {
		return nil, fmt.Errorf("listing conversation messages: %w", err)
	}
	return messages, nil
}
