package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"br.com.tucano.courier/internal/model"
)

type mockStore struct {
	byOwner  map[model.AccountID]*model.Conversation
	byID     map[model.ConversationID]*model.Conversation
	messages map[model.ConversationID][]model.Message
	saves    int
}

func newMockStore() *mockStore {
	return &mockStore{
		byOwner:  make(map[model.AccountID]*model.Conversation),
		byID:     make(map[model.ConversationID]*model.Conversation),
		messages: make(map[model.ConversationID][]model.Message),
	}
}

func (m *mockStore) Conversation(id model.ConversationID) (*model.Conversation, error) {
	conversation, ok := m.byID[id]
	if !ok {
		return nil, model.ErrorConversationNotFound
	}
	return conversation, nil
}

func (m *mockStore) ConversationByOwner(ownerID model.AccountID) (*model.Conversation, error) {
	conversation, ok := m.byOwner[ownerID]
	if !ok {
		return nil, model.ErrorConversationNotFound
	}
	return conversation, nil
}

func (m *mockStore) ConversationsByOwner(ownerID model.AccountID) ([]model.Conversation, error) {
	conversation, ok := m.byOwner[ownerID]
	if !ok {
		return []model.Conversation{}, nil
	}
	return []model.Conversation{*conversation}, nil
}

func (m *mockStore) CreateConversation(conversation *model.Conversation) error {
	m.byOwner[conversation.OwnerAccountID] = conversation
	m.byID[conversation.ID] = conversation
	return nil
}

func (m *mockStore) SaveConversation(conversation *model.Conversation) error {
	m.saves++
	return nil
}

func (m *mockStore) MessagesByConversation(conversationID model.ConversationID) ([]model.Message, error) {
	return m.messages[conversationID], nil
}

func TestUpsert(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	t.Run("first message creates the aggregate", func(t *testing.T) {
		store := newMockStore()
		conversation, err := New(store).Upsert(ctx, "sender-1", "recipient-1", "oi")
		assert.Nil(err)
		assert.NotEmpty(conversation.ID)
		assert.Equal(model.AccountID("sender-1"), conversation.OwnerAccountID)
		assert.Equal(model.AccountID("recipient-1"), conversation.CounterpartyID)
		assert.Equal("oi", conversation.LastMessageContent)
		assert.Equal(1, conversation.UnreadCount)
	})

	t.Run("every send bumps unread count and last content", func(t *testing.T) {
		store := newMockStore()
		service := New(store)

		contents := []string{"primeira", "segunda", "terceira"}
		for i, content := range contents {
			conversation, err := service.Upsert(ctx, "sender-1", "recipient-1", content)
			assert.Nil(err)
			assert.Equal(i+1, conversation.UnreadCount)
			assert.Equal(content, conversation.LastMessageContent)
		}
	})

	// The aggregate lookup keys only on the sender. Messaging a second
	// recipient lands on the same row; this mirrors the system of record.
	t.Run("one aggregate per sender across recipients", func(t *testing.T) {
		store := newMockStore()
		service := New(store)

		first, err := service.Upsert(ctx, "sender-1", "recipient-1", "para o primeiro")
		assert.Nil(err)
		second, err := service.Upsert(ctx, "sender-1", "recipient-2", "para o segundo")
		assert.Nil(err)

		assert.Equal(first.ID, second.ID)
		assert.Equal(model.AccountID("recipient-1"), second.CounterpartyID)
		assert.Equal(2, second.UnreadCount)
		assert.Len(store.byID, 1)
	})

	t.Run("distinct senders get distinct aggregates", func(t *testing.T) {
		store := newMockStore()
		service := New(store)

		first, err := service.Upsert(ctx, "sender-1", "recipient-1", "a")
		assert.Nil(err)
		second, err := service.Upsert(ctx, "sender-2", "recipient-1", "b")
		assert.Nil(err)
		assert.NotEqual(first.ID, second.ID)
	})
}

func TestReadModels(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := newMockStore()
	service := New(store)
	conversation, err := service.Upsert(ctx, "sender-1", "recipient-1", "oi")
	assert.Nil(err)
	store.messages[conversation.ID] = []model.Message{{ID: "m1"}, {ID: "m2"}}

	t.Run("get", func(t *testing.T) {
		found, err := service.Get(ctx, conversation.ID)
		assert.Nil(err)
		assert.Equal(conversation.ID, found.ID)
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := service.Get(ctx, "nope")
		assert.ErrorIs(err, model.ErrorConversationNotFound)
	})

	t.Run("messages", func(t *testing.T) {
		messages, err := service.Messages(ctx, conversation.ID)
		assert.Nil(err)
		assert.Len(messages, 2)
	})

	t.Run("messages of unknown conversation", func(t *testing.T) {
		_, err := service.Messages(ctx, "nope")
		assert.ErrorIs(err, model.ErrorConversationNotFound)
	})

	t.Run("list for owner", func(t *testing.T) {
		conversations, err := service.ListForOwner(ctx, "sender-1")
		assert.Nil(err)
		assert.Len(conversations, 1)
	})
}
