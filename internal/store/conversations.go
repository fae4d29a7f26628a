package store

import (
	"database/sql"
	"errors"
	"fmt"

	"br.com.tucano.courier/internal/model"
)

func (d *store) CreateConversation(conversation *model.Conversation) error {
	res, err := d.db.NamedExec(`insert into conversation
		(ID, CreatedAt, OwnerAccountID, CounterpartyID, LastMessageContent, LastMessageTime, UnreadCount)
		values(:ID, :CreatedAt, :OwnerAccountID, :CounterpartyID, :LastMessageContent, :LastMessageTime, :UnreadCount)`, conversation)

	if err != nil {
		return fmt.Errorf("inserting conversation: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

func (d *store) Conversation(id model.ConversationID) (*model.Conversation, error) {
	conversation := &model.Conversation{}
	err := d.db.Get(conversation, `select * from conversation where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorConversationNotFound
		}
		return nil, fmt.Errorf("fetching conversation: %w", err)
	}
	return conversation, nil
}

// ConversationByOwner looks up the aggregate by sender only. A sender holds at
// most one conversation row no matter how many counterparties they message.
func (d *store) ConversationByOwner(ownerID model.AccountID) (*model.Conversation, error) {
	conversation := &model.Conversation{}
	err := d.db.Get(conversation, `select * from conversation where OwnerAccountID = ?`, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorConversationNotFound
		}
		return nil, fmt.Errorf("fetching conversation by owner: %w", err)
	}
	return conversation, nil
}

func (d *store) ConversationsByOwner(ownerID model.AccountID) ([]model.Conversation, error) {
	conversations := []model.Conversation{}
	err := d.db.Select(&conversations, `select * from conversation where OwnerAccountID = ?`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	return conversations, nil
}

func (d *store) SaveConversation(conversation *model.Conversation) error {
	res, err := d.db.NamedExec(`update conversation set
		LastMessageContent = :LastMessageContent,
		LastMessageTime = :LastMessageTime,
		UnreadCount = :UnreadCount
		where ID = :ID`, conversation)

	if err != nil {
		return fmt.Errorf("updating conversation: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}
