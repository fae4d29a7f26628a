package store

import (
	"database/sql"
	"errors"
	"fmt"

	"br.com.tucano.courier/internal/model"
)

func (d *store) CreateMessage(message *model.Message) error {
	res, err := d.db.NamedExec(`insert into message
		(ID, CreatedAt, ConversationID, SenderID, RecipientID, Content, Priority, Cost, Status, Timestamp)
		values(:ID, :CreatedAt, :ConversationID, :SenderID, :RecipientID, :Content, :Priority, :Cost, :Status, :Timestamp)`, message)

	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

// Message fetches without owner scoping. Only the delivery pipeline uses it.
func (d *store) Message(id model.MessageID) (*model.Message, error) {
	message := &model.Message{}
	err := d.db.Get(message, `select * from message where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorMessageNotFound
		}
		return nil, fmt.Errorf("fetching message: %w", err)
	}
	return message, nil
}

func (d *store) MessageByID(id model.MessageID, ownerID model.AccountID) (*model.Message, error) {
	message := &model.Message{}
	err := d.db.Get(message, `select * from message where ID = ? and SenderID = ?`, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorMessageNotFound
		}
		return nil, fmt.Errorf("fetching message: %w", err)
	}
	return message, nil
}

func (d *store) MessageStatus(id model.MessageID, ownerID model.AccountID) (model.Status, error) {
	message, err := d.MessageByID(id, ownerID)
	if err != nil {
		return "", err
	}
	return message.Status, nil
}

func (d *store) MessagesBySender(senderID model.AccountID) ([]model.Message, error) {
	messages := []model.Message{}
	err := d.db.Select(&messages, `select * from message where SenderID = ?`, senderID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}

func (d *store) MessagesByConversation(conversationID model.ConversationID) ([]model.Message, error) {
	messages := []model.Message{}
	err := d.db.Select(&messages, `select * from message where ConversationID = ? order by CreatedAt asc`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("listing conversation messages: %w", err)
	}
	return messages, nil
}

// TransitionMessage overwrites the status without checking the current one.
// Legal-edge enforcement was deliberately left out; callers own the ordering.
func (d *store) TransitionMessage(id model.MessageID, status model.Status) error {
	res, err := d.db.Exec(`update message set Status = ? where ID = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating message status: %w", err)
	}
	if rows, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	} else if rows != 1 {
		return model.ErrorMessageNotFound
	}

	return nil
}
