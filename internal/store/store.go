package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type Config interface {
	DatabasePath() string
}

type store struct {
	db *sqlx.DB
}

func New(config Config) (*store, error) {
	dbName := config.DatabasePath()

	isCreating := false
	_, err := os.Stat(dbName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			isCreating = true
		}
	}

	db, err := sqlx.Connect("sqlite3", "file:"+dbName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	datastore := &store{db}
	if isCreating {
		err = datastore.createTables()
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("creating tables: %w", err)
		}
	}

	return datastore, nil
}

func (d *store) Close() error {
	return d.db.Close()
}

func (d *store) createTables() error {
	_, err := d.db.Exec(`create table account(
		ID           text not null primary key,
		CreatedAt    DATETIME not null,
		UpdatedAt    DATETIME null,
		Active       boolean not null default true,
		Name         text not null,
		DocumentID   text not null unique,
		DocumentType text not null,
		PlanType     text not null,
		Balance      integer not null default 0,
		"Limit"      integer not null default 0,
		Secret       text not null
	)`)
	if err != nil {
		return fmt.Errorf("creating account table: %w", err)
	}

	_, err = d.db.Exec(`create table conversation(
		ID                 text not null primary key,
		CreatedAt          DATETIME not null,
		OwnerAccountID     text not null,
		CounterpartyID     text not null,
		LastMessageContent text not null default '',
		LastMessageTime    DATETIME not null,
		UnreadCount        integer not null default 0
	)`)
	if err != nil {
		return fmt.Errorf("creating conversation table: %w", err)
	}

	_, err = d.db.Exec(`create table message(
		ID             text not null primary key,
		CreatedAt      DATETIME not null,
		ConversationID text not null,
		SenderID       text not null,
		RecipientID    text not null,
		Content        text not null,
		Priority       text not null,
		Cost           integer not null default 0,
		Status         text not null,
		Timestamp      DATETIME not null
	)`)
	if err != nil {
		return fmt.Errorf("creating message table: %w", err)
	}

	return nil
}
