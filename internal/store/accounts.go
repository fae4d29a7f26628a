package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"br.com.tucano.courier/internal/model"
)

func (d *store) CreateAccount(account *model.Account) error {
	res, err := d.db.NamedExec(`insert into account
		(ID, CreatedAt, Active, Name, DocumentID, DocumentType, PlanType, Balance, "Limit", Secret)
		values(:ID, :CreatedAt, :Active, :Name, :DocumentID, :DocumentType, :PlanType, :Balance, :Limit, :Secret)`, account)

	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

func (d *store) Account(id model.AccountID) (*model.Account, error) {
	account := &model.Account{}
	err := d.db.Get(account, `select * from account where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorAccountNotFoundOrInactive
		}
		return nil, fmt.Errorf("fetching account: %w", err)
	}
	return account, nil
}

func (d *store) AccountByDocument(documentID string) (*model.Account, error) {
	account := &model.Account{}
	err := d.db.Get(account, `select * from account where DocumentID = ?`, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorAccountNotFoundOrInactive
		}
		return nil, fmt.Errorf("fetching account by document: %w", err)
	}
	return account, nil
}

func (d *store) SaveAccount(account *model.Account) error {
	now := time.Now().UTC()
	account.UpdatedAt = &now

	res, err := d.db.NamedExec(`update account set
		UpdatedAt = :UpdatedAt,
		Active = :Active,
		Name = :Name,
		PlanType = :PlanType,
		Balance = :Balance,
		"Limit" = :Limit
		where ID = :ID`, account)

	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}
