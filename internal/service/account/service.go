// Package account covers provisioning and the balance read model.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"br.com.tucano.courier/internal/model"
)

type Store interface {
	Account(id model.AccountID) (*model.Account, error)
	AccountByDocument(documentID string) (*model.Account, error)
	CreateAccount(account *model.Account) error
	SaveAccount(account *model.Account) error
}

type BalanceView struct {
	Balance model.Money `json:"balance"`
	Limit   model.Money `json:"limit"`
}

type service struct {
	store  Store
	logger *log.Logger
}

func New(store Store) *service {
	return &service{
		store:  store,
		logger: log.New("account"),
	}
}

func (s *service) Create(ctx context.Context, params *model.CreateAccountParams) (*model.Account, error) {
	existing, err := s.store.AccountByDocument(params.DocumentID)
	if err != nil && !errors.Is(err, model.ErrorAccountNotFoundOrInactive) {
		return nil, fmt.Errorf("checking document: %w", err)
	}
	if existing != nil {
		return nil, model.ErrorDocumentInUse
	}

	secretBytes, err := bcrypt.GenerateFromPassword([]byte(params.Secret), 10)
	if err != nil {
		return nil, fmt.Errorf("generating encoded secret: %w", err)
	}

	account := &model.Account{
		ID:           model.AccountID(model.CreateID()),
		CreatedAt:    time.Now().UTC(),
		Active:       true,
		Name:         params.Name,
		DocumentID:   params.DocumentID,
		DocumentType: params.DocumentType,
		PlanType:     params.PlanType,
		Balance:      params.Balance,
		Limit:        params.Limit,
		Secret:       string(secretBytes),
	}

	if err := s.store.CreateAccount(account); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	s.logger.Infof("account %s created (%s)", account.ID, account.PlanType)
	return account, nil
}

func (s *service) Get(ctx context.Context, id model.AccountID) (*model.Account, error) {
	account, err := s.store.Account(id)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) Update(ctx context.Context, id model.AccountID, params *model.CreateAccountParams) (*model.Account, error) {
	account, err := s.store.Account(id)
	if err != nil {
		return nil, err
	}

	if params.Name != "" {
		account.Name = params.Name
	}
	if params.PlanType != "" {
		account.PlanType = params.PlanType
	}
	if params.Balance != 0 {
		account.Balance = params.Balance
	}
	if params.Limit != 0 {
		account.Limit = params.Limit
	}

	if err := s.store.SaveAccount(account); err != nil {
		return nil, fmt.Errorf("saving account: %w", err)
	}
	return account, nil
}

func (s *service) Balance(ctx context.Context, id model.AccountID) (*BalanceView, error) {
	account, err := s.store.Account(id)
	if err != nil {
		return nil, err
	}
	return &BalanceView{Balance: account.Balance, Limit: account.Limit}, nil
}

// Verify checks a document/secret pair and returns the matching active account.
func (s *service) Verify(ctx context.Context, documentID, secret string) (*model.Account, error) {
	account, err := s.store.AccountByDocument(documentID)
	if err != nil {
		if errors.Is(err, model.ErrorAccountNotFoundOrInactive) {
			return nil, model.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("loading account: %w", err)
	}
	if !account.Active {
		return nil, model.ErrorInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Secret), []byte(secret)); err != nil {
		return nil, model.ErrorInvalidCredentials
	}
	return account, nil
}
