// Package ledger applies message charges against an account's plan.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/labstack/gommon/log"

	"br.com.tucano.courier/internal/model"
)

type Store interface {
	Account(id model.AccountID) (*model.Account, error)
	SaveAccount(account *model.Account) error
}

type service struct {
	store  Store
	logger *log.Logger

	// serializes the read-modify-write so concurrent sends against one
	// account cannot interleave
	mu sync.Mutex
}

func New(store Store) *service {
	return &service{
		store:  store,
		logger: log.New("ledger"),
	}
}

// Debit charges amount to the account and persists the result. PREPAID spends
// balance down toward zero (reaching exactly zero is fine); POSTPAID accrues
// usage in balance up toward the limit, and reaching the limit exactly is
// rejected. The asymmetry matches the billing contract, keep it.
func (s *service) Debit(ctx context.Context, accountID model.AccountID, amount model.Money) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.store.Account(accountID)
	if err != nil {
		return nil, fmt.Errorf("loading account: %w", err)
	}
	if !account.Active {
		s.logger.Warnf("debit against inactive account %s", accountID)
		return nil, model.ErrorAccountNotFoundOrInactive
	}

	switch account.PlanType {
	case model.PlanPrepaid:
		if account.Balance-amount < 0 {
			return nil, model.ErrorInsufficientBalance
		}
		account.Balance -= amount
	case model.PlanPostpaid:
		if account.Balance+amount >= account.Limit {
			return nil, model.ErrorLimitExceeded
		}
		account.Balance += amount
	default:
		return nil, fmt.Errorf("unknown plan type %q", account.PlanType)
	}

	if err := s.store.SaveAccount(account); err != nil {
		return nil, fmt.Errorf("saving account: %w", err)
	}

	s.logger.Infof("debited %s from account %s, balance now %s", amount, accountID, account.Balance)
	return account, nil
}
