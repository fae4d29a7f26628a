package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"br.com.tucano.courier/internal/model"
)

type mockStore struct {
	byID       map[model.AccountID]*model.Account
	byDocument map[string]*model.Account
}

func newMockStore() *mockStore {
	return &mockStore{
		byID:       make(map[model.AccountID]*model.Account),
		byDocument: make(map[string]*model.Account),
	}
}

func (m *mockStore) Account(id model.AccountID) (*model.Account, error) {
	account, ok := m.byID[id]
	if !ok {
		return nil, model.ErrorAccountNotFoundOrInactive
	}
	return account, nil
}

func (m *mockStore) AccountByDocument(documentID string) (*model.Account, error) {
	account, ok := m.byDocument[documentID]
	if !ok {
		return nil, model.ErrorAccountNotFoundOrInactive
	}
	return account, nil
}

func (m *mockStore) CreateAccount(account *model.Account) error {
	m.byID[account.ID] = account
	m.byDocument[account.DocumentID] = account
	return nil
}

func (m *mockStore) SaveAccount(account *model.Account) error {
	m.byID[account.ID] = account
	return nil
}

func createParams() *model.CreateAccountParams {
	return &model.CreateAccountParams{
		Name:         "Fulano de Tal",
		DocumentID:   "00011122233",
		DocumentType: model.DocumentCPF,
		PlanType:     model.PlanPrepaid,
		Balance:      5000,
		Secret:       "s3gr3do",
	}
}

func TestCreate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	t.Run("provisioning", func(t *testing.T) {
		service := New(newMockStore())
		account, err := service.Create(ctx, createParams())
		assert.Nil(err)
		assert.NotEmpty(account.ID)
		assert.True(account.Active)
		assert.NotEqual("s3gr3do", account.Secret)
	})

	t.Run("duplicate document is a conflict", func(t *testing.T) {
		service := New(newMockStore())
		_, err := service.Create(ctx, createParams())
		assert.Nil(err)

		_, err = service.Create(ctx, createParams())
		assert.ErrorIs(err, model.ErrorDocumentInUse)
	})
}

func TestVerify(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := newMockStore()
	service := New(store)
	created, err := service.Create(ctx, createParams())
	assert.Nil(err)

	t.Run("matching secret", func(t *testing.T) {
		account, err := service.Verify(ctx, "00011122233", "s3gr3do")
		assert.Nil(err)
		assert.Equal(created.ID, account.ID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := service.Verify(ctx, "00011122233", "errado")
		assert.ErrorIs(err, model.ErrorInvalidCredentials)
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := service.Verify(ctx, "99999999999", "s3gr3do")
		assert.ErrorIs(err, model.ErrorInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		created.Active = false
		_, err := service.Verify(ctx, "00011122233", "s3gr3do")
		assert.ErrorIs(err, model.ErrorInvalidCredentials)
		created.Active = true
	})
}

func TestBalance(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	service := New(newMockStore())
	account, err := service.Create(ctx, createParams())
	assert.Nil(err)

	view, err := service.Balance(ctx, account.ID)
	assert.Nil(err)
	assert.Equal(model.Money(5000), view.Balance)
	assert.Equal(model.Money(0), view.Limit)
}
