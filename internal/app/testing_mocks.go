//go:build unit
// +build unit

package app

import (
	"context"

	"payment_intake_service/internal/domain/payment"

	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Insert(ctx context.Context, tx *payment.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) List(ctx context.Context, query *payment.TransactionQuery) ([]*payment.Transaction, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*payment.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Stats(ctx context.Context) (*payment.TransactionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.TransactionStats), args.Error(1)
}

// MockKeyStore is a mock implementation of KeyStore
type MockKeyStore struct {
	mock.Mock
}

func (m *MockKeyStore) Initialize() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockKeyStore) PublicKeyPEM() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockKeyStore) Decrypt(ciphertext []byte) ([]byte, error) {
	args := m.Called(ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
