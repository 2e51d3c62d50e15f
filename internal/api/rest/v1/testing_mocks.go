//go:build unit
// +build unit

package v1

import (
	"context"
	"payment_intake_service/internal/domain/payment"

	"github.com/stretchr/testify/mock"
)

// MockHandshakeService is a mock implementation of HandshakeService
type MockHandshakeService struct {
	mock.Mock
}

func (m *MockHandshakeService) PublicKey() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// MockPaymentService is a mock implementation of PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Process(ctx context.Context, ciphertextB64 string) (string, error) {
	args := m.Called(ctx, ciphertextB64)
	return args.String(0), args.Error(1)
}

// MockTransactionQueryService is a mock implementation of TransactionQueryService
type MockTransactionQueryService struct {
	mock.Mock
}

func (m *MockTransactionQueryService) List(ctx context.Context, query *payment.TransactionQuery) ([]*payment.Transaction, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Transaction), args.Error(1)
}

func (m *MockTransactionQueryService) GetByID(ctx context.Context, id string) (*payment.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

// MockTransactionStatsService is a mock implementation of TransactionStatsService
type MockTransactionStatsService struct {
	mock.Mock
}

func (m *MockTransactionStatsService) Stats(ctx context.Context) (*payment.TransactionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.TransactionStats), args.Error(1)
}
