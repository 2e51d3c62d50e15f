package app

import (
	"context"

	"payment_intake_service/internal/domain/payment"
	"payment_intake_service/internal/pkg/logger"
)

// transactionQueryService implements the TransactionQueryService interface
type transactionQueryService struct {
	transactionRepo payment.TransactionRepository
	logger          logger.Logger
}

// NewTransactionQueryService creates a new transactionQueryService instance
func NewTransactionQueryService(transactionRepo payment.TransactionRepository, logger logger.Logger) (payment.TransactionQueryService, error) {
	return &transactionQueryService{
		transactionRepo: transactionRepo,
		logger:          logger,
	}, nil
}

// List retrieves transactions matching the query, newest first.
func (s *transactionQueryService) List(ctx context.Context, query *payment.TransactionQuery) ([]*payment.Transaction, error) {
	return s.transactionRepo.List(ctx, query)
}

// GetByID retrieves a single transaction by its identifier.
func (s *transactionQueryService) GetByID(ctx context.Context, id string) (*payment.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}

// transactionStatsService implements the TransactionStatsService interface
type transactionStatsService struct {
	transactionRepo payment.TransactionRepository
	logger          logger.Logger
}

// NewTransactionStatsService creates a new transactionStatsService instance
func NewTransactionStatsService(transactionRepo payment.TransactionRepository, logger logger.Logger) (payment.TransactionStatsService, error) {
	return &transactionStatsService{
		transactionRepo: transactionRepo,
		logger:          logger,
	}, nil
}

// Stats returns ledger-wide totals plus the 30-day daily breakdown.
func (s *transactionStatsService) Stats(ctx context.Context) (*payment.TransactionStats, error) {
	return s.transactionRepo.Stats(ctx)
}
