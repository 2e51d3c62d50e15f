package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"payment_intake_service/internal/domain/payment"
	"payment_intake_service/internal/infrastructure/persistence/models"
	"payment_intake_service/internal/pkg/logger"

	"gorm.io/gorm"
)

const dailyStatsWindow = 30 * 24 * time.Hour

type gormTransactionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTransactionRepository creates a new GORM-based TransactionRepository implementation
func NewGormTransactionRepository(db *gorm.DB, logger logger.Logger) (payment.TransactionRepository, error) {
	return &gormTransactionRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Insert writes one ledger record. The storage engine's primary key
// constraint is what enforces identifier uniqueness; a violation surfaces
// as payment.ErrDuplicateTransactionID.
func (r *gormTransactionRepository) Insert(ctx context.Context, tx *payment.Transaction) error {
	model := &models.TransactionModel{}
	model.FromDomain(tx)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("transaction %s: %w", tx.ID, payment.ErrDuplicateTransactionID)
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	r.logger.Info("Recorded transaction with id ", tx.ID)
	return nil
}

// List retrieves transactions ordered by timestamp descending. Filters are
// conjunctive; limit/offset apply after filtering and ordering.
func (r *gormTransactionRepository) List(ctx context.Context, query *payment.TransactionQuery) ([]*payment.Transaction, error) {
	var modelList []*models.TransactionModel
	dbQuery := r.db.WithContext(ctx).Model(&models.TransactionModel{})

	if query.StartDate != nil {
		dbQuery = dbQuery.Where("timestamp >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		dbQuery = dbQuery.Where("timestamp <= ?", *query.EndDate)
	}
	if query.MinAmount != nil {
		dbQuery = dbQuery.Where("amount >= ?", *query.MinAmount)
	}
	if query.MaxAmount != nil {
		dbQuery = dbQuery.Where("amount <= ?", *query.MaxAmount)
	}

	dbQuery = dbQuery.Order("timestamp DESC")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	domainList := make([]*payment.Transaction, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

// GetByID retrieves a transaction or payment.ErrTransactionNotFound.
func (r *gormTransactionRepository) GetByID(ctx context.Context, id string) (*payment.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction %s: %w", id, payment.ErrTransactionNotFound)
		}
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return model.ToDomain(), nil
}

type totalsRow struct {
	Count int64
	Total float64
	Avg   float64
}

type dailyRow struct {
	Day   string
	Count int64
	Total float64
	Avg   float64
}

// Stats aggregates the whole ledger plus a per-day breakdown of the last
// 30 days, most recent day first. date() is understood by both sqlite and
// postgres.
func (r *gormTransactionRepository) Stats(ctx context.Context) (*payment.TransactionStats, error) {
	var totals totalsRow
	err := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Select("count(*) as count, coalesce(sum(amount), 0) as total, coalesce(avg(amount), 0) as avg").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute ledger totals: %w", err)
	}

	cutoff := time.Now().UTC().Add(-dailyStatsWindow)
	var rows []dailyRow
	err = r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Select("date(timestamp) as day, count(*) as count, sum(amount) as total, avg(amount) as avg").
		Where("timestamp >= ?", cutoff).
		Group("day").
		Order("day DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute daily stats: %w", err)
	}

	dailyStats := make([]payment.DailyStat, len(rows))
	for i, row := range rows {
		dailyStats[i] = payment.DailyStat{
			Date:        row.Day,
			Count:       row.Count,
			TotalAmount: row.Total,
			AvgAmount:   row.Avg,
		}
	}

	return &payment.TransactionStats{
		TotalCount:    totals.Count,
		TotalAmount:   totals.Total,
		AverageAmount: totals.Avg,
		DailyStats:    dailyStats,
	}, nil
}

// isDuplicateKeyError covers gorm's translated error plus the raw driver
// messages for versions that predate translation on the sqlite driver.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
