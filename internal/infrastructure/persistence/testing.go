//go:build integration
// +build integration

package persistence

import (
	"testing"
	"time"

	"payment_intake_service/internal/domain/payment"
	"payment_intake_service/internal/infrastructure/persistence/models"
	"payment_intake_service/internal/pkg/config"
	"payment_intake_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB              *gorm.DB
	TransactionRepo payment.TransactionRepository
}

// SetupTestDB initializes an in-memory sqlite database with automatic cleanup
func SetupTestDB(t *testing.T) *TestContext {
	t.Helper()

	settings := config.DatabaseSettings{
		Type: config.SqliteDbType,
		DSN:  ":memory:",
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
	})

	err = db.AutoMigrate(&models.TransactionModel{})
	require.NoError(t, err, "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)

	transactionRepo, err := NewGormTransactionRepository(db, logger)
	require.NoError(t, err, "Failed to create transaction repository")

	return &TestContext{
		DB:              db,
		TransactionRepo: transactionRepo,
	}
}

// CreateTestTransaction creates a valid test transaction with default values
func CreateTestTransaction(t *testing.T) *payment.Transaction {
	t.Helper()

	return &payment.Transaction{
		ID:             "TXN-" + uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		Amount:         99.50,
		CardholderName: "Jane Doe",
		CardNumber:     "4111111111111111",
		Expiry:         "12/30",
		CVV:            "123",
		Email:          "jane@example.com",
	}
}

// CreateTestTransactionWithOptions creates a test transaction with a custom
// timestamp and amount
func CreateTestTransactionWithOptions(t *testing.T, ts time.Time, amount float64) *payment.Transaction {
	t.Helper()

	tx := CreateTestTransaction(t)
	tx.Timestamp = ts
	tx.Amount = amount
	return tx
}
