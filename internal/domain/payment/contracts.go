package payment

import (
	"context"
)

// PaymentService runs the decrypt, validate and persist pipeline for one
// encrypted submission.
type PaymentService interface {
	// Process decodes and decrypts a base64 ciphertext, validates the
	// resulting payload and records the transaction. It returns the
	// generated transaction identifier.
	Process(ctx context.Context, ciphertextB64 string) (string, error)
}

// HandshakeService exposes the public half of the active keypair so
// clients can encrypt submissions.
type HandshakeService interface {
	// PublicKey returns the active public key as a PEM string.
	PublicKey() (string, error)
}

// TransactionQueryService serves the ledger's read surface.
type TransactionQueryService interface {
	// List retrieves transactions matching the query, newest first.
	List(ctx context.Context, query *TransactionQuery) ([]*Transaction, error)

	// GetByID retrieves a single transaction by its identifier.
	// It returns ErrTransactionNotFound when no record exists.
	GetByID(ctx context.Context, id string) (*Transaction, error)
}

// TransactionStatsService computes aggregate statistics over the ledger.
type TransactionStatsService interface {
	// Stats returns ledger-wide totals plus a 30-day daily breakdown.
	Stats(ctx context.Context) (*TransactionStats, error)
}

// TransactionRepository defines the durable ledger operations.
type TransactionRepository interface {
	// Insert writes a transaction. It returns ErrDuplicateTransactionID when
	// the identifier already exists. A successful return means the record
	// reached stable storage.
	Insert(ctx context.Context, tx *Transaction) error

	// List retrieves transactions matching the query, ordered by timestamp
	// descending, with limit/offset applied after filtering.
	List(ctx context.Context, query *TransactionQuery) ([]*Transaction, error)

	// GetByID retrieves a transaction or ErrTransactionNotFound.
	GetByID(ctx context.Context, id string) (*Transaction, error)

	// Stats aggregates the ledger: totals plus per-day figures for the last
	// 30 days, most recent day first.
	Stats(ctx context.Context) (*TransactionStats, error)
}
