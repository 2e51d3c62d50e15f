// Package models contains the GORM database models backing the domain
// entities (infrastructure concern, kept separate from the domain layer).
package models

import (
	"time"

	"payment_intake_service/internal/domain/payment"
)

// TransactionModel is the GORM database model for ledger records. The
// primary key on transaction_id is the uniqueness constraint duplicate
// detection relies on; the timestamp index serves ordering and the daily
// aggregation window.
type TransactionModel struct {
	TransactionID  string    `gorm:"primaryKey;type:varchar(64)"`
	Timestamp      time.Time `gorm:"not null;index"`
	Amount         float64   `gorm:"not null"`
	CardholderName string    `gorm:"type:varchar(255)"`
	CardNumber     string    `gorm:"type:varchar(32)"`
	Expiry         string    `gorm:"type:varchar(5)"`
	CVV            string    `gorm:"type:varchar(4)"`
	Email          string    `gorm:"type:varchar(255)"`
}

// TableName specifies the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts GORM model to domain entity
func (m *TransactionModel) ToDomain() *payment.Transaction {
	return &payment.Transaction{
		ID:             m.TransactionID,
		Timestamp:      m.Timestamp,
		Amount:         m.Amount,
		CardholderName: m.CardholderName,
		CardNumber:     m.CardNumber,
		Expiry:         m.Expiry,
		CVV:            m.CVV,
		Email:          m.Email,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TransactionModel) FromDomain(t *payment.Transaction) {
	m.TransactionID = t.ID
	m.Timestamp = t.Timestamp
	m.Amount = t.Amount
	m.CardholderName = t.CardholderName
	m.CardNumber = t.CardNumber
	m.Expiry = t.Expiry
	m.CVV = t.CVV
	m.Email = t.Email
}
