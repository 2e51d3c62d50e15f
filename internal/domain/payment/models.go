package payment

import (
	"time"
)

// PaymentPayload is the decrypted submission body. Every field is untrusted
// until Validate has passed; instances must never be logged or serialized
// into a response.
type PaymentPayload struct {
	CardNumber string  `json:"cardNumber"`
	Expiry     string  `json:"expiry"`
	CVV        string  `json:"cvv"`
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	Amount     float64 `json:"amount"`
}

// Transaction is the durable record written once per accepted submission.
// Records are immutable after insert; the ledger never updates or deletes them.
type Transaction struct {
	ID             string
	Timestamp      time.Time
	Amount         float64
	CardholderName string
	CardNumber     string
	Expiry         string
	CVV            string
	Email          string
}

// MaskedCardNumber returns the card number reduced to its last four digits.
// The read surface only ever exposes this form.
func (t *Transaction) MaskedCardNumber() string {
	digits := stripNonDigits(t.CardNumber)
	if len(digits) <= 4 {
		return digits
	}
	return "****" + digits[len(digits)-4:]
}

// TransactionQuery holds the conjunctive filters for listing transactions.
type TransactionQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *float64
	MaxAmount *float64
	Limit     int
	Offset    int
}

// NewTransactionQuery creates a TransactionQuery with default pagination.
func NewTransactionQuery() *TransactionQuery {
	return &TransactionQuery{
		Limit:  100,
		Offset: 0,
	}
}

// DailyStat is one calendar day of aggregate activity, derived on demand.
type DailyStat struct {
	Date        string
	Count       int64
	TotalAmount float64
	AvgAmount   float64
}

// TransactionStats aggregates the whole ledger plus a 30-day daily
// breakdown, most recent day first.
type TransactionStats struct {
	TotalCount    int64
	TotalAmount   float64
	AverageAmount float64
	DailyStats    []DailyStat
}
