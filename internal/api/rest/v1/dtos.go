package v1

import (
	"errors"
	"fmt"
	"time"

	"payment_intake_service/internal/domain/payment"

	"github.com/go-playground/validator/v10"
)

// Response status constants
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ProcessPaymentRequest is the encrypted submission body. The ciphertext is
// ephemeral: decoded, decrypted once and discarded.
type ProcessPaymentRequest struct {
	Ciphertext string `json:"ciphertext" validate:"required,base64"`
}

// Validate for validating ProcessPaymentRequest struct
func (r *ProcessPaymentRequest) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// PublicKeyResponse carries the PEM public key for client-side encryption.
type PublicKeyResponse struct {
	PublicKey string `json:"publicKey"`
}

// PaymentAcceptedResponse reports a successful submission.
type PaymentAcceptedResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
}

// ErrorResponse Contains error message
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TransactionResponse is the outbound shape of a ledger record. The card
// number is masked to its last four digits and the CVV is never included;
// the read surface does not re-expose cardholder data.
type TransactionResponse struct {
	TransactionID  string    `json:"transactionId"`
	Timestamp      time.Time `json:"timestamp"`
	Amount         float64   `json:"amount"`
	CardholderName string    `json:"cardholderName"`
	CardNumber     string    `json:"cardNumber"`
	Expiry         string    `json:"expiry"`
	Email          string    `json:"email"`
}

// NewTransactionResponse maps a domain transaction onto its outbound shape.
func NewTransactionResponse(tx *payment.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  tx.ID,
		Timestamp:      tx.Timestamp,
		Amount:         tx.Amount,
		CardholderName: tx.CardholderName,
		CardNumber:     tx.MaskedCardNumber(),
		Expiry:         tx.Expiry,
		Email:          tx.Email,
	}
}

// TransactionListResponse wraps a filtered transaction listing.
type TransactionListResponse struct {
	Status       string                `json:"status"`
	Count        int                   `json:"count"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TransactionDetailResponse wraps a single transaction lookup.
type TransactionDetailResponse struct {
	Status      string              `json:"status"`
	Transaction TransactionResponse `json:"transaction"`
}

// DailyStatResponse is one calendar day of aggregate activity.
type DailyStatResponse struct {
	Date        string  `json:"date"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
	AvgAmount   float64 `json:"avgAmount"`
}

// StatsPayload carries the ledger aggregates.
type StatsPayload struct {
	TotalCount    int64               `json:"totalCount"`
	TotalAmount   float64             `json:"totalAmount"`
	AverageAmount float64             `json:"averageAmount"`
	DailyStats    []DailyStatResponse `json:"dailyStats"`
}

// StatsResponse wraps the ledger statistics.
type StatsResponse struct {
	Status string       `json:"status"`
	Stats  StatsPayload `json:"stats"`
}

// NewStatsResponse maps domain stats onto the outbound shape.
func NewStatsResponse(stats *payment.TransactionStats) StatsResponse {
	dailyStats := make([]DailyStatResponse, len(stats.DailyStats))
	for i, day := range stats.DailyStats {
		dailyStats[i] = DailyStatResponse{
			Date:        day.Date,
			Count:       day.Count,
			TotalAmount: day.TotalAmount,
			AvgAmount:   day.AvgAmount,
		}
	}
	return StatsResponse{
		Status: StatusSuccess,
		Stats: StatsPayload{
			TotalCount:    stats.TotalCount,
			TotalAmount:   stats.TotalAmount,
			AverageAmount: stats.AverageAmount,
			DailyStats:    dailyStats,
		},
	}
}
