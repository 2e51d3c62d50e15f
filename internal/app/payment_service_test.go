//go:build unit
// +build unit

package app

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"payment_intake_service/internal/domain/payment"
	"payment_intake_service/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validPayloadJSON = `{"cardNumber":"4111111111111111","expiry":"12/30","cvv":"123","fullName":"Jane Doe","email":"jane@example.com","amount":99.50}`

func setupPaymentService(t *testing.T, keyStore *MockKeyStore, repo *MockTransactionRepository) payment.PaymentService {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	service, err := NewPaymentService(keyStore, repo, logger)
	require.NoError(t, err)
	return service
}

func TestPaymentService_Process_Success(t *testing.T) {
	keyStore := new(MockKeyStore)
	repo := new(MockTransactionRepository)
	service := setupPaymentService(t, keyStore, repo)

	ciphertext := []byte("opaque-bytes")
	keyStore.On("Decrypt", ciphertext).Return([]byte(validPayloadJSON), nil)
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*payment.Transaction")).Return(nil)

	transactionID, err := service.Process(context.Background(), base64.StdEncoding.EncodeToString(ciphertext))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(transactionID, "TXN-"))

	repo.AssertExpectations(t)
	keyStore.AssertExpectations(t)
}

func TestPaymentService_Process_MalformedCiphertext(t *testing.T) {
	keyStore := new(MockKeyStore)
	repo := new(MockTransactionRepository)
	service := setupPaymentService(t, keyStore, repo)

	_, err := service.Process(context.Background(), "%%% not base64 %%%")
	assert.ErrorIs(t, err, payment.ErrMalformedCiphertext)
	keyStore.AssertNotCalled(t, "Decrypt", mock.Anything)
}

func TestPaymentService_Process_DecryptionFailed(t *testing.T) {
	keyStore := new(MockKeyStore)
	repo := new(MockTransactionRepository)
	service := setupPaymentService(t, keyStore, repo)

	keyStore.On("Decrypt", mock.Anything).Return(nil, errors.New("crypto/rsa: decryption error"))

	_, err := service.Process(context.Background(), base64.StdEncoding.EncodeToString([]byte("junk")))
	assert.ErrorIs(t, err, payment.ErrDecryptionFailed)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestPaymentService_Process_InvalidPayloadFormat(t *testing.T) {
	keyStore := new(MockKeyStore)
	repo := new(MockTransactionRepository)
	service := setupPaymentService(t, keyStore, repo)

	keyStore.On("Decrypt", mock.Anything).Return([]byte("not json at all"), nil)

	_, err := service.Process(context.Background(), base64.StdEncoding.EncodeToString([]byte("x")))
	assert.ErrorIs(t, err, payment.ErrInvalidPayloadFormat)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestPaymentService_Process_ValidationFailure(t *testing.T) {
	keyStore := new(MockKeyStore)
	repo := new(MockTransactionRepository)
	service := setupPaymentService(t, keyStore, repo)

	// Luhn-invalid card number, everything else fine.
	badPayload := strings.Replace(validPayloadJSON, "4111111111111111", "4111111111111112", 1)
	keyStore.On("Decrypt", mock.Anything).Return([]byte(badPayload), nil)

	_, err := service.Process(context.Background(), base64.StdEncoding.EncodeToString([]byte("x")))
	require.Error(t, err)

	var validationErr *payment.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "cardNumber", validationErr.Field)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestPaymentService_Process_StorageFailureStillSucceeds(t *testing.T) {
	keyStore := new(MockKeyStore)
	repo := new(MockTransactionRepository)
	service := setupPaymentService(t, keyStore, repo)

	keyStore.On("Decrypt", mock.Anything).Return([]byte(validPayloadJSON), nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	// The ledger is best-effort: the payment is still reported as accepted.
	transactionID, err := service.Process(context.Background(), base64.StdEncoding.EncodeToString([]byte("x")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(transactionID, "TXN-"))
}

func TestPaymentService_Process_DuplicateIDSurfaces(t *testing.T) {
	keyStore := new(MockKeyStore)
	repo := new(MockTransactionRepository)
	service := setupPaymentService(t, keyStore, repo)

	keyStore.On("Decrypt", mock.Anything).Return([]byte(validPayloadJSON), nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return(payment.ErrDuplicateTransactionID)

	_, err := service.Process(context.Background(), base64.StdEncoding.EncodeToString([]byte("x")))
	assert.ErrorIs(t, err, payment.ErrDuplicateTransactionID)
}

func TestHandshakeService_PublicKey(t *testing.T) {
	keyStore := new(MockKeyStore)
	logger := testutil.SetupTestLogger(t)
	service, err := NewHandshakeService(keyStore, logger)
	require.NoError(t, err)

	keyStore.On("PublicKeyPEM").Return("-----BEGIN PUBLIC KEY-----\n...", nil).Once()
	pemKey, err := service.PublicKey()
	require.NoError(t, err)
	assert.Contains(t, pemKey, "BEGIN PUBLIC KEY")

	keyStore.On("PublicKeyPEM").Return("", errors.New("not initialized")).Once()
	_, err = service.PublicKey()
	assert.ErrorIs(t, err, payment.ErrKeyUnavailable)
}
