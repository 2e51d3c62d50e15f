//go:build unit
// +build unit

package v1

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"payment_intake_service/internal/domain/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func postPayment(handler PaymentHandler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/process-payment", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ProcessPayment(c)
	return w
}

func TestPaymentHandler_ProcessPayment_Success(t *testing.T) {
	mockPaymentService := new(MockPaymentService)

	handler := NewPaymentHandler(mockPaymentService)

	mockPaymentService.
		On("Process", mock.Anything, "dGVzdA==").
		Return("TXN-abc-123", nil)

	w := postPayment(handler, `{"ciphertext": "dGVzdA=="}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TXN-abc-123")
	assert.Contains(t, w.Body.String(), StatusSuccess)
	mockPaymentService.AssertExpectations(t)
}

func TestPaymentHandler_ProcessPayment_MissingBody(t *testing.T) {
	mockPaymentService := new(MockPaymentService)

	handler := NewPaymentHandler(mockPaymentService)

	w := postPayment(handler, `not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ciphertext")
	mockPaymentService.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestPaymentHandler_ProcessPayment_MalformedCiphertext(t *testing.T) {
	mockPaymentService := new(MockPaymentService)

	handler := NewPaymentHandler(mockPaymentService)

	w := postPayment(handler, `{"ciphertext": "!!!"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not valid base64")
	mockPaymentService.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestPaymentHandler_ProcessPayment_EmptyCiphertext(t *testing.T) {
	mockPaymentService := new(MockPaymentService)

	handler := NewPaymentHandler(mockPaymentService)

	w := postPayment(handler, `{"ciphertext": ""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockPaymentService.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestPaymentHandler_ProcessPayment_DecryptionFailed(t *testing.T) {
	mockPaymentService := new(MockPaymentService)

	handler := NewPaymentHandler(mockPaymentService)

	mockPaymentService.
		On("Process", mock.Anything, "dGVzdA==").
		Return("", payment.ErrDecryptionFailed)

	w := postPayment(handler, `{"ciphertext": "dGVzdA=="}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "could not decrypt")
	mockPaymentService.AssertExpectations(t)
}

func TestPaymentHandler_ProcessPayment_ValidationFailure(t *testing.T) {
	mockPaymentService := new(MockPaymentService)

	handler := NewPaymentHandler(mockPaymentService)

	mockPaymentService.
		On("Process", mock.Anything, "dGVzdA==").
		Return("", &payment.ValidationError{Field: "cardNumber", Reason: "failed checksum"})

	w := postPayment(handler, `{"ciphertext": "dGVzdA=="}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cardNumber")
	assert.Contains(t, w.Body.String(), "failed checksum")
	mockPaymentService.AssertExpectations(t)
}

func TestPaymentHandler_ProcessPayment_DuplicateTransactionID(t *testing.T) {
	mockPaymentService := new(MockPaymentService)

	handler := NewPaymentHandler(mockPaymentService)

	mockPaymentService.
		On("Process", mock.Anything, "dGVzdA==").
		Return("", payment.ErrDuplicateTransactionID)

	w := postPayment(handler, `{"ciphertext": "dGVzdA=="}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "transaction id collision")
	mockPaymentService.AssertExpectations(t)
}

func TestPaymentHandler_ProcessPayment_UnknownErrorStaysGeneric(t *testing.T) {
	mockPaymentService := new(MockPaymentService)

	handler := NewPaymentHandler(mockPaymentService)

	mockPaymentService.
		On("Process", mock.Anything, "dGVzdA==").
		Return("", errors.New("connection refused to db host 10.0.0.5"))

	w := postPayment(handler, `{"ciphertext": "dGVzdA=="}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal error")
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
	mockPaymentService.AssertExpectations(t)
}
