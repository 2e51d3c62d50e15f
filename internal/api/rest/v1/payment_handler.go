package v1

import (
	"errors"
	"net/http"

	"payment_intake_service/internal/domain/payment"

	"github.com/gin-gonic/gin"
)

// PaymentHandler defines the interface for encrypted payment submission
type PaymentHandler interface {
	ProcessPayment(ctx *gin.Context)
}

type paymentHandler struct {
	paymentService payment.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService payment.PaymentService) PaymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
	}
}

// ProcessPayment handles the POST request carrying an encrypted payment
// payload. Error responses carry field names and high-level reasons only;
// no card data ever appears in a response or a log line.
func (handler *paymentHandler) ProcessPayment(ctx *gin.Context) {
	var request ProcessPaymentRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "request body must contain a ciphertext field",
		})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "ciphertext is not valid base64",
		})
		return
	}

	transactionID, err := handler.paymentService.Process(ctx, request.Ciphertext)
	if err != nil {
		status, message := classifyProcessError(err)
		ctx.JSON(status, ErrorResponse{Status: StatusError, Message: message})
		return
	}

	ctx.JSON(http.StatusOK, PaymentAcceptedResponse{
		Status:        StatusSuccess,
		TransactionID: transactionID,
	})
}

// classifyProcessError maps pipeline failures onto HTTP statuses. Unknown
// errors collapse to a generic internal error so nothing unexpected leaks
// to the client.
func classifyProcessError(err error) (int, string) {
	var validationErr *payment.ValidationError
	switch {
	case errors.Is(err, payment.ErrMalformedCiphertext):
		return http.StatusBadRequest, "ciphertext is not valid base64"
	case errors.Is(err, payment.ErrDecryptionFailed):
		return http.StatusBadRequest, "could not decrypt payment data"
	case errors.Is(err, payment.ErrInvalidPayloadFormat):
		return http.StatusBadRequest, "decrypted payload is not a valid payment"
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.Is(err, payment.ErrDuplicateTransactionID):
		return http.StatusInternalServerError, "transaction id collision"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
