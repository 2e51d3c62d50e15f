package v1

import (
	"net/http"

	"payment_intake_service/internal/domain/payment"

	"github.com/gin-gonic/gin"
)

// CryptoHandler defines the interface for the encryption handshake
type CryptoHandler interface {
	GetPublicKey(ctx *gin.Context)
}

type cryptoHandler struct {
	handshakeService payment.HandshakeService
}

// NewCryptoHandler creates a new CryptoHandler
func NewCryptoHandler(handshakeService payment.HandshakeService) CryptoHandler {
	return &cryptoHandler{
		handshakeService: handshakeService,
	}
}

// GetPublicKey handles the GET request for the public encryption key.
// Clients encrypt payment payloads against this key before submission.
func (handler *cryptoHandler) GetPublicKey(ctx *gin.Context) {
	pemKey, err := handler.handshakeService.PublicKey()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Status:  StatusError,
			Message: "encryption key unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, PublicKeyResponse{PublicKey: pemKey})
}
