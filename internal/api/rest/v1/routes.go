package v1

import (
	"payment_intake_service/internal/domain/payment"
	"payment_intake_service/internal/pkg/config"
	"payment_intake_service/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1. Guard order on the
// submission endpoint is session, then rate limit, then handler; throttled
// requests never reach the decryption pipeline.
func SetupRoutes(r *gin.Engine,
	handshakeService payment.HandshakeService,
	paymentService payment.PaymentService,
	transactionQueryService payment.TransactionQueryService,
	transactionStatsService payment.TransactionStatsService,
	securitySettings *config.SecuritySettings,
	log logger.Logger) {

	api := r.Group(BasePath)

	session := SessionGuard(securitySettings, log)
	admin := AdminGuard(securitySettings, log)
	throttle := RateLimit(securitySettings, log)

	// Intake routes
	cryptoHandler := NewCryptoHandler(handshakeService)
	api.GET("/crypto/key", session, cryptoHandler.GetPublicKey)

	paymentHandler := NewPaymentHandler(paymentService)
	api.POST("/process-payment", session, throttle, paymentHandler.ProcessPayment)

	// Ledger read routes
	transactionHandler := NewTransactionHandler(transactionQueryService, transactionStatsService)
	api.GET("/transactions", transactionHandler.List)
	api.GET("/transactions/:id", transactionHandler.GetByID)

	// Admin routes
	api.GET("/admin/transactions", admin, transactionHandler.List)
	api.GET("/admin/stats", admin, transactionHandler.Stats)
}
