package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"payment_intake_service/internal/domain/payment"

	"github.com/gin-gonic/gin"
)

// TransactionHandler defines the interface for the ledger's read surface
type TransactionHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Stats(ctx *gin.Context)
}

type transactionHandler struct {
	queryService payment.TransactionQueryService
	statsService payment.TransactionStatsService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(queryService payment.TransactionQueryService, statsService payment.TransactionStatsService) TransactionHandler {
	return &transactionHandler{
		queryService: queryService,
		statsService: statsService,
	}
}

// List handles the GET request for filtered transactions with optional
// query parameters: startDate, endDate, minAmount, maxAmount, limit, offset.
func (handler *transactionHandler) List(ctx *gin.Context) {
	query := payment.NewTransactionQuery()

	if startDate := ctx.Query("startDate"); len(startDate) > 0 {
		if parsed, ok := parseQueryTime(startDate); ok {
			query.StartDate = &parsed
		}
	}

	if endDate := ctx.Query("endDate"); len(endDate) > 0 {
		if parsed, ok := parseQueryEndTime(endDate); ok {
			query.EndDate = &parsed
		}
	}

	if minAmount := ctx.Query("minAmount"); len(minAmount) > 0 {
		if parsed, err := strconv.ParseFloat(minAmount, 64); err == nil {
			query.MinAmount = &parsed
		}
	}

	if maxAmount := ctx.Query("maxAmount"); len(maxAmount) > 0 {
		if parsed, err := strconv.ParseFloat(maxAmount, 64); err == nil {
			query.MaxAmount = &parsed
		}
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		if parsed, err := strconv.Atoi(limit); err == nil && parsed > 0 {
			query.Limit = parsed
		}
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		if parsed, err := strconv.Atoi(offset); err == nil && parsed >= 0 {
			query.Offset = parsed
		}
	}

	transactions, err := handler.queryService.List(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Status:  StatusError,
			Message: "could not list transactions",
		})
		return
	}

	listResponse := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		listResponse[i] = NewTransactionResponse(tx)
	}

	ctx.JSON(http.StatusOK, TransactionListResponse{
		Status:       StatusSuccess,
		Count:        len(listResponse),
		Transactions: listResponse,
	})
}

// GetByID handles the GET request for a single transaction by ID
func (handler *transactionHandler) GetByID(ctx *gin.Context) {
	transactionID := ctx.Param("id")

	tx, err := handler.queryService.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, payment.ErrTransactionNotFound) {
			ctx.JSON(http.StatusNotFound, ErrorResponse{
				Status:  StatusError,
				Message: "transaction not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Status:  StatusError,
			Message: "could not fetch transaction",
		})
		return
	}

	ctx.JSON(http.StatusOK, TransactionDetailResponse{
		Status:      StatusSuccess,
		Transaction: NewTransactionResponse(tx),
	})
}

// Stats handles the GET request for ledger aggregates with the 30-day
// daily breakdown.
func (handler *transactionHandler) Stats(ctx *gin.Context) {
	stats, err := handler.statsService.Stats(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Status:  StatusError,
			Message: "could not compute statistics",
		})
		return
	}

	ctx.JSON(http.StatusOK, NewStatsResponse(stats))
}

// parseQueryTime accepts RFC3339 timestamps and plain dates.
func parseQueryTime(value string) (time.Time, bool) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}

// parseQueryEndTime is parseQueryTime for inclusive upper bounds. A plain
// date would parse to midnight and exclude that day's transactions, so it
// is pushed to the last instant of the day instead.
func parseQueryEndTime(value string) (time.Time, bool) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed.Add(24*time.Hour - time.Nanosecond), true
	}
	return time.Time{}, false
}
