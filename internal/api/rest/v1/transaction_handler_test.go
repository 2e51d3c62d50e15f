//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payment_intake_service/internal/domain/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func sampleTransaction() *payment.Transaction {
	return &payment.Transaction{
		ID:             "TXN-abc-123",
		Timestamp:      time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Amount:         99.50,
		CardholderName: "Jane Doe",
		CardNumber:     "4111111111111111",
		Expiry:         "12/30",
		CVV:            "123",
		Email:          "jane@example.com",
	}
}

func TestTransactionHandler_List_Success(t *testing.T) {
	mockQueryService := new(MockTransactionQueryService)
	mockStatsService := new(MockTransactionStatsService)

	handler := NewTransactionHandler(mockQueryService, mockStatsService)

	mockQueryService.
		On("List", mock.Anything, mock.Anything).
		Return([]*payment.Transaction{sampleTransaction()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/transactions", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TXN-abc-123")
	assert.Contains(t, w.Body.String(), `"count":1`)
	mockQueryService.AssertExpectations(t)
}

func TestTransactionHandler_List_MasksCardData(t *testing.T) {
	mockQueryService := new(MockTransactionQueryService)
	mockStatsService := new(MockTransactionStatsService)

	handler := NewTransactionHandler(mockQueryService, mockStatsService)

	mockQueryService.
		On("List", mock.Anything, mock.Anything).
		Return([]*payment.Transaction{sampleTransaction()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/transactions", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "****1111")
	assert.NotContains(t, w.Body.String(), "4111111111111111")
	assert.NotContains(t, w.Body.String(), `"cvv"`)
}

func TestTransactionHandler_List_ParsesQueryParameters(t *testing.T) {
	mockQueryService := new(MockTransactionQueryService)
	mockStatsService := new(MockTransactionStatsService)

	handler := NewTransactionHandler(mockQueryService, mockStatsService)

	mockQueryService.
		On("List", mock.Anything, mock.MatchedBy(func(q *payment.TransactionQuery) bool {
			return q.StartDate != nil && q.StartDate.Year() == 2026 &&
				q.MinAmount != nil && *q.MinAmount == 10.5 &&
				q.Limit == 25 && q.Offset == 50
		})).
		Return([]*payment.Transaction{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/transactions?startDate=2026-01-01&minAmount=10.5&limit=25&offset=50", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockQueryService.AssertExpectations(t)
}

func TestTransactionHandler_List_DateOnlyEndDateCoversWholeDay(t *testing.T) {
	mockQueryService := new(MockTransactionQueryService)
	mockStatsService := new(MockTransactionStatsService)

	handler := NewTransactionHandler(mockQueryService, mockStatsService)

	mockQueryService.
		On("List", mock.Anything, mock.MatchedBy(func(q *payment.TransactionQuery) bool {
			if q.EndDate == nil {
				return false
			}
			return q.EndDate.Day() == 15 && q.EndDate.Hour() == 23 && q.EndDate.Minute() == 59
		})).
		Return([]*payment.Transaction{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/transactions?endDate=2026-03-15", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockQueryService.AssertExpectations(t)
}

func TestTransactionHandler_List_IgnoresUnparsableParameters(t *testing.T) {
	mockQueryService := new(MockTransactionQueryService)
	mockStatsService := new(MockTransactionStatsService)

	handler := NewTransactionHandler(mockQueryService, mockStatsService)

	mockQueryService.
		On("List", mock.Anything, mock.MatchedBy(func(q *payment.TransactionQuery) bool {
			return q.StartDate == nil && q.MinAmount == nil && q.Limit == 100
		})).
		Return([]*payment.Transaction{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/transactions?startDate=yesterday&minAmount=lots&limit=-3", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockQueryService.AssertExpectations(t)
}

func TestTransactionHandler_GetByID_Success(t *testing.T) {
	mockQueryService := new(MockTransactionQueryService)
	mockStatsService := new(MockTransactionStatsService)

	handler := NewTransactionHandler(mockQueryService, mockStatsService)

	mockQueryService.
		On("GetByID", mock.Anything, "TXN-abc-123").
		Return(sampleTransaction(), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/transactions/TXN-abc-123", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: "TXN-abc-123"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TXN-abc-123")
	assert.Contains(t, w.Body.String(), "****1111")
	mockQueryService.AssertExpectations(t)
}

func TestTransactionHandler_GetByID_NotFound(t *testing.T) {
	mockQueryService := new(MockTransactionQueryService)
	mockStatsService := new(MockTransactionStatsService)

	handler := NewTransactionHandler(mockQueryService, mockStatsService)

	mockQueryService.
		On("GetByID", mock.Anything, "TXN-missing").
		Return(nil, payment.ErrTransactionNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/transactions/TXN-missing", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: "TXN-missing"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "transaction not found")
	mockQueryService.AssertExpectations(t)
}

func TestTransactionHandler_Stats_Success(t *testing.T) {
	mockQueryService := new(MockTransactionQueryService)
	mockStatsService := new(MockTransactionStatsService)

	handler := NewTransactionHandler(mockQueryService, mockStatsService)

	mockStatsService.
		On("Stats", mock.Anything).
		Return(&payment.TransactionStats{
			TotalCount:    3,
			TotalAmount:   360,
			AverageAmount: 120,
			DailyStats: []payment.DailyStat{
				{Date: "2026-03-14", Count: 2, TotalAmount: 300, AvgAmount: 150},
				{Date: "2026-03-13", Count: 1, TotalAmount: 60, AvgAmount: 60},
			},
		}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/admin/stats", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalCount":3`)
	assert.Contains(t, w.Body.String(), "2026-03-14")
	mockStatsService.AssertExpectations(t)
}

func TestTransactionHandler_Stats_Error(t *testing.T) {
	mockQueryService := new(MockTransactionQueryService)
	mockStatsService := new(MockTransactionStatsService)

	handler := NewTransactionHandler(mockQueryService, mockStatsService)

	mockStatsService.
		On("Stats", mock.Anything).
		Return(nil, assert.AnError)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/admin/stats", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Stats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockStatsService.AssertExpectations(t)
}
