//go:build unit
// +build unit

package payment

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuhn(t *testing.T) {
	tests := []struct {
		digits string
		valid  bool
	}{
		{"4111111111111111", true},
		{"4111111111111112", false},
		{"5500005555555559", true},
		{"378282246310005", true},
		{"0000000000000000", true},
		{"1234567812345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			assert.Equal(t, tt.valid, Luhn(tt.digits))
		})
	}
}

func TestValidateCardNumber(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		shouldErr  bool
	}{
		{"valid visa", "4111111111111111", false},
		{"valid with spaces", "4111 1111 1111 1111", false},
		{"valid with dashes", "4111-1111-1111-1111", false},
		{"checksum failure", "4111111111111112", true},
		{"too short", "411111111111", true},
		{"too long", "41111111111111111111", true},
		{"letters only", "not-a-card-number", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCardNumber(tt.cardNumber)
			if tt.shouldErr {
				require.NotNil(t, err)
				assert.Equal(t, "cardNumber", err.Field)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidateExpiry(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiry    string
		shouldErr bool
	}{
		{"past year", "01/20", true},
		{"current month", "08/26", false},
		{"previous month", "07/26", true},
		{"future", "12/30", false},
		{"month 13", "13/30", true},
		{"month 00", "00/30", true},
		{"wrong separator", "12-30", true},
		{"single digit month", "1/30", true},
		{"signed month", "+9/30", true},
		{"signed year", "12/+5", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExpiry(tt.expiry, now)
			if tt.shouldErr {
				require.NotNil(t, err)
				assert.Equal(t, "expiry", err.Field)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidateExpiry_CurrentMonthBoundary(t *testing.T) {
	now := time.Now().UTC()
	current := fmt.Sprintf("%02d/%02d", int(now.Month()), now.Year()%100)
	assert.Nil(t, ValidateExpiry(current, now))
}

func TestValidateCVV(t *testing.T) {
	assert.Nil(t, ValidateCVV("123"))
	assert.Nil(t, ValidateCVV("1234"))
	assert.NotNil(t, ValidateCVV("12"))
	assert.NotNil(t, ValidateCVV("12345"))
	assert.NotNil(t, ValidateCVV("12a"))
	assert.NotNil(t, ValidateCVV(""))
}

func TestValidateEmail(t *testing.T) {
	assert.Nil(t, ValidateEmail("jane@example.com"))
	assert.Nil(t, ValidateEmail("a@b.co"))
	assert.NotNil(t, ValidateEmail("no-at-sign"))
	assert.NotNil(t, ValidateEmail("missing@tld"))
	assert.NotNil(t, ValidateEmail("spaces in@example.com"))
	assert.NotNil(t, ValidateEmail(""))
}

func TestValidateFullName(t *testing.T) {
	assert.Nil(t, ValidateFullName("Jane Doe"))
	assert.NotNil(t, ValidateFullName(""))
	assert.NotNil(t, ValidateFullName("   "))
}

func TestValidateAmount(t *testing.T) {
	assert.Nil(t, ValidateAmount(99.50))
	assert.Nil(t, ValidateAmount(0.01))
	assert.NotNil(t, ValidateAmount(0))
	assert.NotNil(t, ValidateAmount(-5))
	assert.NotNil(t, ValidateAmount(math.NaN()))
	assert.NotNil(t, ValidateAmount(math.Inf(1)))
}

func TestPaymentPayload_Validate_Order(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

	valid := PaymentPayload{
		CardNumber: "4111111111111111",
		Expiry:     "12/30",
		CVV:        "123",
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Amount:     99.50,
	}
	assert.Nil(t, valid.Validate(now))

	// The first failing field in check order is the one reported.
	multipleBad := valid
	multipleBad.FullName = ""
	multipleBad.CVV = "x"
	err := multipleBad.Validate(now)
	require.NotNil(t, err)
	assert.Equal(t, "fullName", err.Field)

	badCVVOnly := valid
	badCVVOnly.CVV = "x"
	err = badCVVOnly.Validate(now)
	require.NotNil(t, err)
	assert.Equal(t, "cvv", err.Field)
}

func TestTransaction_MaskedCardNumber(t *testing.T) {
	tx := Transaction{CardNumber: "4111111111111111"}
	assert.Equal(t, "****1111", tx.MaskedCardNumber())

	spaced := Transaction{CardNumber: "4111 1111 1111 1111"}
	assert.Equal(t, "****1111", spaced.MaskedCardNumber())

	short := Transaction{CardNumber: "1234"}
	assert.Equal(t, "1234", short.MaskedCardNumber())
}
