package payment

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
	nonDigits     = regexp.MustCompile(`\D`)
)

func stripNonDigits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// Luhn reports whether a digit string passes the Luhn checksum. The input
// must already be digits only.
func Luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidateFullName requires a non-empty name after trimming whitespace.
func ValidateFullName(name string) *ValidationError {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "fullName", Reason: "must not be empty"}
	}
	return nil
}

// ValidateEmail requires a minimal local@domain.tld shape.
func ValidateEmail(email string) *ValidationError {
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	return nil
}

// ValidateCardNumber strips non-digits, requires 13-19 digits and a valid
// Luhn checksum.
func ValidateCardNumber(cardNumber string) *ValidationError {
	digits := stripNonDigits(cardNumber)
	if len(digits) < 13 || len(digits) > 19 {
		return &ValidationError{Field: "cardNumber", Reason: "must be 13-19 digits"}
	}
	if !Luhn(digits) {
		return &ValidationError{Field: "cardNumber", Reason: "failed checksum"}
	}
	return nil
}

// ValidateExpiry requires MM/YY with a month in [1,12] that is not strictly
// before the calendar month of now.
func ValidateExpiry(expiry string, now time.Time) *ValidationError {
	// Atoi accepts sign characters, so the shape check must be digit-strict.
	if !expiryPattern.MatchString(expiry) {
		return &ValidationError{Field: "expiry", Reason: "must be in MM/YY format"}
	}

	month, _ := strconv.Atoi(expiry[:2])
	if month < 1 || month > 12 {
		return &ValidationError{Field: "expiry", Reason: "invalid month"}
	}

	year, _ := strconv.Atoi(expiry[3:])
	year += 2000

	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return &ValidationError{Field: "expiry", Reason: "card has expired"}
	}
	return nil
}

// ValidateCVV requires 3 or 4 digits.
func ValidateCVV(cvv string) *ValidationError {
	if !cvvPattern.MatchString(cvv) {
		return &ValidationError{Field: "cvv", Reason: "must be 3 or 4 digits"}
	}
	return nil
}

// ValidateAmount requires a finite amount greater than zero.
func ValidateAmount(amount float64) *ValidationError {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	return nil
}

// Validate runs every field check in a fixed order and returns the first
// failure, or nil when the payload is acceptable.
func (p *PaymentPayload) Validate(now time.Time) *ValidationError {
	if err := ValidateFullName(p.FullName); err != nil {
		return err
	}
	if err := ValidateEmail(p.Email); err != nil {
		return err
	}
	if err := ValidateCardNumber(p.CardNumber); err != nil {
		return err
	}
	if err := ValidateExpiry(p.Expiry, now); err != nil {
		return err
	}
	if err := ValidateCVV(p.CVV); err != nil {
		return err
	}
	if err := ValidateAmount(p.Amount); err != nil {
		return err
	}
	return nil
}
