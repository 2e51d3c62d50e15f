package payment

import (
	"errors"
	"fmt"
)

// Error taxonomy for the intake pipeline. Handlers map these onto HTTP
// statuses; none of them ever carries cardholder data.
var (
	// ErrKeyUnavailable indicates the keystore failed to initialize.
	ErrKeyUnavailable = errors.New("encryption key unavailable")

	// ErrMalformedCiphertext indicates the submission body was not valid base64.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrDecryptionFailed indicates the ciphertext could not be decrypted
	// with the active private key (wrong key, corruption, padding mismatch).
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidPayloadFormat indicates the decrypted bytes were not a valid
	// JSON payment payload.
	ErrInvalidPayloadFormat = errors.New("invalid payload format")

	// ErrDuplicateTransactionID indicates an insert collided with an existing
	// transaction identifier. This is an ID-generation defect, not a caller
	// mistake.
	ErrDuplicateTransactionID = errors.New("duplicate transaction id")

	// ErrTransactionNotFound indicates no ledger record exists for the
	// requested identifier.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// ValidationError reports the first payload field that failed validation.
// Only the field name and a high-level reason are surfaced, never the value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}
