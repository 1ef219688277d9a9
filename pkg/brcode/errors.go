package brcode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned for zero, negative or non-finite amounts.
	ErrInvalidAmount = errors.New("brcode: amount must be positive")
	// ErrInvalidTransactionID is returned when a transaction id cannot be
	// carried in the additional data template.
	ErrInvalidTransactionID = errors.New("brcode: invalid transaction id")
	// ErrInvalidMerchant is returned by NewBuilder for an incomplete profile.
	ErrInvalidMerchant = errors.New("brcode: invalid merchant profile")
	// ErrMalformed is returned by Decode when the payload is not valid TLV.
	ErrMalformed = errors.New("brcode: malformed payload")
	// ErrChecksumMismatch is returned by Decode when the CRC does not match.
	ErrChecksumMismatch = errors.New("brcode: checksum mismatch")
)

// FieldError reports a value that cannot be carried by its field: too long
// for the length budget, or holding non-ASCII characters.
type FieldError struct {
	ID       string
	Name     string
	Length   int
	Max      int
	NonASCII bool
}

func (e *FieldError) Error() string {
	if e.NonASCII {
		return fmt.Sprintf("brcode: field %s (%s) contains non-ASCII characters", e.ID, e.Name)
	}
	return fmt.Sprintf("brcode: field %s (%s) has length %d, max %d", e.ID, e.Name, e.Length, e.Max)
}
