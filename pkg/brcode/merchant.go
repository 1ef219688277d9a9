package brcode

import (
	"fmt"
	"unicode/utf8"
)

// Merchant is the receiving account every code is issued for. It is loaded
// once at startup and never mutated.
type Merchant struct {
	PixKey string
	Name   string
	City   string
}

// Validate checks that every field is present and ASCII, fits its EMV length
// budget and that the key classifies as a PIX key.
func (m Merchant) Validate() error {
	switch {
	case m.PixKey == "":
		return fmt.Errorf("%w: pix key is required", ErrInvalidMerchant)
	case m.Name == "":
		return fmt.Errorf("%w: merchant name is required", ErrInvalidMerchant)
	case m.City == "":
		return fmt.Errorf("%w: merchant city is required", ErrInvalidMerchant)
	case !IsASCII(m.PixKey) || !IsASCII(m.Name) || !IsASCII(m.City):
		return fmt.Errorf("%w: key, name and city must be ASCII", ErrInvalidMerchant)
	case len(m.PixKey) > MaxPixKeyLength:
		return fmt.Errorf("%w: pix key longer than %d", ErrInvalidMerchant, MaxPixKeyLength)
	case len(m.Name) > MaxMerchantNameLength:
		return fmt.Errorf("%w: merchant name longer than %d", ErrInvalidMerchant, MaxMerchantNameLength)
	case len(m.City) > MaxMerchantCityLength:
		return fmt.Errorf("%w: merchant city longer than %d", ErrInvalidMerchant, MaxMerchantCityLength)
	case !IsValidKey(m.PixKey):
		return fmt.Errorf("%w: %q is not a valid pix key", ErrInvalidMerchant, m.PixKey)
	}
	return nil
}

// Truncate shortens s to at most max bytes without splitting a UTF-8 sequence.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := 0
	for i, r := range s {
		size := utf8.RuneLen(r)
		if size < 0 {
			size = 1
		}
		if i+size > max {
			break
		}
		cut = i + size
	}
	return s[:cut]
}
