package brcode

import (
	"regexp"
	"strings"
)

// KeyType is the class of a PIX key.
type KeyType string

const (
	KeyTypeEmail    KeyType = "EMAIL"
	KeyTypePhone    KeyType = "PHONE"
	KeyTypeDocument KeyType = "DOCUMENT" // CPF (11 digits) or CNPJ (14 digits)
	KeyTypeRandom   KeyType = "RANDOM"   // EVP, UUID form
	KeyTypeInvalid  KeyType = "INVALID"
)

var (
	emailKeyRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneKeyRe  = regexp.MustCompile(`^\+55\d{10,11}$`)
	randomKeyRe = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// Classify returns the first matching key class, checked in the order email,
// phone, document, random. The key is never normalised.
func Classify(key string) KeyType {
	switch {
	case key == "":
		return KeyTypeInvalid
	case emailKeyRe.MatchString(key):
		return KeyTypeEmail
	case phoneKeyRe.MatchString(key):
		return KeyTypePhone
	case isDocument(key):
		return KeyTypeDocument
	case randomKeyRe.MatchString(key):
		return KeyTypeRandom
	}
	return KeyTypeInvalid
}

// IsValidKey reports whether key matches any PIX key class.
func IsValidKey(key string) bool {
	return Classify(key) != KeyTypeInvalid
}

func isDocument(key string) bool {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, key)
	return len(digits) == 11 || len(digits) == 14
}
