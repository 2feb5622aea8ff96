// Package identity resolves landlord identities without ever keeping
// personally identifying data.  A raw phone number is normalized to
// E.164 and run through a keyed one-way hash; only the hash is handed
// to the storage layer.  The same phone therefore always resolves to
// the same landlord row while the digits themselves never leave the
// request scope.
package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrInvalidPhone is returned when a raw phone number cannot be
// normalized to E.164.  Handlers should translate this into an HTTP
// 400 response.
var ErrInvalidPhone = errors.New("invalid phone format")

// E.164 length bounds for the digits following the plus sign.
const (
	minE164Digits = 8
	maxE164Digits = 15
)

// NormalizePhone converts a raw user-entered phone number into E.164
// form.  Three input shapes are accepted:
//
//   - already E.164: "+972501234567" (8–15 digits after the plus)
//   - national with a trunk prefix: "0501234567" – the leading zero is
//     replaced by the default country code
//   - bare subscriber digits: "501234567" – the default country code is
//     prepended
//
// Common separators (spaces, dashes, dots, parentheses) are stripped
// before classification.  Anything else fails with ErrInvalidPhone.
// defaultCC is the country code without a plus sign, e.g. "972".
func NormalizePhone(raw, defaultCC string) (string, error) {
	if !allDigits(defaultCC) || defaultCC == "" {
		return "", ErrInvalidPhone
	}
	s := stripSeparators(raw)
	if s == "" {
		return "", ErrInvalidPhone
	}
	if strings.HasPrefix(s, "+") {
		digits := s[1:]
		if !allDigits(digits) || len(digits) < minE164Digits || len(digits) > maxE164Digits || digits[0] == '0' {
			return "", ErrInvalidPhone
		}
		return "+" + digits, nil
	}
	if !allDigits(s) {
		return "", ErrInvalidPhone
	}
	digits := s
	if digits[0] == '0' {
		// National format: drop the trunk prefix, substitute the country code.
		digits = digits[1:]
	}
	if digits == "" || digits[0] == '0' {
		return "", ErrInvalidPhone
	}
	full := defaultCC + digits
	if len(full) < minE164Digits || len(full) > maxE164Digits {
		return "", ErrInvalidPhone
	}
	return "+" + full, nil
}

func stripSeparators(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch r {
		case ' ', '-', '.', '(', ')':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Hasher computes the keyed landlord hash.  The secret is a server-side
// configuration value (PHONE_HASH_SECRET); it is not derived from any
// stored data, so the hashes are useless without access to the running
// service's environment.
type Hasher struct {
	secret []byte
}

// NewHasher returns a Hasher keyed with the given secret.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

// Hash returns the lowercase hex HMAC-SHA256 of a normalized E.164
// number.  Deterministic: the same input always yields the same output,
// which is what makes landlord deduplication possible without storing
// the number.
func (h *Hasher) Hash(e164 string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(e164))
	return hex.EncodeToString(mac.Sum(nil))
}
