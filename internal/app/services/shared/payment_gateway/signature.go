package payment_gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"sort"
	"strings"
)

const upperHex = "0123456789ABCDEF"

func hmacSHA256Hex(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

func hmacSHA512Hex(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// signaturesEqual compares hex signatures in constant time, ignoring case.
func signaturesEqual(expected, received string) bool {
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(received))))
}

// formEncode applies application/x-www-form-urlencoded escaping the way
// VNPay's reference implementation does: letters, digits and ".-*_" stay
// as-is, a space becomes "+" and every other byte is percent-encoded.
func formEncode(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '.', c == '-', c == '*', c == '_':
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0F])
		}
	}
	return b.String()
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// buildRawSignature joins every field as key=value in key order, keeping
// empty values and without escaping.
func buildRawSignature(fields map[string]string) string {
	keys := sortedKeys(fields)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+fields[key])
	}
	return strings.Join(pairs, "&")
}

// buildVNPayHashData returns the string VNPay signs: non-empty params in key
// order with form-encoded values.
func buildVNPayHashData(params map[string]string) string {
	keys := sortedKeys(params)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		value := params[key]
		if value == "" {
			continue
		}
		pairs = append(pairs, key+"="+formEncode(value))
	}
	return strings.Join(pairs, "&")
}

// buildVNPayQuery is buildVNPayHashData with the keys encoded too.
func buildVNPayQuery(params map[string]string) string {
	keys := sortedKeys(params)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		value := params[key]
		if value == "" {
			continue
		}
		pairs = append(pairs, formEncode(key)+"="+formEncode(value))
	}
	return strings.Join(pairs, "&")
}
