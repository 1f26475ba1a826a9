package utils

import (
	"hospital-billing-service/internal/pkg/constvars"
	"strings"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GeneratePaymentCode returns a fresh payment code with an optional prefix
// such as CASH- or COMP-.
func GeneratePaymentCode(prefix string) string {
	return prefix + uuid.NewString()
}

// AppendNote joins note onto an existing free-text description.
func AppendNote(description *string, note string) string {
	if description == nil || strings.TrimSpace(*description) == "" {
		return note
	}
	return *description + constvars.PaymentNoteSeparator + note
}
