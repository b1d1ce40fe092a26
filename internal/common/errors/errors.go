// Package errors provides standardized error handling at the service
// edges (transport, notification, storage). The decision engine itself is
// total and never produces errors; everything here belongs to the I/O
// boundary around it.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Configuration (fatal at startup).
	ErrCodePricingDocumentInvalid ErrorCode = "PRICING_DOCUMENT_INVALID"
	ErrCodePricingBaseMissing     ErrorCode = "PRICING_BASE_MISSING"
	ErrCodeConfigInvalid          ErrorCode = "CONFIG_INVALID"

	// Transport.
	ErrCodeSignatureInvalid  ErrorCode = "SIGNATURE_INVALID"
	ErrCodeEventMalformed    ErrorCode = "EVENT_MALFORMED"
	ErrCodeReplySendFailed   ErrorCode = "REPLY_SEND_FAILED"
	ErrCodePushSendFailed    ErrorCode = "PUSH_SEND_FAILED"

	// Notification channels.
	ErrCodeEmailSendFailed ErrorCode = "EMAIL_SEND_FAILED"
	ErrCodeSMSSendFailed   ErrorCode = "SMS_SEND_FAILED"
	ErrCodeCRMLeadFailed   ErrorCode = "CRM_LEAD_FAILED"

	// Storage.
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeAuditWriteFailed         ErrorCode = "AUDIT_WRITE_FAILED"
	ErrCodeDedupCheckFailed         ErrorCode = "DEDUP_CHECK_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewPricingDocumentError marks a pricing table that failed validation.
// Always fatal: the process must refuse to start.
func NewPricingDocumentError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePricingDocumentInvalid,
		Message:   "Pricing document failed validation",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSignatureError marks a webhook request whose signature did not verify.
func NewSignatureError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSignatureInvalid,
		Message:   "Webhook signature verification failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReplySendError wraps a failed reply delivery.
func NewReplySendError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReplySendFailed,
		Message:   "Reply delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationError wraps a failed admin-notification channel, tagged
// with the channel name.
func NewNotificationError(channel string, err error) *StandardError {
	code := ErrCodeEmailSendFailed
	switch channel {
	case "sms":
		code = ErrCodeSMSSendFailed
	case "push":
		code = ErrCodePushSendFailed
	case "crm":
		code = ErrCodeCRMLeadFailed
	}
	return &StandardError{
		Code:      code,
		Message:   fmt.Sprintf("Admin notification via %s failed", channel),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"channel": channel},
		Timestamp: time.Now().UTC(),
	}
}

// NewAuditWriteError wraps a failed audit insert.
func NewAuditWriteError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuditWriteFailed,
		Message:   "Audit record insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns how many delivery attempts a code deserves.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeAuditWriteFailed,
		ErrCodeEmailSendFailed,
		ErrCodeSMSSendFailed,
		ErrCodePushSendFailed,
		ErrCodeReplySendFailed:
		return 3

	case ErrCodeCRMLeadFailed,
		ErrCodeDedupCheckFailed:
		return 1

	default:
		return 0 // Validation and signature errors: no retry.
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PRICING") || strings.Contains(codeStr, "CONFIG"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "SIGNATURE") || strings.Contains(codeStr, "EVENT") ||
		strings.Contains(codeStr, "REPLY") || strings.Contains(codeStr, "PUSH"):
		return "TRANSPORT"
	case strings.Contains(codeStr, "EMAIL") || strings.Contains(codeStr, "SMS") ||
		strings.Contains(codeStr, "CRM"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "AUDIT") ||
		strings.Contains(codeStr, "DEDUP"):
		return "STORAGE"
	default:
		return "OTHER"
	}
}
