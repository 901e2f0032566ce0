package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	OTPRequestedEvent    AuditEventType = "OTP_REQUESTED"
	OTPSendFailedEvent   AuditEventType = "OTP_SEND_FAILED"
	OTPVerifiedEvent     AuditEventType = "OTP_VERIFIED"
	OTPVerifyFailedEvent AuditEventType = "OTP_VERIFY_FAILED"
	UserCreatedEvent     AuditEventType = "USER_CREATED"
	PhoneVerifiedEvent   AuditEventType = "PHONE_VERIFIED"
	TokenIssuedEvent     AuditEventType = "TOKEN_ISSUED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	UserID    uint           `json:"user_id,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Success   bool           `json:"success"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
}

// AuditLogger defines operations for audit logging
type AuditLogger interface {
	LogEvent(event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, phone string) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Phone:     phone,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithUser sets the user id field
func (e *AuditEvent) WithUser(id uint) *AuditEvent {
	e.UserID = id
	return e
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}
