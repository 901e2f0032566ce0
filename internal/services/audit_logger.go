package services

import (
	"log"
	"time"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// LogAuditLogger implements domain.AuditLogger on the standard logger
type LogAuditLogger struct{}

// NewAuditLogger creates a log-backed audit logger
func NewAuditLogger() domain.AuditLogger {
	return &LogAuditLogger{}
}

// LogEvent writes one audit line per event
func (l *LogAuditLogger) LogEvent(e *domain.AuditEvent) {
	ts := e.Timestamp.UTC().Format(time.RFC3339)
	if e.Success {
		log.Printf("%s: user_id=%d phone=%s timestamp=%s", e.EventType, e.UserID, e.Phone, ts)
		return
	}
	log.Printf("%s: user_id=%d phone=%s error=%q timestamp=%s", e.EventType, e.UserID, e.Phone, e.ErrorMsg, ts)
}
