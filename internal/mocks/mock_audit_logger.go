package mocks

import (
	"sync"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// MockAuditLogger implements domain.AuditLogger, recording events
type MockAuditLogger struct {
	mu     sync.Mutex
	events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// LogEvent records the event
func (m *MockAuditLogger) LogEvent(e *domain.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

// Events returns a copy of all recorded events
func (m *MockAuditLogger) Events() []*domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AuditEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Compile-time interface compliance verification
var _ domain.AuditLogger = (*MockAuditLogger)(nil)
