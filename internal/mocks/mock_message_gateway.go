package mocks

import (
	"context"
	"sync"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// SentMessage records one delivery attempt seen by the mock gateway
type SentMessage struct {
	Phone string
	Code  string
}

// MockMessageGateway implements domain.MessageGateway for testing
type MockMessageGateway struct {
	SendOTPFunc func(ctx context.Context, phone, code string) error

	mu   sync.Mutex
	sent []SentMessage
}

// NewMockMessageGateway creates a new MockMessageGateway with default behaviors
func NewMockMessageGateway() *MockMessageGateway {
	return &MockMessageGateway{}
}

// SendOTP records the message; default behavior is success
func (m *MockMessageGateway) SendOTP(ctx context.Context, phone, code string) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentMessage{Phone: phone, Code: code})
	m.mu.Unlock()

	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, phone, code)
	}
	return nil
}

// Sent returns a copy of all recorded deliveries
func (m *MockMessageGateway) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

// Compile-time interface compliance verification
var _ domain.MessageGateway = (*MockMessageGateway)(nil)
