package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// MockOTPStore implements domain.OTPStore for testing. The default
// behavior is an in-memory single-code-per-phone store with the same
// invariants as the Redis implementation.
type MockOTPStore struct {
	IssueFunc   func(ctx context.Context, phone string) (*domain.OTPCode, error)
	ConsumeFunc func(ctx context.Context, phone, code string, now time.Time) (*domain.OTPCode, error)

	Code string // code used by the default Issue behavior
	TTL  time.Duration

	mu    sync.Mutex
	codes map[string]*domain.OTPCode
}

// NewMockOTPStore creates a new MockOTPStore with default behaviors
func NewMockOTPStore() *MockOTPStore {
	return &MockOTPStore{
		Code:  "123456",
		TTL:   10 * time.Minute,
		codes: make(map[string]*domain.OTPCode),
	}
}

// Issue stores a fixed code for the phone
func (m *MockOTPStore) Issue(ctx context.Context, phone string) (*domain.OTPCode, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, phone)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	otp := &domain.OTPCode{
		PhoneNumber: phone,
		Code:        m.Code,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.TTL),
	}
	m.codes[phone] = otp
	return otp, nil
}

// Consume spends the stored code if it matches and is live
func (m *MockOTPStore) Consume(ctx context.Context, phone, code string, now time.Time) (*domain.OTPCode, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, phone, code, now)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	otp, ok := m.codes[phone]
	if !ok || otp.Code != code || !otp.Live(now) {
		return nil, domain.ErrOTPNotFound
	}
	delete(m.codes, phone)
	otp.IsUsed = true
	return otp, nil
}

// Compile-time interface compliance verification
var _ domain.OTPStore = (*MockOTPStore)(nil)
