package mocks

import (
	"context"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	LoginFunc  func(ctx context.Context, rawPhone string) error
	VerifyFunc func(ctx context.Context, rawPhone, rawCode string) (*domain.AuthResult, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login succeeds unless overridden
func (m *MockAuthService) Login(ctx context.Context, rawPhone string) error {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, rawPhone)
	}
	return nil
}

// Verify fails with ErrOTPNotFound unless overridden
func (m *MockAuthService) Verify(ctx context.Context, rawPhone, rawCode string) (*domain.AuthResult, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, rawPhone, rawCode)
	}
	return nil, domain.ErrOTPNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
