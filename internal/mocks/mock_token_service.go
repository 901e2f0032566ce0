package mocks

import (
	"time"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueFunc    func(user *domain.User) (string, time.Time, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue returns a static token unless overridden
func (m *MockTokenService) Issue(user *domain.User) (string, time.Time, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(user)
	}
	return "mock-token", time.Now().Add(time.Hour), nil
}

// Validate returns claims for the static token unless overridden
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	if token != "mock-token" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    1,
		Phone:     "15551234567",
		Verified:  true,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
