package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// MockUserRepository implements domain.UserRepository for testing. When
// no function overrides are set it behaves as an in-memory directory
// keyed by phone number.
type MockUserRepository struct {
	FindOrCreateFunc func(ctx context.Context, phone string) (*domain.User, error)
	FindByIDFunc     func(ctx context.Context, id uint) (*domain.User, error)
	FindByPhoneFunc  func(ctx context.Context, phone string) (*domain.User, error)
	MarkVerifiedFunc func(ctx context.Context, phone string, now time.Time) (*domain.User, error)

	mu     sync.Mutex
	nextID uint
	users  map[string]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		nextID: 1,
		users:  make(map[string]*domain.User),
	}
}

// FindOrCreate returns the stored user or creates one
func (m *MockUserRepository) FindOrCreate(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindOrCreateFunc != nil {
		return m.FindOrCreateFunc(ctx, phone)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[phone]; ok {
		return cloneUser(u), nil
	}
	u := &domain.User{
		ID:          m.nextID,
		PhoneNumber: phone,
		CreatedAt:   time.Now().UTC(),
	}
	m.nextID++
	m.users[phone] = u
	return cloneUser(u), nil
}

// FindByID returns the stored user by id
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindByPhone returns the stored user by phone
func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[phone]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

// MarkVerified flips the verified flag and stamps last login
func (m *MockUserRepository) MarkVerified(ctx context.Context, phone string, now time.Time) (*domain.User, error) {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, phone, now)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[phone]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsVerified = true
	t := now
	u.LastLogin = &t
	return cloneUser(u), nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.LastLogin != nil {
		t := *u.LastLogin
		c.LastLogin = &t
	}
	return &c
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
