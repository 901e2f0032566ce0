package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
	"github.com/macksyx1/WhatsAppAPITestings/internal/mocks"
)

// createAuthServiceForTest wires an AuthService with mock dependencies,
// returning the mocks for inspection
func createAuthServiceForTest(t *testing.T) (domain.AuthService, *mocks.MockUserRepository, *mocks.MockOTPStore, *mocks.MockMessageGateway, *mocks.MockTokenService, *mocks.MockAuditLogger) {
	t.Helper()

	userRepo := mocks.NewMockUserRepository()
	otpStore := mocks.NewMockOTPStore()
	gateway := mocks.NewMockMessageGateway()
	tokenSvc := mocks.NewMockTokenService()
	audit := mocks.NewMockAuditLogger()

	svc := NewAuthService(userRepo, otpStore, gateway, tokenSvc, audit, 5*time.Second)
	return svc, userRepo, otpStore, gateway, tokenSvc, audit
}

func TestAuthServiceImpl_Login(t *testing.T) {
	tests := []struct {
		name          string
		rawPhone      string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockOTPStore, *mocks.MockMessageGateway)
		expectedError error
		validate      func(t *testing.T, userRepo *mocks.MockUserRepository, gateway *mocks.MockMessageGateway)
	}{
		{
			name:     "formatted phone is normalized and user created",
			rawPhone: "+1 (555) 123-4567",
			validate: func(t *testing.T, userRepo *mocks.MockUserRepository, gateway *mocks.MockMessageGateway) {
				sent := gateway.Sent()
				if len(sent) != 1 {
					t.Fatalf("expected 1 delivery, got %d", len(sent))
				}
				if sent[0].Phone != "15551234567" {
					t.Errorf("gateway called with %s, want 15551234567", sent[0].Phone)
				}
				if len(sent[0].Code) != 6 {
					t.Errorf("expected 6-digit code, got %q", sent[0].Code)
				}
				user, err := userRepo.FindByPhone(context.Background(), "15551234567")
				if err != nil {
					t.Fatalf("user should exist after login: %v", err)
				}
				if user.IsVerified {
					t.Error("new user must start unverified")
				}
			},
		},
		{
			name:          "empty phone",
			rawPhone:      "",
			expectedError: domain.ErrPhoneRequired,
		},
		{
			name:          "whitespace phone",
			rawPhone:      "   ",
			expectedError: domain.ErrPhoneRequired,
		},
		{
			name:          "phone with no digits",
			rawPhone:      "not-a-number",
			expectedError: domain.ErrPhoneRequired,
		},
		{
			name:     "gateway failure reports delivery error",
			rawPhone: "15551234567",
			setupMocks: func(userRepo *mocks.MockUserRepository, otpStore *mocks.MockOTPStore, gateway *mocks.MockMessageGateway) {
				gateway.SendOTPFunc = func(ctx context.Context, phone, code string) error {
					return fmt.Errorf("twilio unreachable")
				}
			},
			expectedError: domain.ErrOTPDelivery,
		},
		{
			name:     "store failure propagates",
			rawPhone: "15551234567",
			setupMocks: func(userRepo *mocks.MockUserRepository, otpStore *mocks.MockOTPStore, gateway *mocks.MockMessageGateway) {
				otpStore.IssueFunc = func(ctx context.Context, phone string) (*domain.OTPCode, error) {
					return nil, fmt.Errorf("redis down")
				}
			},
			validate: func(t *testing.T, userRepo *mocks.MockUserRepository, gateway *mocks.MockMessageGateway) {
				if len(gateway.Sent()) != 0 {
					t.Error("no delivery should happen when issuing fails")
				}
			},
			expectedError: nil, // checked separately: non-nil, but no sentinel
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, otpStore, gateway, _, _ := createAuthServiceForTest(t)
			if tt.setupMocks != nil {
				tt.setupMocks(userRepo, otpStore, gateway)
			}

			err := svc.Login(context.Background(), tt.rawPhone)

			if tt.name == "store failure propagates" {
				if err == nil {
					t.Fatal("expected error when store is down")
				}
			} else if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("Login() error = %v, want %v", err, tt.expectedError)
				}
			} else if err != nil {
				t.Fatalf("Login() error = %v", err)
			}

			if tt.validate != nil {
				tt.validate(t, userRepo, gateway)
			}
		})
	}
}

func TestAuthServiceImpl_Login_DeliveryFailureKeepsOTP(t *testing.T) {
	svc, _, otpStore, gateway, _, _ := createAuthServiceForTest(t)
	gateway.SendOTPFunc = func(ctx context.Context, phone, code string) error {
		return fmt.Errorf("twilio unreachable")
	}

	err := svc.Login(context.Background(), "15551234567")
	if !errors.Is(err, domain.ErrOTPDelivery) {
		t.Fatalf("Login() error = %v, want ErrOTPDelivery", err)
	}

	// The code stays consumable until TTL even though delivery failed.
	otp, err := otpStore.Consume(context.Background(), "15551234567", "123456", time.Now().UTC())
	if err != nil {
		t.Fatalf("Consume() error = %v, want issued code to survive delivery failure", err)
	}
	if !otp.IsUsed {
		t.Error("consumed entry should be marked used")
	}
}

func TestAuthServiceImpl_Login_DeliveryTimeout(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	otpStore := mocks.NewMockOTPStore()
	gateway := mocks.NewMockMessageGateway()
	svc := NewAuthService(userRepo, otpStore, gateway, mocks.NewMockTokenService(), mocks.NewMockAuditLogger(), 50*time.Millisecond)

	// A gateway that never answers on its own; only the deadline on the
	// send context gets Login unstuck.
	gateway.SendOTPFunc = func(ctx context.Context, phone, code string) error {
		<-ctx.Done()
		return ctx.Err()
	}

	start := time.Now()
	err := svc.Login(context.Background(), "15551234567")
	elapsed := time.Since(start)

	if !errors.Is(err, domain.ErrOTPDelivery) {
		t.Fatalf("Login() error = %v, want ErrOTPDelivery", err)
	}
	if elapsed > time.Second {
		t.Errorf("Login() took %v, want a return near the 50ms send timeout", elapsed)
	}

	// The issued code still stands, same as any other delivery failure.
	if _, err := otpStore.Consume(context.Background(), "15551234567", "123456", time.Now().UTC()); err != nil {
		t.Errorf("Consume() error = %v, want issued code to survive the timeout", err)
	}
}

func TestAuthServiceImpl_Verify(t *testing.T) {
	tests := []struct {
		name          string
		login         bool // run Login first
		rawPhone      string
		rawCode       string
		expectedError error
	}{
		{
			name:     "issued code verifies",
			login:    true,
			rawPhone: "15551234567",
			rawCode:  "123456",
		},
		{
			name:     "code is trimmed before matching",
			login:    true,
			rawPhone: "15551234567",
			rawCode:  "  123456  ",
		},
		{
			name:     "phone is normalized before matching",
			login:    true,
			rawPhone: "+1 (555) 123-4567",
			rawCode:  "123456",
		},
		{
			name:          "never issued code",
			login:         true,
			rawPhone:      "15551234567",
			rawCode:       "000000",
			expectedError: domain.ErrOTPNotFound,
		},
		{
			name:          "verify without prior login",
			login:         false,
			rawPhone:      "15551234567",
			rawCode:       "123456",
			expectedError: domain.ErrOTPNotFound,
		},
		{
			name:          "empty phone",
			login:         true,
			rawPhone:      "",
			rawCode:       "123456",
			expectedError: domain.ErrCodeRequired,
		},
		{
			name:          "empty code",
			login:         true,
			rawPhone:      "15551234567",
			rawCode:       "   ",
			expectedError: domain.ErrCodeRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, _, _, _, _ := createAuthServiceForTest(t)
			if tt.login {
				if err := svc.Login(context.Background(), "15551234567"); err != nil {
					t.Fatalf("Login() error = %v", err)
				}
			}

			result, err := svc.Verify(context.Background(), tt.rawPhone, tt.rawCode)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("Verify() error = %v, want %v", err, tt.expectedError)
				}
				// A failed verify must leave the verified flag alone.
				if tt.login {
					user, uerr := userRepo.FindByPhone(context.Background(), "15551234567")
					if uerr == nil && user.IsVerified {
						t.Error("failed verify must not set verified flag")
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if result.Token == "" {
				t.Error("expected a token")
			}
			if result.ExpiresAt.Before(time.Now()) {
				t.Error("token expiry should be in the future")
			}
			if !result.User.IsVerified {
				t.Error("user should be verified after successful verify")
			}
			if result.User.LastLogin == nil {
				t.Error("last login should be stamped")
			}
		})
	}
}

func TestAuthServiceImpl_Verify_ConsumeOnce(t *testing.T) {
	svc, _, _, _, _, _ := createAuthServiceForTest(t)
	ctx := context.Background()

	if err := svc.Login(ctx, "15551234567"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := svc.Verify(ctx, "15551234567", "123456"); err != nil {
		t.Fatalf("first Verify() error = %v", err)
	}

	if _, err := svc.Verify(ctx, "15551234567", "123456"); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Fatalf("second Verify() error = %v, want ErrOTPNotFound", err)
	}
}

func TestAuthServiceImpl_Verify_KeepsVerifiedAcrossCycles(t *testing.T) {
	svc, userRepo, _, _, _, _ := createAuthServiceForTest(t)
	ctx := context.Background()

	// First full cycle.
	if err := svc.Login(ctx, "15551234567"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := svc.Verify(ctx, "15551234567", "123456"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	// Re-entering login starts a fresh OTP cycle but must not reset the
	// verified flag.
	if err := svc.Login(ctx, "15551234567"); err != nil {
		t.Fatalf("second Login() error = %v", err)
	}
	user, err := userRepo.FindByPhone(ctx, "15551234567")
	if err != nil {
		t.Fatalf("FindByPhone() error = %v", err)
	}
	if !user.IsVerified {
		t.Error("verified flag must persist across new OTP cycles")
	}
}

func TestAuthServiceImpl_AuditTrail(t *testing.T) {
	svc, _, _, _, _, audit := createAuthServiceForTest(t)
	ctx := context.Background()

	if err := svc.Login(ctx, "15551234567"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := svc.Verify(ctx, "15551234567", "123456"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	var types []domain.AuditEventType
	for _, e := range audit.Events() {
		types = append(types, e.EventType)
	}

	expected := []domain.AuditEventType{
		domain.OTPRequestedEvent,
		domain.PhoneVerifiedEvent,
		domain.TokenIssuedEvent,
	}
	if len(types) != len(expected) {
		t.Fatalf("expected %d audit events, got %d (%v)", len(expected), len(types), types)
	}
	for i := range expected {
		if types[i] != expected[i] {
			t.Errorf("audit event %d = %s, want %s", i, types[i], expected[i])
		}
	}
}
