package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// AuthServiceImpl implements domain.AuthService. It drives the per-phone
// state machine: unregistered numbers get a user row on first login,
// pending numbers hold exactly one live OTP, and a consumed OTP flips
// the verified flag for good.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	otpStore    domain.OTPStore
	gateway     domain.MessageGateway
	tokenSvc    domain.TokenService
	audit       domain.AuditLogger
	sendTimeout time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	otpStore domain.OTPStore,
	gateway domain.MessageGateway,
	tokenSvc domain.TokenService,
	audit domain.AuditLogger,
	sendTimeout time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		otpStore:    otpStore,
		gateway:     gateway,
		tokenSvc:    tokenSvc,
		audit:       audit,
		sendTimeout: sendTimeout,
	}
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, rawPhone string) error {
	phone := domain.NormalizePhone(rawPhone)
	if phone == "" {
		return domain.ErrPhoneRequired
	}

	user, err := s.userRepo.FindOrCreate(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to find or create user: %w", err)
	}

	otp, err := s.otpStore.Issue(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to issue otp: %w", err)
	}
	s.audit.LogEvent(domain.NewAuditEvent(domain.OTPRequestedEvent, phone).WithUser(user.ID))

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	if err := s.gateway.SendOTP(sendCtx, phone, otp.Code); err != nil {
		// The stored code is kept: a late-arriving message remains
		// verifiable until its TTL, and the next login supersedes it.
		s.audit.LogEvent(domain.NewAuditEvent(domain.OTPSendFailedEvent, phone).WithUser(user.ID).WithError(err))
		return fmt.Errorf("%w: %v", domain.ErrOTPDelivery, err)
	}

	return nil
}

// Verify implements domain.AuthService
func (s *AuthServiceImpl) Verify(ctx context.Context, rawPhone, rawCode string) (*domain.AuthResult, error) {
	phone := domain.NormalizePhone(rawPhone)
	code := strings.TrimSpace(rawCode)
	if phone == "" || code == "" {
		return nil, domain.ErrCodeRequired
	}

	now := time.Now().UTC()

	if _, err := s.otpStore.Consume(ctx, phone, code, now); err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			s.audit.LogEvent(domain.NewAuditEvent(domain.OTPVerifyFailedEvent, phone).WithError(err))
			return nil, domain.ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to consume otp: %w", err)
	}

	// Login always precedes verify, so a missing user here is an
	// invariant violation, not a client mistake.
	user, err := s.userRepo.MarkVerified(ctx, phone, now)
	if err != nil {
		return nil, err
	}
	s.audit.LogEvent(domain.NewAuditEvent(domain.PhoneVerifiedEvent, phone).WithUser(user.ID))

	token, expiresAt, err := s.tokenSvc.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	s.audit.LogEvent(domain.NewAuditEvent(domain.TokenIssuedEvent, phone).WithUser(user.ID))

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
