package repositories

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// CodeGenerator produces a fixed-length all-digit OTP code. Injected so
// tests can supply a deterministic source.
type CodeGenerator func(length int) (string, error)

// CryptoRandCode draws each digit uniformly from crypto/rand.
func CryptoRandCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

// OTPStoreImpl implements domain.OTPStore using Redis. One key per phone
// number: issuing overwrites whatever was there, which is the
// single-active-OTP invariant enforced in one atomic step.
type OTPStoreImpl struct {
	client   *redis.Client
	prefix   string
	ttl      time.Duration
	length   int
	generate CodeGenerator
}

// otpRecord is the wire form stored under otp:<phone>.
type otpRecord struct {
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewOTPStore creates a Redis-backed OTP store. A nil generator falls
// back to CryptoRandCode.
func NewOTPStore(client *redis.Client, ttl time.Duration, length int, generate CodeGenerator) domain.OTPStore {
	if generate == nil {
		generate = CryptoRandCode
	}
	return &OTPStoreImpl{
		client:   client,
		prefix:   "otp:",
		ttl:      ttl,
		length:   length,
		generate: generate,
	}
}

func (s *OTPStoreImpl) key(phone string) string {
	return s.prefix + phone
}

// Issue implements domain.OTPStore
func (s *OTPStoreImpl) Issue(ctx context.Context, phone string) (*domain.OTPCode, error) {
	code, err := s.generate(s.length)
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	now := time.Now().UTC()
	rec := otpRecord{
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OTP record: %w", err)
	}

	// SET replaces any prior unconsumed code for this phone and carries
	// the TTL, so a superseded or expired code can never resurface.
	if err := s.client.Set(ctx, s.key(phone), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store OTP in Redis: %w", err)
	}

	return &domain.OTPCode{
		PhoneNumber: phone,
		Code:        rec.Code,
		CreatedAt:   rec.CreatedAt,
		ExpiresAt:   rec.ExpiresAt,
	}, nil
}

// Consume implements domain.OTPStore. The read-compare-delete runs under
// WATCH so two concurrent calls cannot both spend the same code: the
// loser's EXEC fails, retries, and finds the key gone.
//
// Wrong code, expired code and absent code all collapse into
// domain.ErrOTPNotFound so the caller cannot tell which check failed.
func (s *OTPStoreImpl) Consume(ctx context.Context, phone, code string, now time.Time) (*domain.OTPCode, error) {
	const maxRetries = 4
	key := s.key(phone)

	for i := 0; i < maxRetries; i++ {
		var matched *otpRecord

		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				return err
			}

			var rec otpRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal OTP record: %w", err)
			}

			if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
				return domain.ErrOTPNotFound
			}
			if !rec.ExpiresAt.After(now) {
				return domain.ErrOTPNotFound
			}

			matched = &rec
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, key)
				return nil
			})
			return err
		}, key)

		switch {
		case err == nil:
			return &domain.OTPCode{
				PhoneNumber: phone,
				Code:        matched.Code,
				CreatedAt:   matched.CreatedAt,
				ExpiresAt:   matched.ExpiresAt,
				IsUsed:      true,
			}, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, redis.Nil), errors.Is(err, domain.ErrOTPNotFound):
			return nil, domain.ErrOTPNotFound
		default:
			return nil, fmt.Errorf("otp store unavailable: %w", err)
		}
	}

	// Retries exhausted means the key kept changing under the watch.
	// The code's fate is unknown at this point, so report the contention
	// instead of guessing that the code was bad.
	return nil, fmt.Errorf("otp store contention: %w", redis.TxFailedErr)
}
