package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	audience  string
	ttl       time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey, issuer, audience string, ttl time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		audience:  audience,
		ttl:       ttl,
	}
}

// Issue implements domain.TokenService
func (j *JWTServiceImpl) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.ttl)

	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"phone":    user.PhoneNumber,
		"verified": user.IsVerified,
		"iss":      j.issuer,
		"aud":      j.audience,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Validate implements domain.TokenService. Signature, issuer, audience
// and expiry are all checked with zero clock-skew tolerance, and every
// failure collapses into domain.ErrTokenInvalid.
func (j *JWTServiceImpl) Validate(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (interface{}, error) {
			return j.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	phone, ok := claims["phone"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	verified, ok := claims["verified"].(bool)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.TokenClaims{
		UserID:    uint(userID),
		Phone:     phone,
		Verified:  verified,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
