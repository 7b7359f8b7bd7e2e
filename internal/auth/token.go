package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/user"
	"github.com/golang-jwt/jwt/v5"
)

const minSecretLength = 32

type TokenConfig struct {
	Secret     string
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey
	Issuer     string
	TTL        time.Duration
}

// JWTTokenService signs with RS256 when a key pair is configured and HS256
// otherwise. Tokens are stateless: there is no revocation list, so a token
// stays valid until it expires.
type JWTTokenService struct {
	method    jwt.SigningMethod
	signKey   interface{}
	verifyKey interface{}
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

type TokenOption func(*JWTTokenService)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(s *JWTTokenService) {
		s.now = now
	}
}

func NewJWTTokenService(cfg TokenConfig, opts ...TokenOption) (*JWTTokenService, error) {
	if cfg.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	s := &JWTTokenService{
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}

	switch {
	case cfg.PrivateKey != nil:
		pub := cfg.PublicKey
		if pub == nil {
			pub = &cfg.PrivateKey.PublicKey
		}
		s.method = jwt.SigningMethodRS256
		s.signKey = cfg.PrivateKey
		s.verifyKey = pub
	case len(cfg.Secret) >= minSecretLength:
		s.method = jwt.SigningMethodHS256
		s.signKey = []byte(cfg.Secret)
		s.verifyKey = []byte(cfg.Secret)
	default:
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue creates an access token for u with the username as subject.
func (s *JWTTokenService) Issue(u *user.User) (string, error) {
	now := s.now()
	claims := &Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	tokenString, err := token.SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the claims.
// Every failure is ErrInvalidToken; the jwt error is kept as the cause.
func (s *JWTTokenService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.verifyKey, nil
	}, opts...)
	if err != nil {
		return nil, internal.ErrInvalidToken.WithCause(err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

func (s *JWTTokenService) ExpiryOf(tokenString string) (time.Time, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}
