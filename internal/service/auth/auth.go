package service_auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/humanbelnik/planpoker/core/internal/model"
)

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidToken = errors.New("invalid or expired token")
)

const activeSession = "active"

//go:generate mockery --name=SessionCache --output=./mocks/session_cache --filename=session_cache.go
type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Touch(key string, ttl time.Duration) (bool, error)
	Delete(key string) error
}

// AccountClaims identify an account holder. Sub is the account id, AdminOf
// the groups it administers.
type AccountClaims struct {
	AdminOf []string `json:"admin_of,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	secret       []byte
	sessionCache SessionCache
	ttl          time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(
	secret string,
	sessionCache SessionCache,
	ttl time.Duration,
	opts ...Option,
) *Service {
	s := &Service{
		secret:       []byte(secret),
		sessionCache: sessionCache,
		ttl:          ttl,
		logger:       slog.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueAnonymous opens a new device session and returns its id.
func (s *Service) IssueAnonymous() (string, error) {
	t := uuid.New().String()
	if err := s.sessionCache.Set(t, activeSession, s.ttl); err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	return t, nil
}

// ResolveAnonymous checks the device session and slides its expiry.
func (s *Service) ResolveAnonymous(token string) (model.Caller, error) {
	v, err := s.sessionCache.Get(token)
	if err != nil {
		return model.Caller{}, errors.Join(ErrInternal, err)
	}
	if v == "" {
		return model.Caller{}, ErrInvalidToken
	}

	if _, err := s.sessionCache.Touch(token, s.ttl); err != nil {
		s.logger.Warn("failed to extend anonymous session", "error", err)
	}
	return model.Caller{Identity: model.AnonymousIdentity(token)}, nil
}

// RevokeAnonymous ends a device session. Revoking an unknown or expired
// session succeeds.
func (s *Service) RevokeAnonymous(token string) error {
	if err := s.sessionCache.Delete(token); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// IssueAccount signs an account token. Used by operators and tests; the
// production identity provider signs with the same secret.
func (s *Service) IssueAccount(accountID string, adminOf []string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &AccountClaims{
		AdminOf: adminOf,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ResolveAccount(tokenString string) (model.Caller, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccountClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return model.Caller{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccountClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return model.Caller{}, ErrInvalidToken
	}

	return model.Caller{
		Identity: model.AccountIdentity(claims.Subject),
		AdminOf:  claims.AdminOf,
	}, nil
}
