package service_auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/humanbelnik/planpoker/core/internal/model"
	mocks "github.com/humanbelnik/planpoker/core/internal/service/auth/mocks/session_cache"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type AuthServiceUnitSuite struct {
	suite.Suite
}

const (
	secret = "test-secret"
	ttl    = time.Hour
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type resources struct {
	cache   *mocks.SessionCache
	service *Service
}

func initResources(t provider.T) *resources {
	cache := mocks.NewSessionCache(t)
	return &resources{
		cache:   cache,
		service: New(secret, cache, ttl, WithClock(func() time.Time { return now })),
	}
}

func (s *AuthServiceUnitSuite) TestIssueAnonymous(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		cacheErr    error
		expectedErr error
	}{
		{name: "Should store an active session"},
		{name: "Should fail when the cache is down", cacheErr: errors.New("redis down"), expectedErr: ErrInternal},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			r.cache.On("Set", mock.AnythingOfType("string"), activeSession, ttl).Return(tc.cacheErr)

			token, err := r.service.IssueAnonymous()

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func (s *AuthServiceUnitSuite) TestResolveAnonymous(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources)
		expected    model.Caller
		expectedErr error
	}{
		{
			name: "Should resolve a live session and extend it",
			setupMocks: func(r *resources) {
				r.cache.On("Get", "device-1").Return(activeSession, nil)
				r.cache.On("Touch", "device-1", ttl).Return(true, nil)
			},
			expected: model.Caller{Identity: model.AnonymousIdentity("device-1")},
		},
		{
			name: "Should still resolve when the expiry cannot be extended",
			setupMocks: func(r *resources) {
				r.cache.On("Get", "device-1").Return(activeSession, nil)
				r.cache.On("Touch", "device-1", ttl).Return(false, errors.New("timeout"))
			},
			expected: model.Caller{Identity: model.AnonymousIdentity("device-1")},
		},
		{
			name: "Should reject an unknown session",
			setupMocks: func(r *resources) {
				r.cache.On("Get", "device-1").Return("", nil)
			},
			expectedErr: ErrInvalidToken,
		},
		{
			name: "Should report cache failures as internal",
			setupMocks: func(r *resources) {
				r.cache.On("Get", "device-1").Return("", errors.New("redis down"))
			},
			expectedErr: ErrInternal,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			caller, err := r.service.ResolveAnonymous("device-1")

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, caller)
		})
	}
}

func (s *AuthServiceUnitSuite) TestRevokeAnonymous(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		cacheErr    error
		expectedErr error
	}{
		{name: "Should drop the session"},
		{name: "Should fail when the cache is down", cacheErr: errors.New("redis down"), expectedErr: ErrInternal},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			r.cache.On("Delete", "device-1").Return(tc.cacheErr).Once()

			err := r.service.RevokeAnonymous("device-1")

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func (s *AuthServiceUnitSuite) TestAccountRoundTrip(t provider.T) {
	t.Parallel()
	r := initResources(t)

	token, err := r.service.IssueAccount("alice", []string{"team-a"}, ttl)
	require.NoError(t, err)

	caller, err := r.service.ResolveAccount(token)
	require.NoError(t, err)

	assert.Equal(t, model.AccountIdentity("alice"), caller.Identity)
	assert.Equal(t, []string{"team-a"}, caller.AdminOf)
	group := "team-a"
	assert.True(t, caller.AdministersGroup(&group))
}

func (s *AuthServiceUnitSuite) TestResolveAccountRejects(t provider.T) {
	t.Parallel()

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key any) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			panic(err)
		}
		return token
	}

	testCases := []struct {
		name  string
		token string
	}{
		{
			name: "Should reject an expired token",
			token: sign(&AccountClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "alice",
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			}}, jwt.SigningMethodHS256, []byte(secret)),
		},
		{
			name: "Should reject a foreign signature",
			token: sign(&AccountClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject: "alice",
			}}, jwt.SigningMethodHS256, []byte("other-secret")),
		},
		{
			name: "Should reject a token without subject",
			token: sign(&AccountClaims{RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			}}, jwt.SigningMethodHS256, []byte(secret)),
		},
		{
			name:  "Should reject garbage",
			token: "not-a-jwt",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			_, err := r.service.ResolveAccount(tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestAuthServiceUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(AuthServiceUnitSuite))
}
