package http_session

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	mocks "github.com/humanbelnik/planpoker/core/internal/delivery/http/session/mocks/issuer"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type SessionControllerUnitSuite struct {
	suite.Suite
}

func serve(t provider.T, issuer *mocks.Issuer) *httptest.ResponseRecorder {
	return serveRequest(t, issuer, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
}

func serveRequest(t provider.T, issuer *mocks.Issuer, req *http.Request) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	New(issuer).RegisterRoutes(engine.Group("/api/v1"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func (s *SessionControllerUnitSuite) TestIssue(t provider.T) {
	issuer := mocks.NewIssuer(t)
	issuer.On("IssueAnonymous").Return("device-1", nil)

	w := serve(t, issuer)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "device-1", w.Header().Get("X-user-token"))
	var body SessionResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "device-1", body.Token)
}

func (s *SessionControllerUnitSuite) TestIssueFailure(t provider.T) {
	issuer := mocks.NewIssuer(t)
	issuer.On("IssueAnonymous").Return("", errors.New("redis down"))

	w := serve(t, issuer)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("X-user-token"))
}

func (s *SessionControllerUnitSuite) TestRevoke(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		token          string
		setupMocks     func(issuer *mocks.Issuer)
		expectedStatus int
	}{
		{
			name:  "Should revoke the presented session",
			token: "device-1",
			setupMocks: func(issuer *mocks.Issuer) {
				issuer.On("RevokeAnonymous", "device-1").Return(nil).Once()
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Should require a token",
			setupMocks:     func(*mocks.Issuer) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "Should report a cache failure",
			token: "device-1",
			setupMocks: func(issuer *mocks.Issuer) {
				issuer.On("RevokeAnonymous", "device-1").Return(errors.New("redis down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			issuer := mocks.NewIssuer(t)
			tc.setupMocks(issuer)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions", nil)
			if tc.token != "" {
				req.Header.Set("X-user-token", tc.token)
			}
			w := serveRequest(t, issuer, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestSessionControllerUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(SessionControllerUnitSuite))
}
