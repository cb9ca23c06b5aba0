package http_common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/humanbelnik/planpoker/core/internal/service/guard"
	usecase_room "github.com/humanbelnik/planpoker/core/internal/usecase/room"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type CommonUnitSuite struct {
	suite.Suite
}

func (s *CommonUnitSuite) TestStatus(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedReason string
	}{
		{name: "Should forbid non-managers", err: guard.ErrNotManager, expectedStatus: http.StatusForbidden, expectedReason: "not_manager"},
		{name: "Should forbid removing the last manager", err: &guard.Error{Reason: guard.ReasonLastManager, Target: "p1"}, expectedStatus: http.StatusForbidden, expectedReason: "last_manager"},
		{name: "Should conflict on votes outside a round", err: guard.ErrVotingNotActive, expectedStatus: http.StatusConflict, expectedReason: "voting_not_active"},
		{name: "Should reject invalid votes as unprocessable", err: guard.ErrInvalidVote, expectedStatus: http.StatusUnprocessableEntity, expectedReason: "invalid_vote"},
		{name: "Should reject invalid settings as unprocessable", err: guard.ErrInvalidSettings, expectedStatus: http.StatusUnprocessableEntity, expectedReason: "invalid_settings"},
		{name: "Should report unknown targets as not found", err: guard.ErrParticipantNotFound, expectedStatus: http.StatusNotFound, expectedReason: "participant_not_found"},
		{name: "Should forbid outsiders", err: guard.ErrNotParticipant, expectedStatus: http.StatusForbidden, expectedReason: "not_participant"},
		{name: "Should map missing rooms", err: usecase_room.ErrResourceNotFound, expectedStatus: http.StatusNotFound, expectedReason: ReasonNotFound},
		{name: "Should map conflicts", err: usecase_room.ErrConflict, expectedStatus: http.StatusConflict, expectedReason: ReasonConflict},
		{name: "Should map forbidden deletes", err: usecase_room.ErrForbidden, expectedStatus: http.StatusForbidden, expectedReason: ReasonForbidden},
		{name: "Should hide internal failures", err: errors.Join(usecase_room.ErrInternal, errors.New("pq: boom")), expectedStatus: http.StatusInternalServerError, expectedReason: ReasonInternal},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			status, body := Status(tc.err)
			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expectedReason, body.Reason)
			assert.NotContains(t, body.Message, "pq:")
		})
	}
}

func TestCommonUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(CommonUnitSuite))
}
