package http_common

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/planpoker/core/internal/service/guard"
	usecase_room "github.com/humanbelnik/planpoker/core/internal/usecase/room"
)

const (
	ReasonNotFound  = "not_found"
	ReasonConflict  = "conflict"
	ReasonForbidden = "forbidden"
	ReasonInvalid   = "invalid_request"
	ReasonInternal  = "internal"
	ReasonNoAuth    = "unauthorized"
	ReasonReadOnly  = "read_only"
)

// ErrorResponse is the body of every failed request. Reason is machine
// readable; for rejected commands it is the guard reason.
type ErrorResponse struct {
	Message string `json:"message" example:"only a manager can do this"`
	Reason  string `json:"reason,omitempty" example:"not_manager"`
	Target  string `json:"target,omitempty" example:"5f0c1e9a-7d2b-4c1e-9a57-1f3c5d1e7a42"`
}

// Status maps a usecase error onto an HTTP status and response body.
func Status(err error) (int, ErrorResponse) {
	var gerr *guard.Error
	switch {
	case errors.As(err, &gerr):
		return guardStatus(gerr), ErrorResponse{Message: gerr.Error(), Reason: string(gerr.Reason), Target: gerr.Target}
	case errors.Is(err, usecase_room.ErrResourceNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "not found", Reason: ReasonNotFound}
	case errors.Is(err, usecase_room.ErrConflict):
		return http.StatusConflict, ErrorResponse{Message: "conflicting update", Reason: ReasonConflict}
	case errors.Is(err, usecase_room.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Message: "forbidden", Reason: ReasonForbidden}
	default:
		return http.StatusInternalServerError, ErrorResponse{Message: "internal error", Reason: ReasonInternal}
	}
}

func guardStatus(err *guard.Error) int {
	switch {
	case err.Validation():
		return http.StatusUnprocessableEntity
	case err.Reason == guard.ReasonVotingNotActive:
		return http.StatusConflict
	case err.Reason == guard.ReasonParticipantNotFound:
		return http.StatusNotFound
	default:
		return http.StatusForbidden
	}
}

// Fail logs err and writes the mapped response.
func Fail(ctx *gin.Context, logger *slog.Logger, msg string, err error) {
	status, body := Status(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()), slog.String("path", ctx.FullPath()))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.String("path", ctx.FullPath()))
	}
	ctx.JSON(status, body)
}

func BadRequest(ctx *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("invalid request format", "error", err)
	ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "invalid request format",
		Reason:  ReasonInvalid,
	})
}
