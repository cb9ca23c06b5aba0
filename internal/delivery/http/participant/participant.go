package http_participant

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/planpoker/core/internal/delivery/http/common"
	http_identity_middleware "github.com/humanbelnik/planpoker/core/internal/delivery/http/middleware/identity"
	"github.com/humanbelnik/planpoker/core/internal/model"
)

//go:generate mockery --name=ParticipantUsecase --output=./mocks/usecase --filename=usecase.go
type ParticipantUsecase interface {
	Join(ctx context.Context, caller model.Caller, roomID string, name string, avatar *model.Avatar) (model.Participant, error)
	SubmitVote(ctx context.Context, caller model.Caller, roomID string, vote string) error
	Leave(ctx context.Context, caller model.Caller, roomID string) error
	UpdateName(ctx context.Context, caller model.Caller, roomID string, name string) error
	UpdateAvatar(ctx context.Context, caller model.Caller, roomID string, avatar model.Avatar) error
	Promote(ctx context.Context, caller model.Caller, roomID string, participantID string) error
	Demote(ctx context.Context, caller model.Caller, roomID string, participantID string) error
	Kick(ctx context.Context, caller model.Caller, roomID string, participantID string) error
}

type Controller struct {
	usecase  ParticipantUsecase
	identity gin.HandlerFunc
	logger   *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	usecase ParticipantUsecase,
	identity gin.HandlerFunc,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		usecase:  usecase,
		identity: identity,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	room := router.Group("/rooms/:room_id", c.identity)
	{
		room.POST("/participants", c.join)
		room.POST("/participants/:participant_id/promote", c.promote)
		room.POST("/participants/:participant_id/demote", c.demote)
		room.DELETE("/participants/:participant_id", c.kick)

		room.DELETE("/me", c.leave)
		room.PUT("/me/vote", c.vote)
		room.PATCH("/me/name", c.updateName)
		room.PATCH("/me/avatar", c.updateAvatar)
	}
}

type AvatarDTO struct {
	Style string `json:"style" binding:"required" example:"initials"`
	Seed  string `json:"seed" example:"Alice"`
}

type JoinRequestDTO struct {
	Name   string     `json:"name" binding:"required" example:"Alice"`
	Avatar *AvatarDTO `json:"avatar,omitempty"`
}

type VoteRequestDTO struct {
	Vote string `json:"vote" binding:"required" example:"5"`
}

type NameRequestDTO struct {
	Name string `json:"name" binding:"required" example:"Alice B."`
}

// @Summary Join a room
// @Description Seats the caller, or refreshes the existing seat of the same identity (role is kept).
// @Tags Participants
// @Accept json
// @Produce json
// @Param room_id path string true "Room id"
// @Param request body JoinRequestDTO true "Profile"
// @Success 200 {object} model.Participant
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 422 {object} http_common.ErrorResponse "Invalid name"
// @Security UserToken
// @Router /rooms/{room_id}/participants [post]
func (c *Controller) join(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.BadRequest(ctx, c.logger, err)
		return
	}

	var avatar *model.Avatar
	if req.Avatar != nil {
		avatar = &model.Avatar{Style: req.Avatar.Style, Seed: req.Avatar.Seed}
	}

	p, err := c.usecase.Join(ctx.Request.Context(), caller, ctx.Param("room_id"), req.Name, avatar)
	if err != nil {
		http_common.Fail(ctx, c.logger, "failed to join room", err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

// @Summary Cast or change a vote
// @Tags Voting
// @Accept json
// @Param room_id path string true "Room id"
// @Param request body VoteRequestDTO true "Vote"
// @Success 204
// @Failure 403 {object} http_common.ErrorResponse "Not a participant"
// @Failure 409 {object} http_common.ErrorResponse "Voting is not active"
// @Failure 422 {object} http_common.ErrorResponse "Not one of the room's options"
// @Security UserToken
// @Router /rooms/{room_id}/me/vote [put]
func (c *Controller) vote(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.BadRequest(ctx, c.logger, err)
		return
	}

	if err := c.usecase.SubmitVote(ctx.Request.Context(), caller, ctx.Param("room_id"), req.Vote); err != nil {
		http_common.Fail(ctx, c.logger, "failed to submit vote", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Leave the room
// @Description When the last manager leaves, the longest-tenured participant is promoted.
// @Tags Participants
// @Param room_id path string true "Room id"
// @Success 204
// @Failure 403 {object} http_common.ErrorResponse "Not a participant"
// @Security UserToken
// @Router /rooms/{room_id}/me [delete]
func (c *Controller) leave(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	if err := c.usecase.Leave(ctx.Request.Context(), caller, ctx.Param("room_id")); err != nil {
		http_common.Fail(ctx, c.logger, "failed to leave room", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Rename yourself
// @Tags Participants
// @Accept json
// @Param room_id path string true "Room id"
// @Param request body NameRequestDTO true "Name"
// @Success 204
// @Failure 422 {object} http_common.ErrorResponse "Invalid name"
// @Security UserToken
// @Router /rooms/{room_id}/me/name [patch]
func (c *Controller) updateName(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	var req NameRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.BadRequest(ctx, c.logger, err)
		return
	}

	if err := c.usecase.UpdateName(ctx.Request.Context(), caller, ctx.Param("room_id"), req.Name); err != nil {
		http_common.Fail(ctx, c.logger, "failed to update name", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Change your avatar
// @Tags Participants
// @Accept json
// @Param room_id path string true "Room id"
// @Param request body AvatarDTO true "Avatar"
// @Success 204
// @Failure 422 {object} http_common.ErrorResponse "Invalid avatar"
// @Security UserToken
// @Router /rooms/{room_id}/me/avatar [patch]
func (c *Controller) updateAvatar(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	var req AvatarDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.BadRequest(ctx, c.logger, err)
		return
	}

	avatar := model.Avatar{Style: req.Style, Seed: req.Seed}
	if err := c.usecase.UpdateAvatar(ctx.Request.Context(), caller, ctx.Param("room_id"), avatar); err != nil {
		http_common.Fail(ctx, c.logger, "failed to update avatar", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Promote a participant to manager
// @Tags Participants
// @Param room_id path string true "Room id"
// @Param participant_id path string true "Participant id"
// @Success 204
// @Failure 403 {object} http_common.ErrorResponse "Not a manager, or target already a manager"
// @Failure 404 {object} http_common.ErrorResponse "Participant not found"
// @Security UserToken
// @Router /rooms/{room_id}/participants/{participant_id}/promote [post]
func (c *Controller) promote(ctx *gin.Context) {
	c.manage(ctx, "failed to promote", c.usecase.Promote)
}

// @Summary Demote a manager
// @Description Demoting yourself is allowed while another manager remains.
// @Tags Participants
// @Param room_id path string true "Room id"
// @Param participant_id path string true "Participant id"
// @Success 204
// @Failure 403 {object} http_common.ErrorResponse "Not a manager, target not a manager, or last manager"
// @Failure 404 {object} http_common.ErrorResponse "Participant not found"
// @Security UserToken
// @Router /rooms/{room_id}/participants/{participant_id}/demote [post]
func (c *Controller) demote(ctx *gin.Context) {
	c.manage(ctx, "failed to demote", c.usecase.Demote)
}

// @Summary Kick a participant
// @Tags Participants
// @Param room_id path string true "Room id"
// @Param participant_id path string true "Participant id"
// @Success 204
// @Failure 403 {object} http_common.ErrorResponse "Not a manager, or kicking yourself"
// @Failure 404 {object} http_common.ErrorResponse "Participant not found"
// @Security UserToken
// @Router /rooms/{room_id}/participants/{participant_id} [delete]
func (c *Controller) kick(ctx *gin.Context) {
	c.manage(ctx, "failed to kick", c.usecase.Kick)
}

func (c *Controller) manage(
	ctx *gin.Context,
	msg string,
	command func(ctx context.Context, caller model.Caller, roomID string, participantID string) error,
) {
	caller, _ := http_identity_middleware.Caller(ctx)

	if err := command(ctx.Request.Context(), caller, ctx.Param("room_id"), ctx.Param("participant_id")); err != nil {
		http_common.Fail(ctx, c.logger, msg, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
