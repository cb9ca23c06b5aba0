package http_room

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/planpoker/core/internal/delivery/http/common"
	http_identity_middleware "github.com/humanbelnik/planpoker/core/internal/delivery/http/middleware/identity"
	"github.com/humanbelnik/planpoker/core/internal/model"
)

//go:generate mockery --name=RoomUsecase --output=./mocks/usecase --filename=usecase.go
type RoomUsecase interface {
	Create(ctx context.Context, caller model.Caller, name string, groupID *string, voteOptions []string) (model.Room, error)
	Delete(ctx context.Context, caller model.Caller, roomID string) error
	Snapshot(ctx context.Context, caller model.Caller, roomID string) (model.Snapshot, error)
	StartVoting(ctx context.Context, caller model.Caller, roomID string, topic *string) error
	Reveal(ctx context.Context, caller model.Caller, roomID string) error
	Reset(ctx context.Context, caller model.Caller, roomID string) error
	ToggleShowVotes(ctx context.Context, caller model.Caller, roomID string) (bool, error)
	UpdateSettings(ctx context.Context, caller model.Caller, roomID string, settings model.Settings) (model.Room, error)
}

type Controller struct {
	usecase  RoomUsecase
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
	usecase RoomUsecase,
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
	rooms := router.Group("/rooms", c.identity)
	{
		rooms.POST("", c.create)
		rooms.GET("/:room_id", c.snapshot)
		rooms.DELETE("/:room_id", c.delete)
		rooms.PATCH("/:room_id/settings", c.updateSettings)
		rooms.POST("/:room_id/show-votes/toggle", c.toggleShowVotes)
		rooms.POST("/:room_id/voting/start", c.startVoting)
		rooms.POST("/:room_id/voting/reveal", c.reveal)
		rooms.POST("/:room_id/voting/reset", c.reset)
	}
}

type CreateRoomRequestDTO struct {
	Name        string   `json:"name" binding:"required" example:"Sprint 42 grooming"`
	GroupID     *string  `json:"group_id,omitempty" example:"team-payments"`
	VoteOptions []string `json:"vote_options,omitempty" example:"1,2,3,5,8,?"`
}

type UpdateSettingsRequestDTO struct {
	Name        *string  `json:"name,omitempty" example:"Sprint 43 grooming"`
	ShowVotes   *bool    `json:"show_votes,omitempty" example:"true"`
	VoteOptions []string `json:"vote_options,omitempty" example:"XS,S,M,L,XL"`
}

type StartVotingRequestDTO struct {
	Topic *string `json:"topic,omitempty" example:"PAY-1234 refund flow"`
}

type ShowVotesResponseDTO struct {
	ShowVotes bool `json:"show_votes" example:"true"`
}

// @Summary Create a room
// @Description Creates a room owned by the caller. Without vote_options the Fibonacci deck is used.
// @Tags Rooms
// @Accept json
// @Produce json
// @Param request body CreateRoomRequestDTO true "Room"
// @Success 201 {object} model.Room
// @Failure 400 {object} http_common.ErrorResponse "Invalid request format"
// @Failure 403 {object} http_common.ErrorResponse "Caller does not administer the group"
// @Failure 422 {object} http_common.ErrorResponse "Invalid name or vote options"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security UserToken
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	var req CreateRoomRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.BadRequest(ctx, c.logger, err)
		return
	}

	room, err := c.usecase.Create(ctx.Request.Context(), caller, req.Name, req.GroupID, req.VoteOptions)
	if err != nil {
		http_common.Fail(ctx, c.logger, "failed to create room", err)
		return
	}

	ctx.JSON(http.StatusCreated, room)
}

// @Summary Room snapshot
// @Description Returns the room row and all participant rows
// @Tags Rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} model.Snapshot
// @Failure 403 {object} http_common.ErrorResponse "Caller has no seat in the room"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security UserToken
// @Router /rooms/{room_id} [get]
func (c *Controller) snapshot(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	snapshot, err := c.usecase.Snapshot(ctx.Request.Context(), caller, ctx.Param("room_id"))
	if err != nil {
		http_common.Fail(ctx, c.logger, "failed to load room", err)
		return
	}

	ctx.JSON(http.StatusOK, snapshot)
}

// @Summary Delete a room
// @Tags Rooms
// @Param room_id path string true "Room id"
// @Success 204
// @Failure 403 {object} http_common.ErrorResponse "Only the creator or a group admin may delete"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security UserToken
// @Router /rooms/{room_id} [delete]
func (c *Controller) delete(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	if err := c.usecase.Delete(ctx.Request.Context(), caller, ctx.Param("room_id")); err != nil {
		http_common.Fail(ctx, c.logger, "failed to delete room", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Update room settings
// @Description Managers only. Omitted fields stay unchanged. Votes no longer among the options are cleared.
// @Tags Rooms
// @Accept json
// @Produce json
// @Param room_id path string true "Room id"
// @Param request body UpdateSettingsRequestDTO true "Settings"
// @Success 200 {object} model.Room
// @Failure 403 {object} http_common.ErrorResponse "Not a manager"
// @Failure 422 {object} http_common.ErrorResponse "Invalid settings"
// @Security UserToken
// @Router /rooms/{room_id}/settings [patch]
func (c *Controller) updateSettings(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	var req UpdateSettingsRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.BadRequest(ctx, c.logger, err)
		return
	}

	room, err := c.usecase.UpdateSettings(ctx.Request.Context(), caller, ctx.Param("room_id"), model.Settings{
		Name:        req.Name,
		ShowVotes:   req.ShowVotes,
		VoteOptions: req.VoteOptions,
	})
	if err != nil {
		http_common.Fail(ctx, c.logger, "failed to update settings", err)
		return
	}

	ctx.JSON(http.StatusOK, room)
}

// @Summary Toggle vote visibility
// @Tags Rooms
// @Produce json
// @Param room_id path string true "Room id"
// @Success 200 {object} ShowVotesResponseDTO
// @Failure 403 {object} http_common.ErrorResponse "Not a manager"
// @Security UserToken
// @Router /rooms/{room_id}/show-votes/toggle [post]
func (c *Controller) toggleShowVotes(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	show, err := c.usecase.ToggleShowVotes(ctx.Request.Context(), caller, ctx.Param("room_id"))
	if err != nil {
		http_common.Fail(ctx, c.logger, "failed to toggle show votes", err)
		return
	}

	ctx.JSON(http.StatusOK, ShowVotesResponseDTO{ShowVotes: show})
}

// @Summary Start a voting round
// @Description Managers only. Clears every vote and sets the topic.
// @Tags Voting
// @Accept json
// @Param room_id path string true "Room id"
// @Param request body StartVotingRequestDTO false "Topic"
// @Success 204
// @Failure 403 {object} http_common.ErrorResponse "Not a manager"
// @Security UserToken
// @Router /rooms/{room_id}/voting/start [post]
func (c *Controller) startVoting(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	var req StartVotingRequestDTO
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			http_common.BadRequest(ctx, c.logger, err)
			return
		}
	}

	if err := c.usecase.StartVoting(ctx.Request.Context(), caller, ctx.Param("room_id"), req.Topic); err != nil {
		http_common.Fail(ctx, c.logger, "failed to start voting", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Reveal votes
// @Description Managers only. A no-op unless the room is voting.
// @Tags Voting
// @Param room_id path string true "Room id"
// @Success 204
// @Failure 403 {object} http_common.ErrorResponse "Not a manager"
// @Security UserToken
// @Router /rooms/{room_id}/voting/reveal [post]
func (c *Controller) reveal(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	if err := c.usecase.Reveal(ctx.Request.Context(), caller, ctx.Param("room_id")); err != nil {
		http_common.Fail(ctx, c.logger, "failed to reveal", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Reset the round
// @Description Managers only. Back to waiting, every vote cleared.
// @Tags Voting
// @Param room_id path string true "Room id"
// @Success 204
// @Failure 403 {object} http_common.ErrorResponse "Not a manager"
// @Security UserToken
// @Router /rooms/{room_id}/voting/reset [post]
func (c *Controller) reset(ctx *gin.Context) {
	caller, _ := http_identity_middleware.Caller(ctx)

	if err := c.usecase.Reset(ctx.Request.Context(), caller, ctx.Param("room_id")); err != nil {
		http_common.Fail(ctx, c.logger, "failed to reset", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
