package ws_room

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/planpoker/core/internal/delivery/http/common"
	http_identity_middleware "github.com/humanbelnik/planpoker/core/internal/delivery/http/middleware/identity"
	"github.com/humanbelnik/planpoker/core/internal/model"
)

// RoomReader decides who may follow a room: the feed carries the same rows
// as the snapshot, so it takes the same check.
type RoomReader interface {
	Snapshot(ctx context.Context, caller model.Caller, roomID string) (model.Snapshot, error)
}

type Controller struct {
	hub      *Hub
	reader   RoomReader
	identity gin.HandlerFunc
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewController(hub *Hub, reader RoomReader, identity gin.HandlerFunc) *Controller {
	return &Controller{
		hub:      hub,
		reader:   reader,
		identity: identity,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws/rooms/:room_id/:topic", c.identity, c.connect)
}

// @Summary Follow room changes
// @Description Streams change envelopes {table, op, row} of one room table over a websocket. topic is rooms or participants.
// @Tags Feed
// @Param room_id path string true "Room id"
// @Param topic path string true "rooms or participants"
// @Param token query string false "Anonymous device token"
// @Success 101
// @Failure 400 {object} http_common.ErrorResponse "Unknown topic"
// @Failure 403 {object} http_common.ErrorResponse "Caller has no seat in the room"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Router /ws/rooms/{room_id}/{topic} [get]
func (c *Controller) connect(ctx *gin.Context) {
	key := topicKey{roomID: ctx.Param("room_id"), table: ctx.Param("topic")}
	if key.table != model.TableRooms && key.table != model.TableParticipants {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "unknown topic " + key.table,
			Reason:  http_common.ReasonInvalid,
		})
		return
	}

	caller, _ := http_identity_middleware.Caller(ctx)
	if _, err := c.reader.Snapshot(ctx.Request.Context(), caller, key.roomID); err != nil {
		http_common.Fail(ctx, c.logger, "refused change feed", err)
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  c.hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		key:  key,
	}
	if err := c.hub.RegisterClient(client); err != nil {
		c.logger.Error("failed to subscribe to change feed", "room_id", key.roomID, "table", key.table, "error", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "change feed unavailable"))
		conn.Close()
		return
	}

	go c.hub.StartClientWriting(client)
	c.hub.StartClientReading(client)
}
