package http_session

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/planpoker/core/internal/delivery/http/common"
	http_identity_middleware "github.com/humanbelnik/planpoker/core/internal/delivery/http/middleware/identity"
)

//go:generate mockery --name=Issuer --output=./mocks/issuer --filename=issuer.go
type Issuer interface {
	IssueAnonymous() (string, error)
	RevokeAnonymous(token string) error
}

type Controller struct {
	issuer Issuer
	logger *slog.Logger
}

func New(
	issuer Issuer,
) *Controller {
	return &Controller{
		issuer: issuer,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sessions", c.issue)
	router.DELETE("/sessions", c.revoke)
}

type SessionResponseDTO struct {
	Token string `json:"token" example:"0b1a6f0e-2c8d-4b8e-9a57-3c1f5d1e7a42"`
}

// @Summary Open an anonymous session
// @Description Issues a device session id. Send it back in X-user-token (or the token query parameter for websockets).
// @Tags Sessions
// @Produce json
// @Success 201 {object} SessionResponseDTO
// @Header 201 {string} X-user-token "Anonymous device token"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /sessions [post]
func (c *Controller) issue(ctx *gin.Context) {
	token, err := c.issuer.IssueAnonymous()
	if err != nil {
		c.logger.Error("failed to issue session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
			Reason:  http_common.ReasonInternal,
		})
		return
	}

	ctx.Header(http_identity_middleware.HeaderUserToken, token)
	ctx.JSON(http.StatusCreated, SessionResponseDTO{Token: token})
}

// @Summary Close an anonymous session
// @Description Revokes the device session sent in X-user-token. Closing an unknown or expired session succeeds.
// @Tags Sessions
// @Param X-user-token header string true "Anonymous device token"
// @Success 204
// @Failure 400 {object} http_common.ErrorResponse "Missing token"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /sessions [delete]
func (c *Controller) revoke(ctx *gin.Context) {
	token := ctx.GetHeader(http_identity_middleware.HeaderUserToken)
	if token == "" {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "missing " + http_identity_middleware.HeaderUserToken,
			Reason:  http_common.ReasonInvalid,
		})
		return
	}

	if err := c.issuer.RevokeAnonymous(token); err != nil {
		c.logger.Error("failed to revoke session", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
			Reason:  http_common.ReasonInternal,
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}
