package http_identity_middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/planpoker/core/internal/delivery/http/common"
	"github.com/humanbelnik/planpoker/core/internal/model"
	service_auth "github.com/humanbelnik/planpoker/core/internal/service/auth"
)

const (
	HeaderUserToken = "X-user-token"
	QueryToken      = "token"

	callerKey = "caller"
)

//go:generate mockery --name=Resolver --output=./mocks/resolver --filename=resolver.go
type Resolver interface {
	ResolveAccount(token string) (model.Caller, error)
	ResolveAnonymous(token string) (model.Caller, error)
}

type Middleware struct {
	resolver Resolver
	logger   *slog.Logger
}

func New(
	resolver Resolver,
) *Middleware {
	return &Middleware{
		resolver: resolver,
		logger:   slog.Default(),
	}
}

// Required resolves the caller from a bearer JWT, or else from the
// anonymous device token in the X-user-token header or token query
// parameter, and aborts with 401 when neither is valid.
func (m *Middleware) Required() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		caller, err := m.resolve(ctx)
		if err != nil {
			if errors.Is(err, service_auth.ErrInternal) {
				m.logger.Error("identity resolution failed", slog.String("error", err.Error()))
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, http_common.ErrorResponse{
					Message: "internal error",
					Reason:  http_common.ReasonInternal,
				})
				return
			}
			m.logger.Warn("unauthenticated request", slog.String("path", ctx.FullPath()), slog.String("error", err.Error()))
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: err.Error(),
				Reason:  http_common.ReasonNoAuth,
			})
			return
		}
		SetCaller(ctx, caller)
		ctx.Next()
	}
}

var errNoCredentials = errors.New("no credentials: send a bearer token or " + HeaderUserToken)

func (m *Middleware) resolve(ctx *gin.Context) (model.Caller, error) {
	if bearer, ok := strings.CutPrefix(ctx.GetHeader("Authorization"), "Bearer "); ok && bearer != "" {
		return m.resolver.ResolveAccount(strings.TrimSpace(bearer))
	}

	t := ctx.GetHeader(HeaderUserToken)
	if t == "" {
		t = ctx.Query(QueryToken)
	}
	if t == "" {
		return model.Caller{}, errNoCredentials
	}
	return m.resolver.ResolveAnonymous(t)
}

func SetCaller(ctx *gin.Context, caller model.Caller) {
	ctx.Set(callerKey, caller)
}

func Caller(ctx *gin.Context) (model.Caller, bool) {
	v, ok := ctx.Get(callerKey)
	if !ok {
		return model.Caller{}, false
	}
	caller, ok := v.(model.Caller)
	return caller, ok
}
