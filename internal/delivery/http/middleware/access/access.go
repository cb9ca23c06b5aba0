package http_access_middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/planpoker/core/internal/delivery/http/common"
)

const ModeReadOnly = "RO"

// ReadOnly rejects every command on a read-only instance. Snapshots and
// change feed upgrades are GET requests and still go through.
func ReadOnly(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mode != ModeReadOnly {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "write operations are not allowed on a read-only instance",
			Reason:  http_common.ReasonReadOnly,
		})
	}
}
