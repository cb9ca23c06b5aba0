package http_init

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	http_metrics "github.com/humanbelnik/planpoker/core/internal/delivery/http/metrics"
	"github.com/humanbelnik/planpoker/core/internal/metrics"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type InitUnitSuite struct {
	suite.Suite
}

type pingController struct{}

func (pingController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/rooms/:room_id/ping", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
}

func (s *InitUnitSuite) TestPoolRegistersUnderPrefix(t provider.T) {
	gin.SetMode(gin.TestMode)
	pool := NewControllerPool()
	pool.Add(pingController{})
	pool.Add(http_metrics.New())
	pool.Register()

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, apiPrefix+"/rooms/:room_id/ping", "204")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	pool.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/r-42/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	w = httptest.NewRecorder()
	pool.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "planpoker_http_requests_total")
}

func TestInitUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(InitUnitSuite))
}
