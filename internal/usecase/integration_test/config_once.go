package integrationtest

import (
	"os"
	"sync"

	"github.com/humanbelnik/planpoker/core/internal/config"
	"github.com/ozontech/allure-go/pkg/framework/provider"
)

var (
	cfg     *config.Config
	cfgOnce sync.Once
)

// getConfig skips the test unless PLANPOKER_INTEGRATION is set, since the
// suites need a live Postgres and Redis.
func getConfig(t provider.T) *config.Config {
	if os.Getenv("PLANPOKER_INTEGRATION") == "" {
		t.Skip("PLANPOKER_INTEGRATION is not set")
	}
	cfgOnce.Do(func() {
		cfg = config.Load()
	})
	return cfg
}
