package main

import (
	"github.com/humanbelnik/planpoker/core/internal/app"
	"github.com/humanbelnik/planpoker/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
