// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/replay/internal/adapters/cas"
	_ "go.trai.ch/replay/internal/adapters/config"
	_ "go.trai.ch/replay/internal/adapters/fs"
	_ "go.trai.ch/replay/internal/adapters/logger"
	_ "go.trai.ch/replay/internal/adapters/scratch"
	_ "go.trai.ch/replay/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/replay/internal/app"
)
