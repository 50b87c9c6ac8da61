// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/foundry-rs/compilers/internal/adapters/config"
	_ "github.com/foundry-rs/compilers/internal/adapters/fs"
	_ "github.com/foundry-rs/compilers/internal/adapters/logger"
	_ "github.com/foundry-rs/compilers/internal/adapters/sink"
	_ "github.com/foundry-rs/compilers/internal/adapters/solc"
	_ "github.com/foundry-rs/compilers/internal/adapters/store"
	_ "github.com/foundry-rs/compilers/internal/adapters/svm"
	_ "github.com/foundry-rs/compilers/internal/adapters/telemetry"
	_ "github.com/foundry-rs/compilers/internal/adapters/vyper"
	// Register app and engine nodes.
	_ "github.com/foundry-rs/compilers/internal/app"
	_ "github.com/foundry-rs/compilers/internal/engine/cache"
	_ "github.com/foundry-rs/compilers/internal/engine/dispatch"
	_ "github.com/foundry-rs/compilers/internal/engine/resolver"
	_ "github.com/foundry-rs/compilers/internal/engine/version"
)
