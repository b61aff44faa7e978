// Package all imports all core dagw extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/CasperAntonPoulsen/TargetsOfAbuse/extension/core"
	_ "github.com/CasperAntonPoulsen/TargetsOfAbuse/extension/history"
	_ "github.com/CasperAntonPoulsen/TargetsOfAbuse/extension/section"
	_ "github.com/CasperAntonPoulsen/TargetsOfAbuse/extension/tweets"
)
