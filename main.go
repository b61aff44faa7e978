/*
Copyright © 2026 Casper Anton Poulsen
*/
package main

import (
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/cmd"

	// Import extensions - each registers itself via init()
	_ "github.com/CasperAntonPoulsen/TargetsOfAbuse/extension/all"
)

func main() {
	cmd.Execute()
}
