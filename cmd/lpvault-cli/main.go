// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "lpvault-cli" drives a reserve vault service from the terminal.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/lpvault/lpvault/cmd/lpvault-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		color.Red("lpvault-cli failed: %v", err)
		os.Exit(1)
	}
	os.Exit(0)
}
