// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"
)

var endpointCmd = &cobra.Command{
	Use: "endpoint",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var importEndpointCmd = &cobra.Command{
	Use: "import",
	RunE: func(*cobra.Command, []string) error {
		return handler.ImportEndpoint()
	},
}

var setEndpointCmd = &cobra.Command{
	Use: "set",
	RunE: func(*cobra.Command, []string) error {
		return handler.SetEndpoint()
	},
}

var infoEndpointCmd = &cobra.Command{
	Use: "info",
	RunE: func(*cobra.Command, []string) error {
		return handler.PrintVaultInfo()
	},
}
