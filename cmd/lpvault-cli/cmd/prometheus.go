// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"
)

var prometheusCmd = &cobra.Command{
	Use: "prometheus",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var generatePrometheusCmd = &cobra.Command{
	Use: "generate",
	RunE: func(*cobra.Command, []string) error {
		return handler.GeneratePrometheus(prometheusBaseURI, prometheusOpenBrowser, startPrometheus, prometheusFile, prometheusData, func() []string {
			panels := []string{}

			panels = append(panels, "vault_base_reserve")
			panels = append(panels, "vault_quote_reserve")
			panels = append(panels, "vault_share_supply")

			panels = append(panels, "increase(vault_deposits[5s])/5")
			panels = append(panels, "increase(vault_withdraws[5s])/5")
			panels = append(panels, "increase(vault_native_deposits[5s])/5 + increase(vault_native_withdraws[5s])/5")

			panels = append(panels, "increase(vault_orders_forwarded[5s])/5")
			panels = append(panels, "increase(vault_cancels_forwarded[5s])/5")
			panels = append(panels, "increase(vault_reentries_blocked[5s])/5")

			panels = append(panels, "pebble_memtable_size")
			panels = append(panels, "pebble_disk_space_usage")
			panels = append(panels, "increase(pebble_flush_count[5s])/5")

			return panels
		})
	},
}
