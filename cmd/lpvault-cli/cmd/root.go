// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lpvault/lpvault/cli"
	"github.com/lpvault/lpvault/utils"
)

const defaultDatabase = ".lpvault-cli"

var (
	handler *cli.Handler

	dbPath                string
	prometheusBaseURI     string
	prometheusOpenBrowser bool
	prometheusFile        string
	prometheusData        string
	startPrometheus       bool

	rootCmd = &cobra.Command{
		Use:        "lpvault-cli",
		Short:      "LPVault CLI",
		SuggestFor: []string{"lpvault-cli", "lpvaultcli"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		keyCmd,
		endpointCmd,
		vaultCmd,
		orderCmd,
		roleCmd,
		spamCmd,
		prometheusCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&dbPath,
		"database",
		defaultDatabase,
		"path to database (will create if missing)",
	)
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		utils.Outf("{{yellow}}database:{{/}} %s\n", dbPath)
		root, err := cli.New(NewController(dbPath))
		if err != nil {
			return err
		}
		handler = root
		return nil
	}
	rootCmd.PersistentPostRunE = func(*cobra.Command, []string) error {
		return handler.CloseDatabase()
	}
	rootCmd.SilenceErrors = true

	// key
	keyCmd.AddCommand(
		genKeyCmd,
		importKeyCmd,
		setKeyCmd,
		balanceKeyCmd,
	)

	// endpoint
	endpointCmd.AddCommand(
		importEndpointCmd,
		setEndpointCmd,
		infoEndpointCmd,
	)

	// vault
	vaultCmd.AddCommand(
		depositCmd,
		depositNativeCmd,
		withdrawCmd,
		withdrawNativeCmd,
		valueCmd,
		syncReservesCmd,
		watchCmd,
	)

	// order
	orderCmd.AddCommand(
		createOrderCmd,
		updateOrderCmd,
		cancelOrderCmd,
		listOrdersCmd,
	)

	// role
	roleCmd.AddCommand(
		grantRoleCmd,
	)

	// spam
	spamCmd.AddCommand(
		runSpamCmd,
	)

	// prometheus
	generatePrometheusCmd.PersistentFlags().StringVar(
		&prometheusBaseURI,
		"prometheus-base-uri",
		"http://localhost:9090",
		"prometheus server location",
	)
	generatePrometheusCmd.PersistentFlags().BoolVar(
		&prometheusOpenBrowser,
		"prometheus-open-browser",
		true,
		"open browser to prometheus dashboard",
	)
	generatePrometheusCmd.PersistentFlags().StringVar(
		&prometheusFile,
		"prometheus-file",
		"/tmp/prometheus.yaml",
		"prometheus file location",
	)
	generatePrometheusCmd.PersistentFlags().StringVar(
		&prometheusData,
		"prometheus-data",
		fmt.Sprintf("/tmp/prometheus-%d", time.Now().Unix()),
		"prometheus data location",
	)
	generatePrometheusCmd.PersistentFlags().BoolVar(
		&startPrometheus,
		"prometheus-start",
		true,
		"start prometheus",
	)
	prometheusCmd.AddCommand(
		generatePrometheusCmd,
	)
}

func Execute() error {
	return rootCmd.Execute()
}
