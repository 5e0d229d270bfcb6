// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lpvault/lpvault/utils"
)

var roleCmd = &cobra.Command{
	Use: "role",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var grantRoleCmd = &cobra.Command{
	Use: "grant",
	RunE: func(*cobra.Command, []string) error {
		ctx := context.Background()
		_, factory, client, err := handler.DefaultActor()
		if err != nil {
			return err
		}

		roleName, err := handler.PromptString("role (admin/marketMaker)", 1, 16)
		if err != nil {
			return err
		}
		grantee, err := handler.PromptAddress("grantee")
		if err != nil {
			return err
		}

		cont, err := handler.PromptContinue()
		if !cont || err != nil {
			return err
		}

		if err := client.GrantRole(ctx, factory, roleName, grantee); err != nil {
			return err
		}
		utils.Outf("{{green}}granted %s to:{{/}} %s\n", roleName, grantee)
		return nil
	},
}
