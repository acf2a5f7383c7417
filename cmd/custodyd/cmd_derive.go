package main

import (
	"fmt"
	"strconv"

	"github.com/iov-one/custody"
	custodyd "github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/token"
	"github.com/iov-one/custody/x/vault"
	"github.com/spf13/cobra"
)

func deriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print the program derived addresses of records",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "offer <maker> <nonce>",
			Short: "Offer, authority and vault holding addresses",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				maker, err := custody.ParseAddress(args[0])
				if err != nil {
					return err
				}
				nonce, err := strconv.ParseUint(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("nonce: %w", err)
				}
				offer, _, err := escrow.OfferAddress(maker, nonce)
				if err != nil {
					return err
				}
				authority, _, err := escrow.AuthorityAddress(offer)
				if err != nil {
					return err
				}
				vaultAddr, err := escrow.VaultAddress(offer)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "offer     %s\n", offer)
				fmt.Fprintf(out, "authority %s\n", authority)
				fmt.Fprintf(out, "vault     %s\n", vaultAddr)
				return nil
			},
		},
		&cobra.Command{
			Use:   "vault <user>",
			Short: "Vault state and custody account addresses",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				user, err := custody.ParseAddress(args[0])
				if err != nil {
					return err
				}
				state, _, err := vault.StateAddress(user)
				if err != nil {
					return err
				}
				account, _, err := vault.CustodyAddress(state)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "state   %s\n", state)
				fmt.Fprintf(out, "custody %s\n", account)
				return nil
			},
		},
		&cobra.Command{
			Use:   "holding <owner> <mint>",
			Short: "Associated token holding address",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				owner, err := custody.ParseAddress(args[0])
				if err != nil {
					return err
				}
				mint, err := custody.ParseAddress(args[1])
				if err != nil {
					return err
				}
				holding, err := token.AssociatedHolding(owner, mint)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), holding)
				return nil
			},
		},
		&cobra.Command{
			Use:   "mint <name>",
			Short: "Address of a development mint created by init",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), custodyd.DevMint(args[0]))
				return nil
			},
		},
	)
	return cmd
}
