package main

import (
	"fmt"

	custodyd "github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), custodyd.Version)
		},
	}
}
