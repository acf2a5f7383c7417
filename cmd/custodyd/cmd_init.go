package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	custodyd "github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const flagGenesis = "genesis"

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [owner address]",
		Short: "Initialize app_state in the tendermint genesis file",
		Long: `Set the app_state of an existing tendermint genesis file: the default
reserve configuration and one development account funded with lamports and
a holding of each development mint. Without an owner address a new key is
generated and its seed printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			genFile := viper.GetString(flagGenesis)
			if genFile == "" {
				genFile = filepath.Join(viper.GetString(flagHome), "config", "genesis.json")
			}
			options, secret, err := custodyd.GenInitOptions(args)
			if err != nil {
				return err
			}
			if err := addGenesisOptions(genFile, options); err != nil {
				return err
			}
			if secret != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "development key seed: %s\n", secret)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "app_state written to %s\n", genFile)
			return nil
		},
	}
	cmd.Flags().String(flagGenesis, "", "genesis file (default <home>/config/genesis.json)")
	mustBind(flagGenesis, cmd)
	return cmd
}

// genesisDoc involves some tendermint-specific structures we don't want to
// parse, so we just grab it into a raw object format, so we can add one
// line.
type genesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read genesis: %w", err)
	}

	var doc genesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return fmt.Errorf("parse genesis: %w", err)
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, out, 0600)
}
