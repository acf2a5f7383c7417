package main

import (
	"fmt"
	"os"

	custodyd "github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/abci/server"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart()
		},
	}
	cmd.Flags().String(flagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().Bool(flagDebug, false, "call stack returned on error")
	mustBind(flagBind, cmd)
	mustBind(flagDebug, cmd)
	return cmd
}

func runStart() error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	home := viper.GetString(flagHome)
	addr := viper.GetString(flagBind)
	svr, err := startServer(home, addr, viper.GetBool(flagDebug), logger)
	if err != nil {
		return err
	}

	// Stop the server on interrupt, the process exits afterwards.
	cmn.TrapSignal(logger, func() {
		logger.Info("Stopping ABCI app")
		if err := svr.Stop(); err != nil {
			logger.Error("Stopping ABCI app", "err", err)
		}
	})
	select {}
}

// startServer opens the application stored in home and serves it over a
// socket bound to addr.
func startServer(home, addr string, debug bool, logger log.Logger) (cmn.Service, error) {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}
	application, err := custodyd.GenerateApp(home, logger, debug)
	if err != nil {
		return nil, err
	}

	logger.Info("Starting ABCI app", "bind", addr)
	svr, err := server.NewServer(addr, "socket", application)
	if err != nil {
		return nil, fmt.Errorf("creating listener: %w", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return nil, fmt.Errorf("starting server: %w", err)
	}
	return svr, nil
}
