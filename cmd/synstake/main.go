// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// synstake runs the dual pool staking ledger.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/synstake/api"
	"github.com/vechain/synstake/builtin/staker"
	"github.com/vechain/synstake/cmd/synstake/httpserver"
	"github.com/vechain/synstake/genesis"
	"github.com/vechain/synstake/log"
	"github.com/vechain/synstake/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "Synstake"
	app.Usage = "Dual pool staking ledger"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Commands = append([]cli.Command{
		{
			Name:   "init",
			Usage:  "write the genesis of a new ledger",
			Flags:  []cli.Flag{dataDirFlag, cacheFlag, verbosityFlag, logFormatFlag, genesisFlag, devnetFlag},
			Action: initLedger,
		},
		{
			Name:  "serve",
			Usage: "serve the ledger API",
			Flags: []cli.Flag{
				dataDirFlag,
				cacheFlag,
				verbosityFlag,
				logFormatFlag,
				apiAddrFlag,
				apiCorsFlag,
				apiTimeoutFlag,
				apiSlowQueriesThresholdFlag,
				apiLog5xxErrorsFlag,
				enableAPILogsFlag,
				enableMetricsFlag,
				metricsAddrFlag,
				enableAdminFlag,
				adminAddrFlag,
			},
			Action: serve,
		},
	}, opCommands...)
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	switch {
	case ctx.Bool(devnetFlag.Name):
		return genesis.NewDevnet(), nil
	case ctx.String(genesisFlag.Name) != "":
		cfg, err := genesis.Load(ctx.String(genesisFlag.Name))
		if err != nil {
			return nil, err
		}
		return genesis.New(cfg)
	default:
		return nil, errors.Errorf("either -%s or -%s must be set", genesisFlag.Name, devnetFlag.Name)
	}
}

func initLedger(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}
	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	db, err := openMainDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := gene.Build(db); err != nil {
		return errors.Wrap(err, "build genesis")
	}
	log.Info("ledger initialized", "name", gene.Name(), "id", gene.ID(), "staker", gene.Staker())
	return nil
}

func serve(ctx *cli.Context) error {
	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}

	exitSignal, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	l, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.close()
	staker.SetLogger(log.WithContext("pkg", "staker", "ledger", l.meta.Name))

	logAPIRequests := &atomic.Bool{}
	logAPIRequests.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler := api.New(l.staker, func() uint64 { return uint64(time.Now().Unix()) }, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableMetrics:        enableMetrics,
		EnableReqLogger:      logAPIRequests,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
	})
	apiURL, stopAPI, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		handler,
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
	)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); stopAPI() }()

	if enableMetrics {
		url, stopMetrics, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		log.Info("metrics server started", "url", url)
		defer func() { log.Info("stopping metrics server..."); stopMetrics() }()
	}

	if ctx.Bool(enableAdminFlag.Name) {
		url, stopAdmin, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, logAPIRequests)
		if err != nil {
			return errors.Wrap(err, "start admin server")
		}
		log.Info("admin server started", "url", url)
		defer func() { log.Info("stopping admin server..."); stopAdmin() }()
	}

	log.Info("API server started", "url", apiURL, "ledger", l.meta.Name, "genesis", l.meta.ID)
	<-exitSignal.Done()
	log.Info("exit signal received")
	return nil
}
