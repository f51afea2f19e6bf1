// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/synstake/log"
)

func envVar(name string) string {
	return "SYNSTAKE_" + name
}

var (
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		Value:  defaultDataDir(),
		Usage:  "directory for the ledger database",
		EnvVar: envVar("DATA_DIR"),
	}
	verbosityFlag = cli.Uint64Flag{
		Name:   "verbosity",
		Value:  log.LegacyLevelInfo,
		Usage:  "log verbosity (0-9)",
		EnvVar: envVar("VERBOSITY"),
	}
	logFormatFlag = cli.StringFlag{
		Name:   "log-format",
		Value:  "terminal",
		Usage:  "log output format (terminal|json|logfmt)",
		EnvVar: envVar("LOG_FORMAT"),
	}
	cacheFlag = cli.IntFlag{
		Name:   "cache",
		Value:  128,
		Usage:  "megabytes of ram allocated to the database cache",
		EnvVar: envVar("CACHE"),
	}

	// init
	genesisFlag = cli.StringFlag{
		Name:   "genesis",
		Usage:  "path to the genesis file",
		EnvVar: envVar("GENESIS"),
	}
	devnetFlag = cli.BoolFlag{
		Name:  "devnet",
		Usage: "initialize with the devnet genesis",
	}

	// serve
	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8669",
		Usage:  "API service listening address",
		EnvVar: envVar("API_ADDR"),
	}
	apiCorsFlag = cli.StringFlag{
		Name:   "api-cors",
		Value:  "",
		Usage:  "comma separated list of domains from which to accept cross origin requests to API",
		EnvVar: envVar("API_CORS"),
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:   "api-timeout",
		Value:  10000,
		Usage:  "API request timeout value in milliseconds",
		EnvVar: envVar("API_TIMEOUT"),
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:   "api-slow-queries-threshold",
		Value:  0,
		Usage:  "all queries with duration longer than this threshold (in milliseconds) will be logged",
		EnvVar: envVar("API_SLOW_QUERIES_THRESHOLD"),
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:   "api-log-5xx-errors",
		Usage:  "log all requests answered with a 5xx status",
		EnvVar: envVar("API_LOG_5XX_ERRORS"),
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:   "enable-api-logs",
		Usage:  "enables API requests logging",
		EnvVar: envVar("ENABLE_API_LOGS"),
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		Usage:  "enables metrics collection",
		EnvVar: envVar("ENABLE_METRICS"),
	}
	metricsAddrFlag = cli.StringFlag{
		Name:   "metrics-addr",
		Value:  "localhost:2112",
		Usage:  "metrics service listening address",
		EnvVar: envVar("METRICS_ADDR"),
	}
	enableAdminFlag = cli.BoolFlag{
		Name:   "enable-admin",
		Usage:  "enables admin server",
		EnvVar: envVar("ENABLE_ADMIN"),
	}
	adminAddrFlag = cli.StringFlag{
		Name:   "admin-addr",
		Value:  "localhost:2113",
		Usage:  "admin service listening address",
		EnvVar: envVar("ADMIN_ADDR"),
	}

	// operations
	callerFlag = cli.StringFlag{
		Name:   "caller",
		Usage:  "address the operation is executed as",
		EnvVar: envVar("CALLER"),
	}
	assetFlag = cli.StringFlag{
		Name:  "asset",
		Value: "principal",
		Usage: "asset class (principal|liquidity)",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "amount in base units, decimal or 0x prefixed hex",
	}
	liquidityAmountFlag = cli.StringFlag{
		Name:  "liquidity-amount",
		Value: "0",
		Usage: "reward for the liquidity pool in base units",
	}
	durationFlag = cli.Uint64Flag{
		Name:  "duration",
		Usage: "reward duration in seconds, 0 for the configured default",
	}
	beneficiaryFlag = cli.StringFlag{
		Name:  "beneficiary",
		Usage: "address credited with the stake",
	}
	recipientFlag = cli.StringFlag{
		Name:  "recipient",
		Usage: "address receiving the rewards, defaults to the caller",
	}
	distributorFlag = cli.StringFlag{
		Name:  "distributor",
		Usage: "new reward distributor address",
	}
	timeFlag = cli.Uint64Flag{
		Name:  "time",
		Usage: "unix time the operation runs at, 0 for the wall clock",
	}
)
