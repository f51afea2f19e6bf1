// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/synstake/builtin/staker"
	"github.com/vechain/synstake/genesis"
	"github.com/vechain/synstake/log"
	"github.com/vechain/synstake/lvldb"
	"github.com/vechain/synstake/state"
)

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "parse verbosity flag")
	}
	logLevel := new(slog.LevelVar)
	logLevel.Set(log.FromLegacyLevel(lvl))

	format, err := log.ParseFormat(ctx.String(logFormatFlag.Name))
	if err != nil {
		return nil, errors.Wrapf(err, "-%s", logFormatFlag.Name)
	}
	useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	log.SetDefault(log.NewLogger(log.NewHandler(os.Stderr, format, logLevel, useColor)))
	return logLevel, nil
}

func makeDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	return dataDir, nil
}

func openMainDB(ctx *cli.Context) (*lvldb.LevelDB, error) {
	dataDir, err := makeDataDir(ctx)
	if err != nil {
		return nil, err
	}
	cacheMB := max(ctx.Int(cacheFlag.Name), 16)
	log.Debug("cache size(MB)", "size", cacheMB)

	dir := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open ledger database [%v]", dir)
	}
	return db, nil
}

// ledger is an opened ledger database.
type ledger struct {
	db     *lvldb.LevelDB
	meta   *genesis.Meta
	state  *state.State
	staker *staker.Staker
}

func openLedger(ctx *cli.Context, opts ...staker.Option) (*ledger, error) {
	db, err := openMainDB(ctx)
	if err != nil {
		return nil, err
	}
	meta, err := genesis.LoadMeta(db)
	if err != nil {
		db.Close()
		if errors.Is(err, genesis.ErrNoGenesis) {
			return nil, errors.New("ledger not initialized, run the init command first")
		}
		return nil, err
	}
	st := state.New(db)
	return &ledger{
		db:     db,
		meta:   meta,
		state:  st,
		staker: genesis.NewStaker(st, meta.Staker, opts...),
	}, nil
}

func (l *ledger) commit() error {
	return errors.Wrap(l.state.Commit(), "commit state")
}

func (l *ledger) close() {
	if err := l.db.Close(); err != nil {
		log.Warn("failed to close database", "err", err)
	}
}
