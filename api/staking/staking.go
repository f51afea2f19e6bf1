// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/synstake/api/utils"
	"github.com/vechain/synstake/builtin/staker"
	"github.com/vechain/synstake/builtin/staker/pool"
)

// Staking serves the read side of the ledger.
type Staking struct {
	mu     sync.Mutex
	staker *staker.Staker
	clock  func() uint64
}

// New returns the staking API. clock supplies the time used when a request names none.
func New(s *staker.Staker, clock func() uint64) *Staking {
	return &Staking{
		staker: s,
		clock:  clock,
	}
}

// serverError maps ledger errors to responses. A ledger that was never initialized has nothing to
// show. A time before the last pool update is a bad request.
func serverError(err error) error {
	switch {
	case errors.Is(err, staker.ErrNotInitialized):
		return utils.NotFound(err)
	case errors.Is(err, pool.ErrClockWentBackwards):
		return utils.BadRequest(err)
	}
	return err
}

func (s *Staking) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	class, err := utils.ParseAsset(mux.Vars(req)["asset"])
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.staker.Pool(class)
	if err != nil {
		return serverError(err)
	}
	return utils.WriteJSON(w, convertPool(class, l))
}

func (s *Staking) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	class, err := utils.ParseAsset(mux.Vars(req)["asset"])
	if err != nil {
		return err
	}
	user, err := utils.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.staker.Position(class, user)
	if err != nil {
		return serverError(err)
	}
	return utils.WriteJSON(w, convertPosition(class, user, p))
}

func (s *Staking) handleGetClaimable(w http.ResponseWriter, req *http.Request) error {
	user, err := utils.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	now, err := utils.ParseTime(req.URL.Query().Get("time"), s.clock)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	principal, liquidity, err := s.staker.Claimable(user, now)
	if err != nil {
		return serverError(err)
	}
	return utils.WriteJSON(w, &Claimable{
		User:      user,
		Time:      now,
		Principal: amount(principal),
		Liquidity: amount(liquidity),
		Total:     amount(new(big.Int).Add(principal, liquidity)),
	})
}

func (s *Staking) handleGetSuper(w http.ResponseWriter, req *http.Request) error {
	user, err := utils.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	now, err := utils.ParseTime(req.URL.Query().Get("time"), s.clock)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	principal, liquidity, err := s.staker.CanPromoteToSuper(user, now)
	if err != nil {
		return serverError(err)
	}
	return utils.WriteJSON(w, &SuperEligibility{
		User:      user,
		Time:      now,
		Principal: principal,
		Liquidity: liquidity,
	})
}

func (s *Staking) handleGetStats(w http.ResponseWriter, _ *http.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.staker.Stats()
	if err != nil {
		return serverError(err)
	}
	revenue, err := s.staker.FeeRevenue()
	if err != nil {
		return serverError(err)
	}
	return utils.WriteJSON(w, convertStats(stats, revenue))
}

func (s *Staking) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.staker.Config()
	if err != nil {
		return serverError(err)
	}
	return utils.WriteJSON(w, convertConfig(cfg))
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/pools/{asset}").
		Methods(http.MethodGet).
		Name("GET /staking/pools/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetPool))
	sub.Path("/positions/{asset}/{address}").
		Methods(http.MethodGet).
		Name("GET /staking/positions/{asset}/{address}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetPosition))
	sub.Path("/claimable/{address}").
		Methods(http.MethodGet).
		Name("GET /staking/claimable/{address}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetClaimable))
	sub.Path("/super/{address}").
		Methods(http.MethodGet).
		Name("GET /staking/super/{address}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetSuper))
	sub.Path("/stats").
		Methods(http.MethodGet).
		Name("GET /staking/stats").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStats))
	sub.Path("/config").
		Methods(http.MethodGet).
		Name("GET /staking/config").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetConfig))
}
