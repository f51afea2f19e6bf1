// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package position

import (
	"github.com/pkg/errors"
	"github.com/vechain/synstake/builtin/solidity"
	"github.com/vechain/synstake/synstake"
)

// Service stores the positions of one asset class keyed by user.
type Service struct {
	class     synstake.AssetClass
	positions *solidity.Mapping[synstake.Address, *Position]
}

func New(sctx *solidity.Context, class synstake.AssetClass) *Service {
	slot := synstake.BytesToBytes32([]byte("positions-" + class.String()))
	return &Service{
		class:     class,
		positions: solidity.NewMapping[synstake.Address, *Position](sctx, slot),
	}
}

// Get returns the user's position, zero valued when the user never staked.
func (s *Service) Get(user synstake.Address) (*Position, error) {
	p, err := s.positions.Get(user)
	if err != nil {
		return nil, errors.Wrapf(err, "load %v position", s.class)
	}
	p.normalize()
	return p, nil
}

// Set stores the position. An empty position without rewards is removed.
func (s *Service) Set(user synstake.Address, p *Position) error {
	if p.IsEmpty() && p.Rewards.Sign() == 0 && !p.IsWithdrawing {
		s.positions.Delete(user)
		return nil
	}
	if err := s.positions.Set(user, p); err != nil {
		return errors.Wrapf(err, "store %v position", s.class)
	}
	return nil
}

// Delete zeroes the user's position.
func (s *Service) Delete(user synstake.Address) {
	s.positions.Delete(user)
}
