// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"log/slog"
	"net"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/vechain/synstake/api/admin"
)

// StartAdminServer serves the admin API on addr. It returns the admin url and a function that
// stops the server.
func StartAdminServer(addr string, logLevel *slog.LevelVar, logRequests *atomic.Bool) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	handler := admin.New(logLevel, logRequests)
	return "http://" + listener.Addr().String() + "/admin", serve("admin", listener, handler, 0), nil
}
