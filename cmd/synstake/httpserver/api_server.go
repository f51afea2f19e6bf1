// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// StartAPIServer serves the ledger API on addr. Responses taking longer than timeout are aborted,
// a zero timeout disables the limit.
func StartAPIServer(addr string, handler http.Handler, timeout time.Duration) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	if timeout > 0 {
		handler = http.TimeoutHandler(handler, timeout, "request timeout")
	}
	return "http://" + listener.Addr().String(), serve("api", listener, handler, 0), nil
}
