// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vechain/synstake/log"
)

var logger = log.WithContext("pkg", "httpserver")

// serve runs handler on listener until the returned function is called. The returned function
// blocks until the server has stopped.
func serve(name string, listener net.Listener, handler http.Handler, writeTimeout time.Duration) func() {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      writeTimeout,
	}

	var g errgroup.Group
	g.Go(func() error {
		return srv.Serve(listener)
	})
	return func() {
		srv.Close()
		if err := g.Wait(); err != nil && err != http.ErrServerClosed {
			logger.Warn("server stopped with error", "server", name, "error", err)
		}
	}
}
