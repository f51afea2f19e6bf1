// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/synstake/api/admin/apilogs"
	"github.com/vechain/synstake/api/admin/loglevel"
)

// New returns the admin handler serving under /admin.
func New(logLevel *slog.LevelVar, logRequests *atomic.Bool) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(sub, "/loglevel")
	apilogs.New(logRequests).Mount(sub, "/apilogs")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
