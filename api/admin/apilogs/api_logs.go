// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package apilogs

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/synstake/api/utils"
	"github.com/vechain/synstake/log"
)

// LogStatus reports whether every API request is logged.
type LogStatus struct {
	Enabled *bool `json:"enabled"`
}

type APILogs struct {
	enabled *atomic.Bool
}

func New(enabled *atomic.Bool) *APILogs {
	return &APILogs{
		enabled: enabled,
	}
}

func (a *APILogs) status() LogStatus {
	enabled := a.enabled.Load()
	return LogStatus{Enabled: &enabled}
}

func (a *APILogs) handleGetEnabled(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, a.status())
}

func (a *APILogs) handlePostEnabled(w http.ResponseWriter, r *http.Request) error {
	var req LogStatus
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "invalid request body"))
	}
	if req.Enabled == nil {
		return utils.BadRequest(errors.New("missing 'enabled' field"))
	}
	a.enabled.Store(*req.Enabled)
	log.Warn("admin changed the request logger", "enabled", *req.Enabled)

	return utils.WriteJSON(w, a.status())
}

func (a *APILogs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("get-api-logs-enabled").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetEnabled))

	sub.Path("").
		Methods(http.MethodPost).
		Name("post-api-logs-enabled").
		HandlerFunc(utils.WrapHandlerFunc(a.handlePostEnabled))
}
