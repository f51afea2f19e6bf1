// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) (int, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAdminServer(t *testing.T) {
	var lvl slog.LevelVar
	lvl.Set(slog.LevelWarn)
	var logRequests atomic.Bool

	url, stop, err := StartAdminServer("127.0.0.1:0", &lvl, &logRequests)
	require.NoError(t, err)
	defer stop()

	assert.True(t, strings.HasSuffix(url, "/admin"))
	code, body := get(t, url+"/loglevel")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"currentLevel":"warn"`)

	code, body = get(t, url+"/apilogs")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"enabled":false`)
}

func TestAPIServer(t *testing.T) {
	handler := http.NewServeMux()
	handler.HandleFunc("/fast", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "ok")
	})
	handler.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	url, stop, err := StartAPIServer("127.0.0.1:0", handler, 50*time.Millisecond)
	require.NoError(t, err)
	defer stop()

	code, body := get(t, url+"/fast")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	code, body = get(t, url+"/slow")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "request timeout", body)
}

func TestListenError(t *testing.T) {
	_, stop, err := StartMetricsServer("127.0.0.1:0")
	require.NoError(t, err)
	stop()

	_, _, err = StartMetricsServer("not an address")
	assert.ErrorContains(t, err, "listen metrics API addr")
}
