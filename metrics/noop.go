// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

type noopMetrics struct{}

func defaultNoopMetrics() Metrics {
	return &noopMetrics{}
}

func (n noopMetrics) GetOrCreateCountMeter(string) CountMeter { return &noopMeter{} }

func (n noopMetrics) GetOrCreateCountVecMeter(string, []string) CountVecMeter { return &noopMeter{} }

func (n noopMetrics) GetOrCreateGaugeMeter(string) GaugeMeter { return &noopMeter{} }

func (n noopMetrics) GetOrCreateGaugeVecMeter(string, []string) GaugeVecMeter { return &noopMeter{} }

func (n noopMetrics) GetOrCreateHistogramVecMeter(string, []string, []int64) HistogramVecMeter {
	return &noopMeter{}
}

func (n noopMetrics) GetOrCreateHandler() http.Handler {
	return http.NotFoundHandler()
}

type noopMeter struct{}

func (n noopMeter) Add(int64)                                  {}
func (n noopMeter) Set(int64)                                  {}
func (n noopMeter) AddWithLabel(int64, map[string]string)      {}
func (n noopMeter) SetWithLabel(int64, map[string]string)      {}
func (n noopMeter) ObserveWithLabels(int64, map[string]string) {}
