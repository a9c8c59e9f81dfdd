// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/snapraid-metrics/pkg/defaults"
	"github.com/NVIDIA/snapraid-metrics/pkg/snapraid"
)

// runMetrics describes the collector itself. Each run gets a private
// registry so nothing leaks between runs or into the default registry.
type runMetrics struct {
	registry *prometheus.Registry

	info             *prometheus.GaugeVec
	operationSuccess *prometheus.GaugeVec
	runDuration      prometheus.Gauge
}

func newRunMetrics(version string) *runMetrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	m := &runMetrics{
		registry: reg,
		info: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: defaults.CollectorMetricPrefix + "info",
				Help: "Build information of the snapraid metrics collector.",
			},
			[]string{"version"},
		),
		operationSuccess: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: defaults.CollectorMetricPrefix + "operation_success",
				Help: "Whether the operation exited with status 0 in this run.",
			},
			[]string{"operation"},
		),
		runDuration: f.NewGauge(
			prometheus.GaugeOpts{
				Name: defaults.CollectorMetricPrefix + "run_duration_seconds",
				Help: "Wall-clock duration of the whole collector run.",
			},
		),
	}
	m.info.WithLabelValues(version).Set(1)
	return m
}

func (m *runMetrics) observe(inv *snapraid.Invocation) {
	v := 0.0
	if inv.Succeeded() {
		v = 1
	}
	m.operationSuccess.WithLabelValues(inv.Operation).Set(v)
}
