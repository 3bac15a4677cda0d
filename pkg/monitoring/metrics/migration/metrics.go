/*
 * This file is part of the KubeVirt project
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 * Copyright The KubeVirt Authors.
 *
 */

package migrationmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"kubevirt.io/livemigration/pkg/util/migrations"
)

const (
	Namespace = "kubevirt"
	Subsystem = "migration"

	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

var (
	outgoingPermitsHeld = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "outgoing_permits_held",
			Help:      "Number of outgoing migrations currently admitted on this host.",
		},
		func() float64 { return float64(migrations.OutgoingMigrations.Held()) },
	)

	incomingPermitsHeld = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "incoming_permits_held",
			Help:      "Number of incoming migrations currently admitted on this host.",
		},
		func() float64 { return float64(migrations.IncomingMigrations.Held()) },
	)

	progressPercent = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "progress_percent",
			Help:      "Data transfer progress of a running outgoing migration.",
		},
		[]string{"vm"},
	)

	outcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "outcomes_total",
			Help:      "Number of finished outgoing migrations by outcome.",
		},
		[]string{"outcome"},
	)

	duration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "duration_seconds",
			Help:      "How long outgoing migrations take from request to outcome.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		outgoingPermitsHeld,
		incomingPermitsHeld,
		progressPercent,
		outcomes,
		duration,
	}
}

// Register adds the migration metrics to registerer. Collectors which are
// already registered are accepted.
func Register(registerer prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func SetProgress(vmID string, percentage int) {
	progressPercent.WithLabelValues(vmID).Set(float64(percentage))
}

func DeleteProgress(vmID string) {
	progressPercent.DeleteLabelValues(vmID)
}

func ObserveOutcome(outcome string, elapsed time.Duration) {
	outcomes.WithLabelValues(outcome).Inc()
	duration.Observe(elapsed.Seconds())
}
