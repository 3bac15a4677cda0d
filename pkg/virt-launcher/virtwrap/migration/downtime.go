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

package migration

import (
	"math"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"kubevirt.io/livemigration/pkg/log"
	virtconfig "kubevirt.io/livemigration/pkg/virt-config"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
)

// minimal guest memory accounted for when spacing downtime steps
const downtimeMinMemMiB = 2048

// ExponentialDowntime returns steps downtime values in ms growing
// exponentially towards downtime. The last value is downtime. A downtime
// too small to grow over steps yields the single value downtime.
func ExponentialDowntime(downtime int64, steps int) []float64 {
	if steps <= 1 {
		return []float64{float64(downtime)}
	}
	offset := float64(downtime) / float64(steps)
	if float64(downtime)-offset <= 1 {
		return []float64{float64(downtime)}
	}
	base := math.Pow(float64(downtime)-offset, 1/float64(steps-1))

	values := make([]float64, 0, steps)
	for i := 0; i < steps-1; i++ {
		values = append(values, offset+math.Pow(base, float64(i)))
	}
	return append(values, float64(downtime))
}

// downtimeStepWait spaces the legacy downtime steps proportionally to the
// guest memory, bounded by the configured step ceiling.
func downtimeStepWait(config *virtconfig.MigrationConfig, memSizeMiB int64, steps int) time.Duration {
	if steps < 1 {
		steps = 1
	}
	if memSizeMiB < downtimeMinMemMiB {
		memSizeMiB = downtimeMinMemMiB
	}
	totalSeconds := (config.DowntimeDelayPerGiB*memSizeMiB + 1023) / 1024
	wait := time.Duration(float64(totalSeconds) / float64(steps) * float64(time.Second))
	if ceiling := config.DowntimeStepCeilingDuration(); ceiling > 0 && wait > ceiling {
		wait = ceiling
	}
	return wait
}

// DowntimeThread raises the tolerated downtime of a legacy migration step
// by step until it reaches the requested value.
type DowntimeThread struct {
	dom    cli.VirDomain
	clock  clock.Clock
	logger *log.FilteredLogger

	values []float64
	wait   time.Duration

	lock     sync.Mutex
	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewDowntimeThread(dom cli.VirDomain, downtime int64, memSizeMiB int64, config *virtconfig.MigrationConfig, clk clock.Clock, logger *log.FilteredLogger) *DowntimeThread {
	steps := config.DowntimeSteps
	return &DowntimeThread{
		dom:    dom,
		clock:  clk,
		logger: logger,
		values: ExponentialDowntime(downtime, steps),
		wait:   downtimeStepWait(config, memSizeMiB, steps),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// SetInitialDowntime applies the first step right away, before Start.
func (d *DowntimeThread) SetInitialDowntime() {
	d.setDowntime(d.values[0])
}

func (d *DowntimeThread) Start() {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.started {
		return
	}
	d.started = true
	go d.run()
}

func (d *DowntimeThread) run() {
	defer close(d.done)
	d.logger.V(3).Infof("Starting downtime thread, %d steps every %v", len(d.values), d.wait)

	for i, value := range d.values {
		select {
		case <-d.stop:
			d.logger.V(3).Info("Downtime thread stopped")
			return
		default:
		}
		d.setDowntime(value)
		if i == len(d.values)-1 {
			break
		}
		select {
		case <-d.stop:
			d.logger.V(3).Info("Downtime thread stopped")
			return
		case <-d.clock.After(d.wait):
		}
	}
	d.logger.V(3).Info("Downtime thread exiting")
}

func (d *DowntimeThread) setDowntime(value float64) {
	downtime := uint64(value)
	d.logger.V(3).Infof("Setting migration downtime to %d ms", downtime)
	if err := d.dom.MigrateSetMaxDowntime(downtime, 0); err != nil {
		d.logger.Reason(err).Warningf("Failed to set migration downtime to %d ms", downtime)
	}
}

// Stop is idempotent and may be called whether or not the thread was started.
func (d *DowntimeThread) Stop() {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
}

// Wait joins the thread if it was started.
func (d *DowntimeThread) Wait() {
	d.lock.Lock()
	started := d.started
	d.lock.Unlock()
	if started {
		<-d.done
	}
}

func (d *DowntimeThread) IsAlive() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	if !d.started {
		return false
	}
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}
