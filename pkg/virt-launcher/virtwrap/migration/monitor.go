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
	"sync"
	"time"

	"libvirt.org/go/libvirt"

	"k8s.io/utils/clock"

	"kubevirt.io/livemigration/pkg/log"
	virtconfig "kubevirt.io/livemigration/pkg/virt-config"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
)

// ProgressFunc is called with every snapshot published by the monitor.
type ProgressFunc func(progress *Progress)

type MonitorOptions struct {
	// Schedule selects schedule mode; nil means legacy mode.
	Schedule   *ConvergenceSchedule
	DowntimeMs int64
	MemSizeMiB int64
	// StartTime is when the migration was requested, shifted by the time
	// the destination needed to create its VM.
	StartTime  time.Time
	OnProgress ProgressFunc
}

// MonitorThread watches a running migration, detects iterations and
// stalls, and enforces the convergence policy.
type MonitorThread struct {
	dom    cli.VirDomain
	config *virtconfig.MigrationConfig
	clock  clock.Clock
	logger *log.FilteredLogger

	startTime  time.Time
	memSizeMiB int64
	onProgress ProgressFunc

	executor       *ConvergenceScheduleExecutor
	downtimeThread *DowntimeThread

	// tick state, only touched by the monitor goroutine
	hasLowmark        bool
	lowmark           uint64
	lastProgressTime  time.Time
	hasLastRemaining  bool
	lastDataRemaining uint64
	iterations        int

	lock        sync.Mutex
	started     bool
	progress    *Progress
	abortReason *AbortReason
	stopOnce    sync.Once
	stop        chan struct{}
	done        chan struct{}
}

func NewMonitorThread(dom cli.VirDomain, config *virtconfig.MigrationConfig, clk clock.Clock, logger *log.FilteredLogger, options MonitorOptions) *MonitorThread {
	m := &MonitorThread{
		dom:        dom,
		config:     config,
		clock:      clk,
		logger:     logger,
		startTime:  options.StartTime,
		memSizeMiB: options.MemSizeMiB,
		onProgress: options.OnProgress,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	if m.startTime.IsZero() {
		m.startTime = clk.Now()
	}
	if options.Schedule != nil {
		m.executor = NewConvergenceScheduleExecutor(dom, options.Schedule, logger)
	} else {
		m.downtimeThread = NewDowntimeThread(dom, options.DowntimeMs, options.MemSizeMiB, config, clk, logger)
	}
	return m
}

// migrationMaxTime is the legacy hard ceiling of a migration, 0 if disabled.
func (m *MonitorThread) migrationMaxTime() time.Duration {
	seconds := (m.config.MaxTimePerGiB*m.memSizeMiB + 1023) / 1024
	return time.Duration(seconds) * time.Second
}

func (m *MonitorThread) legacy() bool {
	return m.executor == nil
}

func (m *MonitorThread) Start() {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.started {
		return
	}
	m.started = true
	go m.run()
}

func (m *MonitorThread) run() {
	defer close(m.done)
	defer func() {
		if m.downtimeThread != nil {
			m.downtimeThread.Stop()
			m.downtimeThread.Wait()
		}
	}()

	if m.executor != nil {
		if m.executor.ExecuteInit() {
			m.recordAbort(ScheduleAbort)
			return
		}
	} else {
		m.downtimeThread.SetInitialDowntime()
	}

	interval := m.config.MonitorIntervalDuration()
	if interval <= 0 {
		m.logger.V(3).Info("Migration progress monitoring is disabled")
		return
	}

	for {
		select {
		case <-m.stop:
			return
		case <-m.clock.After(interval):
		}
		select {
		case <-m.stop:
			return
		default:
		}
		if m.tick() {
			return
		}
	}
}

// tick performs one monitoring step and reports whether monitoring should stop.
func (m *MonitorThread) tick() bool {
	info, err := m.dom.GetJobStats(0)
	if err != nil {
		m.logger.Reason(err).V(3).Info("Failed to read migration job stats")
		return false
	}
	progress := NewProgress(info)
	if !progress.Ongoing() {
		// the transfer has not started yet or has already finished
		return false
	}

	now := m.clock.Now()
	legacy := m.legacy()

	if maxTime := m.migrationMaxTime(); legacy && maxTime > 0 && now.Sub(m.startTime) > maxTime {
		m.logger.Warningf("The migration took %d seconds which is exceeding the configured maximum time for migrations of %d seconds. The migration will be aborted.",
			int64(now.Sub(m.startTime).Seconds()), int64(maxTime.Seconds()))
		m.abort(LegacyTimeout)
		return true
	}

	remaining := progress.DataRemaining
	if !m.hasLowmark || m.lowmark > remaining {
		m.hasLowmark = true
		m.lowmark = remaining
		m.lastProgressTime = now
	} else {
		m.logger.Warningf("Migration stalling: remaining (%dMiB) > lowmark (%dMiB).", remaining/mib, m.lowmark/mib)
	}

	stop := false
	if m.hasLastRemaining && remaining > m.lastDataRemaining {
		m.iterations++
		m.logger.V(3).Infof("new iteration: %d", m.iterations)
		if legacy {
			if m.iterations == 1 {
				m.downtimeThread.Start()
			}
		} else if _, aborted := m.executor.Next(m.iterations); aborted {
			m.recordAbort(ScheduleAbort)
			stop = true
		}
	}
	m.hasLastRemaining = true
	m.lastDataRemaining = remaining

	if progressTimeout := m.config.ProgressTimeoutDuration(); legacy && progressTimeout > 0 && now.Sub(m.lastProgressTime) > progressTimeout {
		m.logger.Warningf("Migration is stuck: Hasn't progressed in %d seconds. Aborting.", int64(now.Sub(m.lastProgressTime).Seconds()))
		m.abort(StallTimeout)
		stop = true
	}

	m.publish(progress)
	return stop
}

func (m *MonitorThread) publish(progress *Progress) {
	m.lock.Lock()
	m.progress = progress
	m.lock.Unlock()

	m.logger.Info(progress.String())
	if m.onProgress != nil {
		m.onProgress(progress)
	}
}

func (m *MonitorThread) abort(reason AbortReason) {
	m.recordAbort(reason)
	if err := m.dom.AbortJob(); err != nil && !cli.IsNoDomainJob(err) {
		m.logger.Reason(err).Error("Failed to abort migration job")
	}
}

// recordAbort keeps the first abort reason injected by the monitor.
func (m *MonitorThread) recordAbort(reason AbortReason) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.abortReason == nil {
		m.abortReason = &reason
	}
}

// AbortReason returns why the monitor aborted the job, if it did.
func (m *MonitorThread) AbortReason() (AbortReason, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.abortReason == nil {
		return 0, false
	}
	return *m.abortReason, true
}

// Progress returns the last published snapshot or nil.
func (m *MonitorThread) Progress() *Progress {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.progress
}

func (m *MonitorThread) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

func (m *MonitorThread) Wait() {
	m.lock.Lock()
	started := m.started
	m.lock.Unlock()
	if started {
		<-m.done
	}
}

// completedDowntime reads the downtime achieved by a finished migration.
func completedDowntime(dom cli.VirDomain) (int64, bool) {
	info, err := dom.GetJobStats(libvirt.DOMAIN_JOB_STATS_COMPLETED)
	if err != nil || info == nil || !info.DowntimeSet {
		return 0, false
	}
	return int64(info.Downtime), true
}
