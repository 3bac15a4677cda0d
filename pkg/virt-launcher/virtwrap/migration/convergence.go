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

	"kubevirt.io/livemigration/pkg/log"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
)

// ConvergenceScheduleExecutor applies the actions of a ConvergenceSchedule
// to a migrating domain. Stalling actions are popped as they fire.
type ConvergenceScheduleExecutor struct {
	dom    cli.VirDomain
	logger *log.FilteredLogger

	lock     sync.Mutex
	init     []Action
	stalling []StallingAction
}

func NewConvergenceScheduleExecutor(dom cli.VirDomain, schedule *ConvergenceSchedule, logger *log.FilteredLogger) *ConvergenceScheduleExecutor {
	schedule = schedule.DeepCopy()
	if schedule == nil {
		schedule = &ConvergenceSchedule{}
	}
	return &ConvergenceScheduleExecutor{
		dom:      dom,
		logger:   logger,
		init:     schedule.Init,
		stalling: schedule.Stalling,
	}
}

// ExecuteInit runs the init actions in order. It stops early and returns
// true if one of them aborted the job.
func (e *ConvergenceScheduleExecutor) ExecuteInit() bool {
	for _, action := range e.init {
		if e.Execute(action) {
			return true
		}
	}
	return false
}

// Next fires the head of the stalling list if the iteration counter
// strictly exceeds its limit. At most one action fires per call.
func (e *ConvergenceScheduleExecutor) Next(iterations int) (fired bool, aborted bool) {
	e.lock.Lock()
	if len(e.stalling) == 0 || iterations <= e.stalling[0].Limit {
		e.lock.Unlock()
		return false, false
	}
	head := e.stalling[0]
	e.stalling = e.stalling[1:]
	e.lock.Unlock()

	e.logger.V(3).Infof("Stalling for %d iterations, applying %s (limit %d)", iterations, head.Action, head.Limit)
	return true, e.Execute(head.Action)
}

// Execute applies a single action and reports whether it aborted the job.
func (e *ConvergenceScheduleExecutor) Execute(action Action) bool {
	switch action.Name {
	case ActionSetDowntime:
		downtime, err := action.downtime()
		if err != nil {
			e.logger.Reason(err).Errorf("Skipping invalid convergence action %s", action)
			return false
		}
		e.logger.Infof("Setting migration downtime to %d ms", downtime)
		if err := e.dom.MigrateSetMaxDowntime(downtime, 0); err != nil {
			e.logger.Reason(err).Warningf("Failed to set migration downtime to %d ms", downtime)
		}
		return false
	case ActionAbort:
		e.logger.Warning("Aborting migration as requested by the convergence schedule")
		if err := e.dom.AbortJob(); err != nil {
			e.logger.Reason(err).Error("Failed to abort migration job")
		}
		return true
	}
	e.logger.Errorf("Skipping unknown convergence action %s", action)
	return false
}

// Remaining returns the stalling actions that did not fire yet.
func (e *ConvergenceScheduleExecutor) Remaining() []StallingAction {
	e.lock.Lock()
	defer e.lock.Unlock()
	return append([]StallingAction{}, e.stalling...)
}
