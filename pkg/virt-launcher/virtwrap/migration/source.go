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
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"libvirt.org/go/libvirt"

	"k8s.io/apimachinery/pkg/util/json"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/utils/clock"

	migrationv1 "kubevirt.io/livemigration/pkg/handler-launcher-com/migration/v1"
	"kubevirt.io/livemigration/pkg/log"
	migrationmetrics "kubevirt.io/livemigration/pkg/monitoring/metrics/migration"
	"kubevirt.io/livemigration/pkg/util/migrations"
	migrationclient "kubevirt.io/livemigration/pkg/virt-handler/migration-client"
	virtconfig "kubevirt.io/livemigration/pkg/virt-config"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
)

type State string

const (
	StateCreated        State = "Created"
	StateConnecting     State = "Connecting"
	StatePreparingGuest State = "PreparingGuest"
	StateAdmitting      State = "Admitting"
	StateRetryWait      State = "RetryWait"
	StateTransferring   State = "Transferring"
	StateSucceeded      State = "Succeeded"
	StateFailed         State = "Failed"
	StateCancelled      State = "Cancelled"
)

const (
	defaultGuestLockTimeout      = 30 * time.Second
	defaultGuestLockPollInterval = 1 * time.Second
)

// machine parameters which only make sense on the source host
var transientMachineParams = []string{"displayIp", "display", "pid"}

type SourceDeps struct {
	Destinations migrationclient.ClientFactory
	Storage      Storage
	Hooks        HookRunner
	// OutgoingGate defaults to the process wide outgoing gate.
	OutgoingGate *migrations.Gate
	Clock        clock.Clock
}

type StatusReport struct {
	JobID    string             `json:"jobId"`
	State    State              `json:"state"`
	Status   migrationv1.Status `json:"status"`
	Progress int                `json:"progress"`
	// Downtime is the achieved downtime in ms, known once the migration succeeded.
	Downtime *int64 `json:"downtime,omitempty"`
}

type vmRef string

func (r vmRef) ID() string   { return string(r) }
func (r vmRef) Kind() string { return "VirtualMachine" }

// SourceThread drives one outgoing migration of a VM, either live to a
// destination host or to a hand-off volume.
type SourceThread struct {
	vm     VM
	dom    cli.VirDomain
	params MigrationParameters
	config *virtconfig.MigrationConfig
	deps   SourceDeps
	gate   *migrations.Gate
	clock  clock.Clock
	logger *log.FilteredLogger
	jobID  string

	ctx    context.Context
	cancel context.CancelFunc

	guestLockTimeout      time.Duration
	guestLockPollInterval time.Duration

	lock            sync.Mutex
	state           State
	status          migrationv1.Status
	progress        int
	downtime        *int64
	maxBandwidth    uint64
	started         bool
	transferring    bool
	paused          bool
	createAttempted bool
	monitor         *MonitorThread
	destination     migrationclient.DestinationClient

	runOnce sync.Once
	running bool
	done    chan struct{}
}

func NewSourceThread(vm VM, params MigrationParameters, config *virtconfig.MigrationConfig, deps SourceDeps) (*SourceThread, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid migration parameters: %v", err)
	}
	if params.Hibernating() && deps.Storage == nil {
		return nil, fmt.Errorf("file migration requires a storage backend")
	}
	if !params.Hibernating() && deps.Destinations == nil {
		return nil, fmt.Errorf("remote migration requires a destination client factory")
	}
	if deps.Clock == nil {
		deps.Clock = clock.RealClock{}
	}
	gate := deps.OutgoingGate
	if gate == nil {
		gate = migrations.OutgoingMigrations
	}

	params = params.withDefaults(config)
	jobID := uuid.New().String()
	ctx, cancel := context.WithCancel(context.Background())

	return &SourceThread{
		vm:                    vm,
		dom:                   vm.Domain(),
		params:                params,
		config:                config,
		deps:                  deps,
		gate:                  gate,
		clock:                 deps.Clock,
		logger:                log.Log.Object(vmRef(vm.ID())).With("migration", jobID),
		jobID:                 jobID,
		ctx:                   ctx,
		cancel:                cancel,
		guestLockTimeout:      defaultGuestLockTimeout,
		guestLockPollInterval: defaultGuestLockPollInterval,
		state:                 StateCreated,
		status:                migrationv1.InProgress(),
		maxBandwidth:          params.MaxBandwidth,
		done:                  make(chan struct{}),
	}, nil
}

func (s *SourceThread) JobID() string {
	return s.jobID
}

func (s *SourceThread) Start() {
	s.runOnce.Do(func() {
		s.lock.Lock()
		s.running = true
		s.lock.Unlock()
		go s.run()
	})
}

// Wait blocks until a started migration finished, including its recovery.
func (s *SourceThread) Wait() {
	s.lock.Lock()
	running := s.running
	s.lock.Unlock()
	if running {
		<-s.done
	}
}

func (s *SourceThread) IsAlive() bool {
	s.lock.Lock()
	running := s.running
	s.lock.Unlock()
	if !running {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *SourceThread) State() State {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.state
}

func (s *SourceThread) Status() StatusReport {
	s.lock.Lock()
	defer s.lock.Unlock()
	report := StatusReport{
		JobID:    s.jobID,
		State:    s.state,
		Status:   s.status,
		Progress: s.progress,
	}
	if s.downtime != nil {
		downtime := *s.downtime
		report.Downtime = &downtime
	}
	return report
}

// Stop cancels the migration. Before the transfer started there is no
// domain job yet and a failing abort is not an error.
func (s *SourceThread) Stop() error {
	s.cancel()

	s.lock.Lock()
	preparing := !s.started
	s.lock.Unlock()

	s.logger.Info("Migration cancellation requested")
	if err := s.dom.AbortJob(); err != nil {
		if preparing || cli.IsNoDomainJob(err) {
			s.logger.Reason(err).V(3).Info("No migration job to abort yet")
			return nil
		}
		s.logger.Reason(err).Error("Failed to abort migration job")
		return err
	}
	return nil
}

// SetMaxBandwidth changes the bandwidth cap in MiB/s of this migration.
// A running transfer is throttled immediately.
func (s *SourceThread) SetMaxBandwidth(bandwidth uint64) error {
	s.lock.Lock()
	s.maxBandwidth = bandwidth
	transferring := s.transferring
	s.lock.Unlock()

	s.logger.Infof("Setting migration max bandwidth to %d MiB/s", bandwidth)
	if !transferring {
		return nil
	}
	return s.dom.MigrateSetMaxSpeed(bandwidth, 0)
}

func (s *SourceThread) run() {
	defer close(s.done)
	defer s.cancel()

	startTime := s.clock.Now()
	s.logger.Infof("Starting %s migration", s.params.Mode)

	outcome := migrationmetrics.OutcomeSucceeded
	if err := s.migrate(startTime); err != nil {
		outcome = migrationmetrics.OutcomeFailed
		if IsAborted(err) {
			outcome = migrationmetrics.OutcomeCancelled
		}
		s.fail(err)
	}

	if dest := s.getDestination(); dest != nil {
		if err := dest.Close(); err != nil {
			s.logger.Reason(err).V(3).Info("Failed to close destination connection")
		}
	}
	migrationmetrics.DeleteProgress(s.vm.ID())
	migrationmetrics.ObserveOutcome(outcome, s.clock.Since(startTime))
	s.logger.Infof("Migration finished: %s", s.Status().Status)
}

func (s *SourceThread) migrate(startTime time.Time) error {
	if s.params.OutgoingLimit > 0 {
		s.gate.SetBound(s.params.OutgoingLimit)
	}

	machineParams, err := s.setupRemoteMachineParams()
	if err != nil {
		return err
	}

	if !s.params.Hibernating() {
		s.setState(StateConnecting)
		if err := s.setupDestinationConnection(); err != nil {
			return err
		}
	}

	s.setState(StatePreparingGuest)
	if err := s.prepareGuest(); err != nil {
		return err
	}

	for {
		err := s.admitAndMigrate(startTime, machineParams)
		if err != ErrMigrationLimitExceeded {
			return err
		}
		retry := s.config.RetryTimeoutDuration()
		s.setState(StateRetryWait)
		s.logger.Infof("Migration destination has no free slot, retrying in %v", retry)
		select {
		case <-s.ctx.Done():
			return &AbortedError{Reason: UserCancelled}
		case <-s.clock.After(retry):
		}
	}
}

func (s *SourceThread) admitAndMigrate(startTime time.Time, machineParams map[string]interface{}) error {
	s.setState(StateAdmitting)
	if err := s.gate.Acquire(s.ctx); err != nil {
		return &AbortedError{Reason: UserCancelled}
	}
	defer s.gate.Release()
	s.logger.V(3).Info("Migration semaphore: acquired")

	timeout := s.config.GuestLifecycleEventReplyTimeoutDuration()
	if agent := s.vm.GuestAgent(); agent != nil {
		if s.params.Hibernating() {
			if err := agent.BeforeHibernation(timeout); err != nil {
				s.logger.Reason(err).Warning("Guest did not acknowledge the hibernation")
			}
		} else if s.params.EnableGuestEvents {
			if err := agent.BeforeMigration(timeout); err != nil {
				s.logger.Reason(err).Warning("Guest did not acknowledge the migration")
			}
		}
	}

	if s.cancelled() {
		return &AbortedError{Reason: UserCancelled}
	}

	if err := s.startUnderlyingMigration(startTime, machineParams); err != nil {
		return err
	}
	return s.finishSuccessfully(machineParams)
}

func (s *SourceThread) setupRemoteMachineParams() (map[string]interface{}, error) {
	params := map[string]interface{}{}
	for k, v := range s.vm.Status() {
		params[k] = v
	}
	delete(params, "pid")
	params["vmId"] = s.vm.ID()
	params["elapsedTimeOffset"] = s.clock.Since(s.vm.StartTime()).Seconds()
	params["enableGuestEvents"] = s.params.EnableGuestEvents

	domainXML, err := s.dom.GetXMLDesc(libvirt.DOMAIN_XML_MIGRATABLE)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the migratable domain XML")
	}
	if !s.params.Hibernating() {
		params["migrationDest"] = "libvirt"
		if s.deps.Hooks != nil {
			if domainXML, err = s.deps.Hooks.BeforeMigrateSource(domainXML); err != nil {
				return nil, errors.Wrap(err, "before migrate source hook failed")
			}
			if domainXML, err = s.deps.Hooks.BeforeDeviceMigrateSource(domainXML); err != nil {
				return nil, errors.Wrap(err, "before device migrate source hook failed")
			}
		}
	}
	params["xml"] = domainXML
	return params, nil
}

func (s *SourceThread) setupDestinationConnection() error {
	address := s.params.destinationAddress(s.config.DestinationPort)
	s.logger.V(3).Infof("Connecting to migration destination %s", address)

	dest, err := s.deps.Destinations.Connect(s.ctx, address)
	if err != nil {
		if s.cancelled() {
			return &AbortedError{Reason: UserCancelled}
		}
		return &DestinationSetupError{Message: fmt.Sprintf("failed to connect to destination %s", address), Err: err}
	}
	s.lock.Lock()
	s.destination = dest
	s.lock.Unlock()

	if err := dest.Ping(s.ctx); err != nil {
		if s.cancelled() {
			return &AbortedError{Reason: UserCancelled}
		}
		return &DestinationSetupError{Message: fmt.Sprintf("destination %s is not responding", address), Err: err}
	}
	return nil
}

func (s *SourceThread) prepareGuest() error {
	if !s.params.Hibernating() {
		s.vm.SetLastStatus(VMStatusMigrationSource)
		return nil
	}

	if agent := s.vm.GuestAgent(); agent != nil {
		if err := agent.DesktopLock(); err != nil {
			s.logger.Reason(err).V(3).Info("Desktop lock request failed")
		}
		if agent.IsResponsive() {
			err := wait.PollImmediate(s.guestLockPollInterval, s.guestLockTimeout, func() (bool, error) {
				state := s.vm.SessionState()
				return state == SessionStateLocked || state == SessionStateLoggedOff, nil
			})
			if err != nil {
				s.logger.Warning("Guest session did not lock in time, hibernating without desktop lock")
			}
		}
	}

	if err := s.vm.Pause(VMStatusSavingState); err != nil {
		return errors.Wrap(err, "failed to pause the VM")
	}
	s.lock.Lock()
	s.paused = true
	s.lock.Unlock()
	return nil
}

func (s *SourceThread) startUnderlyingMigration(startTime time.Time, machineParams map[string]interface{}) error {
	if s.params.Hibernating() {
		return s.hibernate(machineParams)
	}

	createStart := s.clock.Now()
	response, err := s.destination.Create(s.ctx, machineParams, s.params.IncomingLimit)
	// destination VM creation time does not count against the migration
	startTime = startTime.Add(s.clock.Since(createStart))
	if err == ErrMigrationLimitExceeded {
		return err
	}
	s.lock.Lock()
	s.createAttempted = true
	s.lock.Unlock()
	if err != nil {
		// RPCs share the cancel context, a Stop surfaces here as a transport error
		if s.cancelled() {
			return &AbortedError{Reason: UserCancelled}
		}
		if migrationclient.IsDestinationError(err) && response != nil {
			return &DestinationSetupError{Message: "migration destination error: " + response.Status.Message}
		}
		return &DestinationSetupError{Message: "failed to create the VM on the destination", Err: err}
	}

	s.lock.Lock()
	s.started = true
	s.lock.Unlock()

	domainXML, _ := machineParams["xml"].(string)
	return s.performMigration(s.destinationURI(), s.migrationURI(), domainXML, startTime)
}

func (s *SourceThread) destinationURI() string {
	transport := "tcp"
	if s.config.SSL {
		transport = "tls"
	}
	return fmt.Sprintf("qemu+%s://%s/system", transport, normalizeLiteralAddr(s.params.destinationHost()))
}

func (s *SourceThread) migrationURI() string {
	host := s.params.DestinationQemu
	if host == "" {
		host = s.params.destinationHost()
	}
	return "tcp://" + normalizeLiteralAddr(host)
}

func (s *SourceThread) migrateFlags() libvirt.DomainMigrateFlags {
	flags := libvirt.MIGRATE_LIVE | libvirt.MIGRATE_PEER2PEER
	if s.params.Tunneled {
		flags |= libvirt.MIGRATE_TUNNELLED
	}
	if s.params.AbortOnError {
		flags |= libvirt.MIGRATE_ABORT_ON_ERROR
	}
	if s.params.Compressed {
		flags |= libvirt.MIGRATE_COMPRESSED
	}
	if s.params.AutoConverge {
		flags |= libvirt.MIGRATE_AUTO_CONVERGE
	}
	return flags
}

// migrateParameters hands the hooked domain XML to libvirt so the
// destination domain is defined from it.
func (s *SourceThread) migrateParameters(muri string, domainXML string) *libvirt.DomainMigrateParameters {
	s.lock.Lock()
	bandwidth := s.maxBandwidth
	s.lock.Unlock()

	params := &libvirt.DomainMigrateParameters{
		URI:          muri,
		URISet:       true,
		Bandwidth:    bandwidth,
		BandwidthSet: true,
	}
	if domainXML != "" {
		params.DestXML = domainXML
		params.DestXMLSet = true
	}
	if s.params.ConsoleAddress != "" {
		graphics := "vnc"
		if s.vm.HasSpice() {
			graphics = "spice"
			if err := s.vm.ReviveTicket(); err != nil {
				s.logger.Reason(err).Warning("Failed to revive the SPICE ticket")
			}
		}
		params.GraphicsURI = fmt.Sprintf("%s://%s", graphics, normalizeLiteralAddr(s.params.ConsoleAddress))
		params.GraphicsURISet = true
	}
	return params
}

func (s *SourceThread) performMigration(duri string, muri string, domainXML string, startTime time.Time) error {
	monitor := NewMonitorThread(s.dom, s.config, s.clock, s.logger, MonitorOptions{
		Schedule:   s.params.ConvergenceSchedule,
		DowntimeMs: s.params.DowntimeMs,
		MemSizeMiB: s.vm.MemSizeMiB(),
		StartTime:  startTime,
		OnProgress: s.onProgress,
	})
	s.lock.Lock()
	s.monitor = monitor
	s.lock.Unlock()

	monitor.Start()
	defer func() {
		monitor.Stop()
		monitor.Wait()
	}()

	if s.cancelled() {
		return &AbortedError{Reason: UserCancelled}
	}

	params := s.migrateParameters(muri, domainXML)
	flags := s.migrateFlags()

	s.setState(StateTransferring)
	s.setTransferring(true)
	s.logger.Infof("Starting migration to %s with migration URI %s", duri, muri)
	err := s.dom.MigrateToURI3(duri, params, flags)
	s.setTransferring(false)
	if err == nil {
		return nil
	}

	// the monitor records its abort reason before aborting the job
	monitor.Stop()
	monitor.Wait()
	if reason, ok := monitor.AbortReason(); ok {
		return &AbortedError{Reason: reason}
	}
	if s.cancelled() || cli.IsOperationAborted(err) {
		return &AbortedError{Reason: UserCancelled}
	}
	s.logQemuOutput()
	return &TransferError{Err: err}
}

func (s *SourceThread) hibernate(machineParams map[string]interface{}) error {
	s.lock.Lock()
	s.started = true
	s.lock.Unlock()
	s.setState(StateTransferring)

	domainXML, _ := machineParams["xml"].(string)
	if s.deps.Hooks != nil {
		hooked, err := s.deps.Hooks.BeforeHibernate(domainXML)
		if err != nil {
			return errors.Wrap(err, "before hibernate hook failed")
		}
		domainXML = hooked
	}

	path, err := s.deps.Storage.PrepareVolumePath(s.params.HandoffPath)
	if err != nil {
		return &DestinationSetupError{Message: fmt.Sprintf("failed to prepare hibernation volume %s", s.params.HandoffPath), Err: err}
	}
	defer s.teardownVolume(s.params.HandoffPath)

	s.logger.Infof("Saving VM state to %s", path)
	if err := s.vm.Hibernate(path, domainXML); err != nil {
		if s.cancelled() || cli.IsOperationAborted(err) {
			return &AbortedError{Reason: UserCancelled}
		}
		return &TransferError{Err: err}
	}
	return nil
}

func (s *SourceThread) teardownVolume(volume string) {
	if err := s.deps.Storage.TeardownVolumePath(volume); err != nil {
		s.logger.Reason(err).Warningf("Failed to tear down volume %s", volume)
	}
}

func (s *SourceThread) finishSuccessfully(machineParams map[string]interface{}) error {
	s.setProgress(100)
	domainXML, _ := machineParams["xml"].(string)

	if s.params.Hibernating() {
		if err := s.writeHandoffParams(machineParams); err != nil {
			return err
		}
		s.vm.SetDownStatus(ExitReasonSaveStateSucceeded)
		s.setStatusMessage(migrationv1.MessageSaveStateDone)
		if s.deps.Hooks != nil {
			if err := s.deps.Hooks.AfterHibernate(domainXML); err != nil {
				s.logger.Reason(err).Warning("After hibernate hook failed")
			}
		}
	} else {
		s.vm.SetDownStatus(ExitReasonMigrationSucceeded)
		s.setStatusMessage(migrationv1.MessageMigrationDone)
		if s.deps.Hooks != nil {
			if err := s.deps.Hooks.AfterMigrateSource(domainXML); err != nil {
				s.logger.Reason(err).Warning("After migrate source hook failed")
			}
		}
		if err := s.destination.Finish(context.Background(), s.vm.ID(), true); err != nil {
			s.logger.Reason(err).V(3).Info("Failed to notify the destination about the finished migration")
		}
	}

	if downtime, ok := completedDowntime(s.dom); ok {
		s.lock.Lock()
		s.downtime = &downtime
		s.lock.Unlock()
	}
	s.setState(StateSucceeded)
	return nil
}

// writeHandoffParams stores the machine parameters next to the saved memory
// image so that the VM can be restored from the hand-off volumes.
func (s *SourceThread) writeHandoffParams(machineParams map[string]interface{}) error {
	params := map[string]interface{}{}
	for k, v := range machineParams {
		params[k] = v
	}
	for _, key := range transientMachineParams {
		delete(params, key)
	}
	data, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to serialize machine parameters")
	}

	path, err := s.deps.Storage.PrepareVolumePath(s.params.HandoffParamsPath)
	if err != nil {
		return errors.Wrapf(err, "failed to prepare volume %s", s.params.HandoffParamsPath)
	}
	defer s.teardownVolume(s.params.HandoffParamsPath)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrapf(err, "failed to write machine parameters to %s", path)
	}
	return nil
}

func (s *SourceThread) fail(err error) {
	switch {
	case IsAborted(err):
		reason, _ := AbortReasonOf(err)
		message := migrationv1.MessageCanceled
		if reason != UserCancelled {
			message = fmt.Sprintf("%s: %s", migrationv1.MessageCanceled, reason)
		}
		s.setErrorStatus(migrationv1.StatusCodeMigCancelErr, message)
		s.setState(StateCancelled)
	case IsDestinationSetupError(err):
		s.setErrorStatus(migrationv1.StatusCodeDestinationErr, err.Error())
		s.setState(StateFailed)
	default:
		s.setState(StateFailed)
	}
	s.recoverFromFailure(err.Error())
}

// recoverFromFailure brings the VM back to a running state on the source.
// Each step is best effort: errors and panics are logged and swallowed.
func (s *SourceThread) recoverFromFailure(message string) {
	s.setErrorStatus(migrationv1.StatusCodeMigrateErr, message)
	s.logger.Error(message)

	s.lock.Lock()
	destination := s.destination
	createAttempted := s.createAttempted
	paused := s.paused
	s.lock.Unlock()

	if !s.params.Hibernating() && destination != nil && createAttempted {
		s.bestEffort("destroy destination VM", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return destination.Destroy(ctx, s.vm.ID())
		})
	}

	if s.params.Hibernating() && paused {
		s.bestEffort("resume VM", s.vm.Resume)
	}

	if agent := s.vm.GuestAgent(); agent != nil {
		if s.params.Hibernating() {
			s.bestEffort("after hibernation failure event", agent.AfterHibernationFailure)
		} else if s.params.EnableGuestEvents {
			s.bestEffort("after migration failure event", agent.AfterMigrationFailure)
		}
	}

	s.bestEffort("set VM status", func() error {
		s.vm.SetLastStatus(VMStatusUp)
		return nil
	})
	s.bestEffort("send status event", func() error {
		s.vm.SendStatusEvent()
		return nil
	})
}

func (s *SourceThread) bestEffort(step string, f func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorf("Recovery step %q panicked: %v", step, r)
		}
	}()
	if err := f(); err != nil {
		s.logger.Reason(err).Warningf("Recovery step %q failed", step)
	}
}

func (s *SourceThread) onProgress(progress *Progress) {
	percentage := progress.Percentage()
	s.lock.Lock()
	s.progress = percentage
	s.lock.Unlock()

	migrationmetrics.SetProgress(s.vm.ID(), percentage)
	s.vm.SendStatusEvent()
}

func (s *SourceThread) cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *SourceThread) getDestination() migrationclient.DestinationClient {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.destination
}

func (s *SourceThread) setState(state State) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.state = state
}

func (s *SourceThread) setTransferring(transferring bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.transferring = transferring
}

func (s *SourceThread) setProgress(progress int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.progress = progress
}

func (s *SourceThread) setStatusMessage(message string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.status.Message = message
}

// setErrorStatus keeps the first error reported for the job.
func (s *SourceThread) setErrorStatus(code int, message string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.status.IsError() {
		return
	}
	s.status = migrationv1.NewStatus(code, message)
}
