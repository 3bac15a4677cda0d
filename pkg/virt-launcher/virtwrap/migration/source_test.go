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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"k8s.io/utils/clock"
	testingclock "k8s.io/utils/clock/testing"
	"libvirt.org/go/libvirt"

	migrationv1 "kubevirt.io/livemigration/pkg/handler-launcher-com/migration/v1"
	"kubevirt.io/livemigration/pkg/util/migrations"
	migrationclient "kubevirt.io/livemigration/pkg/virt-handler/migration-client"
	virtconfig "kubevirt.io/livemigration/pkg/virt-config"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
)

const (
	testVMID      = "4a5c0e62-2b3f-4f7e-9c3a-2d1f5e6b7a80"
	testDomainXML = `<domain type="kvm"><name>testvm</name></domain>`
)

var _ = Describe("Source thread", func() {
	var (
		ctrl        *gomock.Controller
		mockDomain  *cli.MockVirDomain
		mockVM      *MockVM
		mockAgent   *MockGuestAgent
		mockStorage *MockStorage
		mockHooks   *MockHookRunner
		mockFactory *migrationclient.MockClientFactory
		mockDest    *migrationclient.MockDestinationClient
		config      *virtconfig.MigrationConfig
		gate        *migrations.Gate
		clk         clock.Clock
	)

	okResponse := &migrationv1.CreateResponse{Status: migrationv1.NewStatus(migrationv1.StatusCodeDone, "Done")}

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockDomain = cli.NewMockVirDomain(ctrl)
		mockVM = NewMockVM(ctrl)
		mockAgent = NewMockGuestAgent(ctrl)
		mockStorage = NewMockStorage(ctrl)
		mockHooks = NewMockHookRunner(ctrl)
		mockFactory = migrationclient.NewMockClientFactory(ctrl)
		mockDest = migrationclient.NewMockDestinationClient(ctrl)

		config = virtconfig.DefaultMigrationConfig()
		config.MonitorInterval = 0
		config.RetryTimeout = 0
		config.DowntimeSteps = 1
		config.QemuLogDir = os.TempDir()
		gate = migrations.NewGate("test-outgoing", 1)
		clk = nil

		mockVM.EXPECT().ID().Return(testVMID).AnyTimes()
		mockVM.EXPECT().Domain().Return(mockDomain).AnyTimes()
		mockVM.EXPECT().Status().DoAndReturn(func() map[string]interface{} {
			return map[string]interface{}{
				"vmName":    "testvm",
				"memSize":   1024,
				"display":   "vnc",
				"displayIp": "10.0.0.1",
				"pid":       1234,
			}
		}).AnyTimes()
		mockVM.EXPECT().StartTime().Return(time.Now().Add(-time.Minute)).AnyTimes()
		mockVM.EXPECT().MemSizeMiB().Return(int64(1024)).AnyTimes()
		mockVM.EXPECT().GuestAgent().Return(mockAgent).AnyTimes()
		mockVM.EXPECT().SendStatusEvent().AnyTimes()
		mockDomain.EXPECT().GetXMLDesc(libvirt.DOMAIN_XML_MIGRATABLE).Return(testDomainXML, nil).AnyTimes()
		mockDomain.EXPECT().GetName().Return("testvm", nil).AnyTimes()
		mockDomain.EXPECT().MigrateSetMaxDowntime(gomock.Any(), uint32(0)).Return(nil).AnyTimes()
	})

	remoteParams := func() MigrationParameters {
		return MigrationParameters{Mode: ModeRemote, Destination: "192.168.0.10"}
	}

	fileParams := func() MigrationParameters {
		return MigrationParameters{Mode: ModeFile, HandoffPath: "memory-volume", HandoffParamsPath: "params-volume"}
	}

	newThread := func(params MigrationParameters) *SourceThread {
		thread, err := NewSourceThread(mockVM, params, config, SourceDeps{
			Destinations: mockFactory,
			Storage:      mockStorage,
			Hooks:        mockHooks,
			OutgoingGate: gate,
			Clock:        clk,
		})
		Expect(err).ToNot(HaveOccurred())
		return thread
	}

	run := func(thread *SourceThread) StatusReport {
		thread.Start()
		thread.Wait()
		Expect(thread.IsAlive()).To(BeFalse())
		return thread.Status()
	}

	expectLiveSetup := func() {
		mockHooks.EXPECT().BeforeMigrateSource(testDomainXML).Return(testDomainXML, nil)
		mockHooks.EXPECT().BeforeDeviceMigrateSource(testDomainXML).Return(testDomainXML, nil)
		mockFactory.EXPECT().Connect(gomock.Any(), "192.168.0.10:54321").Return(mockDest, nil)
		mockDest.EXPECT().Ping(gomock.Any()).Return(nil)
		mockVM.EXPECT().SetLastStatus(VMStatusMigrationSource)
		mockDest.EXPECT().Close().Return(nil)
	}

	expectLiveRecovery := func() {
		mockDest.EXPECT().Destroy(gomock.Any(), testVMID).Return(nil)
		mockVM.EXPECT().SetLastStatus(VMStatusUp)
	}

	expectFileSetup := func() {
		mockAgent.EXPECT().DesktopLock().Return(nil)
		mockAgent.EXPECT().IsResponsive().Return(false)
		mockVM.EXPECT().Pause(VMStatusSavingState).Return(nil)
		mockAgent.EXPECT().BeforeHibernation(10 * time.Second).Return(nil)
		mockHooks.EXPECT().BeforeHibernate(testDomainXML).Return(testDomainXML, nil)
	}

	Context("live migration", func() {

		It("should migrate the VM and report success", func() {
			var createdWith map[string]interface{}
			var migrateParams *libvirt.DomainMigrateParameters

			expectLiveSetup()
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).DoAndReturn(
				func(_ context.Context, params map[string]interface{}, _ int) (*migrationv1.CreateResponse, error) {
					createdWith = params
					return okResponse, nil
				})
			mockDomain.EXPECT().MigrateToURI3("qemu+tls://192.168.0.10/system", gomock.Any(), libvirt.MIGRATE_LIVE|libvirt.MIGRATE_PEER2PEER).DoAndReturn(
				func(_ string, params *libvirt.DomainMigrateParameters, _ libvirt.DomainMigrateFlags) error {
					migrateParams = params
					return nil
				})
			mockVM.EXPECT().SetDownStatus(ExitReasonMigrationSucceeded)
			mockHooks.EXPECT().AfterMigrateSource(testDomainXML).Return(nil)
			mockDest.EXPECT().Finish(gomock.Any(), testVMID, true).Return(nil)
			mockDomain.EXPECT().GetJobStats(libvirt.DOMAIN_JOB_STATS_COMPLETED).Return(&libvirt.DomainJobInfo{
				Type:        libvirt.DOMAIN_JOB_COMPLETED,
				DowntimeSet: true,
				Downtime:    42,
			}, nil)

			thread := newThread(remoteParams())
			Expect(thread.State()).To(Equal(StateCreated))
			report := run(thread)

			Expect(report.Status).To(Equal(migrationv1.NewStatus(migrationv1.StatusCodeDone, migrationv1.MessageMigrationDone)))
			Expect(report.State).To(Equal(StateSucceeded))
			Expect(report.Progress).To(Equal(100))
			Expect(report.Downtime).ToNot(BeNil())
			Expect(*report.Downtime).To(Equal(int64(42)))
			Expect(report.JobID).ToNot(BeEmpty())

			Expect(createdWith).To(HaveKeyWithValue("vmId", testVMID))
			Expect(createdWith).To(HaveKeyWithValue("xml", testDomainXML))
			Expect(createdWith).To(HaveKeyWithValue("migrationDest", "libvirt"))
			Expect(createdWith).To(HaveKey("elapsedTimeOffset"))
			Expect(createdWith).ToNot(HaveKey("pid"))

			Expect(migrateParams.URI).To(Equal("tcp://192.168.0.10"))
			Expect(migrateParams.DestXMLSet).To(BeTrue())
			Expect(migrateParams.DestXML).To(Equal(testDomainXML))
			Expect(migrateParams.Bandwidth).To(Equal(uint64(52)))
			Expect(migrateParams.GraphicsURISet).To(BeFalse())
			Expect(gate.Held()).To(BeZero())
		})

		It("should retry while the destination has no free slot", func() {
			expectLiveSetup()
			gomock.InOrder(
				mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 4).Return(&migrationv1.CreateResponse{
					Status: migrationv1.NewStatus(migrationv1.StatusCodeMigrateLimit, migrationv1.MessageMigrateLimit),
				}, migrationclient.ErrMigrationLimitExceeded).Times(2),
				mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 4).Return(okResponse, nil),
			)
			mockDomain.EXPECT().MigrateToURI3(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			mockVM.EXPECT().SetDownStatus(ExitReasonMigrationSucceeded)
			mockHooks.EXPECT().AfterMigrateSource(testDomainXML).Return(nil)
			mockDest.EXPECT().Finish(gomock.Any(), testVMID, true).Return(nil)
			mockDomain.EXPECT().GetJobStats(libvirt.DOMAIN_JOB_STATS_COMPLETED).Return(nil, fmt.Errorf("no stats"))

			params := remoteParams()
			params.IncomingLimit = 4
			report := run(newThread(params))
			Expect(report.Status.IsError()).To(BeFalse())
			Expect(report.Downtime).To(BeNil())
			Expect(gate.Held()).To(BeZero())
		})

		It("should wait for an outgoing permit", func() {
			Expect(gate.TryAcquire()).To(BeTrue())

			expectLiveSetup()
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).Return(okResponse, nil)
			mockDomain.EXPECT().MigrateToURI3(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			mockVM.EXPECT().SetDownStatus(ExitReasonMigrationSucceeded)
			mockHooks.EXPECT().AfterMigrateSource(testDomainXML).Return(nil)
			mockDest.EXPECT().Finish(gomock.Any(), testVMID, true).Return(nil)
			mockDomain.EXPECT().GetJobStats(libvirt.DOMAIN_JOB_STATS_COMPLETED).Return(nil, fmt.Errorf("no stats"))

			thread := newThread(remoteParams())
			thread.Start()
			Eventually(thread.State).Should(Equal(StateAdmitting))
			Consistently(thread.State, 200*time.Millisecond).Should(Equal(StateAdmitting))

			gate.Release()
			thread.Wait()
			Expect(thread.Status().State).To(Equal(StateSucceeded))
		})

		It("should apply the outgoing limit override", func() {
			expectLiveSetup()
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).Return(okResponse, nil)
			mockDomain.EXPECT().MigrateToURI3(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			mockVM.EXPECT().SetDownStatus(ExitReasonMigrationSucceeded)
			mockHooks.EXPECT().AfterMigrateSource(testDomainXML).Return(nil)
			mockDest.EXPECT().Finish(gomock.Any(), testVMID, true).Return(nil)
			mockDomain.EXPECT().GetJobStats(libvirt.DOMAIN_JOB_STATS_COMPLETED).Return(nil, fmt.Errorf("no stats"))

			params := remoteParams()
			params.OutgoingLimit = 3
			run(newThread(params))
			Expect(gate.Bound()).To(Equal(3))
		})

		It("should never start the transfer when cancelled before admission", func() {
			expectLiveSetup()
			mockVM.EXPECT().SetLastStatus(VMStatusUp)
			mockDomain.EXPECT().AbortJob().Return(libvirt.Error{Code: libvirt.ERR_OPERATION_INVALID})

			thread := newThread(remoteParams())
			Expect(thread.Stop()).To(Succeed())
			report := run(thread)

			Expect(report.Status).To(Equal(migrationv1.NewStatus(migrationv1.StatusCodeMigCancelErr, migrationv1.MessageCanceled)))
			Expect(report.State).To(Equal(StateCancelled))
			Expect(gate.Held()).To(BeZero())
		})

		It("should migrate the domain XML returned by the source hooks", func() {
			const hookedXML = `<domain type="kvm"><name>testvm</name><cputune></cputune></domain>`
			var migrateParams *libvirt.DomainMigrateParameters

			mockHooks.EXPECT().BeforeMigrateSource(testDomainXML).Return(hookedXML, nil)
			mockHooks.EXPECT().BeforeDeviceMigrateSource(hookedXML).Return(hookedXML, nil)
			mockFactory.EXPECT().Connect(gomock.Any(), "192.168.0.10:54321").Return(mockDest, nil)
			mockDest.EXPECT().Ping(gomock.Any()).Return(nil)
			mockVM.EXPECT().SetLastStatus(VMStatusMigrationSource)
			mockDest.EXPECT().Close().Return(nil)
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).Return(okResponse, nil)
			mockDomain.EXPECT().MigrateToURI3(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ string, params *libvirt.DomainMigrateParameters, _ libvirt.DomainMigrateFlags) error {
					migrateParams = params
					return nil
				})
			mockVM.EXPECT().SetDownStatus(ExitReasonMigrationSucceeded)
			mockHooks.EXPECT().AfterMigrateSource(hookedXML).Return(nil)
			mockDest.EXPECT().Finish(gomock.Any(), testVMID, true).Return(nil)
			mockDomain.EXPECT().GetJobStats(libvirt.DOMAIN_JOB_STATS_COMPLETED).Return(nil, fmt.Errorf("no stats"))

			report := run(newThread(remoteParams()))
			Expect(report.State).To(Equal(StateSucceeded))
			Expect(migrateParams.DestXMLSet).To(BeTrue())
			Expect(migrateParams.DestXML).To(Equal(hookedXML))
		})

		It("should report a cancelled destination handshake as cancelled", func() {
			mockHooks.EXPECT().BeforeMigrateSource(testDomainXML).Return(testDomainXML, nil)
			mockHooks.EXPECT().BeforeDeviceMigrateSource(testDomainXML).Return(testDomainXML, nil)
			mockFactory.EXPECT().Connect(gomock.Any(), "192.168.0.10:54321").Return(mockDest, nil)
			mockDest.EXPECT().Ping(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
				return ctx.Err()
			})
			mockDest.EXPECT().Close().Return(nil)
			mockDomain.EXPECT().AbortJob().Return(libvirt.Error{Code: libvirt.ERR_OPERATION_INVALID})
			mockVM.EXPECT().SetLastStatus(VMStatusUp)

			thread := newThread(remoteParams())
			Expect(thread.Stop()).To(Succeed())
			report := run(thread)

			Expect(report.Status).To(Equal(migrationv1.NewStatus(migrationv1.StatusCodeMigCancelErr, migrationv1.MessageCanceled)))
			Expect(report.State).To(Equal(StateCancelled))
		})

		It("should report a cancelled destination create as cancelled", func() {
			var thread *SourceThread

			expectLiveSetup()
			mockDomain.EXPECT().AbortJob().Return(libvirt.Error{Code: libvirt.ERR_OPERATION_INVALID})
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).DoAndReturn(
				func(ctx context.Context, _ map[string]interface{}, _ int) (*migrationv1.CreateResponse, error) {
					_ = thread.Stop()
					return nil, ctx.Err()
				})
			expectLiveRecovery()

			thread = newThread(remoteParams())
			report := run(thread)

			Expect(report.Status).To(Equal(migrationv1.NewStatus(migrationv1.StatusCodeMigCancelErr, migrationv1.MessageCanceled)))
			Expect(report.State).To(Equal(StateCancelled))
			Expect(gate.Held()).To(BeZero())
		})

		It("should stop retrying when cancelled while waiting for a free slot", func() {
			config.RetryTimeout = 10
			clk = testingclock.NewFakeClock(time.Now())

			expectLiveSetup()
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).Return(&migrationv1.CreateResponse{
				Status: migrationv1.NewStatus(migrationv1.StatusCodeMigrateLimit, migrationv1.MessageMigrateLimit),
			}, migrationclient.ErrMigrationLimitExceeded).Times(1)
			mockDomain.EXPECT().AbortJob().Return(libvirt.Error{Code: libvirt.ERR_OPERATION_INVALID})
			mockVM.EXPECT().SetLastStatus(VMStatusUp)

			thread := newThread(remoteParams())
			thread.Start()
			Eventually(thread.State).Should(Equal(StateRetryWait))
			Expect(gate.Held()).To(BeZero())

			Expect(thread.Stop()).To(Succeed())
			thread.Wait()

			report := thread.Status()
			Expect(report.Status).To(Equal(migrationv1.NewStatus(migrationv1.StatusCodeMigCancelErr, migrationv1.MessageCanceled)))
			Expect(report.State).To(Equal(StateCancelled))
		})

		It("should fail without resuming when the destination is unreachable", func() {
			mockHooks.EXPECT().BeforeMigrateSource(testDomainXML).Return(testDomainXML, nil)
			mockHooks.EXPECT().BeforeDeviceMigrateSource(testDomainXML).Return(testDomainXML, nil)
			mockFactory.EXPECT().Connect(gomock.Any(), "192.168.0.10:54321").Return(nil, fmt.Errorf("connection refused"))
			mockVM.EXPECT().SetLastStatus(VMStatusUp)

			report := run(newThread(remoteParams()))
			Expect(report.Status.Code).To(Equal(migrationv1.StatusCodeDestinationErr))
			Expect(report.Status.Message).To(ContainSubstring("connection refused"))
			Expect(report.State).To(Equal(StateFailed))
		})

		It("should fail when the destination does not answer", func() {
			mockHooks.EXPECT().BeforeMigrateSource(testDomainXML).Return(testDomainXML, nil)
			mockHooks.EXPECT().BeforeDeviceMigrateSource(testDomainXML).Return(testDomainXML, nil)
			mockFactory.EXPECT().Connect(gomock.Any(), "192.168.0.10:54321").Return(mockDest, nil)
			mockDest.EXPECT().Ping(gomock.Any()).Return(fmt.Errorf("timeout"))
			mockDest.EXPECT().Close().Return(nil)
			mockVM.EXPECT().SetLastStatus(VMStatusUp)

			report := run(newThread(remoteParams()))
			Expect(report.Status.Code).To(Equal(migrationv1.StatusCodeDestinationErr))
		})

		It("should report the destination refusal and destroy the destination VM", func() {
			expectLiveSetup()
			refusal := &migrationv1.CreateResponse{Status: migrationv1.NewStatus(migrationv1.StatusCodeDestinationErr, "no space left")}
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).Return(refusal, &migrationclient.DestinationError{Command: "Create", Status: refusal.Status})
			expectLiveRecovery()

			report := run(newThread(remoteParams()))
			Expect(report.Status).To(Equal(migrationv1.NewStatus(migrationv1.StatusCodeDestinationErr, "migration destination error: no space left")))
		})

		It("should report a cancelled transfer as cancelled", func() {
			expectLiveSetup()
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).Return(okResponse, nil)
			mockDomain.EXPECT().MigrateToURI3(gomock.Any(), gomock.Any(), gomock.Any()).Return(libvirt.Error{Code: libvirt.ERR_OPERATION_ABORTED})
			expectLiveRecovery()

			report := run(newThread(remoteParams()))
			Expect(report.Status.Code).To(Equal(migrationv1.StatusCodeMigCancelErr))
			Expect(report.State).To(Equal(StateCancelled))
		})

		It("should cancel a running transfer", func() {
			expectLiveSetup()
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).Return(okResponse, nil)
			mockDomain.EXPECT().AbortJob().Return(nil)
			expectLiveRecovery()

			thread := newThread(remoteParams())
			mockDomain.EXPECT().MigrateToURI3(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ string, _ *libvirt.DomainMigrateParameters, _ libvirt.DomainMigrateFlags) error {
					if err := thread.Stop(); err != nil {
						return err
					}
					return fmt.Errorf("migration job: canceled by client")
				})

			report := run(thread)
			Expect(report.Status).To(Equal(migrationv1.NewStatus(migrationv1.StatusCodeMigCancelErr, migrationv1.MessageCanceled)))
		})

		It("should report the reason of a monitor enforced abort", func() {
			expectLiveSetup()
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).Return(okResponse, nil)
			aborted := make(chan struct{})
			mockDomain.EXPECT().AbortJob().Do(func() { close(aborted) }).Return(nil)
			mockDomain.EXPECT().MigrateToURI3(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ string, _ *libvirt.DomainMigrateParameters, _ libvirt.DomainMigrateFlags) error {
					<-aborted
					return libvirt.Error{Code: libvirt.ERR_OPERATION_ABORTED}
				})
			expectLiveRecovery()

			params := remoteParams()
			params.ConvergenceSchedule = &ConvergenceSchedule{Init: []Action{AbortAction()}}
			report := run(newThread(params))
			Expect(report.Status.Code).To(Equal(migrationv1.StatusCodeMigCancelErr))
			Expect(report.Status.Message).To(Equal(fmt.Sprintf("%s: %s", migrationv1.MessageCanceled, ScheduleAbort)))
		})

		It("should recover from a failed transfer even if cleanup steps fail", func() {
			expectLiveSetup()
			mockAgent.EXPECT().BeforeMigration(10 * time.Second).Return(nil)
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).Return(okResponse, nil)
			mockDomain.EXPECT().MigrateToURI3(gomock.Any(), gomock.Any(), gomock.Any()).Return(libvirt.Error{
				Code:    libvirt.ERR_INTERNAL_ERROR,
				Message: "unable to read from socket",
			})
			mockDest.EXPECT().Destroy(gomock.Any(), testVMID).Do(func(_ context.Context, _ string) {
				panic("destination gone")
			})
			mockAgent.EXPECT().AfterMigrationFailure().Return(fmt.Errorf("agent not connected"))
			mockVM.EXPECT().SetLastStatus(VMStatusUp)

			params := remoteParams()
			params.EnableGuestEvents = true
			report := run(newThread(params))
			Expect(report.Status.Code).To(Equal(migrationv1.StatusCodeMigrateErr))
			Expect(report.Status.Message).To(ContainSubstring("unable to read from socket"))
			Expect(report.State).To(Equal(StateFailed))
		})

		It("should throttle only a running transfer", func() {
			expectLiveSetup()
			mockDest.EXPECT().Create(gomock.Any(), gomock.Any(), 0).Return(okResponse, nil)
			mockVM.EXPECT().SetDownStatus(ExitReasonMigrationSucceeded)
			mockHooks.EXPECT().AfterMigrateSource(testDomainXML).Return(nil)
			mockDest.EXPECT().Finish(gomock.Any(), testVMID, true).Return(nil)
			mockDomain.EXPECT().GetJobStats(libvirt.DOMAIN_JOB_STATS_COMPLETED).Return(nil, fmt.Errorf("no stats"))

			thread := newThread(remoteParams())
			Expect(thread.SetMaxBandwidth(64)).To(Succeed())

			mockDomain.EXPECT().MigrateSetMaxSpeed(uint64(16), uint32(0)).Return(nil)
			var bandwidth uint64
			mockDomain.EXPECT().MigrateToURI3(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ string, params *libvirt.DomainMigrateParameters, _ libvirt.DomainMigrateFlags) error {
					bandwidth = params.Bandwidth
					return thread.SetMaxBandwidth(16)
				})

			run(thread)
			Expect(bandwidth).To(Equal(uint64(64)))
		})
	})

	Context("hibernation", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "handoff")
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
		})

		It("should save the VM and hand off its machine parameters", func() {
			memoryPath := filepath.Join(dir, "memory")
			paramsPath := filepath.Join(dir, "params")

			expectFileSetup()
			mockStorage.EXPECT().PrepareVolumePath("memory-volume").Return(memoryPath, nil)
			mockVM.EXPECT().Hibernate(memoryPath, testDomainXML).Return(nil)
			mockStorage.EXPECT().TeardownVolumePath("memory-volume").Return(nil)
			mockStorage.EXPECT().PrepareVolumePath("params-volume").Return(paramsPath, nil)
			mockStorage.EXPECT().TeardownVolumePath("params-volume").Return(nil)
			mockVM.EXPECT().SetDownStatus(ExitReasonSaveStateSucceeded)
			mockHooks.EXPECT().AfterHibernate(testDomainXML).Return(nil)
			mockDomain.EXPECT().GetJobStats(libvirt.DOMAIN_JOB_STATS_COMPLETED).Return(nil, fmt.Errorf("no stats"))

			report := run(newThread(fileParams()))
			Expect(report.Status).To(Equal(migrationv1.NewStatus(migrationv1.StatusCodeDone, migrationv1.MessageSaveStateDone)))
			Expect(report.Progress).To(Equal(100))

			data, err := os.ReadFile(paramsPath)
			Expect(err).ToNot(HaveOccurred())
			handedOff := map[string]interface{}{}
			Expect(json.Unmarshal(data, &handedOff)).To(Succeed())
			Expect(handedOff).To(HaveKeyWithValue("vmId", testVMID))
			Expect(handedOff).To(HaveKeyWithValue("xml", testDomainXML))
			Expect(handedOff).To(HaveKeyWithValue("vmName", "testvm"))
			Expect(handedOff).ToNot(HaveKey("display"))
			Expect(handedOff).ToNot(HaveKey("displayIp"))
			Expect(handedOff).ToNot(HaveKey("pid"))
			Expect(handedOff).ToNot(HaveKey("migrationDest"))
		})

		It("should wait for the guest session to lock", func() {
			mockAgent.EXPECT().DesktopLock().Return(nil)
			mockAgent.EXPECT().IsResponsive().Return(true)
			mockVM.EXPECT().Pause(VMStatusSavingState).Return(nil)
			mockAgent.EXPECT().BeforeHibernation(10 * time.Second).Return(nil)
			mockHooks.EXPECT().BeforeHibernate(testDomainXML).Return(testDomainXML, nil)
			gomock.InOrder(
				mockVM.EXPECT().SessionState().Return("Active").Times(2),
				mockVM.EXPECT().SessionState().Return(SessionStateLocked),
			)
			mockStorage.EXPECT().PrepareVolumePath("memory-volume").Return("", fmt.Errorf("volume not found"))
			mockVM.EXPECT().Resume().Return(nil)
			mockAgent.EXPECT().AfterHibernationFailure().Return(nil)
			mockVM.EXPECT().SetLastStatus(VMStatusUp)

			thread := newThread(fileParams())
			thread.guestLockPollInterval = 10 * time.Millisecond
			thread.guestLockTimeout = 5 * time.Second
			run(thread)
		})

		It("should resume the VM when the hand-off volume cannot be prepared", func() {
			expectFileSetup()
			mockStorage.EXPECT().PrepareVolumePath("memory-volume").Return("", fmt.Errorf("volume not found"))
			mockVM.EXPECT().Resume().Return(nil)
			mockAgent.EXPECT().AfterHibernationFailure().Return(nil)
			mockVM.EXPECT().SetLastStatus(VMStatusUp)

			report := run(newThread(fileParams()))
			Expect(report.Status.Code).To(Equal(migrationv1.StatusCodeDestinationErr))
			Expect(report.State).To(Equal(StateFailed))
		})

		It("should resume the VM when saving the state fails", func() {
			expectFileSetup()
			memoryPath := filepath.Join(dir, "memory")
			mockStorage.EXPECT().PrepareVolumePath("memory-volume").Return(memoryPath, nil)
			mockVM.EXPECT().Hibernate(memoryPath, testDomainXML).Return(libvirt.Error{Code: libvirt.ERR_INTERNAL_ERROR, Message: "disk full"})
			mockStorage.EXPECT().TeardownVolumePath("memory-volume").Return(nil)
			mockVM.EXPECT().Resume().Return(nil)
			mockAgent.EXPECT().AfterHibernationFailure().Return(nil)
			mockVM.EXPECT().SetLastStatus(VMStatusUp)

			report := run(newThread(fileParams()))
			Expect(report.Status.Code).To(Equal(migrationv1.StatusCodeMigrateErr))
		})
	})

	Context("construction", func() {

		It("should validate the parameters", func() {
			_, err := NewSourceThread(mockVM, MigrationParameters{Mode: ModeRemote}, config, SourceDeps{Destinations: mockFactory})
			Expect(err).To(HaveOccurred())
		})

		It("should require a destination factory for live migrations", func() {
			_, err := NewSourceThread(mockVM, remoteParams(), config, SourceDeps{})
			Expect(err).To(HaveOccurred())
		})

		It("should require storage for hibernation", func() {
			_, err := NewSourceThread(mockVM, fileParams(), config, SourceDeps{})
			Expect(err).To(HaveOccurred())
		})

		DescribeTable("should build the transfer flags", func(mutate func(*MigrationParameters), expected libvirt.DomainMigrateFlags) {
			params := remoteParams()
			mutate(&params)
			Expect(newThread(params).migrateFlags()).To(Equal(libvirt.MIGRATE_LIVE | libvirt.MIGRATE_PEER2PEER | expected))
		},
			Entry("by default", func(p *MigrationParameters) {}, libvirt.DomainMigrateFlags(0)),
			Entry("tunneled", func(p *MigrationParameters) { p.Tunneled = true }, libvirt.MIGRATE_TUNNELLED),
			Entry("abort on error", func(p *MigrationParameters) { p.AbortOnError = true }, libvirt.MIGRATE_ABORT_ON_ERROR),
			Entry("compressed", func(p *MigrationParameters) { p.Compressed = true }, libvirt.MIGRATE_COMPRESSED),
			Entry("auto converge", func(p *MigrationParameters) { p.AutoConverge = true }, libvirt.MIGRATE_AUTO_CONVERGE),
		)

		It("should build the URIs", func() {
			config.SSL = false
			params := remoteParams()
			params.Destination = "[fd00::10]:5000"
			params.DestinationQemu = "fd00::20"
			thread := newThread(params)
			Expect(thread.destinationURI()).To(Equal("qemu+tcp://[fd00::10]/system"))
			Expect(thread.migrationURI()).To(Equal("tcp://[fd00::20]"))
		})

		It("should revive the SPICE ticket before handing over the console", func() {
			params := remoteParams()
			params.ConsoleAddress = "192.168.0.11"
			thread := newThread(params)
			mockVM.EXPECT().HasSpice().Return(true)
			mockVM.EXPECT().ReviveTicket().Return(nil)
			migrateParams := thread.migrateParameters("tcp://192.168.0.10", "")
			Expect(migrateParams.GraphicsURISet).To(BeTrue())
			Expect(migrateParams.GraphicsURI).To(Equal("spice://192.168.0.11"))
		})

		It("should hand over a VNC console", func() {
			params := remoteParams()
			params.ConsoleAddress = "192.168.0.11"
			thread := newThread(params)
			mockVM.EXPECT().HasSpice().Return(false)
			Expect(thread.migrateParameters("tcp://192.168.0.10", "").GraphicsURI).To(Equal("vnc://192.168.0.11"))
		})
	})
})
