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

//go:generate mockgen -source $GOFILE -package=$GOPACKAGE -destination=generated_mock_$GOFILE

/*
 ATTENTION: Rerun code generators when interface signatures are modified.
*/

import (
	"time"

	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
)

type VMStatus string

const (
	VMStatusUp              VMStatus = "Up"
	VMStatusMigrationSource VMStatus = "Migration Source"
	VMStatusSavingState     VMStatus = "Saving State"
)

type ExitReason string

const (
	ExitReasonMigrationSucceeded ExitReason = "MigrationSucceeded"
	ExitReasonSaveStateSucceeded ExitReason = "SaveStateSucceeded"
)

const (
	SessionStateLocked    = "Locked"
	SessionStateLoggedOff = "LoggedOff"
)

// VM is the lifecycle manager view of the migrating virtual machine.
type VM interface {
	ID() string
	Domain() cli.VirDomain
	// Status returns the machine parameters describing the running VM.
	Status() map[string]interface{}
	StartTime() time.Time
	MemSizeMiB() int64
	HasSpice() bool
	SessionState() string
	Pause(status VMStatus) error
	Resume() error
	// Hibernate saves the VM memory state to path using domainXML.
	Hibernate(path string, domainXML string) error
	SetLastStatus(status VMStatus)
	SetDownStatus(reason ExitReason)
	SendStatusEvent()
	ReviveTicket() error
	GuestAgent() GuestAgent
}

type GuestAgent interface {
	IsResponsive() bool
	DesktopLock() error
	BeforeHibernation(timeout time.Duration) error
	BeforeMigration(timeout time.Duration) error
	AfterHibernationFailure() error
	AfterMigrationFailure() error
}

// Storage resolves hand-off volumes to local paths.
type Storage interface {
	PrepareVolumePath(volume string) (string, error)
	TeardownVolumePath(volume string) error
}

// HookRunner runs the source side migration hooks. Hooks receiving a
// domain XML may return a modified one.
type HookRunner interface {
	BeforeMigrateSource(domainXML string) (string, error)
	BeforeDeviceMigrateSource(domainXML string) (string, error)
	AfterMigrateSource(domainXML string) error
	BeforeHibernate(domainXML string) (string, error)
	AfterHibernate(domainXML string) error
}
