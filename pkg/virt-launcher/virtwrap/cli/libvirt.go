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

package cli

//go:generate mockgen -source $GOFILE -package=$GOPACKAGE -destination=generated_mock_$GOFILE

/*
 ATTENTION: Rerun code generators when interface signatures are modified.
*/

import (
	"fmt"
	"sync"

	"libvirt.org/go/libvirt"

	"kubevirt.io/livemigration/pkg/log"
)

type Connection interface {
	LookupDomainByName(name string) (VirDomain, error)
	LookupDomainByUUIDString(uuid string) (VirDomain, error)
	Close() (int, error)
}

// VirDomain is the subset of *libvirt.Domain the migration engine relies on.
type VirDomain interface {
	GetName() (string, error)
	GetUUIDString() (string, error)
	GetState() (libvirt.DomainState, int, error)
	GetXMLDesc(flags libvirt.DomainXMLFlags) (string, error)
	GetJobStats(flags libvirt.DomainGetJobStatsFlags) (*libvirt.DomainJobInfo, error)
	AbortJob() error
	MigrateToURI3(dconnuri string, params *libvirt.DomainMigrateParameters, flags libvirt.DomainMigrateFlags) error
	MigrateSetMaxDowntime(downtime uint64, flags uint32) error
	MigrateSetMaxSpeed(speed uint64, flags uint32) error
	Suspend() error
	Resume() error
	Destroy() error
	SaveFlags(destFile string, destXml string, flags libvirt.DomainSaveRestoreFlags) error
	Free() error
}

type LibvirtConnection struct {
	Connect *libvirt.Connect
	uri     string
	lock    sync.Mutex
}

func NewConnection(uri string) (Connection, error) {
	log.Log.Infof("Connecting to libvirt daemon: %s", uri)
	virConn, err := libvirt.NewConnect(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to libvirt daemon %s: %v", uri, err)
	}
	return &LibvirtConnection{Connect: virConn, uri: uri}, nil
}

func (l *LibvirtConnection) LookupDomainByName(name string) (VirDomain, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	dom, err := l.Connect.LookupDomainByName(name)
	if err != nil {
		return nil, err
	}
	return dom, nil
}

func (l *LibvirtConnection) LookupDomainByUUIDString(uuid string) (VirDomain, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	dom, err := l.Connect.LookupDomainByUUIDString(uuid)
	if err != nil {
		return nil, err
	}
	return dom, nil
}

func (l *LibvirtConnection) Close() (int, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.Connect.Close()
}

// IsOperationAborted reports whether err is the libvirt error raised when a
// running job was aborted.
func IsOperationAborted(err error) bool {
	return hasErrorCode(err, libvirt.ERR_OPERATION_ABORTED)
}

// IsNoDomainJob reports whether err was raised because no job was active on
// the domain, e.g. when aborting before a transfer started.
func IsNoDomainJob(err error) bool {
	return hasErrorCode(err, libvirt.ERR_OPERATION_INVALID)
}

// IsNotFound reports whether err was raised because the domain does not exist.
func IsNotFound(err error) bool {
	return hasErrorCode(err, libvirt.ERR_NO_DOMAIN)
}

func hasErrorCode(err error, code libvirt.ErrorNumber) bool {
	switch virErr := err.(type) {
	case libvirt.Error:
		return virErr.Code == code
	case *libvirt.Error:
		return virErr != nil && virErr.Code == code
	}
	return false
}
