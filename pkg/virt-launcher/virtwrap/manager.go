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
 * Copyright 2017 Red Hat, Inc.
 *
 */

package virtwrap

import (
	"fmt"

	"k8s.io/utils/clock"
	"libvirt.org/go/libvirt"
	"libvirt.org/go/libvirtxml"

	"kubevirt.io/livemigration/pkg/log"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
)

type DomainManager interface {
	// LookupVM returns the running domain name as a migratable VM.
	LookupVM(name string) (*LibvirtVM, error)
}

type LibvirtDomainManager struct {
	virConn cli.Connection
	clock   clock.Clock
}

func NewLibvirtDomainManager(connection cli.Connection) DomainManager {
	return &LibvirtDomainManager{
		virConn: connection,
		clock:   clock.RealClock{},
	}
}

func (l *LibvirtDomainManager) LookupVM(name string) (*LibvirtVM, error) {
	dom, err := l.virConn.LookupDomainByName(name)
	if err != nil {
		if cli.IsNotFound(err) {
			return nil, fmt.Errorf("domain %s does not exist", name)
		}
		log.Log.Reason(err).Errorf("Getting the domain %s failed.", name)
		return nil, err
	}

	domState, _, err := dom.GetState()
	if err != nil {
		log.Log.Reason(err).Error("Getting the domain state failed.")
		dom.Free()
		return nil, err
	}
	if domState != libvirt.DOMAIN_RUNNING && domState != libvirt.DOMAIN_PAUSED {
		dom.Free()
		return nil, fmt.Errorf("domain %s is not running", name)
	}

	uuid, err := dom.GetUUIDString()
	if err != nil {
		dom.Free()
		return nil, err
	}
	xmlstr, err := dom.GetXMLDesc(0)
	if err != nil {
		log.Log.Reason(err).Error("Unable to retrieve domain xml")
		dom.Free()
		return nil, err
	}
	spec := &libvirtxml.Domain{}
	if err := spec.Unmarshal(xmlstr); err != nil {
		dom.Free()
		return nil, fmt.Errorf("failed to parse domain xml of %s: %v", name, err)
	}

	vm := newLibvirtVM(dom, uuid, spec, l.clock.Now())
	if domState == libvirt.DOMAIN_PAUSED {
		vm.lastStatus = vmStatusPaused
	}
	return vm, nil
}
