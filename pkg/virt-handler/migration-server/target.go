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

package migrationserver

import (
	"context"
	"fmt"
	"sync"

	"libvirt.org/go/libvirtxml"

	"kubevirt.io/livemigration/pkg/log"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
)

// LibvirtTargetCreator waits for VMs which the source libvirt daemon
// migrates peer to peer into the local one.
type LibvirtTargetCreator struct {
	conn cli.Connection
	port int

	lock    sync.Mutex
	pending map[string]string
}

func NewLibvirtTargetCreator(conn cli.Connection, port int) *LibvirtTargetCreator {
	return &LibvirtTargetCreator{
		conn:    conn,
		port:    port,
		pending: map[string]string{},
	}
}

func (c *LibvirtTargetCreator) CreateTarget(_ context.Context, vmID string, params map[string]interface{}) (int, error) {
	domainXML, _ := params["xml"].(string)
	if domainXML == "" {
		return 0, fmt.Errorf("missing domain XML in machine parameters")
	}
	domain := &libvirtxml.Domain{}
	if err := domain.Unmarshal(domainXML); err != nil {
		return 0, fmt.Errorf("invalid domain XML: %v", err)
	}
	if domain.UUID != "" && domain.UUID != vmID {
		return 0, fmt.Errorf("domain UUID %s does not match VM %s", domain.UUID, vmID)
	}

	dom, err := c.conn.LookupDomainByUUIDString(vmID)
	if err == nil {
		dom.Free()
		return 0, fmt.Errorf("VM %s already exists on this host", vmID)
	}
	if !cli.IsNotFound(err) {
		return 0, fmt.Errorf("failed to look up VM %s: %v", vmID, err)
	}

	c.lock.Lock()
	c.pending[vmID] = domain.Name
	c.lock.Unlock()

	log.Log.Object(vmRef(vmID)).Infof("Waiting for incoming domain %s", domain.Name)
	return c.port, nil
}

// DestroyTarget kills whatever part of the incoming domain already arrived.
func (c *LibvirtTargetCreator) DestroyTarget(vmID string) error {
	c.lock.Lock()
	delete(c.pending, vmID)
	c.lock.Unlock()

	dom, err := c.conn.LookupDomainByUUIDString(vmID)
	if err != nil {
		if cli.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to look up VM %s: %v", vmID, err)
	}
	defer dom.Free()

	if err := dom.Destroy(); err != nil && !cli.IsNotFound(err) {
		return fmt.Errorf("failed to destroy VM %s: %v", vmID, err)
	}
	return nil
}

func (c *LibvirtTargetCreator) Pending(vmID string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	_, ok := c.pending[vmID]
	return ok
}
