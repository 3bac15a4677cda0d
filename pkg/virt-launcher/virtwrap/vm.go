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

package virtwrap

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"libvirt.org/go/libvirtxml"

	"kubevirt.io/livemigration/pkg/log"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/migration"
)

const (
	vmStatusPaused migration.VMStatus = "Paused"
	vmStatusDown   migration.VMStatus = "Down"

	sessionStateUnknown = "Unknown"
)

// StatusListener receives the machine parameters on every status event.
type StatusListener func(status map[string]interface{})

// LibvirtVM exposes a libvirt domain to the migration engine. It does not
// talk to a guest agent.
type LibvirtVM struct {
	dom       cli.VirDomain
	id        string
	name      string
	startTime time.Time
	memMiB    int64
	display   string
	displayIP string

	lock       sync.Mutex
	lastStatus migration.VMStatus
	exitReason migration.ExitReason
	listener   StatusListener
}

func newLibvirtVM(dom cli.VirDomain, uuid string, spec *libvirtxml.Domain, startTime time.Time) *LibvirtVM {
	vm := &LibvirtVM{
		dom:        dom,
		id:         uuid,
		name:       spec.Name,
		startTime:  startTime,
		lastStatus: migration.VMStatusUp,
	}
	if spec.Memory != nil {
		vm.memMiB = memoryToMiB(spec.Memory.Value, spec.Memory.Unit)
	}
	if spec.Devices != nil {
		for _, graphics := range spec.Devices.Graphics {
			switch {
			case graphics.Spice != nil:
				vm.display = "spice"
				vm.displayIP = graphicsListen(graphics.Spice.Listeners)
			case graphics.VNC != nil && vm.display == "":
				vm.display = "vnc"
				vm.displayIP = graphicsListen(graphics.VNC.Listeners)
			}
		}
	}
	return vm
}

func graphicsListen(listeners []libvirtxml.DomainGraphicListener) string {
	for _, listener := range listeners {
		if listener.Address != nil {
			return listener.Address.Address
		}
	}
	return ""
}

// memoryToMiB converts a libvirt memory element, which defaults to KiB.
func memoryToMiB(value uint, unit string) int64 {
	v := int64(value)
	switch strings.ToLower(unit) {
	case "b", "bytes":
		return v >> 20
	case "", "k", "kib":
		return v >> 10
	case "kb":
		return v * 1000 >> 20
	case "m", "mib":
		return v
	case "mb":
		return v * 1000 * 1000 >> 20
	case "g", "gib":
		return v << 10
	case "gb":
		return v * 1000 * 1000 * 1000 >> 20
	case "t", "tib":
		return v << 20
	}
	log.Log.Warningf("Unknown memory unit %q, assuming KiB", unit)
	return v >> 10
}

func (v *LibvirtVM) ID() string   { return v.id }
func (v *LibvirtVM) Kind() string { return "VirtualMachine" }

func (v *LibvirtVM) Domain() cli.VirDomain {
	return v.dom
}

func (v *LibvirtVM) Status() map[string]interface{} {
	v.lock.Lock()
	defer v.lock.Unlock()
	status := map[string]interface{}{
		"vmId":    v.id,
		"vmName":  v.name,
		"memSize": v.memMiB,
		"status":  string(v.lastStatus),
	}
	if v.display != "" {
		status["display"] = v.display
		status["displayIp"] = v.displayIP
	}
	if v.exitReason != "" {
		status["exitReason"] = string(v.exitReason)
	}
	return status
}

func (v *LibvirtVM) StartTime() time.Time {
	return v.startTime
}

func (v *LibvirtVM) MemSizeMiB() int64 {
	return v.memMiB
}

func (v *LibvirtVM) HasSpice() bool {
	return v.display == "spice"
}

func (v *LibvirtVM) SessionState() string {
	return sessionStateUnknown
}

func (v *LibvirtVM) Pause(status migration.VMStatus) error {
	if err := v.dom.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend domain %s: %v", v.name, err)
	}
	v.SetLastStatus(status)
	return nil
}

func (v *LibvirtVM) Resume() error {
	if err := v.dom.Resume(); err != nil {
		return fmt.Errorf("failed to resume domain %s: %v", v.name, err)
	}
	v.SetLastStatus(migration.VMStatusUp)
	return nil
}

func (v *LibvirtVM) Hibernate(path string, domainXML string) error {
	return v.dom.SaveFlags(path, domainXML, 0)
}

func (v *LibvirtVM) SetLastStatus(status migration.VMStatus) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.lastStatus = status
}

func (v *LibvirtVM) SetDownStatus(reason migration.ExitReason) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.lastStatus = vmStatusDown
	v.exitReason = reason
}

func (v *LibvirtVM) LastStatus() migration.VMStatus {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.lastStatus
}

func (v *LibvirtVM) SetStatusListener(listener StatusListener) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.listener = listener
}

func (v *LibvirtVM) SendStatusEvent() {
	v.lock.Lock()
	listener := v.listener
	v.lock.Unlock()

	status := v.Status()
	log.Log.Object(v).V(4).Infof("VM status: %v", status["status"])
	if listener != nil {
		listener(status)
	}
}

// ReviveTicket is a no-op, console tickets are not managed here.
func (v *LibvirtVM) ReviveTicket() error {
	return nil
}

func (v *LibvirtVM) GuestAgent() migration.GuestAgent {
	return nil
}
