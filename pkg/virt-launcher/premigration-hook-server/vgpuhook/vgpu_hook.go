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

package vgpuhook

import (
	"fmt"

	"libvirt.org/go/libvirtxml"

	"kubevirt.io/livemigration/pkg/log"
	"kubevirt.io/livemigration/pkg/virt-launcher/premigration-hook-server/types"
)

// NewVGPUHook creates a device hook which points the single mediated
// device of the domain at the mdev reserved on the destination host.
// An empty targetUUID leaves the devices untouched.
func NewVGPUHook(targetUUID string) types.DeviceHookFunc {
	return func(devices *libvirtxml.DomainDeviceList) error {
		return VGPUDedicatedHook(targetUUID, devices)
	}
}

func VGPUDedicatedHook(targetUUID string, devices *libvirtxml.DomainDeviceList) error {
	if targetUUID == "" || devices == nil {
		return nil
	}

	var mdev *libvirtxml.DomainHostdevSubsysMDev
	for i := range devices.Hostdevs {
		hostdev := &devices.Hostdevs[i]
		if hostdev.SubsysMDev == nil {
			continue
		}
		if mdev != nil {
			return fmt.Errorf("the migrating domain can only have one vGPU")
		}
		mdev = hostdev.SubsysMDev
	}
	if mdev == nil {
		return nil
	}

	if mdev.Source == nil {
		mdev.Source = &libvirtxml.DomainHostdevSubsysMDevSource{}
	}
	if mdev.Source.Address == nil {
		mdev.Source.Address = &libvirtxml.DomainAddressMDev{}
	}
	log.Log.V(3).Infof("Replacing mdev %s with %s", mdev.Source.Address.UUID, targetUUID)
	mdev.Source.Address.UUID = targetUUID
	return nil
}
