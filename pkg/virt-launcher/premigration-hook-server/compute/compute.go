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

package compute

import (
	"libvirt.org/go/libvirtxml"

	"kubevirt.io/livemigration/pkg/log"
	"kubevirt.io/livemigration/pkg/virt-launcher/premigration-hook-server/types"
)

// NewCPUPinningHook creates a hook which drops the host specific CPU
// placement of the source so the destination applies its own.
func NewCPUPinningHook() types.HookFunc {
	return cpuPinningHook
}

func cpuPinningHook(domain *libvirtxml.Domain) error {
	if domain.CPUTune != nil {
		domain.CPUTune.VCPUPin = nil
		domain.CPUTune.EmulatorPin = nil
		domain.CPUTune.IOThreadPin = nil
	}
	if domain.VCPU != nil {
		domain.VCPU.CPUSet = ""
	}
	if domain.NUMATune != nil {
		domain.NUMATune.MemNodes = nil
		if domain.NUMATune.Memory != nil {
			domain.NUMATune.Memory.Nodeset = ""
		}
	}

	log.Log.V(3).Infof("Dropped source CPU placement of domain %s", domain.Name)
	return nil
}
