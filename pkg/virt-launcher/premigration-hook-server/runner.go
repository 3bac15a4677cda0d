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

package premigrationhooks

import (
	"fmt"
	"sync"

	"libvirt.org/go/libvirtxml"

	"kubevirt.io/livemigration/pkg/log"
	"kubevirt.io/livemigration/pkg/virt-launcher/premigration-hook-server/types"
)

type HookPoint string

const (
	BeforeMigrateSource HookPoint = "before_vm_migrate_source"
	AfterMigrateSource  HookPoint = "after_vm_migrate_source"
	BeforeHibernate     HookPoint = "before_vm_hibernate"
	AfterHibernate      HookPoint = "after_vm_hibernate"
)

// Runner runs the registered hooks of each hook point in registration order.
// Hook points without hooks hand the domain XML back untouched.
type Runner struct {
	lock        sync.RWMutex
	hooks       map[HookPoint][]types.HookFunc
	deviceHooks []types.DeviceHookFunc
}

func NewRunner() *Runner {
	return &Runner{
		hooks: map[HookPoint][]types.HookFunc{},
	}
}

func (r *Runner) Register(point HookPoint, hooks ...types.HookFunc) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.hooks[point] = append(r.hooks[point], hooks...)
}

func (r *Runner) RegisterDeviceHooks(hooks ...types.DeviceHookFunc) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.deviceHooks = append(r.deviceHooks, hooks...)
}

func (r *Runner) BeforeMigrateSource(domainXML string) (string, error) {
	return r.run(BeforeMigrateSource, domainXML)
}

// BeforeDeviceMigrateSource runs the device hooks over the device list of
// the domain.
func (r *Runner) BeforeDeviceMigrateSource(domainXML string) (string, error) {
	r.lock.RLock()
	hooks := append([]types.DeviceHookFunc{}, r.deviceHooks...)
	r.lock.RUnlock()
	if len(hooks) == 0 {
		return domainXML, nil
	}

	return modifyDomain(domainXML, func(domain *libvirtxml.Domain) error {
		if domain.Devices == nil {
			domain.Devices = &libvirtxml.DomainDeviceList{}
		}
		for i, hook := range hooks {
			if err := hook(domain.Devices); err != nil {
				return fmt.Errorf("device hook %d failed: %v", i, err)
			}
		}
		return nil
	})
}

func (r *Runner) AfterMigrateSource(domainXML string) error {
	_, err := r.run(AfterMigrateSource, domainXML)
	return err
}

func (r *Runner) BeforeHibernate(domainXML string) (string, error) {
	return r.run(BeforeHibernate, domainXML)
}

func (r *Runner) AfterHibernate(domainXML string) error {
	_, err := r.run(AfterHibernate, domainXML)
	return err
}

func (r *Runner) run(point HookPoint, domainXML string) (string, error) {
	r.lock.RLock()
	hooks := append([]types.HookFunc{}, r.hooks[point]...)
	r.lock.RUnlock()
	if len(hooks) == 0 {
		return domainXML, nil
	}

	log.Log.V(3).Infof("Running %d %s hooks", len(hooks), point)
	return modifyDomain(domainXML, func(domain *libvirtxml.Domain) error {
		for i, hook := range hooks {
			if err := hook(domain); err != nil {
				return fmt.Errorf("%s hook %d failed: %v", point, i, err)
			}
		}
		return nil
	})
}

func modifyDomain(domainXML string, modify func(domain *libvirtxml.Domain) error) (string, error) {
	domain := &libvirtxml.Domain{}
	if err := domain.Unmarshal(domainXML); err != nil {
		return "", fmt.Errorf("failed to parse domain XML: %v", err)
	}
	if err := modify(domain); err != nil {
		return "", err
	}
	modified, err := domain.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to serialize domain XML: %v", err)
	}
	return modified, nil
}
