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

package migrations

import (
	"context"
	"sync"

	"kubevirt.io/livemigration/pkg/log"
)

// Gate is a counting semaphore whose bound can be changed while permits are
// held. Lowering the bound never revokes a held permit, it only makes new
// acquirers wait until enough permits were released.
type Gate struct {
	name  string
	lock  sync.Mutex
	bound int
	held  int
	// changed is closed and replaced whenever a waiter may be able to proceed
	changed chan struct{}
}

func NewGate(name string, bound int) *Gate {
	if bound < 1 {
		bound = 1
	}
	return &Gate{
		name:    name,
		bound:   bound,
		changed: make(chan struct{}),
	}
}

// Acquire blocks until a permit is available or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	for {
		g.lock.Lock()
		if g.held < g.bound {
			g.held++
			g.lock.Unlock()
			return nil
		}
		changed := g.changed
		g.lock.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

// TryAcquire takes a permit without waiting.
func (g *Gate) TryAcquire() bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.held < g.bound {
		g.held++
		return true
	}
	return false
}

func (g *Gate) Release() {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.held == 0 {
		log.Log.V(4).Infof("No permits to release for %s gate", g.name)
		return
	}
	g.held--
	g.notifyLocked()
}

// SetBound resizes the gate. Values below 1 are raised to 1.
func (g *Gate) SetBound(bound int) {
	if bound < 1 {
		bound = 1
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	if bound == g.bound {
		return
	}
	log.Log.Infof("Updating %s migration permits from %d to %d (%d held)", g.name, g.bound, bound, g.held)
	g.bound = bound
	g.notifyLocked()
}

func (g *Gate) Bound() int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.bound
}

func (g *Gate) Held() int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.held
}

func (g *Gate) Name() string {
	return g.name
}

func (g *Gate) notifyLocked() {
	close(g.changed)
	g.changed = make(chan struct{})
}
