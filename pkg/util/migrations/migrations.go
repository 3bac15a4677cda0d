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
	virtconfig "kubevirt.io/livemigration/pkg/virt-config"
)

var (
	// OutgoingMigrations bounds the migrations this host sends concurrently.
	OutgoingMigrations = NewGate("outgoing", virtconfig.ParallelOutboundMigrationsDefault)
	// IncomingMigrations bounds the migrations this host admits concurrently.
	IncomingMigrations = NewGate("incoming", virtconfig.MaxIncomingMigrationsDefault)
)

// Init sizes both gates from the process configuration. It is meant to be
// called once at process start.
func Init(config *virtconfig.MigrationConfig) {
	OutgoingMigrations.SetBound(config.ParallelOutboundMigrations)
	IncomingMigrations.SetBound(config.MaxIncomingMigrations)
}
