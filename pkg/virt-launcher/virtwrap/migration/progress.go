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

import (
	"fmt"

	"libvirt.org/go/libvirt"
)

const mib = 1 << 20

// Progress is a snapshot of the domain job statistics of a running migration.
type Progress struct {
	JobType libvirt.DomainJobType
	// TimeElapsed in milliseconds
	TimeElapsed      uint64
	DataTotal        uint64
	DataProcessed    uint64
	DataRemaining    uint64
	MemTotal         uint64
	MemProcessed     uint64
	MemRemaining     uint64
	MemBps           uint64
	MemConstant      uint64
	CompressionBytes uint64
	// DirtyRate in pages per second, -1 when not reported
	DirtyRate int64
	// MemIteration is -1 when not reported
	MemIteration int64
}

func NewProgress(info *libvirt.DomainJobInfo) *Progress {
	p := &Progress{
		JobType:          info.Type,
		TimeElapsed:      info.TimeElapsed,
		DataTotal:        info.DataTotal,
		DataProcessed:    info.DataProcessed,
		DataRemaining:    info.DataRemaining,
		MemTotal:         info.MemTotal,
		MemProcessed:     info.MemProcessed,
		MemRemaining:     info.MemRemaining,
		MemBps:           info.MemBps,
		MemConstant:      info.MemConstant,
		CompressionBytes: info.CompressionBytes,
		DirtyRate:        -1,
		MemIteration:     -1,
	}
	if info.MemDirtyRateSet {
		p.DirtyRate = int64(info.MemDirtyRate)
	}
	if info.MemIterationSet {
		p.MemIteration = int64(info.MemIteration)
	}
	return p
}

// Ongoing reports whether the snapshot belongs to an active job.
func (p *Progress) Ongoing() bool {
	return p.JobType == libvirt.DOMAIN_JOB_BOUNDED || p.JobType == libvirt.DOMAIN_JOB_UNBOUNDED
}

// Percentage of the data already transferred. 100 is only reported once
// nothing remains or the job is gone.
func (p *Progress) Percentage() int {
	if p.DataRemaining == 0 && p.DataTotal > 0 {
		return 100
	}
	if p.DataTotal == 0 {
		return 0
	}
	progress := 100 - int(100*p.DataRemaining/p.DataTotal)
	if progress < 0 {
		progress = 0
	}
	if progress > 99 && p.JobType != libvirt.DOMAIN_JOB_NONE {
		return 99
	}
	return progress
}

func (p *Progress) String() string {
	return fmt.Sprintf(
		"Migration Progress: %d seconds elapsed, %d%% of data processed, "+
			"total data: %dMB, processed data: %dMB, remaining data: %dMB, "+
			"transfer speed %dMbps, zero pages: %d, compressed: %dMB, "+
			"dirty rate: %d, memory iteration: %d",
		p.TimeElapsed/1000,
		p.Percentage(),
		p.DataTotal/mib,
		p.DataProcessed/mib,
		p.DataRemaining/mib,
		p.MemBps*8/mib,
		p.MemConstant,
		p.CompressionBytes/mib,
		p.DirtyRate,
		p.MemIteration,
	)
}
