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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"libvirt.org/go/libvirt"
)

var _ = Describe("Progress", func() {

	DescribeTable("should compute the percentage", func(jobType libvirt.DomainJobType, total, remaining uint64, expected int) {
		p := &Progress{JobType: jobType, DataTotal: total, DataRemaining: remaining}
		Expect(p.Percentage()).To(Equal(expected))
	},
		Entry("nothing remaining", libvirt.DOMAIN_JOB_UNBOUNDED, uint64(1000), uint64(0), 100),
		Entry("nothing transferred", libvirt.DOMAIN_JOB_UNBOUNDED, uint64(1000), uint64(1000), 0),
		Entry("half way", libvirt.DOMAIN_JOB_UNBOUNDED, uint64(1000), uint64(500), 50),
		Entry("almost done while ongoing", libvirt.DOMAIN_JOB_UNBOUNDED, uint64(1000), uint64(1), 99),
		Entry("almost done without a job", libvirt.DOMAIN_JOB_NONE, uint64(1000), uint64(1), 100),
		Entry("no total known", libvirt.DOMAIN_JOB_UNBOUNDED, uint64(0), uint64(0), 0),
	)

	It("should mark unreported counters", func() {
		p := NewProgress(&libvirt.DomainJobInfo{
			Type:             libvirt.DOMAIN_JOB_UNBOUNDED,
			DataTotal:        4 * mib,
			DataRemaining:    mib,
			DataRemainingSet: true,
		})
		Expect(p.DirtyRate).To(Equal(int64(-1)))
		Expect(p.MemIteration).To(Equal(int64(-1)))
		Expect(p.Ongoing()).To(BeTrue())
	})

	It("should take over reported counters", func() {
		p := NewProgress(&libvirt.DomainJobInfo{
			Type:            libvirt.DOMAIN_JOB_NONE,
			MemDirtyRateSet: true,
			MemDirtyRate:    120,
			MemIterationSet: true,
			MemIteration:    3,
		})
		Expect(p.DirtyRate).To(Equal(int64(120)))
		Expect(p.MemIteration).To(Equal(int64(3)))
		Expect(p.Ongoing()).To(BeFalse())
	})

	It("should render a log line", func() {
		p := &Progress{
			JobType:       libvirt.DOMAIN_JOB_UNBOUNDED,
			TimeElapsed:   12500,
			DataTotal:     1024 * mib,
			DataProcessed: 256 * mib,
			DataRemaining: 768 * mib,
			MemBps:        mib,
			MemConstant:   4096,
			DirtyRate:     -1,
			MemIteration:  2,
		}
		line := p.String()
		Expect(line).To(ContainSubstring("12 seconds elapsed"))
		Expect(line).To(ContainSubstring("25% of data processed"))
		Expect(line).To(ContainSubstring("remaining data: 768MB"))
		Expect(line).To(ContainSubstring("transfer speed 8Mbps"))
		Expect(line).To(ContainSubstring("zero pages: 4096,"))
		Expect(line).To(ContainSubstring("memory iteration: 2"))
	})
})
