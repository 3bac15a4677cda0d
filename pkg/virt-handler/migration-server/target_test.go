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

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"libvirt.org/go/libvirt"

	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
)

var _ = Describe("Libvirt target creator", func() {
	var (
		ctrl     *gomock.Controller
		conn     *cli.MockConnection
		domain   *cli.MockVirDomain
		creator  *LibvirtTargetCreator
		notFound = libvirt.Error{Code: libvirt.ERR_NO_DOMAIN, Message: "Domain not found"}
	)

	domainXML := `<domain type="kvm"><name>testvm</name><uuid>` + vmA + `</uuid></domain>`

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		conn = cli.NewMockConnection(ctrl)
		domain = cli.NewMockVirDomain(ctrl)
		creator = NewLibvirtTargetCreator(conn, 49152)
	})

	It("should wait for an unknown domain", func() {
		conn.EXPECT().LookupDomainByUUIDString(vmA).Return(nil, notFound)

		port, err := creator.CreateTarget(context.Background(), vmA, map[string]interface{}{"xml": domainXML})
		Expect(err).ToNot(HaveOccurred())
		Expect(port).To(Equal(49152))
		Expect(creator.Pending(vmA)).To(BeTrue())
	})

	It("should refuse a domain which already runs here", func() {
		conn.EXPECT().LookupDomainByUUIDString(vmA).Return(domain, nil)
		domain.EXPECT().Free().Return(nil)

		_, err := creator.CreateTarget(context.Background(), vmA, map[string]interface{}{"xml": domainXML})
		Expect(err).To(MatchError(ContainSubstring("already exists")))
		Expect(creator.Pending(vmA)).To(BeFalse())
	})

	DescribeTable("should refuse broken machine parameters", func(params map[string]interface{}) {
		_, err := creator.CreateTarget(context.Background(), vmA, params)
		Expect(err).To(HaveOccurred())
	},
		Entry("without XML", map[string]interface{}{}),
		Entry("with malformed XML", map[string]interface{}{"xml": "<domain"}),
		Entry("with a foreign UUID", map[string]interface{}{"xml": `<domain type="kvm"><name>x</name><uuid>` + vmB + `</uuid></domain>`}),
	)

	It("should surface libvirt lookup failures", func() {
		conn.EXPECT().LookupDomainByUUIDString(vmA).Return(nil, libvirt.Error{Code: libvirt.ERR_INTERNAL_ERROR})

		_, err := creator.CreateTarget(context.Background(), vmA, map[string]interface{}{"xml": domainXML})
		Expect(err).To(MatchError(ContainSubstring("failed to look up")))
	})

	It("should destroy an arrived domain", func() {
		conn.EXPECT().LookupDomainByUUIDString(vmA).Return(nil, notFound)
		_, err := creator.CreateTarget(context.Background(), vmA, map[string]interface{}{"xml": domainXML})
		Expect(err).ToNot(HaveOccurred())

		conn.EXPECT().LookupDomainByUUIDString(vmA).Return(domain, nil)
		domain.EXPECT().Destroy().Return(nil)
		domain.EXPECT().Free().Return(nil)

		Expect(creator.DestroyTarget(vmA)).To(Succeed())
		Expect(creator.Pending(vmA)).To(BeFalse())
	})

	It("should treat a domain which never arrived as destroyed", func() {
		conn.EXPECT().LookupDomainByUUIDString(vmA).Return(nil, notFound)
		Expect(creator.DestroyTarget(vmA)).To(Succeed())
	})
})
