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

package v1

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"google.golang.org/grpc/encoding"
)

var _ = Describe("Codec", func() {

	It("should be registered for the json content-subtype", func() {
		codec := encoding.GetCodec(CodecName)
		Expect(codec).ToNot(BeNil())
		Expect(codec.Name()).To(Equal("json"))
	})

	It("should carry machine parameters and the incoming limit", func() {
		codec := Codec{}
		in := &CreateRequest{
			Params:        map[string]interface{}{"vmId": "testvm", "memSize": 2048},
			IncomingLimit: 3,
		}
		data, err := codec.Marshal(in)
		Expect(err).ToNot(HaveOccurred())

		out := &CreateRequest{}
		Expect(codec.Unmarshal(data, out)).To(Succeed())
		Expect(out.IncomingLimit).To(Equal(3))
		Expect(out.Params).To(HaveKeyWithValue("vmId", "testvm"))
		Expect(out.Params).To(HaveKeyWithValue("memSize", BeNumerically("==", 2048)))
	})

	It("should fail on malformed input", func() {
		Expect(Codec{}.Unmarshal([]byte("{"), &Response{})).ToNot(Succeed())
	})
})

var _ = Describe("Status", func() {

	DescribeTable("should classify codes", func(status Status, isError bool) {
		Expect(status.IsError()).To(Equal(isError))
	},
		Entry("in progress", InProgress(), false),
		Entry("done", NewStatus(StatusCodeDone, MessageMigrationDone), false),
		Entry("migrate error", NewStatus(StatusCodeMigrateErr, "boom"), true),
		Entry("migrate limit", NewStatus(StatusCodeMigrateLimit, MessageMigrateLimit), true),
		Entry("cancelled", NewStatus(StatusCodeMigCancelErr, MessageCanceled), true),
	)
})
