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

package main

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/migration"
)

const pinnedDomain = `<domain type="kvm">
  <name>vm1</name>
  <cputune>
    <vcpupin vcpu="0" cpuset="2"/>
  </cputune>
</domain>`

var _ = Describe("virt-migration", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "virt-migration")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
	})

	writeFile := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0600)).To(Succeed())
		return path
	}

	Context("root command", func() {
		It("should let flags win over the config file", func() {
			configPath := writeFile("config.yaml", "retryTimeout: 20\ndowntimeMs: 300\n")

			cmd, options := newTestRootCommand()
			cmd.SetArgs([]string{"--config", configPath, "--migration-retry-timeout", "5"})
			Expect(cmd.Execute()).To(Succeed())

			Expect(options.config.RetryTimeout).To(Equal(int64(5)))
			Expect(options.config.DowntimeMs).To(Equal(int64(300)))
		})

		It("should reject an invalid config", func() {
			configPath := writeFile("config.yaml", "parallelOutboundMigrations: 0\n")

			cmd, _ := newTestRootCommand()
			cmd.SetArgs([]string{"--config", configPath})
			Expect(cmd.Execute()).To(MatchError(ContainSubstring("parallelOutboundMigrations")))
		})

		It("should register the serve and migrate commands", func() {
			cmd := NewRootCommand()
			names := []string{}
			for _, sub := range cmd.Commands() {
				names = append(names, sub.Name())
			}
			Expect(names).To(ContainElements("serve", "migrate"))
		})
	})

	Context("migration parameters", func() {
		It("should load YAML parameters", func() {
			path := writeFile("params.yaml", `
mode: remote
destination: 192.168.0.10
downtimeMs: 400
convergenceSchedule:
  init:
  - name: setDowntime
    params: ["200"]
  stalling:
  - limit: 1
    action:
      name: abort
`)
			params, err := loadMigrationParameters(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(params.Mode).To(Equal(migration.ModeRemote))
			Expect(params.Destination).To(Equal("192.168.0.10"))
			Expect(params.DowntimeMs).To(Equal(int64(400)))
			Expect(params.ConvergenceSchedule.Init).To(Equal([]migration.Action{migration.SetDowntimeAction(200)}))
			Expect(params.ConvergenceSchedule.Stalling).To(HaveLen(1))
		})

		It("should load JSON parameters", func() {
			path := writeFile("params.json", `{"mode":"file","handoffPath":"mem","handoffParamsPath":"params"}`)
			params, err := loadMigrationParameters(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(params.Hibernating()).To(BeTrue())
		})

		It("should reject invalid parameters", func() {
			path := writeFile("params.json", `{"mode":"remote"}`)
			_, err := loadMigrationParameters(path)
			Expect(err).To(MatchError(ContainSubstring("destination")))
		})

		It("should fail on a missing file", func() {
			_, err := loadMigrationParameters(filepath.Join(dir, "missing.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("hooks", func() {
		It("should strip CPU pinning only when requested", func() {
			options := &migrateOptions{}
			out, err := options.hooks().BeforeMigrateSource(pinnedDomain)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(pinnedDomain))

			options.stripCPUPinning = true
			out, err = options.hooks().BeforeMigrateSource(pinnedDomain)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).ToNot(ContainSubstring("vcpupin"))
		})
	})

	Context("TLS", func() {
		It("should require a certificate on the server side", func() {
			options := &tlsOptions{}
			_, err := options.serverConfig()
			Expect(err).To(MatchError(ContainSubstring("certificate")))
		})

		It("should reject a CA bundle without certificates", func() {
			options := &tlsOptions{caFile: writeFile("ca.pem", "not a certificate")}
			_, err := options.clientConfig()
			Expect(err).To(MatchError(ContainSubstring("no certificates")))
		})
	})
})

func newTestRootCommand() (*cobra.Command, *rootOptions) {
	options := &rootOptions{}
	cmd := newRootCommand(options)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd, options
}
