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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"kubevirt.io/livemigration/pkg/log"
	migrationmetrics "kubevirt.io/livemigration/pkg/monitoring/metrics/migration"
	"kubevirt.io/livemigration/pkg/util/migrations"
	migrationclient "kubevirt.io/livemigration/pkg/virt-handler/migration-client"
	premigrationhooks "kubevirt.io/livemigration/pkg/virt-launcher/premigration-hook-server"
	"kubevirt.io/livemigration/pkg/virt-launcher/premigration-hook-server/compute"
	"kubevirt.io/livemigration/pkg/virt-launcher/premigration-hook-server/vgpuhook"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/migration"
)

const defaultStorageDir = "/var/lib/libvirt/hibernation"

type migrateOptions struct {
	root            *rootOptions
	domain          string
	paramsFile      string
	libvirtURI      string
	storageDir      string
	stripCPUPinning bool
	targetMdevUUID  string
	tls             tlsOptions
}

func NewMigrateCommand(root *rootOptions) *cobra.Command {
	options := &migrateOptions{root: root}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Live migrate or hibernate a running domain",
		Example: `  virt-migration migrate --domain vm1 --params migration.yaml
  virt-migration migrate --domain vm1 --params hibernate.json --storage-dir /srv/handoff`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := options.run()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(report)
			if err != nil {
				return err
			}
			cmd.Print(string(out))
			if report.Status.IsError() {
				return fmt.Errorf("migration %s failed: %s", report.JobID, report.Status.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&options.domain, "domain", "", "Name of the libvirt domain to migrate")
	cmd.Flags().StringVar(&options.paramsFile, "params", "", "YAML or JSON file holding the migration parameters")
	cmd.Flags().StringVar(&options.libvirtURI, "libvirt-uri", defaultLibvirtURI, "Libvirt daemon running the domain")
	cmd.Flags().StringVar(&options.storageDir, "storage-dir", defaultStorageDir, "Directory resolving hand-off volumes in file mode")
	cmd.Flags().BoolVar(&options.stripCPUPinning, "strip-cpu-pinning", false, "Drop host specific CPU pinning from the migrated domain")
	cmd.Flags().StringVar(&options.targetMdevUUID, "target-mdev-uuid", "", "UUID of the mediated device reserved on the destination")
	options.tls.AddFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("params")
	return cmd
}

func loadMigrationParameters(path string) (migration.MigrationParameters, error) {
	params := migration.MigrationParameters{}
	raw, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("failed to read migration parameters %s: %v", path, err)
	}
	if err := yaml.Unmarshal(raw, &params); err != nil {
		return params, fmt.Errorf("failed to parse migration parameters %s: %v", path, err)
	}
	return params, params.Validate()
}

func (o *migrateOptions) hooks() *premigrationhooks.Runner {
	runner := premigrationhooks.NewRunner()
	if o.stripCPUPinning {
		runner.Register(premigrationhooks.BeforeMigrateSource, compute.NewCPUPinningHook())
	}
	runner.RegisterDeviceHooks(vgpuhook.NewVGPUHook(o.targetMdevUUID))
	return runner
}

func (o *migrateOptions) run() (*migration.StatusReport, error) {
	config := o.root.config
	params, err := loadMigrationParameters(o.paramsFile)
	if err != nil {
		return nil, err
	}

	migrations.Init(config)
	if err := migrationmetrics.Register(prometheus.DefaultRegisterer); err != nil {
		return nil, err
	}

	conn, err := cli.NewConnection(o.libvirtURI)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	vm, err := virtwrap.NewLibvirtDomainManager(conn).LookupVM(o.domain)
	if err != nil {
		return nil, err
	}

	deps := migration.SourceDeps{
		Storage: virtwrap.NewLocalStorage(o.storageDir),
		Hooks:   o.hooks(),
	}
	if !params.Hibernating() {
		tlsConfig, err := o.tls.clientConfig()
		if err != nil {
			return nil, err
		}
		deps.Destinations = migrationclient.NewClientFactory(config.SSL, tlsConfig)
	}

	thread, err := migration.NewSourceThread(vm, params, config, deps)
	if err != nil {
		return nil, err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		for range signals {
			log.Log.Object(vm).Info("Received stop signal, canceling migration")
			if err := thread.Stop(); err != nil {
				log.Log.Object(vm).Reason(err).Warning("Failed to cancel migration")
			}
		}
	}()

	log.Log.Object(vm).Infof("Starting %s migration %s", params.Mode, thread.JobID())
	thread.Start()
	thread.Wait()

	report := thread.Status()
	return &report, nil
}
