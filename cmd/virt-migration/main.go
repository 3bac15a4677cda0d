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

	"github.com/spf13/cobra"

	"kubevirt.io/livemigration/pkg/log"
	virtconfig "kubevirt.io/livemigration/pkg/virt-config"
)

type rootOptions struct {
	configPath string
	verbosity  int
	config     *virtconfig.MigrationConfig
}

func main() {
	log.InitializeLogging("virt-migration")

	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{})
}

func newRootCommand(options *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "virt-migration",
		Short:         "Live migrate or hibernate libvirt domains",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.Log.SetVerbosityLevel(options.verbosity); err != nil {
				return err
			}
			config, err := virtconfig.LoadMigrationConfigWithFlags(options.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			options.config = config
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.PersistentFlags().StringVar(&options.configPath, "config", "", "YAML or JSON file with migration tunables")
	rootCmd.PersistentFlags().IntVarP(&options.verbosity, "v", "v", 2, "log level for V logs")
	virtconfig.DefaultMigrationConfig().AddFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		NewServeCommand(options),
		NewMigrateCommand(options),
	)
	return rootCmd
}
