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
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"kubevirt.io/livemigration/pkg/log"
	migrationmetrics "kubevirt.io/livemigration/pkg/monitoring/metrics/migration"
	"kubevirt.io/livemigration/pkg/util/migrations"
	migrationserver "kubevirt.io/livemigration/pkg/virt-handler/migration-server"
	"kubevirt.io/livemigration/pkg/virt-launcher/virtwrap/cli"
)

const (
	defaultLibvirtURI     = "qemu:///system"
	defaultMetricsAddress = ":8443"
	defaultMigrationPort  = 49152
)

type serveOptions struct {
	root           *rootOptions
	listenAddress  string
	metricsAddress string
	libvirtURI     string
	migrationPort  int
	tls            tlsOptions
}

func NewServeCommand(root *rootOptions) *cobra.Command {
	options := &serveOptions{root: root}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the destination migration agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return options.run(ctx)
		},
	}

	cmd.Flags().StringVar(&options.listenAddress, "listen", "", "Address of the migration API, defaults to the configured destination port on all interfaces")
	cmd.Flags().StringVar(&options.metricsAddress, "metrics-listen", defaultMetricsAddress, "Address of the prometheus endpoint, empty disables it")
	cmd.Flags().StringVar(&options.libvirtURI, "libvirt-uri", defaultLibvirtURI, "Libvirt daemon receiving the incoming domains")
	cmd.Flags().IntVar(&options.migrationPort, "migration-port", defaultMigrationPort, "Port announced for the incoming migration stream")
	options.tls.AddFlags(cmd.Flags())
	return cmd
}

func (o *serveOptions) run(ctx context.Context) error {
	config := o.root.config
	migrations.Init(config)
	if err := migrationmetrics.Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	conn, err := cli.NewConnection(o.libvirtURI)
	if err != nil {
		return err
	}
	defer conn.Close()

	var serverOpts []grpc.ServerOption
	if config.SSL {
		tlsConfig, err := o.tls.serverConfig()
		if err != nil {
			return err
		}
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(tlsConfig)))
	}

	address := o.listenAddress
	if address == "" {
		address = net.JoinHostPort("", strconv.Itoa(config.DestinationPort))
	}
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	server := migrationserver.NewServer(migrations.IncomingMigrations, migrationserver.NewLibvirtTargetCreator(conn, o.migrationPort))

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		stopChan := make(chan struct{})
		done := migrationserver.RunServer(listener, server, stopChan, serverOpts...)
		log.Log.Infof("Migration API listening on %s", listener.Addr())
		<-ctx.Done()
		close(stopChan)
		<-done
		return nil
	})

	if o.metricsAddress != "" {
		metricsServer := &http.Server{Addr: o.metricsAddress, Handler: metricsMux()}
		group.Go(func() error {
			log.Log.Infof("Serving metrics on %s", o.metricsAddress)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		group.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		})
	}

	return group.Wait()
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}
