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
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

type tlsOptions struct {
	certFile string
	keyFile  string
	caFile   string
}

func (o *tlsOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.certFile, "tls-cert-file", "", "PEM encoded certificate of this host")
	fs.StringVar(&o.keyFile, "tls-key-file", "", "PEM encoded private key of this host")
	fs.StringVar(&o.caFile, "tls-ca-file", "", "PEM encoded CA bundle trusted for the peer host")
}

// serverConfig requires and verifies client certificates when a CA is given.
func (o *tlsOptions) serverConfig() (*tls.Config, error) {
	config, err := o.baseConfig()
	if err != nil {
		return nil, err
	}
	if len(config.Certificates) == 0 {
		return nil, fmt.Errorf("a TLS certificate and key are required")
	}
	if config.RootCAs != nil {
		config.ClientCAs = config.RootCAs
		config.RootCAs = nil
		config.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return config, nil
}

func (o *tlsOptions) clientConfig() (*tls.Config, error) {
	return o.baseConfig()
}

func (o *tlsOptions) baseConfig() (*tls.Config, error) {
	config := &tls.Config{MinVersion: tls.VersionTLS12}

	if o.certFile != "" || o.keyFile != "" {
		cert, err := tls.LoadX509KeyPair(o.certFile, o.keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS key pair: %v", err)
		}
		config.Certificates = []tls.Certificate{cert}
	}

	if o.caFile != "" {
		pem, err := os.ReadFile(o.caFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA bundle: %v", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", o.caFile)
		}
		config.RootCAs = pool
	}
	return config, nil
}
