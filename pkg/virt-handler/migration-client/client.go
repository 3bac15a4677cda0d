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

package migrationclient

//go:generate mockgen -source $GOFILE -package=$GOPACKAGE -destination=generated_mock_$GOFILE

/*
 ATTENTION: Rerun code generators when interface signatures are modified.
*/

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	migrationv1 "kubevirt.io/livemigration/pkg/handler-launcher-com/migration/v1"
	"kubevirt.io/livemigration/pkg/log"
)

const (
	shortTimeout time.Duration = 5 * time.Second
	longTimeout  time.Duration = 60 * time.Second
)

// ErrMigrationLimitExceeded is returned by Create when the destination has
// no free incoming migration slot. The caller is expected to retry later.
var ErrMigrationLimitExceeded = errors.New("incoming migration limit exceeded on destination")

// DestinationClient talks to the migration agent of the destination host.
type DestinationClient interface {
	Ping(ctx context.Context) error
	Create(ctx context.Context, params map[string]interface{}, incomingLimit int) (*migrationv1.CreateResponse, error)
	Destroy(ctx context.Context, vmID string) error
	Finish(ctx context.Context, vmID string, success bool) error
	Close() error
}

type ClientFactory interface {
	Connect(ctx context.Context, address string) (DestinationClient, error)
}

type clientFactory struct {
	creds       credentials.TransportCredentials
	dialOptions []grpc.DialOption
}

// NewClientFactory returns a factory dialing destinations over TLS when
// useTLS is set and in plain text otherwise.
func NewClientFactory(useTLS bool, tlsConfig *tls.Config, opts ...grpc.DialOption) ClientFactory {
	creds := insecure.NewCredentials()
	if useTLS {
		creds = credentials.NewTLS(tlsConfig)
	}
	return &clientFactory{
		creds:       creds,
		dialOptions: opts,
	}
}

func (f *clientFactory) Connect(ctx context.Context, address string) (DestinationClient, error) {
	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(f.creds)}, f.dialOptions...)
	conn, err := grpc.DialContext(ctx, address, opts...)
	if err != nil {
		log.Log.Reason(err).Infof("failed to dial migration destination %s", address)
		return nil, err
	}
	return NewClientWithConn(conn), nil
}

type MigrationDestinationClient struct {
	v1client migrationv1.MigrationClient
	conn     *grpc.ClientConn
}

func NewClientWithConn(conn *grpc.ClientConn) *MigrationDestinationClient {
	return &MigrationDestinationClient{
		v1client: migrationv1.NewMigrationClient(conn),
		conn:     conn,
	}
}

func (c *MigrationDestinationClient) Close() error {
	return c.conn.Close()
}

func (c *MigrationDestinationClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	response, err := c.v1client.Ping(ctx, &migrationv1.PingRequest{})
	return handleError(err, "Ping", response.GetStatus())
}

// Create asks the destination to prepare the incoming VM. A busy
// destination yields ErrMigrationLimitExceeded, any other refusal a
// *DestinationError carrying the destination's status.
func (c *MigrationDestinationClient) Create(ctx context.Context, params map[string]interface{}, incomingLimit int) (*migrationv1.CreateResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()

	response, err := c.v1client.Create(ctx, &migrationv1.CreateRequest{
		Params:        params,
		IncomingLimit: incomingLimit,
	})
	if err != nil {
		return nil, handleError(err, "Create", nil)
	}
	if response.Status.Code == migrationv1.StatusCodeMigrateLimit {
		return response, ErrMigrationLimitExceeded
	}
	if err := handleError(nil, "Create", &response.Status); err != nil {
		return response, err
	}
	return response, nil
}

func (c *MigrationDestinationClient) Destroy(ctx context.Context, vmID string) error {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	response, err := c.v1client.Destroy(ctx, &migrationv1.DestroyRequest{VMID: vmID})
	return handleError(err, "Destroy", response.GetStatus())
}

func (c *MigrationDestinationClient) Finish(ctx context.Context, vmID string, success bool) error {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	response, err := c.v1client.Finish(ctx, &migrationv1.FinishRequest{VMID: vmID, Success: success})
	return handleError(err, "Finish", response.GetStatus())
}
