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

//go:generate mockgen -source $GOFILE -package=$GOPACKAGE -destination=generated_mock_$GOFILE

/*
 ATTENTION: Rerun code generators when interface signatures are modified.
*/

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"

	migrationv1 "kubevirt.io/livemigration/pkg/handler-launcher-com/migration/v1"
	"kubevirt.io/livemigration/pkg/log"
	"kubevirt.io/livemigration/pkg/util/migrations"
)

// TargetCreator prepares this host for an incoming VM.
type TargetCreator interface {
	// CreateTarget returns the port the incoming migration stream connects to.
	CreateTarget(ctx context.Context, vmID string, params map[string]interface{}) (int, error)
	DestroyTarget(vmID string) error
}

type vmRef string

func (r vmRef) ID() string   { return string(r) }
func (r vmRef) Kind() string { return "VirtualMachine" }

// Server is the destination side of a migration. Every admitted VM holds
// one incoming permit until the migration is finished or the VM destroyed.
type Server struct {
	migrationv1.UnimplementedMigrationServer

	gate    *migrations.Gate
	creator TargetCreator

	lock     sync.Mutex
	admitted map[string]struct{}
}

func NewServer(gate *migrations.Gate, creator TargetCreator) *Server {
	if gate == nil {
		gate = migrations.IncomingMigrations
	}
	return &Server{
		gate:     gate,
		creator:  creator,
		admitted: map[string]struct{}{},
	}
}

func doneResponse() *migrationv1.Response {
	return &migrationv1.Response{Status: migrationv1.NewStatus(migrationv1.StatusCodeDone, "Done")}
}

func errorResponse(message string) *migrationv1.Response {
	return &migrationv1.Response{Status: migrationv1.NewStatus(migrationv1.StatusCodeDestinationErr, message)}
}

func (s *Server) Ping(_ context.Context, _ *migrationv1.PingRequest) (*migrationv1.Response, error) {
	return doneResponse(), nil
}

func (s *Server) Create(ctx context.Context, request *migrationv1.CreateRequest) (*migrationv1.CreateResponse, error) {
	vmID, _ := request.Params["vmId"].(string)
	if vmID == "" {
		return &migrationv1.CreateResponse{Status: errorResponse("missing vmId in machine parameters").Status}, nil
	}
	logger := log.Log.Object(vmRef(vmID))

	if request.IncomingLimit > 0 {
		s.gate.SetBound(request.IncomingLimit)
	}

	s.lock.Lock()
	if _, exists := s.admitted[vmID]; exists {
		s.lock.Unlock()
		return &migrationv1.CreateResponse{Status: errorResponse(fmt.Sprintf("VM %s is already being migrated here", vmID)).Status}, nil
	}
	if !s.gate.TryAcquire() {
		s.lock.Unlock()
		logger.Infof("Refusing incoming migration, %d of %d slots in use", s.gate.Held(), s.gate.Bound())
		return &migrationv1.CreateResponse{
			Status: migrationv1.NewStatus(migrationv1.StatusCodeMigrateLimit, migrationv1.MessageMigrateLimit),
		}, nil
	}
	s.admitted[vmID] = struct{}{}
	s.lock.Unlock()

	port, err := s.creator.CreateTarget(ctx, vmID, request.Params)
	if err != nil {
		logger.Reason(err).Error("Failed to prepare incoming VM")
		s.release(vmID)
		return &migrationv1.CreateResponse{Status: errorResponse(err.Error()).Status}, nil
	}

	logger.Infof("Admitted incoming migration, listening on port %d", port)
	return &migrationv1.CreateResponse{
		Status: migrationv1.NewStatus(migrationv1.StatusCodeDone, "Done"),
		Port:   port,
		Params: map[string]interface{}{"vmId": vmID},
	}, nil
}

func (s *Server) Destroy(_ context.Context, request *migrationv1.DestroyRequest) (*migrationv1.Response, error) {
	logger := log.Log.Object(vmRef(request.VMID))
	defer s.release(request.VMID)

	if err := s.creator.DestroyTarget(request.VMID); err != nil {
		logger.Reason(err).Error("Failed to destroy incoming VM")
		return errorResponse(err.Error()), nil
	}
	logger.Info("Destroyed incoming VM")
	return doneResponse(), nil
}

// Finish releases the permit of a migration. An unsuccessful migration
// also tears the incoming VM down.
func (s *Server) Finish(ctx context.Context, request *migrationv1.FinishRequest) (*migrationv1.Response, error) {
	if !request.Success {
		return s.Destroy(ctx, &migrationv1.DestroyRequest{VMID: request.VMID})
	}
	s.release(request.VMID)
	log.Log.Object(vmRef(request.VMID)).Info("Incoming migration finished")
	return doneResponse(), nil
}

// Admitted reports whether vmID currently holds an incoming permit.
func (s *Server) Admitted(vmID string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, ok := s.admitted[vmID]
	return ok
}

func (s *Server) release(vmID string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.admitted[vmID]; !ok {
		return
	}
	delete(s.admitted, vmID)
	s.gate.Release()
}

// RunServer serves the migration API on listener until stopChan is closed.
// The returned channel is closed once the server stopped.
func RunServer(listener net.Listener, server migrationv1.MigrationServer, stopChan chan struct{}, opts ...grpc.ServerOption) chan struct{} {
	grpcServer := grpc.NewServer(opts...)
	migrationv1.RegisterMigrationServer(grpcServer, server)

	done := make(chan struct{})

	go func() {
		<-stopChan
		log.Log.Info("stopping migration server")
		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
			log.Log.Info("migration server stopped")
		case <-time.After(5 * time.Second):
			log.Log.Error("timeout on stopping the migration server, forcing it down.")
			grpcServer.Stop()
		}
		close(done)
	}()

	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Log.Reason(err).Error("migration server failed")
		}
	}()

	return done
}
