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
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName = "kubevirt.migration.v1.Migration"

	pingMethod    = "/" + ServiceName + "/Ping"
	createMethod  = "/" + ServiceName + "/Create"
	destroyMethod = "/" + ServiceName + "/Destroy"
	finishMethod  = "/" + ServiceName + "/Finish"
)

// MigrationClient is the client API for the destination migration agent.
type MigrationClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*Response, error)
	Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error)
	Destroy(ctx context.Context, in *DestroyRequest, opts ...grpc.CallOption) (*Response, error)
	Finish(ctx context.Context, in *FinishRequest, opts ...grpc.CallOption) (*Response, error)
}

type migrationClient struct {
	cc grpc.ClientConnInterface
}

func NewMigrationClient(cc grpc.ClientConnInterface) MigrationClient {
	return &migrationClient{cc}
}

func (c *migrationClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *migrationClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*Response, error) {
	out := new(Response)
	if err := c.invoke(ctx, pingMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *migrationClient) Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error) {
	out := new(CreateResponse)
	if err := c.invoke(ctx, createMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *migrationClient) Destroy(ctx context.Context, in *DestroyRequest, opts ...grpc.CallOption) (*Response, error) {
	out := new(Response)
	if err := c.invoke(ctx, destroyMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *migrationClient) Finish(ctx context.Context, in *FinishRequest, opts ...grpc.CallOption) (*Response, error) {
	out := new(Response)
	if err := c.invoke(ctx, finishMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// MigrationServer is the server API for the destination migration agent.
type MigrationServer interface {
	Ping(context.Context, *PingRequest) (*Response, error)
	Create(context.Context, *CreateRequest) (*CreateResponse, error)
	Destroy(context.Context, *DestroyRequest) (*Response, error)
	Finish(context.Context, *FinishRequest) (*Response, error)
}

// UnimplementedMigrationServer can be embedded to have forward compatible implementations.
type UnimplementedMigrationServer struct{}

func (UnimplementedMigrationServer) Ping(context.Context, *PingRequest) (*Response, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedMigrationServer) Create(context.Context, *CreateRequest) (*CreateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Create not implemented")
}

func (UnimplementedMigrationServer) Destroy(context.Context, *DestroyRequest) (*Response, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Destroy not implemented")
}

func (UnimplementedMigrationServer) Finish(context.Context, *FinishRequest) (*Response, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Finish not implemented")
}

func RegisterMigrationServer(s grpc.ServiceRegistrar, srv MigrationServer) {
	s.RegisterService(&migrationServiceDesc, srv)
}

func pingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MigrationServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: pingMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MigrationServer).Ping(ctx, req.(*PingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func createHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MigrationServer).Create(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: createMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MigrationServer).Create(ctx, req.(*CreateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func destroyHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DestroyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MigrationServer).Destroy(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: destroyMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MigrationServer).Destroy(ctx, req.(*DestroyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func finishHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(FinishRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MigrationServer).Finish(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: finishMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MigrationServer).Finish(ctx, req.(*FinishRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var migrationServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MigrationServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: pingHandler},
		{MethodName: "Create", Handler: createHandler},
		{MethodName: "Destroy", Handler: destroyHandler},
		{MethodName: "Finish", Handler: finishHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pkg/handler-launcher-com/migration/v1/service.go",
}
