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

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	migrationv1 "kubevirt.io/livemigration/pkg/handler-launcher-com/migration/v1"
)

// DestinationError is a well-formed refusal of the destination agent.
type DestinationError struct {
	Command string
	Status  migrationv1.Status
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("destination error. command %s failed: %q", e.Command, e.Status.Message)
}

func IsDestinationError(err error) bool {
	var destErr *DestinationError
	return errors.As(err, &destErr)
}

func IsUnimplemented(err error) bool {
	if grpcStatus, ok := status.FromError(err); ok {
		if grpcStatus.Code() == codes.Unimplemented {
			return true
		}
	}
	return false
}

func IsDisconnected(err error) bool {
	if err == nil {
		return false
	}

	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return true
	}

	if opErr, ok := err.(*net.OpError); ok {
		if syscallErr, ok := opErr.Err.(*os.SyscallError); ok {
			// catches "connection reset by peer"
			if syscallErr.Err == syscall.ECONNRESET {
				return true
			}
		}
	}

	if grpcStatus, ok := status.FromError(err); ok {

		// see https://github.com/grpc/grpc-go/blob/master/codes/codes.go
		switch grpcStatus.Code() {
		case codes.Canceled:
			// e.g. v1client connection closing
			return true
		case codes.Unavailable:
			// e.g. the destination agent is not listening
			return true
		}
	}

	return false
}

func handleError(err error, cmdName string, response *migrationv1.Status) error {
	if IsDisconnected(err) {
		return err
	} else if IsUnimplemented(err) {
		return err
	} else if err != nil {
		return fmt.Errorf("unknown error encountered sending command %s: %v", cmdName, err)
	} else if response != nil && response.IsError() {
		return &DestinationError{Command: cmdName, Status: *response}
	}
	return nil
}
