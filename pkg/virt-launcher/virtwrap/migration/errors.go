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

package migration

import (
	"fmt"

	"github.com/pkg/errors"

	migrationclient "kubevirt.io/livemigration/pkg/virt-handler/migration-client"
)

type AbortReason int

const (
	UserCancelled AbortReason = iota
	LegacyTimeout
	ScheduleAbort
	StallTimeout
)

func (r AbortReason) String() string {
	switch r {
	case UserCancelled:
		return "cancelled by user"
	case LegacyTimeout:
		return "migration time limit exceeded"
	case ScheduleAbort:
		return "aborted by convergence schedule"
	case StallTimeout:
		return "migration is stuck"
	}
	return fmt.Sprintf("unknown abort reason %d", int(r))
}

// ErrMigrationLimitExceeded signals a busy destination; the source waits
// and retries admission.
var ErrMigrationLimitExceeded = migrationclient.ErrMigrationLimitExceeded

// AbortedError is raised when the job was cancelled by the user or aborted
// by the monitor. It never masks as a transfer failure.
type AbortedError struct {
	Reason AbortReason
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("migration aborted: %s", e.Reason)
}

type DestinationSetupError struct {
	Message string
	Err     error
}

func (e *DestinationSetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DestinationSetupError) Unwrap() error {
	return e.Err
}

// TransferError wraps a failure of the underlying domain transfer.
type TransferError struct {
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("migration transfer failed: %v", e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

func IsAborted(err error) bool {
	var aborted *AbortedError
	return errors.As(err, &aborted)
}

// AbortReasonOf returns the reason of an AbortedError anywhere in err's chain.
func AbortReasonOf(err error) (AbortReason, bool) {
	var aborted *AbortedError
	if errors.As(err, &aborted) {
		return aborted.Reason, true
	}
	return 0, false
}

func IsDestinationSetupError(err error) bool {
	var setupErr *DestinationSetupError
	return errors.As(err, &setupErr)
}
