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

import "fmt"

// Status codes shared by the migration source and the destination agent.
const (
	StatusCodeDone           = 0
	StatusCodeMigrateErr     = 12
	StatusCodeDestinationErr = 13
	StatusCodeMigrateLimit   = 14
	StatusCodeLostConnection = 15
	StatusCodeMigCancelErr   = 82
)

const (
	MessageInProgress    = "Migration in progress"
	MessageMigrationDone = "Migration done"
	MessageSaveStateDone = "SaveState done"
	MessageCanceled      = "Migration canceled"
	MessageMigrateLimit  = "Incoming migration limit exceeded"
)

type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s Status) IsError() bool {
	return s.Code != StatusCodeDone
}

func (s Status) String() string {
	return fmt.Sprintf("%d: %s", s.Code, s.Message)
}

func NewStatus(code int, message string) Status {
	return Status{Code: code, Message: message}
}

func InProgress() Status {
	return Status{Code: StatusCodeDone, Message: MessageInProgress}
}

type PingRequest struct{}

type Response struct {
	Status Status `json:"status"`
}

func (r *Response) GetStatus() *Status {
	if r == nil {
		return nil
	}
	return &r.Status
}

// CreateRequest asks the destination agent to prepare an incoming VM.
// Params carries the serialized machine parameters of the source VM.
// A positive IncomingLimit overrides the destination's incoming admission bound.
type CreateRequest struct {
	Params        map[string]interface{} `json:"params"`
	IncomingLimit int                    `json:"incomingLimit,omitempty"`
}

type CreateResponse struct {
	Status Status                 `json:"status"`
	Port   int                    `json:"port,omitempty"`
	Params map[string]interface{} `json:"params,omitempty"`
}

type DestroyRequest struct {
	VMID string `json:"vmId"`
}

type FinishRequest struct {
	VMID    string `json:"vmId"`
	Success bool   `json:"success"`
}
