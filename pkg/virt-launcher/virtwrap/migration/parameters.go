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
	"net"
	"strconv"
	"strings"

	virtconfig "kubevirt.io/livemigration/pkg/virt-config"
)

type Mode string

const (
	// ModeRemote live migrates the VM to another host.
	ModeRemote Mode = "remote"
	// ModeFile saves the VM state to a hand-off volume (hibernation).
	ModeFile Mode = "file"
)

type ActionName string

const (
	ActionSetDowntime ActionName = "setDowntime"
	ActionAbort       ActionName = "abort"
)

type Action struct {
	Name   ActionName `json:"name"`
	Params []string   `json:"params,omitempty"`
}

func SetDowntimeAction(downtimeMs int64) Action {
	return Action{Name: ActionSetDowntime, Params: []string{strconv.FormatInt(downtimeMs, 10)}}
}

func AbortAction() Action {
	return Action{Name: ActionAbort}
}

func (a Action) String() string {
	if len(a.Params) == 0 {
		return string(a.Name)
	}
	return fmt.Sprintf("%s(%s)", a.Name, strings.Join(a.Params, ","))
}

func (a Action) downtime() (uint64, error) {
	if len(a.Params) != 1 {
		return 0, fmt.Errorf("action %s expects exactly one parameter", a.Name)
	}
	ms, err := strconv.ParseUint(a.Params[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("action %s: invalid downtime %q: %v", a.Name, a.Params[0], err)
	}
	return ms, nil
}

func (a Action) Validate() error {
	switch a.Name {
	case ActionSetDowntime:
		_, err := a.downtime()
		return err
	case ActionAbort:
		return nil
	}
	return fmt.Errorf("unknown convergence action %q", a.Name)
}

// StallingAction fires once the iteration counter strictly exceeds Limit.
type StallingAction struct {
	Limit  int    `json:"limit"`
	Action Action `json:"action"`
}

// ConvergenceSchedule drives a migration towards completion. Init actions
// run once before monitoring starts; Stalling actions are consumed front
// to back, each at most once, in declared order.
type ConvergenceSchedule struct {
	Init     []Action         `json:"init,omitempty"`
	Stalling []StallingAction `json:"stalling,omitempty"`
}

func (s *ConvergenceSchedule) Validate() error {
	for i, action := range s.Init {
		if err := action.Validate(); err != nil {
			return fmt.Errorf("init action %d: %v", i, err)
		}
	}
	for i, stalling := range s.Stalling {
		if stalling.Limit < 0 {
			return fmt.Errorf("stalling action %d: negative limit %d", i, stalling.Limit)
		}
		if err := stalling.Action.Validate(); err != nil {
			return fmt.Errorf("stalling action %d: %v", i, err)
		}
	}
	return nil
}

func (s *ConvergenceSchedule) DeepCopy() *ConvergenceSchedule {
	if s == nil {
		return nil
	}
	out := &ConvergenceSchedule{}
	for _, action := range s.Init {
		out.Init = append(out.Init, action.deepCopy())
	}
	for _, stalling := range s.Stalling {
		out.Stalling = append(out.Stalling, StallingAction{Limit: stalling.Limit, Action: stalling.Action.deepCopy()})
	}
	return out
}

func (a Action) deepCopy() Action {
	out := Action{Name: a.Name}
	if a.Params != nil {
		out.Params = append([]string{}, a.Params...)
	}
	return out
}

// MigrationParameters describe one migration request. Zero values fall back
// to the process configuration where noted.
type MigrationParameters struct {
	// Destination is the host[:port] of the destination migration agent.
	Destination string `json:"destination,omitempty"`
	Mode        Mode   `json:"mode"`
	// HandoffPath is the volume receiving the memory image in file mode.
	HandoffPath string `json:"handoffPath,omitempty"`
	// HandoffParamsPath is the volume receiving the machine parameters in file mode.
	HandoffParamsPath string `json:"handoffParamsPath,omitempty"`
	Tunneled          bool   `json:"tunneled,omitempty"`
	AbortOnError      bool   `json:"abortOnError,omitempty"`
	ConsoleAddress    string `json:"consoleAddress,omitempty"`
	// DestinationQemu overrides the host used in the migration data URI.
	DestinationQemu string `json:"destinationQemu,omitempty"`
	// DowntimeMs is the maximum tolerated downtime, 0 means the configured default.
	DowntimeMs int64 `json:"downtimeMs,omitempty"`
	// MaxBandwidth in MiB/s, 0 means the configured default.
	MaxBandwidth        uint64               `json:"maxBandwidth,omitempty"`
	AutoConverge        bool                 `json:"autoConverge,omitempty"`
	Compressed          bool                 `json:"compressed,omitempty"`
	ConvergenceSchedule *ConvergenceSchedule `json:"convergenceSchedule,omitempty"`
	IncomingLimit       int                  `json:"incomingLimit,omitempty"`
	OutgoingLimit       int                  `json:"outgoingLimit,omitempty"`
	EnableGuestEvents   bool                 `json:"enableGuestEvents,omitempty"`
}

func (p *MigrationParameters) Hibernating() bool {
	return p.Mode == ModeFile
}

func (p *MigrationParameters) Validate() error {
	switch p.Mode {
	case ModeRemote:
		if p.Destination == "" {
			return fmt.Errorf("remote migration requires a destination")
		}
	case ModeFile:
		if p.HandoffPath == "" || p.HandoffParamsPath == "" {
			return fmt.Errorf("file migration requires both hand-off paths")
		}
	default:
		return fmt.Errorf("unknown migration mode %q", p.Mode)
	}
	if p.DowntimeMs < 0 {
		return fmt.Errorf("downtime must not be negative")
	}
	if p.IncomingLimit < 0 || p.OutgoingLimit < 0 {
		return fmt.Errorf("migration limits must not be negative")
	}
	if p.ConvergenceSchedule != nil {
		return p.ConvergenceSchedule.Validate()
	}
	return nil
}

// withDefaults returns a copy with unset tunables taken from config.
func (p MigrationParameters) withDefaults(config *virtconfig.MigrationConfig) MigrationParameters {
	if p.DowntimeMs == 0 {
		p.DowntimeMs = config.DowntimeMs
	}
	if p.MaxBandwidth == 0 {
		p.MaxBandwidth = config.MaxBandwidthMiB()
	}
	p.ConvergenceSchedule = p.ConvergenceSchedule.DeepCopy()
	return p
}

// destinationHost returns the host part of the destination agent address.
func (p *MigrationParameters) destinationHost() string {
	host, _, err := net.SplitHostPort(p.Destination)
	if err != nil {
		return strings.Trim(p.Destination, "[]")
	}
	return host
}

// destinationAddress returns the agent address, adding defaultPort when none is given.
func (p *MigrationParameters) destinationAddress(defaultPort int) string {
	if _, _, err := net.SplitHostPort(p.Destination); err == nil {
		return p.Destination
	}
	return net.JoinHostPort(p.destinationHost(), strconv.Itoa(defaultPort))
}

// normalizeLiteralAddr wraps IPv6 literals in brackets for use in URIs.
func normalizeLiteralAddr(host string) string {
	if ip := net.ParseIP(host); ip != nil && ip.To4() == nil {
		return "[" + host + "]"
	}
	return host
}
