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

package virtconfig

/*
 This module exposes the tunables of the migration engine and their default settings.
*/

import (
	"fmt"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/api/resource"
	"sigs.k8s.io/yaml"
)

const (
	MaxIncomingMigrationsDefault           int    = 2
	ParallelOutboundMigrationsDefault      int    = 2
	MigrationDowntimeDefault               int64  = 500
	MigrationDowntimeStepsDefault          int    = 10
	MigrationDowntimeDelayPerGiBDefault    int64  = 75
	MigrationDowntimeStepCeilingDefault    int64  = 60
	BandwidthPerMigrationDefault                  = "52Mi"
	MigrationMonitorIntervalDefault        int64  = 10
	MigrationMaxTimePerGiBDefault          int64  = 64
	MigrationProgressTimeoutDefault        int64  = 240
	MigrationRetryTimeoutDefault           int64  = 10
	GuestLifecycleEventReplyTimeoutDefault int64  = 10
	MigrationSSLDefault                    bool   = true
	MigrationDestinationPortDefault        int    = 54321
	MigrationQemuLogDirDefault             string = "/var/log/libvirt/qemu"
)

// MigrationConfig enumerates every tunable read by the migration engine.
// Durations are expressed in seconds unless the field name says otherwise.
type MigrationConfig struct {
	// MaxIncomingMigrations caps concurrent inbound admissions on this host.
	MaxIncomingMigrations int `json:"maxIncomingMigrations"`
	// ParallelOutboundMigrations caps concurrent outbound migrations on this host.
	ParallelOutboundMigrations int `json:"parallelOutboundMigrations"`
	// DowntimeMs is the target downtime used when the caller does not provide one.
	DowntimeMs int64 `json:"downtimeMs"`
	// DowntimeSteps is the number of legacy downtime escalation steps.
	DowntimeSteps int `json:"downtimeSteps"`
	// DowntimeDelayPerGiB is the legacy escalation period per GiB of guest memory.
	DowntimeDelayPerGiB int64 `json:"downtimeDelayPerGiB"`
	// DowntimeStepCeiling bounds a single legacy escalation wait.
	DowntimeStepCeiling int64 `json:"downtimeStepCeiling"`
	// MaxBandwidth is the per migration bandwidth cap, e.g. "64Mi" per second.
	MaxBandwidth resource.Quantity `json:"maxBandwidth"`
	// MonitorInterval is the period between progress checks; 0 disables monitoring.
	MonitorInterval int64 `json:"monitorInterval"`
	// MaxTimePerGiB bounds the legacy migration duration per GiB of guest memory; 0 disables it.
	MaxTimePerGiB int64 `json:"maxTimePerGiB"`
	// ProgressTimeout aborts a legacy migration which did not make progress for that long; 0 disables it.
	ProgressTimeout int64 `json:"progressTimeout"`
	// RetryTimeout is the pause between admission attempts refused by the destination.
	RetryTimeout int64 `json:"retryTimeout"`
	// GuestLifecycleEventReplyTimeout bounds the wait for guest agent lifecycle replies.
	GuestLifecycleEventReplyTimeout int64 `json:"guestLifecycleEventReplyTimeout"`
	// SSL selects qemu+tls and TLS protected destination connections.
	SSL bool `json:"ssl"`
	// DestinationPort is used when the destination address carries no port.
	DestinationPort int `json:"destinationPort"`
	// QemuLogDir holds the per domain qemu logs inspected on failed transfers.
	QemuLogDir string `json:"qemuLogDir"`
}

func DefaultMigrationConfig() *MigrationConfig {
	return &MigrationConfig{
		MaxIncomingMigrations:           MaxIncomingMigrationsDefault,
		ParallelOutboundMigrations:      ParallelOutboundMigrationsDefault,
		DowntimeMs:                      MigrationDowntimeDefault,
		DowntimeSteps:                   MigrationDowntimeStepsDefault,
		DowntimeDelayPerGiB:             MigrationDowntimeDelayPerGiBDefault,
		DowntimeStepCeiling:             MigrationDowntimeStepCeilingDefault,
		MaxBandwidth:                    resource.MustParse(BandwidthPerMigrationDefault),
		MonitorInterval:                 MigrationMonitorIntervalDefault,
		MaxTimePerGiB:                   MigrationMaxTimePerGiBDefault,
		ProgressTimeout:                 MigrationProgressTimeoutDefault,
		RetryTimeout:                    MigrationRetryTimeoutDefault,
		GuestLifecycleEventReplyTimeout: GuestLifecycleEventReplyTimeoutDefault,
		SSL:                             MigrationSSLDefault,
		DestinationPort:                 MigrationDestinationPortDefault,
		QemuLogDir:                      MigrationQemuLogDirDefault,
	}
}

// LoadMigrationConfig reads a YAML or JSON document. Keys which are not
// present keep their default values.
func LoadMigrationConfig(path string) (*MigrationConfig, error) {
	config := DefaultMigrationConfig()
	if path == "" {
		return config, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration config %s: %v", path, err)
	}
	if err := ParseMigrationConfig(config, raw); err != nil {
		return nil, err
	}
	return config, nil
}

// ParseMigrationConfig overlays the given document on top of config.
func ParseMigrationConfig(config *MigrationConfig, raw []byte) error {
	if strings.TrimSpace(string(raw)) == "" {
		return nil
	}
	if err := yaml.Unmarshal(raw, config); err != nil {
		return fmt.Errorf("failed to parse migration config: %v", err)
	}
	return config.Validate()
}

func (c *MigrationConfig) Validate() error {
	switch {
	case c.ParallelOutboundMigrations < 1:
		return fmt.Errorf("parallelOutboundMigrations must be at least 1, got %d", c.ParallelOutboundMigrations)
	case c.MaxIncomingMigrations < 0:
		return fmt.Errorf("maxIncomingMigrations must not be negative, got %d", c.MaxIncomingMigrations)
	case c.DowntimeSteps < 1:
		return fmt.Errorf("downtimeSteps must be at least 1, got %d", c.DowntimeSteps)
	case c.DowntimeMs < int64(c.DowntimeSteps):
		return fmt.Errorf("downtimeMs must be at least downtimeSteps (%d), got %d", c.DowntimeSteps, c.DowntimeMs)
	case c.RetryTimeout < 1:
		return fmt.Errorf("retryTimeout must be at least 1, got %d", c.RetryTimeout)
	case c.MonitorInterval < 0:
		return fmt.Errorf("monitorInterval must not be negative, got %d", c.MonitorInterval)
	case c.MaxBandwidth.Sign() < 0:
		return fmt.Errorf("maxBandwidth must not be negative, got %s", c.MaxBandwidth.String())
	}
	return nil
}

// AddFlags binds the tunables to command line flags. Flags override
// whatever was loaded from a config file.
func (c *MigrationConfig) AddFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.MaxIncomingMigrations, "max-incoming-migrations", c.MaxIncomingMigrations, "Maximum number of concurrent incoming migrations")
	fs.IntVar(&c.ParallelOutboundMigrations, "parallel-outbound-migrations", c.ParallelOutboundMigrations, "Maximum number of concurrent outgoing migrations")
	fs.Int64Var(&c.DowntimeMs, "migration-downtime", c.DowntimeMs, "Default maximum downtime in milliseconds")
	fs.IntVar(&c.DowntimeSteps, "migration-downtime-steps", c.DowntimeSteps, "Number of downtime escalation steps")
	fs.Int64Var(&c.DowntimeDelayPerGiB, "migration-downtime-delay", c.DowntimeDelayPerGiB, "Downtime escalation period in seconds per GiB of guest memory")
	fs.Int64Var(&c.MonitorInterval, "migration-monitor-interval", c.MonitorInterval, "Seconds between migration progress checks, 0 disables monitoring")
	fs.Int64Var(&c.MaxTimePerGiB, "migration-max-time-per-gib-mem", c.MaxTimePerGiB, "Maximum migration time in seconds per GiB of guest memory, 0 disables the limit")
	fs.Int64Var(&c.ProgressTimeout, "migration-progress-timeout", c.ProgressTimeout, "Seconds without progress after which a migration is aborted")
	fs.Int64Var(&c.RetryTimeout, "migration-retry-timeout", c.RetryTimeout, "Seconds to wait before retrying a migration refused by the destination")
	fs.BoolVar(&c.SSL, "ssl", c.SSL, "Use TLS for destination connections")
	fs.StringVar(&c.QemuLogDir, "qemu-log-dir", c.QemuLogDir, "Directory holding per domain qemu logs")
}

// LoadMigrationConfigWithFlags loads the config file at path and then applies
// every flag which was explicitly set on flags, so the command line wins over
// the file.
func LoadMigrationConfigWithFlags(path string, flags *flag.FlagSet) (*MigrationConfig, error) {
	config, err := LoadMigrationConfig(path)
	if err != nil {
		return nil, err
	}
	overrides := flag.NewFlagSet("overrides", flag.ContinueOnError)
	config.AddFlags(overrides)

	var setErr error
	flags.Visit(func(f *flag.Flag) {
		if setErr != nil || overrides.Lookup(f.Name) == nil {
			return
		}
		if err := overrides.Set(f.Name, f.Value.String()); err != nil {
			setErr = fmt.Errorf("invalid value for --%s: %v", f.Name, err)
		}
	})
	if setErr != nil {
		return nil, setErr
	}
	return config, config.Validate()
}

// MaxBandwidthMiB returns the bandwidth cap in MiB/s as expected by libvirt.
func (c *MigrationConfig) MaxBandwidthMiB() uint64 {
	value := c.MaxBandwidth.Value()
	if value <= 0 {
		return 0
	}
	mib := value >> 20
	if mib == 0 {
		mib = 1
	}
	return uint64(mib)
}

func (c *MigrationConfig) MonitorIntervalDuration() time.Duration {
	return time.Duration(c.MonitorInterval) * time.Second
}

func (c *MigrationConfig) RetryTimeoutDuration() time.Duration {
	return time.Duration(c.RetryTimeout) * time.Second
}

func (c *MigrationConfig) ProgressTimeoutDuration() time.Duration {
	return time.Duration(c.ProgressTimeout) * time.Second
}

func (c *MigrationConfig) GuestLifecycleEventReplyTimeoutDuration() time.Duration {
	return time.Duration(c.GuestLifecycleEventReplyTimeout) * time.Second
}

func (c *MigrationConfig) DowntimeStepCeilingDuration() time.Duration {
	return time.Duration(c.DowntimeStepCeiling) * time.Second
}
