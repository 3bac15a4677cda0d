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
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const qemuMigrationStartMarker = "initiating migration"

// dumpQemuLogsAfterMigration returns the part of a qemu log written since
// the last migration started.
func dumpQemuLogsAfterMigration(reader io.Reader) (string, error) {
	var builder strings.Builder
	found := false

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, qemuMigrationStartMarker) {
			// a later attempt supersedes an earlier one
			builder.Reset()
			found = true
		}
		if found {
			builder.WriteString(line)
			builder.WriteString("\n")
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return builder.String(), nil
}

func qemuLogPath(logDir string, domainName string) string {
	return filepath.Join(logDir, domainName+".log")
}

func (s *SourceThread) logQemuOutput() {
	name, err := s.dom.GetName()
	if err != nil {
		s.logger.Reason(err).V(3).Info("Failed to look up domain name for qemu log dump")
		return
	}
	path := qemuLogPath(s.config.QemuLogDir, name)
	f, err := os.Open(path)
	if err != nil {
		s.logger.Reason(err).V(3).Infof("Failed to open qemu log %s", path)
		return
	}
	defer f.Close()

	logs, err := dumpQemuLogsAfterMigration(f)
	if err != nil {
		s.logger.Reason(err).Warningf("Failed to read qemu log %s", path)
		return
	}
	if logs != "" {
		s.logger.Errorf("Qemu log since migration start:\n%s", logs)
	}
}
