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

package virtwrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kubevirt.io/livemigration/pkg/log"
)

// LocalStorage resolves hand-off volumes to files below a base directory.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

func (s *LocalStorage) PrepareVolumePath(volume string) (string, error) {
	if volume == "" || filepath.IsAbs(volume) || strings.Contains(volume, "..") {
		return "", fmt.Errorf("invalid volume name %q", volume)
	}
	if err := os.MkdirAll(s.baseDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create volume directory %s: %v", s.baseDir, err)
	}
	path := filepath.Join(s.baseDir, volume)
	log.Log.V(3).Infof("Prepared volume %s at %s", volume, path)
	return path, nil
}

func (s *LocalStorage) TeardownVolumePath(volume string) error {
	log.Log.V(3).Infof("Released volume %s", volume)
	return nil
}
