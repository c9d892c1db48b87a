// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"fmt"
	"os"

	"github.com/dropkit/dropcfg/internal/log"
)

// Dir names used beneath the pipeline root.
const (
	ProcessedData    = "processed_data"
	ProcessedResults = "processed_results"
)

// Ensure creates each directory, including parents, when it is missing.
// Existing directories and their contents are left untouched. An existing
// non-directory at one of the paths is an error.
func Ensure(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			return fmt.Errorf("failed to create directory: %w", os.ErrInvalid)
		}

		if info, err := os.Stat(dir); err == nil {
			if !info.IsDir() {
				return fmt.Errorf("failed to create directory %s: exists and is not a directory", dir)
			}
			log.Tracef("dir exists: path=%s", dir)
			continue
		}

		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		log.Debugf("created dir: path=%s", dir)
	}
	return nil
}
