// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other dropcfg packages to avoid import cycles.

package version

import "runtime/debug"

// Version is the module version stamped by the go tool, "dev" for local
// builds.
var Version = "dev"

// Revision is the short VCS revision, empty when unknown.
var Revision string

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			Revision = s.Value[:7]
		}
	}
}

// String renders the version with the revision when known.
func String() string {
	if Revision == "" {
		return Version
	}
	return Version + " (" + Revision + ")"
}
