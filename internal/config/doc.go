// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads dropcfg's user preferences: output defaults, default
// column sets and @set argument expansions. It is not the pipeline settings
// file, which is handled by package settings. The preferences are a YAML
// document located at $DROPCFG_CFG_FILE or, failing that, dropcfg.yaml in
// the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/dropcfg.yaml or $HOME/.config/dropcfg.yaml
//   - macOS: $HOME/Library/Application Support/dropcfg.yaml
//   - Windows: %APPDATA%/dropcfg.yaml
package config
