// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// EnvCfgFile names the environment variable overriding the preferences file
// location.
const EnvCfgFile = "DROPCFG_CFG_FILE"

// FileName is the preferences file looked up in the user config directory.
const FileName = "dropcfg.yaml"

// Type is the in-memory representation of the loaded preferences.
//
// Fields:
//   - Source: absolute path of the YAML file loaded.
//   - Namespace: optional key prefix tried before the bare key, usually the
//     running command's name (e.g. "samples.attrs" before "attrs").
//   - Data: raw key/value tree unmarshaled from YAML.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global, lazily-initialized preferences.
var Config Type

// init attempts to load preferences at process start. Errors are ignored so
// dropcfg still runs without a preferences file.
func init() {
	_, _ = Load()
}

// GetInt returns the integer value for the given dotted key path. A single
// defaultValue may be provided and is returned when the key is missing.
func GetInt(key string, defaultValue ...int) (int, error) {
	return lookup(key, defaultValue, func(val any) (int, error) {
		switch v := val.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			return int(v), nil
		}
		return 0, errors.New("value is not an int")
	})
}

// GetBool returns the boolean value for the given dotted key path.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	return lookup(key, defaultValue, func(val any) (bool, error) {
		if b, ok := val.(bool); ok {
			return b, nil
		}
		return false, errors.New("value is not a bool")
	})
}

// GetString returns the string value for the given dotted key path. If the key
// is not found and a single defaultValue is provided, the default is returned.
func GetString(key string, defaultValue ...string) (string, error) {
	return lookup(key, defaultValue, func(val any) (string, error) {
		if s, ok := val.(string); ok {
			return s, nil
		}
		return "", errors.New("value is not a string")
	})
}

// GetStringSlice returns the string slice value for the given dotted key
// path. A comma separated string is split into its elements.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	return lookup(key, defaultValue, func(val any) ([]string, error) {
		switch v := val.(type) {
		case string:
			var out []string
			for _, s := range strings.Split(v, ",") {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
			return out, nil
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, errors.New("slice element is not a string")
				}
				out = append(out, s)
			}
			return out, nil
		}
		return nil, errors.New("value is not a slice")
	})
}

// lookup loads the preferences on first use, finds key and converts its
// value. A missing key yields the single default when one is given.
func lookup[T any](key string, defaults []T, convert func(any) (T, error)) (T, error) {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaults) == 1 {
			return defaults[0], nil
		}
		var zero T
		return zero, err
	}
	return convert(val)
}

// Load reads the YAML preferences file and populates the global Config.
func Load() (Type, error) {
	path, err := getConfigFile()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data,
	}

	return Config, nil
}

// get traverses the preferences tree using a dotted key path. If Namespace is
// set, Namespace + "." + kspec is tried before kspec.
func (cfg *Type) get(kspec string) (any, error) {
	candidates := []string{kspec}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidates {
		if v, ok := walk(cfg.Data, strings.Split(key, ".")); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no valid path found among: %v", candidates)
}

// walk descends through nested mappings following path.
func walk(node any, path []string) (any, bool) {
	for _, k := range path {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		if node, ok = m[k]; !ok {
			return nil, false
		}
	}
	return node, true
}

// getConfigFile returns the absolute path to the preferences file. When
// DROPCFG_CFG_FILE is set it is the full path; otherwise FileName is looked
// up in os.UserConfigDir. The file must exist and not be a directory.
func getConfigFile() (string, error) {
	if cfgPath := os.Getenv(EnvCfgFile); cfgPath != "" {
		if fileInfo, err := os.Stat(cfgPath); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using preferences from %s: %s", EnvCfgFile, cfgPath)
				return cfgPath, nil
			}
			return "", fmt.Errorf("%s points to a directory: %s", EnvCfgFile, cfgPath)
		}
		return "", fmt.Errorf("preferences file not found at %s path: %s", EnvCfgFile, cfgPath)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, FileName)
	if fileInfo, err := os.Stat(file); err == nil && !fileInfo.IsDir() {
		log.Debugf("using preferences file: %s", file)
		return file, nil
	}

	return "", fmt.Errorf("no preferences file found in standard locations")
}
