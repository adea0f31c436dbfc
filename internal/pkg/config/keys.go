package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// setting binds a user-facing key to its YAML key and value parser.
type setting struct {
	fileKey string
	envVar  string
	apply   func(cfg *Config, value string) error
}

// settings is the fixed set of keys accepted by Set.
var settings = map[string]setting{
	"apikey": {
		fileKey: "api_key",
		envVar:  "AIM_API_KEY",
		apply: func(cfg *Config, value string) error {
			cfg.APIKey = value
			return nil
		},
	},
	"apiendpoint": {
		fileKey: "api_endpoint",
		envVar:  "AIM_API_ENDPOINT",
		apply: func(cfg *Config, value string) error {
			cfg.APIEndpoint = value
			return nil
		},
	},
	"model": {
		fileKey: "model",
		envVar:  "AIM_MODEL",
		apply: func(cfg *Config, value string) error {
			cfg.Model = value
			return nil
		},
	},
	"autocommit": {
		fileKey: "auto_commit",
		envVar:  "AIM_AUTO_COMMIT",
		apply: func(cfg *Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q", value)
			}
			cfg.AutoCommit = b
			return nil
		},
	},
	"maxsubjectlength": {
		fileKey: "max_subject_length",
		envVar:  "AIM_MAX_SUBJECT_LENGTH",
		apply: func(cfg *Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer %q", value)
			}
			if n <= 0 {
				return fmt.Errorf("must be a positive integer, got %d", n)
			}
			cfg.MaxSubjectLength = n
			return nil
		},
	},
	"diffnameonly": {
		fileKey: "diff_name_only",
		envVar:  "AIM_DIFF_NAME_ONLY",
		apply: func(cfg *Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q", value)
			}
			cfg.DiffNameOnly = b
			return nil
		},
	},
}

// Keys returns the recognized --set keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsValidKey reports whether key names a configurable setting.
func IsValidKey(key string) bool {
	_, ok := settings[normalizeKey(key)]
	return ok
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// ParseAssignment splits a "key=value" argument. Both sides are trimmed and
// only the first '=' separates them.
func ParseAssignment(arg string) (key, value string, err error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid format %q", arg)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
