// Package appinfo provides application information utilities
package appinfo

import (
	"os"
	"runtime/debug"
	"strings"
)

// GetEnvironment returns the normalised GO_ENV, defaulting to "development"
func GetEnvironment() string {
	env := os.Getenv("GO_ENV")
	switch strings.ToLower(env) {
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	case "", "dev", "development":
		return "development"
	default:
		return env
	}
}

// GetVersion returns the application version.
// Order: APP_VERSION, the module version, the VCS revision from build info.
func GetVersion() string {
	if version := os.Getenv("APP_VERSION"); version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}

	return "0.0.0-unknown"
}
