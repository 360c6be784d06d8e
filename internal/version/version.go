// Package version holds build metadata, set with -ldflags "-X".
package version

import (
	"fmt"
	"runtime"
)

var (
	AppName        = "Voice Follow"
	AppDescription = "Keeps the bot in the same voice channel as the user you choose to follow."
	BuildDate      = ""
	GoVersion      = runtime.Version()
)

// String describes the build, e.g. "go1.24.1, built 2025-01-02".
func String() string {
	if BuildDate == "" {
		return fmt.Sprintf("%s, dev build", GoVersion)
	}
	return fmt.Sprintf("%s, built %s", GoVersion, BuildDate)
}
