package main

import (
	"runtime/debug"

	"github.com/fylein/fyle-sdk-go/cmd"
)

// Set through -ldflags at release time
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	info, _ := debug.ReadBuildInfo()
	cmd.SetVersion(resolveVersion(version, info), buildTime)
	cmd.Execute()
}

// resolveVersion prefers the ldflags version and falls back to the module
// version recorded by `go install`, so those builds can self-update too.
func resolveVersion(ldflags string, info *debug.BuildInfo) string {
	if ldflags != "dev" && ldflags != "" {
		return ldflags
	}
	if info == nil || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}
