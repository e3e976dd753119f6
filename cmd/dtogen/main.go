package main

import (
	"os"
	"runtime/debug"

	"github.com/calumari/dtogen/internal/cli"
)

// version is set with -ldflags "-X main.version=..." for release builds.
var version string

// buildVersion prefers the linker-provided version, then the module version,
// then a short vcs revision.
func buildVersion() string {
	if version != "" {
		return version
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, s := range bi.Settings {
		if s.Key != "vcs.revision" || s.Value == "" {
			continue
		}
		if len(s.Value) > 12 {
			return s.Value[:12]
		}
		return s.Value
	}
	return "devel"
}

func main() {
	os.Exit(cli.Execute(buildVersion()))
}
