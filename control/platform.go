// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Runtime probes describing the host process.

package control

import (
	"runtime"
)

// RegisterPlatformProbes adds host and Go runtime probes to dp.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.os", func() any {
		return runtime.GOOS + "/" + runtime.GOARCH
	})
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.goroutines", func() any {
		return runtime.NumGoroutine()
	})
}
