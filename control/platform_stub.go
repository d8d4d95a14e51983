//go:build !linux
// +build !linux

// control/platform_stub.go
// Author: momentics <momentics@gmail.com>
//
// No platform-specific probes outside Linux.

package control

// RegisterPlatformProbes is a no-op on this platform.
func RegisterPlatformProbes(dp *DebugProbes) {}
