//go:build !linux
// +build !linux

// File: trigger/trigger_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback for platforms without eventfd: the chan-backed primitive.

package trigger

import "github.com/momentics/hioload-evx/api"

func newPlatformTrigger() (api.TriggerPrimitive, error) {
	return NewChanTrigger(), nil
}
