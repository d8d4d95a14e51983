// File: trigger/trigger.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral factory for trigger primitives. Linux builds get an
// eventfd-backed primitive suitable for epoll multiplexing; other platforms
// fall back to the chan-backed primitive.

package trigger

import "github.com/momentics/hioload-evx/api"

// New constructs the preferred trigger primitive for this platform.
func New() (api.TriggerPrimitive, error) {
	return newPlatformTrigger()
}
