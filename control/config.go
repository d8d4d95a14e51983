// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with dynamic update propagation.

package control

import (
	"sync"
	"time"
)

// ConfigStore is a dynamic key/value map with atomic snapshot and listener
// support. The executor reads its tunables (wait timeout, dispatch width)
// through it so they can be adjusted at runtime.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	copy := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		copy[k] = v
	}
	return copy
}

// GetDuration reads a duration-valued key, falling back to def.
func (cs *ConfigStore) GetDuration(key string, def time.Duration) time.Duration {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if v, ok := cs.config[key]; ok {
		if d, ok := v.(time.Duration); ok {
			return d
		}
	}
	return def
}

// GetInt reads an int-valued key, falling back to def.
func (cs *ConfigStore) GetInt(key string, def int) int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if v, ok := cs.config[key]; ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return def
}

// SetConfig merges new values and dispatches reload if needed.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	cs.dispatchReload()
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// dispatchReload invokes all listeners.
func (cs *ConfigStore) dispatchReload() {
	for _, fn := range cs.listeners {
		go fn()
	}
}
