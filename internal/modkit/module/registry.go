package module

import "sync"

// The binaries Register every module they build here, so later modules
// and diagnostics can look ports up by name instead of holding instances
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores a port set under a module name. Last write wins
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs looks a port set up by module name and asserts its type
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset empties the registry, tests only
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
