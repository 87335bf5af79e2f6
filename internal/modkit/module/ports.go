package module

import "reflect"

// PortSet is a marker for module defined port sets.
// Modules declare their own concrete structs (see answer or ingest module
// Ports) and return them from Ports()
type PortSet = any

// PortsOf pulls an interface T out of a module's Ports() bundle.
// The bundle may implement T directly or carry it in an exported struct
// field; ok is false when neither holds
func PortsOf[T any](m Module) (t T, ok bool) {
	p := m.Ports()
	if p == nil {
		return t, false
	}
	// the bundle itself may be the port
	if v, ok2 := p.(T); ok2 {
		return v, true
	}
	rv := reflect.ValueOf(p)
	rt := rv.Type()
	// otherwise scan the bundle's exported fields
	if rt.Kind() == reflect.Struct {
		for i := 0; i < rt.NumField(); i++ {
			f := rv.Field(i)
			if !f.CanInterface() {
				continue
			}
			if v, ok2 := f.Interface().(T); ok2 {
				return v, true
			}
		}
	}
	return t, false
}

// MustPortsOf is PortsOf for bootstrap code where a missing port is fatal
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	panic("module: requested port not found on module " + m.Name())
}
