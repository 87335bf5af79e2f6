package repokit

// Binder is a tiny factory that binds a domain repo to a specific Queryer.
// Services hold a Binder and bind to the pool directly for reads or to the
// tx bound Queryer inside WithTx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain function to the Binder interface
type BindFunc[T any] func(Queryer) T

// Bind calls the underlying function
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// RequireQueryer turns a nil Queryer into an immediate panic, binding
// against nil is always a wiring bug
func RequireQueryer(q Queryer) Queryer {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return q
}

// MustBind is Bind behind the nil check
func MustBind[T any](b Binder[T], q Queryer) T {
	return b.Bind(RequireQueryer(q))
}
