package prop

// ValueAccessor is the accessor every cell type exposes.
const ValueAccessor = "value"

type unset struct{}

func (unset) String() string { return "<unset>" }

// Unset marks a value that has not been defined yet.
var Unset any = unset{}

// IsUnset reports whether v is Unset or an untyped nil.
func IsUnset(v any) bool {
	return v == nil || v == Unset
}

// Change is delivered to listeners after a value is replaced.
type Change struct {
	Name  string
	Old   any
	New   any
	Owner Observable
}

type Listener func(c Change) error

// Observable is anything a bridge or a derived cell can be wired to.
type Observable interface {
	Get(accessor string) (any, error)
	Set(accessor string, value any) error
	Observe(accessor string, fn Listener) error
}

type readOnly interface {
	ReadOnly() bool
}

func normalizeAccessor(accessor string) string {
	if accessor == "" {
		return ValueAccessor
	}
	return accessor
}

type listeners []Listener

func (ls listeners) notify(c Change) error {
	for _, l := range ls {
		if err := l(c); err != nil {
			return err
		}
	}
	return nil
}
