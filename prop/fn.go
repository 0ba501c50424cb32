package prop

import "reflect"

//go:generate go run ../cmd/codegen --count 5 --out fn_generated.go

// Arg returns the named input as a T. Unset inputs come back as the zero
// value of T.
func Arg[T any](args Args, name string) (T, error) {
	var zero T
	v, ok := args[name]
	if !ok {
		return zero, wiringErr("combine", "no input named %q", name)
	}
	if IsUnset(v) {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, &ArgTypeError{
			Name:     name,
			Expected: reflect.TypeOf((*T)(nil)).Elem().String(),
			Got:      v,
		}
	}
	return t, nil
}

// Const is a combining function that ignores its inputs.
func Const(v any) Func {
	return func(Args) (any, error) {
		return v, nil
	}
}

// Collect returns the named inputs themselves, as a fresh map.
func Collect(args Args) (any, error) {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out, nil
}
