// Package prop is a small synchronous dataflow engine.
//
// A Cell holds a value, a Synced bridge mirrors one value across several
// endpoints, and a Computed derives its value from named inputs through a
// combining function. Every change is propagated inline on the stack of the
// caller of Set, in listener registration order.
//
//	a := prop.NewCell(1)
//	b := prop.NewCell(2)
//	sum := prop.NewComputed().
//		From(a, prop.Name("x")).
//		From(b, prop.Name("y")).
//		To(prop.Fn2("x", "y", func(x, y int) int { return x + y }))
//
// Errors never roll back: cells updated earlier in a failed cascade keep
// their new values.
package prop
