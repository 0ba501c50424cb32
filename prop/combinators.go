package prop

// Not, And and Or build Computed cells with UseNone, so unset operands count
// as false instead of making the result unset. Each one is resynced before it
// is returned.

func Not(p Observable) *Computed {
	return NewComputed(UseNone()).
		From(p, Name("p"), Sync(false)).
		To(func(args Args) (any, error) {
			return !Truthy(args["p"]), nil
		})
}

func And(a, b Observable) *Computed {
	return NewComputed(UseNone()).
		From(a, Name("a"), Sync(false)).
		From(b, Name("b"), Sync(false)).
		To(func(args Args) (any, error) {
			return Truthy(args["a"]) && Truthy(args["b"]), nil
		})
}

func Or(a, b Observable) *Computed {
	return NewComputed(UseNone()).
		From(a, Name("a"), Sync(false)).
		From(b, Name("b"), Sync(false)).
		To(func(args Args) (any, error) {
			return Truthy(args["a"]) || Truthy(args["b"]), nil
		})
}
