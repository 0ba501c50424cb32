package prop

import (
	"github.com/davecgh/go-spew/spew"
	mapset "github.com/deckarep/golang-set/v2"
)

// Args holds the named inputs of a Computed, keyed by input name.
type Args map[string]any

// Func combines the named inputs of a Computed into its value.
type Func func(args Args) (any, error)

var argsDumper = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// describeArgs is the combining function of a Computed with no output set.
func describeArgs(args Args) (any, error) {
	if len(args) == 0 {
		return Unset, nil
	}
	return argsDumper.Sprintf("%v", map[string]any(args)), nil
}

// Computed is a read-only cell whose value is a function of its named inputs.
//
// Every input keeps a cached copy of the last value seen from its source.
// A change notification whose old value does not match that copy fails with
// a ConsistencyError instead of being applied. Unless UseNone is set, an
// unset named input makes the value Unset without calling the function.
//
// Listeners are notified after every recomputation, including those that
// produce the same value as before.
//
// A source that is set again from inside one of its own listeners (a clamp,
// say) notifies later listeners with an old value that no longer matches
// their cache, so a Computed wired after such a listener reports a spurious
// ConsistencyError. Wire re-entrant listeners after the Computed, or derive
// the clamped value instead of writing it back.
type Computed struct {
	useNone bool
	fn      Func

	names  []string
	inputs map[string]endpoint

	edges mapset.Set[endpoint]
	order []endpoint
	cache map[endpoint]any

	value     any
	listeners listeners
}

// NewComputed accepts the UseNone option only and panics on anything else.
func NewComputed(opts ...Option) *Computed {
	cfg, err := buildConfig("computed", optUseNone, false, opts)
	must(err)
	return &Computed{
		useNone: cfg.useNone,
		fn:      describeArgs,
		inputs:  map[string]endpoint{},
		edges:   mapset.NewThreadUnsafeSet[endpoint](),
		cache:   map[endpoint]any{},
		value:   Unset,
	}
}

// AddInput wires src into the computation. With a Name the value of src is
// passed to the combining function under that name; without one, changes to
// src only trigger recomputation. Sync defaults to true and recomputes right
// away.
func (c *Computed) AddInput(src Observable, opts ...Option) error {
	const op = "computed input"
	cfg, err := buildConfig(op, optAccessor|optName|optSync, true, opts)
	if err != nil {
		return err
	}
	e, err := newEndpoint(op, src, cfg.accessor)
	if err != nil {
		return err
	}
	named := cfg.given&optName != 0
	if named {
		if _, dup := c.inputs[cfg.name]; dup {
			return wiringErr(op, "input %q is already wired", cfg.name)
		}
	}

	// one listener per edge, otherwise the second would find the cache
	// already updated by the first
	if !c.edges.Contains(e) {
		current, err := src.Get(e.accessor)
		if err != nil {
			return err
		}
		if err := src.Observe(e.accessor, func(ch Change) error {
			return c.onChange(e, ch)
		}); err != nil {
			return err
		}
		c.edges.Add(e)
		c.order = append(c.order, e)
		c.cache[e] = current
	}

	if named {
		c.inputs[cfg.name] = e
		c.names = append(c.names, cfg.name)
	}
	if cfg.sync {
		return c.recompute()
	}
	return nil
}

// SetOutput replaces the combining function. Sync defaults to true and
// resyncs right away.
func (c *Computed) SetOutput(fn Func, opts ...Option) error {
	const op = "computed output"
	cfg, err := buildConfig(op, optSync, true, opts)
	if err != nil {
		return err
	}
	if fn == nil {
		return wiringErr(op, "nil combining function")
	}
	c.fn = fn
	if cfg.sync {
		return c.Resync()
	}
	return nil
}

// Resync pulls the current value of every input, then recomputes.
func (c *Computed) Resync() error {
	for _, e := range c.order {
		v, err := e.target.Get(e.accessor)
		if err != nil {
			return err
		}
		c.cache[e] = v
	}
	return c.recompute()
}

func (c *Computed) onChange(e endpoint, ch Change) error {
	cached := c.cache[e]
	if !sameValue(cached, ch.Old) {
		return &ConsistencyError{
			Accessor: e.accessor,
			Cached:   cached,
			Observed: ch.Old,
		}
	}
	c.cache[e] = ch.New
	return c.recompute()
}

func (c *Computed) recompute() error {
	args := make(Args, len(c.names))
	for _, name := range c.names {
		v := c.cache[c.inputs[name]]
		if !c.useNone && IsUnset(v) {
			return c.publish(Unset)
		}
		args[name] = v
	}

	v, err := c.fn(args)
	if err != nil {
		return err
	}
	return c.publish(v)
}

func (c *Computed) publish(v any) error {
	old := c.value
	c.value = v
	return c.listeners.notify(Change{
		Name:  ValueAccessor,
		Old:   old,
		New:   v,
		Owner: c,
	})
}

// From is the chainable form of AddInput. It panics on error.
func (c *Computed) From(src Observable, opts ...Option) *Computed {
	must(c.AddInput(src, opts...))
	return c
}

// To is the chainable form of SetOutput. It panics on error.
func (c *Computed) To(fn Func, opts ...Option) *Computed {
	must(c.SetOutput(fn, opts...))
	return c
}

// MustResync is the chainable form of Resync. It panics on error.
func (c *Computed) MustResync() *Computed {
	must(c.Resync())
	return c
}

func (c *Computed) Value() any {
	return c.value
}

// Names lists the named inputs in wiring order.
func (c *Computed) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

func (c *Computed) UsesNone() bool {
	return c.useNone
}

func (c *Computed) ReadOnly() bool {
	return true
}

func (c *Computed) Get(accessor string) (any, error) {
	if err := checkValueAccessor("computed get", accessor); err != nil {
		return nil, err
	}
	return c.value, nil
}

// Set always fails: the value of a Computed only comes from its inputs.
func (c *Computed) Set(accessor string, value any) error {
	return wiringErr("computed set", "computed values are read-only")
}

func (c *Computed) Observe(accessor string, fn Listener) error {
	if err := checkValueAccessor("computed observe", accessor); err != nil {
		return err
	}
	if fn == nil {
		return wiringErr("computed observe", "nil listener")
	}
	c.listeners = append(c.listeners, fn)
	return nil
}

func (c *Computed) Negate() *Computed         { return Not(c) }
func (c *Computed) And(o Observable) *Computed { return And(c, o) }
func (c *Computed) Or(o Observable) *Computed  { return Or(c, o) }
