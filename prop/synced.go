package prop

import (
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
)

type BindSource int

const (
	// BindFromBridge pushes the bridge value to the endpoint.
	BindFromBridge BindSource = iota
	// BindFromEndpoint pulls the endpoint value into the bridge.
	BindFromEndpoint
	// BindNone leaves both sides as they are.
	BindNone
)

type endpoint struct {
	target   Observable
	accessor string
}

func newEndpoint(op string, target Observable, accessor string) (endpoint, error) {
	if target == nil {
		return endpoint{}, wiringErr(op, "nil endpoint")
	}
	t := reflect.TypeOf(target)
	if !t.Comparable() {
		return endpoint{}, wiringErr(op, "endpoint of type %s cannot be tracked by identity", t)
	}
	if rv := reflect.ValueOf(target); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return endpoint{}, wiringErr(op, "nil %s endpoint", t)
	}
	return endpoint{target: target, accessor: normalizeAccessor(accessor)}, nil
}

// Synced mirrors one value across any number of endpoints. Inputs feed the
// bridge, outputs receive every value the bridge takes. Writes to outputs are
// never observed back by the bridge.
type Synced struct {
	value     any
	inputs    mapset.Set[endpoint]
	outputs   []endpoint
	outputSet mapset.Set[endpoint]
	listeners listeners
	writing   int
}

func NewSynced(initial any) *Synced {
	return &Synced{
		value:     initial,
		inputs:    mapset.NewThreadUnsafeSet[endpoint](),
		outputSet: mapset.NewThreadUnsafeSet[endpoint](),
	}
}

// AddInput observes src. Every change is passed through the Transform option
// and becomes the bridge value. Sync defaults to true: the current value of
// src is pulled right away. Adding the same source and accessor twice is a
// wiring error.
func (s *Synced) AddInput(src Observable, opts ...Option) error {
	const op = "synced input"
	cfg, err := buildConfig(op, optAccessor|optSync|optTransform, true, opts)
	if err != nil {
		return err
	}
	ep, err := newEndpoint(op, src, cfg.accessor)
	if err != nil {
		return err
	}
	if s.inputs.Contains(ep) {
		return wiringErr(op, "%T %q is already an input", src, ep.accessor)
	}

	transform := cfg.transform
	if err := src.Observe(ep.accessor, func(c Change) error {
		if s.writing > 0 {
			return nil
		}
		v, err := transform(c.New)
		if err != nil {
			return err
		}
		return s.SetValue(v)
	}); err != nil {
		return err
	}
	s.inputs.Add(ep)

	if !cfg.sync {
		return nil
	}
	current, err := src.Get(ep.accessor)
	if err != nil {
		return err
	}
	v, err := transform(current)
	if err != nil {
		return err
	}
	return s.SetValue(v)
}

// AddOutput writes every future bridge value to dst. Sync defaults to false;
// with Sync(true) the current value is written right away.
func (s *Synced) AddOutput(dst Observable, opts ...Option) error {
	const op = "synced output"
	cfg, err := buildConfig(op, optAccessor|optSync, false, opts)
	if err != nil {
		return err
	}
	ep, err := newEndpoint(op, dst, cfg.accessor)
	if err != nil {
		return err
	}
	if ro, ok := dst.(readOnly); ok && ro.ReadOnly() {
		return wiringErr(op, "endpoint %T is read-only", dst)
	}
	if !s.outputSet.Add(ep) {
		return nil
	}
	s.outputs = append(s.outputs, ep)

	if cfg.sync {
		return s.write(ep)
	}
	return nil
}

// BindBoth wires ep as both input and output. The initial value comes from the
// side named by source.
func (s *Synced) BindBoth(ep Observable, accessor string, source BindSource) error {
	if err := s.AddOutput(ep, Accessor(accessor)); err != nil {
		return err
	}
	if err := s.AddInput(ep, Accessor(accessor), Sync(false)); err != nil {
		return err
	}

	switch source {
	case BindFromBridge:
		return s.write(endpoint{target: ep, accessor: normalizeAccessor(accessor)})
	case BindFromEndpoint:
		v, err := ep.Get(accessor)
		if err != nil {
			return err
		}
		return s.SetValue(v)
	case BindNone:
		return nil
	default:
		return wiringErr("synced bind", "unknown bind source %d", source)
	}
}

func (s *Synced) write(ep endpoint) error {
	s.writing++
	defer func() { s.writing-- }()
	return ep.target.Set(ep.accessor, s.value)
}

// From is the chainable form of AddInput. It panics on error.
func (s *Synced) From(src Observable, opts ...Option) *Synced {
	must(s.AddInput(src, opts...))
	return s
}

// To is the chainable form of AddOutput. It panics on error.
func (s *Synced) To(dst Observable, opts ...Option) *Synced {
	must(s.AddOutput(dst, opts...))
	return s
}

// Bind is the chainable form of BindBoth. Only the Accessor option applies.
func (s *Synced) Bind(ep Observable, source BindSource, opts ...Option) *Synced {
	cfg, err := buildConfig("synced bind", optAccessor, false, opts)
	must(err)
	must(s.BindBoth(ep, cfg.accessor, source))
	return s
}

func (s *Synced) Value() any {
	return s.value
}

// SetValue stores the value, writes it to every output and then notifies
// listeners, both in registration order.
func (s *Synced) SetValue(value any) error {
	old := s.value
	s.value = value
	for _, ep := range s.outputs {
		if err := s.write(ep); err != nil {
			return err
		}
	}
	return s.listeners.notify(Change{
		Name:  ValueAccessor,
		Old:   old,
		New:   value,
		Owner: s,
	})
}

func (s *Synced) Get(accessor string) (any, error) {
	if err := checkValueAccessor("synced get", accessor); err != nil {
		return nil, err
	}
	return s.value, nil
}

func (s *Synced) Set(accessor string, value any) error {
	if err := checkValueAccessor("synced set", accessor); err != nil {
		return err
	}
	return s.SetValue(value)
}

func (s *Synced) Observe(accessor string, fn Listener) error {
	if err := checkValueAccessor("synced observe", accessor); err != nil {
		return err
	}
	if fn == nil {
		return wiringErr("synced observe", "nil listener")
	}
	s.listeners = append(s.listeners, fn)
	return nil
}

func (s *Synced) Negate() *Computed         { return Not(s) }
func (s *Synced) And(o Observable) *Computed { return And(s, o) }
func (s *Synced) Or(o Observable) *Computed  { return Or(s, o) }

func must(err error) {
	if err != nil {
		panic(err)
	}
}
