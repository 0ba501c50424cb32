package prop

// Cell is a leaf value holder. Every Set notifies all listeners, even when the
// value did not change.
type Cell struct {
	value     any
	listeners listeners
}

func NewCell(initial any) *Cell {
	return &Cell{value: initial}
}

func checkValueAccessor(op, accessor string) error {
	if normalizeAccessor(accessor) != ValueAccessor {
		return wiringErr(op, "unknown accessor %q, only %q is available", accessor, ValueAccessor)
	}
	return nil
}

func (c *Cell) Value() any {
	return c.value
}

func (c *Cell) Get(accessor string) (any, error) {
	if err := checkValueAccessor("cell get", accessor); err != nil {
		return nil, err
	}
	return c.value, nil
}

func (c *Cell) Set(accessor string, value any) error {
	if err := checkValueAccessor("cell set", accessor); err != nil {
		return err
	}
	return c.SetValue(value)
}

// SetValue replaces the value and notifies listeners in registration order.
// The first listener error stops the notification and is returned.
func (c *Cell) SetValue(value any) error {
	old := c.value
	c.value = value
	return c.listeners.notify(Change{
		Name:  ValueAccessor,
		Old:   old,
		New:   value,
		Owner: c,
	})
}

// Store replaces the value without notifying anyone. Derived cells that
// depend on c will report a ConsistencyError on the next tracked change.
func (c *Cell) Store(value any) {
	c.value = value
}

func (c *Cell) Observe(accessor string, fn Listener) error {
	if err := checkValueAccessor("cell observe", accessor); err != nil {
		return err
	}
	if fn == nil {
		return wiringErr("cell observe", "nil listener")
	}
	c.listeners = append(c.listeners, fn)
	return nil
}

func (c *Cell) Negate() *Computed         { return Not(c) }
func (c *Cell) And(o Observable) *Computed { return And(c, o) }
func (c *Cell) Or(o Observable) *Computed  { return Or(c, o) }
