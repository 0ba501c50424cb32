package prop

type optionKind uint8

const (
	optAccessor optionKind = 1 << iota
	optName
	optSync
	optTransform
	optUseNone
)

type wireConfig struct {
	given     optionKind
	accessor  string
	name      string
	sync      bool
	transform func(any) (any, error)
	useNone   bool
}

// Option tunes a single wiring call. Components reject options that do not
// apply to them with a *WiringError.
type Option func(*wireConfig)

// Accessor selects the endpoint property to observe or write. Defaults to "value".
func Accessor(accessor string) Option {
	return func(c *wireConfig) {
		c.given |= optAccessor
		c.accessor = accessor
	}
}

// Name turns a Computed input into a named argument of the combining function.
func Name(name string) Option {
	return func(c *wireConfig) {
		c.given |= optName
		c.name = name
	}
}

// Sync controls whether the new wiring is synchronized immediately.
func Sync(sync bool) Option {
	return func(c *wireConfig) {
		c.given |= optSync
		c.sync = sync
	}
}

// Transform maps every value a Synced input receives before it is stored.
func Transform(fn func(any) (any, error)) Option {
	return func(c *wireConfig) {
		c.given |= optTransform
		c.transform = fn
	}
}

// UseNone makes a Computed invoke its combining function even when named
// inputs are unset.
func UseNone() Option {
	return func(c *wireConfig) {
		c.given |= optUseNone
		c.useNone = true
	}
}

func identity(v any) (any, error) {
	return v, nil
}

func buildConfig(op string, allowed optionKind, defaultSync bool, opts []Option) (wireConfig, error) {
	cfg := wireConfig{
		accessor:  ValueAccessor,
		sync:      defaultSync,
		transform: identity,
	}
	for i, opt := range opts {
		if opt == nil {
			return cfg, wiringErr(op, "option %d is nil", i)
		}
		opt(&cfg)
	}
	if extra := cfg.given &^ allowed; extra != 0 {
		return cfg, wiringErr(op, "unsupported option(s) %s", extra)
	}
	if cfg.given&optName != 0 && cfg.name == "" {
		return cfg, wiringErr(op, "empty input name")
	}
	if cfg.transform == nil {
		return cfg, wiringErr(op, "nil transform")
	}
	cfg.accessor = normalizeAccessor(cfg.accessor)
	return cfg, nil
}

func (k optionKind) String() string {
	names := []string{"Accessor", "Name", "Sync", "Transform", "UseNone"}
	s := ""
	for i, n := range names {
		if k&(1<<i) == 0 {
			continue
		}
		if s != "" {
			s += ","
		}
		s += n
	}
	return s
}
