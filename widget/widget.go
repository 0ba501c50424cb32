// Package widget provides headless UI controls. A Widget is a bag of named
// properties that satisfies prop.Observable, so controls can be wired into
// bridges and derived cells the same way a notebook widget would be.
package widget

import (
	"errors"
	"fmt"
	"sort"

	"github.com/delaneyj/propgraph/prop"
)

var (
	ErrUnknownProperty = errors.New("unknown widget property")
	ErrDisabled        = errors.New("widget is disabled")
	ErrNoContents      = errors.New("download has no contents")
)

// Choice is one entry of a radio button group or dropdown.
type Choice struct {
	Label string
	Value string
}

type coerceFunc func(w *Widget, name string, v any) (any, error)

// Widget notifies observers of a property only when its value actually
// changes, like traitlets do.
type Widget struct {
	Kind string

	props     map[string]any
	listeners map[string][]prop.Listener
	clicks    []func(w *Widget) error
	coerce    coerceFunc
	contents  func() ([]byte, error)
}

func New(kind string, props map[string]any) *Widget {
	w := &Widget{
		Kind:      kind,
		props:     make(map[string]any, len(props)),
		listeners: map[string][]prop.Listener{},
	}
	for k, v := range props {
		w.props[k] = v
	}
	return w
}

func (w *Widget) unknown(name string) error {
	return fmt.Errorf("%w: %s has no %q", ErrUnknownProperty, w.Kind, name)
}

func (w *Widget) Get(name string) (any, error) {
	v, ok := w.props[name]
	if !ok {
		return nil, w.unknown(name)
	}
	return v, nil
}

// Prop returns a property value, or nil if the widget does not have it.
func (w *Widget) Prop(name string) any {
	return w.props[name]
}

func (w *Widget) Value() any {
	return w.props[prop.ValueAccessor]
}

func (w *Widget) Set(name string, value any) error {
	old, ok := w.props[name]
	if !ok {
		return w.unknown(name)
	}
	if w.coerce != nil {
		v, err := w.coerce(w, name, value)
		if err != nil {
			return err
		}
		value = v
	}
	if prop.Equal(old, value) {
		return nil
	}

	w.props[name] = value
	for _, l := range w.listeners[name] {
		if err := l(prop.Change{Name: name, Old: old, New: value, Owner: w}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Widget) Observe(name string, fn prop.Listener) error {
	if _, ok := w.props[name]; !ok {
		return w.unknown(name)
	}
	if fn == nil {
		return fmt.Errorf("observe %s.%s: nil listener", w.Kind, name)
	}
	w.listeners[name] = append(w.listeners[name], fn)
	return nil
}

// Props lists the property names in sorted order.
func (w *Widget) Props() []string {
	names := make([]string, 0, len(w.props))
	for k := range w.props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (w *Widget) OnClick(fn func(w *Widget) error) {
	w.clicks = append(w.clicks, fn)
}

// Click runs the click handlers in order unless the widget is disabled.
func (w *Widget) Click() error {
	if disabled, _ := w.props["disabled"].(bool); disabled {
		return nil
	}
	for _, fn := range w.clicks {
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}

func NewRadioButtons(options []Choice, value any) *Widget {
	return New("RadioButtons", map[string]any{
		"options":  options,
		"value":    value,
		"disabled": false,
	})
}

func NewDropdown(options []Choice, value any) *Widget {
	return New("Dropdown", map[string]any{
		"options":  options,
		"value":    value,
		"disabled": false,
	})
}

func NewCheckbox(description string, value bool) *Widget {
	return New("Checkbox", map[string]any{
		"description": description,
		"value":       value,
		"disabled":    false,
	})
}

func NewButton(description string) *Widget {
	return New("Button", map[string]any{
		"description": description,
		"disabled":    false,
	})
}

func NewDownloadButton(description, filename string) *Widget {
	return New("DownloadButton", map[string]any{
		"description": description,
		"filename":    filename,
		"disabled":    true,
	})
}

// SetContents sets how a download button produces the bytes it serves.
// The function runs on every download, not when it is set.
func (w *Widget) SetContents(fn func() ([]byte, error)) {
	w.contents = fn
}

// Download returns the file name and contents of a download button.
func (w *Widget) Download() (string, []byte, error) {
	if disabled, _ := w.props["disabled"].(bool); disabled {
		return "", nil, fmt.Errorf("%w: %s", ErrDisabled, w.Kind)
	}
	if w.contents == nil {
		return "", nil, fmt.Errorf("%w: %s", ErrNoContents, w.Kind)
	}
	data, err := w.contents()
	if err != nil {
		return "", nil, err
	}
	name, _ := w.props["filename"].(string)
	return name, data, nil
}

func NewSelectMultiple(options []string) *Widget {
	return New("SelectMultiple", map[string]any{
		"options":  options,
		"value":    []string{},
		"disabled": false,
	})
}

// NewIntSlider rejects min > max and clamps value into [min, max].
func NewIntSlider(min, max, value int) *Widget {
	w := New("IntSlider", map[string]any{
		"min":      min,
		"max":      max,
		"value":    value,
		"disabled": false,
	})
	w.coerce = coerceSlider
	return w
}

func coerceSlider(w *Widget, name string, v any) (any, error) {
	n, ok := v.(int)
	if !ok && name != "disabled" {
		return nil, fmt.Errorf("%s.%s: expected int, got %T", w.Kind, name, v)
	}
	min, max := w.props["min"].(int), w.props["max"].(int)
	switch name {
	case "min":
		if n > max {
			return nil, fmt.Errorf("%s: min %d is greater than max %d", w.Kind, n, max)
		}
	case "max":
		if n < min {
			return nil, fmt.Errorf("%s: max %d is less than min %d", w.Kind, n, min)
		}
	case "value":
		if n < min {
			return min, nil
		}
		if n > max {
			return max, nil
		}
	}
	return v, nil
}
