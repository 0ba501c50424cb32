package prop_test

import (
	"fmt"

	"github.com/delaneyj/propgraph/prop"
)

// fakeWidget stands in for a UI control: a bag of properties that only
// notifies when a property actually changes.
type fakeWidget struct {
	props     map[string]any
	listeners map[string][]prop.Listener
	writes    int
	failSet   error
}

func newFakeWidget(kv ...any) *fakeWidget {
	w := &fakeWidget{
		props:     map[string]any{},
		listeners: map[string][]prop.Listener{},
	}
	for i := 0; i+1 < len(kv); i += 2 {
		w.props[kv[i].(string)] = kv[i+1]
	}
	return w
}

func (w *fakeWidget) Get(accessor string) (any, error) {
	v, ok := w.props[accessor]
	if !ok {
		return nil, fmt.Errorf("no property %q", accessor)
	}
	return v, nil
}

func (w *fakeWidget) Set(accessor string, value any) error {
	if w.failSet != nil {
		return w.failSet
	}
	old, ok := w.props[accessor]
	if !ok {
		return fmt.Errorf("no property %q", accessor)
	}
	w.writes++
	if old == value {
		return nil
	}
	w.props[accessor] = value
	for _, l := range w.listeners[accessor] {
		if err := l(prop.Change{Name: accessor, Old: old, New: value, Owner: w}); err != nil {
			return err
		}
	}
	return nil
}

func (w *fakeWidget) Observe(accessor string, fn prop.Listener) error {
	if _, ok := w.props[accessor]; !ok {
		return fmt.Errorf("no property %q", accessor)
	}
	w.listeners[accessor] = append(w.listeners[accessor], fn)
	return nil
}

func (w *fakeWidget) value(accessor string) any {
	return w.props[accessor]
}
