package widget_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/propgraph/prop"
	"github.com/delaneyj/propgraph/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unchanged writes are not notified
func TestWidgetNotifiesOnlyOnChange(t *testing.T) {
	w := widget.NewCheckbox("Select all", false)
	var changes []prop.Change
	require.NoError(t, w.Observe("value", func(c prop.Change) error {
		changes = append(changes, c)
		return nil
	}))

	require.NoError(t, w.Set("value", false))
	assert.Empty(t, changes)

	require.NoError(t, w.Set("value", true))
	require.Len(t, changes, 1)
	assert.Equal(t, prop.Change{Name: "value", Old: false, New: true, Owner: w}, changes[0])
}

func TestWidgetUnknownProperty(t *testing.T) {
	w := widget.NewButton("Go")
	_, err := w.Get("value")
	assert.ErrorIs(t, err, widget.ErrUnknownProperty)
	assert.ErrorIs(t, w.Set("value", 1), widget.ErrUnknownProperty)
	assert.ErrorIs(t, w.Observe("value", func(prop.Change) error { return nil }), widget.ErrUnknownProperty)
	assert.Nil(t, w.Prop("value"))
	assert.Equal(t, []string{"description", "disabled"}, w.Props())
}

func TestWidgetSliceValues(t *testing.T) {
	w := widget.NewSelectMultiple([]string{"a", "b"})
	calls := 0
	require.NoError(t, w.Observe("options", func(prop.Change) error {
		calls++
		return nil
	}))
	require.NoError(t, w.Set("options", []string{"a", "b"}))
	assert.Equal(t, 0, calls)
	require.NoError(t, w.Set("options", []string{"c"}))
	assert.Equal(t, 1, calls)
}

// disabled buttons swallow clicks
func TestButtonClick(t *testing.T) {
	b := widget.NewButton("Aggregate")
	clicks := 0
	b.OnClick(func(*widget.Widget) error {
		clicks++
		return nil
	})

	require.NoError(t, b.Click())
	assert.Equal(t, 1, clicks)

	require.NoError(t, b.Set("disabled", true))
	require.NoError(t, b.Click())
	assert.Equal(t, 1, clicks)
}

func TestButtonClickError(t *testing.T) {
	boom := errors.New("boom")
	b := widget.NewButton("Go")
	second := false
	b.OnClick(func(*widget.Widget) error { return boom })
	b.OnClick(func(*widget.Widget) error {
		second = true
		return nil
	})
	assert.Same(t, boom, b.Click())
	assert.False(t, second)
}

func TestIntSlider(t *testing.T) {
	s := widget.NewIntSlider(0, 10, 5)

	require.NoError(t, s.Set("value", 42))
	assert.Equal(t, 10, s.Value())
	require.NoError(t, s.Set("value", -1))
	assert.Equal(t, 0, s.Value())

	assert.Error(t, s.Set("min", 11))
	assert.Error(t, s.Set("max", -1))
	assert.Error(t, s.Set("value", "3"))

	require.NoError(t, s.Set("max", 2099))
	require.NoError(t, s.Set("min", 2016))
	require.NoError(t, s.Set("value", 2016))
	assert.Equal(t, 2016, s.Value())
}

// widgets plug into bridges like any observable
func TestWidgetInBridge(t *testing.T) {
	radio := widget.NewRadioButtons([]widget.Choice{{Label: "Maize", Value: "mai"}, {Label: "Rice", Value: "ric"}}, nil)
	label := widget.NewDropdown(nil, nil)
	s := prop.NewSynced(nil).Bind(radio, prop.BindFromEndpoint).To(label, prop.Sync(true))
	assert.Nil(t, s.Value())

	require.NoError(t, radio.Set("value", "ric"))
	assert.Equal(t, "ric", s.Value())
	assert.Equal(t, "ric", label.Value())

	require.NoError(t, s.SetValue("mai"))
	assert.Equal(t, "mai", radio.Value())
}

// contents are produced on each download, and only while enabled
func TestDownloadButton(t *testing.T) {
	w := widget.NewDownloadButton("Documentation", "citations.txt")
	_, _, err := w.Download()
	assert.ErrorIs(t, err, widget.ErrDisabled)

	require.NoError(t, w.Set("disabled", false))
	_, _, err = w.Download()
	assert.ErrorIs(t, err, widget.ErrNoContents)

	calls := 0
	w.SetContents(func() ([]byte, error) {
		calls++
		return []byte("refs"), nil
	})
	assert.Equal(t, 0, calls)
	name, data, err := w.Download()
	require.NoError(t, err)
	assert.Equal(t, "citations.txt", name)
	assert.Equal(t, []byte("refs"), data)
	assert.Equal(t, 1, calls)

	boom := errors.New("gone")
	w.SetContents(func() ([]byte, error) { return nil, boom })
	_, _, err = w.Download()
	assert.Same(t, boom, err)
}
