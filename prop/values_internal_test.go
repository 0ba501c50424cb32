package prop

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type withAny struct {
	v any
}

func TestSameValue(t *testing.T) {
	m := map[string]float64{"USA": 1}

	assert.True(t, sameValue(nil, Unset))
	assert.True(t, sameValue(1, 1))
	assert.False(t, sameValue(1, 2))
	assert.False(t, sameValue(1, int64(1)))
	assert.False(t, sameValue(nil, 0))
	assert.True(t, sameValue(math.NaN(), math.NaN()))
	assert.True(t, sameValue(float32(math.NaN()), float32(math.NaN())))
	assert.True(t, sameValue(m, m))
	assert.True(t, sameValue([]string{"a"}, []string{"a"}))
	assert.False(t, sameValue([]string{"a"}, []string{"b"}))
	assert.True(t, sameValue(withAny{v: []int{1}}, withAny{v: []int{1}}))
	assert.False(t, sameValue(withAny{v: []int{1}}, withAny{v: []int{2}}))
}

func TestOptionKindString(t *testing.T) {
	assert.Equal(t, "Name,Transform", (optName | optTransform).String())
}

type handler struct {
	Name string
	Fn   func() string
}

func hello() string { return "hello" }
func bye() string { return "bye" }

func TestSameValueFuncs(t *testing.T) {
	var none func() string

	assert.True(t, sameValue(hello, hello))
	assert.False(t, sameValue(hello, bye))
	assert.True(t, sameValue(none, none))
	assert.False(t, sameValue(none, hello))
	assert.True(t, sameValue(handler{"x", hello}, handler{"x", hello}))
	assert.False(t, sameValue(handler{"x", hello}, handler{"y", hello}))
	assert.False(t, sameValue(handler{"x", hello}, handler{"x", bye}))
	assert.True(t, sameValue([2]handler{{"a", hello}}, [2]handler{{"a", hello}}))
	assert.True(t, sameValue(withAny{v: hello}, withAny{v: hello}))
	assert.True(t, sameValue(&handler{"x", hello}, &handler{"x", hello}))
}
