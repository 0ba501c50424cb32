package agmip_test

import (
	"testing"

	"github.com/delaneyj/propgraph/agmip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeros pull the minimum down but stay out of the quartiles
func TestColormapBreakpoints(t *testing.T) {
	breaks, err := agmip.ColormapBreakpoints([]float64{0, 5, 0, 3, 1, 4, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.5, 3, 4.5, 5}, breaks)
}

func TestColormapBreakpointsNotEnoughData(t *testing.T) {
	_, err := agmip.ColormapBreakpoints([]float64{0, 0, 7})
	assert.ErrorIs(t, err, agmip.ErrNotEnoughData)
	_, err = agmip.ColormapBreakpoints(nil)
	assert.ErrorIs(t, err, agmip.ErrNotEnoughData)
}

func TestNewColormap(t *testing.T) {
	cm, err := agmip.NewColormap([]float64{0.123, 10.456, 5})
	require.NoError(t, err)
	assert.Equal(t, agmip.ColormapColors, cm.Colors)
	assert.Len(t, cm.Index, len(cm.Colors))
	assert.Equal(t, 0.12, cm.VMin)
	assert.Equal(t, 10.46, cm.VMax)
}
