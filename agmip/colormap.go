package agmip

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// ColormapColors runs from no production to the highest.
var ColormapColors = []string{"white", "green", "yellow", "orange", "darkred"}

// Colormap is a linear color scale over production values. Index holds one
// breakpoint per color.
type Colormap struct {
	Colors []string
	Index  []float64
	VMin   float64
	VMax   float64
}

// NewColormap spreads the colors over [min, quartiles of the positive values,
// max], so a map dominated by zeros still shows contrast between producers.
// It needs at least two positive values.
func NewColormap(values []float64) (Colormap, error) {
	breaks, err := ColormapBreakpoints(values)
	if err != nil {
		return Colormap{}, err
	}
	return Colormap{
		Colors: ColormapColors,
		Index:  breaks,
		VMin:   round2(breaks[0]),
		VMax:   round2(breaks[len(breaks)-1]),
	}, nil
}

func ColormapBreakpoints(values []float64) ([]float64, error) {
	var positive []float64
	for _, v := range values {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) < 2 {
		return nil, ErrNotEnoughData
	}
	sort.Float64s(positive)

	mn, err := stats.Min(values)
	if err != nil {
		return nil, err
	}
	mx, err := stats.Max(values)
	if err != nil {
		return nil, err
	}
	q := quartiles(positive)
	return []float64{mn, q[0], q[1], q[2], mx}, nil
}
