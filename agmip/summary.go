package agmip

import (
	"errors"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

var ErrNotEnoughData = errors.New("summary needs at least two values")

type Summary struct {
	Max    float64
	Min    float64
	StdDev float64
	Q1     float64
	Q2     float64
	Q3     float64
}

// Labels pairs each statistic with its display label, in display order.
func (s Summary) Labels() []Stat {
	return []Stat{
		{"Max", s.Max},
		{"Min", s.Min},
		{"Standard Deviation", s.StdDev},
		{"1st Quantile", s.Q1},
		{"2nd Quantile", s.Q2},
		{"3rd Quantile", s.Q3},
	}
}

type Stat struct {
	Label string
	Value float64
}

// Summarize computes the sample standard deviation and the exclusive-method
// quartiles of values, each rounded to two decimals.
func Summarize(values []float64) (Summary, error) {
	if len(values) < 2 {
		return Summary{}, ErrNotEnoughData
	}
	data := stats.Float64Data(append([]float64(nil), values...))
	sort.Float64s(data)

	mx, err := stats.Max(data)
	if err != nil {
		return Summary{}, err
	}
	mn, err := stats.Min(data)
	if err != nil {
		return Summary{}, err
	}
	sd, err := stats.StandardDeviationSample(data)
	if err != nil {
		return Summary{}, err
	}

	q := quartiles(data)
	return Summary{
		Max:    round2(mx),
		Min:    round2(mn),
		StdDev: round2(sd),
		Q1:     round2(q[0]),
		Q2:     round2(q[1]),
		Q3:     round2(q[2]),
	}, nil
}

// quartiles expects sorted data with at least two points.
func quartiles(data []float64) [3]float64 {
	const n = 4
	ld := len(data)
	m := ld + 1
	var out [3]float64
	for i := 1; i < n; i++ {
		j := i * m / n
		switch {
		case j < 1:
			j = 1
		case j > ld-1:
			j = ld - 1
		}
		delta := i*m - j*n
		out[i-1] = (data[j-1]*float64(n-delta) + data[j]*float64(delta)) / n
	}
	return out
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
