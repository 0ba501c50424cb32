package agmip

import "sort"

// ProductionData maps year to country id to the aggregated primary variable.
type ProductionData map[int]map[string]float64

func (p ProductionData) Years() []int {
	years := make([]int, 0, len(p))
	for y := range p {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

type TimeSeries struct {
	Years  []int
	Values []float64
}

// Series collects a country's values for the years in [start, end].
// Countries missing from a year read as zero.
func (p ProductionData) Series(country string, start, end int) TimeSeries {
	var ts TimeSeries
	for _, y := range p.Years() {
		if y < start || y > end {
			continue
		}
		ts.Years = append(ts.Years, y)
		ts.Values = append(ts.Values, p[y][country])
	}
	return ts
}

type CountryInfo struct {
	Name       string
	Production float64
}
