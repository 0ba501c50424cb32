package agmip_test

import (
	"testing"

	"github.com/delaneyj/propgraph/agmip"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYearPath(t *testing.T) {
	yp, err := agmip.ParseYearPath("epic_hadgem2-es_hist_ssp2_co2_firr_yield_soy_annual_1980_2010.nc4")
	require.NoError(t, err)
	want := agmip.YearPath{
		Base:  "epic_hadgem2-es_hist_ssp2_co2_firr_yield_soy_annual",
		Years: agmip.YearRange{Start: 1980, End: 2010},
		Ext:   "nc4",
	}
	if diff := cmp.Diff(want, yp); diff != "" {
		t.Errorf("ParseYearPath mismatch (-want +got):\n%s", diff)
	}

	_, err = agmip.ParseYearPath("acea_gfdl-esm4_historical_default_production_and_yield_grid.RData")
	assert.ErrorIs(t, err, agmip.ErrNotYearPath)
}

func TestIsContiguous(t *testing.T) {
	assert.True(t, agmip.IsContiguous(nil))
	assert.True(t, agmip.IsContiguous([]agmip.YearRange{{Start: 1971, End: 1980}}))
	assert.True(t, agmip.IsContiguous([]agmip.YearRange{{Start: 1971, End: 1980}, {Start: 1981, End: 1990}}))
	assert.False(t, agmip.IsContiguous([]agmip.YearRange{{Start: 1971, End: 1980}, {Start: 1982, End: 1990}}))
	assert.False(t, agmip.IsContiguous([]agmip.YearRange{{Start: 1971, End: 1980}, {Start: 1980, End: 1990}}))
}

// ranges are ordered by year, the name comes from the first path given
func TestCombine(t *testing.T) {
	paths := []string{
		"/data/nc4/pdssat_hist_1981_1990.nc4",
		"/data/nc4/pdssat_hist_1971_1980.nc4",
		"/data/nc4/pdssat_hist_1991_2000.nc4",
	}
	info, ok := agmip.Combine(paths)
	require.True(t, ok)
	want := agmip.CombineInfo{
		StartYear: 1971,
		EndYear:   2000,
		FileName:  "pdssat_hist_1971_2000.nc4",
		Base:      "pdssat_hist",
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("Combine mismatch (-want +got):\n%s", diff)
	}
}

func TestCombineRejects(t *testing.T) {
	_, ok := agmip.Combine(nil)
	assert.False(t, ok)
	for _, paths := range [][]string{
		{},
		{"a_1971_1980.nc4", "a_1990_2000.nc4"},
		{"a_1971_1980.nc4", "notes.txt"},
	} {
		_, ok := agmip.Combine(paths)
		assert.False(t, ok, "%v", paths)
	}
}

func TestCacheKey(t *testing.T) {
	a := agmip.CacheKey([]string{"x_1971_1980.nc4", "x_1981_1990.nc4"})
	b := agmip.CacheKey([]string{"x_1981_1990.nc4", "x_1971_1980.nc4"})
	c := agmip.CacheKey([]string{"x_1971_1980.nc4"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEmpty(t, a)
}
