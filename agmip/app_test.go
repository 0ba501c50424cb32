package agmip_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/delaneyj/propgraph/agmip"
	"github.com/delaneyj/propgraph/prop"
	"github.com/delaneyj/propgraph/widget"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const rawFile = "acea_gfdl-esm4_historical_default_production_and_yield_grid.RData"

// fakeAggregator answers with rows under the requested primary variable.
type fakeAggregator struct {
	reqs []agmip.AggregationRequest
	rows string
	err  error
}

func (f *fakeAggregator) Aggregate(_ context.Context, req agmip.AggregationRequest) ([]byte, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("time,id," + req.PrimaryVar + "\n" + f.rows), nil
}

type harness struct {
	app      *agmip.App
	fs       afero.Fs
	agg      *fakeAggregator
	messages []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg, err := agmip.LoadConfig("")
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/tools/agmip/rdata/"+rawFile, []byte("rdata"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "data/regionmap/countries.csv", []byte("id"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "data/weightmap/area.csv", []byte("w"), 0o644))

	h := &harness{
		fs: fs,
		agg: &fakeAggregator{rows: "2016,USA,1.234\n2016,BRA,2\n2016,CHN,3\n" +
			"2017,USA,4.567\n2017,BRA,5\n2017,CHN,6\n"},
	}
	h.app, err = agmip.New(cfg, fs, h.agg, zap.NewNop())
	require.NoError(t, err)
	h.app.Controller.OnNotify(func(msg string) { h.messages = append(h.messages, msg) })
	return h
}

func TestAppInitialState(t *testing.T) {
	h := newHarness(t)
	m, v := h.app.Model, h.app.View

	assert.True(t, prop.IsUnset(m.DataFilePath.Value()))
	assert.True(t, prop.IsUnset(m.SelectedFile.Value()))
	assert.Equal(t, true, m.RawDownloadDisabled.Value())
	assert.Equal(t, true, v.RawDownload.Prop("disabled"))
	assert.Equal(t, "", v.RawDownload.Prop("filename"))
	assert.Equal(t, []string{}, v.FileSelect.Prop("options"))
	assert.Equal(t, true, v.AggregatedDownload.Prop("disabled"))

	assert.Equal(t, false, m.UseWeightmap.Value())
	assert.Equal(t, true, v.WeightMapSelect.Prop("disabled"))
	assert.Equal(t, "data/regionmap/countries.csv", v.RegionMapSelect.Value())
	assert.Equal(t, "data/weightmap/area.csv", v.WeightMapSelect.Value())
}

func TestAppSelection(t *testing.T) {
	h := newHarness(t)
	m, v := h.app.Model, h.app.View

	require.NoError(t, h.app.Select("acea", "gfdl-esm4", "historical"))
	assert.True(t, prop.IsUnset(m.DataFilePath.Value()), "crop still unselected")

	require.NoError(t, h.app.Select("acea", "gfdl-esm4", "historical", "maize"))
	assert.Equal(t, rawFile, m.DataFilePath.Value())
	assert.Equal(t, rawFile, m.SelectedFile.Value())
	assert.Equal(t, []string{rawFile}, v.FileSelect.Prop("options"))
	assert.Equal(t, false, v.RawDownload.Prop("disabled"))
	assert.Equal(t, "acea_gfdl-esm4_historical_default_production_and_yield_grid.zip", v.RawDownload.Prop("filename"))
	assert.Equal(t, "acea_gfdl-esm4_historical_default_production_and_yield_grid.csv", m.AggregatedDownloadFileName.Value())
	assert.Equal(t, "acea_gfdl-esm4_historical_default_production_and_yield_grid.csv", v.AggregatedDownload.Prop("filename"))

	wantInfo := map[string]any{
		"Year Range": "2016-2099",
		"Global Gridded Crop Models (GGCM)":           "acea",
		"Global Circulation Models (GCM)":             "gfdl-esm4",
		"Representative Concentration Pathways (RCP)": "historical",
		"Crops": "maize",
	}
	if diff := cmp.Diff(wantInfo, m.SelectionInfo.Value()); diff != "" {
		t.Errorf("selection info mismatch (-want +got):\n%s", diff)
	}

	// no such file on disk
	require.NoError(t, h.app.Select("crover"))
	assert.Equal(t, "crover_gfdl-esm4_historical_default_production_and_yield_grid.RData", m.DataFilePath.Value())
	assert.True(t, prop.IsUnset(m.SelectedFile.Value()))
	assert.Equal(t, []string{}, v.FileSelect.Prop("options"))
	assert.Equal(t, true, v.RawDownload.Prop("disabled"))
	assert.Equal(t, "", v.RawDownload.Prop("filename"))
}

func TestAppSelectAll(t *testing.T) {
	h := newHarness(t)
	m, v := h.app.Model, h.app.View
	require.NoError(t, h.app.Select("acea", "gfdl-esm4", "historical", "maize"))
	assert.Equal(t, []string{}, m.SelectedFiles.Value())

	require.NoError(t, v.SelectAll.Set("value", true))
	assert.Equal(t, true, m.SelectAll.Value())
	assert.Equal(t, true, v.FileSelect.Prop("disabled"))
	assert.Equal(t, []string{"/data/tools/agmip/rdata/" + rawFile}, m.SelectedFiles.Value())

	require.NoError(t, v.SelectAll.Set("value", false))
	assert.Equal(t, false, v.FileSelect.Prop("disabled"))
	require.NoError(t, v.FileSelect.Set("value", []string{rawFile}))
	assert.Equal(t, []string{"/data/tools/agmip/rdata/" + rawFile}, m.SelectedFiles.Value())
	assert.Equal(t, 2016, m.StartYear.Value())
	assert.Equal(t, 2099, m.EndYear.Value())
}

func TestAppUseWeightmap(t *testing.T) {
	h := newHarness(t)
	m, v := h.app.Model, h.app.View

	require.NoError(t, v.AggregationOptions.Set("value", "wa"))
	assert.Equal(t, true, m.UseWeightmap.Value())
	assert.Equal(t, false, v.WeightMapSelect.Prop("disabled"))

	require.NoError(t, v.AggregationOptions.Set("value", "st"))
	assert.Equal(t, false, m.UseWeightmap.Value())
	assert.Equal(t, true, v.WeightMapSelect.Prop("disabled"))
}

func TestAppAggregate(t *testing.T) {
	h := newHarness(t)
	m, v := h.app.Model, h.app.View
	require.NoError(t, h.app.Select("acea", "gfdl-esm4", "historical", "maize"))
	require.NoError(t, v.AggregationOptions.Set("value", "wa"))

	require.NoError(t, v.AggregateButton.Click())
	require.Len(t, h.agg.reqs, 1)
	want := agmip.AggregationRequest{
		InputFile:  "/data/tools/agmip/rdata/" + rawFile,
		RegionMap:  "data/regionmap/countries.csv",
		WeightMap:  "data/weightmap/area.csv",
		Crop:       "maize",
		Option:     "wa",
		PrimaryVar: "w.ave.yield",
		StartYear:  2016,
		EndYear:    2099,
	}
	if diff := cmp.Diff(want, h.agg.reqs[0]); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Aggregating data...", "Successfully aggregated data!", "Successfully drawn map!"}, h.messages)

	assert.Equal(t, 2016, v.ZoomSlider.Prop("min"))
	assert.Equal(t, 2099, v.ZoomSlider.Prop("max"))
	assert.Equal(t, 2016, v.ZoomSlider.Value())
	assert.Equal(t, false, v.AggregatedDownload.Prop("disabled"))
	assert.Equal(t, map[string]float64{"USA": 1.234, "BRA": 2, "CHN": 3}, m.ChoroData.Value())
	assert.Equal(t, agmip.Summary{Max: 3, Min: 1.23, StdDev: 0.89, Q1: 1.23, Q2: 2, Q3: 3}, m.SummaryInfo.Value())

	assert.True(t, prop.IsUnset(m.SelectedInfo.Value()))
	require.NoError(t, h.app.Controller.SelectCountry("USA"))
	assert.Equal(t, agmip.CountryInfo{Name: "USA", Production: 1.23}, m.SelectedInfo.Value())
	assert.Equal(t, agmip.TimeSeries{Years: []int{2016, 2017}, Values: []float64{1.234, 4.567}}, m.TimeSeriesInfo.Value())

	require.NoError(t, v.ZoomSlider.Set("value", 2017))
	assert.Equal(t, map[string]float64{"USA": 4.567, "BRA": 5, "CHN": 6}, m.ChoroData.Value())
	assert.Equal(t, agmip.CountryInfo{Name: "USA", Production: 4.57}, m.SelectedInfo.Value())

	require.NoError(t, v.ZoomSlider.Set("value", 2030))
	assert.True(t, prop.IsUnset(m.ChoroData.Value()))
	assert.True(t, prop.IsUnset(m.SelectedInfo.Value()))
}

func TestAppAggregateErrors(t *testing.T) {
	h := newHarness(t)
	err := h.app.Controller.Aggregate(context.Background())
	assert.ErrorIs(t, err, agmip.ErrNoSelection)
	assert.Empty(t, h.agg.reqs)

	boom := errors.New("Rscript exited 1")
	h.agg.err = boom
	require.NoError(t, h.app.Select("acea", "gfdl-esm4", "historical", "maize"))
	err = h.app.Controller.Aggregate(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, prop.IsUnset(h.app.Model.ChoroData.Value()))
	assert.Equal(t, true, h.app.View.AggregatedDownload.Prop("disabled"))
}

// an uploaded weight map becomes selectable
func TestAppWeightMapUpload(t *testing.T) {
	h := newHarness(t)
	u := h.app.View.WeightMapUpload

	require.NoError(t, u.Pick(widget.UploadedFile{Name: "mine.csv", Content: []byte("w")}))
	require.NoError(t, u.Confirm.Click())

	choices := h.app.View.WeightMapSelect.Prop("options").([]widget.Choice)
	want := []widget.Choice{
		{Label: "data/weightmap/area.csv", Value: "data/weightmap/area.csv"},
		{Label: "cache/weightmaps/mine.csv", Value: "cache/weightmaps/mine.csv"},
	}
	if diff := cmp.Diff(want, choices); diff != "" {
		t.Errorf("weight map choices mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, u.Pick(widget.UploadedFile{Name: "mine.csv", Content: []byte("w2")}))
	assert.ErrorIs(t, u.ConfirmPending(), widget.ErrFileExists)
	require.Len(t, h.messages, 1)
	assert.Contains(t, h.messages[0], "not overwriting")
}

// a repeated aggregation is served from the cache
func TestAppAggregateCached(t *testing.T) {
	h := newHarness(t)
	m, v := h.app.Model, h.app.View
	require.NoError(t, h.app.Select("acea", "gfdl-esm4", "historical", "maize"))

	require.NoError(t, h.app.Controller.Aggregate(context.Background()))
	require.Len(t, h.agg.reqs, 1)
	cached := "cache/aggregated/" + h.agg.reqs[0].CacheKey() + ".csv"
	exists, err := afero.Exists(h.fs, cached)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, m.ProdData.SetValue(nil))
	require.NoError(t, h.app.Controller.Aggregate(context.Background()))
	assert.Len(t, h.agg.reqs, 1)
	assert.Equal(t, map[string]float64{"USA": 1.234, "BRA": 2, "CHN": 3}, m.ChoroData.Value())

	require.NoError(t, v.AggregationOptions.Set("value", "wa"))
	require.NoError(t, h.app.Controller.Aggregate(context.Background()))
	require.Len(t, h.agg.reqs, 2)
	assert.NotEqual(t, h.agg.reqs[0].CacheKey(), h.agg.reqs[1].CacheKey())

	name, data, err := v.AggregatedDownload.Download()
	require.NoError(t, err)
	assert.Equal(t, "acea_gfdl-esm4_historical_default_production_and_yield_grid.csv", name)
	assert.Contains(t, string(data), "time,id,w.ave.yield\n2016,USA,1.234")
}

// failed aggregations leave nothing in the cache
func TestAppAggregateFailureNotCached(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Select("acea", "gfdl-esm4", "historical", "maize"))
	h.agg.err = errors.New("Rscript exited 1")
	require.Error(t, h.app.Controller.Aggregate(context.Background()))

	h.agg.err = nil
	require.NoError(t, h.app.Controller.Aggregate(context.Background()))
	assert.Len(t, h.agg.reqs, 2)
}

// the raw download zips the selected files under their base names
func TestAppRawDownload(t *testing.T) {
	h := newHarness(t)
	v := h.app.View
	_, _, err := v.RawDownload.Download()
	assert.ErrorIs(t, err, widget.ErrDisabled)

	require.NoError(t, h.app.Select("acea", "gfdl-esm4", "historical", "maize"))
	require.NoError(t, v.SelectAll.Set("value", true))
	name, data, err := v.RawDownload.Download()
	require.NoError(t, err)
	assert.Equal(t, "acea_gfdl-esm4_historical_default_production_and_yield_grid.zip", name)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, rawFile, zr.File[0].Name)
	f, err := zr.File[0].Open()
	require.NoError(t, err)
	defer f.Close()
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "rdata", string(body))
}

func TestAppAggregationInfo(t *testing.T) {
	h := newHarness(t)
	m, v := h.app.Model, h.app.View
	assert.Equal(t, agmip.AggregationInfo{Option: "st", PrimaryVar: "mean"}, m.AggregationInfo.Value())

	require.NoError(t, v.AggregationOptions.Set("value", "wa"))
	assert.Equal(t, agmip.AggregationInfo{Option: "wa", PrimaryVar: "w.ave.yield"}, m.AggregationInfo.Value())
}

// the documentation download follows the selection and aggregation option
func TestAppCitation(t *testing.T) {
	h := newHarness(t)
	m, v := h.app.Model, h.app.View
	assert.True(t, prop.IsUnset(m.Citation.Value()))
	assert.Equal(t, true, v.CitationDownload.Prop("disabled"))

	require.NoError(t, h.app.Select("acea", "gfdl-esm4", "historical", "maize"))
	assert.Equal(t, false, v.CitationDownload.Prop("disabled"))

	name, data, err := v.CitationDownload.Download()
	require.NoError(t, err)
	assert.Equal(t, "citations.txt", name)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "Summary statistics for maize yields production for the period 2016-2099 "+
		"generated by the AquaCropEarth@lternatives (ACEA) crop model using climate data from the GFDL-ESM4 GCM "+
		"under representative concentration pathway Historical as documented in Rosenzweig et al. (2014)."), text)
	assert.Contains(t, text, "\n\nReferences\n")

	require.NoError(t, v.AggregationOptions.Set("value", "wa"))
	assert.True(t, strings.HasPrefix(m.Citation.Value().(string), "User defined aggregation of maize yields"))
}

func TestAppColormap(t *testing.T) {
	h := newHarness(t)
	m := h.app.Model
	require.NoError(t, h.app.Select("acea", "gfdl-esm4", "historical", "maize"))
	assert.True(t, prop.IsUnset(m.Colormap.Value()))

	require.NoError(t, h.app.Controller.Aggregate(context.Background()))
	cm, ok := m.Colormap.Value().(agmip.Colormap)
	require.True(t, ok)
	assert.Equal(t, []float64{1.234, 1.234, 2, 3, 3}, cm.Index)
	assert.Equal(t, 1.23, cm.VMin)
	assert.Equal(t, 3.0, cm.VMax)
}
