package agmip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/delaneyj/propgraph/prop"
	"github.com/delaneyj/propgraph/widget"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	ErrNoSelection     = errors.New("no data file selected")
	ErrNoYearRange     = errors.New("no year range selected")
	ErrNotAggregated   = errors.New("nothing aggregated yet")
	ErrUnknownVariable = errors.New("aggregation option has no primary variable")
)

// AggregationRequest is everything the aggregation script needs.
type AggregationRequest struct {
	InputFile  string
	RegionMap  string
	WeightMap  string
	Crop       string
	Option     string
	PrimaryVar string
	StartYear  int
	EndYear    int
}

// CacheKey identifies the result of the request.
func (r AggregationRequest) CacheKey() string {
	return CacheKey([]string{
		"input=" + r.InputFile,
		"regionmap=" + r.RegionMap,
		"weightmap=" + r.WeightMap,
		"crop=" + r.Crop,
		"option=" + r.Option,
		"primary=" + r.PrimaryVar,
		fmt.Sprintf("years=%d-%d", r.StartYear, r.EndYear),
	})
}

// Aggregator aggregates a gridded input file to country level and returns
// the result as CSV with time, id and primary variable columns.
type Aggregator interface {
	Aggregate(ctx context.Context, req AggregationRequest) ([]byte, error)
}

type Controller struct {
	cfg    *Config
	fs     afero.Fs
	model  *Model
	view   *View
	agg    Aggregator
	logger *zap.Logger

	notify     []func(msg string)
	aggregated string
}

func NewController(cfg *Config, fs afero.Fs, model *Model, view *View, agg Aggregator, logger *zap.Logger) *Controller {
	return &Controller{
		cfg:    cfg,
		fs:     fs,
		model:  model,
		view:   view,
		agg:    agg,
		logger: logger,
	}
}

// OnNotify registers a handler for user facing status messages.
func (c *Controller) OnNotify(fn func(msg string)) {
	c.notify = append(c.notify, fn)
}

func (c *Controller) sendNotification(msg string) {
	c.logger.Debug("notification", zap.String("msg", msg))
	for _, fn := range c.notify {
		fn(msg)
	}
}

func orEmpty(v any) (any, error) {
	if prop.IsUnset(v) {
		return "", nil
	}
	return v, nil
}

func fileOptions(v any) (any, error) {
	if f, ok := v.(string); ok {
		return []string{f}, nil
	}
	return []string{}, nil
}

func isUnset(v any) (any, error) {
	return prop.IsUnset(v), nil
}

func rawDownloadName(v any) (any, error) {
	if f, ok := v.(string); ok {
		return zipName(f), nil
	}
	return "", nil
}

// Wire connects the model's props to each other and to the view.
func (c *Controller) Wire() (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("wiring controller: %w", e)
			c.logger.Error("wiring failed", zap.Error(err))
		}
	}()

	m, v := c.model, c.view

	// data selection
	for i, sel := range m.RadioSelections {
		sel.Prop.Bind(v.Radios[i], prop.BindFromEndpoint)
		m.RadioSelectionsInfo.From(sel.Prop, prop.Name(sel.Category.Label))
		m.DataFilePath.From(sel.Prop, prop.Name(sel.Category.Key))
	}
	m.DataFilePath.To(m.dataFilePath)
	m.RadioSelectionsInfo.To(prop.Collect)

	m.SelectedFile.
		From(m.DataFilePath, prop.Name("path")).
		To(prop.Fn1E("path", m.selectedFile))

	prop.NewSynced(nil).
		From(m.SelectedFile, prop.Transform(fileOptions)).
		To(v.FileSelect, prop.Accessor("options"), prop.Sync(true))

	m.SelectAll.
		From(v.SelectAll).
		To(v.FileSelect, prop.Accessor("disabled"), prop.Sync(true))

	m.SelectedFiles.
		From(v.FileSelect, prop.Accessor("value"), prop.Name("selected_files")).
		From(v.FileSelect, prop.Accessor("options"), prop.Name("all_files")).
		From(m.SelectAll, prop.Name("select_all")).
		To(prop.Fn3("select_all", "selected_files", "all_files", m.selectedFiles))

	// data aggregation
	m.StartYear.
		From(m.SelectedFiles, prop.Name("files")).
		To(prop.Fn1("files", m.startYear))
	m.EndYear.
		From(m.SelectedFiles, prop.Name("files")).
		To(prop.Fn1("files", m.endYear))

	m.SelectionInfo.
		From(m.StartYear, prop.Name("start")).
		From(m.EndYear, prop.Name("end")).
		From(m.RadioSelectionsInfo, prop.Name("model_info")).
		To(prop.Fn3("start", "end", "model_info", selectionInfo))

	prop.NewSynced(nil).
		From(m.SelectedFile, prop.Transform(rawDownloadName)).
		To(v.RawDownload, prop.Accessor("filename"), prop.Sync(true))
	m.RawDownloadDisabled.
		From(m.SelectedFile, prop.Transform(isUnset)).
		To(v.RawDownload, prop.Accessor("disabled"), prop.Sync(true))

	weighted := c.cfg.WeightedAggregation
	m.UseWeightmap.
		From(v.AggregationOptions, prop.Name("op")).
		To(prop.Fn1("op", func(op string) bool { return op == weighted }))
	prop.NewSynced(nil).
		From(m.UseWeightmap.Negate()).
		To(v.WeightMapSelect, prop.Accessor("disabled"), prop.Sync(true))

	m.AggregationInfo.
		From(v.AggregationOptions, prop.Name("option")).
		To(prop.Fn1("option", m.aggregationInfo))

	for _, sel := range m.RadioSelections {
		m.Citation.From(sel.Prop, prop.Name(sel.Category.Key))
	}
	m.Citation.
		From(m.StartYear, prop.Name("start")).
		From(m.EndYear, prop.Name("end")).
		From(m.AggregationInfo, prop.Name("aggregation")).
		To(m.citation)
	prop.NewSynced(nil).
		From(m.Citation, prop.Transform(isUnset)).
		To(v.CitationDownload, prop.Accessor("disabled"), prop.Sync(true))

	m.AggregatedDownloadFileName.
		From(m.SelectedFile, prop.Name("f")).
		To(prop.Fn1("f", aggregatedFileName))
	prop.NewSynced(nil).
		From(m.AggregatedDownloadFileName, prop.Transform(orEmpty)).
		To(v.AggregatedDownload, prop.Accessor("filename"), prop.Sync(true))
	prop.NewSynced(nil).
		From(m.ProdData, prop.Transform(isUnset)).
		To(v.AggregatedDownload, prop.Accessor("disabled"), prop.Sync(true))

	// data visualization
	m.ChoroData.
		From(v.ZoomSlider, prop.Name("selected_year"), prop.Sync(false)).
		From(m.ProdData, prop.Name("prod_data"), prop.Sync(false)).
		To(prop.Fn2("prod_data", "selected_year", choroData), prop.Sync(false))

	m.SelectedInfo.
		From(m.SelectedCountry, prop.Name("country")).
		From(m.ChoroData, prop.Name("data")).
		To(prop.Fn2("country", "data", selectedInfo))

	m.TimeSeriesInfo.
		From(m.SelectedCountry, prop.Name("country")).
		From(m.StartYear, prop.Name("start")).
		From(m.EndYear, prop.Name("end")).
		From(m.ProdData, prop.Name("full_data")).
		To(prop.Fn4("full_data", "country", "start", "end", ProductionData.Series))

	m.SummaryInfo.
		From(m.ChoroData, prop.Name("choro")).
		To(prop.Fn1E("choro", summaryInfo))
	m.Colormap.
		From(m.ChoroData, prop.Name("choro")).
		To(prop.Fn1E("choro", colormap))

	v.RawDownload.SetContents(c.rawDownload)
	v.AggregatedDownload.SetContents(c.aggregatedDownload)
	v.CitationDownload.SetContents(c.citationDownload)

	v.AggregateButton.OnClick(func(*widget.Widget) error {
		return c.Aggregate(context.Background())
	})
	for _, u := range []*widget.Upload{v.WeightMapUpload, v.RegionMapUpload} {
		u.OnUpload(func(string) {
			if err := c.RefreshMapChoices(); err != nil {
				c.logger.Error("refreshing map choices", zap.Error(err))
			}
		})
		u.OnError(c.sendNotification)
	}
	if err := c.RefreshMapChoices(); err != nil {
		return err
	}

	c.logger.Info("app running")
	return nil
}

// RefreshMapChoices lists the bundled and uploaded weight and region maps.
func (c *Controller) RefreshMapChoices() error {
	for _, sel := range []struct {
		w    *widget.Widget
		dirs []string
	}{
		{c.view.WeightMapSelect, []string{c.cfg.WeightMapDir, c.cfg.WeightMapUploadDir}},
		{c.view.RegionMapSelect, []string{c.cfg.RegionMapDir, c.cfg.RegionMapUploadDir}},
	} {
		var paths []string
		for _, dir := range sel.dirs {
			names, err := ListFiles(c.fs, dir)
			if err != nil {
				return err
			}
			for _, n := range names {
				paths = append(paths, filepath.Join(dir, n))
			}
		}
		if err := SetMapChoices(sel.w, paths); err != nil {
			return err
		}
	}
	return nil
}

// Aggregate runs the aggregation for the current selection and loads the
// result into the map.
func (c *Controller) Aggregate(ctx context.Context) error {
	c.sendNotification("Aggregating data...")
	m, v := c.model, c.view

	file, ok := m.SelectedFile.Value().(string)
	if !ok {
		c.logger.Error("aggregate without a selected file")
		return ErrNoSelection
	}
	crop, ok := m.Crop()
	if !ok {
		return ErrNoSelection
	}
	start, okStart := m.StartYear.Value().(int)
	end, okEnd := m.EndYear.Value().(int)
	if !okStart || !okEnd {
		c.logger.Error("aggregate without a year range",
			zap.Any("start", m.StartYear.Value()),
			zap.Any("end", m.EndYear.Value()),
		)
		return ErrNoYearRange
	}

	agg, _ := m.AggregationInfo.Value().(AggregationInfo)
	if agg.PrimaryVar == "" {
		return fmt.Errorf("%w: %q", ErrUnknownVariable, agg.Option)
	}

	req := AggregationRequest{
		InputFile:  filepath.Join(c.cfg.RawDataDir, file),
		Crop:       crop,
		Option:     agg.Option,
		PrimaryVar: agg.PrimaryVar,
		StartYear:  start,
		EndYear:    end,
	}
	req.RegionMap, _ = v.RegionMapSelect.Value().(string)
	if useWeightmap, _ := m.UseWeightmap.Value().(bool); useWeightmap {
		req.WeightMap, _ = v.WeightMapSelect.Value().(string)
	}

	log := c.logger.With(zap.String("input", req.InputFile), zap.String("crop", crop), zap.String("option", agg.Option))
	path, err := c.aggregate(ctx, req, log)
	if err != nil {
		log.Error("aggregation failed", zap.Error(err))
		return fmt.Errorf("aggregating %s: %w", file, err)
	}

	out, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return err
	}
	data, err := ReadProductionCSV(bytes.NewReader(out), req.PrimaryVar)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	c.aggregated = path
	c.sendNotification("Successfully aggregated data!")
	return c.DrawMap(data)
}

// aggregate returns the cached result of req, running the aggregator only
// when the cache has none.
func (c *Controller) aggregate(ctx context.Context, req AggregationRequest, log *zap.Logger) (string, error) {
	path := filepath.Join(c.cfg.AggregatedCacheDir, req.CacheKey()+".csv")
	cached, err := afero.Exists(c.fs, path)
	if err != nil {
		return "", err
	}
	if cached {
		log.Info("using cached aggregation", zap.String("path", path))
		return path, nil
	}

	log.Info("aggregating")
	out, err := c.agg.Aggregate(ctx, req)
	if err != nil {
		return "", err
	}
	if err := c.fs.MkdirAll(c.cfg.AggregatedCacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create aggregation cache: %w", err)
	}
	if err := afero.WriteFile(c.fs, path, out, 0o644); err != nil {
		return "", fmt.Errorf("write aggregation cache: %w", err)
	}
	log.Info("cached aggregation", zap.String("path", path), zap.Int("bytes", len(out)))
	return path, nil
}

func (c *Controller) rawDownload() ([]byte, error) {
	files, _ := c.model.SelectedFiles.Value().([]string)
	if len(files) == 0 {
		if f, ok := c.model.SelectedFile.Value().(string); ok {
			files = []string{filepath.Join(c.cfg.RawDataDir, f)}
		}
	}
	return Zip(c.fs, files)
}

func (c *Controller) aggregatedDownload() ([]byte, error) {
	if c.aggregated == "" {
		return nil, ErrNotAggregated
	}
	return afero.ReadFile(c.fs, c.aggregated)
}

func (c *Controller) citationDownload() ([]byte, error) {
	text, ok := c.model.Citation.Value().(string)
	if !ok {
		return nil, ErrIncompleteSelection
	}
	return []byte(text), nil
}

// DrawMap loads production data and resets the year slider to the
// selected range.
func (c *Controller) DrawMap(data ProductionData) error {
	m, slider := c.model, c.view.ZoomSlider
	c.logger.Info("drawing map", zap.Int("years", len(data)))

	if err := m.ProdData.SetValue(data); err != nil {
		return err
	}

	start, _ := m.StartYear.Value().(int)
	end, _ := m.EndYear.Value().(int)
	for _, step := range []struct {
		name  string
		value int
	}{
		{"min", 0},
		{"max", end},
		{"min", start},
		{"value", start},
	} {
		if err := slider.Set(step.name, step.value); err != nil {
			return fmt.Errorf("resetting year slider: %w", err)
		}
	}

	c.sendNotification("Successfully drawn map!")
	return nil
}

// SelectCountry handles a click on a country of the map.
func (c *Controller) SelectCountry(id string) error {
	return c.model.SelectedCountry.SetValue(id)
}
