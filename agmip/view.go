package agmip

import (
	"github.com/delaneyj/propgraph/widget"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// View holds the controls of the data selection, aggregation and
// visualization tabs.
type View struct {
	Radios []*widget.Widget

	FileSelect  *widget.Widget
	SelectAll   *widget.Widget
	RawDownload *widget.Widget

	AggregationOptions *widget.Widget
	WeightMapSelect    *widget.Widget
	WeightMapUpload    *widget.Upload
	RegionMapSelect    *widget.Widget
	RegionMapUpload    *widget.Upload
	AggregateButton    *widget.Widget
	AggregatedDownload *widget.Widget
	CitationDownload   *widget.Widget

	ZoomSlider *widget.Widget
}

func NewView(cfg *Config, fs afero.Fs, logger *zap.Logger) (*View, error) {
	v := &View{
		FileSelect:         widget.NewSelectMultiple([]string{}),
		SelectAll:          widget.NewCheckbox("Select all", false),
		RawDownload:        widget.NewDownloadButton("Download raw data", ""),
		AggregationOptions: widget.NewRadioButtons(cfg.AggregationOptions, cfg.AggregationOptions[0].Value),
		WeightMapSelect:    widget.NewDropdown(nil, ""),
		RegionMapSelect:    widget.NewDropdown(nil, ""),
		AggregateButton:    widget.NewButton("Aggregate"),
		AggregatedDownload: widget.NewDownloadButton("Download aggregated data", ""),
		CitationDownload:   widget.NewDownloadButton("Documentation", "citations.txt"),
		ZoomSlider:         widget.NewIntSlider(cfg.StartYear, cfg.EndYear, cfg.StartYear),
	}
	for _, cat := range cfg.Categories {
		v.Radios = append(v.Radios, widget.NewRadioButtons(cat.Options, nil))
	}

	var err error
	if v.WeightMapUpload, err = widget.NewUpload(fs, cfg.WeightMapUploadDir, widget.WithLogger(logger.Named("weightmap"))); err != nil {
		return nil, err
	}
	if v.RegionMapUpload, err = widget.NewUpload(fs, cfg.RegionMapUploadDir, widget.WithLogger(logger.Named("regionmap"))); err != nil {
		return nil, err
	}
	return v, nil
}

// SetMapChoices fills a map selector and selects the first entry.
func SetMapChoices(w *widget.Widget, files []string) error {
	choices := make([]widget.Choice, 0, len(files))
	for _, f := range files {
		choices = append(choices, widget.Choice{Label: f, Value: f})
	}
	if err := w.Set("options", choices); err != nil {
		return err
	}
	value := ""
	if len(files) > 0 {
		value = files[0]
	}
	return w.Set("value", value)
}
