package agmip

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/delaneyj/propgraph/prop"
	"github.com/spf13/afero"
)

// Selection is the current choice of one data category.
type Selection struct {
	Category Category
	Prop     *prop.Synced
}

// Model holds the application state as props. NewModel only creates them;
// Controller.Wire connects them to each other and to the view.
type Model struct {
	cfg *Config
	fs  afero.Fs

	// data selection
	RadioSelections     []Selection
	RadioSelectionsInfo *prop.Computed
	DataFilePath        *prop.Computed
	SelectedFile        *prop.Computed
	SelectAll           *prop.Synced
	SelectedFiles       *prop.Computed
	SelectionInfo       *prop.Computed
	RawDownloadDisabled *prop.Synced

	// data aggregation
	StartYear                  *prop.Computed
	EndYear                    *prop.Computed
	UseWeightmap               *prop.Computed
	AggregationInfo            *prop.Computed
	Citation                   *prop.Computed
	AggregatedDownloadFileName *prop.Computed

	// data visualization
	ProdData        *prop.Cell
	ChoroData       *prop.Computed
	SelectedCountry *prop.Synced
	SelectedInfo    *prop.Computed
	SummaryInfo     *prop.Computed
	TimeSeriesInfo  *prop.Computed
	Colormap        *prop.Computed
}

func NewModel(cfg *Config, fs afero.Fs) *Model {
	m := &Model{
		cfg:                        cfg,
		fs:                         fs,
		RadioSelectionsInfo:        prop.NewComputed(),
		DataFilePath:               prop.NewComputed(),
		SelectedFile:               prop.NewComputed(),
		SelectAll:                  prop.NewSynced(false),
		SelectedFiles:              prop.NewComputed(),
		SelectionInfo:              prop.NewComputed(),
		RawDownloadDisabled:        prop.NewSynced(true),
		StartYear:                  prop.NewComputed(),
		EndYear:                    prop.NewComputed(),
		UseWeightmap:               prop.NewComputed(),
		AggregationInfo:            prop.NewComputed(),
		Citation:                   prop.NewComputed(),
		AggregatedDownloadFileName: prop.NewComputed(),
		ProdData:                   prop.NewCell(nil),
		ChoroData:                  prop.NewComputed(),
		SelectedCountry:            prop.NewSynced(nil),
		SelectedInfo:               prop.NewComputed(),
		SummaryInfo:                prop.NewComputed(),
		TimeSeriesInfo:             prop.NewComputed(),
		Colormap:                   prop.NewComputed(),
	}
	for _, cat := range cfg.Categories {
		m.RadioSelections = append(m.RadioSelections, Selection{Category: cat, Prop: prop.NewSynced(nil)})
	}
	return m
}

// Crop is the selection of the last category.
func (m *Model) Crop() (string, bool) {
	if len(m.RadioSelections) == 0 {
		return "", false
	}
	crop, ok := m.RadioSelections[len(m.RadioSelections)-1].Prop.Value().(string)
	return crop, ok && crop != ""
}

// dataFilePath joins every selection but the crop into the raw data file
// name. Unselected categories never reach it.
func (m *Model) dataFilePath(args prop.Args) (any, error) {
	segments := make([]string, 0, len(m.RadioSelections))
	for _, sel := range m.RadioSelections[:len(m.RadioSelections)-1] {
		v, err := prop.Arg[string](args, sel.Category.Key)
		if err != nil {
			return nil, err
		}
		segments = append(segments, v)
	}
	return strings.Join(segments, "_") + m.cfg.DataFileSuffix, nil
}

func (m *Model) selectedFile(path string) (any, error) {
	files, err := ListFiles(m.fs, m.cfg.RawDataDir)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if f == path {
			return path, nil
		}
	}
	return prop.Unset, nil
}

func (m *Model) selectedFiles(selectAll bool, selected, all []string) []string {
	names := selected
	if selectAll {
		names = all
	}
	out := make([]string, 0, len(names))
	for _, f := range names {
		out = append(out, filepath.Join(m.cfg.RawDataDir, f))
	}
	return out
}

func (m *Model) startYear(files []string) int {
	if info, ok := Combine(files); ok {
		return info.StartYear
	}
	return m.cfg.StartYear
}

func (m *Model) endYear(files []string) int {
	if info, ok := Combine(files); ok {
		return info.EndYear
	}
	return m.cfg.EndYear
}

func selectionInfo(start, end int, modelInfo map[string]any) map[string]any {
	info := make(map[string]any, len(modelInfo)+1)
	for k, v := range modelInfo {
		info[k] = v
	}
	info["Year Range"] = fmt.Sprintf("%d-%d", start, end)
	return info
}

// AggregationInfo is the aggregation option and the output column it
// produces. PrimaryVar is empty for options the config does not map.
type AggregationInfo struct {
	Option     string
	PrimaryVar string
}

func (m *Model) aggregationInfo(option string) AggregationInfo {
	primary, _ := m.cfg.PrimaryVar(option)
	return AggregationInfo{Option: option, PrimaryVar: primary}
}

// citation is the documentation download: the citation of the current
// selection followed by the references. Selections it cannot cite leave it
// unset.
func (m *Model) citation(args prop.Args) (any, error) {
	selection := make(map[string]string, len(m.RadioSelections))
	for _, sel := range m.RadioSelections {
		v, err := prop.Arg[string](args, sel.Category.Key)
		if err != nil {
			return nil, err
		}
		selection[sel.Category.Key] = v
	}
	start, err := prop.Arg[int](args, "start")
	if err != nil {
		return nil, err
	}
	end, err := prop.Arg[int](args, "end")
	if err != nil {
		return nil, err
	}
	agg, err := prop.Arg[AggregationInfo](args, "aggregation")
	if err != nil {
		return nil, err
	}

	info, err := NewCitationInfo(m.cfg, selection, start, end, agg.Option)
	if err != nil {
		return citationUnset(err)
	}
	text, err := Citation(info)
	if err != nil {
		return citationUnset(err)
	}
	return text + "\n\n" + m.cfg.References, nil
}

func citationUnset(err error) (any, error) {
	if errors.Is(err, ErrIncompleteSelection) || errors.Is(err, ErrUnknownOption) {
		return prop.Unset, nil
	}
	return nil, err
}

func aggregatedFileName(f string) string {
	return strings.TrimSuffix(f, filepath.Ext(f)) + ".csv"
}

func choroData(pd ProductionData, year int) any {
	if data, ok := pd[year]; ok {
		return data
	}
	return prop.Unset
}

func selectedInfo(country string, data map[string]float64) CountryInfo {
	return CountryInfo{Name: country, Production: round2(data[country])}
}

func summaryInfo(choro map[string]float64) (any, error) {
	values := make([]float64, 0, len(choro))
	for _, v := range choro {
		values = append(values, v)
	}
	s, err := Summarize(values)
	if errors.Is(err, ErrNotEnoughData) {
		return prop.Unset, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func colormap(choro map[string]float64) (any, error) {
	values := make([]float64, 0, len(choro))
	for _, v := range choro {
		values = append(values, v)
	}
	cm, err := NewColormap(values)
	if errors.Is(err, ErrNotEnoughData) {
		return prop.Unset, nil
	}
	if err != nil {
		return nil, err
	}
	return cm, nil
}

// ListFiles returns the sorted names of the regular files in dir, or nothing
// when dir does not exist.
func ListFiles(fs afero.Fs, dir string) ([]string, error) {
	exists, err := afero.DirExists(fs, dir)
	if err != nil || !exists {
		return nil, err
	}
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var names []string
	for _, fi := range infos {
		if fi.Mode().IsRegular() {
			names = append(names, fi.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
