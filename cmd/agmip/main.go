package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/delaneyj/propgraph/agmip"
	"github.com/delaneyj/propgraph/prop"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	configKey    = "config"
	selectKey    = "select"
	selectAllKey = "select-all"
	optionKey    = "option"
	aggregateKey = "aggregate"
	yearKey      = "year"
	countryKey   = "country"
	verboseKey   = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "agmip",
		Usage: "Select, aggregate and inspect AgMIP crop model outputs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "YAML file merged over the built-in configuration",
			},
			&cli.StringSliceFlag{
				Name:  selectKey,
				Usage: "Option value for each data category, in order",
			},
			&cli.BoolFlag{
				Name:  selectAllKey,
				Usage: "Use every file of the selection",
			},
			&cli.StringFlag{
				Name:  optionKey,
				Usage: "Aggregation option",
			},
			&cli.BoolFlag{
				Name:  aggregateKey,
				Usage: "Run the aggregation script for the selection",
			},
			&cli.UintFlag{
				Name:  yearKey,
				Usage: "Year shown on the map after aggregating",
			},
			&cli.StringFlag{
				Name:  countryKey,
				Usage: "Country id to inspect",
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Development logging",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd.Bool(verboseKey))
	defer logger.Sync()

	cfg, err := agmip.LoadConfig(cmd.String(configKey))
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	app, err := agmip.New(cfg, fs, agmip.NewScriptAggregator(cfg, logger.Named("aggregator")), logger)
	if err != nil {
		return err
	}
	app.Controller.OnNotify(func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	})

	if err := app.Select(cmd.StringSlice(selectKey)...); err != nil {
		return err
	}
	if cmd.Bool(selectAllKey) {
		if err := app.View.SelectAll.Set(prop.ValueAccessor, true); err != nil {
			return err
		}
	}
	if option := cmd.String(optionKey); option != "" {
		if err := app.View.AggregationOptions.Set(prop.ValueAccessor, option); err != nil {
			return err
		}
	}
	if cmd.Bool(aggregateKey) {
		if err := app.Controller.Aggregate(ctx); err != nil {
			return err
		}
		if year := cmd.Uint(yearKey); year != 0 {
			if err := app.View.ZoomSlider.Set(prop.ValueAccessor, int(year)); err != nil {
				return err
			}
		}
	}
	if country := cmd.String(countryKey); country != "" {
		if err := app.Controller.SelectCountry(country); err != nil {
			return err
		}
	}

	renderState(os.Stdout, app, fs)
	return nil
}

func renderState(w io.Writer, app *agmip.App, fs afero.Fs) {
	m := app.Model

	tbl := table.NewWriter()
	tbl.SetTitle(app.Config.Title)
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"prop", "value"})

	for _, sel := range m.RadioSelections {
		tbl.AppendRow(table.Row{sel.Category.Label, show(sel.Prop.Value())})
	}
	tbl.AppendSeparator()

	rows := []struct {
		name  string
		value any
	}{
		{"data file path", m.DataFilePath.Value()},
		{"selected file", m.SelectedFile.Value()},
		{"selected files", m.SelectedFiles.Value()},
		{"start year", m.StartYear.Value()},
		{"end year", m.EndYear.Value()},
		{"use weight map", m.UseWeightmap.Value()},
		{"aggregated file", m.AggregatedDownloadFileName.Value()},
		{"selected country", m.SelectedCountry.Value()},
		{"country info", m.SelectedInfo.Value()},
	}
	for _, r := range rows {
		tbl.AppendRow(table.Row{r.name, show(r.value)})
	}

	if f, ok := m.SelectedFile.Value().(string); ok {
		if info, err := fs.Stat(filepath.Join(app.Config.RawDataDir, f)); err == nil {
			tbl.AppendRow(table.Row{"selected file size", humanize.Bytes(uint64(info.Size()))})
		}
	}

	if s, ok := m.SummaryInfo.Value().(agmip.Summary); ok {
		tbl.AppendSeparator()
		for _, stat := range s.Labels() {
			tbl.AppendRow(table.Row{stat.Label, humanize.CommafWithDigits(stat.Value, 2)})
		}
	}

	tbl.Render()
}

func show(v any) string {
	if prop.IsUnset(v) {
		return "-"
	}
	return fmt.Sprint(v)
}
