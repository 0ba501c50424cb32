// Package agmip is the AgMIP crop data aggregation tool: data selection,
// aggregation and map visualization expressed as a graph of props.
package agmip

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// App is the application context. Everything shares one Config, Logger and
// file system.
type App struct {
	Config     *Config
	Logger     *zap.Logger
	Model      *Model
	View       *View
	Controller *Controller
}

func New(cfg *Config, fs afero.Fs, agg Aggregator, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	view, err := NewView(cfg, fs, logger)
	if err != nil {
		return nil, err
	}
	model := NewModel(cfg, fs)
	app := &App{
		Config:     cfg,
		Logger:     logger,
		Model:      model,
		View:       view,
		Controller: NewController(cfg, fs, model, view, agg, logger.Named("controller")),
	}
	if err := app.Controller.Wire(); err != nil {
		return nil, err
	}
	logger.Info("data load completed", zap.Int("categories", len(cfg.Categories)))
	return app, nil
}

// Select chooses value in every category, in order.
func (a *App) Select(values ...string) error {
	for i, v := range values {
		if i >= len(a.View.Radios) {
			break
		}
		if err := a.View.Radios[i].Set("value", v); err != nil {
			return err
		}
	}
	return nil
}
