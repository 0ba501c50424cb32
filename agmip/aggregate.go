package agmip

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// ScriptAggregator runs the R aggregation script and returns the CSV it
// writes.
type ScriptAggregator struct {
	Command string // interpreter, Rscript when empty
	Script  string
	Logger  *zap.Logger
}

func NewScriptAggregator(cfg *Config, logger *zap.Logger) *ScriptAggregator {
	return &ScriptAggregator{
		Script: filepath.Join(cfg.ScriptDir, "do.r"),
		Logger: logger,
	}
}

func (a *ScriptAggregator) Aggregate(ctx context.Context, req AggregationRequest) ([]byte, error) {
	command := a.Command
	if command == "" {
		command = "Rscript"
	}
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dir, err := os.MkdirTemp("", "agmip-aggregate-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	out := filepath.Join(dir, "out.csv")

	cmd := exec.CommandContext(ctx, command, a.Script, req.InputFile, req.RegionMap, req.Crop, "area", out)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	logger.Info("running aggregation script", zap.Strings("args", cmd.Args))
	if err := cmd.Run(); err != nil {
		logger.Error("aggregation script failed", zap.Error(err), zap.String("stderr", stderr.String()))
		return nil, fmt.Errorf("%s: %w: %s", command, err, stderr.String())
	}
	logger.Info("aggregation script completed", zap.String("stdout", stdout.String()))

	return os.ReadFile(out)
}

// ReadProductionCSV reads time, id and the primary variable column of an
// aggregation result. Values that do not parse, like NA, read as zero.
func ReadProductionCSV(r io.Reader, primaryVar string) (ProductionData, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, name := range []string{"time", "id", primaryVar} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	data := ProductionData{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return data, nil
		}
		if err != nil {
			return nil, err
		}
		year, err := strconv.Atoi(row[col["time"]])
		if err != nil {
			return nil, fmt.Errorf("bad year %q: %w", row[col["time"]], err)
		}
		value, err := strconv.ParseFloat(row[col[primaryVar]], 64)
		if err != nil {
			value = 0
		}
		if data[year] == nil {
			data[year] = map[string]float64{}
		}
		data[year][row[col["id"]]] = value
	}
}
