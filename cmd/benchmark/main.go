package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/propgraph/prop"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var cpuProfile = flag.String("cpuprofile", "default.pgo", "write a cpu profile to this file, empty to disable")

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkComputed(false)

	benchmarkComputed(true)
	benchmarkSynced(true)
}

var (
	ww    = []int{1, 10, 100}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func addOne(v int) int {
	return v + 1
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, w, h int, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			fmt.Sprintf("propagate: %d * %d", w, h),
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

// w chains of h derived cells hanging off one cell, each chain observed at
// its tail.
func benchmarkComputed(shouldRender bool) {
	tbl := newTable("Computed chains")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			src := prop.NewCell(1)
			for i := 0; i < w; i++ {
				var last prop.Observable = src
				for j := 0; j < h; j++ {
					last = prop.NewComputed().
						From(last, prop.Name("v")).
						To(prop.Fn1("v", addOne))
				}
				if err := last.Observe(prop.ValueAccessor, func(prop.Change) error { return nil }); err != nil {
					log.Panic(err)
				}
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := src.SetValue(src.Value().(int) + 1); err != nil {
					log.Panic(err)
				}
				tach.AddTime(time.Since(start))
			}

			appendCalc(tbl, w, h, tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// w chains of h bridges, each transforming its input.
func benchmarkSynced(shouldRender bool) {
	tbl := newTable("Synced chains")

	inc := prop.Transform(func(v any) (any, error) {
		return v.(int) + 1, nil
	})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			src := prop.NewCell(1)
			for i := 0; i < w; i++ {
				var last prop.Observable = src
				for j := 0; j < h; j++ {
					last = prop.NewSynced(nil).From(last, inc)
				}
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := src.SetValue(src.Value().(int) + 1); err != nil {
					log.Panic(err)
				}
				tach.AddTime(time.Since(start))
			}

			appendCalc(tbl, w, h, tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
