package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"os"
	"time"

	"github.com/delaneyj/propgraph/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	genericParamCountKey = "count"
	outputKey            = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate typed combining function adapters for prop",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Highest number of named inputs to generate an adapter for",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "File to write",
				Value: "prop/fn_generated.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for prop started !")
	defer func() {
		log.Printf("Codegen for prop finished in %v", time.Since(start))
	}()

	genericParamCount := cmd.Uint(genericParamCountKey)
	out := cmd.String(outputKey)
	log.Printf("Adapters up to %d inputs -> %s", genericParamCount, out)

	contents, err := format.Source([]byte(templates.FnGen(int(genericParamCount))))
	if err != nil {
		return fmt.Errorf("formatting generated code: %w", err)
	}
	return os.WriteFile(out, contents, 0644)
}
