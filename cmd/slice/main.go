// Command slice cuts tileset images into catalog tile objects. Each argument
// is a YAML job file; see slicer.Job for the format.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/mapeditor/logging"
	"github.com/milk9111/mapeditor/slicer"
)

func main() {
	level := flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] job.yaml...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := logging.New(os.Stderr, *level)
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := 0
	for _, path := range flag.Args() {
		jobLog := logger.With().Str("job", path).Logger()
		job, err := slicer.LoadJob(path)
		if err != nil {
			jobLog.Error().Err(err).Msg("failed to load job")
			failed++
			continue
		}
		if _, err := job.Run(jobLog); err != nil {
			jobLog.Error().Err(err).Msg("job failed")
			failed++
		}
	}
	if failed > 0 {
		logger.Fatal().Int("failed", failed).Msg("slicing finished with errors")
	}
}
