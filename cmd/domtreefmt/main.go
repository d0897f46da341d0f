package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/flaviu22/go-domtree/domtree"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	configPath := flag.String("config", "", "path to a batch-manifest YAML file")
	flag.Parse()

	var err error
	if *configPath != "" {
		err = runBatch(logger, *configPath)
	} else {
		err = runFiles(logger, flag.Args())
	}

	if err != nil {
		logger.Error("domtreefmt failed", "error", err)
		os.Exit(1)
	}
}

// runFiles implements the default `domtreefmt <file>...` mode: parse each
// file and print its pretty-printed serialization to stdout.
func runFiles(logger *slog.Logger, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no input files given (pass paths, or -config manifest.yaml)")
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		doc := domtree.NewDocument()
		doc.Parse(data)

		if _, err := os.Stdout.Write(doc.Serialize()); err != nil {
			return fmt.Errorf("writing output for %s: %w", path, err)
		}
		logger.Info("formatted document", "input", path, "roots", len(doc.Tags()))
	}
	return nil
}

// runBatch implements `domtreefmt -config manifest.yaml`: every job reads
// its own input and writes its own pretty-printed output.
func runBatch(logger *slog.Logger, configPath string) error {
	manifest, err := loadManifest(configPath)
	if err != nil {
		return err
	}

	for _, job := range manifest.Jobs {
		data, err := os.ReadFile(job.Input)
		if err != nil {
			return fmt.Errorf("reading job input %s: %w", job.Input, err)
		}

		doc := domtree.NewDocument()
		doc.Parse(data)

		if err := os.WriteFile(job.Output, doc.Serialize(), 0o644); err != nil {
			return fmt.Errorf("writing job output %s: %w", job.Output, err)
		}
		logger.Info("formatted document", "input", job.Input, "output", job.Output, "roots", len(doc.Tags()))
	}
	return nil
}
