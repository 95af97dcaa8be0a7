package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kartikay23230/pubtator-kg/pkg/pubtator"
)

var (
	inputDir   = flag.String("input", ".", "Directory containing BioC XML files")
	outputFile = flag.String("output", "documents.json", "Path to write parsed documents")
	logLevel   = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	entries, err := os.ReadDir(*inputDir)
	if err != nil {
		logger.Fatalf("Failed to read input directory %s: %v", *inputDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			files = append(files, filepath.Join(*inputDir, entry.Name()))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		logger.Fatalf("No XML files found in %s", *inputDir)
	}
	logger.Infof("Found %d XML files in %s", len(files), *inputDir)

	var documents []pubtator.Document
	failed := 0
	for _, path := range files {
		docs, err := pubtator.ParseFile(path, logger)
		if err != nil {
			logger.Errorf("Error processing %s: %v", path, err)
			failed++
			continue
		}
		logger.Infof("Parsed %d documents from %s", len(docs), filepath.Base(path))
		documents = append(documents, docs...)
	}

	data, err := json.MarshalIndent(documents, "", "  ")
	if err != nil {
		logger.Fatalf("Failed to encode documents: %v", err)
	}
	if err := os.WriteFile(*outputFile, data, 0644); err != nil {
		logger.Fatalf("Failed to write %s: %v", *outputFile, err)
	}
	logger.Infof("Wrote %d documents to %s (%d files failed)", len(documents), *outputFile, failed)
}
