package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/kartikay23230/pubtator-kg/pkg/extraction"
	"github.com/kartikay23230/pubtator-kg/pkg/graph/relation"
	"github.com/kartikay23230/pubtator-kg/pkg/pubtator"
	"github.com/kartikay23230/pubtator-kg/services"
)

var (
	inputFile     = flag.String("input", "documents.json", "Path to parsed documents JSON file")
	outputFile    = flag.String("output", "analysis_results.json", "Path to write extraction results")
	reportFile    = flag.String("report", "", "Optional path to write a text report of the results")
	relationTypes = flag.String("relation-types", "", "Path to relation types JSON file (optional)")
	limit         = flag.Int("limit", 0, "Process at most this many documents (0 = all)")
	envFile       = flag.String("env", ".env", "Path to environment file")
	logLevel      = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
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

	if err := godotenv.Load(*envFile); err != nil {
		logger.Warnf("Error loading env file %s: %v", *envFile, err)
	}

	data, err := os.ReadFile(*inputFile)
	if err != nil {
		logger.Fatalf("Failed to read documents file %s: %v", *inputFile, err)
	}
	var documents []pubtator.Document
	if err := json.Unmarshal(data, &documents); err != nil {
		logger.Fatalf("Error parsing documents file: %v", err)
	}
	if *limit > 0 && len(documents) > *limit {
		documents = documents[:*limit]
	}
	logger.Infof("Analyzing %d documents", len(documents))

	var catalogPaths []string
	if *relationTypes != "" {
		catalogPaths = []string{*relationTypes}
	}
	catalog := relation.Load(catalogPaths, logger)

	structured := make([]pubtator.StructuredDocument, 0, len(documents))
	for _, doc := range documents {
		structured = append(structured, pubtator.Project(doc))
	}

	analyzer := extraction.NewAnalyzer(services.DefaultOpenAIClient(), services.Model(), logger)
	results := analyzer.AnalyzeDocuments(context.Background(), structured, catalog.Types())

	encoded, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		logger.Fatalf("Failed to encode results: %v", err)
	}
	if err := os.WriteFile(*outputFile, encoded, 0644); err != nil {
		logger.Fatalf("Failed to write %s: %v", *outputFile, err)
	}
	logger.Infof("Wrote %d analysis results to %s", len(results), *outputFile)

	if *reportFile != "" {
		report := extraction.FormatResults(results)
		if err := os.WriteFile(*reportFile, []byte(report), 0644); err != nil {
			logger.Fatalf("Failed to write report %s: %v", *reportFile, err)
		}
		logger.Infof("Wrote text report to %s", *reportFile)
	}
}
