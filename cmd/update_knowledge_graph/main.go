package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/kartikay23230/pubtator-kg/pkg/graph"
	"github.com/kartikay23230/pubtator-kg/pkg/graph/reconcile"
	"github.com/kartikay23230/pubtator-kg/pkg/graph/relation"
	"github.com/kartikay23230/pubtator-kg/pkg/graph/storage"
)

var (
	inputFile     = flag.String("input", "analysis_results.json", "Path to analysis results JSON file")
	relationTypes = flag.String("relation-types", "", "Path to relation types JSON file (optional)")
	sourceTag     = flag.String("source", reconcile.DefaultSourceTag, "Provenance tag recorded on created data")
	dryRun        = flag.Bool("dry-run", false, "Reconcile into an in-memory store instead of Neo4j")
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
		logger.Fatalf("Failed to read analysis file %s: %v", *inputFile, err)
	}
	var results []graph.ExtractionResult
	if err := json.Unmarshal(data, &results); err != nil {
		logger.Fatalf("Error parsing analysis file: %v", err)
	}
	logger.Infof("Loaded %d documents from %s", len(results), *inputFile)

	var catalogPaths []string
	if *relationTypes != "" {
		catalogPaths = []string{*relationTypes}
	}
	catalog := relation.Load(catalogPaths, logger)

	var store reconcile.GraphStore
	if *dryRun {
		logger.Info("Dry run: reconciling into an in-memory store")
		store = storage.NewMemoryStore()
	} else {
		neo4jStore, err := newNeo4jStoreFromEnv()
		if err != nil {
			logger.Fatalf("Failed to connect to Neo4j: %v", err)
		}
		defer neo4jStore.Close()
		logger.Info("Neo4j connection successful")
		store = neo4jStore
	}

	updater := reconcile.NewUpdaterWithSource(store, catalog, *sourceTag, logger)
	summary := updater.ProcessBatch(context.Background(), results)
	fmt.Print(summary.Render())
}

func newNeo4jStoreFromEnv() (*storage.Neo4jStore, error) {
	uri := envOr("NEO4J_URI", "bolt://localhost:7687")
	user := envOr("NEO4J_USER", "neo4j")
	password := os.Getenv("NEO4J_PASSWORD")
	database := envOr("NEO4J_DATABASE", "neo4j")
	return storage.NewNeo4jStore(uri, user, password, database)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
