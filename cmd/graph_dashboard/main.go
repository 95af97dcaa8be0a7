package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/kartikay23230/pubtator-kg/pkg/graph/storage"
	"github.com/kartikay23230/pubtator-kg/pkg/graph/visualizer"
)

var (
	mode        = flag.String("mode", "snapshot", "Dashboard mode: snapshot, compare, neighborhood, reltypes, list")
	name        = flag.String("name", "", "Snapshot name (snapshot mode) or entity name (neighborhood mode)")
	before      = flag.String("before", "", "Name of the before snapshot (compare mode)")
	after       = flag.String("after", "", "Name of the after snapshot (compare mode)")
	hops        = flag.Int("hops", 1, "Number of hops for neighborhood projection (1-3)")
	limit       = flag.Int("limit", 500, "Maximum number of nodes in a projection")
	output      = flag.String("output", "graph.html", "Path to write the HTML visualization")
	snapshotDir = flag.String("snapshot-dir", storage.DefaultSnapshotDir(), "Directory holding graph snapshots")
	typesFile   = flag.String("types-file", "", "Write relation types as JSON to this file (reltypes mode)")
	envFile     = flag.String("env", ".env", "Path to environment file")
	logLevel    = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
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

	switch *mode {
	case "snapshot":
		runSnapshot(logger)
	case "compare":
		runCompare(logger)
	case "neighborhood":
		runNeighborhood(logger)
	case "reltypes":
		runRelTypes(logger)
	case "list":
		runList(logger)
	default:
		logger.Fatalf("Unknown mode %q", *mode)
	}
}

func runSnapshot(logger *logrus.Logger) {
	if *name == "" {
		logger.Fatal("Snapshot mode requires -name")
	}
	store := connect(logger)
	defer store.Close()

	projection, err := store.Project(context.Background(), *limit)
	if err != nil {
		logger.Fatalf("Failed to project graph: %v", err)
	}

	snapshots, err := storage.NewSnapshotStore(*snapshotDir)
	if err != nil {
		logger.Fatalf("Failed to open snapshot store: %v", err)
	}
	snapshot, err := snapshots.Save(*name, projection)
	if err != nil {
		logger.Fatalf("Failed to save snapshot: %v", err)
	}
	logger.Infof("Saved snapshot %q (%d nodes, %d relationships)", snapshot.Name, snapshot.NodeCount, snapshot.RelCount)

	viz := visualizer.NewD3Visualizer(*output)
	if err := viz.Visualize("Knowledge Graph: "+*name, projection); err != nil {
		logger.Fatalf("Failed to render visualization: %v", err)
	}
	logger.Infof("Wrote visualization to %s", *output)
}

func runCompare(logger *logrus.Logger) {
	if *before == "" || *after == "" {
		logger.Fatal("Compare mode requires -before and -after")
	}
	snapshots, err := storage.NewSnapshotStore(*snapshotDir)
	if err != nil {
		logger.Fatalf("Failed to open snapshot store: %v", err)
	}
	first, err := snapshots.Load(*before)
	if err != nil {
		logger.Fatalf("Failed to load snapshot %q: %v", *before, err)
	}
	second, err := snapshots.Load(*after)
	if err != nil {
		logger.Fatalf("Failed to load snapshot %q: %v", *after, err)
	}

	nodeDelta := second.NodeCount - first.NodeCount
	relDelta := second.RelCount - first.RelCount
	logger.Infof("Nodes: %d -> %d (%+d), relationships: %d -> %d (%+d)",
		first.NodeCount, second.NodeCount, nodeDelta,
		first.RelCount, second.RelCount, relDelta)

	viz := visualizer.NewD3Visualizer(*output)
	title := fmt.Sprintf("Comparison: %s vs %s", *before, *after)
	if err := viz.VisualizeComparison(title, first.Projection, second.Projection); err != nil {
		logger.Fatalf("Failed to render comparison: %v", err)
	}
	logger.Infof("Wrote comparison to %s", *output)
}

func runNeighborhood(logger *logrus.Logger) {
	if *name == "" {
		logger.Fatal("Neighborhood mode requires -name")
	}
	store := connect(logger)
	defer store.Close()

	projection, err := store.ProjectNeighborhood(context.Background(), *name, *hops, *limit)
	if err != nil {
		logger.Fatalf("Failed to project neighborhood: %v", err)
	}
	if len(projection.Nodes) == 0 {
		logger.Fatalf("No entity found matching %q", *name)
	}

	viz := visualizer.NewD3Visualizer(*output)
	title := fmt.Sprintf("Neighborhood of %s (%d hops)", *name, *hops)
	if err := viz.Visualize(title, projection); err != nil {
		logger.Fatalf("Failed to render visualization: %v", err)
	}
	logger.Infof("Wrote %d-node neighborhood to %s", len(projection.Nodes), *output)
}

func runRelTypes(logger *logrus.Logger) {
	store := connect(logger)
	defer store.Close()

	types, err := store.DistinctRelationTypes(context.Background())
	if err != nil {
		logger.Fatalf("Failed to query relation types: %v", err)
	}
	for _, t := range types {
		fmt.Println(t)
	}
	logger.Infof("Found %d distinct relation types", len(types))

	if *typesFile != "" {
		data, err := json.MarshalIndent(types, "", "  ")
		if err != nil {
			logger.Fatalf("Failed to encode relation types: %v", err)
		}
		if err := os.WriteFile(*typesFile, data, 0644); err != nil {
			logger.Fatalf("Failed to write %s: %v", *typesFile, err)
		}
		logger.Infof("Wrote relation types to %s", *typesFile)
	}
}

func runList(logger *logrus.Logger) {
	snapshots, err := storage.NewSnapshotStore(*snapshotDir)
	if err != nil {
		logger.Fatalf("Failed to open snapshot store: %v", err)
	}
	infos, err := snapshots.List()
	if err != nil {
		logger.Fatalf("Failed to list snapshots: %v", err)
	}
	for _, info := range infos {
		fmt.Printf("%s\t%s\n", info.Name, info.Timestamp.Format("2006-01-02 15:04:05"))
	}
	if len(infos) == 0 {
		logger.Info("No snapshots found")
	}
}

func connect(logger *logrus.Logger) *storage.Neo4jStore {
	uri := envOr("NEO4J_URI", "bolt://localhost:7687")
	user := envOr("NEO4J_USER", "neo4j")
	password := os.Getenv("NEO4J_PASSWORD")
	database := envOr("NEO4J_DATABASE", "neo4j")
	store, err := storage.NewNeo4jStore(uri, user, password, database)
	if err != nil {
		logger.Fatalf("Failed to connect to Neo4j: %v", err)
	}
	return store
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
