// Package relation holds the catalog of recognized relationship type
// labels and the validation of free-text labels against it.
package relation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// FallbackType is used when a relation label is empty or cannot be
// defaulted from its payload key.
const FallbackType = "RELATIONSHIP"

// DefaultTypes is the built-in catalog, used when no relation types
// file can be found.
var DefaultTypes = []string{
	"RELATED_GENETIC_DISORDER",
	"COMPLEX_IN_PATHWAY",
	"PROTEIN_DISEASE_ASSOCIATION",
	"DDI",
	"DRUG_PATHWAY_ASSOCIATION",
	"PPI",
	"DISEASE_PATHWAY_ASSOCIATION",
	"DRUG_TARGET",
	"DRUG_CARRIER",
	"DRUG_ENZYME",
	"DRUG_TRANSPORTER",
	"DISEASE_GENETIC_DISORDER",
	"DRUG_DISEASE_ASSOCIATION",
	"PROTEIN_PATHWAY_ASSOCIATION",
	"COMPLEX_TOP_LEVEL_PATHWAY",
	"DPI",
}

// DefaultPaths returns the candidate locations for the relation types
// file, checked in order.
func DefaultPaths() []string {
	paths := []string{
		"./relation_types.json",
		"../relation_types.json",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "thesis", "relation_types.json"))
	}
	return paths
}

// Catalog is the read-only set of known relation type labels. It is
// constructed once at startup and safe for concurrent reads.
type Catalog struct {
	types  []string
	logger *logrus.Logger
}

// NewCatalog builds a catalog from an explicit label list.
func NewCatalog(types []string, logger *logrus.Logger) *Catalog {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	owned := make([]string, len(types))
	copy(owned, types)
	return &Catalog{types: owned, logger: logger}
}

// Load reads the catalog from the first existing path. When none of the
// candidates exists or parsing fails, the built-in default list is
// used.
func Load(paths []string, logger *logrus.Logger) *Catalog {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if len(paths) == 0 {
		paths = DefaultPaths()
	}
	for _, path := range paths {
		types, err := readTypesFile(path)
		if err != nil {
			if !os.IsNotExist(errors.Cause(err)) {
				logger.WithError(err).Warnf("Could not load relation types from %s", path)
			}
			continue
		}
		logger.Infof("Loaded %d relation types from %s", len(types), path)
		return NewCatalog(types, logger)
	}
	logger.Warn("relation_types.json not found. Using default relation types.")
	return NewCatalog(DefaultTypes, logger)
}

func readTypesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read relation types")
	}
	var types []string
	if err := json.Unmarshal(data, &types); err != nil {
		return nil, errors.Wrapf(err, "parse relation types file %s", path)
	}
	return types, nil
}

// Validate normalizes a free-text relation label against the catalog.
// Exact matches pass through, case-insensitive matches return the
// catalog's canonical casing, and unknown labels are returned unchanged
// so novel relation types are tolerated rather than rejected.
func (c *Catalog) Validate(relType string) string {
	if strings.TrimSpace(relType) == "" {
		c.logger.Warn("Empty relation type provided")
		return FallbackType
	}
	for _, valid := range c.types {
		if valid == relType {
			return relType
		}
	}
	for _, valid := range c.types {
		if strings.EqualFold(valid, relType) {
			return valid
		}
	}
	c.logger.Warnf("Unknown relation type: %s. Using as-is.", relType)
	return relType
}

// Types returns a copy of the catalog's labels.
func (c *Catalog) Types() []string {
	out := make([]string, len(c.types))
	copy(out, c.types)
	return out
}
