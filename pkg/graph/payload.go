package graph

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// NotSpecified is the sentinel the extraction model emits for absent
// values. It is never written to the graph.
const NotSpecified = "Not specified"

var codeFence = regexp.MustCompile("```json\n|\n```")

// CleanAnalysis strips markdown code-fence markers from a raw analysis
// string so the remainder can be parsed as JSON.
func CleanAnalysis(analysis string) string {
	if analysis == "" {
		return ""
	}
	return codeFence.ReplaceAllString(strings.TrimSpace(analysis), "")
}

// EntityListKey binds a payload key to the coarse entity type its
// entries carry. The model is inconsistent about key names, so several
// aliases map to the same type.
type EntityListKey struct {
	Key        string
	EntityType string
}

// EntityListKeys enumerates every recognized entity-list key, in the
// order they are processed.
var EntityListKeys = []EntityListKey{
	{"medications", "drug"},
	{"medication_entities", "drug"},
	{"diseases", "disease"},
	{"disease_entities", "disease"},
	{"genes", "gene"},
	{"genes_proteins", "gene"},
	{"gene_protein_entities", "gene"},
}

// RelationshipKeyDefaults maps a relationship-list key to the default
// relation type used when a record carries no explicit kg_relation_type.
var RelationshipKeyDefaults = map[string]string{
	"drug_disease_relationships":      "DRUG_DISEASE_ASSOCIATION",
	"drug_gene_relationships":         "DPI",
	"gene_disease_relationships":      "PROTEIN_DISEASE_ASSOCIATION",
	"protein_disease_relationships":   "PROTEIN_DISEASE_ASSOCIATION",
	"drug_drug_relationships":         "DDI",
	"drug_interaction_relationships":  "DDI",
	"protein_protein_relationships":   "PPI",
	"gene_gene_relationships":         "PPI",
	"drug_target_relationships":       "DRUG_TARGET",
	"drug_carrier_relationships":      "DRUG_CARRIER",
	"drug_enzyme_relationships":       "DRUG_ENZYME",
	"drug_transporter_relationships":  "DRUG_TRANSPORTER",
	"drug_pathway_relationships":      "DRUG_PATHWAY_ASSOCIATION",
	"disease_pathway_relationships":   "DISEASE_PATHWAY_ASSOCIATION",
	"protein_pathway_relationships":   "PROTEIN_PATHWAY_ASSOCIATION",
	"genetic_disorder_relationships":  "RELATED_GENETIC_DISORDER",
	"disease_genetic_relationships":   "DISEASE_GENETIC_DISORDER",
	"pathway_complex_relationships":   "COMPLEX_IN_PATHWAY",
	"top_level_pathway_relationships": "COMPLEX_TOP_LEVEL_PATHWAY",
}

// IsRelationshipKey reports whether a payload key holds a relationship
// list.
func IsRelationshipKey(key string) bool {
	return strings.HasSuffix(key, "_relationships") ||
		strings.Contains(strings.ToLower(key), "relationship")
}

// participantName normalizes a relationship participant, which may be a
// structured record with a name field or a bare string, to a trimmed
// string.
func participantName(v gjson.Result) string {
	if v.IsObject() {
		if name := v.Get("name"); name.Exists() {
			return strings.TrimSpace(name.String())
		}
	}
	return strings.TrimSpace(v.String())
}

// knownPairs are the key pairs checked first when extracting the two
// participants of a relationship record, in priority order.
var knownPairs = [][2]string{
	{"drug", "disease"},
	{"drug", "gene"},
	{"gene", "disease"},
	{"protein", "disease"},
	{"drug", "protein"},
	{"drug1", "drug2"},
}

// ExtractPair identifies the two participant names of a loosely-typed
// relationship record. It checks known key pairs first, then pathway
// records, then protein-keyed records, and finally falls back to the
// first two non-null values. Returns empty strings when fewer than two
// participants can be identified.
func ExtractPair(rel gjson.Result) (string, string) {
	if !rel.IsObject() {
		return "", ""
	}

	for _, pair := range knownPairs {
		first, second := rel.Get(pair[0]), rel.Get(pair[1])
		if first.Exists() && second.Exists() {
			return participantName(first), participantName(second)
		}
	}

	if pathway := rel.Get("pathway"); pathway.Exists() {
		var other gjson.Result
		rel.ForEach(func(key, value gjson.Result) bool {
			if key.String() == "pathway" || key.String() == "kg_relation_type" {
				return true
			}
			other = value
			return false
		})
		if other.Exists() {
			return participantName(pathway), participantName(other)
		}
		return "", ""
	}

	// Records keyed protein_a/protein_b and the like.
	var proteins []gjson.Result
	rel.ForEach(func(key, value gjson.Result) bool {
		if key.String() != "kg_relation_type" &&
			strings.Contains(strings.ToLower(key.String()), "protein") {
			proteins = append(proteins, value)
		}
		return true
	})
	if len(proteins) == 2 {
		return participantName(proteins[0]), participantName(proteins[1])
	}

	// Generic fallback: the first two non-null values in record order.
	var found []string
	rel.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "kg_relation_type" || value.Type == gjson.Null {
			return true
		}
		if name := participantName(value); name != "" {
			found = append(found, name)
		}
		return len(found) < 2
	})
	if len(found) >= 2 {
		return found[0], found[1]
	}
	return "", ""
}
