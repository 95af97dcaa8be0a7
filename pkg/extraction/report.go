package extraction

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/kartikay23230/pubtator-kg/pkg/graph"
)

// entitySections pairs a report heading with the payload keys that may
// hold its entities.
var entitySections = []struct {
	title string
	keys  []string
}{
	{"MEDICATIONS", []string{"medications", "medication_entities"}},
	{"DISEASES", []string{"diseases", "disease_entities"}},
	{"GENES/PROTEINS", []string{"genes", "genes_proteins", "gene_protein_entities"}},
}

var relationshipSections = []struct {
	title string
	key   string
}{
	{"DRUG-DISEASE RELATIONSHIPS", "drug_disease_relationships"},
	{"DRUG-GENE RELATIONSHIPS", "drug_gene_relationships"},
	{"GENE-DISEASE RELATIONSHIPS", "gene_disease_relationships"},
}

func sectionHeader(title string, count int) string {
	header := fmt.Sprintf("== %s (%d) ", title, count)
	if len(header) < 60 {
		header += strings.Repeat("=", 60-len(header))
	}
	return header
}

func fieldOr(v gjson.Result, fallback string) string {
	if v.Exists() && v.String() != "" {
		return v.String()
	}
	return fallback
}

func formatEntity(b *strings.Builder, entity gjson.Result) {
	fmt.Fprintf(b, "  NAME: %s\n", fieldOr(entity.Get("name"), "Unknown"))
	fmt.Fprintf(b, "  TYPE: %s\n", fieldOr(entity.Get("type"), graph.NotSpecified))
	fmt.Fprintf(b, "  ID:   %s\n\n", fieldOr(entity.Get("id"), graph.NotSpecified))
}

func formatRelationship(b *strings.Builder, rel gjson.Result, relType string) {
	fmt.Fprintf(b, "  RELATIONSHIP TYPE: %s\n", relType)
	fmt.Fprintf(b, "  KG RELATION: %s\n", fieldOr(rel.Get("kg_relation_type"), graph.NotSpecified))
	name1, name2 := graph.ExtractPair(rel)
	if name1 != "" && name2 != "" {
		fmt.Fprintf(b, "  ENTITY 1: %s\n", name1)
		fmt.Fprintf(b, "  ENTITY 2: %s\n", name2)
	}
	if score := rel.Get("score"); score.Exists() {
		fmt.Fprintf(b, "  SCORE: %s\n", score.String())
	}
	b.WriteString("\n")
}

// FormatResult renders one document's analysis payload as readable
// text; parse failures come back as an error line instead of a report.
func FormatResult(result graph.ExtractionResult) string {
	cleaned := graph.CleanAnalysis(result.Analysis)
	if !gjson.Valid(cleaned) {
		return fmt.Sprintf("Error parsing JSON for document %s", result.DocumentID)
	}
	payload := gjson.Parse(cleaned)

	var b strings.Builder
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(&b, "\n%s\nDOCUMENT ID: %s\n%s\n", rule, result.DocumentID, rule)

	for _, section := range entitySections {
		for _, key := range section.keys {
			entities := payload.Get(key)
			if !entities.IsArray() || len(entities.Array()) == 0 {
				continue
			}
			fmt.Fprintf(&b, "%s\n", sectionHeader(section.title, len(entities.Array())))
			entities.ForEach(func(_, entity gjson.Result) bool {
				formatEntity(&b, entity)
				return true
			})
			break
		}
	}

	for _, section := range relationshipSections {
		rels := payload.Get(section.key)
		if !rels.IsArray() || len(rels.Array()) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s\n", sectionHeader(section.title, len(rels.Array())))
		rels.ForEach(func(_, rel gjson.Result) bool {
			formatRelationship(&b, rel, section.title)
			return true
		})
	}

	return b.String()
}

// FormatResults renders a whole batch of analysis results.
func FormatResults(results []graph.ExtractionResult) string {
	sections := make([]string, 0, len(results))
	for _, result := range results {
		sections = append(sections, FormatResult(result))
	}
	return strings.Join(sections, "\n")
}
