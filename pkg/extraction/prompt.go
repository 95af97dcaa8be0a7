// Package extraction turns normalized documents into extraction
// requests against a chat model and collects the semi-structured
// results the reconciliation engine consumes.
package extraction

import (
	"fmt"
	"strings"

	"github.com/kartikay23230/pubtator-kg/pkg/pubtator"
)

// SystemMessage frames the assistant for every extraction request.
const SystemMessage = "You are a biomedical entity and relationship extraction assistant specialized in knowledge graph integration."

// BuildPrompt composes the extraction request for one document: the
// passage text, the pre-annotated entities, the raw relation mentions,
// and the instructions binding relationship records to the catalog's
// relation types.
func BuildPrompt(doc pubtator.StructuredDocument, relationTypes []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\nExtract all biomedical entities and relationships from the following PubTator data:\n\n")
	fmt.Fprintf(&b, "Document ID: %s\n\nTEXT PASSAGES:\n", doc.DocumentID)

	for _, passage := range doc.Passages {
		if passage.Text == "" {
			continue
		}
		fmt.Fprintf(&b, "\n[%s]: %s\n", passage.Type, passage.Text)
	}

	fmt.Fprintf(&b, "\nANNOTATED ENTITIES:\n")
	for _, passage := range doc.Passages {
		for _, annotation := range passage.Annotations {
			if annotation.Text == "" {
				continue
			}
			fmt.Fprintf(&b, "- %s (Type: %s, ID: %s)\n", annotation.Text, annotation.Type, annotation.Identifier)
		}
	}

	fmt.Fprintf(&b, "\nRELATIONSHIPS:\n")
	for _, relation := range doc.Relations {
		fmt.Fprintf(&b, "- %s between %s and %s (Score: %s)\n",
			relation.Type, relation.Role1, relation.Role2, relation.Score)
	}

	fmt.Fprintf(&b, `
Extract and organize the following:
1. All medication entities
2. All disease entities
3. All gene/protein entities
4. Drug-disease relationships
5. Drug-gene relationships
6. Gene-disease relationships

IMPORTANT: For each relationship, assign one of the following standardized relation types from the knowledge graph if applicable:
`)
	for _, relType := range relationTypes {
		fmt.Fprintf(&b, "- %s\n", relType)
	}
	fmt.Fprintf(&b, `
If none of these existing relations match exactly, you may suggest a new relation name.

Return as JSON with these sections. For each relationship, include a "kg_relation_type" field with the appropriate relation type from the list above.
`)

	return b.String()
}
