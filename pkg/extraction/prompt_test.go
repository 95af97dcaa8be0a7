package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kartikay23230/pubtator-kg/pkg/pubtator"
)

func sampleDocument() pubtator.StructuredDocument {
	return pubtator.StructuredDocument{
		DocumentID: "36000000",
		Passages: []pubtator.StructuredPassage{
			{
				Type: "TITLE",
				Text: "Metformin in type 2 diabetes.",
				Annotations: []pubtator.StructuredAnnotation{
					{ID: "1", Text: "Metformin", Type: "Chemical", Identifier: "MESH:D008687"},
					{ID: "2", Text: "type 2 diabetes", Type: "Disease", Identifier: "MESH:D003924"},
				},
			},
			{Type: "ABSTRACT", Text: ""},
		},
		Relations: []pubtator.StructuredRelation{
			{ID: "R1", Type: "Association", Role1: "Chemical", Role2: "Disease", Score: "0.99"},
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleDocument(), []string{"DRUG_DISEASE_ASSOCIATION", "DPI"})

	assert.Contains(t, prompt, "Document ID: 36000000")
	assert.Contains(t, prompt, "[TITLE]: Metformin in type 2 diabetes.")
	assert.Contains(t, prompt, "- Metformin (Type: Chemical, ID: MESH:D008687)")
	assert.Contains(t, prompt, "- Association between Chemical and Disease (Score: 0.99)")
	assert.Contains(t, prompt, "- DRUG_DISEASE_ASSOCIATION\n")
	assert.Contains(t, prompt, "- DPI\n")
	assert.Contains(t, prompt, `"kg_relation_type"`)

	// Empty passages are not rendered.
	assert.NotContains(t, prompt, "[ABSTRACT]")
}
