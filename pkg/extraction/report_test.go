package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kartikay23230/pubtator-kg/pkg/graph"
)

func TestFormatResult(t *testing.T) {
	result := graph.ExtractionResult{
		DocumentID: "36000000",
		Analysis: `{
			"medications": [{"name": "Metformin", "id": "MESH:D008687"}],
			"diseases": [{"name": "Type 2 Diabetes"}],
			"drug_disease_relationships": [
				{"drug": "Metformin", "disease": "Type 2 Diabetes", "kg_relation_type": "DRUG_DISEASE_ASSOCIATION"}
			]
		}`,
	}

	out := FormatResult(result)
	assert.Contains(t, out, "DOCUMENT ID: 36000000")
	assert.Contains(t, out, "MEDICATIONS (1)")
	assert.Contains(t, out, "NAME: Metformin")
	assert.Contains(t, out, "ID:   MESH:D008687")
	assert.Contains(t, out, "DISEASES (1)")
	assert.Contains(t, out, "TYPE: Not specified")
	assert.Contains(t, out, "DRUG-DISEASE RELATIONSHIPS (1)")
	assert.Contains(t, out, "KG RELATION: DRUG_DISEASE_ASSOCIATION")
	assert.Contains(t, out, "ENTITY 1: Metformin")
	assert.Contains(t, out, "ENTITY 2: Type 2 Diabetes")
}

func TestFormatResultInvalidPayload(t *testing.T) {
	result := graph.ExtractionResult{DocumentID: "1", Analysis: "Error: rate limited"}
	assert.Equal(t, "Error parsing JSON for document 1", FormatResult(result))
}
