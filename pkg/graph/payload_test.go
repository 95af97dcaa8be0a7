package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestCleanAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		analysis string
		expected string
	}{
		{
			name:     "plain json",
			analysis: `{"diseases": []}`,
			expected: `{"diseases": []}`,
		},
		{
			name:     "fenced json",
			analysis: "```json\n{\"diseases\": []}\n```",
			expected: `{"diseases": []}`,
		},
		{
			name:     "fenced with surrounding whitespace",
			analysis: "  ```json\n{}\n```  ",
			expected: `{}`,
		},
		{
			name:     "empty",
			analysis: "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanAnalysis(tt.analysis))
		})
	}
}

func TestIsRelationshipKey(t *testing.T) {
	assert.True(t, IsRelationshipKey("drug_disease_relationships"))
	assert.True(t, IsRelationshipKey("some_relationship_list"))
	assert.True(t, IsRelationshipKey("Relationship_Records"))
	assert.False(t, IsRelationshipKey("diseases"))
	assert.False(t, IsRelationshipKey("medications"))
}

func TestExtractPair(t *testing.T) {
	tests := []struct {
		name      string
		record    string
		expected1 string
		expected2 string
	}{
		{
			name:      "drug disease pair",
			record:    `{"drug": "Metformin", "disease": "Diabetes", "kg_relation_type": "DRUG_DISEASE_ASSOCIATION"}`,
			expected1: "Metformin",
			expected2: "Diabetes",
		},
		{
			name:      "structured participants",
			record:    `{"drug": {"name": "Aspirin", "id": "MESH:D001241"}, "disease": {"name": "Stroke"}}`,
			expected1: "Aspirin",
			expected2: "Stroke",
		},
		{
			name:      "drug drug pair",
			record:    `{"drug1": "Warfarin", "drug2": "Aspirin"}`,
			expected1: "Warfarin",
			expected2: "Aspirin",
		},
		{
			name:      "pathway pairs with the non-pathway participant",
			record:    `{"protein": "TP53", "pathway": "Apoptosis"}`,
			expected1: "Apoptosis",
			expected2: "TP53",
		},
		{
			name:      "protein keyed record",
			record:    `{"protein_a": "BRCA1", "protein_b": "BARD1"}`,
			expected1: "BRCA1",
			expected2: "BARD1",
		},
		{
			name:      "generic fallback takes first two values",
			record:    `{"compound": "Caffeine", "target": "ADORA2A", "evidence": "sentence 3"}`,
			expected1: "Caffeine",
			expected2: "ADORA2A",
		},
		{
			name:      "fallback skips kg_relation_type and nulls",
			record:    `{"kg_relation_type": "DPI", "first": null, "compound": "Ibuprofen", "enzyme": "PTGS2"}`,
			expected1: "Ibuprofen",
			expected2: "PTGS2",
		},
		{
			name:      "single participant",
			record:    `{"drug": "Metformin"}`,
			expected1: "",
			expected2: "",
		},
		{
			name:      "not an object",
			record:    `["Metformin", "Diabetes"]`,
			expected1: "",
			expected2: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e1, e2 := ExtractPair(gjson.Parse(tt.record))
			assert.Equal(t, tt.expected1, e1)
			assert.Equal(t, tt.expected2, e2)
		})
	}
}
