package pubtator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	doc := Document{
		ID: "36000000",
		Passages: []Passage{
			{
				Infons: map[string]string{"section_type": "TITLE"},
				Text:   "Metformin in type 2 diabetes.",
				Annotations: []Annotation{
					{
						ID:   "1",
						Text: "Metformin",
						Infons: map[string]interface{}{
							"type":          "Chemical",
							"identifier":    "MESH:D008687",
							"normalized_id": "D008687",
							"biotype":       "chemical",
						},
					},
				},
			},
			{
				// No section_type: falls back to the type infon.
				Infons: map[string]string{"type": "abstract"},
				Text:   "Lowers glucose.",
			},
		},
		Relations: []Relation{
			{
				ID:     "R1",
				Infons: map[string]string{"type": "Association", "role1": "Chemical", "role2": "Disease", "score": "0.99"},
				Nodes:  []RelationNode{{RefID: "1", Role: "Chemical"}},
			},
		},
	}

	structured := Project(doc)
	assert.Equal(t, "36000000", structured.DocumentID)
	require.Len(t, structured.Passages, 2)
	assert.Equal(t, "TITLE", structured.Passages[0].Type)
	assert.Equal(t, "abstract", structured.Passages[1].Type)

	require.Len(t, structured.Passages[0].Annotations, 1)
	annotation := structured.Passages[0].Annotations[0]
	assert.Equal(t, "Metformin", annotation.Text)
	assert.Equal(t, "Chemical", annotation.Type)
	assert.Equal(t, "MESH:D008687", annotation.Identifier)
	assert.Equal(t, "D008687", annotation.NormalizedID)
	assert.Equal(t, "chemical", annotation.Biotype)

	require.Len(t, structured.Relations, 1)
	rel := structured.Relations[0]
	assert.Equal(t, "Association", rel.Type)
	assert.Equal(t, "Chemical", rel.Role1)
	assert.Equal(t, "0.99", rel.Score)
}
