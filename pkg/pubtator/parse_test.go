package pubtator

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBioC = `<?xml version="1.0" encoding="UTF-8"?>
<collection>
  <source>PubTator</source>
  <document>
    <id>36000000</id>
    <infon key="journal">Lancet</infon>
    <passage>
      <infon key="section_type">TITLE</infon>
      <infon key="type">front</infon>
      <offset>0</offset>
      <text>Metformin in type 2 diabetes.</text>
      <annotation id="1">
        <infon key="identifier">MESH:D008687</infon>
        <infon key="type">Chemical</infon>
        <text>Metformin</text>
        <location offset="0" length="9"/>
      </annotation>
      <annotation id="2">
        <infon key="identifier">-</infon>
        <infon key="type">Disease</infon>
        <text>type 2 diabetes</text>
        <location offset="13" length="15"/>
      </annotation>
    </passage>
    <relation id="R1">
      <infon key="type">Association</infon>
      <node refid="1" role="Chemical"/>
      <node refid="2" role="Disease"/>
    </relation>
  </document>
  <document>
    <id>36000001</id>
    <passage>
      <infon key="section_type">ABSTRACT</infon>
      <offset>120</offset>
      <text>BRCA1 variants are linked to breast cancer.</text>
    </passage>
  </document>
</collection>`

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestParseDocuments(t *testing.T) {
	docs, err := ParseDocuments(strings.NewReader(sampleBioC), testLogger())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	doc := docs[0]
	assert.Equal(t, "36000000", doc.ID)
	assert.Equal(t, "36000000|None", doc.DocID)
	assert.Equal(t, "Lancet", doc.Infons["journal"])

	require.Len(t, doc.Passages, 1)
	passage := doc.Passages[0]
	assert.Equal(t, 0, passage.Offset)
	assert.Equal(t, "TITLE", passage.Infons["section_type"])
	assert.Equal(t, "Metformin in type 2 diabetes.", passage.Text)

	require.Len(t, passage.Annotations, 2)
	chem := passage.Annotations[0]
	assert.Equal(t, "Metformin", chem.Text)
	assert.Equal(t, "MESH:D008687", chem.Infons["identifier"])
	assert.Equal(t, "ncbi_mesh", chem.Infons["database"])
	assert.Equal(t, "D008687", chem.Infons["normalized_id"])
	assert.Equal(t, true, chem.Infons["valid"])
	assert.Equal(t, []string{"D008687"}, chem.Infons["normalized"])
	assert.Equal(t, "chemical", chem.Infons["biotype"])
	require.Len(t, chem.Locations, 1)
	assert.Equal(t, 0, chem.Locations[0].Offset)
	assert.Equal(t, 9, chem.Locations[0].Length)

	// "-" marks an unnormalized mention.
	unnorm := passage.Annotations[1]
	assert.Equal(t, false, unnorm.Infons["valid"])
	assert.Equal(t, []string{"-"}, unnorm.Infons["normalized"])

	require.Len(t, doc.Relations, 1)
	rel := doc.Relations[0]
	assert.Equal(t, "R1", rel.ID)
	assert.Equal(t, "Association", rel.Infons["type"])
	require.Len(t, rel.Nodes, 2)
	assert.Equal(t, "1", rel.Nodes[0].RefID)
	assert.Equal(t, "Chemical", rel.Nodes[0].Role)

	second := docs[1]
	assert.Equal(t, "36000001", second.ID)
	assert.Equal(t, 120, second.Passages[0].Offset)
	assert.Empty(t, second.Passages[0].Annotations)
}

func TestParseDocumentsOffsetAttribute(t *testing.T) {
	xml := `<collection><document><id>1</id>
		<passage offset="42"><text>Hello.</text></passage>
	</document></collection>`
	docs, err := ParseDocuments(strings.NewReader(xml), testLogger())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 42, docs[0].Passages[0].Offset)
}

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		identifier string
		database   string
		normalized string
	}{
		{"MESH:D008687", "ncbi_mesh", "D008687"},
		{"CHEBI:6801", "chebi", "6801"},
		{"NCBIGene:672", "ncbigene", "672"},
		{"-", "", "-"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			database, normalized := ParseIdentifier(tt.identifier)
			assert.Equal(t, tt.database, database)
			assert.Equal(t, tt.normalized, normalized)
		})
	}
}
