// Package pubtator parses PubTator-style BioC XML into normalized
// document records and projects them into the compact form the
// extraction requester prompts with.
package pubtator

// Document is one normalized annotated document.
type Document struct {
	DocID     string                 `json:"_id"`
	ID        string                 `json:"id"`
	Infons    map[string]interface{} `json:"infons"`
	Passages  []Passage              `json:"passages"`
	Relations []Relation             `json:"relations"`
}

// Passage is a text span with typed entity mentions.
type Passage struct {
	Infons      map[string]string `json:"infons"`
	Offset      int               `json:"offset"`
	Text        string            `json:"text"`
	Annotations []Annotation      `json:"annotations"`
}

// Annotation is a typed entity mention with external identifiers.
type Annotation struct {
	ID        string                 `json:"id"`
	Infons    map[string]interface{} `json:"infons"`
	Text      string                 `json:"text"`
	Locations []Location             `json:"locations"`
}

// Location is a mention's character span.
type Location struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// Relation is a raw relation mention between annotated entities.
type Relation struct {
	ID     string            `json:"id"`
	Infons map[string]string `json:"infons"`
	Nodes  []RelationNode    `json:"nodes"`
}

// RelationNode references an annotation playing a role in a relation.
type RelationNode struct {
	RefID string `json:"ref_id"`
	Role  string `json:"role"`
}

// StructuredDocument is the compact projection sent to the extraction
// model: passage text plus the fields useful for entity grounding.
type StructuredDocument struct {
	DocumentID string               `json:"document_id"`
	Passages   []StructuredPassage  `json:"passages"`
	Relations  []StructuredRelation `json:"relations"`
}

// StructuredPassage is a prompt-ready passage projection.
type StructuredPassage struct {
	Text        string                 `json:"text"`
	Type        string                 `json:"type"`
	Annotations []StructuredAnnotation `json:"annotations"`
}

// StructuredAnnotation is a prompt-ready entity mention projection.
type StructuredAnnotation struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Type         string `json:"type"`
	Identifier   string `json:"identifier"`
	NormalizedID string `json:"normalized_id"`
	Biotype      string `json:"biotype"`
}

// StructuredRelation is a prompt-ready relation mention projection.
type StructuredRelation struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Role1 string         `json:"role1"`
	Role2 string         `json:"role2"`
	Score string         `json:"score"`
	Nodes []RelationNode `json:"nodes"`
}
