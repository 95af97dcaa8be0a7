package pubtator

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type xmlInfon struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type xmlLocation struct {
	Offset string `xml:"offset,attr"`
	Length string `xml:"length,attr"`
}

type xmlAnnotation struct {
	ID        string        `xml:"id,attr"`
	Infons    []xmlInfon    `xml:"infon"`
	Text      string        `xml:"text"`
	Locations []xmlLocation `xml:"location"`
}

type xmlPassage struct {
	OffsetAttr  string          `xml:"offset,attr"`
	OffsetElem  string          `xml:"offset"`
	Infons      []xmlInfon      `xml:"infon"`
	Text        string          `xml:"text"`
	Annotations []xmlAnnotation `xml:"annotation"`
}

type xmlRelationNode struct {
	RefID string `xml:"refid,attr"`
	Role  string `xml:"role,attr"`
}

type xmlRelation struct {
	ID     string            `xml:"id,attr"`
	Infons []xmlInfon        `xml:"infon"`
	Nodes  []xmlRelationNode `xml:"node"`
}

type xmlDocument struct {
	ID        string        `xml:"id"`
	Infons    []xmlInfon    `xml:"infon"`
	Passages  []xmlPassage  `xml:"passage"`
	Relations []xmlRelation `xml:"relation"`
}

// identifierDatabases maps identifier prefixes to canonical database
// names; unknown prefixes are lower-cased as-is.
var identifierDatabases = map[string]string{
	"MESH":  "ncbi_mesh",
	"CHEBI": "chebi",
}

// ParseIdentifier splits an identifier like "MESH:D064420" into its
// database name and normalized id.
func ParseIdentifier(identifier string) (string, string) {
	if identifier != "" && strings.Contains(identifier, ":") {
		parts := strings.SplitN(identifier, ":", 2)
		database, ok := identifierDatabases[parts[0]]
		if !ok {
			database = strings.ToLower(parts[0])
		}
		return database, parts[1]
	}
	return "", identifier
}

// convertInfonValue converts specific infon keys to richer types: valid
// becomes a boolean, normalized a list. Other keys stay strings.
func convertInfonValue(key, value string) interface{} {
	switch key {
	case "valid":
		return strings.ToLower(value) == "true"
	case "normalized":
		if value == "" {
			return []string{}
		}
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return value
}

// ParseDocuments streams <document> elements out of a BioC XML reader.
// Per-document decode failures are logged and skipped so one bad
// record does not lose the rest of the file.
func ParseDocuments(r io.Reader, logger *logrus.Logger) ([]Document, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	decoder := xml.NewDecoder(r)
	var docs []Document
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return docs, errors.Wrap(err, "XML syntax error")
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "document" {
			continue
		}
		var raw xmlDocument
		if err := decoder.DecodeElement(&raw, &start); err != nil {
			logger.WithError(err).Error("Error processing a document")
			continue
		}
		docs = append(docs, convertDocument(raw))
	}
	return docs, nil
}

// ParseFile parses every document in a BioC XML file.
func ParseFile(path string, logger *logrus.Logger) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return ParseDocuments(f, logger)
}

func convertDocument(raw xmlDocument) Document {
	doc := Document{
		DocID:     raw.ID + "|None",
		ID:        raw.ID,
		Infons:    make(map[string]interface{}),
		Passages:  make([]Passage, 0, len(raw.Passages)),
		Relations: make([]Relation, 0, len(raw.Relations)),
	}
	for _, infon := range raw.Infons {
		doc.Infons[infon.Key] = convertInfonValue(infon.Key, strings.TrimSpace(infon.Value))
	}
	for _, passage := range raw.Passages {
		doc.Passages = append(doc.Passages, convertPassage(passage))
	}
	for _, relation := range raw.Relations {
		doc.Relations = append(doc.Relations, convertRelation(relation))
	}
	return doc
}

func convertPassage(raw xmlPassage) Passage {
	passage := Passage{
		Infons:      make(map[string]string),
		Offset:      parseOffset(raw.OffsetAttr, raw.OffsetElem),
		Text:        strings.TrimSpace(raw.Text),
		Annotations: make([]Annotation, 0, len(raw.Annotations)),
	}
	for _, infon := range raw.Infons {
		passage.Infons[infon.Key] = strings.TrimSpace(infon.Value)
	}
	for _, annotation := range raw.Annotations {
		passage.Annotations = append(passage.Annotations, convertAnnotation(annotation))
	}
	return passage
}

func parseOffset(attr, elem string) int {
	if attr != "" {
		if offset, err := strconv.Atoi(strings.TrimSpace(attr)); err == nil {
			return offset
		}
		return 0
	}
	if offset, err := strconv.Atoi(strings.TrimSpace(elem)); err == nil {
		return offset
	}
	return 0
}

func convertAnnotation(raw xmlAnnotation) Annotation {
	annotation := Annotation{
		ID:        raw.ID,
		Infons:    make(map[string]interface{}),
		Text:      strings.TrimSpace(raw.Text),
		Locations: make([]Location, 0, len(raw.Locations)),
	}
	for _, infon := range raw.Infons {
		annotation.Infons[infon.Key] = convertInfonValue(infon.Key, strings.TrimSpace(infon.Value))
	}
	for _, location := range raw.Locations {
		offset, _ := strconv.Atoi(location.Offset)
		length, _ := strconv.Atoi(location.Length)
		annotation.Locations = append(annotation.Locations, Location{Offset: offset, Length: length})
	}
	deriveIdentifierFields(annotation.Infons)
	return annotation
}

// deriveIdentifierFields fills database/normalized_id/valid/normalized
// from the identifier infon when the source file did not carry them.
func deriveIdentifierFields(infons map[string]interface{}) {
	identifier := infonString(infons, "identifier")
	if identifier == "" {
		return
	}
	database, normalizedID := ParseIdentifier(identifier)
	if _, ok := infons["database"]; !ok {
		infons["database"] = database
	}
	if _, ok := infons["normalized_id"]; !ok {
		infons["normalized_id"] = normalizedID
	}
	if _, ok := infons["valid"]; !ok {
		infons["valid"] = identifier != "-"
	}
	if _, ok := infons["normalized"]; !ok {
		if normalizedID != "" {
			infons["normalized"] = []string{normalizedID}
		} else {
			infons["normalized"] = []string{}
		}
	}
	if mentionType := infonString(infons, "type"); mentionType != "" {
		if _, ok := infons["biotype"]; !ok {
			infons["biotype"] = strings.ToLower(mentionType)
		}
	}
}

func convertRelation(raw xmlRelation) Relation {
	relation := Relation{
		ID:     raw.ID,
		Infons: make(map[string]string),
		Nodes:  make([]RelationNode, 0, len(raw.Nodes)),
	}
	for _, infon := range raw.Infons {
		relation.Infons[infon.Key] = strings.TrimSpace(infon.Value)
	}
	for _, node := range raw.Nodes {
		relation.Nodes = append(relation.Nodes, RelationNode{RefID: node.RefID, Role: node.Role})
	}
	return relation
}

func infonString(infons map[string]interface{}, key string) string {
	if value, ok := infons[key].(string); ok {
		return value
	}
	return ""
}
