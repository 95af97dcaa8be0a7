package graph

import "strings"

// labelMapping maps the extraction-time coarse entity type to the node
// label used in the graph. The casing is uneven on purpose: it matches
// the labels that already exist in the database.
var labelMapping = map[string]string{
	"drug":         "DRUG",
	"medication":   "DRUG",
	"chemical":     "DRUG",
	"disease":      "DISEASE",
	"gene":         "Gene",
	"protein":      "PROTEIN",
	"gene_protein": "Gene",
}

// LabelFor returns the node label for a coarse entity type. Unmapped
// types fall back to their upper-cased literal form; the second return
// reports whether the type was in the mapping.
func LabelFor(entityType string) (string, bool) {
	label, ok := labelMapping[strings.ToLower(entityType)]
	if !ok {
		return strings.ToUpper(entityType), false
	}
	return label, true
}
