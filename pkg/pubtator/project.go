package pubtator

// Project reduces a parsed document to the fields the extraction model
// needs: passage text with section type, entity mentions with their
// identifiers, and raw relation mentions.
func Project(doc Document) StructuredDocument {
	structured := StructuredDocument{
		DocumentID: doc.ID,
		Passages:   make([]StructuredPassage, 0, len(doc.Passages)),
		Relations:  make([]StructuredRelation, 0, len(doc.Relations)),
	}

	for _, passage := range doc.Passages {
		sectionType := passage.Infons["section_type"]
		if sectionType == "" {
			sectionType = passage.Infons["type"]
		}
		sp := StructuredPassage{
			Text:        passage.Text,
			Type:        sectionType,
			Annotations: make([]StructuredAnnotation, 0, len(passage.Annotations)),
		}
		for _, annotation := range passage.Annotations {
			sp.Annotations = append(sp.Annotations, StructuredAnnotation{
				ID:           annotation.ID,
				Text:         annotation.Text,
				Type:         infonString(annotation.Infons, "type"),
				Identifier:   infonString(annotation.Infons, "identifier"),
				NormalizedID: infonString(annotation.Infons, "normalized_id"),
				Biotype:      infonString(annotation.Infons, "biotype"),
			})
		}
		structured.Passages = append(structured.Passages, sp)
	}

	for _, relation := range doc.Relations {
		structured.Relations = append(structured.Relations, StructuredRelation{
			ID:    relation.ID,
			Type:  relation.Infons["type"],
			Role1: relation.Infons["role1"],
			Role2: relation.Infons["role2"],
			Score: relation.Infons["score"],
			Nodes: relation.Nodes,
		})
	}

	return structured
}
