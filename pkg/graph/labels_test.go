package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		entityType string
		label      string
		mapped     bool
	}{
		{"drug", "DRUG", true},
		{"medication", "DRUG", true},
		{"chemical", "DRUG", true},
		{"disease", "DISEASE", true},
		{"gene", "Gene", true},
		{"protein", "PROTEIN", true},
		{"gene_protein", "Gene", true},
		{"Drug", "DRUG", true},
		{"pathway", "PATHWAY", false},
	}

	for _, tt := range tests {
		t.Run(tt.entityType, func(t *testing.T) {
			label, mapped := LabelFor(tt.entityType)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.mapped, mapped)
		})
	}
}
