package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityTypeIsValid(t *testing.T) {
	assert.True(t, EntityTypeContact.IsValid())
	assert.True(t, EntityType("CustomThing").IsValid())
	assert.False(t, EntityType("").IsValid())
	assert.False(t, EntityType("   ").IsValid())
}

func TestEntityTypeLabel(t *testing.T) {
	tests := []struct {
		entityType EntityType
		expected   string
	}{
		{EntityTypeContact, "Contact"},
		{EntityTypeOpportunity, "Opportunity"},
		{EntityType("SalesOrder"), "Sales Order"},
		{EntityType("accountStatement"), "Account Statement"},
	}

	for _, tt := range tests {
		t.Run(string(tt.entityType), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entityType.Label())
		})
	}
}

func TestOrientationCode(t *testing.T) {
	assert.Equal(t, "P", OrientationPortrait.Code())
	assert.Equal(t, "L", OrientationLandscape.Code())
	assert.Equal(t, "P", Orientation("").Code())
}

func TestOrientationIsValid(t *testing.T) {
	assert.True(t, OrientationPortrait.IsValid())
	assert.True(t, OrientationLandscape.IsValid())
	assert.False(t, Orientation("DIAGONAL").IsValid())
}

func TestPageFormatDimensions(t *testing.T) {
	tests := []struct {
		format PageFormat
		width  int
		height int
	}{
		{PageFormatA3, 297, 420},
		{PageFormatA4, 210, 297},
		{PageFormatA5, 148, 210},
		{PageFormatLetter, 216, 279},
		{PageFormatLegal, 216, 356},
		{PageFormatCustom, 0, 0},
		{PageFormat("unknown"), 210, 297},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, h := tt.format.Dimensions()
			assert.Equal(t, tt.width, w)
			assert.Equal(t, tt.height, h)
		})
	}
}

func TestAllPageFormats(t *testing.T) {
	formats := AllPageFormats()
	assert.Len(t, formats, 6)
	for _, f := range formats {
		assert.True(t, f.IsValid())
	}
}

func TestTemplateStatusIsValid(t *testing.T) {
	assert.True(t, TemplateStatusActive.IsValid())
	assert.True(t, TemplateStatusInactive.IsValid())
	assert.False(t, TemplateStatus("DRAFT").IsValid())
}
