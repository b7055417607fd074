package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplate(t *testing.T) {
	tests := []struct {
		name        string
		entityType  EntityType
		tplName     string
		body        string
		expectError bool
	}{
		{"valid template", EntityTypeContact, "Contact Sheet", "<p>{{.first_name}}</p>", false},
		{"empty entity type", "", "Contact Sheet", "<p>body</p>", true},
		{"empty name", EntityTypeContact, "", "<p>body</p>", true},
		{"whitespace name", EntityTypeContact, "   ", "<p>body</p>", true},
		{"name too long", EntityTypeContact, strings.Repeat("x", 201), "<p>body</p>", true},
		{"empty body", EntityTypeContact, "Contact Sheet", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := NewTemplate(tt.entityType, tt.tplName, tt.body)

			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.entityType, tpl.EntityType)
			assert.Equal(t, OrientationPortrait, tpl.Orientation)
			assert.Equal(t, PageFormatA4, tpl.PageFormat)
			assert.Equal(t, DefaultMargins(), tpl.Margins)
			assert.Equal(t, TemplateStatusActive, tpl.Status)
			assert.True(t, tpl.IsActive())
		})
	}
}

func TestTemplateSetPageLayout(t *testing.T) {
	tpl, err := NewTemplate(EntityTypeContact, "Contact Sheet", "<p>body</p>")
	require.NoError(t, err)

	t.Run("named format", func(t *testing.T) {
		require.NoError(t, tpl.SetPageLayout(OrientationLandscape, PageFormatLetter, 0, 0))
		assert.Equal(t, OrientationLandscape, tpl.Orientation)
		assert.Equal(t, PageFormatLetter, tpl.PageFormat)
		assert.Zero(t, tpl.PageWidth)
		assert.Zero(t, tpl.PageHeight)
	})

	t.Run("custom format with dimensions", func(t *testing.T) {
		require.NoError(t, tpl.SetPageLayout(OrientationPortrait, PageFormatCustom, 200, 300))
		assert.Equal(t, 200, tpl.PageWidth)
		assert.Equal(t, 300, tpl.PageHeight)
	})

	t.Run("custom format requires dimensions", func(t *testing.T) {
		err := tpl.SetPageLayout(OrientationPortrait, PageFormatCustom, 0, 300)
		require.Error(t, err)
	})

	t.Run("invalid orientation", func(t *testing.T) {
		err := tpl.SetPageLayout("DIAGONAL", PageFormatA4, 0, 0)
		require.Error(t, err)
	})

	t.Run("named format clears custom dimensions", func(t *testing.T) {
		require.NoError(t, tpl.SetPageLayout(OrientationPortrait, PageFormatCustom, 200, 300))
		require.NoError(t, tpl.SetPageLayout(OrientationPortrait, PageFormatA4, 0, 0))
		assert.Zero(t, tpl.PageWidth)
		assert.Zero(t, tpl.PageHeight)
	})
}

func TestTemplateResolvePageSize(t *testing.T) {
	tpl, err := NewTemplate(EntityTypeContact, "Contact Sheet", "<p>body</p>")
	require.NoError(t, err)

	t.Run("named format resolves by name", func(t *testing.T) {
		require.NoError(t, tpl.SetPageLayout(OrientationPortrait, PageFormatLegal, 0, 0))
		size := tpl.ResolvePageSize()
		assert.Equal(t, "Legal", size.Format)
		assert.False(t, size.IsCustom())
	})

	t.Run("custom format resolves to dimensions", func(t *testing.T) {
		require.NoError(t, tpl.SetPageLayout(OrientationPortrait, PageFormatCustom, 200, 300))
		size := tpl.ResolvePageSize()
		assert.True(t, size.IsCustom())
		assert.Equal(t, 200, size.Width)
		assert.Equal(t, 300, size.Height)
	})

	t.Run("unset format falls back to A4", func(t *testing.T) {
		tpl.PageFormat = ""
		size := tpl.ResolvePageSize()
		assert.Equal(t, "A4", size.Format)
	})
}

func TestTemplateSetHeaderFooter(t *testing.T) {
	tpl, err := NewTemplate(EntityTypeContact, "Contact Sheet", "<p>body</p>")
	require.NoError(t, err)

	require.NoError(t, tpl.SetHeader("<h1>{{.name}}</h1>", true, 15))
	assert.True(t, tpl.PrintHeader)
	assert.Equal(t, 15, tpl.HeaderPosition)

	require.NoError(t, tpl.SetFooter("<p>Page {pageNumber}</p>", true, 10))
	assert.True(t, tpl.PrintFooter)
	assert.Equal(t, 10, tpl.FooterPosition)

	assert.Error(t, tpl.SetHeader("x", true, -1))
	assert.Error(t, tpl.SetFooter("x", true, -1))
}

func TestTemplateLifecycle(t *testing.T) {
	tpl, err := NewTemplate(EntityTypeInvoice, "Invoice", "<p>body</p>")
	require.NoError(t, err)

	tpl.Deactivate()
	assert.False(t, tpl.IsActive())
	assert.Equal(t, TemplateStatusInactive, tpl.Status)

	tpl.Activate()
	assert.True(t, tpl.IsActive())
}

func TestTemplateCanRender(t *testing.T) {
	tpl, err := NewTemplate(EntityTypeInvoice, "Invoice", "<p>body</p>")
	require.NoError(t, err)

	assert.True(t, tpl.CanRender(EntityTypeInvoice))
	assert.False(t, tpl.CanRender(EntityTypeContact))
}

func TestTemplateUpdateBody(t *testing.T) {
	tpl, err := NewTemplate(EntityTypeInvoice, "Invoice", "<p>body</p>")
	require.NoError(t, err)

	require.NoError(t, tpl.UpdateBody("<p>new body</p>"))
	assert.Equal(t, "<p>new body</p>", tpl.Body)

	assert.Error(t, tpl.UpdateBody("  "))
}
