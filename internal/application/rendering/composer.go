package rendering

import (
	"context"

	"github.com/docgen/backend/internal/domain/rendering"
	infra "github.com/docgen/backend/internal/infrastructure/rendering"
)

const (
	// builtinFontFace is the last-resort document font
	builtinFontFace = "DejaVu Sans"
	// defaultFontSize in points
	defaultFontSize = 12
)

// ComposerDefaults carries deployment-wide composition settings
type ComposerDefaults struct {
	// FontFace used when a template does not override the font
	FontFace string
	// FontSize in points, zero means the built-in default
	FontSize float64
}

// Composer turns one record plus one template into a document section.
// Geometry, fonts and headers come from the template; field values are
// substituted through the merge engine.
type Composer struct {
	merge    *infra.MergeEngine
	defaults ComposerDefaults
}

// NewComposer creates a composer with the given merge engine and defaults
func NewComposer(merge *infra.MergeEngine, defaults ComposerDefaults) *Composer {
	return &Composer{
		merge:    merge,
		defaults: defaults,
	}
}

// Compose renders one record through the template into the document builder.
//
// The header renders in one of two modes: with PrintHeader set it is
// installed as a repeating page header before the page is opened, otherwise
// it is written once into the content flow at the top of the first page.
func (c *Composer) Compose(ctx context.Context, record *rendering.Record, tpl *rendering.Template, doc infra.DocumentBuilder, extra map[string]any) error {
	doc.SetFont(c.resolveFontFace(tpl), c.resolveFontSize())
	doc.SetAutoPageBreak(tpl.Margins.Bottom)
	doc.SetMargins(tpl.Margins.Left, tpl.Margins.Top, tpl.Margins.Right)

	if tpl.PrintFooter {
		footer, err := c.merge.Render(record, tpl.Footer, extra)
		if err != nil {
			return err
		}
		doc.SetFooter(footer, tpl.FooterPosition)
	} else {
		doc.DisableFooter()
	}

	header, err := c.merge.Render(record, tpl.Header, extra)
	if err != nil {
		return err
	}

	orientation := tpl.Orientation.Code()
	size := tpl.ResolvePageSize()

	if tpl.PrintHeader {
		doc.SetHeader(header, tpl.HeaderPosition)
		doc.AddPage(orientation, size)
	} else {
		doc.AddPage(orientation, size)
		doc.DisableHeader()
		if header != "" {
			doc.WriteHTML(header)
		}
	}

	body, err := c.merge.Render(record, tpl.Body, extra)
	if err != nil {
		return err
	}
	doc.WriteHTML(body)

	return nil
}

func (c *Composer) resolveFontFace(tpl *rendering.Template) string {
	if tpl.FontFace != "" {
		return tpl.FontFace
	}
	if c.defaults.FontFace != "" {
		return c.defaults.FontFace
	}
	return builtinFontFace
}

func (c *Composer) resolveFontSize() float64 {
	if c.defaults.FontSize > 0 {
		return c.defaults.FontSize
	}
	return defaultFontSize
}
