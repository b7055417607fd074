package rendering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docgen/backend/internal/domain/rendering"
	infra "github.com/docgen/backend/internal/infrastructure/rendering"
)

// fakeDocument records builder calls for assertions
type fakeDocument struct {
	fontFace   string
	fontSize   float64
	left       int
	top        int
	right      int
	bottom     int
	header     string
	headers    []string
	headerPos  int
	footer     string
	footerPos  int
	headerOff  bool
	footerOff  bool
	groups     int
	pages      []string
	sizes      []rendering.PageSize
	content    []string
	calls      []string
	output     []byte
	outputErr  error
	outputDone int
}

func (d *fakeDocument) SetFont(face string, size float64) {
	d.fontFace, d.fontSize = face, size
	d.calls = append(d.calls, "SetFont")
}

func (d *fakeDocument) SetMargins(left, top, right int) {
	d.left, d.top, d.right = left, top, right
	d.calls = append(d.calls, "SetMargins")
}

func (d *fakeDocument) SetAutoPageBreak(bottom int) {
	d.bottom = bottom
	d.calls = append(d.calls, "SetAutoPageBreak")
}

func (d *fakeDocument) SetHeader(html string, position int) {
	d.header, d.headerPos = html, position
	d.headers = append(d.headers, html)
	d.calls = append(d.calls, "SetHeader")
}

func (d *fakeDocument) DisableHeader() {
	d.headerOff = true
	d.calls = append(d.calls, "DisableHeader")
}

func (d *fakeDocument) SetFooter(html string, position int) {
	d.footer, d.footerPos = html, position
	d.calls = append(d.calls, "SetFooter")
}

func (d *fakeDocument) DisableFooter() {
	d.footerOff = true
	d.calls = append(d.calls, "DisableFooter")
}

func (d *fakeDocument) StartPageGroup() {
	d.groups++
	d.calls = append(d.calls, "StartPageGroup")
}

func (d *fakeDocument) AddPage(orientation string, size rendering.PageSize) {
	d.pages = append(d.pages, orientation)
	d.sizes = append(d.sizes, size)
	d.calls = append(d.calls, "AddPage")
}

func (d *fakeDocument) WriteHTML(html string) {
	d.content = append(d.content, html)
	d.calls = append(d.calls, "WriteHTML")
}

func (d *fakeDocument) Output(_ context.Context) ([]byte, error) {
	d.outputDone++
	d.calls = append(d.calls, "Output")
	return d.output, d.outputErr
}

// fakeEngine hands out fake documents preloaded with canned output
type fakeEngine struct {
	output    []byte
	outputErr error
	docs      []*fakeDocument
}

func (e *fakeEngine) NewDocument() infra.DocumentBuilder {
	doc := &fakeDocument{output: e.output, outputErr: e.outputErr}
	e.docs = append(e.docs, doc)
	return doc
}

func (e *fakeEngine) Close() error { return nil }

func (e *fakeEngine) lastDoc() *fakeDocument {
	if len(e.docs) == 0 {
		return nil
	}
	return e.docs[len(e.docs)-1]
}

func callIndex(calls []string, name string) int {
	for i, c := range calls {
		if c == name {
			return i
		}
	}
	return -1
}

func newActiveTemplate(t *testing.T, entityType rendering.EntityType) *rendering.Template {
	t.Helper()
	tpl, err := rendering.NewTemplate(entityType, "Test Template", "<p>{{.name}}</p>")
	require.NoError(t, err)
	return tpl
}

func newComposerRecord(t *testing.T, name string) *rendering.Record {
	t.Helper()
	rec, err := rendering.NewRecord(rendering.EntityTypeContact)
	require.NoError(t, err)
	rec.Set("name", name)
	return rec
}

func TestComposerFontResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("template font wins", func(t *testing.T) {
		composer := NewComposer(infra.NewMergeEngine(), ComposerDefaults{FontFace: "Inter", FontSize: 10})
		tpl := newActiveTemplate(t, rendering.EntityTypeContact)
		tpl.SetFontFace("Georgia")

		doc := &fakeDocument{}
		require.NoError(t, composer.Compose(ctx, newComposerRecord(t, "Jo"), tpl, doc, nil))
		assert.Equal(t, "Georgia", doc.fontFace)
		assert.Equal(t, 10.0, doc.fontSize)
	})

	t.Run("configured default fills in", func(t *testing.T) {
		composer := NewComposer(infra.NewMergeEngine(), ComposerDefaults{FontFace: "Inter"})
		tpl := newActiveTemplate(t, rendering.EntityTypeContact)

		doc := &fakeDocument{}
		require.NoError(t, composer.Compose(ctx, newComposerRecord(t, "Jo"), tpl, doc, nil))
		assert.Equal(t, "Inter", doc.fontFace)
	})

	t.Run("built-in font is the last resort", func(t *testing.T) {
		composer := NewComposer(infra.NewMergeEngine(), ComposerDefaults{})
		tpl := newActiveTemplate(t, rendering.EntityTypeContact)

		doc := &fakeDocument{}
		require.NoError(t, composer.Compose(ctx, newComposerRecord(t, "Jo"), tpl, doc, nil))
		assert.Equal(t, "DejaVu Sans", doc.fontFace)
		assert.Equal(t, 12.0, doc.fontSize)
	})
}

func TestComposerGeometry(t *testing.T) {
	ctx := context.Background()
	composer := NewComposer(infra.NewMergeEngine(), ComposerDefaults{})

	tpl := newActiveTemplate(t, rendering.EntityTypeContact)
	require.NoError(t, tpl.SetPageLayout(rendering.OrientationLandscape, rendering.PageFormatLegal, 0, 0))
	margins, err := rendering.NewMargins(5, 6, 7, 8)
	require.NoError(t, err)
	tpl.SetMargins(margins)

	doc := &fakeDocument{}
	require.NoError(t, composer.Compose(ctx, newComposerRecord(t, "Jo"), tpl, doc, nil))

	require.Len(t, doc.pages, 1)
	assert.Equal(t, "L", doc.pages[0])
	assert.Equal(t, "Legal", doc.sizes[0].Format)
	assert.Equal(t, 8, doc.left)
	assert.Equal(t, 5, doc.top)
	assert.Equal(t, 6, doc.right)
	assert.Equal(t, 7, doc.bottom)
}

func TestComposerFooter(t *testing.T) {
	ctx := context.Background()
	composer := NewComposer(infra.NewMergeEngine(), ComposerDefaults{})

	t.Run("enabled footer renders through the merge engine", func(t *testing.T) {
		tpl := newActiveTemplate(t, rendering.EntityTypeContact)
		require.NoError(t, tpl.SetFooter("<p>{{.name}}</p>", true, 8))

		doc := &fakeDocument{}
		require.NoError(t, composer.Compose(ctx, newComposerRecord(t, "Jo"), tpl, doc, nil))
		assert.Equal(t, "<p>Jo</p>", doc.footer)
		assert.Equal(t, 8, doc.footerPos)
		assert.False(t, doc.footerOff)
	})

	t.Run("disabled footer is switched off", func(t *testing.T) {
		tpl := newActiveTemplate(t, rendering.EntityTypeContact)

		doc := &fakeDocument{}
		require.NoError(t, composer.Compose(ctx, newComposerRecord(t, "Jo"), tpl, doc, nil))
		assert.True(t, doc.footerOff)
		assert.Empty(t, doc.footer)
	})

	t.Run("broken footer markup fails the composition", func(t *testing.T) {
		tpl := newActiveTemplate(t, rendering.EntityTypeContact)
		require.NoError(t, tpl.SetFooter("{{.broken", true, 0))

		doc := &fakeDocument{}
		assert.Error(t, composer.Compose(ctx, newComposerRecord(t, "Jo"), tpl, doc, nil))
	})
}

func TestComposerHeaderModes(t *testing.T) {
	ctx := context.Background()
	composer := NewComposer(infra.NewMergeEngine(), ComposerDefaults{})

	t.Run("repeating header is installed before the page opens", func(t *testing.T) {
		tpl := newActiveTemplate(t, rendering.EntityTypeContact)
		require.NoError(t, tpl.SetHeader("<h1>{{.name}}</h1>", true, 12))

		doc := &fakeDocument{}
		require.NoError(t, composer.Compose(ctx, newComposerRecord(t, "Jo"), tpl, doc, nil))

		assert.Equal(t, "<h1>Jo</h1>", doc.header)
		assert.Equal(t, 12, doc.headerPos)
		assert.Less(t, callIndex(doc.calls, "SetHeader"), callIndex(doc.calls, "AddPage"))
		// the body is the only content write
		assert.Equal(t, []string{"<p>Jo</p>"}, doc.content)
	})

	t.Run("one-shot header flows into the first page", func(t *testing.T) {
		tpl := newActiveTemplate(t, rendering.EntityTypeContact)
		require.NoError(t, tpl.SetHeader("<h1>{{.name}}</h1>", false, 0))

		doc := &fakeDocument{}
		require.NoError(t, composer.Compose(ctx, newComposerRecord(t, "Jo"), tpl, doc, nil))

		assert.True(t, doc.headerOff)
		assert.Less(t, callIndex(doc.calls, "AddPage"), callIndex(doc.calls, "DisableHeader"))
		assert.Equal(t, []string{"<h1>Jo</h1>", "<p>Jo</p>"}, doc.content)
	})

	t.Run("empty one-shot header writes nothing extra", func(t *testing.T) {
		tpl := newActiveTemplate(t, rendering.EntityTypeContact)

		doc := &fakeDocument{}
		require.NoError(t, composer.Compose(ctx, newComposerRecord(t, "Jo"), tpl, doc, nil))
		assert.Equal(t, []string{"<p>Jo</p>"}, doc.content)
	})
}

func TestComposerExtraValues(t *testing.T) {
	composer := NewComposer(infra.NewMergeEngine(), ComposerDefaults{})
	tpl, err := rendering.NewTemplate(rendering.EntityTypeContact, "Campaign Letter", "<p>{{.campaign}}</p>")
	require.NoError(t, err)

	doc := &fakeDocument{}
	extra := map[string]any{"campaign": "Spring Sale"}
	require.NoError(t, composer.Compose(context.Background(), newComposerRecord(t, "Jo"), tpl, doc, extra))
	assert.Equal(t, []string{"<p>Spring Sale</p>"}, doc.content)
}
