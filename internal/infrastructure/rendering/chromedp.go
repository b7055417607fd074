package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"

	"github.com/docgen/backend/internal/domain/rendering"
)

const (
	defaultChromeTimeout = 30 * time.Second
	defaultScale         = 1.0
)

// ChromedpConfig contains configuration for the chromedp document engine
type ChromedpConfig struct {
	// DefaultTimeout for rendering operations
	DefaultTimeout time.Duration
	// RemoteURL is the URL of a remote Chrome/Chromium instance (optional)
	// If empty, chromedp will launch a new browser instance
	RemoteURL string
	// Headless mode, nil means headless
	Headless *bool
	// DisableGPU disables GPU hardware acceleration, nil means disabled
	DisableGPU *bool
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// Scale for rendering (default: 1.0)
	Scale float64
	// Logger for debug output
	Logger *zap.Logger
}

// ChromedpEngine builds PDF documents through the Chrome DevTools Protocol.
// Each document accumulates its page groups as HTML sections; serialization
// prints consecutive groups with identical header/footer markup in one
// Page.printToPDF call and concatenates the printed runs.
type ChromedpEngine struct {
	config      *ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpEngine creates a new chromedp-based document engine
func NewChromedpEngine(config *ChromedpConfig) (*ChromedpEngine, error) {
	if config == nil {
		config = &ChromedpConfig{}
	}

	if config.DefaultTimeout == 0 {
		config.DefaultTimeout = defaultChromeTimeout
	}
	if config.Scale == 0 {
		config.Scale = defaultScale
	}
	if config.Headless == nil {
		headless := true
		config.Headless = &headless
	}
	if config.DisableGPU == nil {
		disableGPU := true
		config.DisableGPU = &disableGPU
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := &ChromedpEngine{
		config: config,
		logger: logger,
	}

	if err := engine.initAllocator(); err != nil {
		return nil, err
	}

	return engine, nil
}

// initAllocator initializes the Chrome allocator
func (e *ChromedpEngine) initAllocator() error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", *e.config.Headless),
		chromedp.Flag("disable-gpu", *e.config.DisableGPU),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("font-render-hinting", "none"),
	)

	if e.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	if e.config.RemoteURL != "" {
		e.allocCtx, e.allocCancel = chromedp.NewRemoteAllocator(context.Background(), e.config.RemoteURL)
	} else {
		e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}

	return nil
}

// NewDocument starts an empty document
func (e *ChromedpEngine) NewDocument() DocumentBuilder {
	return &chromedpDocument{
		engine:   e,
		fontSize: 12,
	}
}

// Close releases resources held by the engine
func (e *ChromedpEngine) Close() error {
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

// section is the accumulated content of one page group together with the
// repeating header/footer that covers its pages
type section struct {
	buf bytes.Buffer

	headerHTML string
	headerPos  int
	hasHeader  bool
	footerHTML string
	footerPos  int
	hasFooter  bool
}

// sameEdges reports whether two sections carry identical header/footer
// markup and so may print in the same Page.printToPDF call
func (s *section) sameEdges(o *section) bool {
	return s.hasHeader == o.hasHeader &&
		s.headerHTML == o.headerHTML &&
		s.headerPos == o.headerPos &&
		s.hasFooter == o.hasFooter &&
		s.footerHTML == o.footerHTML &&
		s.footerPos == o.footerPos
}

// chromedpDocument accumulates page groups and prints them run by run, one
// Page.printToPDF call per run of groups with identical edges. The first
// AddPage fixes the page geometry; every document prints with a single size
// and orientation.
type chromedpDocument struct {
	engine *ChromedpEngine

	fontFace string
	fontSize float64

	marginLeft  int
	marginTop   int
	marginRight int
	breakBottom int

	orientation string
	pageSize    rendering.PageSize
	sized       bool

	sections []*section
}

func (d *chromedpDocument) SetFont(face string, size float64) {
	d.fontFace = face
	if size > 0 {
		d.fontSize = size
	}
}

func (d *chromedpDocument) SetMargins(left, top, right int) {
	d.marginLeft = left
	d.marginTop = top
	d.marginRight = right
}

func (d *chromedpDocument) SetAutoPageBreak(bottom int) {
	d.breakBottom = bottom
}

// SetHeader installs a repeating header over the pages of the current group
func (d *chromedpDocument) SetHeader(html string, position int) {
	s := d.current()
	s.headerHTML = html
	s.headerPos = position
	s.hasHeader = true
}

func (d *chromedpDocument) DisableHeader() {
	s := d.current()
	s.headerHTML = ""
	s.headerPos = 0
	s.hasHeader = false
}

// SetFooter installs a repeating footer over the pages of the current group
func (d *chromedpDocument) SetFooter(html string, position int) {
	s := d.current()
	s.footerHTML = html
	s.footerPos = position
	s.hasFooter = true
}

func (d *chromedpDocument) DisableFooter() {
	s := d.current()
	s.footerHTML = ""
	s.footerPos = 0
	s.hasFooter = false
}

func (d *chromedpDocument) StartPageGroup() {
	d.sections = append(d.sections, &section{})
}

func (d *chromedpDocument) AddPage(orientation string, size rendering.PageSize) {
	if !d.sized {
		d.orientation = orientation
		d.pageSize = size
		d.sized = true
	}
	cur := d.current()
	// A page break only when the current group already holds content;
	// the first page of a group opens with the group itself.
	if cur.buf.Len() > 0 {
		cur.buf.WriteString(`<div style="page-break-before: always"></div>`)
	}
}

func (d *chromedpDocument) WriteHTML(html string) {
	d.current().buf.WriteString(html)
}

// current returns the open section, opening an implicit one for documents
// that never call StartPageGroup
func (d *chromedpDocument) current() *section {
	if len(d.sections) == 0 {
		d.sections = append(d.sections, &section{})
	}
	return d.sections[len(d.sections)-1]
}

// Output prints the accumulated document to PDF bytes. Runs of page groups
// sharing the same header/footer print together; documents where the edges
// differ between groups print run by run and concatenate, so every group's
// pages carry that group's own header and footer.
func (d *chromedpDocument) Output(ctx context.Context) ([]byte, error) {
	e := d.engine

	ctx, cancel := context.WithTimeout(ctx, e.config.DefaultTimeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(e.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			e.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	startTime := time.Now()
	runs := d.splitRuns()

	parts := make([][]byte, 0, len(runs))
	for _, run := range runs {
		data, err := d.printRun(browserCtx, run)
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				return nil, NewRenderError(ErrCodeRenderTimeout,
					fmt.Sprintf("PDF rendering timed out after %v", e.config.DefaultTimeout), err)
			}
			if ctx.Err() == context.Canceled {
				return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", err)
			}

			e.logger.Error("chromedp rendering failed", zap.Error(err))
			return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed: "+err.Error(), err)
		}
		parts = append(parts, data)
	}

	pdfData := parts[0]
	if len(parts) > 1 {
		merged, err := concatPDFs(parts)
		if err != nil {
			e.logger.Error("concatenating printed runs failed", zap.Error(err))
			return nil, NewRenderError(ErrCodeRenderFailed, "concatenating printed runs failed: "+err.Error(), err)
		}
		pdfData = merged
	}

	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	e.logger.Info("PDF rendered",
		zap.Int("bytes", len(pdfData)),
		zap.Int("page_groups", len(d.sections)),
		zap.Int("print_runs", len(runs)),
		zap.Duration("duration", time.Since(startTime)))

	return pdfData, nil
}

// splitRuns partitions the sections into maximal runs of consecutive groups
// with identical header/footer markup
func (d *chromedpDocument) splitRuns() [][]*section {
	if len(d.sections) == 0 {
		d.sections = append(d.sections, &section{})
	}
	var runs [][]*section
	for _, s := range d.sections {
		if len(runs) == 0 || !runs[len(runs)-1][0].sameEdges(s) {
			runs = append(runs, []*section{s})
			continue
		}
		last := len(runs) - 1
		runs[last] = append(runs[last], s)
	}
	return runs
}

// printRun prints one run of sections in a single Page.printToPDF call
func (d *chromedpDocument) printRun(browserCtx context.Context, run []*section) ([]byte, error) {
	html := d.buildDocumentHTML(run)
	params := d.buildPrintParams(run[0])

	var pdfData []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(params.paperWidth).
				WithPaperHeight(params.paperHeight).
				WithMarginTop(params.marginTop).
				WithMarginRight(params.marginRight).
				WithMarginBottom(params.marginBottom).
				WithMarginLeft(params.marginLeft).
				WithScale(params.scale).
				WithLandscape(params.landscape).
				WithDisplayHeaderFooter(params.displayHeaderFooter).
				WithHeaderTemplate(params.headerTemplate).
				WithFooterTemplate(params.footerTemplate).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	return pdfData, err
}

// concatPDFs joins the printed runs into one document
func concatPDFs(parts [][]byte) ([]byte, error) {
	readers := make([]io.ReadSeeker, len(parts))
	for i := range parts {
		readers[i] = bytes.NewReader(parts[i])
	}
	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, nil); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// printParams holds the parameters for PDF printing
type printParams struct {
	paperWidth          float64
	paperHeight         float64
	marginTop           float64
	marginRight         float64
	marginBottom        float64
	marginLeft          float64
	scale               float64
	landscape           bool
	displayHeaderFooter bool
	headerTemplate      string
	footerTemplate      string
}

// buildPrintParams constructs the print parameters for one run from the
// document geometry and the run's header/footer markup
func (d *chromedpDocument) buildPrintParams(sec *section) *printParams {
	params := &printParams{
		scale: d.engine.config.Scale,
	}

	width, height := d.resolveDimensions()
	params.paperWidth = mmToInches(width)
	params.paperHeight = mmToInches(height)
	params.landscape = d.orientation == "L"

	params.marginTop = mmToInches(float64(d.marginTop))
	params.marginRight = mmToInches(float64(d.marginRight))
	params.marginLeft = mmToInches(float64(d.marginLeft))
	params.marginBottom = mmToInches(float64(d.breakBottom))

	if sec.hasHeader || sec.hasFooter {
		params.displayHeaderFooter = true
		if sec.hasHeader {
			params.headerTemplate = wrapEdgeTemplate(sec.headerHTML, d.fontFace, d.fontSize)
			// Reserve room so content never overlaps the repeating header
			if reserved := float64(sec.headerPos + 10); mmToInches(reserved) > params.marginTop {
				params.marginTop = mmToInches(reserved)
			}
		}
		if sec.hasFooter {
			params.footerTemplate = wrapEdgeTemplate(sec.footerHTML, d.fontFace, d.fontSize)
			if reserved := float64(sec.footerPos + 10); mmToInches(reserved) > params.marginBottom {
				params.marginBottom = mmToInches(reserved)
			}
		}
	}

	return params
}

// resolveDimensions returns the page dimensions in millimeters
func (d *chromedpDocument) resolveDimensions() (float64, float64) {
	if d.pageSize.IsCustom() && d.pageSize.Width > 0 && d.pageSize.Height > 0 {
		return float64(d.pageSize.Width), float64(d.pageSize.Height)
	}
	format := rendering.PageFormat(d.pageSize.Format)
	if !format.IsValid() || format == rendering.PageFormatCustom {
		format = rendering.PageFormatA4
	}
	w, h := format.Dimensions()
	return float64(w), float64(h)
}

// buildDocumentHTML assembles a run of page-group sections into one document.
// Groups after the first open with a forced page break so a group's pages
// always stay together.
func (d *chromedpDocument) buildDocumentHTML(run []*section) string {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html><head>")
	buf.WriteString(`<meta charset="UTF-8">`)
	buf.WriteString("<style>body{")
	if d.fontFace != "" {
		fmt.Fprintf(&buf, "font-family:%q;", d.fontFace)
	}
	fmt.Fprintf(&buf, "font-size:%gpt;", d.fontSize)
	buf.WriteString("margin:0;}</style>")
	buf.WriteString("</head><body>")
	for i, s := range run {
		if i == 0 {
			buf.WriteString(`<div>`)
		} else {
			buf.WriteString(`<div style="page-break-before: always">`)
		}
		buf.Write(s.buf.Bytes())
		buf.WriteString("</div>")
	}
	buf.WriteString("</body></html>")
	return buf.String()
}

// wrapEdgeTemplate adapts user header/footer markup to Chrome's print
// header/footer template format, translating page-number tokens
func wrapEdgeTemplate(html, fontFace string, fontSize float64) string {
	html = strings.ReplaceAll(html, "{pageNumber}", `<span class="pageNumber"></span>`)
	html = strings.ReplaceAll(html, "{pageCount}", `<span class="totalPages"></span>`)

	var buf bytes.Buffer
	buf.WriteString(`<div style="width:100%;`)
	if fontFace != "" {
		fmt.Fprintf(&buf, "font-family:%q;", fontFace)
	}
	// Chrome defaults edge templates to a tiny font; carry the document size
	fmt.Fprintf(&buf, `font-size:%gpt;">`, fontSize)
	buf.WriteString(html)
	buf.WriteString("</div>")
	return buf.String()
}

// mmToInches converts millimeters to inches
func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// Ensure the chromedp types satisfy the engine interfaces
var (
	_ DocumentEngine  = (*ChromedpEngine)(nil)
	_ DocumentBuilder = (*chromedpDocument)(nil)
)
