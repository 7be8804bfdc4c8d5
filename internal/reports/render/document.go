package render

import (
	"bytes"
	"fmt"
	"time"

	"canteen/pkg/logger"

	"github.com/go-pdf/fpdf"
)

const (
	marginLeft   = 15.0
	marginTop    = 20.0
	marginRight  = 15.0
	lineHeight   = 6.0
	amountWidth  = 40.0
	labelWidth   = 45.0
	fontFamily   = "Helvetica"
	watermarkID  = "watermark"
	watermarkW   = 120.0
	watermarkAlp = 0.08
)

// Layout holds the page settings shared by every document.
type Layout struct {
	// PageHeight is the cursor position (mm from the top) past which a new
	// page is started.
	PageHeight     float64
	CurrencySymbol string
	Location       *time.Location
}

// document tracks a vertical cursor over an fpdf page sequence.
type document struct {
	pdf       *fpdf.Fpdf
	layout    Layout
	tr        func(string) string
	watermark *Watermark
	// watermarkPages counts pages the watermark was drawn on.
	watermarkPages int
	log            *logger.Logger
}

func newDocument(title string, layout Layout, watermark *Watermark, generatedAt time.Time, log *logger.Logger) *document {
	if layout.Location == nil {
		layout.Location = time.UTC
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("canteen reports", true)
	pdf.SetCreationDate(generatedAt)

	_, pageH := pdf.GetPageSize()
	if layout.PageHeight <= marginTop || layout.PageHeight > pageH {
		layout.PageHeight = pageH - marginTop
	}

	d := &document{
		pdf:    pdf,
		layout: layout,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		log:    log,
	}
	d.registerWatermark(watermark)
	pdf.SetHeaderFunc(d.drawWatermark)
	d.newPage()
	return d
}

// registerWatermark embeds the image once. A watermark the PDF writer rejects
// is dropped and the document continues without one.
func (d *document) registerWatermark(wm *Watermark) {
	if wm == nil {
		return
	}
	d.pdf.RegisterImageOptionsReader(watermarkID, fpdf.ImageOptions{ImageType: wm.Type}, bytes.NewReader(wm.Data))
	if err := d.pdf.Error(); err != nil {
		d.log.Warn("Watermark rejected by PDF writer, continuing without it", "error", err)
		d.pdf.ClearError()
		return
	}
	d.watermark = wm
}

func (d *document) drawWatermark() {
	if d.watermark == nil {
		return
	}
	pageW, pageH := d.pdf.GetPageSize()
	w := watermarkW
	h := w * float64(d.watermark.Height) / float64(d.watermark.Width)
	d.pdf.SetAlpha(watermarkAlp, "Normal")
	d.pdf.ImageOptions(watermarkID, (pageW-w)/2, (pageH-h)/2, w, h, false,
		fpdf.ImageOptions{ImageType: d.watermark.Type}, 0, "")
	d.pdf.SetAlpha(1, "Normal")
	d.watermarkPages++
}

func (d *document) newPage() {
	d.pdf.AddPage()
	d.pdf.SetY(marginTop)
}

// ensureSpace starts a new page when a block of height h would cross the
// page-height threshold.
func (d *document) ensureSpace(h float64) {
	if d.pdf.GetY()+h > d.layout.PageHeight {
		d.newPage()
	}
}

func (d *document) contentWidth() float64 {
	pageW, _ := d.pdf.GetPageSize()
	return pageW - marginLeft - marginRight
}

func (d *document) title(text, subtitle string) {
	d.pdf.SetFont(fontFamily, "B", 18)
	d.pdf.CellFormat(0, 10, d.tr(text), "", 1, "C", false, 0, "")
	if subtitle != "" {
		d.pdf.SetFont(fontFamily, "", 10)
		d.pdf.SetTextColor(100, 100, 100)
		d.pdf.CellFormat(0, lineHeight, d.tr(subtitle), "", 1, "C", false, 0, "")
		d.pdf.SetTextColor(0, 0, 0)
	}
	d.pdf.Ln(4)
}

func (d *document) heading(text string) {
	d.ensureSpace(2*lineHeight + 4)
	d.pdf.Ln(2)
	d.pdf.SetFont(fontFamily, "B", 14)
	d.pdf.SetFillColor(235, 235, 235)
	d.pdf.CellFormat(0, lineHeight+2, d.tr(text), "", 1, "L", true, 0, "")
	d.pdf.Ln(1)
}

func (d *document) subheading(text string) {
	d.ensureSpace(2 * lineHeight)
	d.pdf.SetFont(fontFamily, "B", 11)
	d.pdf.CellFormat(0, lineHeight, d.tr(text), "", 1, "L", false, 0, "")
}

func (d *document) field(label, value string) {
	d.ensureSpace(lineHeight)
	d.pdf.SetFont(fontFamily, "B", 10)
	d.pdf.CellFormat(labelWidth, lineHeight, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.SetFont(fontFamily, "", 10)
	d.pdf.CellFormat(0, lineHeight, d.tr(orDash(value)), "", 1, "L", false, 0, "")
}

// paragraph wraps text to the content width, paginating line by line.
func (d *document) paragraph(text string) {
	d.pdf.SetFont(fontFamily, "", 10)
	for _, line := range d.pdf.SplitText(d.tr(text), d.contentWidth()) {
		d.ensureSpace(lineHeight)
		d.pdf.CellFormat(0, lineHeight, line, "", 1, "L", false, 0, "")
	}
}

func (d *document) note(text string) {
	d.ensureSpace(lineHeight)
	d.pdf.SetFont(fontFamily, "I", 10)
	d.pdf.SetTextColor(110, 110, 110)
	d.pdf.CellFormat(0, lineHeight, d.tr(text), "", 1, "L", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

// line draws a label on the left and an amount right-aligned.
func (d *document) line(label string, amount float64) {
	d.ensureSpace(lineHeight)
	d.pdf.SetFont(fontFamily, "", 10)
	d.pdf.SetX(marginLeft + 5)
	d.pdf.CellFormat(d.contentWidth()-amountWidth-5, lineHeight, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.CellFormat(amountWidth, lineHeight, d.tr(d.amount(amount)), "", 1, "R", false, 0, "")
}

func (d *document) total(label string, amount float64, size float64) {
	d.ensureSpace(lineHeight + 2)
	x := d.pdf.GetX()
	y := d.pdf.GetY()
	d.pdf.Line(x+d.contentWidth()-amountWidth, y, x+d.contentWidth(), y)
	d.pdf.SetFont(fontFamily, "B", size)
	d.pdf.CellFormat(d.contentWidth()-amountWidth, lineHeight+1, d.tr(label), "", 0, "R", false, 0, "")
	d.pdf.CellFormat(amountWidth, lineHeight+1, d.tr(d.amount(amount)), "", 1, "R", false, 0, "")
}

// row draws one table row with the given column widths (mm).
func (d *document) row(widths []float64, cells []string, bold bool) {
	d.ensureSpace(lineHeight)
	style := ""
	if bold {
		style = "B"
	}
	d.pdf.SetFont(fontFamily, style, 9)
	for i, cell := range cells {
		ln := 0
		if i == len(cells)-1 {
			ln = 1
		}
		d.pdf.CellFormat(widths[i], lineHeight, d.tr(cell), "B", ln, "L", false, 0, "")
	}
}

func (d *document) amount(v float64) string {
	return formatAmount(d.layout.CurrencySymbol, v)
}

func (d *document) date(t time.Time) string {
	return formatDate(t, d.layout.Location)
}

// Document is a rendered PDF.
type Document struct {
	Content []byte
	Pages   int
}

func (d *document) finish() (*Document, error) {
	pages := d.pdf.PageCount()

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	return &Document{
		Content: buf.Bytes(),
		Pages:   pages,
	}, nil
}
