package instructionpdf

import (
	"bytes"
	"context"
	"strings"

	"github.com/goliatone/go-betriebsanweisung/instruction"
	"github.com/jung-kurt/gofpdf"
)

const (
	fontFamily       = "Helvetica"
	lineHeightFactor = 1.2
)

// FPDFSerializer lays out documents with gofpdf using the core Helvetica font.
type FPDFSerializer struct {
	Creator  string
	Compress bool
}

// NewFPDFSerializer creates a serializer with compressed page streams.
func NewFPDFSerializer(creator string) FPDFSerializer {
	return FPDFSerializer{Creator: creator, Compress: true}
}

var _ instruction.Serializer = FPDFSerializer{}

// Serialize renders doc into PDF bytes. Dates come from doc.Meta.CreatedAt so
// equal documents serialize to equal bytes.
func (s FPDFSerializer) Serialize(ctx context.Context, doc instruction.Document) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	page := doc.Page
	if page.Size == "" {
		page = instruction.A4
	}

	pdf := gofpdf.New("P", "mm", page.Size, "")
	pdf.SetMargins(page.MarginLeft, page.MarginTop, page.MarginRight)
	pdf.SetAutoPageBreak(true, page.MarginBottom)
	pdf.SetCompression(s.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.Meta.CreatedAt)
	pdf.SetModificationDate(doc.Meta.CreatedAt)
	pdf.SetTitle(doc.Meta.Title, true)
	pdf.SetAuthor(doc.Meta.Author, true)
	pdf.SetSubject(doc.Meta.Subject, true)
	if s.Creator != "" {
		pdf.SetCreator(s.Creator, true)
	}

	w := &fpdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.AddPage()
	for _, block := range doc.Blocks {
		w.write(block)
		if pdf.Err() {
			break
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, instruction.NewError(instruction.KindInternal, "pdf layout failed", err)
	}
	return buf.Bytes(), nil
}

type fpdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (w *fpdfWriter) write(block instruction.Block) {
	switch b := block.(type) {
	case instruction.TitleBlock:
		w.title(b)
	case instruction.SpacerBlock:
		w.pdf.Ln(b.Height)
	case instruction.KeyValueTable:
		w.table(b)
	case instruction.HeadingBar:
		w.heading(b)
	case instruction.Paragraph:
		w.paragraph(b)
	case instruction.SignatureBlock:
		w.signature(b)
	}
}

func (w *fpdfWriter) title(b instruction.TitleBlock) {
	w.pdf.SetFont(fontFamily, "B", b.FontSize)
	w.pdf.SetTextColor(int(b.Color.R), int(b.Color.G), int(b.Color.B))
	w.pdf.CellFormat(0, lineHeight(b.FontSize), w.tr(b.Text), "", 1, "C", false, 0, "")
	w.pdf.Ln(instruction.PointsToMillimetres(b.SpaceAfter))
}

func (w *fpdfWriter) table(b instruction.KeyValueTable) {
	h := lineHeight(b.FontSize)
	padding := instruction.PointsToMillimetres(b.RowPadding)
	w.pdf.SetCellMargin(1)
	for _, row := range b.Rows {
		w.pdf.SetFont(fontFamily, "B", b.FontSize)
		w.pdf.SetTextColor(int(b.LabelColor.R), int(b.LabelColor.G), int(b.LabelColor.B))
		w.pdf.CellFormat(b.LabelWidth, h, w.tr(row.Label), "", 0, "L", false, 0, "")

		w.pdf.SetFont(fontFamily, "", b.FontSize)
		w.pdf.SetTextColor(0, 0, 0)
		w.pdf.MultiCell(b.ValueWidth, h, w.tr(row.Value), "", "L", false)
		w.pdf.Ln(padding)
	}
}

func (w *fpdfWriter) heading(b instruction.HeadingBar) {
	w.pdf.SetFont(fontFamily, "B", b.FontSize)
	w.pdf.SetFillColor(int(b.Fill.R), int(b.Fill.G), int(b.Fill.B))
	w.pdf.SetTextColor(int(b.TextColor.R), int(b.TextColor.G), int(b.TextColor.B))
	w.pdf.SetCellMargin(b.PaddingX)
	h := lineHeight(b.FontSize) + 2*b.PaddingY
	w.pdf.CellFormat(b.Width, h, w.tr(b.Label), "", 1, "L", true, 0, "")
	w.pdf.SetCellMargin(1)
}

func (w *fpdfWriter) paragraph(b instruction.Paragraph) {
	if len(b.Lines) == 0 {
		return
	}
	w.pdf.SetFont(fontFamily, "", b.FontSize)
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.SetCellMargin(1)
	w.pdf.MultiCell(0, instruction.PointsToMillimetres(b.Leading), w.tr(strings.Join(b.Lines, "\n")), "", "L", false)
}

func (w *fpdfWriter) signature(b instruction.SignatureBlock) {
	h := lineHeight(b.FontSize)
	w.pdf.SetFont(fontFamily, "", b.FontSize)
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.CellFormat(b.ColumnWidth, h, b.Rule, "", 0, "C", false, 0, "")
	w.pdf.CellFormat(b.ColumnWidth, h, b.Rule, "", 1, "C", false, 0, "")
	w.pdf.CellFormat(b.ColumnWidth, h, w.tr(b.Captions[0]), "", 0, "C", false, 0, "")
	w.pdf.CellFormat(b.ColumnWidth, h, w.tr(b.Captions[1]), "", 1, "C", false, 0, "")
}

func lineHeight(fontSize float64) float64 {
	return instruction.PointsToMillimetres(fontSize) * lineHeightFactor
}
