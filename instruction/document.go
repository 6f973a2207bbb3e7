package instruction

import "time"

// Page geometry in millimetres.
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	MarginTop    = 20.0
	MarginBottom = 20.0
	MarginLeft   = 25.0
	MarginRight  = 25.0
	ContentWidth = PageWidth - MarginLeft - MarginRight
)

// Fixed document text.
const (
	DocumentTitle       = "BETRIEBSANWEISUNG"
	DateLayout          = "02.01.2006"
	SignatureRule       = "________________________________________"
	AuthorSignature     = "Datum, Unterschrift Ersteller"
	SupervisorSignature = "Datum, Unterschrift Vorgesetzter"
)

// Header table labels in row order.
const (
	LabelWorkArea  = "Arbeitsbereich:"
	LabelTitle     = "Tätigkeit/Maschine:"
	LabelCreatedAt = "Erstellt am:"
	LabelAuthor    = "Erstellt von:"
)

// PageGeometry describes the page box and margins of a document.
type PageGeometry struct {
	Size         string
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
}

// A4 is the page geometry of every instruction document.
var A4 = PageGeometry{
	Size:         "A4",
	Width:        PageWidth,
	Height:       PageHeight,
	MarginTop:    MarginTop,
	MarginBottom: MarginBottom,
	MarginLeft:   MarginLeft,
	MarginRight:  MarginRight,
}

// Meta carries document metadata.
type Meta struct {
	Title     string
	Author    string
	Subject   string
	Category  Category
	CreatedAt time.Time
}

// Document is the assembled, serializer-independent block list.
type Document struct {
	Meta   Meta
	Page   PageGeometry
	Blocks []Block
}

// BlockKind names a block type.
type BlockKind string

const (
	BlockTitle     BlockKind = "title"
	BlockSpacer    BlockKind = "spacer"
	BlockTable     BlockKind = "table"
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockSignature BlockKind = "signature"
)

// Block is one layout element. The set of implementations is closed.
type Block interface {
	Kind() BlockKind
	block()
}

// TitleBlock is the centered document title. Sizes are in points.
type TitleBlock struct {
	Text       string
	FontSize   float64
	Color      RGB
	SpaceAfter float64
}

// SpacerBlock is vertical whitespace in millimetres.
type SpacerBlock struct {
	Height float64
}

// KeyValueRow is one header table row.
type KeyValueRow struct {
	Label string
	Value string
}

// KeyValueTable is the two-column header table.
type KeyValueTable struct {
	Rows       []KeyValueRow
	LabelWidth float64
	ValueWidth float64
	FontSize   float64
	LabelColor RGB
	RowPadding float64
}

// HeadingBar is a full-width filled section heading.
type HeadingBar struct {
	Number    int
	Label     string
	Fill      RGB
	TextColor RGB
	FontSize  float64
	Width     float64
	PaddingX  float64
	PaddingY  float64
}

// Paragraph is a section body with one entry per rendered line.
type Paragraph struct {
	Section  int
	Lines    []string
	FontSize float64
	Leading  float64
}

// SignatureBlock is the trailing pair of signature rules.
type SignatureBlock struct {
	Rule        string
	Captions    [2]string
	ColumnWidth float64
	FontSize    float64
}

func (TitleBlock) Kind() BlockKind     { return BlockTitle }
func (SpacerBlock) Kind() BlockKind    { return BlockSpacer }
func (KeyValueTable) Kind() BlockKind  { return BlockTable }
func (HeadingBar) Kind() BlockKind     { return BlockHeading }
func (Paragraph) Kind() BlockKind      { return BlockParagraph }
func (SignatureBlock) Kind() BlockKind { return BlockSignature }

func (TitleBlock) block()     {}
func (SpacerBlock) block()    {}
func (KeyValueTable) block()  {}
func (HeadingBar) block()     {}
func (Paragraph) block()      {}
func (SignatureBlock) block() {}

// HeadingBars returns the heading bars in order.
func (d Document) HeadingBars() []HeadingBar {
	var out []HeadingBar
	for _, b := range d.Blocks {
		if bar, ok := b.(HeadingBar); ok {
			out = append(out, bar)
		}
	}
	return out
}

// Paragraph returns the body of section number, if one was emitted.
func (d Document) Paragraph(section int) (Paragraph, bool) {
	for _, b := range d.Blocks {
		if p, ok := b.(Paragraph); ok && p.Section == section {
			return p, true
		}
	}
	return Paragraph{}, false
}

// Table returns the header table.
func (d Document) Table() (KeyValueTable, bool) {
	for _, b := range d.Blocks {
		if t, ok := b.(KeyValueTable); ok {
			return t, true
		}
	}
	return KeyValueTable{}, false
}
