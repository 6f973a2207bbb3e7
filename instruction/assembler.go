package instruction

import (
	"strings"
	"time"
)

const pointsPerMillimetre = 72.0 / 25.4

// Assembler turns records into serializer-independent documents.
type Assembler struct {
	Catalog *Catalog
	Policy  CategoryPolicy
	Logger  Logger
	Now     func() time.Time
}

// NewAssembler creates an assembler over the default catalog with a strict
// category policy.
func NewAssembler() *Assembler {
	return &Assembler{
		Catalog: DefaultCatalog(),
		Policy:  StrictPolicy{},
		Logger:  NopLogger{},
		Now:     time.Now,
	}
}

// Assemble builds the block list for record.
func (a *Assembler) Assemble(record Record) (Document, error) {
	catalog := a.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	policy := a.Policy
	if policy == nil {
		policy = StrictPolicy{}
	}
	logger := a.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}

	category, err := policy.Resolve(catalog, record.Category, logger)
	if err != nil {
		return Document{}, err
	}
	createdAt := now()

	doc := Document{
		Meta: Meta{
			Title:     documentTitle(record),
			Author:    strings.TrimSpace(record.Author),
			Subject:   category.Name,
			Category:  category,
			CreatedAt: createdAt,
		},
		Page: A4,
	}

	doc.Blocks = append(doc.Blocks,
		TitleBlock{
			Text:       DocumentTitle,
			FontSize:   18,
			Color:      RGB{R: 0x1A, G: 0x1A, B: 0x1A},
			SpaceAfter: 30,
		},
		SpacerBlock{Height: 5},
		KeyValueTable{
			Rows: []KeyValueRow{
				{Label: LabelWorkArea, Value: record.WorkArea},
				{Label: LabelTitle, Value: record.Title},
				{Label: LabelCreatedAt, Value: createdAt.Format(DateLayout)},
				{Label: LabelAuthor, Value: record.Author},
			},
			LabelWidth: 50,
			ValueWidth: ContentWidth - 50,
			FontSize:   9,
			LabelColor: RGB{R: 0x33, G: 0x33, B: 0x33},
			RowPadding: 8,
		},
		SpacerBlock{Height: 10},
	)

	for _, section := range Sections {
		doc.Blocks = append(doc.Blocks,
			HeadingBar{
				Number:    section.Number,
				Label:     section.Label,
				Fill:      category.Color,
				TextColor: White,
				FontSize:  12,
				Width:     ContentWidth,
				PaddingX:  10 / pointsPerMillimetre,
				PaddingY:  8 / pointsPerMillimetre,
			},
			SpacerBlock{Height: 3},
		)
		if lines := SplitLines(section.Text(record)); len(lines) > 0 {
			doc.Blocks = append(doc.Blocks, Paragraph{
				Section:  section.Number,
				Lines:    lines,
				FontSize: 10,
				Leading:  14,
			})
		}
		doc.Blocks = append(doc.Blocks, SpacerBlock{Height: 5})
	}

	doc.Blocks = append(doc.Blocks,
		SpacerBlock{Height: 10},
		SignatureBlock{
			Rule:        SignatureRule,
			Captions:    [2]string{AuthorSignature, SupervisorSignature},
			ColumnWidth: ContentWidth / 2,
			FontSize:    8,
		},
	)

	logger.Debugf("assembled %s document with %d blocks", category.Key, len(doc.Blocks))
	return doc, nil
}

func documentTitle(record Record) string {
	title := strings.TrimSpace(record.Title)
	if title == "" {
		return "Betriebsanweisung"
	}
	return "Betriebsanweisung - " + title
}

// PointsToMillimetres converts a typographic size to millimetres.
func PointsToMillimetres(pt float64) float64 {
	return pt / pointsPerMillimetre
}
