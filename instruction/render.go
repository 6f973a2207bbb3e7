package instruction

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
)

// Serializer turns an assembled document into PDF bytes.
type Serializer interface {
	Serialize(ctx context.Context, doc Document) ([]byte, error)
}

// SerializerFunc adapts a function to a Serializer.
type SerializerFunc func(ctx context.Context, doc Document) ([]byte, error)

func (f SerializerFunc) Serialize(ctx context.Context, doc Document) ([]byte, error) {
	if f == nil {
		return nil, NewError(KindInternal, "serializer func is nil", nil)
	}
	return f(ctx, doc)
}

// PageCounter reports the number of pages of a PDF.
type PageCounter interface {
	PageCount(ctx context.Context, pdf []byte) (int, error)
}

var pdfMagic = []byte("%PDF-")

// Service renders records into downloadable PDF documents.
type Service struct {
	Assembler        *Assembler
	Serializer       Serializer
	Pages            PageCounter
	History          History
	Logger           Logger
	FilenameTemplate string
	Now              func() time.Time
	IDGenerator      func() string
}

// NewService creates a service with a strict assembler over the default catalog.
func NewService(serializer Serializer) *Service {
	return &Service{
		Assembler:   NewAssembler(),
		Serializer:  serializer,
		Logger:      NopLogger{},
		Now:         time.Now,
		IDGenerator: uuid.NewString,
	}
}

// Catalog returns the catalog the service resolves categories against.
func (s *Service) Catalog() *Catalog {
	if s == nil || s.Assembler == nil || s.Assembler.Catalog == nil {
		return DefaultCatalog()
	}
	return s.Assembler.Catalog
}

// RequiredFields returns the fields front-ends should validate for the
// service's category policy.
func (s *Service) RequiredFields() RequiredFields {
	if s == nil || s.Assembler == nil {
		return DefaultRequiredFields
	}
	return RequiredFieldsFor(s.Assembler.Policy)
}

// Assemble builds the document for record using the service clock.
func (s *Service) Assemble(record Record) (Document, error) {
	if s == nil {
		return Document{}, NewError(KindInternal, "service is nil", nil)
	}
	s.defaults()
	return s.assembler(s.Now()).Assemble(record)
}

// Render assembles and serializes record.
func (s *Service) Render(ctx context.Context, record Record) (Rendered, error) {
	if s == nil {
		return Rendered{}, NewError(KindInternal, "service is nil", nil)
	}
	if s.Serializer == nil {
		return Rendered{}, NewError(KindNotImpl, "no serializer configured", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Rendered{}, err
	}
	s.defaults()

	generatedAt := s.Now()
	doc, err := s.assembler(generatedAt).Assemble(record)
	if err != nil {
		return Rendered{}, err
	}

	pdf, err := s.Serializer.Serialize(ctx, doc)
	if err != nil {
		return Rendered{}, err
	}
	if !bytes.HasPrefix(pdf, pdfMagic) {
		return Rendered{}, NewError(KindInternal, "serializer produced no pdf", nil)
	}

	filename, err := RenderFilename(s.FilenameTemplate, doc.Meta.Category.Key, generatedAt)
	if err != nil {
		return Rendered{}, NewError(KindInternal, "invalid filename template", err)
	}

	result := Rendered{
		ID:          s.IDGenerator(),
		Filename:    filename,
		ContentType: ContentTypePDF,
		Bytes:       pdf,
		Category:    doc.Meta.Category.Key,
		GeneratedAt: generatedAt,
	}

	if s.Pages != nil {
		pages, err := s.Pages.PageCount(ctx, pdf)
		if err != nil {
			s.Logger.Errorf("page count for %s failed: %v", result.ID, err)
		} else {
			result.Pages = pages
		}
	}

	result.Duration = s.Now().Sub(generatedAt)

	if s.History != nil {
		entry := HistoryEntry{
			ID:        result.ID,
			Category:  result.Category,
			Filename:  result.Filename,
			Bytes:     int64(len(pdf)),
			Pages:     result.Pages,
			CreatedAt: generatedAt,
			Duration:  result.Duration,
		}
		if err := s.History.Record(ctx, entry); err != nil {
			s.Logger.Errorf("history record for %s failed: %v", result.ID, err)
		}
	}

	s.Logger.Infof("rendered %s (%s, %d bytes)", result.Filename, result.Category, len(pdf))
	return result, nil
}

func (s *Service) defaults() {
	if s.Assembler == nil {
		s.Assembler = NewAssembler()
	}
	if s.Logger == nil {
		s.Logger = NopLogger{}
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	if s.IDGenerator == nil {
		s.IDGenerator = uuid.NewString
	}
}

func (s *Service) assembler(at time.Time) *Assembler {
	asm := *s.Assembler
	asm.Now = func() time.Time { return at }
	if asm.Logger == nil {
		asm.Logger = s.Logger
	}
	return &asm
}
