package instructionpdf

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/goliatone/go-betriebsanweisung/instruction"
)

// DefaultMaxHTMLBytes guards in-memory HTML buffering before PDF conversion.
const DefaultMaxHTMLBytes int64 = 8 * 1024 * 1024

// HTMLRenderer writes an assembled document as HTML.
type HTMLRenderer interface {
	RenderDocument(ctx context.Context, doc instruction.Document, w io.Writer) error
}

// RenderRequest contains HTML input and options for PDF engines.
type RenderRequest struct {
	HTML    []byte
	Options Options
}

// Engine renders HTML content into PDF bytes.
type Engine interface {
	Render(ctx context.Context, req RenderRequest) ([]byte, error)
}

// EngineFunc adapts a function to an Engine.
type EngineFunc func(ctx context.Context, req RenderRequest) ([]byte, error)

func (f EngineFunc) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	if f == nil {
		return nil, errors.New("pdf engine func is nil")
	}
	return f(ctx, req)
}

// HTMLSerializer converts documents to PDF through an HTML engine.
type HTMLSerializer struct {
	Enabled      bool
	HTML         HTMLRenderer
	Engine       Engine
	Options      Options
	MaxHTMLBytes int64
}

var _ instruction.Serializer = HTMLSerializer{}

// DocumentOptions returns engine options matching the document page geometry.
func DocumentOptions(page instruction.PageGeometry) Options {
	return Options{
		PageSize:        page.Size,
		PrintBackground: boolPtr(true),
		MarginTop:       formatMillimetres(page.MarginTop),
		MarginBottom:    formatMillimetres(page.MarginBottom),
		MarginLeft:      formatMillimetres(page.MarginLeft),
		MarginRight:     formatMillimetres(page.MarginRight),
	}
}

// Serialize renders HTML using the configured renderer and converts it to PDF.
func (s HTMLSerializer) Serialize(ctx context.Context, doc instruction.Document) ([]byte, error) {
	if !s.Enabled {
		return nil, instruction.NewError(instruction.KindNotImpl, "html pdf serializer is disabled", nil)
	}
	if s.HTML == nil {
		return nil, instruction.NewError(instruction.KindInternal, "html pdf serializer requires html renderer", nil)
	}
	if s.Engine == nil {
		return nil, instruction.NewError(instruction.KindInternal, "html pdf serializer requires engine", nil)
	}

	buffer := newLimitedBuffer(s.MaxHTMLBytes)
	if err := s.HTML.RenderDocument(ctx, doc, buffer); err != nil {
		return nil, err
	}

	options := mergeOptions(DocumentOptions(doc.Page), s.Options)
	pdf, err := s.Engine.Render(ctx, RenderRequest{
		HTML:    buffer.Bytes(),
		Options: options,
	})
	if err != nil {
		return nil, err
	}
	if len(pdf) == 0 {
		return nil, instruction.NewError(instruction.KindInternal, "pdf engine returned no output", nil)
	}
	return pdf, nil
}

// WKHTMLTOPDFEngine invokes wkhtmltopdf for HTML-to-PDF conversion.
type WKHTMLTOPDFEngine struct {
	Command string
	Args    []string
	Env     []string
	Timeout time.Duration
}

// Render executes wkhtmltopdf using stdin/stdout for HTML/PDF.
func (e WKHTMLTOPDFEngine) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	cmdPath := strings.TrimSpace(e.Command)
	if cmdPath == "" {
		cmdPath = "wkhtmltopdf"
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cmdCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	args := append(wkhtmltopdfArgs(req.Options), e.Args...)
	args = append(args, "-", "-")
	cmd := exec.CommandContext(cmdCtx, cmdPath, args...)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}
	cmd.Stdin = bytes.NewReader(req.HTML)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = "wkhtmltopdf failed"
		}
		return nil, instruction.NewError(instruction.KindInternal, message, err)
	}
	return stdout.Bytes(), nil
}

func wkhtmltopdfArgs(opts Options) []string {
	var args []string
	if opts.PageSize != "" {
		args = append(args, "--page-size", opts.PageSize)
	}
	if opts.MarginTop != "" {
		args = append(args, "--margin-top", opts.MarginTop)
	}
	if opts.MarginBottom != "" {
		args = append(args, "--margin-bottom", opts.MarginBottom)
	}
	if opts.MarginLeft != "" {
		args = append(args, "--margin-left", opts.MarginLeft)
	}
	if opts.MarginRight != "" {
		args = append(args, "--margin-right", opts.MarginRight)
	}
	if opts.PrintBackground != nil && !*opts.PrintBackground {
		args = append(args, "--no-background")
	}
	return args
}

type limitedBuffer struct {
	buf     bytes.Buffer
	maxSize int64
}

func newLimitedBuffer(maxSize int64) *limitedBuffer {
	if maxSize <= 0 {
		maxSize = DefaultMaxHTMLBytes
	}
	return &limitedBuffer{maxSize: maxSize}
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if b.maxSize > 0 && int64(b.buf.Len()+len(p)) > b.maxSize {
		return 0, instruction.NewError(instruction.KindInvalidInput, "pdf serializer max html bytes exceeded", nil)
	}
	return b.buf.Write(p)
}

func (b *limitedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}
