package instructiontemplate

import (
	"context"
	"embed"
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/goliatone/go-betriebsanweisung/instruction"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	documentTemplate = "templates/document.html"
	formTemplate     = "templates/form.html"
)

// Renderer executes the embedded pongo2 templates.
type Renderer struct {
	AppName string

	once      sync.Once
	templates map[string]*pongo2.Template
	err       error
}

// NewRenderer creates a renderer and compiles its templates.
func NewRenderer(appName string) (*Renderer, error) {
	r := &Renderer{AppName: appName}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) load() error {
	r.once.Do(func() {
		r.templates = make(map[string]*pongo2.Template)
		for _, name := range []string{documentTemplate, formTemplate} {
			src, err := templateFS.ReadFile(name)
			if err != nil {
				r.err = err
				return
			}
			tpl, err := pongo2.FromBytes(src)
			if err != nil {
				r.err = instruction.NewError(instruction.KindInternal, "compile template "+name, err)
				return
			}
			r.templates[name] = tpl
		}
	})
	return r.err
}

func (r *Renderer) execute(ctx context.Context, name string, data pongo2.Context, w io.Writer) error {
	if r == nil {
		return instruction.NewError(instruction.KindInternal, "template renderer is nil", nil)
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if err := r.load(); err != nil {
		return err
	}
	if err := r.templates[name].ExecuteWriter(data, w); err != nil {
		return instruction.NewError(instruction.KindInternal, "execute template "+name, err)
	}
	return nil
}

// RenderDocument writes doc as a standalone HTML page.
func (r *Renderer) RenderDocument(ctx context.Context, doc instruction.Document, w io.Writer) error {
	return r.execute(ctx, documentTemplate, pongo2.Context{
		"meta":     documentMeta(doc),
		"page_css": pageCSS(doc.Page),
		"blocks":   blockViews(doc.Blocks),
	}, w)
}

// FormData configures the entry form page. BasePath prefixes every API
// URL the page posts to.
type FormData struct {
	Categories []instruction.Category
	Selected   instruction.CategoryKey
	Author     string
	BasePath   string
}

// RenderForm writes the entry form page.
func (r *Renderer) RenderForm(ctx context.Context, data FormData, w io.Writer) error {
	selected := data.Selected
	if selected == "" {
		selected = instruction.CategoryActivity
	}
	return r.execute(ctx, formTemplate, pongo2.Context{
		"app_name":       r.AppName,
		"categories":     categoryViews(data.Categories),
		"selected":       string(selected),
		"author":         data.Author,
		"base_path":      strings.TrimRight(data.BasePath, "/"),
		"header_fields":  instruction.HeaderFields,
		"section_fields": instruction.SectionFields,
	}, w)
}
