package instructionapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	instructiontemplate "github.com/goliatone/go-betriebsanweisung/adapters/template"
	"github.com/goliatone/go-betriebsanweisung/instruction"
	errorslib "github.com/goliatone/go-errors"
)

// Route paths relative to the controller base path.
const (
	PathIndex     = "/"
	PathTemplates = "/api/vorlagen"
	PathCreate    = "/api/erstellen"
	PathPreview   = "/api/vorschau"
	PathHistory   = "/api/verlauf"
)

// Pages renders HTML pages.
type Pages interface {
	RenderDocument(ctx context.Context, doc instruction.Document, w io.Writer) error
	RenderForm(ctx context.Context, data instructiontemplate.FormData, w io.Writer) error
}

// Validator checks decoded records before rendering.
type Validator interface {
	Validate(record instruction.Record) error
}

// Config configures the shared instruction API controller.
type Config struct {
	Service        *instruction.Service
	Pages          Pages
	History        instruction.History
	Validator      Validator
	RequestDecoder RequestDecoder
	Logger         instruction.Logger
	BasePath       string
	DefaultAuthor  string
	HistoryLimit   int
	// MaxBodyBytes caps POST bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Controller exposes instruction handlers for multiple transports.
type Controller struct {
	service        *instruction.Service
	pages          Pages
	history        instruction.History
	validator      Validator
	requestDecoder RequestDecoder
	logger         instruction.Logger
	basePath       string
	defaultAuthor  string
	historyLimit   int
}

// NewController creates a shared instruction API controller.
func NewController(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = instruction.NopLogger{}
	}
	decoder := cfg.RequestDecoder
	if decoder == nil {
		decoder = ContentTypeDecoder{
			JSON: JSONRequestDecoder{MaxBodyBytes: cfg.MaxBodyBytes},
			Form: FormRequestDecoder{MaxBodyBytes: cfg.MaxBodyBytes},
		}
	}
	history := cfg.History
	if history == nil && cfg.Service != nil {
		history = cfg.Service.History
	}
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = instruction.DefaultHistoryLimit
	}
	return &Controller{
		service:        cfg.Service,
		pages:          cfg.Pages,
		history:        history,
		validator:      cfg.Validator,
		requestDecoder: decoder,
		logger:         logger,
		basePath:       strings.TrimRight(cfg.BasePath, "/"),
		defaultAuthor:  cfg.DefaultAuthor,
		historyLimit:   limit,
	}
}

// BasePath returns the configured base path.
func (c *Controller) BasePath() string {
	if c == nil {
		return ""
	}
	return c.basePath
}

// Route joins the base path with a route path.
func (c *Controller) Route(path string) string {
	if c == nil || c.basePath == "" {
		return path
	}
	if path == PathIndex {
		return c.basePath + "/"
	}
	return c.basePath + path
}

// Serve routes instruction endpoints using the shared controller.
func (c *Controller) Serve(req Request, res Response) {
	if res == nil {
		return
	}
	if c == nil {
		WriteError(res, instruction.NewError(instruction.KindInternal, "handler is nil", nil))
		return
	}
	if req == nil {
		WriteError(res, instruction.NewError(instruction.KindInternal, "request is nil", nil))
		return
	}
	if c.basePath != "" && req.Path() != c.basePath && !strings.HasPrefix(req.Path(), c.basePath+"/") {
		writeNotFound(res)
		return
	}

	path := "/" + strings.Trim(strings.TrimPrefix(req.Path(), c.basePath), "/")
	switch {
	case path == PathIndex:
		c.only(req, res, http.MethodGet, c.handleIndex)
	case path == PathTemplates:
		c.only(req, res, http.MethodGet, c.handleTemplates)
	case strings.HasPrefix(path, PathTemplates+"/"):
		key := strings.TrimPrefix(path, PathTemplates+"/")
		c.only(req, res, http.MethodGet, func(req Request, res Response) {
			c.handleTemplate(req, res, key)
		})
	case path == PathCreate:
		c.only(req, res, http.MethodPost, c.handleCreate)
	case path == PathPreview:
		c.only(req, res, http.MethodPost, c.handlePreview)
	case path == PathHistory:
		c.only(req, res, http.MethodGet, c.handleHistory)
	default:
		writeNotFound(res)
	}
}

func (c *Controller) only(req Request, res Response, method string, handler func(Request, Response)) {
	if req.Method() != method {
		res.SetHeader("Allow", method)
		res.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	handler(req, res)
}

func (c *Controller) handleIndex(req Request, res Response) {
	if c.pages == nil {
		WriteError(res, instruction.NewError(instruction.KindNotImpl, "form page not configured", nil))
		return
	}
	selected := instruction.CategoryKey(req.Query("kategorie"))
	if !c.catalog().Has(selected) {
		selected = instruction.CategoryActivity
	}

	var buf bytes.Buffer
	err := c.pages.RenderForm(req.Context(), instructiontemplate.FormData{
		Categories: c.catalog().Categories(),
		Selected:   selected,
		Author:     c.defaultAuthor,
		BasePath:   c.basePath,
	}, &buf)
	if err != nil {
		WriteError(res, err)
		return
	}
	writeHTML(res, buf.Bytes())
}

func (c *Controller) handleTemplates(req Request, res Response) {
	writeJSON(res, http.StatusOK, TemplatesFromCatalog(c.catalog()))
}

func (c *Controller) handleTemplate(req Request, res Response, key string) {
	catalog := c.catalog()
	category, err := catalog.Lookup(instruction.CategoryKey(key))
	if err != nil {
		WriteError(res, instruction.NewError(instruction.KindNotFound, fmt.Sprintf("template %q not found", key), err))
		return
	}
	order := 0
	for i, k := range catalog.Keys() {
		if k == category.Key {
			order = i
		}
	}
	writeJSON(res, http.StatusOK, TemplateFromCategory(category, order))
}

func (c *Controller) handleCreate(req Request, res Response) {
	if c.service == nil {
		WriteError(res, instruction.NewError(instruction.KindNotImpl, "instruction service not configured", nil))
		return
	}
	record, ok := c.decode(req, res)
	if !ok {
		return
	}

	result, err := c.service.Render(req.Context(), record)
	if err != nil {
		c.logger.Errorf("render failed: %v", err)
		WriteError(res, err)
		return
	}

	setDownloadHeaders(res, result.ID, sanitizeFilename(result.Filename), result.ContentType)
	res.SetHeader("Content-Length", strconv.Itoa(len(result.Bytes)))
	res.WriteHeader(http.StatusOK)
	if _, err := res.Write(result.Bytes); err != nil {
		c.logger.Errorf("write %s failed: %v", result.ID, err)
	}
}

func (c *Controller) handlePreview(req Request, res Response) {
	if c.service == nil || c.pages == nil {
		WriteError(res, instruction.NewError(instruction.KindNotImpl, "preview not configured", nil))
		return
	}
	record, ok := c.decode(req, res)
	if !ok {
		return
	}

	doc, err := c.service.Assemble(record)
	if err != nil {
		WriteError(res, err)
		return
	}
	var buf bytes.Buffer
	if err := c.pages.RenderDocument(req.Context(), doc, &buf); err != nil {
		WriteError(res, err)
		return
	}
	writeHTML(res, buf.Bytes())
}

func (c *Controller) handleHistory(req Request, res Response) {
	if c.history == nil {
		writeJSON(res, http.StatusOK, HistoryResponse{Items: []HistoryItem{}})
		return
	}
	limit := c.historyLimit
	if raw := req.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(res, instruction.NewError(instruction.KindInvalidInput, "invalid limit", err))
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	entries, err := c.history.List(req.Context(), limit)
	if err != nil {
		WriteError(res, err)
		return
	}
	items := make([]HistoryItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historyItem(entry))
	}
	writeJSON(res, http.StatusOK, HistoryResponse{Items: items})
}

func (c *Controller) decode(req Request, res Response) (instruction.Record, bool) {
	record, err := c.requestDecoder.Decode(req)
	if err != nil {
		WriteError(res, err)
		return instruction.Record{}, false
	}
	if c.validator != nil {
		if err := c.validator.Validate(record); err != nil {
			WriteError(res, err)
			return instruction.Record{}, false
		}
	}
	return record, true
}

func (c *Controller) catalog() *instruction.Catalog {
	if c.service == nil {
		return instruction.DefaultCatalog()
	}
	return c.service.Catalog()
}

func writeNotFound(res Response) {
	res.SetHeader("Content-Type", "text/plain; charset=utf-8")
	res.SetHeader("X-Content-Type-Options", "nosniff")
	res.WriteHeader(http.StatusNotFound)
	_, _ = res.Write([]byte("404 page not found\n"))
}

func writeHTML(res Response, body []byte) {
	res.SetHeader("Content-Type", "text/html; charset=utf-8")
	res.WriteHeader(http.StatusOK)
	_, _ = res.Write(body)
}

// WriteError writes err as a JSON error response.
func WriteError(res Response, err error) {
	if err == nil {
		res.WriteHeader(http.StatusNoContent)
		return
	}
	ge := instruction.AsGoError(err)
	payload := ErrorResponse{
		Error: ErrorBody{
			Message: ge.Message,
			Code:    ge.TextCode,
		},
	}
	for _, field := range ge.ValidationErrors {
		payload.Error.Fields = append(payload.Error.Fields, FieldError{Field: field.Field, Message: field.Message})
	}
	writeJSON(res, statusForError(ge), payload)
}

func writeJSON(res Response, status int, payload any) {
	_ = res.WriteJSON(status, payload)
}

func statusForError(err *errorslib.Error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	if err.TextCode == "not_implemented" {
		return http.StatusNotImplemented
	}
	switch err.Category {
	case errorslib.CategoryValidation, errorslib.CategoryBadInput:
		return http.StatusBadRequest
	case errorslib.CategoryNotFound:
		return http.StatusNotFound
	case errorslib.CategoryOperation:
		if err.TextCode == "canceled" {
			return http.StatusConflict
		}
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func sanitizeFilename(filename string) string {
	name := strings.TrimSpace(filename)
	name = strings.ReplaceAll(name, "\"", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "betriebsanweisung.pdf"
	}
	return name
}

func setDownloadHeaders(res Response, documentID, filename, contentType string) {
	if contentType == "" {
		contentType = instruction.ContentTypePDF
	}
	res.SetHeader("Content-Type", contentType)
	res.SetHeader("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if documentID != "" {
		res.SetHeader("X-Document-Id", documentID)
	}
}
