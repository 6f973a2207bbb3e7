package instructionhttp

import (
	"net/http"

	"github.com/goliatone/go-betriebsanweisung/adapters/instructionapi"
	"github.com/goliatone/go-betriebsanweisung/instruction"
)

// Config configures the HTTP adapter.
type Config = instructionapi.Config

// Handler exposes instruction HTTP endpoints.
type Handler struct {
	controller *instructionapi.Controller
	logger     instruction.Logger
	maxBody    int64
}

// NewHandler creates a new HTTP handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = instruction.NopLogger{}
	}
	return &Handler{
		controller: instructionapi.NewController(cfg),
		logger:     logger,
		maxBody:    cfg.MaxBodyBytes,
	}
}

// RegisterRoutes registers handlers on a compatible router.
func (h *Handler) RegisterRoutes(router any) {
	switch r := router.(type) {
	case interface{ Handle(string, http.Handler) }:
		r.Handle(h.rootPath(), h)
	case interface {
		HandleFunc(string, func(http.ResponseWriter, *http.Request))
	}:
		r.HandleFunc(h.rootPath(), h.ServeHTTP)
	}
}

// ServeHTTP routes instruction endpoints.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if w == nil || r == nil {
		return
	}
	if h == nil || h.controller == nil {
		instructionapi.WriteError(newExchange(w, r, 0), instruction.NewError(instruction.KindInternal, "handler is nil", nil))
		return
	}
	ex := newExchange(w, r, h.maxBody)
	h.controller.Serve(ex, ex)
	h.logger.Debugf("%s %s -> %d (%d bytes)", r.Method, r.URL.Path, ex.Status(), ex.written)
}

func (h *Handler) rootPath() string {
	if h == nil || h.controller == nil {
		return "/"
	}
	return h.controller.Route(instructionapi.PathIndex)
}
