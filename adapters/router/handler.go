package instructionrouter

import (
	"github.com/goliatone/go-betriebsanweisung/adapters/instructionapi"
	"github.com/goliatone/go-betriebsanweisung/instruction"
	"github.com/goliatone/go-router"
)

// Config configures the go-router adapter.
type Config = instructionapi.Config

// Handler exposes instruction routes for go-router.
type Handler struct {
	controller *instructionapi.Controller
	logger     instruction.Logger
	maxBody    int64
}

// NewHandler creates a go-router handler.
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

// RegisterRoutes registers routes on a compatible go-router router.
func (h *Handler) RegisterRoutes(router any) {
	r, ok := router.(routeRegistrar)
	if !ok || h == nil || h.controller == nil {
		return
	}
	c := h.controller

	r.Get(c.Route(instructionapi.PathIndex), h.Handle)
	r.Get(c.Route(instructionapi.PathTemplates), h.Handle)
	r.Get(c.Route(instructionapi.PathTemplates)+"/:key", h.Handle)
	r.Post(c.Route(instructionapi.PathCreate), h.Handle)
	r.Post(c.Route(instructionapi.PathPreview), h.Handle)
	r.Get(c.Route(instructionapi.PathHistory), h.Handle)
}

// Handle executes the shared instruction workflow.
func (h *Handler) Handle(c router.Context) error {
	if c == nil {
		return nil
	}
	if h == nil || h.controller == nil {
		instructionapi.WriteError(newExchange(c, 0), instruction.NewError(instruction.KindInternal, "handler is nil", nil))
		return nil
	}
	ex := newExchange(c, h.maxBody)
	h.controller.Serve(ex, ex)
	h.logger.Debugf("%s %s -> %d (%d bytes)", c.Method(), c.Path(), ex.Status(), ex.written)
	return nil
}

type routeRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}
