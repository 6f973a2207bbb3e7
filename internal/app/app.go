// Package app wires configuration, rendering, history and transports into a
// runnable application.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	historybun "github.com/goliatone/go-betriebsanweisung/adapters/history/bun"
	"github.com/goliatone/go-betriebsanweisung/adapters/instructionapi"
	instructionpdf "github.com/goliatone/go-betriebsanweisung/adapters/pdf"
	instructiontemplate "github.com/goliatone/go-betriebsanweisung/adapters/template"
	"github.com/goliatone/go-betriebsanweisung/config"
	"github.com/goliatone/go-betriebsanweisung/instruction"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// App holds the application dependencies.
type App struct {
	Config  config.Config
	Logger  instruction.Logger
	Service *instruction.Service
	Pages   *instructiontemplate.Renderer
	History instruction.History

	subscriptions []dispatcher.Subscription
	closers       []func() error
}

// New builds the application from cfg.
func New(ctx context.Context, cfg config.Config, logger instruction.Logger) (*App, error) {
	if logger == nil {
		logger = instruction.NopLogger{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Logger: logger}

	pages, err := instructiontemplate.NewRenderer(cfg.App.Name)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	a.Pages = pages

	history, err := a.openHistory(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.History = history

	serializer, err := a.newSerializer()
	if err != nil {
		a.Close()
		return nil, err
	}

	assembler := instruction.NewAssembler()
	assembler.Logger = logger
	fallback := instruction.CategoryKey(strings.TrimSpace(cfg.App.FallbackCategory))
	if fallback != "" && !assembler.Catalog.Has(fallback) {
		a.Close()
		return nil, instruction.NewError(instruction.KindUnknownCategory, fmt.Sprintf("fallback category %q is not in the catalog", fallback), nil)
	}
	assembler.Policy = instruction.PolicyFor(fallback)

	svc := instruction.NewService(serializer)
	svc.Assembler = assembler
	svc.Pages = instructionpdf.Inspector{}
	svc.History = history
	svc.Logger = logger
	if cfg.App.FilenameTemplate != "" {
		svc.FilenameTemplate = cfg.App.FilenameTemplate
	}
	a.Service = svc

	subs, err := RegisterHandlers(nil, svc, history)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.subscriptions = subs
	return a, nil
}

// APIConfig returns the transport-neutral controller configuration.
func (a *App) APIConfig() instructionapi.Config {
	return instructionapi.Config{
		Service:       a.Service,
		Pages:         a.Pages,
		History:       a.History,
		Validator:     a.Service.RequiredFields(),
		Logger:        a.Logger,
		BasePath:      a.Config.Server.BasePath,
		DefaultAuthor: a.Config.App.DefaultAuthor,
		HistoryLimit:  a.Config.History.Limit,
		MaxBodyBytes:  int64(a.Config.Server.MaxBodyKB) << 10,
	}
}

// Close releases app resources.
func (a *App) Close() error {
	for _, sub := range a.subscriptions {
		sub.Unsubscribe()
	}
	a.subscriptions = nil
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func (a *App) openHistory(ctx context.Context) (instruction.History, error) {
	switch a.Config.History.Driver {
	case config.HistorySQLite:
		sqldb, err := sql.Open(sqliteshim.ShimName, a.Config.History.DSN)
		if err != nil {
			return nil, fmt.Errorf("open history database: %w", err)
		}
		db := bun.NewDB(sqldb, sqlitedialect.New())
		a.closers = append(a.closers, db.Close)

		store := historybun.NewStore(db)
		store.Max = a.Config.History.Limit
		if err := store.CreateSchema(ctx); err != nil {
			return nil, fmt.Errorf("create history schema: %w", err)
		}
		return store, nil
	default:
		return instruction.NewMemoryHistory(a.Config.History.Limit), nil
	}
}

func (a *App) newSerializer() (instruction.Serializer, error) {
	pdfCfg := a.Config.PDF
	var serializer instruction.Serializer
	switch pdfCfg.Engine {
	case config.EngineWKHTMLTOPDF:
		serializer = instructionpdf.HTMLSerializer{
			Enabled: true,
			HTML:    a.Pages,
			Engine: instructionpdf.WKHTMLTOPDFEngine{
				Command: pdfCfg.WKHTMLTOPDFPath,
				Timeout: a.Config.Timeout(),
			},
		}
	case config.EngineChromium:
		engine := &instructionpdf.ChromiumEngine{
			BrowserPath: pdfCfg.ChromiumPath,
			Headless:    pdfCfg.Headless,
			Timeout:     a.Config.Timeout(),
			Args:        pdfCfg.ChromiumArgs,
		}
		a.closers = append(a.closers, engine.Close)
		serializer = instructionpdf.HTMLSerializer{
			Enabled: true,
			HTML:    a.Pages,
			Engine:  engine,
		}
	default:
		fpdf := instructionpdf.NewFPDFSerializer(a.Config.App.Name)
		fpdf.Compress = pdfCfg.Compress
		serializer = fpdf
	}

	if pdfCfg.Validate {
		serializer = validatingSerializer(serializer, instructionpdf.Inspector{})
	}
	return serializer, nil
}

func validatingSerializer(next instruction.Serializer, inspector instructionpdf.Inspector) instruction.Serializer {
	return instruction.SerializerFunc(func(ctx context.Context, doc instruction.Document) ([]byte, error) {
		pdf, err := next.Serialize(ctx, doc)
		if err != nil {
			return nil, err
		}
		if err := inspector.Validate(ctx, pdf); err != nil {
			return nil, err
		}
		return pdf, nil
	})
}
