package instructionpdf

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/goliatone/go-betriebsanweisung/instruction"
)

const defaultScale = 1.0

var lengthPattern = regexp.MustCompile(`^\s*([0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]*)\s*$`)

var pageSizesInches = map[string]struct {
	width  float64
	height float64
}{
	"A4":     {width: 8.27, height: 11.69},
	"A5":     {width: 5.83, height: 8.27},
	"LETTER": {width: 8.5, height: 11},
}

// ChromiumEngine prints documents with a shared headless Chromium instance.
// Instruction HTML is self-contained, so network access is blocked unless
// AllowNetwork is set.
type ChromiumEngine struct {
	BrowserPath  string
	Headless     bool
	Timeout      time.Duration
	Args         []string
	AllowNetwork bool

	initOnce      sync.Once
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Render loads the HTML into a fresh tab and prints it to PDF.
func (e *ChromiumEngine) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	if e == nil {
		return nil, instruction.NewError(instruction.KindInternal, "chromium engine is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	params, err := printParams(req.Options)
	if err != nil {
		return nil, err
	}
	if err := e.ensureBrowser(); err != nil {
		return nil, instruction.NewError(instruction.KindInternal, "chromium engine init failed", err)
	}

	tabCtx, cancel := chromedp.NewContext(e.browserCtx)
	defer cancel()

	execCtx, cancelReq := context.WithCancel(tabCtx)
	defer cancelReq()
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-execCtx.Done():
		}
	}()
	if e.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, e.Timeout)
		defer cancelTimeout()
	}

	var pdf []byte
	var actions []chromedp.Action
	if !e.AllowNetwork {
		actions = append(actions,
			network.Enable(),
			network.SetBlockedURLs().WithURLPatterns([]*network.BlockPattern{
				{URLPattern: "http://*", Block: true},
				{URLPattern: "https://*", Block: true},
			}),
		)
	}
	actions = append(actions,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(req.HTML)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = params.Do(ctx)
			return err
		}),
	)

	if err := chromedp.Run(execCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, instruction.NewError(instruction.KindInternal, "chromium pdf render failed", err)
	}
	return pdf, nil
}

// Close releases Chromium resources if they have been initialized.
func (e *ChromiumEngine) Close() error {
	if e == nil {
		return nil
	}
	if e.browserCancel != nil {
		e.browserCancel()
	}
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

func (e *ChromiumEngine) ensureBrowser() error {
	e.initOnce.Do(func() {
		options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if e.BrowserPath != "" {
			options = append(options, chromedp.ExecPath(e.BrowserPath))
		}
		options = append(options, chromedp.Flag("headless", e.Headless))
		options = append(options, allocatorOptionsFromArgs(e.Args)...)

		e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(context.Background(), options...)
		e.browserCtx, e.browserCancel = chromedp.NewContext(e.allocCtx)
	})
	if e.allocCtx == nil || e.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}

func printParams(opts Options) (*page.PrintToPDFParams, error) {
	params := page.PrintToPDF()

	scale := opts.Scale
	if scale == 0 {
		scale = defaultScale
	}
	if scale < 0.1 || scale > 2.0 {
		return nil, instruction.NewError(instruction.KindInvalidInput, "pdf scale must be between 0.1 and 2.0", nil)
	}
	params = params.WithScale(scale)

	if opts.Landscape != nil {
		params = params.WithLandscape(*opts.Landscape)
	}
	printBackground := true
	if opts.PrintBackground != nil {
		printBackground = *opts.PrintBackground
	}
	params = params.WithPrintBackground(printBackground)

	if opts.PageSize == "" {
		params = params.WithPreferCSSPageSize(true)
	} else {
		size, ok := pageSizesInches[strings.ToUpper(opts.PageSize)]
		if !ok {
			return nil, instruction.NewError(instruction.KindInvalidInput, fmt.Sprintf("unsupported pdf page size: %s", opts.PageSize), nil)
		}
		params = params.WithPaperWidth(size.width).WithPaperHeight(size.height)
	}

	top, bottom, left, right, err := marginInches(opts)
	if err != nil {
		return nil, err
	}
	if top != nil {
		params = params.WithMarginTop(*top)
	}
	if bottom != nil {
		params = params.WithMarginBottom(*bottom)
	}
	if left != nil {
		params = params.WithMarginLeft(*left)
	}
	if right != nil {
		params = params.WithMarginRight(*right)
	}

	return params, nil
}

func marginInches(opts Options) (top, bottom, left, right *float64, err error) {
	values := []string{opts.MarginTop, opts.MarginBottom, opts.MarginLeft, opts.MarginRight}
	parsed := make([]*float64, len(values))
	for i, value := range values {
		if value == "" {
			continue
		}
		inches, err := parseLengthInches(value)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		parsed[i] = &inches
	}
	return parsed[0], parsed[1], parsed[2], parsed[3], nil
}

func parseLengthInches(value string) (float64, error) {
	matches := lengthPattern.FindStringSubmatch(value)
	if len(matches) != 3 {
		return 0, instruction.NewError(instruction.KindInvalidInput, fmt.Sprintf("invalid pdf length: %s", value), nil)
	}

	amount, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, instruction.NewError(instruction.KindInvalidInput, fmt.Sprintf("invalid pdf length: %s", value), err)
	}

	switch unit := strings.ToLower(matches[2]); unit {
	case "", "in":
		return amount, nil
	case "cm":
		return amount / 2.54, nil
	case "mm":
		return amount / 25.4, nil
	case "pt":
		return amount / 72.0, nil
	case "px":
		return amount / 96.0, nil
	default:
		return 0, instruction.NewError(instruction.KindInvalidInput, fmt.Sprintf("unsupported pdf length unit: %s", unit), nil)
	}
}

func allocatorOptionsFromArgs(args []string) []chromedp.ExecAllocatorOption {
	options := make([]chromedp.ExecAllocatorOption, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimPrefix(strings.TrimSpace(arg), "--")
		if arg == "" {
			continue
		}
		if name, value, ok := strings.Cut(arg, "="); ok {
			options = append(options, chromedp.Flag(name, value))
			continue
		}
		options = append(options, chromedp.Flag(arg, true))
	}
	return options
}
