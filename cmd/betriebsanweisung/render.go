package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/spf13/cobra"

	instructioncmd "github.com/goliatone/go-betriebsanweisung/command"
	"github.com/goliatone/go-betriebsanweisung/config"
	"github.com/goliatone/go-betriebsanweisung/instruction"
)

type renderOptions struct {
	example  string
	out      string
	fallback string
	engine   string
	workArea string
	title    string
	author   string
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a record file or a category example to PDF",
		Long: `Render one record to PDF.

The record is read from a .json, .yaml/.yml or .toml file. With --example the
sections of the given category example fill every empty section; without a
file the example is rendered on its own.

Examples:
  betriebsanweisung render leiter.yaml
  betriebsanweisung render --example gefahrstoff --out out/
  betriebsanweisung render record.json --fallback taetigkeit --out anweisung.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return runRender(cmd, root, opts, file)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.example, "example", "e", "", "Fill sections from the example of this category")
	flags.StringVarP(&opts.out, "out", "o", "", "Output .pdf file, directory, or - for stdout")
	flags.StringVar(&opts.fallback, "fallback", "", "Render unknown categories with this category instead of failing")
	flags.StringVar(&opts.engine, "engine", "", "PDF engine (fpdf, wkhtmltopdf or chromium)")
	flags.StringVar(&opts.workArea, "arbeitsbereich", "", "Work area")
	flags.StringVar(&opts.title, "titel", "", "Activity or machine")
	flags.StringVar(&opts.author, "ersteller", "", "Author")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions, file string) error {
	if file == "" && opts.example == "" {
		return fmt.Errorf("a record file or --example is required")
	}

	a, err := root.openApp(cmd, func(cfg *config.Config) {
		if opts.engine != "" {
			cfg.PDF.Engine = opts.engine
		}
		if opts.fallback != "" {
			cfg.App.FallbackCategory = opts.fallback
		}
	})
	if err != nil {
		return err
	}
	defer a.Close()

	record, err := buildRecord(a.Service.Catalog(), file, opts, a.Config.App.DefaultAuthor)
	if err != nil {
		return err
	}

	rendered, err := dispatcher.DispatchWithResult[instructioncmd.RenderInstruction, instruction.Rendered](
		cmd.Context(),
		instructioncmd.RenderInstruction{Record: record},
	)
	if err != nil {
		return err
	}

	if opts.out == "-" {
		_, err := cmd.OutOrStdout().Write(rendered.Bytes)
		return err
	}

	path, err := writeRendered(opts.out, rendered)
	if err != nil {
		return err
	}
	cmd.Printf("%s (%d bytes, %d page(s))\n", path, len(rendered.Bytes), rendered.Pages)
	return nil
}

// buildRecord merges the record file, the category example and the header
// flags. A bare example gets placeholder header values so it passes the
// required-field check.
func buildRecord(catalog *instruction.Catalog, file string, opts *renderOptions, defaultAuthor string) (instruction.Record, error) {
	var record instruction.Record
	if file != "" {
		loaded, err := instruction.ReadRecordFile(file)
		if err != nil {
			return record, err
		}
		record = loaded
	}

	if opts.example != "" {
		key := instruction.CategoryKey(strings.TrimSpace(opts.example))
		category, err := catalog.Lookup(key)
		if err != nil {
			return record, err
		}
		if record.Category == "" {
			record.Category = key
		}
		record = record.WithExample(category.Example)
		if file == "" {
			record.WorkArea = "Beispiel"
			record.Title = category.Name
		}
	}

	if opts.workArea != "" {
		record.WorkArea = opts.workArea
	}
	if opts.title != "" {
		record.Title = opts.title
	}
	if opts.author != "" {
		record.Author = opts.author
	}
	if record.Author == "" {
		record.Author = defaultAuthor
	}
	return record, nil
}

// writeRendered stores the document. out may name a .pdf file or a
// directory; empty means the working directory.
func writeRendered(out string, rendered instruction.Rendered) (string, error) {
	path := rendered.Filename
	switch {
	case out == "":
	case strings.EqualFold(filepath.Ext(out), ".pdf"):
		path = out
	default:
		path = filepath.Join(out, rendered.Filename)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, rendered.Bytes, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
