package main

import (
	"github.com/spf13/cobra"

	instructioncmd "github.com/goliatone/go-betriebsanweisung/command"
	"github.com/goliatone/go-betriebsanweisung/config"
)

func newRenderBatchCmd(root *rootOptions) *cobra.Command {
	var out, engine, fallback string
	var limit int

	cmd := &cobra.Command{
		Use:   "render-batch <file>",
		Short: "Render every record of a batch file",
		Long: `Render every record listed under "anweisungen" in a JSON, YAML or TOML
batch file. Documents are written into --out as <filename>_<id>.pdf.
Rendering stops at the first invalid record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.openApp(cmd, func(cfg *config.Config) {
				if engine != "" {
					cfg.PDF.Engine = engine
				}
				if fallback != "" {
					cfg.App.FallbackCategory = fallback
				}
			})
			if err != nil {
				return err
			}
			defer a.Close()

			batch := instructioncmd.NewRenderBatchCommand(
				instructioncmd.NewRenderInstructionHandler(a.Service),
				instructioncmd.DirectorySink(out),
				instructioncmd.WithBatchLimits(instructioncmd.BatchLimits{MaxRecords: limit}),
			)

			count, err := batch.Run(cmd.Context(), args[0])
			cmd.Printf("%d document(s) written to %s\n", count, out)
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", ".", "Output directory")
	cmd.Flags().StringVar(&engine, "engine", "", "PDF engine (fpdf, wkhtmltopdf or chromium)")
	cmd.Flags().StringVar(&fallback, "fallback", "", "Render unknown categories with this category instead of failing")
	cmd.Flags().IntVar(&limit, "limit", 0, "Render at most this many records (0 = all)")
	return cmd
}
