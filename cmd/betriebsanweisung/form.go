package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-betriebsanweisung/instruction"
	"github.com/goliatone/go-betriebsanweisung/internal/tui"
)

func newFormCmd(root *rootOptions) *cobra.Command {
	var out, category string

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in a safety instruction in the terminal",
		Long: `Launch the interactive terminal form.

Controls:
  ↑/k, ↓/j  - Choose category
  Enter     - Confirm category
  Tab       - Next field
  Ctrl+E    - Load example
  Ctrl+R    - Reset fields
  Ctrl+S    - Create PDF
  Esc       - Back
  Ctrl+C    - Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := root.openApp(cmd, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := tui.Run(cmd.Context(), tui.Config{
				Catalog:   a.Service.Catalog(),
				Renderer:  a.Service,
				Validator: a.Service.RequiredFields(),
				OutputDir: out,
				Author:    a.Config.App.DefaultAuthor,
				Selected:  instruction.CategoryKey(category),
			})
			if err != nil {
				return err
			}
			if _, path := m.Result(); path != "" {
				cmd.Printf("PDF erstellt: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", ".", "Output directory")
	cmd.Flags().StringVar(&category, "kategorie", "", "Preselected category")
	return cmd
}
