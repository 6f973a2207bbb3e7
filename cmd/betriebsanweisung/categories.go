package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-betriebsanweisung/adapters/instructionapi"
	"github.com/goliatone/go-betriebsanweisung/instruction"
	instructionqry "github.com/goliatone/go-betriebsanweisung/query"
)

func newCategoriesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the instruction categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler := instructionqry.NewListCategoriesHandler(instruction.DefaultCatalog())
			categories, err := handler.Query(cmd.Context(), instructionqry.ListCategories{})
			if err != nil {
				return err
			}

			if asJSON {
				templates := make(map[string]instructionapi.Template, len(categories))
				for i, category := range categories {
					templates[string(category.Key)] = instructionapi.TemplateFromCategory(category, i)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(templates)
			}

			for _, category := range categories {
				cmd.Printf("%-12s %s  %s %s\n", category.Key, category.Color.Hex(), category.Icon, category.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}
