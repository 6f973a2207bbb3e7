package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-betriebsanweisung/config"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var host, port, transport, basePath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web form and JSON API",
		Long: `Start the HTTP server with the web form on / and the JSON API under /api.

Routes:
  GET  /                  Web form
  GET  /api/vorlagen      Categories with examples
  GET  /api/vorlagen/:key Single category
  POST /api/erstellen     Record to PDF download
  POST /api/vorschau      Record to HTML preview
  GET  /api/verlauf       Generation history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := root.openApp(cmd, func(cfg *config.Config) {
				if host != "" {
					cfg.Server.Host = host
				}
				if port != "" {
					cfg.Server.Port = port
				}
				if transport != "" {
					cfg.Server.Transport = transport
				}
				if basePath != "" {
					cfg.Server.BasePath = basePath
				}
			})
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host")
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port")
	cmd.Flags().StringVar(&transport, "transport", "", "HTTP transport (fiber or nethttp)")
	cmd.Flags().StringVar(&basePath, "base-path", "", "Mount all routes under this path")
	return cmd
}
