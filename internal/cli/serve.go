package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/resumake/internal/server"
	pkgio "github.com/matzehuels/resumake/pkg/io"
)

// serveCommand serves the working document over the HTTP editing API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		readOnly bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resume over a JSON HTTP API",
		Long: `Serve the resume over a JSON HTTP API for editors and previews.

Every change is written back to the document unless --read-only is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			e, err := loadEditor(c.docPath, c.Logger)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := []server.Option{server.WithLogger(c.Logger), server.WithRunner(runner)}
			if !readOnly {
				path := c.docPath
				opts = append(opts, server.WithCommit(func(_ context.Context, doc pkgio.Document) error {
					return pkgio.Export(doc, path)
				}))
			}

			printInfo("Serving %s on %s", c.docPath, StyleHighlight.Render("http://"+addr))
			return server.ListenAndServe(ctx, addr, server.New(e, opts...), c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+DefaultServerAddr+")")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "do not write changes back to the document")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
