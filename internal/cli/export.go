package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/resumake/pkg/errors"
	pkgio "github.com/matzehuels/resumake/pkg/io"
	"github.com/matzehuels/resumake/pkg/pipeline"
	"github.com/matzehuels/resumake/pkg/render"
)

// exportCommand renders the working document to one or more formats.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formats string
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the resume as PDF, PNG, SVG or JSON",
		Long: `Export the resume as PDF, PNG, SVG or JSON.

Output files are named after --output (default: the document name), one per
format. PDF and PNG need rsvg-convert from librsvg.

Rendered artifacts are cached; unchanged documents export instantly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			opts.Filename = basePath(output, c.docPath)
			return c.runExport(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "t", "", "output format(s): pdf (default), png, svg, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: document name)")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "page width in points")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "minimum page height in points")
	cmd.Flags().Float64Var(&opts.Margin, "margin", pipeline.DefaultMargin, "page margin in points")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.Content, "content", false, "include section content in JSON output")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if needsConverter(opts.Formats) && !render.Available() {
		return errors.New(errors.ErrCodeUnsupported, "pdf and png export need rsvg-convert (install librsvg)")
	}

	doc, err := pkgio.Import(c.docPath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if dir := filepath.Dir(opts.Filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
		}
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering "+strings.Join(opts.Formats, ", ")+"...")
	spinner.Start()
	result, err := runner.Render(ctx, doc, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.StopWithError("Export cancelled")
			return ctx.Err()
		}
		spinner.Stop()
		return err
	}
	spinner.StopWithSuccess("Exported " + filepath.Base(c.docPath))

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
	for _, f := range opts.Formats {
		path := opts.FileName(f)
		if err := os.WriteFile(path, result.Artifacts[f], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		printFile(path)
	}
	printStats(result.Stats.Sections, len(opts.Formats), result.CacheInfo.RenderHit)
	prog.done("Export complete")
	return nil
}

// basePath derives the output base path from --output and the document
// path. Known format extensions are stripped from output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func needsConverter(formats []string) bool {
	for _, f := range formats {
		if f == pipeline.FormatPDF || f == pipeline.FormatPNG {
			return true
		}
	}
	return false
}
