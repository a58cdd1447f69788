package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/resumake/pkg/cache"
	"github.com/matzehuels/resumake/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached exports and photos",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts and photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			artifacts, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer artifacts.Close()

			if cl, ok := artifacts.(cache.Clearer); ok {
				if err := cl.Clear(ctx); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "clear %s cache", c.Config.Cache.Backend)
				}
			}

			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if err := os.RemoveAll(dir); err != nil {
				return err
			}

			printSuccess("Cache cleared")
			printDetail("Backend: %s", c.Config.Cache.Backend)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(out, dir)
			return nil
		},
	}
}
