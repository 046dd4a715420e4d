package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cacheCommand creates the local store management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local file store",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached backend responses",
		Long: `Clear cached event and genre listings from the file store.

With --all the session, genre preferences and reservation mirrors are
removed too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.fileStore()
			if err != nil {
				return err
			}

			// Response entries share the "http:" key prefix.
			prefix := "http:"
			if all {
				prefix = ""
			}
			count, err := store.Clear(cmd.Context(), prefix)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", store.Dir())
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also remove session and preferences")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file store directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.fileStore()
			if err != nil {
				return err
			}
			fmt.Println(store.Dir())
			return nil
		},
	}
}
