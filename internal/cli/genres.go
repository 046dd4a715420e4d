package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	bferrors "github.com/matzehuels/bookfair/pkg/errors"
	"github.com/matzehuels/bookfair/pkg/session"
)

// genresCommand creates the genres command with subcommands.
func (c *CLI) genresCommand() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "genres",
		Short: "List the genres a reservation can carry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			genres, err := e.client.Genres(ctx, refresh)
			if err != nil {
				printError("Could not load genres: %s", bferrors.UserMessage(err))
				return nil
			}
			if len(genres) == 0 {
				printInfo("No active genres")
				return nil
			}
			rows := make([][]string, len(genres))
			for i, g := range genres {
				rows[i] = []string{g.ID.String(), g.Name, g.Description}
			}
			fmt.Println(newTable("ID", "Genre", "Description").Rows(rows...).Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")

	cmd.AddCommand(c.genrePrefsCommand())
	return cmd
}

// genrePrefsCommand creates the "genres prefs" subcommand.
func (c *CLI) genrePrefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show your preferred genres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withPrefs(cmd, func(p *session.Preferences, userID string) ([]string, error) {
				return p.Genres(cmd.Context(), userID)
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "toggle <genre>",
		Short:     "Add or remove one preferred genre",
		Args:      cobra.ExactArgs(1),
		ValidArgs: session.Genres,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withPrefs(cmd, func(p *session.Preferences, userID string) ([]string, error) {
				return p.Toggle(cmd.Context(), userID, matchGenre(args[0]))
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <genre>...",
		Short: "Replace your preferred genres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withPrefs(cmd, func(p *session.Preferences, userID string) ([]string, error) {
				names := make([]string, len(args))
				for i, a := range args {
					names[i] = matchGenre(a)
				}
				if err := p.SaveGenres(cmd.Context(), userID, names); err != nil {
					return nil, err
				}
				return p.Genres(cmd.Context(), userID)
			})
		},
	})
	return cmd
}

// withPrefs runs fn for the signed-in user and prints the resulting
// preferences.
func (c *CLI) withPrefs(cmd *cobra.Command, fn func(*session.Preferences, string) ([]string, error)) error {
	e, err := c.open(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	sess, err := e.requireLogin()
	if err != nil {
		return err
	}
	genres, err := fn(e.prefs, sess.UserID())
	if err != nil {
		printError("%s", bferrors.UserMessage(err))
		printDetail("Choose from: %s", strings.Join(session.Genres, ", "))
		return err
	}
	printGenrePrefs(genres)
	return nil
}

func printGenrePrefs(selected []string) {
	fmt.Println(StyleTitle.Render("Genre Preferences"))
	for _, g := range session.Genres {
		if slices.Contains(selected, g) {
			fmt.Println("  " + StyleSuccess.Render("[x] "+g))
		} else {
			fmt.Println("  " + StyleDim.Render("[ ] "+g))
		}
	}
	printStats(fmt.Sprintf("%d selected", len(selected)))
}

// matchGenre returns the built-in genre equal to s ignoring case, or s.
func matchGenre(s string) string {
	for _, g := range session.Genres {
		if strings.EqualFold(g, strings.TrimSpace(s)) {
			return g
		}
	}
	return s
}
