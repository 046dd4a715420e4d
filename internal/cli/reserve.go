package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bookfair/pkg/api"
	bferrors "github.com/matzehuels/bookfair/pkg/errors"
	"github.com/matzehuels/bookfair/pkg/reservation"
	"github.com/matzehuels/bookfair/pkg/venue"
)

// reserveCommand creates the reserve command.
func (c *CLI) reserveCommand() *cobra.Command {
	var (
		stalls []string
		genres []string
		hallID int
	)
	cmd := &cobra.Command{
		Use:   "reserve <event-id>",
		Short: "Pick stalls on the floor plan and reserve them",
		Long: `Open the interactive floor plan of an event.

Keys: arrows move, space selects or deselects the stall under the cursor,
g edits its genres, tab switches hall, c confirms the cart, q quits.

With --stall the stalls are reserved without the interactive view; every
stall gets the genres given with --genre (ids or names).`,
		Example: `  bookfair reserve 12
  bookfair reserve 12 --stall 104 --stall 105 --genre Fiction --genre Poetry`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID := args[0]
			if err := bferrors.ValidateID("event", eventID); err != nil {
				return err
			}

			ctx := cmd.Context()
			e, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			halls := c.loadHalls(ctx, e, eventID)
			if len(halls) == 0 {
				printOverview(cmd.OutOrStdout(), nil)
				return nil
			}

			catalog, err := e.client.Genres(ctx, false)
			if err != nil {
				printWarning("Could not load genres: %s", bferrors.UserMessage(err))
			}

			if len(stalls) > 0 {
				return c.reserveDirect(ctx, e, eventID, halls, catalog, stalls, genres)
			}
			if len(genres) > 0 {
				return fmt.Errorf("--genre needs at least one --stall")
			}
			return c.reserveInteractive(ctx, e, eventID, halls, catalog, hallID)
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&stalls, "stall", nil, "stall id to reserve (repeatable)")
	f.StringArrayVar(&genres, "genre", nil, "genre id or name for every stall (repeatable)")
	f.IntVar(&hallID, "hall", 0, "hall to open first")
	return cmd
}

// reserveDirect selects the given stalls, tags them with genres and
// confirms.
func (c *CLI) reserveDirect(ctx context.Context, e *env, eventID string, halls []venue.Hall, catalog []api.Genre, stallIDs, genreArgs []string) error {
	genreIDs, err := resolveGenres(genreArgs, catalog)
	if err != nil {
		return err
	}

	st, cleanup := c.newState(ctx, e, eventID, halls, printNotifier())
	defer cleanup()

	seen := make(map[string]bool, len(stallIDs))
	for _, id := range stallIDs {
		stall, ok := findStall(halls, id)
		if !ok {
			return bferrors.New(bferrors.ErrCodeNotFound, "stall %q not found in event %s", id, eventID)
		}
		// A stall named twice, by id or by name, is selected once.
		if seen[stall.ID] {
			continue
		}
		seen[stall.ID] = true
		if _, err := st.Toggle(stall); err != nil {
			return err
		}
		for _, g := range genreIDs {
			st.SetGenre(stall.ID, g, true)
		}
	}

	spinner := newSpinnerWithContext(ctx, "Reserving stalls...")
	spinner.Start()
	res, err := st.Confirm(ctx, e.client)
	spinner.Stop()
	printResult(res, catalog)
	return err
}

// reserveInteractive runs the floor-plan TUI.
func (c *CLI) reserveInteractive(ctx context.Context, e *env, eventID string, halls []venue.Hall, catalog []api.Genre, hallID int) error {
	title := "Event " + eventID
	if ev, err := e.client.Event(ctx, eventID); err == nil && ev.Name != "" {
		title = ev.Name
	}

	notices := &reservation.Collector{}
	st, cleanup := c.newState(ctx, e, eventID, halls, notices)
	defer cleanup()

	m := newReserveModel(ctx, reserveOptions{
		Title:    title,
		State:    st,
		Reserver: e.client,
		Notices:  notices,
		Genres:   catalog,
		SignedIn: e.sess != nil,
	})
	m.selectHall(hallID)

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run floor plan: %w", err)
	}

	if fm, ok := final.(reserveModel); ok && fm.result != nil {
		printResult(fm.result, catalog)
	}
	if cart := st.Cart(); len(cart) > 0 {
		printWarning("%d stall(s) left unconfirmed in the cart", len(cart))
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// printNotifier prints state notices as status lines.
func printNotifier() reservation.Notifier {
	return reservation.NotifierFunc(func(n reservation.Notice) {
		switch n.Level {
		case reservation.LevelSuccess:
			printSuccess("%s", n.Message)
		case reservation.LevelError:
			printError("%s", n.Message)
		default:
			printInfo("%s", n.Message)
		}
	})
}

func printResult(res *reservation.Result, catalog []api.Genre) {
	if res == nil {
		return
	}
	for _, r := range res.Reserved {
		printFile(fmt.Sprintf("%s · Hall %s · %s", r.ReservationCode, r.HallNumber, r.StallNumber))
	}
	for _, f := range res.Failed {
		printDetail("%s: %s (%s)", f.Stall.Name, f.Message, genreNames(f.Stall.Genres, catalog))
	}
	if len(res.Reserved) > 0 {
		printNextStep("Show QR codes", appName+" reservations")
	}
}

// resolveGenres maps genre ids or names to backend ids.
func resolveGenres(args []string, catalog []api.Genre) ([]string, error) {
	if len(args) == 0 {
		return nil, bferrors.New(bferrors.ErrCodeGenreRequired, "Please select at least one genre for all stalls")
	}
	out := make([]string, 0, len(args))
	for _, a := range args {
		a = strings.TrimSpace(a)
		id := ""
		for _, g := range catalog {
			if g.ID.String() == a || strings.EqualFold(g.Name, a) {
				id = g.ID.String()
				break
			}
		}
		if id == "" {
			names := make([]string, len(catalog))
			for i, g := range catalog {
				names[i] = g.Name
			}
			return nil, bferrors.New(bferrors.ErrCodeInvalidInput, "unknown genre %q (available: %s)", a, strings.Join(names, ", "))
		}
		out = append(out, id)
	}
	return out, nil
}

// genreNames maps genre ids to names, keeping unknown ids as they are.
func genreNames(ids []string, catalog []api.Genre) string {
	if len(ids) == 0 {
		return "no genre"
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id
		for _, g := range catalog {
			if g.ID.String() == id {
				names[i] = g.Name
				break
			}
		}
	}
	return strings.Join(names, ", ")
}

// findStall looks a stall up by id or by name across halls.
func findStall(halls []venue.Hall, key string) (venue.Stall, bool) {
	for i := range halls {
		for _, s := range halls[i].Bookable() {
			if s.ID == key || strings.EqualFold(s.Name, key) {
				return s, true
			}
		}
	}
	return venue.Stall{}, false
}
