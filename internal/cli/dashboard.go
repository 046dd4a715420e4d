package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	bferrors "github.com/matzehuels/bookfair/pkg/errors"
)

// dashboardEvents is how many upcoming events the dashboard lists.
const dashboardEvents = 5

// dashboardCommand creates the dashboard command.
func (c *CLI) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Your reservations, preferences and upcoming events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			sess, err := e.requireLogin()
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Welcome back, " + sess.User.DisplayName()))
			if u := sess.User; u != nil && u.CompanyName != "" {
				fmt.Println(StyleDim.Render(u.CompanyName))
			}
			printNewline()

			fmt.Println(StyleHighlight.Render("My Reservations"))
			if list := c.myReservations(ctx, e); len(list) > 0 {
				printReservations(list)
			} else {
				printDetail("No reservations yet")
			}
			printNewline()

			genres, err := e.prefs.Genres(ctx, sess.UserID())
			if err != nil {
				c.Logger.Warn("could not read genre preferences", "error", err)
			}
			fmt.Println(StyleHighlight.Render("Preferred Genres"))
			if len(genres) == 0 {
				printDetail("None selected")
				printNextStep("Choose some", appName+" genres prefs toggle <genre>")
			} else {
				for _, g := range genres {
					printInfo("%s", g)
				}
			}
			printNewline()

			fmt.Println(StyleHighlight.Render("Upcoming Events"))
			events, err := e.client.UpcomingEvents(ctx, false)
			if err != nil {
				printError("Could not load events: %s", bferrors.UserMessage(err))
				return nil
			}
			if len(events) == 0 {
				printDetail("No upcoming events")
				return nil
			}
			if len(events) > dashboardEvents {
				events = events[:dashboardEvents]
			}
			printEvents(events)
			return nil
		},
	}
}
