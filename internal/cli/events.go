package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bookfair/pkg/api"
	bferrors "github.com/matzehuels/bookfair/pkg/errors"
)

// eventsCommand creates the events command with subcommands.
func (c *CLI) eventsCommand() *cobra.Command {
	var upcoming, refresh bool
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List bookfair events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			prog := newProgress(loggerFromContext(ctx))
			list := e.client.Events
			if upcoming {
				list = e.client.UpcomingEvents
			}
			events, err := list(ctx, refresh)
			if err != nil {
				printError("Could not load events: %s", bferrors.UserMessage(err))
				events = nil
			}
			prog.done(fmt.Sprintf("Loaded %d events", len(events)))

			if len(events) == 0 {
				printInfo("No events found")
				return nil
			}
			printEvents(events)
			printNextStep("See the floor plan", appName+" overview <event-id>")
			return nil
		},
	}
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "only upcoming events")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")

	cmd.AddCommand(c.eventShowCommand())
	return cmd
}

// eventShowCommand creates the "events show" subcommand.
func (c *CLI) eventShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			ev, err := e.client.Event(ctx, args[0])
			if err != nil {
				printError("%s", bferrors.UserMessage(err))
				return err
			}
			printEvent(ev)
			return nil
		},
	}
}

func printEvents(events []api.Event) {
	rows := make([][]string, len(events))
	for i, ev := range events {
		rows[i] = []string{
			ev.ID.String(),
			ev.Name,
			formatDate(ev.StartDate),
			ev.Venue,
			fmt.Sprintf("%d/%d", ev.AvailableStalls, ev.TotalStalls),
			eventStatus(ev),
		}
	}

	t := newTable("ID", "Event", "Starts", "Venue", "Stalls", "Status").Rows(rows...)
	t.StyleFunc(func(row, col int) lipgloss.Style {
		base := lipgloss.NewStyle().Padding(0, 1)
		switch {
		case row == table.HeaderRow:
			return base.Foreground(colorGray).Bold(true)
		case col == 0:
			return base.Foreground(colorDim)
		case col == 5 && events[row].RegistrationOpen:
			return base.Foreground(colorGreen)
		case col == 5:
			return base.Foreground(colorDim)
		}
		return base
	})
	fmt.Println(t.Render())
	printStats(strconv.Itoa(len(events)) + " events")
}

func printEvent(ev *api.Event) {
	fmt.Println(StyleTitle.Render(ev.Name))
	if ev.Description != "" {
		fmt.Println(StyleDim.Render(ev.Description))
	}
	printNewline()
	printKeyValue("ID", ev.ID.String())
	printKeyValue("Venue", ev.Venue)
	printKeyValue("Starts", formatDate(ev.StartDate))
	printKeyValue("Ends", formatDate(ev.EndDate))
	printKeyValue("Stalls", fmt.Sprintf("%d of %d available", ev.AvailableStalls, ev.TotalStalls))
	printKeyValue("Status", eventStatus(*ev))
	printNewline()
	printNextStep("Reserve stalls", appName+" reserve "+ev.ID.String())
}

// eventStatus combines the backend status with whether registration is
// open.
func eventStatus(ev api.Event) string {
	status := ev.Status
	if status == "" {
		status = "—"
	}
	if ev.RegistrationOpen {
		return status + ", open"
	}
	return status + ", closed"
}
