package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	bferrors "github.com/matzehuels/bookfair/pkg/errors"
	"github.com/matzehuels/bookfair/pkg/layout"
	"github.com/matzehuels/bookfair/pkg/render"
	"github.com/matzehuels/bookfair/pkg/venue"
)

// Map output formats.
const (
	formatText = "text"
	formatSVG  = "svg"
	formatJSON = "json"
)

// overviewCommand creates the overview command.
func (c *CLI) overviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overview <event-id>",
		Short: "Show stall availability per hall",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := bferrors.ValidateID("event", args[0]); err != nil {
				return err
			}
			halls := c.loadHalls(ctx, e, args[0])
			st, cleanup := c.newState(ctx, e, args[0], halls, nil)
			defer cleanup()

			printOverview(os.Stdout, st.HallStats())
			if len(halls) > 0 {
				printNextStep("Pick stalls", appName+" reserve "+args[0])
			}
			return nil
		},
	}
}

// printOverview writes the per-hall availability table, or a notice when the
// event has no stalls.
func printOverview(w io.Writer, stats []venue.HallStats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, StyleTitle.Render("No Stalls Available"))
		fmt.Fprintln(w, StyleDim.Render("This event has no stalls configured yet. Check back later."))
		return
	}

	rows := make([][]string, len(stats))
	total, available := 0, 0
	for i, st := range stats {
		rows[i] = []string{
			fmt.Sprintf("Hall %d", st.ID),
			fmt.Sprintf("%d", st.Available),
			fmt.Sprintf("%d", st.Total),
			availabilityBar(st, 20),
		}
		total += st.Total
		available += st.Available
	}

	t := newTable("Hall", "Available", "Total", "").Rows(rows...)
	t.StyleFunc(func(row, col int) lipgloss.Style {
		base := lipgloss.NewStyle().Padding(0, 1)
		switch {
		case row == table.HeaderRow:
			return base.Foreground(colorGray).Bold(true)
		case col == 1 && stats[row].Available == 0:
			return base.Foreground(colorRed)
		case col == 1:
			return base.Foreground(colorGreen)
		}
		return base
	})
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  %d of %d stalls available in %d halls", available, total, len(stats))))
}

// availabilityBar draws available/total as a bar of width cells.
func availabilityBar(st venue.HallStats, width int) string {
	if st.Total == 0 {
		return strings.Repeat("░", width)
	}
	filled := st.Available * width / st.Total
	return StyleSuccess.Render(strings.Repeat("█", filled)) + StyleDim.Render(strings.Repeat("░", width-filled))
}

// mapCommand creates the map command.
func (c *CLI) mapCommand() *cobra.Command {
	var (
		hallID   int
		format   string
		out      string
		generate int
		eventID  string
	)
	cmd := &cobra.Command{
		Use:   "map [event-id]",
		Short: "Render the floor plan of a hall",
		Long: `Render one hall of an event as text, SVG or JSON.

With --generate the plan is produced locally from a map id instead of the
backend; --event then varies which stalls are shown as reserved.`,
		Example: `  bookfair map 12 --hall 2
  bookfair map 12 --format svg -o hall.svg
  bookfair map --generate 7 --event 12`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				hall venue.Hall
				view render.View
			)
			switch {
			case generate > 0:
				hall = layout.GenerateHall(generate, eventID)
			case len(args) == 1:
				if err := bferrors.ValidateID("event", args[0]); err != nil {
					return err
				}
				e, err := c.open(ctx)
				if err != nil {
					return err
				}
				defer e.Close()

				halls := c.loadHalls(ctx, e, args[0])
				if len(halls) == 0 {
					printOverview(os.Stdout, nil)
					return nil
				}
				st, cleanup := c.newState(ctx, e, args[0], halls, nil)
				defer cleanup()
				view.Mine = st.Mine()
				if hall, err = pickHall(halls, hallID); err != nil {
					return err
				}
			default:
				return fmt.Errorf("an event id or --generate is required")
			}

			return writeMap(hall, view, format, out)
		},
	}
	f := cmd.Flags()
	f.IntVar(&hallID, "hall", 0, "hall number (default: first hall)")
	f.StringVarP(&format, "format", "f", formatText, "output format: text, svg or json")
	f.StringVarP(&out, "output", "o", "", "write to file instead of stdout")
	f.IntVar(&generate, "generate", 0, "render a generated map with this id")
	f.StringVar(&eventID, "event", layout.DefaultEventID, "event id for generated availability")
	return cmd
}

// writeMap renders hall in format to path, or stdout when path is empty.
func writeMap(hall venue.Hall, view render.View, format, path string) error {
	var data []byte
	switch strings.ToLower(format) {
	case formatText, "":
		data = []byte(fmt.Sprintf("%s\n%s\n", StyleTitle.Render(fmt.Sprintf("Hall %d", hall.ID)), render.Text(hall, view)))
	case formatSVG:
		data = render.SVG(hall, render.WithView(view), render.WithTitle(fmt.Sprintf("Hall %d", hall.ID)))
	case formatJSON:
		var err error
		if data, err = render.JSON(hall, view); err != nil {
			return fmt.Errorf("encode hall: %w", err)
		}
		data = append(data, '\n')
	default:
		return bferrors.New(bferrors.ErrCodeInvalidInput, "unknown format %q (want text, svg or json)", format)
	}

	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Rendered hall %d", hall.ID)
	printFile(path)
	return nil
}
