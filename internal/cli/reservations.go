package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bookfair/pkg/api"
	bferrors "github.com/matzehuels/bookfair/pkg/errors"
)

// qrSize is the side in pixels of locally rendered QR PNGs.
const qrSize = 300

// reservationsCommand creates the reservations command with subcommands.
func (c *CLI) reservationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservations",
		Aliases: []string{"mine"},
		Short:   "List your reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()
			if _, err := e.requireLogin(); err != nil {
				return err
			}

			list := c.myReservations(ctx, e)
			if len(list) == 0 {
				printInfo("You have no reservations yet")
				printNextStep("Find an event", appName+" events --upcoming")
				return nil
			}
			printReservations(list)
			printNextStep("Show a QR code", appName+" reservations qr <id>")
			return nil
		},
	}
	cmd.AddCommand(c.reservationQRCommand())
	return cmd
}

// myReservations loads the user's reservations; failures print an error and
// yield an empty list.
func (c *CLI) myReservations(ctx context.Context, e *env) []api.Reservation {
	list, err := e.client.MyReservations(ctx)
	if err != nil {
		printError("Could not load reservations: %s", bferrors.UserMessage(err))
		return nil
	}
	return list
}

func printReservations(list []api.Reservation) {
	rows := make([][]string, len(list))
	for i, r := range list {
		rows[i] = []string{
			strconv.FormatInt(r.ID, 10),
			r.ReservationCode,
			r.EventName,
			fmt.Sprintf("Hall %s · %s", r.HallNumber, r.StallNumber),
			strings.Join(r.Genres, ", "),
			r.Status,
			formatDate(r.CreatedAt),
		}
	}
	fmt.Println(newTable("ID", "Code", "Event", "Stall", "Genres", "Status", "Booked").Rows(rows...).Render())
	printStats(fmt.Sprintf("%d reservations", len(list)))
}

// reservationQRCommand creates the "reservations qr" subcommand.
func (c *CLI) reservationQRCommand() *cobra.Command {
	var (
		out   string
		local bool
	)
	cmd := &cobra.Command{
		Use:   "qr <reservation-id>",
		Short: "Save or display the QR code of a reservation",
		Long: `Save the backend's QR code of a reservation as PNG.

With --local the QR code is generated from the reservation code instead:
printed to the terminal, or written as PNG when --output is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return bferrors.New(bferrors.ErrCodeInvalidInput, "reservation id must be a positive number: %q", args[0])
			}

			ctx := cmd.Context()
			e, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()
			if _, err := e.requireLogin(); err != nil {
				return err
			}

			if local {
				return c.localQR(ctx, e, id, out)
			}

			if out == "" {
				out = fmt.Sprintf("reservation-%d.png", id)
			}
			png, err := e.client.QRCode(ctx, id)
			if err != nil {
				printError("Could not download QR code: %s", bferrors.UserMessage(err))
				return err
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			printSuccess("Saved QR code of reservation %d", id)
			printFile(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "PNG file (default reservation-{id}.png)")
	cmd.Flags().BoolVar(&local, "local", false, "generate from the reservation code")
	return cmd
}

// localQR renders the reservation code of id with go-qrcode.
func (c *CLI) localQR(ctx context.Context, e *env, id int64, out string) error {
	var rsv *api.Reservation
	for _, r := range c.myReservations(ctx, e) {
		if r.ID == id {
			rsv = &r
			break
		}
	}
	if rsv == nil {
		return bferrors.New(bferrors.ErrCodeNotFound, "reservation %d not found", id)
	}
	text := qrText(*rsv)

	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}
	if out == "" {
		fmt.Print(qr.ToSmallString(false))
		printDetail("%s · %s", rsv.ReservationCode, rsv.EventName)
		return nil
	}
	if err := qr.WriteFile(qrSize, out); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	printSuccess("Saved QR code of reservation %d", id)
	printFile(out)
	return nil
}

// qrText is the payload encoded in a local QR code: the reservation code,
// or the id when the backend sent no code.
func qrText(r api.Reservation) string {
	if r.ReservationCode != "" {
		return r.ReservationCode
	}
	return strconv.FormatInt(r.ID, 10)
}
