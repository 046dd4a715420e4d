package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bookfair/pkg/broker"
	"github.com/matzehuels/bookfair/pkg/preview"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		url     string
		eventID string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Log reservation confirmations from the broker",
		Long: `Consume the stall.reservation.confirmed queue and log each confirmation.

The consumer reconnects with backoff until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if url == "" {
				url = c.cfg.brokerURL()
			}
			logger := loggerFromContext(ctx)
			logger.Info("watching confirmations", "queue", broker.Queue)

			err := broker.Consume(ctx, url, func(ctx context.Context, e broker.ReservationConfirmed) error {
				if eventID != "" && e.EventID != eventID {
					return nil
				}
				logger.Info("stall reserved",
					"event", e.EventID,
					"hall", e.Hall,
					"stall", e.StallName,
					"code", e.ReservationCode,
					"user", e.UserID,
					"genres", strings.Join(e.Genres, ","))
				return nil
			}, broker.ConsumeOptions{Logger: logger})
			if errors.Is(err, context.Canceled) {
				logger.Info("stopped")
			}
			return err
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "AMQP URL (default amqp_url or "+broker.DefaultURL+")")
	cmd.Flags().StringVar(&eventID, "event", "", "only log this event")
	return cmd
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		cellSize float64
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated floor plans over HTTP",
		Example: `  bookfair serve --addr :8090
  curl localhost:8090/maps/7.svg?event=12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			srv := preview.New(preview.Options{CellSize: cellSize, Logger: logger})

			printNextStep("Try", "curl http://localhost"+addr+"/maps/1")
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8090", "listen address")
	cmd.Flags().Float64Var(&cellSize, "cell", 0, "SVG cell size in pixels")
	return cmd
}
