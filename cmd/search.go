package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ijalalfrz/flight-scraper-service/internal/app/config"
	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/spf13/cobra"
)

type searchFlags struct {
	departure     []string
	destination   []string
	departureDate []string
	returnDate    string
	ticketType    string
	flightType    string
	cityAmount    int
	adults        int
	children      int
	infantsSeat   int
	infantsLap    int
}

func (f searchFlags) request() dto.SearchRequest {
	req := dto.SearchRequest{
		Departure:     f.departure,
		Destination:   f.destination,
		DepartureDate: f.departureDate,
		CityAmount:    f.cityAmount,
		TicketType:    dto.TicketType(f.ticketType),
		FlightType:    dto.FlightType(f.flightType),
		Passengers: dto.Passengers{
			dto.PassengerAdult:      f.adults,
			dto.PassengerChildren:   f.children,
			dto.PassengerInfantSeat: f.infantsSeat,
			dto.PassengerInfantLap:  f.infantsLap,
		},
	}

	if f.returnDate != "" {
		returnDate := f.returnDate
		req.ReturnDate = &returnDate
	}

	req.ApplyDefaults()

	return req
}

func newSearchCmd(cfg *config.Config) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one flight search and print the results as JSON",
		Example: `  flight-scraper search --from JFK --to LHR --date 2026-03-15
  flight-scraper search --ticket "Multi-City" --from JFK,LHR --to LHR,CDG --date 2026-03-15,2026-03-20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}

			defer func() {
				if err := application.Close(); err != nil {
					slog.ErrorContext(ctx, "failed to close dependencies", slog.String("error", err.Error()))
				}
			}()

			flights, err := application.service.SearchFlights(ctx, flags.request())
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")

			if err := encoder.Encode(flights); err != nil {
				return fmt.Errorf("encode flights: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&flags.departure, "from", nil, "departure airport or city, one per leg")
	cmd.Flags().StringSliceVar(&flags.destination, "to", nil, "destination airport or city, one per leg")
	cmd.Flags().StringSliceVar(&flags.departureDate, "date", nil, "departure date YYYY-MM-DD, one per leg")
	cmd.Flags().StringVar(&flags.returnDate, "return", "", "return date YYYY-MM-DD for round trips")
	cmd.Flags().StringVar(&flags.ticketType, "ticket", string(dto.TicketTypeOneWay), `"One Way", "Round Trip" or "Multi-City"`)
	cmd.Flags().StringVar(&flags.flightType, "class", string(dto.FlightTypeEconomy), `"Economy", "Premium Economy", "Business" or "First"`)
	cmd.Flags().IntVar(&flags.cityAmount, "city-amount", 0, "legs beyond the first two for multi-city searches")
	cmd.Flags().IntVar(&flags.adults, "adults", 1, "adult passengers")
	cmd.Flags().IntVar(&flags.children, "children", 0, "child passengers")
	cmd.Flags().IntVar(&flags.infantsSeat, "infants-seat", 0, "infants in seat")
	cmd.Flags().IntVar(&flags.infantsLap, "infants-lap", 0, "infants on lap")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
