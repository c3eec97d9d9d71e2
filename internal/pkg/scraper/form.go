package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/browser"
)

var counterTargets = map[dto.PassengerType]browser.Target{
	dto.PassengerAdult:      browser.TargetAdultCounter,
	dto.PassengerChildren:   browser.TargetChildrenCounter,
	dto.PassengerInfantSeat: browser.TargetInfantSeatCounter,
	dto.PassengerInfantLap:  browser.TargetInfantLapCounter,
}

// FormFiller configures the search form the way a person would.
type FormFiller struct {
	settings Settings
}

func NewFormFiller(settings Settings) *FormFiller {
	return &FormFiller{settings: settings}
}

// Fill sets ticket type, passengers, cabin and itinerary, then submits.
func (f *FormFiller) Fill(ctx context.Context, page browser.Page, req dto.SearchRequest) error {
	slog.InfoContext(ctx, "selecting ticket type", "ticket_type", req.TicketType)

	if err := page.Locate(browser.TargetTicketType).First().Click(ctx, 1); err != nil {
		return fmt.Errorf("failed to open ticket type menu: %w", err)
	}

	if err := selectOption(ctx, page, string(req.TicketType)); err != nil {
		return err
	}

	passengerButton := page.Locate(browser.TargetPassengerButton).First()

	if err := passengerButton.ScrollIntoView(ctx); err != nil {
		return fmt.Errorf("failed to reach passenger button: %w", err)
	}

	if err := passengerButton.WaitVisible(ctx, f.settings.ElementTimeout); err != nil {
		return err
	}

	if err := passengerButton.Click(ctx, 1); err != nil {
		return fmt.Errorf("failed to open passenger dialog: %w", err)
	}

	if err := f.fillPassengers(ctx, page, req.Passengers); err != nil {
		return err
	}

	slog.InfoContext(ctx, "selecting flight type", "flight_type", req.FlightType)

	if err := page.Locate(browser.TargetFlightType).First().Click(ctx, 1); err != nil {
		return fmt.Errorf("failed to open flight type menu: %w", err)
	}

	if err := selectOption(ctx, page, string(req.FlightType)); err != nil {
		return err
	}

	var err error
	if req.TicketType == dto.TicketTypeMultiCity {
		err = f.fillMultiCity(ctx, page, req)
	} else {
		err = f.fillSingle(ctx, page, req)
	}

	if err != nil {
		return err
	}

	if err := page.Locate(browser.TargetSearchButton).First().Click(ctx, 1); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}

	return nil
}

func (f *FormFiller) fillPassengers(ctx context.Context, page browser.Page, passengers dto.Passengers) error {
	dialog := page.Locate(browser.TargetDialog).First()

	if err := dialog.WaitVisible(ctx, f.settings.ElementTimeout); err != nil {
		return err
	}

	for _, passengerType := range dto.PassengerTypes {
		counter := dialog.Locate(counterTargets[passengerType])

		raw, err := counter.Attribute(ctx, f.settings.CounterAttribute)
		if err != nil {
			return fmt.Errorf("failed to read %s count: %w", passengerType, err)
		}

		current, err := parseCount(raw)
		if err != nil {
			return fmt.Errorf("failed to read %s count: %w", passengerType, err)
		}

		target := passengers.Target(passengerType)
		increments, decrements := passengerClicks(current, target)

		slog.InfoContext(ctx, "selecting passengers",
			"passenger_type", passengerType, "current", current, "target", target)

		if err := counter.Locate(browser.TargetIncrement).Click(ctx, increments); err != nil {
			return fmt.Errorf("failed to add %s: %w", passengerType, err)
		}

		if err := counter.Locate(browser.TargetDecrement).Click(ctx, decrements); err != nil {
			return fmt.Errorf("failed to remove %s: %w", passengerType, err)
		}
	}

	message, err := page.Locate(browser.TargetInfantRatioError).First().Text(ctx)
	if err != nil {
		return fmt.Errorf("failed to read passenger error: %w", err)
	}

	if message != nil && strings.TrimSpace(*message) != "" {
		return infantRatioError(strings.TrimSpace(*message))
	}

	if err := dialog.Locate(browser.TargetPassengerDone).Click(ctx, 1); err != nil {
		return fmt.Errorf("failed to confirm passengers: %w", err)
	}

	return nil
}

// passengerClicks turns the displayed and requested counts into clicks.
func passengerClicks(current, target int) (increments, decrements int) {
	delta := target - current

	if delta > 0 {
		return delta, 0
	}

	return 0, -delta
}

func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	return strconv.Atoi(raw)
}

func (f *FormFiller) fillSingle(ctx context.Context, page browser.Page, req dto.SearchRequest) error {
	if err := fillAirport(ctx, page, browser.TargetOrigin, req.Departure[0]); err != nil {
		return err
	}

	if err := fillAirport(ctx, page, browser.TargetDestination, req.Destination[0]); err != nil {
		return err
	}

	slog.InfoContext(ctx, "setting dates", "ticket_type", req.TicketType)

	if err := fillDate(ctx, page, browser.TargetDepartureDate, req.DepartureDate[0]); err != nil {
		return err
	}

	if req.TicketType == dto.TicketTypeRoundTrip && req.ReturnDate != nil {
		if err := fillDate(ctx, page, browser.TargetReturnDate, *req.ReturnDate); err != nil {
			return err
		}
	}

	f.closeDateDialog(ctx, page)

	return nil
}

// closeDateDialog presses the date picker's own Done button when the
// picker popped open. A picker that never shows is fine.
func (f *FormFiller) closeDateDialog(ctx context.Context, page browser.Page) {
	dialog := page.Locate(browser.TargetDialog).First()

	if err := dialog.WaitVisible(ctx, f.settings.DateDialogTimeout); err != nil {
		slog.DebugContext(ctx, "date dialog not shown", "error", err)
		return
	}

	if err := dialog.Locate(browser.TargetDialogDone).Click(ctx, 1); err != nil {
		slog.DebugContext(ctx, "date dialog not closed", "error", err)
	}
}

func (f *FormFiller) fillMultiCity(ctx context.Context, page browser.Page, req dto.SearchRequest) error {
	addLeg := page.Locate(browser.TargetAddLeg).First()

	if err := addLeg.WaitVisible(ctx, f.settings.AddLegTimeout); err != nil {
		return err
	}

	if err := addLeg.Click(ctx, req.CityAmount); err != nil {
		return fmt.Errorf("failed to add legs: %w", err)
	}

	if err := page.Wait(ctx, f.settings.LegSettleDelay); err != nil {
		return err
	}

	slog.InfoContext(ctx, "spawned multi city legs", "city_amount", req.CityAmount)

	totalLegs := req.CityAmount + f.settings.AutomaticLegs

	origins := page.Locate(browser.TargetOrigin).Visible()
	destinations := page.Locate(browser.TargetDestination).Visible()
	dates := page.Locate(browser.TargetDepartureDate).Visible()

	for _, leg := range []struct {
		target browser.Target
		inputs browser.Element
	}{
		{browser.TargetOrigin, origins},
		{browser.TargetDestination, destinations},
		{browser.TargetDepartureDate, dates},
	} {
		if err := f.expectCount(ctx, page, leg.target, leg.inputs, totalLegs); err != nil {
			return err
		}
	}

	legs := min(totalLegs, len(req.Departure), len(req.Destination))
	dateLegs := min(totalLegs, len(req.DepartureDate))

	for i := 0; i < legs; i++ {
		slog.InfoContext(ctx, "setting multi city leg", "leg", i+1,
			"departure", req.Departure[i], "destination", req.Destination[i])

		f.closePopover(ctx, page)

		if err := fillLegInput(ctx, origins.Nth(i), req.Departure[i]); err != nil {
			return err
		}

		if err := selectOption(ctx, page, req.Departure[i]); err != nil {
			return err
		}

		f.closePopover(ctx, page)

		if err := fillLegInput(ctx, destinations.Nth(i), req.Destination[i]); err != nil {
			return err
		}

		if err := selectOption(ctx, page, req.Destination[i]); err != nil {
			return err
		}
	}

	for i := 0; i < dateLegs; i++ {
		f.closePopover(ctx, page)

		slog.InfoContext(ctx, "setting multi city date", "leg", i+1, "departure_date", req.DepartureDate[i])

		input := dates.Nth(i)
		if err := fillLegInput(ctx, input, req.DepartureDate[i]); err != nil {
			return err
		}

		if err := input.Press(ctx, browser.KeyEnter); err != nil {
			return fmt.Errorf("failed to confirm date: %w", err)
		}
	}

	return nil
}

// expectCount polls until inputs matches want elements.
func (f *FormFiller) expectCount(ctx context.Context, page browser.Page, target browser.Target, inputs browser.Element, want int) error {
	polls := 1
	if f.settings.LegCountPoll > 0 {
		polls = max(1, int(f.settings.LegCountTimeout/f.settings.LegCountPoll))
	}

	var got int
	for i := 0; i < polls; i++ {
		n, err := inputs.Count(ctx)
		if err != nil {
			return err
		}

		if n == want {
			return nil
		}

		got = n

		if err := page.Wait(ctx, f.settings.LegCountPoll); err != nil {
			return err
		}
	}

	return fmt.Errorf("expected %d visible %s inputs, found %d", want, target, got)
}

// closePopover dismisses whatever dialog is open; failing to do so is not an error.
func (f *FormFiller) closePopover(ctx context.Context, page browser.Page) {
	if err := page.PressKey(ctx, browser.KeyEscape); err != nil {
		slog.DebugContext(ctx, "escape not pressed", "error", err)
		return
	}

	if err := page.Locate(browser.TargetDialog).First().WaitHidden(ctx, f.settings.PopoverTimeout); err != nil {
		slog.DebugContext(ctx, "popover still open", "error", err)
	}
}

func selectOption(ctx context.Context, page browser.Page, label string) error {
	if err := page.Locate(browser.TargetOption).Filter(label).First().Click(ctx, 1); err != nil {
		return fmt.Errorf("failed to select %q: %w", label, err)
	}

	return nil
}

func fillAirport(ctx context.Context, page browser.Page, target browser.Target, value string) error {
	slog.InfoContext(ctx, "setting airport", "field", target, "value", value)

	if err := page.Locate(target).First().Fill(ctx, value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", target, err)
	}

	return selectOption(ctx, page, value)
}

func fillDate(ctx context.Context, page browser.Page, target browser.Target, value string) error {
	input := page.Locate(target).First()

	if err := input.Fill(ctx, value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", target, err)
	}

	if err := input.Press(ctx, browser.KeyEnter); err != nil {
		return fmt.Errorf("failed to confirm %s: %w", target, err)
	}

	return nil
}

func fillLegInput(ctx context.Context, input browser.Element, value string) error {
	if err := input.ScrollIntoView(ctx); err != nil {
		return fmt.Errorf("failed to reach leg input: %w", err)
	}

	if err := input.Focus(ctx); err != nil {
		return fmt.Errorf("failed to focus leg input: %w", err)
	}

	if err := input.Fill(ctx, value); err != nil {
		return fmt.Errorf("failed to fill leg input: %w", err)
	}

	return nil
}
