// Package browser is the UI automation capability the scraper drives.
// Callers address page surfaces by Target; which markup a Target matches
// is decided by the Selectors table an implementation is built with.
package browser

import (
	"context"
	"time"
)

// Target names a UI surface of the flights page.
type Target string

const (
	TargetTicketType        Target = "ticket_type"
	TargetFlightType        Target = "flight_type"
	TargetOption            Target = "option"
	TargetPassengerButton   Target = "passenger_button"
	TargetDialog            Target = "dialog"
	TargetDialogDone        Target = "dialog_done"
	TargetAdultCounter      Target = "adult_counter"
	TargetChildrenCounter   Target = "children_counter"
	TargetInfantSeatCounter Target = "infant_seat_counter"
	TargetInfantLapCounter  Target = "infant_lap_counter"
	TargetIncrement         Target = "increment"
	TargetDecrement         Target = "decrement"
	TargetPassengerDone     Target = "passenger_done"
	TargetInfantRatioError  Target = "infant_ratio_error"
	TargetOrigin            Target = "origin"
	TargetDestination       Target = "destination"
	TargetDepartureDate     Target = "departure_date"
	TargetReturnDate        Target = "return_date"
	TargetAddLeg            Target = "add_leg"
	TargetSearchButton      Target = "search_button"
	TargetNoResults         Target = "no_results"
	TargetResultRow         Target = "result_row"

	TargetAirline       Target = "airline"
	TargetDepartureTime Target = "departure_time"
	TargetArrivalTime   Target = "arrival_time"
	TargetDuration      Target = "duration"
	TargetStops         Target = "stops"
	TargetPrice         Target = "price"
)

// Keys pressed by the scraper.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// Element is a lazy reference to zero or more page elements. Narrowing
// methods never touch the page; the context-taking methods do.
type Element interface {
	Locate(target Target) Element
	First() Element
	Nth(index int) Element
	Filter(text string) Element
	Visible() Element

	Count(ctx context.Context) (int, error)
	All(ctx context.Context) ([]Element, error)
	WaitVisible(ctx context.Context, timeout time.Duration) error
	WaitHidden(ctx context.Context, timeout time.Duration) error
	// Text returns nil when no element matches.
	Text(ctx context.Context) (*string, error)
	Attribute(ctx context.Context, name string) (string, error)
	Click(ctx context.Context, count int) error
	Fill(ctx context.Context, value string) error
	Press(ctx context.Context, key string) error
	Focus(ctx context.Context) error
	ScrollIntoView(ctx context.Context) error
}

// Page is one open tab.
type Page interface {
	Locate(target Target) Element
	Navigate(ctx context.Context, url string) error
	PressKey(ctx context.Context, key string) error
	Wait(ctx context.Context, d time.Duration) error
}

// Session is an isolated browsing context owning one page.
type Session interface {
	Page() Page
	Close() error
}

// Launcher opens fresh sessions. Sessions never share state.
type Launcher interface {
	NewSession(ctx context.Context) (Session, error)
}
