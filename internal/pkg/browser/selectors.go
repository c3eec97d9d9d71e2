package browser

import "fmt"

// Selector locates a Target either by CSS or by ARIA role and accessible name.
type Selector struct {
	CSS  string
	Role string
	Name string
}

func (s Selector) String() string {
	if s.Role != "" {
		return fmt.Sprintf("role=%s[name=%q]", s.Role, s.Name)
	}

	return s.CSS
}

// Selectors maps every Target to its markup.
type Selectors map[Target]Selector

// DefaultSelectors matches the current Google Flights markup.
func DefaultSelectors() Selectors {
	return Selectors{
		TargetTicketType:        {CSS: "div.VfPpkd-TkwUic[jsname='oYxtQd']"},
		TargetFlightType:        {CSS: "div.TQYpgc[jsname='zkxPxd']"},
		TargetOption:            {CSS: "li"},
		TargetPassengerButton:   {CSS: "div[jsname='QqIbod'] button[jsname='LgbsSe'][aria-haspopup='dialog']"},
		TargetDialog:            {Role: "dialog"},
		TargetDialogDone:        {Role: "button", Name: "Done"},
		TargetAdultCounter:      {CSS: "div[jsname='mMhAUc']"},
		TargetChildrenCounter:   {CSS: "div[jsname='LpMIEc']"},
		TargetInfantSeatCounter: {CSS: "div[jsname='u3Jn2e']"},
		TargetInfantLapCounter:  {CSS: "div[jsname='TwhQhe']"},
		TargetIncrement:         {CSS: "button[jsname='TdyTDe']"},
		TargetDecrement:         {CSS: "button[jsname='DUGJie']"},
		TargetPassengerDone:     {CSS: "button[jsname='McfNlf']"},
		TargetInfantRatioError:  {CSS: "span[jsname='Ne3sFf']"},
		TargetOrigin:            {CSS: "input[aria-label^='Where from?']"},
		TargetDestination:       {CSS: "input[aria-label^='Where to?']"},
		TargetDepartureDate:     {CSS: "input[aria-label^='Departure']"},
		TargetReturnDate:        {CSS: "input[aria-label^='Return']"},
		TargetAddLeg:            {CSS: "button[jsname='htvI8d']"},
		TargetSearchButton:      {CSS: "button[aria-label^='Search']"},
		TargetNoResults:         {CSS: "div.lF6CS"},
		TargetResultRow:         {CSS: "li.pIav2d"},

		TargetAirline:       {CSS: "div.sSHqwe.tPgKwe.ogfYpf"},
		TargetDepartureTime: {CSS: "span[aria-label^=\"Departure time\"]"},
		TargetArrivalTime:   {CSS: "span[aria-label^=\"Arrival time\"]"},
		TargetDuration:      {CSS: "div[aria-label^=\"Total duration\"]"},
		TargetStops:         {CSS: "div.hF6lYb span.rGRiKd"},
		TargetPrice:         {CSS: "div.FpEdX span"},
	}
}

// Lookup returns the selector for target.
func (s Selectors) Lookup(target Target) (Selector, error) {
	sel, ok := s[target]
	if !ok || (sel.CSS == "" && sel.Role == "") {
		return Selector{}, fmt.Errorf("no selector configured for %q", target)
	}

	return sel, nil
}

// With returns a copy of s with overrides applied.
func (s Selectors) With(overrides Selectors) Selectors {
	merged := make(Selectors, len(s)+len(overrides))
	for target, sel := range s {
		merged[target] = sel
	}

	for target, sel := range overrides {
		merged[target] = sel
	}

	return merged
}
