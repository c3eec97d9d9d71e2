package browsertest

import (
	"strconv"

	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/browser"
)

// InfantRatioMessage is shown when infants on lap outnumber adults.
const InfantRatioMessage = "You must have at least one adult per infant on lap"

// Row is one result row; a field without an entry has no sub-element.
type Row map[browser.Target]string

// FlightsOptions shapes the page returned by NewFlightsPage.
type FlightsOptions struct {
	// Rows appear after the search button is clicked.
	Rows []Row
	// NoResults, when set, is shown after search instead of the rows.
	NoResults string
	// Adults is the adult count the passenger dialog starts with.
	Adults int
}

var ticketLabels = []string{"One Way", "Round Trip", "Multi-City"}

var flightLabels = []string{"Economy", "Premium Economy", "Business", "First"}

// FlightsPage is a flights search form wired to react like the real page.
type FlightsPage struct {
	*Page

	legs       *Node
	addLeg     *Node
	dateDialog *Node
	options    *Node
	infantErr  *Node
	counters   map[browser.Target]*Node
}

// NewFlightsPage builds the search form with one leg and a closed
// passenger dialog.
func NewFlightsPage(opts FlightsOptions) *FlightsPage {
	adults := opts.Adults
	if adults == 0 {
		adults = 1
	}

	fp := &FlightsPage{counters: map[browser.Target]*Node{}}

	root := NewNode("", "")
	fp.Page = NewPage(root)

	fp.options = NewNode("", "")
	for _, label := range ticketLabels {
		option := NewNode(browser.TargetOption, label)
		if label == "Multi-City" {
			option.OnClick = func(*Node, int) { fp.enableMultiCity() }
		}
		fp.options.Append(option)
	}

	for _, label := range flightLabels {
		fp.options.Append(NewNode(browser.TargetOption, label))
	}

	dialog := NewNode(browser.TargetDialog, "")
	dialog.Hidden = true

	for _, counter := range []struct {
		target browser.Target
		value  int
	}{
		{browser.TargetAdultCounter, adults},
		{browser.TargetChildrenCounter, 0},
		{browser.TargetInfantSeatCounter, 0},
		{browser.TargetInfantLapCounter, 0},
	} {
		dialog.Append(fp.counter(counter.target, counter.value))
	}

	fp.infantErr = NewNode(browser.TargetInfantRatioError, "")
	done := NewNode(browser.TargetPassengerDone, "Done")
	done.OnClick = func(*Node, int) { dialog.Detach() }
	dialog.Append(fp.infantErr, done)

	passengerButton := NewNode(browser.TargetPassengerButton, "")
	passengerButton.OnClick = func(*Node, int) { dialog.Hidden = false }

	fp.legs = NewNode("", "")
	fp.appendLeg(true)

	fp.addLeg = NewNode(browser.TargetAddLeg, "Add flight")
	fp.addLeg.Hidden = true
	fp.addLeg.OnClick = func(_ *Node, count int) {
		for i := 0; i < count; i++ {
			fp.appendLeg(false)
		}
	}

	fp.dateDialog = NewNode(browser.TargetDialog, "")
	fp.dateDialog.Hidden = true
	dateDone := NewNode(browser.TargetDialogDone, "Done")
	dateDone.OnClick = func(*Node, int) { fp.dateDialog.Hidden = true }
	fp.dateDialog.Append(dateDone)

	results := NewNode("", "")
	results.Hidden = true

	noResults := NewNode(browser.TargetNoResults, opts.NoResults)
	noResults.Hidden = true

	for _, row := range opts.Rows {
		rowNode := NewNode(browser.TargetResultRow, "")
		for _, field := range []browser.Target{
			browser.TargetAirline, browser.TargetDepartureTime, browser.TargetArrivalTime,
			browser.TargetDuration, browser.TargetStops, browser.TargetPrice,
		} {
			if value, ok := row[field]; ok {
				rowNode.Append(NewNode(field, value))
			}
		}
		results.Append(rowNode)
	}

	search := NewNode(browser.TargetSearchButton, "Search")
	search.OnClick = func(*Node, int) {
		if opts.NoResults != "" {
			noResults.Hidden = false
			return
		}
		results.Hidden = false
	}

	root.Append(
		NewNode(browser.TargetTicketType, "One Way"),
		NewNode(browser.TargetFlightType, "Economy"),
		passengerButton,
		dialog,
		fp.legs,
		fp.addLeg,
		fp.dateDialog,
		search,
		noResults,
		results,
		fp.options,
	)

	fp.OnKey = func(key string) {
		if key == browser.KeyEscape {
			fp.dateDialog.Hidden = true
		}
	}

	return fp
}

func (fp *FlightsPage) counter(target browser.Target, value int) *Node {
	counter := NewNode(target, "")
	counter.Attrs["aria-valuenow"] = strconv.Itoa(value)

	step := func(delta int) func(*Node, int) {
		return func(_ *Node, count int) {
			current, _ := strconv.Atoi(counter.Attrs["aria-valuenow"])
			next := current + delta*count
			if next < 0 {
				next = 0
			}
			counter.Attrs["aria-valuenow"] = strconv.Itoa(next)
			fp.checkInfantRatio()
		}
	}

	increment := NewNode(browser.TargetIncrement, "+")
	increment.OnClick = step(1)
	decrement := NewNode(browser.TargetDecrement, "-")
	decrement.OnClick = step(-1)

	counter.Append(increment, decrement)
	fp.counters[target] = counter

	return counter
}

func (fp *FlightsPage) checkInfantRatio() {
	if fp.count(browser.TargetInfantLapCounter) > fp.count(browser.TargetAdultCounter) {
		fp.infantErr.Text = InfantRatioMessage
		return
	}

	fp.infantErr.Text = ""
}

func (fp *FlightsPage) count(target browser.Target) int {
	value, _ := strconv.Atoi(fp.counters[target].Attrs["aria-valuenow"])
	return value
}

func (fp *FlightsPage) appendLeg(withReturn bool) {
	leg := NewNode("", "")

	for _, target := range []browser.Target{browser.TargetOrigin, browser.TargetDestination} {
		input := NewNode(target, "")
		input.OnFill = func(_ *Node, value string) { fp.suggest(value) }
		leg.Append(input)
	}

	dates := []browser.Target{browser.TargetDepartureDate}
	if withReturn {
		dates = append(dates, browser.TargetReturnDate)
	}

	for _, target := range dates {
		input := NewNode(target, "")
		input.OnPress = func(_ *Node, key string) {
			if key == browser.KeyEnter {
				fp.dateDialog.Hidden = false
			}
		}
		leg.Append(input)
	}

	fp.legs.Append(leg)
}

func (fp *FlightsPage) enableMultiCity() {
	fp.addLeg.Hidden = false

	for len(fp.legs.Children) < 2 {
		fp.appendLeg(false)
	}
}

// suggest lists one airport suggestion for value; picking it clears the list.
func (fp *FlightsPage) suggest(value string) {
	suggestion := NewNode(browser.TargetOption, value+" International Airport")
	suggestion.Attrs["role"] = "suggestion"
	suggestion.OnClick = func(n *Node, _ int) {
		for _, option := range append([]*Node(nil), fp.options.Children...) {
			if option.Attrs["role"] == "suggestion" {
				option.Detach()
			}
		}
	}

	fp.options.Append(suggestion)
}

// Counter returns the displayed count of a passenger counter.
func (fp *FlightsPage) Counter(target browser.Target) int {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	return fp.count(target)
}

// Legs is the number of leg rows on the form.
func (fp *FlightsPage) Legs() int {
	fp.mu.Lock()
	defer fp.mu.Unlock()

	return len(fp.legs.Children)
}

// Filled returns the values filled into target inputs in document order.
func (fp *FlightsPage) Filled(target browser.Target) []string {
	var values []string

	for _, n := range fp.Find(target) {
		values = append(values, n.Value)
	}

	return values
}
