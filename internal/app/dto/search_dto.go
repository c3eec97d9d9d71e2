package dto

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/exception"
)

type TicketType string

const (
	TicketTypeOneWay    TicketType = "One Way"
	TicketTypeRoundTrip TicketType = "Round Trip"
	TicketTypeMultiCity TicketType = "Multi-City"
)

type FlightType string

const (
	FlightTypeEconomy        FlightType = "Economy"
	FlightTypePremiumEconomy FlightType = "Premium Economy"
	FlightTypeBusiness       FlightType = "Business"
	FlightTypeFirst          FlightType = "First"
)

type PassengerType string

const (
	PassengerAdult      PassengerType = "Adult"
	PassengerChildren   PassengerType = "Children"
	PassengerInfantSeat PassengerType = "Infants In Seat"
	PassengerInfantLap  PassengerType = "Infants On Lap"
)

// PassengerTypes is the order in which the passenger dialog is filled.
var PassengerTypes = []PassengerType{
	PassengerAdult,
	PassengerChildren,
	PassengerInfantSeat,
	PassengerInfantLap,
}

// StringList decodes from either a JSON string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}

	*l = many

	return nil
}

// MarshalJSON writes a one element list as a plain string.
func (l StringList) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}

	return json.Marshal([]string(l))
}

// Passengers maps a passenger type to the requested count.
type Passengers map[PassengerType]int

// Target is the count the passenger dialog should end up with.
// A missing adult entry still means one adult.
func (p Passengers) Target(passengerType PassengerType) int {
	count, ok := p[passengerType]
	if !ok && passengerType == PassengerAdult {
		return 1
	}

	return count
}

// SearchRequest describes one flight search as the search form expects it.
type SearchRequest struct {
	Departure     StringList `json:"departure" validate:"required,min=1,dive,required"`
	Destination   StringList `json:"destination" validate:"required,min=1,dive,required"`
	DepartureDate StringList `json:"departure_date" validate:"required,min=1,dive,required"`
	ReturnDate    *string    `json:"return_date,omitempty"`
	CityAmount    int        `json:"city_amount" validate:"gte=0"`
	TicketType    TicketType `json:"ticket_type" validate:"required,oneof='One Way' 'Round Trip' 'Multi-City'"`
	FlightType    FlightType `json:"flight_type" validate:"required,oneof='Economy' 'Premium Economy' 'Business' 'First'"`
	Passengers    Passengers `json:"passengers" validate:"dive,keys,oneof='Adult' 'Children' 'Infants In Seat' 'Infants On Lap',endkeys,gte=0"`
}

// ApplyDefaults fills the fields a caller may leave out.
func (s *SearchRequest) ApplyDefaults() {
	if s.TicketType == "" {
		s.TicketType = TicketTypeOneWay
	}

	if s.FlightType == "" {
		s.FlightType = FlightTypeEconomy
	}

	if s.Passengers == nil {
		s.Passengers = Passengers{PassengerAdult: 1}
	}
}

func (s *SearchRequest) Bind(r *http.Request) error {
	s.ApplyDefaults()

	if err := s.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (s *SearchRequest) Validate() error {
	if err := ValidateSingleError(s); err != nil {
		return newValidationError(err.Error())
	}

	lists := []struct {
		name   string
		values StringList
	}{
		{"departure", s.Departure},
		{"destination", s.Destination},
		{"departure_date", s.DepartureDate},
	}

	for _, list := range lists {
		if s.TicketType == TicketTypeMultiCity && len(list.values) < 2 {
			return newValidationError(fmt.Sprintf("%s must contain at least 2 values for multi-city tickets", list.name))
		}

		if s.TicketType != TicketTypeMultiCity && len(list.values) != 1 {
			return newValidationError(fmt.Sprintf("%s must be a single value for %s tickets", list.name, s.TicketType))
		}
	}

	if s.TicketType == TicketTypeRoundTrip && (s.ReturnDate == nil || *s.ReturnDate == "") {
		return newValidationError("A return date must be specified for round trip tickets")
	}

	return nil
}

func newValidationError(message string) error {
	return exception.ApplicationError{
		Kind:       exception.KindRequestValidation,
		StatusCode: http.StatusUnprocessableEntity,
		Message:    message,
	}
}

// FlightRecord is one result row of the flights page.
type FlightRecord struct {
	Airline       string `json:"airline"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Duration      string `json:"duration"`
	Stops         string `json:"stops"`
	Price         string `json:"price"`
}
