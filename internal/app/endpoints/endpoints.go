package endpoints

// Endpoints groups every endpoint the HTTP router serves.
type Endpoints struct {
	FlightEndpoint FlightEndpoint
}
