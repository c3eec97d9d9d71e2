//go:build unit

package exception

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationError(t *testing.T) {
	noFlights := ApplicationError{
		Kind:       KindNoFlightsFound,
		Message:    "No flights found for these dates",
		StatusCode: http.StatusNotFound,
	}

	t.Run("message_without_cause", func(t *testing.T) {
		assert.Equal(t, "No flights found for these dates", noFlights.Error())
	})

	t.Run("message_with_cause", func(t *testing.T) {
		err := ApplicationError{Message: "failed", Cause: errors.New("timeout")}
		assert.Equal(t, "failed: timeout", err.Error())
	})

	t.Run("is_matches_kind_and_message", func(t *testing.T) {
		wrapped := fmt.Errorf("search: %w", noFlights)
		assert.ErrorIs(t, wrapped, ApplicationError{
			Kind:    KindNoFlightsFound,
			Message: "No flights found for these dates",
		})
		assert.NotErrorIs(t, wrapped, ApplicationError{
			Kind:    KindAdultPerInfantsOnLap,
			Message: "No flights found for these dates",
		})
	})

	t.Run("kind_of", func(t *testing.T) {
		assert.Equal(t, KindNoFlightsFound, KindOf(fmt.Errorf("wrap: %w", noFlights)))
		assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
		assert.Equal(t, KindInternal, KindOf(ApplicationError{Message: "no kind"}))
	})

	t.Run("error_code", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, noFlights.ErrorCode())
	})
}
