//go:build load

package load_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Stats struct {
	Succeeded int
	NoResults int
	Failed    int
	Flights   int
}

func (s *Stats) Add(other Stats) {
	s.Succeeded += other.Succeeded
	s.NoResults += other.NoResults
	s.Failed += other.Failed
	s.Flights += other.Flights
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func searchFlights(ctx context.Context, url string, req dto.SearchRequest) (Stats, error) {
	payload, _ := json.Marshal(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return Stats{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return Stats{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Stats{NoResults: 1}, nil
	case http.StatusInternalServerError:
		// retries exhausted, most likely no session slot or a slow page
		return Stats{Failed: 1}, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return Stats{}, fmt.Errorf("bad status: %d, body: %s", resp.StatusCode, string(body))
	}

	var flights []dto.FlightRecord
	if err := json.NewDecoder(resp.Body).Decode(&flights); err != nil {
		return Stats{}, err
	}

	return Stats{Succeeded: 1, Flights: len(flights)}, nil
}

func TestFlightSearchLoad(t *testing.T) {
	appHost := getEnv("APP_HOST", "http://localhost:8080")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPass := getEnv("REDIS_PASSWORD", "")
	slotPrefix := getEnv("SESSION_KEY_PREFIX", "flight-scraper:sessions")

	url := appHost + "/api/v1/flights/search"
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	departure := time.Now().AddDate(0, 1, 0).Format(time.DateOnly)

	oneWay := dto.SearchRequest{
		Departure:     dto.StringList{"JFK"},
		Destination:   dto.StringList{"LHR"},
		DepartureDate: dto.StringList{departure},
		TicketType:    dto.TicketTypeOneWay,
		FlightType:    dto.FlightTypeEconomy,
		Passengers:    dto.Passengers{dto.PassengerAdult: 1},
	}

	t.Run("Concurrent Search Test", func(t *testing.T) {
		vus := 3
		stats := runScenario(t, ctx, url, oneWay, vus)

		fmt.Printf("Concurrent Search Result: Succeeded = %d, No Results = %d, Failed = %d, Flights = %d\n",
			stats.Succeeded, stats.NoResults, stats.Failed, stats.Flights)
		assert.Equal(t, vus, stats.Succeeded+stats.NoResults+stats.Failed)
		assert.Greater(t, stats.Succeeded, 0)
	})

	t.Run("Session Slot Release Test", func(t *testing.T) {
		rdb := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPass,
			DB:       0,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			t.Skipf("redis not reachable: %v", err)
		}

		vus := 6
		runScenario(t, ctx, url, oneWay, vus)

		keys, err := rdb.Keys(ctx, slotPrefix+":slot:*").Result()
		require.NoError(t, err)
		assert.Empty(t, keys, "every session slot should be released after the searches finish")
	})

	t.Run("Validation Test", func(t *testing.T) {
		roundTrip := oneWay
		roundTrip.TicketType = dto.TicketTypeRoundTrip

		payload, _ := json.Marshal(roundTrip)
		resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func runScenario(t *testing.T, ctx context.Context, url string, req dto.SearchRequest, vus int) Stats {
	var wg sync.WaitGroup
	var mu sync.Mutex
	scenarioStats := Stats{}

	for i := 0; i < vus; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			stats, err := searchFlights(ctx, url, req)
			if err != nil {
				t.Errorf("VU %d failed: %v", id, err)
				return
			}
			mu.Lock()
			scenarioStats.Add(stats)
			mu.Unlock()
		}(i)
	}

	wg.Wait()
	return scenarioStats
}
