package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	// API key validation (required for all AI operations).
	// Genkit reads the key itself; only presence is checked here.
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY environment variable is required\n"+
			"Get your API key at: https://ai.google.dev/gemini-api/docs/api-key",
			ErrMissingAPIKey)
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	if c.MaxTurns < 1 || c.MaxTurns > 20 {
		return fmt.Errorf("%w: must be between 1 and 20, got %d", ErrInvalidMaxTurns, c.MaxTurns)
	}

	if c.MaxHistoryMessages < 2 || c.MaxHistoryMessages > 10000 {
		return fmt.Errorf("%w: max_history_messages must be between 2 and 10,000, got %d",
			ErrInvalidMaxTurns, c.MaxHistoryMessages)
	}

	if err := validateCoordinates(c.Conference.VenueCoordinates); err != nil {
		return err
	}

	if c.HistoryCap < 1 || c.HistoryCap > 1000 {
		return fmt.Errorf("%w: must be between 1 and 1000, got %d", ErrInvalidHistoryCap, c.HistoryCap)
	}

	if c.Scraper.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be at least 1, got %d", ErrInvalidScraper, c.Scraper.Parallelism)
	}
	if c.Scraper.TimeoutMs < 1 {
		return fmt.Errorf("%w: timeout_ms must be positive, got %d", ErrInvalidScraper, c.Scraper.TimeoutMs)
	}
	if c.Scraper.MaxRetries < 0 || c.Scraper.MaxRetries > 10 {
		return fmt.Errorf("%w: max_retries must be between 0 and 10, got %d", ErrInvalidScraper, c.Scraper.MaxRetries)
	}

	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidAddr, c.Addr, err)
	}

	return nil
}

// validateCoordinates checks the "lat,lng" venue coordinate format.
func validateCoordinates(coords string) error {
	lat, lng, ok := strings.Cut(coords, ",")
	if !ok {
		return fmt.Errorf("%w: %q must be in \"lat,lng\" format", ErrInvalidCoordinates, coords)
	}
	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return fmt.Errorf("%w: latitude %q is not a number", ErrInvalidCoordinates, lat)
	}
	lngF, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return fmt.Errorf("%w: longitude %q is not a number", ErrInvalidCoordinates, lng)
	}
	if latF < -90 || latF > 90 || lngF < -180 || lngF > 180 {
		return fmt.Errorf("%w: %q is out of range", ErrInvalidCoordinates, coords)
	}
	return nil
}
