// Package maps is a thin client for the Google Maps web service APIs. It
// resolves routes to the conference venue and finds nearby transport
// options; parsing stops at the fields the assistant needs.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// DefaultBaseURL is the Google Maps web service endpoint.
const DefaultBaseURL = "https://maps.googleapis.com"

const (
	directionsPath = "/maps/api/directions/json"
	placesPath     = "/maps/api/place/nearbysearch/json"
)

var (
	// ErrRequestDenied means the API rejected the key or the request.
	ErrRequestDenied = errors.New("maps: request denied")
	// ErrNoRoute means no route exists between origin and destination.
	ErrNoRoute = errors.New("maps: no route found")
)

// Route is a resolved route between two points.
type Route struct {
	Summary  string   `json:"summary"`
	Distance string   `json:"distance"`
	Duration string   `json:"duration"`
	Steps    []string `json:"steps"`
	Fare     string   `json:"fare,omitempty"`
}

// Client calls the Directions API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Directions client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("maps API key is required")
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// directionsResponse mirrors the subset of the Directions API response the
// assistant uses.
type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Summary string `json:"summary"`
		Fare    *struct {
			Text string `json:"text"`
		} `json:"fare"`
		Legs []struct {
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
			Steps []struct {
				HTMLInstructions string `json:"html_instructions"`
				Distance         struct {
					Text string `json:"text"`
				} `json:"distance"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Directions resolves a route from origin to destination. Mode is a travel
// mode accepted by the API ("driving", "transit", "walking"); empty means
// driving.
func (c *Client) Directions(ctx context.Context, origin, destination, mode string) (*Route, error) {
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("origin and destination are required")
	}
	if mode == "" {
		mode = "driving"
	}

	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("mode", mode)
	q.Set("key", c.apiKey)

	reqURL := c.baseURL + directionsPath + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions API error (status %d): %s", resp.StatusCode, string(body))
	}

	var dr directionsResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	switch dr.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, fmt.Errorf("%w: %s to %s", ErrNoRoute, origin, destination)
	case "REQUEST_DENIED", "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return nil, fmt.Errorf("%w: %s (%s)", ErrRequestDenied, dr.Status, dr.ErrorMessage)
	default:
		return nil, fmt.Errorf("directions API status %s: %s", dr.Status, dr.ErrorMessage)
	}

	if len(dr.Routes) == 0 || len(dr.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoRoute, origin, destination)
	}

	r := dr.Routes[0]
	leg := r.Legs[0]

	route := &Route{
		Summary:  r.Summary,
		Distance: leg.Distance.Text,
		Duration: leg.Duration.Text,
	}
	if r.Fare != nil {
		route.Fare = r.Fare.Text
	}
	for _, step := range leg.Steps {
		instruction := stripTags(step.HTMLInstructions)
		if step.Distance.Text != "" {
			instruction += " (" + step.Distance.Text + ")"
		}
		route.Steps = append(route.Steps, instruction)
	}
	return route, nil
}

// Place is a nearby place returned by the Places API.
type Place struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Type    string  `json:"type"`
	Rating  float64 `json:"rating,omitempty"`
}

// placesResponse mirrors the subset of the Places Nearby Search response
// the assistant uses.
type placesResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name     string  `json:"name"`
		Vicinity string  `json:"vicinity"`
		Rating   float64 `json:"rating"`
	} `json:"results"`
}

// PlacesNearby finds places around a location. Location is "lat,lng";
// radius is in meters. Exactly one of placeType (a Places API type like
// "transit_station") or keyword should be set. An area with no matches is
// an empty result, not an error.
func (c *Client) PlacesNearby(ctx context.Context, location string, radius int, placeType, keyword string) ([]Place, error) {
	if location == "" {
		return nil, fmt.Errorf("location is required")
	}
	if radius <= 0 {
		radius = 1000
	}

	q := url.Values{}
	q.Set("location", location)
	q.Set("radius", fmt.Sprintf("%d", radius))
	if placeType != "" {
		q.Set("type", placeType)
	}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	q.Set("key", c.apiKey)

	reqURL := c.baseURL + placesPath + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API error (status %d): %s", resp.StatusCode, string(body))
	}

	var pr placesResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	switch pr.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	case "REQUEST_DENIED", "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return nil, fmt.Errorf("%w: %s (%s)", ErrRequestDenied, pr.Status, pr.ErrorMessage)
	default:
		return nil, fmt.Errorf("places API status %s: %s", pr.Status, pr.ErrorMessage)
	}

	kind := placeType
	if kind == "" {
		kind = keyword
	}
	places := make([]Place, 0, len(pr.Results))
	for _, r := range pr.Results {
		places = append(places, Place{
			Name:    r.Name,
			Address: r.Vicinity,
			Type:    kind,
			Rating:  r.Rating,
		})
	}
	return places, nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripTags removes the HTML markup the API embeds in step instructions.
func stripTags(s string) string {
	return strings.Join(strings.Fields(tagPattern.ReplaceAllString(s, " ")), " ")
}
