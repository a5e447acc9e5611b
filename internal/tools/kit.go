// Package tools defines the assistant's lookup tools and registers them with
// Genkit. The tool set is closed: the model can only reach the operations
// listed in toolNames, each backed by a typed handler on Kit.
package tools

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/genkit"

	"github.com/apiconf/ndu/internal/config"
	"github.com/apiconf/ndu/internal/directory"
	"github.com/apiconf/ndu/internal/log"
	"github.com/apiconf/ndu/internal/maps"
	"github.com/apiconf/ndu/internal/scrape"
)

// Tool names. toolNames below is the single source of truth for what is
// registered; the agent builds its ai.WithTools list from it.
const (
	FindSpeakerName       = "findSpeaker"
	SearchSessionsName    = "searchSessions"
	SessionsByDayName     = "sessionsByDay"
	SessionsBySpeakerName = "sessionsBySpeaker"
	FullScheduleName      = "fullSchedule"
	KeynoteSpeakersName   = "keynoteSpeakers"
	DirectionsName        = "directionsToVenue"
	NearbyTransportName   = "nearbyTransport"
	VenueInfoName         = "venueInfo"
	ScrapePageName        = "scrapeConferencePage"
)

var toolNames = []string{
	FindSpeakerName,
	SearchSessionsName,
	SessionsByDayName,
	SessionsBySpeakerName,
	FullScheduleName,
	KeynoteSpeakersName,
	DirectionsName,
	NearbyTransportName,
	VenueInfoName,
	ScrapePageName,
}

// ToolNames returns the registered tool names.
func ToolNames() []string {
	return toolNames
}

// directionsClient is the routing and places behavior Kit needs; satisfied
// by *maps.Client.
type directionsClient interface {
	Directions(ctx context.Context, origin, destination, mode string) (*maps.Route, error)
	PlacesNearby(ctx context.Context, location string, radius int, placeType, keyword string) ([]maps.Place, error)
}

// pageScraper is the website-reading behavior Kit needs; satisfied by
// *scrape.Service.
type pageScraper interface {
	Scrape(ctx context.Context, url string) (*scrape.Page, error)
}

// KitConfig holds the dependencies for a Kit. Maps and Scraper may be nil;
// the corresponding tools then return a degraded Result pointing at support
// instead of failing registration.
type KitConfig struct {
	Directory  *directory.Store
	Maps       directionsClient
	Scraper    pageScraper
	Conference config.ConferenceConfig
	Logger     log.Logger
}

// Kit is the collection of conference lookup tools.
type Kit struct {
	dir        *directory.Store
	maps       directionsClient
	scraper    pageScraper
	conference config.ConferenceConfig
	logger     log.Logger
}

// NewKit creates a tool kit.
func NewKit(cfg KitConfig) (*Kit, error) {
	if cfg.Directory == nil {
		return nil, fmt.Errorf("KitConfig.Directory is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}
	return &Kit{
		dir:        cfg.Directory,
		maps:       cfg.Maps,
		scraper:    cfg.Scraper,
		conference: cfg.Conference,
		logger:     cfg.Logger,
	}, nil
}

// Register defines every tool on the Genkit instance.
func (k *Kit) Register(g *genkit.Genkit) error {
	if g == nil {
		return fmt.Errorf("genkit instance is required")
	}

	genkit.DefineTool(g, FindSpeakerName,
		"Search conference speakers by name or area of expertise. "+
			"Returns matching speakers with their title, company, bio, social links, and session ids. "+
			"Use this when the attendee asks about a person or who covers a topic.",
		k.FindSpeaker)

	genkit.DefineTool(g, SearchSessionsName,
		"Search conference sessions by keyword. Matches titles, descriptions, topics, and speaker names. "+
			"Returns matching sessions with day, time, room, and format.",
		k.SearchSessions)

	genkit.DefineTool(g, SessionsByDayName,
		"List the sessions scheduled on a given conference day, in chronological order. "+
			"The conference runs July 18-19, 2025.",
		k.SessionsByDay)

	genkit.DefineTool(g, SessionsBySpeakerName,
		"List the sessions a specific speaker appears in, looked up by speaker id.",
		k.SessionsBySpeaker)

	genkit.DefineTool(g, FullScheduleName,
		"Get the complete two-day conference schedule in chronological order.",
		k.FullSchedule)

	genkit.DefineTool(g, KeynoteSpeakersName,
		"List the keynote sessions and their speakers.",
		k.KeynoteSpeakers)

	genkit.DefineTool(g, DirectionsName,
		"Get driving, transit, or walking directions from anywhere in Lagos to the conference venue. "+
			"Returns distance, duration, and step-by-step directions.",
		k.DirectionsToVenue)

	genkit.DefineTool(g, NearbyTransportName,
		"Find bus stops and transit stations near a location in Lagos. "+
			"Takes 'lat,lng' coordinates and an optional search radius in meters (default 1000). "+
			"Use this when the attendee asks how to catch a bus or train near them or near the venue.",
		k.NearbyTransport)

	genkit.DefineTool(g, VenueInfoName,
		"Get the venue name, address, conference dates, and support contact details.",
		k.VenueInfo)

	genkit.DefineTool(g, ScrapePageName,
		"Read a page of the official conference website and return its text, headings, and links. "+
			"Use this for information not covered by the schedule tools, like sponsors or ticket details.",
		k.ScrapePage)

	k.logger.Info("conference tools registered", "count", len(toolNames))
	return nil
}

// degraded builds an error Result that still tells the attendee who to call.
func (k *Kit) degraded(code, msg string) Result {
	return Result{
		Status:  StatusError,
		Message: fmt.Sprintf("%s Please contact support at %s.", msg, k.conference.SupportPhone),
		Data: map[string]any{
			"support_phone": k.conference.SupportPhone,
			"support_email": k.conference.SupportEmail,
		},
		Error: &Error{Code: code, Message: msg},
	}
}
