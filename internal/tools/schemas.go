package tools

// FindSpeakerInput defines input for the findSpeaker tool.
type FindSpeakerInput struct {
	Query string `json:"query" jsonschema_description:"Speaker name or expertise to search for (case-insensitive)"`
}

// SearchSessionsInput defines input for the searchSessions tool.
type SearchSessionsInput struct {
	Query string `json:"query" jsonschema_description:"Keywords to match against session titles, descriptions, topics, and speaker names"`
}

// SessionsByDayInput defines input for the sessionsByDay tool.
type SessionsByDayInput struct {
	Day string `json:"day" jsonschema_description:"Conference day, e.g. 'July 18' or 'July 19'"`
}

// SessionsBySpeakerInput defines input for the sessionsBySpeaker tool.
type SessionsBySpeakerInput struct {
	SpeakerID string `json:"speaker_id" jsonschema_description:"Speaker id as returned by findSpeaker, e.g. 'spk-001'"`
}

// FullScheduleInput defines input for the fullSchedule tool (no input needed).
type FullScheduleInput struct{}

// KeynoteSpeakersInput defines input for the keynoteSpeakers tool (no input needed).
type KeynoteSpeakersInput struct{}

// DirectionsToVenueInput defines input for the directionsToVenue tool.
type DirectionsToVenueInput struct {
	Origin string `json:"origin" jsonschema_description:"Where the attendee is coming from, an address or landmark in Lagos"`
	Mode   string `json:"mode,omitempty" jsonschema_description:"Travel mode: driving, transit, or walking (default driving)"`
}

// NearbyTransportInput defines input for the nearbyTransport tool.
type NearbyTransportInput struct {
	Location     string `json:"location" jsonschema_description:"Coordinates to search around as 'lat,lng'; use the venue coordinates when the attendee means near the venue"`
	RadiusMeters int    `json:"radius_meters,omitempty" jsonschema_description:"Search radius in meters (default 1000)"`
}

// VenueInfoInput defines input for the venueInfo tool (no input needed).
type VenueInfoInput struct{}

// ScrapePageInput defines input for the scrapeConferencePage tool.
type ScrapePageInput struct {
	URL string `json:"url,omitempty" jsonschema_description:"Conference website page to read, a path like '/speakers' or a full URL on the conference domain; empty for the home page"`
}
