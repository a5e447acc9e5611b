package tools

import (
	"errors"
	"strings"

	"github.com/firebase/genkit/go/ai"

	"github.com/apiconf/ndu/internal/maps"
)

// DirectionsToVenue routes an attendee from their origin to the venue.
func (k *Kit) DirectionsToVenue(ctx *ai.ToolContext, input DirectionsToVenueInput) (Result, error) {
	k.logger.Debug("DirectionsToVenue called", "origin", input.Origin, "mode", input.Mode)

	if strings.TrimSpace(input.Origin) == "" {
		return k.invalidArgs("origin is required"), nil
	}
	if k.maps == nil {
		return k.degraded(ErrCodeUpstream, "Directions are not available right now."), nil
	}

	route, err := k.maps.Directions(ctx.Context, input.Origin, k.conference.VenueAddress, input.Mode)
	if err != nil {
		k.logger.Warn("DirectionsToVenue failed", "origin", input.Origin, "error", err)
		switch {
		case errors.Is(err, maps.ErrNoRoute):
			return k.degraded(ErrCodeNotFound, "I couldn't find a route from there to the venue."), nil
		default:
			return k.degraded(ErrCodeUpstream, "I couldn't fetch directions right now."), nil
		}
	}

	return Result{
		Status:  StatusSuccess,
		Message: "Directions to " + k.conference.VenueName,
		Data: map[string]any{
			"origin":      input.Origin,
			"destination": k.conference.VenueAddress,
			"venue":       k.conference.VenueName,
			"route":       route,
		},
	}, nil
}

// maxTransportOptions bounds NearbyTransport output.
const maxTransportOptions = 10

// NearbyTransport finds bus stops and transit stations around a location.
func (k *Kit) NearbyTransport(ctx *ai.ToolContext, input NearbyTransportInput) (Result, error) {
	k.logger.Debug("NearbyTransport called", "location", input.Location, "radius", input.RadiusMeters)

	if strings.TrimSpace(input.Location) == "" {
		return k.invalidArgs("location is required"), nil
	}
	if k.maps == nil {
		return k.degraded(ErrCodeUpstream, "Transport lookup is not available right now."), nil
	}

	radius := input.RadiusMeters
	if radius <= 0 {
		radius = 1000
	}

	stations, err := k.maps.PlacesNearby(ctx.Context, input.Location, radius, "transit_station", "")
	if err != nil {
		k.logger.Warn("NearbyTransport stations lookup failed", "location", input.Location, "error", err)
		return k.degraded(ErrCodeUpstream, "I couldn't look up transport options right now."), nil
	}
	busStops, err := k.maps.PlacesNearby(ctx.Context, input.Location, radius, "", "bus stop")
	if err != nil {
		k.logger.Warn("NearbyTransport bus stops lookup failed", "location", input.Location, "error", err)
		return k.degraded(ErrCodeUpstream, "I couldn't look up transport options right now."), nil
	}

	options := append(stations, busStops...)
	if len(options) > maxTransportOptions {
		options = options[:maxTransportOptions]
	}

	return Result{
		Status:  StatusSuccess,
		Message: "Transport options near " + input.Location,
		Data: map[string]any{
			"location":      input.Location,
			"radius_meters": radius,
			"options":       options,
			"count":         len(options),
		},
	}, nil
}

// VenueInfo returns static venue and support details.
func (k *Kit) VenueInfo(_ *ai.ToolContext, _ VenueInfoInput) (Result, error) {
	k.logger.Debug("VenueInfo called")

	return Result{
		Status:  StatusSuccess,
		Message: k.conference.VenueName + ", " + k.conference.VenueAddress,
		Data: map[string]any{
			"venue_name":    k.conference.VenueName,
			"venue_address": k.conference.VenueAddress,
			"coordinates":   k.conference.VenueCoordinates,
			"dates":         k.conference.Dates,
			"support_phone": k.conference.SupportPhone,
			"support_email": k.conference.SupportEmail,
			"access_notes": "The venue is wheelchair accessible. Parking is available on site; " +
				"ride-hailing drop-off is at the main gate on the service road.",
		},
	}, nil
}
