package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiconf/ndu/internal/config"
	"github.com/apiconf/ndu/internal/directory"
	"github.com/apiconf/ndu/internal/log"
	"github.com/apiconf/ndu/internal/maps"
	"github.com/apiconf/ndu/internal/scrape"
)

// fakeMaps stubs the directions and places client.
type fakeMaps struct {
	route     *maps.Route
	err       error
	places    []maps.Place
	placesErr error
}

func (f *fakeMaps) Directions(_ context.Context, _, _, _ string) (*maps.Route, error) {
	return f.route, f.err
}

func (f *fakeMaps) PlacesNearby(_ context.Context, _ string, _ int, _, _ string) ([]maps.Place, error) {
	return f.places, f.placesErr
}

// fakeScraper stubs the website scraper.
type fakeScraper struct {
	page *scrape.Page
	err  error
}

func (f *fakeScraper) Scrape(_ context.Context, _ string) (*scrape.Page, error) {
	return f.page, f.err
}

func testConference() config.ConferenceConfig {
	return config.ConferenceConfig{
		VenueName:        "The Zone",
		VenueAddress:     "Plot 9, Gbagada Industrial Scheme, Lagos, Nigeria",
		VenueCoordinates: "6.5502,3.3792",
		Dates:            "July 18-19, 2025",
		SupportPhone:     "+234 800 000 0000",
		SupportEmail:     "support@apiconf.net",
	}
}

func newTestKit(t *testing.T, m directionsClient, s pageScraper) *Kit {
	t.Helper()

	dir, err := directory.New()
	require.NoError(t, err)

	kit, err := NewKit(KitConfig{
		Directory:  dir,
		Maps:       m,
		Scraper:    s,
		Conference: testConference(),
		Logger:     log.NewNop(),
	})
	require.NoError(t, err)
	return kit
}

func toolCtx() *ai.ToolContext {
	return &ai.ToolContext{Context: context.Background()}
}

func TestNewKit_RequiresDirectory(t *testing.T) {
	t.Parallel()

	_, err := NewKit(KitConfig{})
	assert.Error(t, err)
}

func TestToolNames_Closed(t *testing.T) {
	t.Parallel()

	names := ToolNames()
	assert.Len(t, names, 10)
	assert.Contains(t, names, FindSpeakerName)
	assert.Contains(t, names, DirectionsName)
	assert.Contains(t, names, NearbyTransportName)
	assert.Contains(t, names, ScrapePageName)
}

func TestFindSpeaker(t *testing.T) {
	t.Parallel()

	kit := newTestKit(t, nil, nil)

	t.Run("by expertise", func(t *testing.T) {
		t.Parallel()

		res, err := kit.FindSpeaker(toolCtx(), FindSpeakerInput{Query: "api design"})
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, res.Status)
		assert.Positive(t, res.Data["count"])
	})

	t.Run("no match is success with zero count", func(t *testing.T) {
		t.Parallel()

		res, err := kit.FindSpeaker(toolCtx(), FindSpeakerInput{Query: "nobody here"})
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, res.Status)
		assert.Equal(t, 0, res.Data["count"])
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		t.Parallel()

		res, err := kit.FindSpeaker(toolCtx(), FindSpeakerInput{Query: "  "})
		require.NoError(t, err)
		assert.Equal(t, StatusError, res.Status)
		require.NotNil(t, res.Error)
		assert.Equal(t, ErrCodeInvalidArgs, res.Error.Code)
	})
}

func TestSessionsByDay(t *testing.T) {
	t.Parallel()

	kit := newTestKit(t, nil, nil)

	res, err := kit.SessionsByDay(toolCtx(), SessionsByDayInput{Day: "July 18"})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Positive(t, res.Data["count"])

	// Unknown day still succeeds and offers the real days.
	res, err = kit.SessionsByDay(toolCtx(), SessionsByDayInput{Day: "July 30"})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 0, res.Data["count"])
	assert.NotEmpty(t, res.Data["all_days"])
}

func TestSessionsBySpeaker_UnknownID(t *testing.T) {
	t.Parallel()

	kit := newTestKit(t, nil, nil)

	res, err := kit.SessionsBySpeaker(toolCtx(), SessionsBySpeakerInput{SpeakerID: "spk-999"})
	require.NoError(t, err)
	assert.Equal(t, StatusError, res.Status)
	require.NotNil(t, res.Error)
	assert.Equal(t, ErrCodeNotFound, res.Error.Code)
}

func TestFullSchedule_ResolvesSpeakerNames(t *testing.T) {
	t.Parallel()

	kit := newTestKit(t, nil, nil)

	res, err := kit.FullSchedule(toolCtx(), FullScheduleInput{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)

	sessions, ok := res.Data["sessions"].([]map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, sessions)
	assert.NotEmpty(t, sessions[0]["speakers"])
}

func TestKeynoteSpeakers(t *testing.T) {
	t.Parallel()

	kit := newTestKit(t, nil, nil)

	res, err := kit.KeynoteSpeakers(toolCtx(), KeynoteSpeakersInput{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 2, res.Data["count"])
}

func TestDirectionsToVenue(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, &fakeMaps{route: &maps.Route{Distance: "12 km", Duration: "40 mins"}}, nil)

		res, err := kit.DirectionsToVenue(toolCtx(), DirectionsToVenueInput{Origin: "Ikeja"})
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, res.Status)
		assert.Equal(t, "The Zone", res.Data["venue"])
	})

	t.Run("no route degrades with support contact", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, &fakeMaps{err: maps.ErrNoRoute}, nil)

		res, err := kit.DirectionsToVenue(toolCtx(), DirectionsToVenueInput{Origin: "Atlantis"})
		require.NoError(t, err)
		assert.Equal(t, StatusError, res.Status)
		assert.Contains(t, res.Message, "+234 800 000 0000")
		require.NotNil(t, res.Error)
		assert.Equal(t, ErrCodeNotFound, res.Error.Code)
	})

	t.Run("upstream failure degrades not errors", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, &fakeMaps{err: errors.New("dial tcp: timeout")}, nil)

		res, err := kit.DirectionsToVenue(toolCtx(), DirectionsToVenueInput{Origin: "Ikeja"})
		require.NoError(t, err)
		assert.Equal(t, StatusError, res.Status)
		assert.Equal(t, "+234 800 000 0000", res.Data["support_phone"])
	})

	t.Run("nil client degrades", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, nil, nil)

		res, err := kit.DirectionsToVenue(toolCtx(), DirectionsToVenueInput{Origin: "Ikeja"})
		require.NoError(t, err)
		assert.Equal(t, StatusError, res.Status)
	})

	t.Run("empty origin is invalid", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, &fakeMaps{}, nil)

		res, err := kit.DirectionsToVenue(toolCtx(), DirectionsToVenueInput{})
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ErrCodeInvalidArgs, res.Error.Code)
	})
}

func TestNearbyTransport(t *testing.T) {
	t.Parallel()

	t.Run("combines stations and bus stops", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, &fakeMaps{places: []maps.Place{
			{Name: "Gbagada Bus Terminal", Address: "Gbagada Expressway", Type: "transit_station"},
		}}, nil)

		res, err := kit.NearbyTransport(toolCtx(), NearbyTransportInput{Location: "6.5502,3.3792"})
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, res.Status)
		// The fake answers both lookups with the same place.
		assert.Equal(t, 2, res.Data["count"])
		assert.Equal(t, 1000, res.Data["radius_meters"])
	})

	t.Run("no options is success with zero count", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, &fakeMaps{}, nil)

		res, err := kit.NearbyTransport(toolCtx(), NearbyTransportInput{Location: "0,0", RadiusMeters: 250})
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, res.Status)
		assert.Equal(t, 0, res.Data["count"])
		assert.Equal(t, 250, res.Data["radius_meters"])
	})

	t.Run("lookup failure degrades with support contact", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, &fakeMaps{placesErr: errors.New("dial tcp: timeout")}, nil)

		res, err := kit.NearbyTransport(toolCtx(), NearbyTransportInput{Location: "6.55,3.38"})
		require.NoError(t, err)
		assert.Equal(t, StatusError, res.Status)
		assert.Contains(t, res.Message, "+234 800 000 0000")
	})

	t.Run("nil client degrades", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, nil, nil)

		res, err := kit.NearbyTransport(toolCtx(), NearbyTransportInput{Location: "6.55,3.38"})
		require.NoError(t, err)
		assert.Equal(t, StatusError, res.Status)
	})

	t.Run("empty location is invalid", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, &fakeMaps{}, nil)

		res, err := kit.NearbyTransport(toolCtx(), NearbyTransportInput{})
		require.NoError(t, err)
		require.NotNil(t, res.Error)
		assert.Equal(t, ErrCodeInvalidArgs, res.Error.Code)
	})
}

func TestVenueInfo(t *testing.T) {
	t.Parallel()

	kit := newTestKit(t, nil, nil)

	res, err := kit.VenueInfo(toolCtx(), VenueInfoInput{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "The Zone", res.Data["venue_name"])
	assert.Equal(t, "+234 800 000 0000", res.Data["support_phone"])
}

func TestScrapePage(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, nil, &fakeScraper{page: &scrape.Page{
			URL:      "https://apiconf.net/speakers",
			Title:    "Speakers",
			Text:     "All our speakers.",
			Headings: []string{"Speakers"},
		}})

		res, err := kit.ScrapePage(toolCtx(), ScrapePageInput{URL: "/speakers"})
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, res.Status)
		assert.Equal(t, "Speakers", res.Data["title"])
	})

	t.Run("fetch failure degrades", func(t *testing.T) {
		t.Parallel()

		kit := newTestKit(t, nil, &fakeScraper{err: errors.New("connection refused")})

		res, err := kit.ScrapePage(toolCtx(), ScrapePageInput{URL: "/speakers"})
		require.NoError(t, err)
		assert.Equal(t, StatusError, res.Status)
		assert.Contains(t, res.Message, "+234 800 000 0000")
	})
}
