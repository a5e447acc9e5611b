package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getPath(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSessions_ListEmpty(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, echoGenerator("unused"))

	rec := getPath(t, srv.Handler(), "/api/v1/agents/sessions")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	data := env.Data.(map[string]any)
	assert.Empty(t, data["current"])
	assert.Empty(t, data["sessions"])
	assert.Equal(t, float64(20), data["cap"])
}

func TestSessions_UpsertAndList(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, echoGenerator("unused"))
	h := srv.Handler()

	rec := postJSON(t, h, "/api/v1/agents/sessions",
		`{"session_id": "ses-1", "preview": "about the venue", "set_current": true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h, "/api/v1/agents/sessions",
		`{"session_id": "ses-2", "preview": "about speakers"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = getPath(t, h, "/api/v1/agents/sessions")
	data := decodeEnvelope(t, rec).Data.(map[string]any)

	assert.Equal(t, "ses-1", data["current"])

	sessions := data["sessions"].([]any)
	require.Len(t, sessions, 2)
	first := sessions[0].(map[string]any)
	assert.Equal(t, "ses-2", first["session_id"])
	assert.Equal(t, "about speakers", first["preview"])
}

func TestSessions_UpsertGeneratesID(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, echoGenerator("unused"))

	rec := postJSON(t, srv.Handler(), "/api/v1/agents/sessions", `{"preview": "fresh chat"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec).Data.(map[string]any)
	assert.NotEmpty(t, data["session_id"])
}

func TestSessions_EvictionThroughAPI(t *testing.T) {
	t.Parallel()

	srv, cache := newTestServer(t, echoGenerator("unused"))
	h := srv.Handler()

	for i := range 25 {
		rec := postJSON(t, h, "/api/v1/agents/sessions",
			fmt.Sprintf(`{"session_id": "ses-%d", "preview": "q%d"}`, i, i))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 20, cache.Len())
	records := cache.Records()
	assert.Equal(t, "ses-24", records[0].SessionID)
	assert.Equal(t, "ses-5", records[len(records)-1].SessionID)
}

func TestPreview(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short message", preview("  short   message \n"))

	long := strings.Repeat("x", 200)
	assert.Len(t, preview(long), previewLen)

	// Truncation never splits a multi-byte rune: byte 80 of this string
	// falls inside an 'é', so the cut has to back off.
	accented := strings.Repeat("aé", 100)
	p := preview(accented)
	assert.True(t, utf8.ValidString(p))
	assert.Equal(t, previewLen-1, len(p))
}

func TestSessions_BadJSONIs400(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, echoGenerator("unused"))

	rec := postJSON(t, srv.Handler(), "/api/v1/agents/sessions", `{{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
