package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botlane/botlane/internal/drafts"
	"github.com/botlane/botlane/internal/feedstore"
	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/scoring"
)

func testdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", name)
}

func newTestHandler(t *testing.T, store drafts.Store) *Handler {
	t.Helper()
	roster := champion.DefaultRoster()
	repo, err := feedstore.LoadFile(testdataPath("feed.json"), roster, nil)
	require.NoError(t, err)
	return NewHandler(&HandlerDeps{
		Roster:  roster,
		Repo:    repo,
		Weights: scoring.Defaults(),
		Drafts:  drafts.NewService(store, drafts.WithRoster(roster)),
	})
}

func do(t *testing.T, h http.Handler, method, target string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, rec)["error"]
}

func TestRecommendBottom(t *testing.T) {
	h := newTestHandler(t, drafts.NewMemoryStore()).Routes("")

	rec := do(t, h, http.MethodGet, "/api/recommendations/bottom?allySupport=leona", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	r := decode[scoring.Ranking](t, rec)
	assert.Equal(t, champion.RoleADC, r.Role)
	assert.False(t, r.Blind)
	assert.Equal(t, "14.20", r.Patch)
	require.NotEmpty(t, r.Recommendations)
	assert.Equal(t, "kaisa", r.Recommendations[0].ID)
	assert.Equal(t, 100, r.Recommendations[0].Score)
	assert.Equal(t, "Leona", r.Recommendations[0].Breakdown.AllyName)
}

func TestRecommendLimit(t *testing.T) {
	h := newTestHandler(t, drafts.NewMemoryStore()).Routes("")

	rec := do(t, h, http.MethodGet, "/api/recommendations/bottom?allySupport=leona&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[scoring.Ranking](t, rec).Recommendations, 2)

	// The cached ranking must not have been cut by the previous request.
	rec = do(t, h, http.MethodGet, "/api/recommendations/bottom?allySupport=leona", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[scoring.Ranking](t, rec).Recommendations, len(champion.DefaultRoster().ADCs()))
}

func TestRecommendSupport(t *testing.T) {
	h := newTestHandler(t, drafts.NewMemoryStore()).Routes("")

	rec := do(t, h, http.MethodGet, "/api/recommendations/support?allyAdc=jinx&threat=assassin", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	r := decode[scoring.Ranking](t, rec)
	assert.Equal(t, champion.RoleSupport, r.Role)
	require.NotEmpty(t, r.Recommendations)
	assert.Equal(t, "lulu", r.Recommendations[0].ID)
}

func TestRecommendBlind(t *testing.T) {
	h := newTestHandler(t, drafts.NewMemoryStore()).Routes("")

	rec := do(t, h, http.MethodGet, "/api/recommendations/support", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	r := decode[scoring.Ranking](t, rec)
	assert.True(t, r.Blind)
	for _, c := range r.Recommendations {
		assert.Equal(t, scoring.Neutral, c.Score, c.ID)
	}
}

func TestRecommendRejectsBadInput(t *testing.T) {
	h := newTestHandler(t, drafts.NewMemoryStore()).Routes("")

	tests := []struct {
		name   string
		target string
	}{
		{"unknown ally", "/api/recommendations/bottom?allySupport=nobody"},
		{"ally in the wrong role", "/api/recommendations/bottom?allySupport=jinx"},
		{"enemy bottom is a support", "/api/recommendations/support?enemyBottom=janna"},
		{"unknown threat", "/api/recommendations/bottom?threat=splitpush"},
		{"negative limit", "/api/recommendations/bottom?limit=-1"},
		{"non-numeric limit", "/api/recommendations/support?limit=ten"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tc.target, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, errorOf(t, rec))
		})
	}
}

func TestListChampions(t *testing.T) {
	h := newTestHandler(t, drafts.NewMemoryStore()).Routes("")
	roster := champion.DefaultRoster()

	rec := do(t, h, http.MethodGet, "/api/champions?role=support", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[championListResponse](t, rec)
	assert.Equal(t, "support", resp.Role)
	assert.Len(t, resp.Champions, len(roster.Supports()))

	rec = do(t, h, http.MethodGet, "/api/champions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[championListResponse](t, rec).Champions, len(roster.All()))

	rec = do(t, h, http.MethodGet, "/api/champions?role=jungle", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchups(t *testing.T) {
	h := newTestHandler(t, drafts.NewMemoryStore()).Routes("")

	rec := do(t, h, http.MethodGet, "/api/matchups/kaisa", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[matchupResponse](t, rec)
	require.NotNil(t, resp.Champion)
	assert.Equal(t, "Kai'Sa", resp.Champion.Name)
	require.NotNil(t, resp.Bottom)
	assert.NotEmpty(t, resp.Bottom.Synergy)
	assert.Nil(t, resp.Support)
	assert.Equal(t, "14.20", resp.Patch)

	rec = do(t, h, http.MethodGet, "/api/matchups/nobody", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Champion not found", errorOf(t, rec))
}

func TestDraftLifecycle(t *testing.T) {
	h := newTestHandler(t, drafts.NewMemoryStore()).Routes("")

	rec := do(t, h, http.MethodPost, "/api/drafts", drafts.Input{
		Name:         "Into Nautilus",
		ADCChampion:  "Kai'Sa",
		AllySupport:  "Leona",
		EnemySupport: "Nautilus",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[drafts.Draft](t, rec)
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.AllySupport)
	assert.Equal(t, "Leona", *created.AllySupport)
	assert.Nil(t, created.Notes)

	rec = do(t, h, http.MethodGet, "/api/drafts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.Name, decode[drafts.Draft](t, rec).Name)

	rec = do(t, h, http.MethodPatch, "/api/drafts/"+created.ID, `{"notes":"ward river","allySupport":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[drafts.Draft](t, rec)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "ward river", *updated.Notes)
	assert.Nil(t, updated.AllySupport)
	assert.Equal(t, "Into Nautilus", updated.Name)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	rec = do(t, h, http.MethodGet, "/api/drafts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]drafts.Draft](t, rec), 1)

	rec = do(t, h, http.MethodDelete, "/api/drafts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Draft deleted successfully", decode[map[string]string](t, rec)["message"])

	rec = do(t, h, http.MethodGet, "/api/drafts/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Draft not found", errorOf(t, rec))

	rec = do(t, h, http.MethodDelete, "/api/drafts/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPatch, "/api/drafts/"+created.ID, `{"notes":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDraftValidation(t *testing.T) {
	h := newTestHandler(t, drafts.NewMemoryStore()).Routes("")

	tests := []struct {
		name    string
		body    any
		wantErr string
	}{
		{"malformed body", `{"name":`, "invalid request body"},
		{"missing name", drafts.Input{ADCChampion: "Jinx"}, "invalid draft: name is required"},
		{"missing champion", drafts.Input{Name: "x"}, "invalid draft: adcChampion is required"},
		{"unknown threat", drafts.Input{Name: "x", ADCChampion: "Jinx", EnemyThreat: "splitpush"}, ""},
		{"unknown champion", drafts.Input{Name: "x", ADCChampion: "Nobody"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/drafts", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			msg := errorOf(t, rec)
			if tc.wantErr != "" {
				assert.Equal(t, tc.wantErr, msg)
			} else {
				assert.Contains(t, msg, "invalid draft:")
			}
		})
	}
}

func TestDraftWritesRequireAPIKey(t *testing.T) {
	h := newTestHandler(t, drafts.NewMemoryStore()).Routes("secret")
	in := drafts.Input{Name: "x", ADCChampion: "Jinx"}

	rec := do(t, h, http.MethodPost, "/api/drafts", in)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/drafts", in, "X-API-Key", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/drafts", in, "X-API-Key", "secret")
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Reads stay open.
	rec = do(t, h, http.MethodGet, "/api/drafts", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t, drafts.NewMemoryStore()).Routes("secret")

	rec := do(t, h, http.MethodOptions, "/api/drafts", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

// brokenStore fails every operation.
type brokenStore struct{}

var errBroken = errors.New("connection refused")

func (brokenStore) List(context.Context) ([]drafts.Draft, error) { return nil, errBroken }
func (brokenStore) Get(context.Context, string) (drafts.Draft, bool, error) {
	return drafts.Draft{}, false, errBroken
}
func (brokenStore) Insert(context.Context, drafts.Draft) error { return errBroken }
func (brokenStore) Update(context.Context, string, func(*drafts.Draft) error) (drafts.Draft, bool, error) {
	return drafts.Draft{}, false, errBroken
}
func (brokenStore) Delete(context.Context, string) (bool, error) { return false, errBroken }
func (brokenStore) Ping(context.Context) error                   { return errBroken }
func (brokenStore) Close() error                                 { return nil }

func TestStoreFailuresAreInternalErrors(t *testing.T) {
	h := newTestHandler(t, brokenStore{}).Routes("")

	tests := []struct {
		method, target string
		body           any
		wantErr        string
	}{
		{http.MethodGet, "/api/drafts", nil, "Failed to fetch drafts"},
		{http.MethodGet, "/api/drafts/abc", nil, "Failed to fetch draft"},
		{http.MethodPost, "/api/drafts", drafts.Input{Name: "x", ADCChampion: "Jinx"}, "Failed to save draft"},
		{http.MethodPatch, "/api/drafts/abc", `{"notes":"x"}`, "Failed to save draft"},
		{http.MethodDelete, "/api/drafts/abc", nil, "Failed to delete draft"},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.target, tc.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, tc.wantErr, errorOf(t, rec))
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}
