package esi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/arthur-debert/wrench/pkg/esi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeESI struct {
	charHits atomic.Int32
	corpHits atomic.Int32
	agent    atomic.Value
}

func (f *fakeESI) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/characters/{id}/", func(w http.ResponseWriter, req *http.Request) {
		f.charHits.Add(1)
		f.agent.Store(req.Header.Get("User-Agent"))
		switch chi.URLParam(req, "id") {
		case "95465499":
			writeJSON(w, map[string]interface{}{
				"name":           "Alice Alpha",
				"corporation_id": 98000001,
				"birthday":       "2015-03-24T11:37:00Z",
			})
		case "95000002":
			writeJSON(w, map[string]interface{}{
				"name":           "Orphan Pilot",
				"corporation_id": 1,
				"birthday":       "2016-01-01T00:00:00Z",
			})
		default:
			http.Error(w, `{"error":"Character not found"}`, http.StatusNotFound)
		}
	})
	r.Get("/corporations/{id}/", func(w http.ResponseWriter, req *http.Request) {
		f.corpHits.Add(1)
		if chi.URLParam(req, "id") != "98000001" {
			http.Error(w, `{"error":"Corporation not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]interface{}{
			"name":         "Wrench Industries",
			"ticker":       "WRNCH",
			"member_count": 12,
		})
	})
	return r
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newClient(t *testing.T) (*esi.Client, *fakeESI) {
	t.Helper()
	fake := &fakeESI{}
	srv := httptest.NewServer(fake.router())
	t.Cleanup(srv.Close)
	return esi.NewClient(esi.Config{BaseURL: srv.URL + "/", UserAgent: "wrench-test"}), fake
}

func TestGetCharacter_ResolvesCorporationAndCaches(t *testing.T) {
	client, fake := newClient(t)
	ctx := context.Background()

	ch, err := client.GetCharacter(ctx, 95465499)
	require.NoError(t, err)
	assert.Equal(t, int64(95465499), ch.CharacterID)
	assert.Equal(t, "Alice Alpha", ch.Name)
	assert.Equal(t, int32(98000001), ch.CorporationID)
	assert.Equal(t, "Wrench Industries", ch.CorporationName)
	assert.Equal(t, "wrench-test", fake.agent.Load())

	_, err = client.GetCharacter(ctx, 95465499)
	require.NoError(t, err)
	assert.Equal(t, int32(1), fake.charHits.Load(), "second lookup is served from cache")
	assert.Equal(t, int32(1), fake.corpHits.Load())
}

func TestGetCharacter_CorporationFailureIsNotFatal(t *testing.T) {
	client, _ := newClient(t)

	ch, err := client.GetCharacter(context.Background(), 95000002)
	require.NoError(t, err)
	assert.Equal(t, "Orphan Pilot", ch.Name)
	assert.Empty(t, ch.CorporationName)
}

func TestGetCharacter_NotFound(t *testing.T) {
	client, fake := newClient(t)

	_, err := client.GetCharacter(context.Background(), 91111111)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrESIRequest))
	assert.Equal(t, http.StatusNotFound, errors.GetErrorDetails(err)["status"])

	// failures are not cached
	_, _ = client.GetCharacter(context.Background(), 91111111)
	assert.Equal(t, int32(2), fake.charHits.Load())
}

func TestLookupCharacter(t *testing.T) {
	client, _ := newClient(t)

	details, err := client.LookupCharacter(context.Background(), 95465499)
	require.NoError(t, err)
	assert.Equal(t, "Alice Alpha", details.Name)
	assert.Equal(t, "Wrench Industries", details.Corporation)
	assert.Equal(t, "https://images.evetech.net/characters/95465499/portrait?size=64", details.PortraitURL)
}

func TestGetCharacter_ContextCancelled(t *testing.T) {
	client, _ := newClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetCharacter(ctx, 95465499)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
