package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestResolver(t *testing.T, handler http.HandlerFunc) (*NominatimResolver, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewNominatimResolver(server.URL, "Jerusalem", 2*time.Second, zap.NewNop()), server
}

func TestResolveSuccess(t *testing.T) {
	var gotQuery string
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"31.778","lon":"35.235"}]`))
	})

	coords := resolver.Resolve(context.Background(), "Jaffa Street 12")
	require.NotNil(t, coords)
	assert.InDelta(t, 31.778, coords.Lat, 1e-9)
	assert.InDelta(t, 35.235, coords.Lng, 1e-9)
	assert.Equal(t, "Jaffa Street 12, Jerusalem", gotQuery)
}

func TestResolveNoResults(t *testing.T) {
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	assert.Nil(t, resolver.Resolve(context.Background(), "nowhere at all"))
}

func TestResolveServerError(t *testing.T) {
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.Nil(t, resolver.Resolve(context.Background(), "Jaffa Street 12"))
}

func TestResolveMalformedCoordinates(t *testing.T) {
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"35.2"}]`))
	})

	assert.Nil(t, resolver.Resolve(context.Background(), "Jaffa Street 12"))
}

func TestResolveUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on
	resolver := NewNominatimResolver(server.URL, "Jerusalem", time.Second, zap.NewNop())

	assert.Nil(t, resolver.Resolve(context.Background(), "Jaffa Street 12"))
}

func TestResolveEmptyAddress(t *testing.T) {
	resolver, _ := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty address")
	})

	assert.Nil(t, resolver.Resolve(context.Background(), ""))
}
