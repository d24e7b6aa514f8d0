package cdek_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"logistic/internal/adapters/out/carriers/cdek"
	"logistic/internal/core/domain/model/kernel"
	"logistic/internal/core/ports"
	"logistic/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryCredentialStore is a thread-safe in-memory ports.CredentialStore.
type memoryCredentialStore struct {
	mu    sync.Mutex
	creds map[string]ports.Credential
}

func newMemoryCredentialStore(creds ...ports.Credential) *memoryCredentialStore {
	s := &memoryCredentialStore{creds: map[string]ports.Credential{}}
	for _, c := range creds {
		s.creds[c.ServiceName] = c
	}
	return s
}

func (s *memoryCredentialStore) Get(_ context.Context, serviceName string) (ports.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.creds[serviceName]
	if !ok {
		return ports.Credential{}, errs.NewObjectNotFoundError("credential", serviceName)
	}
	return c, nil
}

func (s *memoryCredentialStore) PutToken(_ context.Context, serviceName, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.creds[serviceName]
	c.ServiceName = serviceName
	c.Token = token
	c.ExpiresAt = &expiresAt
	s.creds[serviceName] = c
	return nil
}

func (s *memoryCredentialStore) Save(_ context.Context, credential ports.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[credential.ServiceName] = credential
	return nil
}

// memoryLocationCache is a thread-safe in-memory ports.LocationCache.
type memoryLocationCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemoryLocationCache() *memoryLocationCache {
	return &memoryLocationCache{entries: map[string]string{}}
}

func (c *memoryLocationCache) Get(_ context.Context, carrier, query string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	code, ok := c.entries[carrier+":"+query]
	return code, ok, nil
}

func (c *memoryLocationCache) Put(_ context.Context, carrier, query, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[carrier+":"+query] = code
	return nil
}

func (c *memoryLocationCache) Invalidate(_ context.Context, carrier, query string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, carrier+":"+query)
	return nil
}

func quoteRequest(t *testing.T) ports.QuoteRequest {
	t.Helper()

	p, err := kernel.NewPackage(5000, 300, 200, 150)
	require.NoError(t, err)
	date, err := kernel.NewShipmentDate(nil, time.Now())
	require.NoError(t, err)

	return ports.QuoteRequest{
		From:         "Москва",
		To:           "Санкт-Петербург",
		FromCity:     "Москва",
		ToCity:       "Санкт-Петербург",
		Packages:     []kernel.Package{p},
		DeliveryType: kernel.DoorDoor,
		ShipmentDate: date,
		Currency:     1,
		Lang:         "rus",
	}
}

// fakeCDEK serves the three CDEK endpoints the adapter touches.
func fakeCDEK(t *testing.T, tokenCalls, calcCalls *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		_, _ = w.Write([]byte(`{"access_token":"fresh-token","expires_in":3600}`))
	})
	mux.HandleFunc("/v2/location/suggest/cities", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fresh-token", r.Header.Get("Authorization"))
		switch r.URL.Query().Get("name") {
		case "Москва":
			_, _ = w.Write([]byte(`[{"code":44}]`))
		case "Санкт-Петербург":
			_, _ = w.Write([]byte(`[{"code":137}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	})
	mux.HandleFunc("/v2/calculator/tariff", func(w http.ResponseWriter, r *http.Request) {
		calcCalls.Add(1)

		var payload struct {
			TariffCode   int `json:"tariff_code"`
			FromLocation struct {
				Code int `json:"code"`
			} `json:"from_location"`
			Packages []struct {
				Weight int `json:"weight"`
				Length int `json:"length"`
			} `json:"packages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 139, payload.TariffCode) // door-door
		assert.Equal(t, 44, payload.FromLocation.Code)
		require.Len(t, payload.Packages, 1)
		assert.Equal(t, 5000, payload.Packages[0].Weight)
		assert.Equal(t, 30, payload.Packages[0].Length) // mm converted to cm

		_, _ = w.Write([]byte(`{"delivery_sum":1500.50,"period_min":3,"period_max":5}`))
	})

	return httptest.NewServer(mux)
}

func TestAdapter_Quote(t *testing.T) {
	t.Run("returns_single_normalized_quote", func(t *testing.T) {
		// Given
		var tokenCalls, calcCalls atomic.Int32
		server := fakeCDEK(t, &tokenCalls, &calcCalls)
		defer server.Close()

		store := newMemoryCredentialStore(ports.Credential{
			ServiceName: cdek.ServiceName, Login: "login", Secret: "secret",
		})
		adapter := cdek.NewAdapter(server.URL, store, newMemoryLocationCache(), zap.NewNop())

		// When
		quotes, err := adapter.Quote(t.Context(), quoteRequest(t))

		// Then
		require.NoError(t, err)
		require.Len(t, quotes, 1)
		assert.Equal(t, "СДЭК", quotes[0].CarrierName())
		assert.EqualValues(t, 150_050, quotes[0].Amount()) // 1500.50 rub in kopecks
		assert.Equal(t, 3, quotes[0].PeriodMin())
		assert.Equal(t, 5, quotes[0].PeriodMax())
	})

	t.Run("reuses_cached_token_and_location_codes", func(t *testing.T) {
		var tokenCalls, calcCalls atomic.Int32
		server := fakeCDEK(t, &tokenCalls, &calcCalls)
		defer server.Close()

		store := newMemoryCredentialStore(ports.Credential{
			ServiceName: cdek.ServiceName, Login: "login", Secret: "secret",
		})
		adapter := cdek.NewAdapter(server.URL, store, newMemoryLocationCache(), zap.NewNop())

		_, err := adapter.Quote(t.Context(), quoteRequest(t))
		require.NoError(t, err)
		_, err = adapter.Quote(t.Context(), quoteRequest(t))
		require.NoError(t, err)

		assert.Equal(t, int32(1), tokenCalls.Load())
		assert.Equal(t, int32(2), calcCalls.Load())
	})

	t.Run("missing_credential_is_a_credential_error", func(t *testing.T) {
		var tokenCalls, calcCalls atomic.Int32
		server := fakeCDEK(t, &tokenCalls, &calcCalls)
		defer server.Close()

		adapter := cdek.NewAdapter(server.URL, newMemoryCredentialStore(), newMemoryLocationCache(), zap.NewNop())

		_, err := adapter.Quote(t.Context(), quoteRequest(t))
		require.ErrorIs(t, err, errs.ErrCredential)
		assert.Equal(t, int32(0), calcCalls.Load())
	})

	t.Run("unknown_city_is_a_carrier_error", func(t *testing.T) {
		var tokenCalls, calcCalls atomic.Int32
		server := fakeCDEK(t, &tokenCalls, &calcCalls)
		defer server.Close()

		store := newMemoryCredentialStore(ports.Credential{
			ServiceName: cdek.ServiceName, Login: "login", Secret: "secret",
		})
		adapter := cdek.NewAdapter(server.URL, store, newMemoryLocationCache(), zap.NewNop())

		req := quoteRequest(t)
		req.FromCity = "Нарния"

		_, err := adapter.Quote(t.Context(), req)
		require.ErrorIs(t, err, errs.ErrCarrierUnavailable)
	})

	t.Run("upstream_5xx_is_a_carrier_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v2/oauth/token" {
				_, _ = w.Write([]byte(`{"access_token":"fresh-token","expires_in":3600}`))
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		store := newMemoryCredentialStore(ports.Credential{
			ServiceName: cdek.ServiceName, Login: "login", Secret: "secret",
		})
		adapter := cdek.NewAdapter(server.URL, store, newMemoryLocationCache(), zap.NewNop())

		_, err := adapter.Quote(t.Context(), quoteRequest(t))
		require.ErrorIs(t, err, errs.ErrCarrierUnavailable)
	})
}

func TestTokenProvider_ConcurrentRefresh(t *testing.T) {
	// Given an expired token and many concurrent callers
	var tokenCalls, calcCalls atomic.Int32
	server := fakeCDEK(t, &tokenCalls, &calcCalls)
	defer server.Close()

	expired := time.Now().Add(-time.Hour)
	store := newMemoryCredentialStore(ports.Credential{
		ServiceName: cdek.ServiceName, Login: "login", Secret: "secret",
		Token: "stale", ExpiresAt: &expired,
	})
	adapter := cdek.NewAdapter(server.URL, store, newMemoryLocationCache(), zap.NewNop())

	// When 10 goroutines request a token simultaneously
	var wg sync.WaitGroup
	tokens := make([]string, 10)
	errors := make([]error, 10)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errors[i] = adapter.TokenProvider().Token(context.Background())
		}(i)
	}
	wg.Wait()

	// Then everyone received a valid token and the store holds a complete record
	for i, token := range tokens {
		require.NoError(t, errors[i])
		assert.Equal(t, "fresh-token", token)
	}
	cred, err := store.Get(t.Context(), cdek.ServiceName)
	require.NoError(t, err)
	assert.True(t, cred.HasValidToken(time.Now()))
	require.NotNil(t, cred.ExpiresAt)
}
